package in

import (
	"context"

	"sparks/internal/modules/account/dto"
)

type Usecase interface {
	Restore(ctx context.Context) (dto.SessionOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (dto.SessionOutput, error)
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	Logout(ctx context.Context) error
	Expire(ctx context.Context) error
	Current(ctx context.Context) dto.SessionOutput
	UpdateUser(ctx context.Context, input dto.UpdateUserInput) (dto.ProfileOutput, error)
	RefreshProfile(ctx context.Context) (dto.ProfileOutput, error)
	UpdateProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.ProfileOutput, error)
	Watch(fn func(dto.SessionOutput))
}
