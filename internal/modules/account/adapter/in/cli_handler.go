package in

import (
	"context"

	accountdto "sparks/internal/modules/account/dto"
	accountin "sparks/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Restore(ctx context.Context) (accountdto.SessionOutput, error) {
	return h.usecase.Restore(ctx)
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (accountdto.SessionOutput, error) {
	return h.usecase.Login(ctx, accountdto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Register(ctx context.Context, input accountdto.RegisterInput) (accountdto.SessionOutput, error) {
	return h.usecase.Register(ctx, input)
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Current(ctx context.Context) accountdto.SessionOutput {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) RefreshProfile(ctx context.Context) (accountdto.ProfileOutput, error) {
	return h.usecase.RefreshProfile(ctx)
}

func (h CLIHandler) UpdateProfile(ctx context.Context, input accountdto.UpdateProfileInput) (accountdto.ProfileOutput, error) {
	return h.usecase.UpdateProfile(ctx, input)
}
