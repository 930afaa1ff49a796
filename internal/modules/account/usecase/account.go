package usecase

import (
	"context"

	"sparks/internal/modules/account/domain"
	accountdto "sparks/internal/modules/account/dto"
	accountin "sparks/internal/modules/account/port/in"
	"sparks/internal/modules/account/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) accountin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Restore(ctx context.Context) (accountdto.SessionOutput, error) {
	session, err := i.svc.Restore(ctx)
	return toSessionOutput(session), err
}

func (i *Interactor) Register(ctx context.Context, input accountdto.RegisterInput) (accountdto.SessionOutput, error) {
	session, err := i.svc.Register(ctx, domain.Registration{
		Name:            input.Name,
		Email:           input.Email,
		Password:        input.Password,
		Age:             input.Age,
		PersonalityType: input.PersonalityType,
		EmotionalNeeds:  input.EmotionalNeeds,
		Interests:       input.Interests,
		Goals:           input.Goals,
		CurrentMood:     input.CurrentMood,
	})
	return toSessionOutput(session), err
}

func (i *Interactor) Login(ctx context.Context, input accountdto.LoginInput) (accountdto.SessionOutput, error) {
	session, err := i.svc.Login(ctx, input.Email, input.Password)
	return toSessionOutput(session), err
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Logout(ctx)
}

func (i *Interactor) Expire(ctx context.Context) error {
	return i.svc.Expire(ctx)
}

func (i *Interactor) Current(_ context.Context) accountdto.SessionOutput {
	return toSessionOutput(i.svc.Current())
}

func (i *Interactor) UpdateUser(ctx context.Context, input accountdto.UpdateUserInput) (accountdto.ProfileOutput, error) {
	profile, err := i.svc.UpdateUser(ctx, domain.ProfilePatch{
		CurrentMood:     input.CurrentMood,
		SparkPoints:     input.SparkPoints,
		Level:           input.Level,
		CompletedQuests: input.CompletedQuests,
		Streak:          input.Streak,
	})
	return toProfileOutput(profile), err
}

func (i *Interactor) RefreshProfile(ctx context.Context) (accountdto.ProfileOutput, error) {
	profile, err := i.svc.RefreshProfile(ctx)
	if err != nil {
		return accountdto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func (i *Interactor) UpdateProfile(ctx context.Context, input accountdto.UpdateProfileInput) (accountdto.ProfileOutput, error) {
	profile, err := i.svc.UpdateProfile(ctx, domain.ProfilePatch{
		Name:            input.Name,
		Age:             input.Age,
		PersonalityType: input.PersonalityType,
		EmotionalNeeds:  input.EmotionalNeeds,
		Interests:       input.Interests,
		Goals:           input.Goals,
	})
	if err != nil {
		return accountdto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func (i *Interactor) Watch(fn func(accountdto.SessionOutput)) {
	if fn == nil {
		return
	}
	i.svc.Watch(func(session domain.Session) {
		fn(toSessionOutput(session))
	})
}

func toSessionOutput(session domain.Session) accountdto.SessionOutput {
	out := accountdto.SessionOutput{
		State:         string(session.State),
		Authenticated: session.State == domain.StateAuthenticated,
	}
	if session.Profile != nil {
		profile := toProfileOutput(*session.Profile)
		out.Profile = &profile
	}
	return out
}

func toProfileOutput(p domain.Profile) accountdto.ProfileOutput {
	return accountdto.ProfileOutput{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		Age:             p.Age,
		PersonalityType: p.PersonalityType,
		EmotionalNeeds:  append([]string(nil), p.EmotionalNeeds...),
		Interests:       append([]string(nil), p.Interests...),
		Goals:           append([]string(nil), p.Goals...),
		CurrentMood:     p.CurrentMood,
		SparkPoints:     p.SparkPoints,
		Level:           p.Level,
		CompletedQuests: p.CompletedQuests,
		Streak:          p.Streak,
	}
}
