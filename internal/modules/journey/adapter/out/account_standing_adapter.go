package out

import (
	"context"

	accountdto "sparks/internal/modules/account/dto"
	accountin "sparks/internal/modules/account/port/in"
	"sparks/internal/modules/journey/domain"
	journeyout "sparks/internal/modules/journey/port/out"
	apperrors "sparks/internal/platform/errors"
)

type AccountStandingAdapter struct {
	account accountin.Usecase
}

func NewAccountStandingAdapter(account accountin.Usecase) journeyout.StandingSession {
	return &AccountStandingAdapter{account: account}
}

func (a *AccountStandingAdapter) Standing(ctx context.Context) (domain.Standing, error) {
	session := a.account.Current(ctx)
	if !session.Authenticated || session.Profile == nil {
		return domain.Standing{}, apperrors.ErrNotAuthenticated
	}
	return standingFromProfile(*session.Profile), nil
}

func (a *AccountStandingAdapter) Apply(ctx context.Context, patch domain.StandingPatch) (domain.Standing, error) {
	profile, err := a.account.UpdateUser(ctx, accountdto.UpdateUserInput{
		CurrentMood:     patch.CurrentMood,
		SparkPoints:     patch.SparkPoints,
		Level:           patch.Level,
		CompletedQuests: patch.CompletedQuests,
	})
	if err != nil {
		return domain.Standing{}, err
	}
	return standingFromProfile(profile), nil
}

func standingFromProfile(p accountdto.ProfileOutput) domain.Standing {
	return domain.Standing{
		UserID:          p.ID,
		SparkPoints:     p.SparkPoints,
		Level:           p.Level,
		CompletedQuests: p.CompletedQuests,
		Streak:          p.Streak,
		CurrentMood:     p.CurrentMood,
	}
}
