package domain

import (
	"fmt"

	apperrors "sparks/internal/platform/errors"
)

type RewardType string

const (
	RewardProfileBoost     RewardType = "profile-boost"
	RewardExclusiveContent RewardType = "exclusive-content"
	RewardCustomPrompt     RewardType = "custom-prompt"
	RewardSurpriseToken    RewardType = "surprise-token"
)

type Reward struct {
	ID          string
	Title       string
	Description string
	Cost        int
	Type        RewardType
	Unlocked    bool
	Redeemed    bool
}

// CheckRedeemable mirrors the backend's eligibility rules for early feedback.
// The backend stays authoritative.
func (r Reward) CheckRedeemable(points int) error {
	switch {
	case r.Redeemed:
		return apperrors.ErrRewardAlreadyRedeemed
	case !r.Unlocked:
		return apperrors.ErrRewardLocked
	case points < r.Cost:
		return fmt.Errorf("%w: need %d, have %d", apperrors.ErrInsufficientPoints, r.Cost, points)
	}
	return nil
}

func (r Reward) Redeem() Reward {
	out := r
	out.Redeemed = true
	return out
}
