package apperrors

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrNoStoredSession       = errors.New("no stored session")
	ErrQuestNotFound         = errors.New("quest not found")
	ErrQuestAlreadyCompleted = errors.New("quest already completed")
	ErrQuestNotCompleted     = errors.New("quest is not completed yet")
	ErrReflectionNotFound    = errors.New("reflection not found")
	ErrRewardNotFound        = errors.New("reward not found")
	ErrRewardAlreadyRedeemed = errors.New("reward already redeemed")
	ErrRewardLocked          = errors.New("reward is locked")
	ErrInsufficientPoints    = errors.New("insufficient spark points")
)
