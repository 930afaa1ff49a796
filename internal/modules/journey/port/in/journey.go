package in

import (
	"context"

	"sparks/internal/modules/journey/dto"
)

type Usecase interface {
	Refresh(ctx context.Context) error
	Clear(ctx context.Context)
	Status(ctx context.Context) dto.StatusOutput

	ListQuests(ctx context.Context, filter dto.QuestFilterInput) ([]dto.QuestOutput, error)
	CompleteQuest(ctx context.Context, questID string) (dto.CompleteQuestOutput, error)
	Catalog(ctx context.Context) ([]dto.QuestOutput, error)

	ListReflections(ctx context.Context) []dto.ReflectionOutput
	AddReflection(ctx context.Context, input dto.AddReflectionInput) (dto.AddReflectionOutput, error)
	DeleteReflection(ctx context.Context, reflectionID string) error
	ExportJournal(ctx context.Context) (dto.ExportJournalOutput, error)

	ListRewards(ctx context.Context) []dto.RewardOutput
	CheckRedeem(ctx context.Context, rewardID string) error
	RedeemReward(ctx context.Context, rewardID string) (dto.RedeemRewardOutput, error)

	UpdateMood(ctx context.Context, mood string) (dto.StandingOutput, error)
	AddSparkPoints(ctx context.Context, points int) (dto.StandingOutput, error)
	Overview(ctx context.Context) (dto.OverviewOutput, error)
	Analytics(ctx context.Context) (map[string]any, error)
	UploadMedia(ctx context.Context, path string) (string, error)
}
