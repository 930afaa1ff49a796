package in

import (
	"context"

	journeydto "sparks/internal/modules/journey/dto"
	journeyin "sparks/internal/modules/journey/port/in"
)

type CLIHandler struct {
	usecase journeyin.Usecase
}

func NewCLIHandler(usecase journeyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Refresh(ctx context.Context) error {
	return h.usecase.Refresh(ctx)
}

func (h CLIHandler) Status(ctx context.Context) journeydto.StatusOutput {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) ListQuests(ctx context.Context, questType, difficulty string, completedOnly, pendingOnly bool) ([]journeydto.QuestOutput, error) {
	return h.usecase.ListQuests(ctx, journeydto.QuestFilterInput{
		Type:          questType,
		Difficulty:    difficulty,
		CompletedOnly: completedOnly,
		PendingOnly:   pendingOnly,
	})
}

func (h CLIHandler) CompleteQuest(ctx context.Context, questID string) (journeydto.CompleteQuestOutput, error) {
	return h.usecase.CompleteQuest(ctx, questID)
}

func (h CLIHandler) Catalog(ctx context.Context) ([]journeydto.QuestOutput, error) {
	return h.usecase.Catalog(ctx)
}

func (h CLIHandler) ListReflections(ctx context.Context) []journeydto.ReflectionOutput {
	return h.usecase.ListReflections(ctx)
}

func (h CLIHandler) AddReflection(ctx context.Context, input journeydto.AddReflectionInput) (journeydto.AddReflectionOutput, error) {
	return h.usecase.AddReflection(ctx, input)
}

func (h CLIHandler) DeleteReflection(ctx context.Context, reflectionID string) error {
	return h.usecase.DeleteReflection(ctx, reflectionID)
}

func (h CLIHandler) ExportJournal(ctx context.Context) (journeydto.ExportJournalOutput, error) {
	return h.usecase.ExportJournal(ctx)
}

func (h CLIHandler) ListRewards(ctx context.Context) []journeydto.RewardOutput {
	return h.usecase.ListRewards(ctx)
}

func (h CLIHandler) CheckRedeem(ctx context.Context, rewardID string) error {
	return h.usecase.CheckRedeem(ctx, rewardID)
}

func (h CLIHandler) RedeemReward(ctx context.Context, rewardID string) (journeydto.RedeemRewardOutput, error) {
	return h.usecase.RedeemReward(ctx, rewardID)
}

func (h CLIHandler) UpdateMood(ctx context.Context, mood string) (journeydto.StandingOutput, error) {
	return h.usecase.UpdateMood(ctx, mood)
}

func (h CLIHandler) Overview(ctx context.Context) (journeydto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) Analytics(ctx context.Context) (map[string]any, error) {
	return h.usecase.Analytics(ctx)
}

func (h CLIHandler) UploadMedia(ctx context.Context, path string) (string, error) {
	return h.usecase.UploadMedia(ctx, path)
}

func (h CLIHandler) AddSparkPoints(ctx context.Context, points int) (journeydto.StandingOutput, error) {
	return h.usecase.AddSparkPoints(ctx, points)
}

func (h CLIHandler) Clear(ctx context.Context) {
	h.usecase.Clear(ctx)
}
