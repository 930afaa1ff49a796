package usecase

import (
	"context"

	"sparks/internal/modules/journey/domain"
	journeydto "sparks/internal/modules/journey/dto"
	journeyin "sparks/internal/modules/journey/port/in"
	"sparks/internal/modules/journey/service"
)

type Interactor struct {
	store *service.DataStore
}

func NewInteractor(store *service.DataStore) journeyin.Usecase {
	return &Interactor{store: store}
}

func (i *Interactor) Refresh(ctx context.Context) error {
	return i.store.Refresh(ctx)
}

func (i *Interactor) Clear(_ context.Context) {
	i.store.Clear()
}

func (i *Interactor) Status(_ context.Context) journeydto.StatusOutput {
	status := i.store.Status()
	return journeydto.StatusOutput{Loading: status.Loading, Error: status.Error}
}

func (i *Interactor) ListQuests(_ context.Context, filter journeydto.QuestFilterInput) ([]journeydto.QuestOutput, error) {
	quests, err := i.store.Quests(domain.QuestFilter{
		Type:          filter.Type,
		Difficulty:    filter.Difficulty,
		CompletedOnly: filter.CompletedOnly,
		PendingOnly:   filter.PendingOnly,
	})
	if err != nil {
		return nil, err
	}
	return toQuestOutputs(quests), nil
}

func (i *Interactor) CompleteQuest(ctx context.Context, questID string) (journeydto.CompleteQuestOutput, error) {
	quest, standing, err := i.store.CompleteQuest(ctx, questID)
	if err != nil {
		return journeydto.CompleteQuestOutput{}, err
	}
	return journeydto.CompleteQuestOutput{Quest: toQuestOutput(quest), Standing: toStandingOutput(standing)}, nil
}

func (i *Interactor) Catalog(ctx context.Context) ([]journeydto.QuestOutput, error) {
	quests, err := i.store.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return toQuestOutputs(quests), nil
}

func (i *Interactor) ListReflections(_ context.Context) []journeydto.ReflectionOutput {
	reflections := i.store.Reflections()
	out := make([]journeydto.ReflectionOutput, 0, len(reflections))
	for _, r := range reflections {
		out = append(out, toReflectionOutput(r))
	}
	return out
}

func (i *Interactor) AddReflection(ctx context.Context, input journeydto.AddReflectionInput) (journeydto.AddReflectionOutput, error) {
	reflection, standing, err := i.store.AddReflection(ctx, domain.ReflectionDraft{
		QuestID:  input.QuestID,
		Text:     input.Text,
		Mood:     input.Mood,
		PhotoURI: input.PhotoURI,
		AudioURI: input.AudioURI,
	})
	if err != nil {
		return journeydto.AddReflectionOutput{}, err
	}
	return journeydto.AddReflectionOutput{Reflection: toReflectionOutput(reflection), Standing: toStandingOutput(standing)}, nil
}

func (i *Interactor) DeleteReflection(ctx context.Context, reflectionID string) error {
	return i.store.DeleteReflection(ctx, reflectionID)
}

func (i *Interactor) ExportJournal(ctx context.Context) (journeydto.ExportJournalOutput, error) {
	paths, index, err := i.store.ExportJournal(ctx)
	if err != nil {
		return journeydto.ExportJournalOutput{}, err
	}
	return journeydto.ExportJournalOutput{Paths: paths, IndexPath: index}, nil
}

func (i *Interactor) ListRewards(_ context.Context) []journeydto.RewardOutput {
	rewards := i.store.Rewards()
	out := make([]journeydto.RewardOutput, 0, len(rewards))
	for _, r := range rewards {
		out = append(out, toRewardOutput(r))
	}
	return out
}

func (i *Interactor) CheckRedeem(ctx context.Context, rewardID string) error {
	return i.store.CheckRedeem(ctx, rewardID)
}

func (i *Interactor) RedeemReward(ctx context.Context, rewardID string) (journeydto.RedeemRewardOutput, error) {
	reward, standing, err := i.store.RedeemReward(ctx, rewardID)
	if err != nil {
		return journeydto.RedeemRewardOutput{}, err
	}
	return journeydto.RedeemRewardOutput{Reward: toRewardOutput(reward), Standing: toStandingOutput(standing)}, nil
}

func (i *Interactor) UpdateMood(ctx context.Context, mood string) (journeydto.StandingOutput, error) {
	standing, err := i.store.UpdateMood(ctx, mood)
	if err != nil {
		return journeydto.StandingOutput{}, err
	}
	return toStandingOutput(standing), nil
}

func (i *Interactor) AddSparkPoints(ctx context.Context, points int) (journeydto.StandingOutput, error) {
	standing, err := i.store.AddSparkPoints(ctx, points)
	if err != nil {
		return journeydto.StandingOutput{}, err
	}
	return toStandingOutput(standing), nil
}

func (i *Interactor) Overview(ctx context.Context) (journeydto.OverviewOutput, error) {
	overview, err := i.store.Overview(ctx)
	if err != nil {
		return journeydto.OverviewOutput{}, err
	}
	out := journeydto.OverviewOutput{
		Standing: toStandingOutput(overview.Standing),
		Progress: journeydto.LevelProgressOutput{
			Level:   overview.Progress.Level,
			Current: overview.Progress.Current,
			Needed:  overview.Progress.Needed,
			Percent: overview.Progress.Percent,
		},
		CompletedQuestCount: overview.CompletedQuestCount,
		ReflectionCount:     overview.ReflectionCount,
		AvgPointsPerQuest:   overview.AvgPointsPerQuest,
		WeeklyGoal:          overview.WeeklyGoal,
		CompletedThisWeek:   overview.CompletedThisWeek,
		RedeemedRewardCount: overview.RedeemedRewardCount,
		RedeemableRewardIDs: append([]string(nil), overview.RedeemableRewardIDs...),
	}
	if overview.NextQuest != nil {
		next := toQuestOutput(*overview.NextQuest)
		out.NextQuest = &next
	}
	return out, nil
}

func (i *Interactor) Analytics(ctx context.Context) (map[string]any, error) {
	return i.store.Analytics(ctx)
}

func (i *Interactor) UploadMedia(ctx context.Context, path string) (string, error) {
	return i.store.UploadMedia(ctx, path)
}

func toQuestOutputs(quests []domain.Quest) []journeydto.QuestOutput {
	out := make([]journeydto.QuestOutput, 0, len(quests))
	for _, q := range quests {
		out = append(out, toQuestOutput(q))
	}
	return out
}

func toQuestOutput(q domain.Quest) journeydto.QuestOutput {
	return journeydto.QuestOutput{
		ID:           q.ID,
		Title:        q.Title,
		Description:  q.Description,
		Type:         string(q.Type),
		Difficulty:   string(q.Difficulty),
		Points:       q.Points,
		Duration:     q.Duration,
		Instructions: append([]string(nil), q.Instructions...),
		Completed:    q.Completed,
		CompletedAt:  q.CompletedAt,
		Personalized: q.Personalized,
	}
}

func toReflectionOutput(r domain.Reflection) journeydto.ReflectionOutput {
	return journeydto.ReflectionOutput{
		ID:         r.ID,
		QuestID:    r.QuestID,
		QuestTitle: r.QuestTitle,
		Text:       r.Text,
		PhotoURI:   r.PhotoURI,
		AudioURI:   r.AudioURI,
		Mood:       r.Mood,
		CreatedAt:  r.CreatedAt,
		Points:     r.Points,
	}
}

func toRewardOutput(r domain.Reward) journeydto.RewardOutput {
	return journeydto.RewardOutput{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Cost:        r.Cost,
		Type:        string(r.Type),
		Unlocked:    r.Unlocked,
		Redeemed:    r.Redeemed,
	}
}

func toStandingOutput(s domain.Standing) journeydto.StandingOutput {
	return journeydto.StandingOutput{
		SparkPoints:     s.SparkPoints,
		Level:           s.Level,
		CompletedQuests: s.CompletedQuests,
		Streak:          s.Streak,
		CurrentMood:     s.CurrentMood,
	}
}
