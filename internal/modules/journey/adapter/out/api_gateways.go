package out

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"sparks/internal/modules/journey/domain"
	journeyout "sparks/internal/modules/journey/port/out"
	"sparks/internal/platform/logging"
	"sparks/internal/platform/sparkapi"
)

// completedAtPaths are the places a completion response may carry its timestamp.
var completedAtPaths = []string{"completedAt", "quest.completedAt", "userQuest.completedAt"}

type APIQuestGateway struct {
	client *sparkapi.Client
	logger *zap.Logger
}

func NewAPIQuestGateway(client *sparkapi.Client, logger *zap.Logger) journeyout.QuestGateway {
	return &APIQuestGateway{client: client, logger: logging.OrNop(logger)}
}

func (g *APIQuestGateway) Personalized(ctx context.Context) ([]domain.Quest, error) {
	res := g.client.GetPersonalizedQuests(ctx)
	if err := res.Err(); err != nil {
		return nil, err
	}
	return questsFromAPI(res.Data, g.logger), nil
}

func (g *APIQuestGateway) Catalog(ctx context.Context) ([]domain.Quest, error) {
	res := g.client.GetQuests(ctx)
	if err := res.Err(); err != nil {
		return nil, err
	}
	return questsFromAPI(res.Data, g.logger), nil
}

func (g *APIQuestGateway) Complete(ctx context.Context, questID string) (domain.CompletionReceipt, error) {
	res := g.client.CompleteQuest(ctx, questID)
	if err := res.Err(); err != nil {
		return domain.CompletionReceipt{}, err
	}
	return parseReceipt(res.Data), nil
}

func parseReceipt(raw []byte) domain.CompletionReceipt {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return domain.CompletionReceipt{}
	}
	for _, path := range completedAtPaths {
		value := gjson.GetBytes(raw, path)
		if value.Type != gjson.String && value.Type != gjson.Number {
			continue
		}
		var ts sparkapi.Timestamp
		if err := json.Unmarshal([]byte(value.Raw), &ts); err == nil && !ts.IsZero() {
			return domain.CompletionReceipt{CompletedAt: ts.Ptr()}
		}
	}
	return domain.CompletionReceipt{}
}

func questsFromAPI(in []sparkapi.Quest, logger *zap.Logger) []domain.Quest {
	out := make([]domain.Quest, 0, len(in))
	for _, q := range in {
		if q.CompletedAt != nil && q.CompletedAt.Invalid() {
			logger.Warn("unreadable quest timestamp", zap.String("questID", q.ID), zap.String("completedAt", q.CompletedAt.Raw))
		}
		out = append(out, domain.Quest{
			ID:           q.ID,
			Title:        q.Title,
			Description:  q.Description,
			Type:         domain.QuestType(q.Type),
			Difficulty:   domain.Difficulty(q.Difficulty),
			Points:       q.Points,
			Duration:     q.Duration,
			Instructions: q.Instructions,
			Completed:    q.Completed,
			CompletedAt:  q.CompletedAt.Ptr(),
			Personalized: q.IsPersonalized,
		})
	}
	return out
}

type APIReflectionGateway struct {
	client *sparkapi.Client
	logger *zap.Logger
}

func NewAPIReflectionGateway(client *sparkapi.Client, logger *zap.Logger) journeyout.ReflectionGateway {
	return &APIReflectionGateway{client: client, logger: logging.OrNop(logger)}
}

func (g *APIReflectionGateway) List(ctx context.Context) ([]domain.Reflection, error) {
	res := g.client.GetReflections(ctx)
	if err := res.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Reflection, 0, len(res.Data))
	for _, r := range res.Data {
		out = append(out, reflectionFromAPI(r, g.logger))
	}
	return out, nil
}

func (g *APIReflectionGateway) Create(ctx context.Context, draft domain.ReflectionDraft) (domain.Reflection, error) {
	res := g.client.CreateReflection(ctx, sparkapi.CreateReflectionRequest{
		QuestID:  draft.QuestID,
		Text:     draft.Text,
		Mood:     draft.Mood,
		PhotoURI: draft.PhotoURI,
		AudioURI: draft.AudioURI,
	})
	if err := res.Err(); err != nil {
		return domain.Reflection{}, err
	}
	return reflectionFromAPI(res.Data, g.logger), nil
}

func (g *APIReflectionGateway) Delete(ctx context.Context, reflectionID string) error {
	return g.client.DeleteReflection(ctx, reflectionID).Err()
}

func reflectionFromAPI(r sparkapi.Reflection, logger *zap.Logger) domain.Reflection {
	if r.CreatedAt.Invalid() {
		logger.Warn("unreadable reflection timestamp", zap.String("reflectionID", r.ID), zap.String("createdAt", r.CreatedAt.Raw))
	}
	return domain.Reflection{
		ID:         r.ID,
		QuestID:    r.QuestID,
		QuestTitle: r.QuestTitle,
		Text:       r.Text,
		PhotoURI:   r.PhotoURI,
		AudioURI:   r.AudioURI,
		Mood:       r.Mood,
		CreatedAt:  r.CreatedAt.Time,
		Points:     r.Points,
	}
}

type APIRewardGateway struct {
	client *sparkapi.Client
}

func NewAPIRewardGateway(client *sparkapi.Client) journeyout.RewardGateway {
	return &APIRewardGateway{client: client}
}

func (g *APIRewardGateway) List(ctx context.Context) ([]domain.Reward, error) {
	res := g.client.GetRewards(ctx)
	if err := res.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Reward, 0, len(res.Data))
	for _, r := range res.Data {
		out = append(out, domain.Reward{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Cost:        r.Cost,
			Type:        domain.RewardType(r.Type),
			Unlocked:    r.Unlocked,
			Redeemed:    r.Redeemed,
		})
	}
	return out, nil
}

func (g *APIRewardGateway) Redeem(ctx context.Context, rewardID string) error {
	return g.client.RedeemReward(ctx, rewardID).Err()
}

type APIMoodGateway struct {
	client *sparkapi.Client
}

func NewAPIMoodGateway(client *sparkapi.Client) journeyout.MoodGateway {
	return &APIMoodGateway{client: client}
}

func (g *APIMoodGateway) UpdateMood(ctx context.Context, mood string) error {
	return g.client.UpdateMood(ctx, mood).Err()
}

type APIAnalyticsGateway struct {
	client *sparkapi.Client
}

func NewAPIAnalyticsGateway(client *sparkapi.Client) journeyout.AnalyticsGateway {
	return &APIAnalyticsGateway{client: client}
}

func (g *APIAnalyticsGateway) Track(ctx context.Context, event domain.Event) error {
	return g.client.TrackBehavior(ctx, sparkapi.BehaviorEvent{
		Action:   event.Action,
		QuestID:  event.QuestID,
		Metadata: event.Metadata,
	}).Err()
}

func (g *APIAnalyticsGateway) Summary(ctx context.Context) (map[string]any, error) {
	res := g.client.GetAnalytics(ctx)
	if err := res.Err(); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return map[string]any{}, nil
	}
	return res.Data, nil
}

type APIMediaUploader struct {
	client *sparkapi.Client
}

func NewAPIMediaUploader(client *sparkapi.Client) journeyout.MediaUploader {
	return &APIMediaUploader{client: client}
}

func (u *APIMediaUploader) Upload(ctx context.Context, path string) (string, error) {
	res := u.client.UploadFile(ctx, path)
	if err := res.Err(); err != nil {
		return "", err
	}
	return res.Data.URL, nil
}
