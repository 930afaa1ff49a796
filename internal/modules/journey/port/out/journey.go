package out

import (
	"context"

	"sparks/internal/modules/journey/domain"
)

type QuestGateway interface {
	Personalized(ctx context.Context) ([]domain.Quest, error)
	Catalog(ctx context.Context) ([]domain.Quest, error)
	Complete(ctx context.Context, questID string) (domain.CompletionReceipt, error)
}

type ReflectionGateway interface {
	List(ctx context.Context) ([]domain.Reflection, error)
	Create(ctx context.Context, draft domain.ReflectionDraft) (domain.Reflection, error)
	Delete(ctx context.Context, reflectionID string) error
}

type RewardGateway interface {
	List(ctx context.Context) ([]domain.Reward, error)
	Redeem(ctx context.Context, rewardID string) error
}

type MoodGateway interface {
	UpdateMood(ctx context.Context, mood string) error
}

type AnalyticsGateway interface {
	Track(ctx context.Context, event domain.Event) error
	Summary(ctx context.Context) (map[string]any, error)
}

type MediaUploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// StandingSession is the session store seen from this module. Standing fails
// with ErrNotAuthenticated when nobody is signed in.
type StandingSession interface {
	Standing(ctx context.Context) (domain.Standing, error)
	Apply(ctx context.Context, patch domain.StandingPatch) (domain.Standing, error)
}

type JournalStore interface {
	WriteReflection(ctx context.Context, reflection domain.Reflection) (string, error)
	WriteIndex(ctx context.Context, entries []domain.JournalEntry) (string, error)
}
