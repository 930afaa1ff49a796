package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sparks/internal/modules/journey/domain"
	journeyout "sparks/internal/modules/journey/port/out"
	"sparks/internal/platform/clock"
	apperrors "sparks/internal/platform/errors"
	"sparks/internal/platform/id"
	"sparks/internal/platform/logging"
)

type Ports struct {
	Quests      journeyout.QuestGateway
	Reflections journeyout.ReflectionGateway
	Rewards     journeyout.RewardGateway
	Mood        journeyout.MoodGateway
	Analytics   journeyout.AnalyticsGateway
	Media       journeyout.MediaUploader
	Journal     journeyout.JournalStore
	Session     journeyout.StandingSession
}

// DataStore holds the quest, reflection and reward collections of the signed-in
// user. Mutations are serialized by mutate; mu guards the collections.
type DataStore struct {
	ports  Ports
	clock  clock.Clock
	ids    id.Generator
	logger *zap.Logger

	mutate sync.Mutex

	mu          sync.RWMutex
	epoch       uint64
	quests      []domain.Quest
	reflections []domain.Reflection
	rewards     []domain.Reward
	loading     bool
	lastErr     string
}

func NewDataStore(ports Ports, clk clock.Clock, ids id.Generator, logger *zap.Logger) *DataStore {
	return &DataStore{
		ports:  ports,
		clock:  clk,
		ids:    ids,
		logger: logging.OrNop(logger).Named("journey"),
	}
}

// Refresh reloads all three collections in parallel. A failed fetch keeps the
// previous collection; the others are still replaced.
func (s *DataStore) Refresh(ctx context.Context) error {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	if _, err := s.ports.Session.Standing(ctx); err != nil {
		return s.fail(err)
	}
	epoch := s.beginLoading()

	var (
		quests                     []domain.Quest
		reflections                []domain.Reflection
		rewards                    []domain.Reward
		questErr, reflErr, rewrErr error
	)
	g := errgroup.Group{}
	g.Go(func() error {
		quests, questErr = s.ports.Quests.Personalized(ctx)
		return nil
	})
	g.Go(func() error {
		reflections, reflErr = s.ports.Reflections.List(ctx)
		return nil
	})
	g.Go(func() error {
		rewards, rewrErr = s.ports.Rewards.List(ctx)
		return nil
	})
	_ = g.Wait()

	var errs []error
	msgs := make([]string, 0, 3)
	record := func(name string, err error) {
		errs = append(errs, fmt.Errorf("load %s: %w", name, err))
		msgs = append(msgs, name+": "+err.Error())
		s.logger.Warn("refresh failed", zap.String("collection", name), zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// Cleared while fetching; the results belong to a session that is gone.
		return apperrors.ErrNotAuthenticated
	}
	s.loading = false
	if questErr != nil {
		record("quests", questErr)
	} else {
		s.quests = s.validQuests(quests)
	}
	if reflErr != nil {
		record("reflections", reflErr)
	} else {
		s.reflections = append([]domain.Reflection(nil), reflections...)
	}
	if rewrErr != nil {
		record("rewards", rewrErr)
	} else {
		s.rewards = append([]domain.Reward(nil), rewards...)
	}
	if len(errs) == 0 {
		s.lastErr = ""
		s.logger.Debug("refreshed",
			zap.Int("quests", len(s.quests)),
			zap.Int("reflections", len(s.reflections)),
			zap.Int("rewards", len(s.rewards)),
		)
		return nil
	}
	s.lastErr = strings.Join(msgs, "; ")
	return errors.Join(errs...)
}

// Clear drops everything loaded for the previous session. It does not wait
// for in-flight mutations; their results are discarded.
func (s *DataStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.quests = nil
	s.reflections = nil
	s.rewards = nil
	s.loading = false
	s.lastErr = ""
}

func (s *DataStore) Status() domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Status{Loading: s.loading, Error: s.lastErr}
}

func (s *DataStore) Quests(filter domain.QuestFilter) ([]domain.Quest, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneQuests(domain.FilterQuests(s.quests, filter)), nil
}

// Reflections are returned most recent first.
func (s *DataStore) Reflections() []domain.Reflection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Reflection(nil), s.reflections...)
}

func (s *DataStore) Rewards() []domain.Reward {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Reward(nil), s.rewards...)
}

func (s *DataStore) Overview(ctx context.Context) (domain.Overview, error) {
	standing, err := s.ports.Session.Standing(ctx)
	if err != nil {
		return domain.Overview{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.BuildOverview(standing, cloneQuests(s.quests), s.reflections, s.rewards), nil
}

// CompleteQuest marks a quest completed on the backend, then awards its points.
// Completing an already completed quest is rejected without a backend call.
func (s *DataStore) CompleteQuest(ctx context.Context, questID string) (domain.Quest, domain.Standing, error) {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	standing, err := s.ports.Session.Standing(ctx)
	if err != nil {
		return domain.Quest{}, domain.Standing{}, s.fail(err)
	}
	quest, ok := s.findQuest(questID)
	if !ok {
		return domain.Quest{}, standing, s.fail(fmt.Errorf("%w: %s", apperrors.ErrQuestNotFound, questID))
	}
	if quest.Completed {
		return quest, standing, s.fail(fmt.Errorf("%w: %s", apperrors.ErrQuestAlreadyCompleted, quest.Title))
	}

	epoch := s.currentEpoch()
	receipt, err := s.ports.Quests.Complete(ctx, quest.ID)
	if err != nil {
		return quest, standing, s.fail(err)
	}
	updated, err := s.ports.Session.Apply(ctx, standing.CompleteQuest(quest.Points))
	if err != nil {
		return quest, standing, s.fail(fmt.Errorf("update standing: %w", err))
	}

	completedAt := s.clock.Now()
	if receipt.CompletedAt != nil {
		completedAt = *receipt.CompletedAt
	}
	done := quest.Complete(completedAt)
	s.commit(epoch, func() {
		for i := range s.quests {
			if s.quests[i].ID == done.ID {
				s.quests[i] = done
			}
		}
	})

	s.logger.Info("quest completed", zap.String("questID", done.ID), zap.Int("points", done.Points), zap.Int("level", updated.Level))
	s.track(ctx, domain.Event{
		Action:   domain.ActionQuestCompleted,
		QuestID:  done.ID,
		Metadata: map[string]any{"points": done.Points},
	})
	return done, updated, nil
}

// AddReflection records a reflection on a completed quest and awards its points.
// Values reported by the backend take precedence over locally computed ones.
func (s *DataStore) AddReflection(ctx context.Context, draft domain.ReflectionDraft) (domain.Reflection, domain.Standing, error) {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return domain.Reflection{}, domain.Standing{}, s.fail(err)
	}
	standing, err := s.ports.Session.Standing(ctx)
	if err != nil {
		return domain.Reflection{}, domain.Standing{}, s.fail(err)
	}
	quest, ok := s.findQuest(draft.QuestID)
	if !ok {
		return domain.Reflection{}, standing, s.fail(fmt.Errorf("%w: %s", apperrors.ErrQuestNotFound, draft.QuestID))
	}
	if !quest.Completed {
		return domain.Reflection{}, standing, s.fail(fmt.Errorf("%w: %s", apperrors.ErrQuestNotCompleted, quest.Title))
	}

	epoch := s.currentEpoch()
	created, err := s.ports.Reflections.Create(ctx, draft)
	if err != nil {
		return domain.Reflection{}, standing, s.fail(err)
	}
	reflection := s.completeReflection(created, draft, quest)

	updated, err := s.ports.Session.Apply(ctx, standing.AddPoints(reflection.Points))
	if err != nil {
		return domain.Reflection{}, standing, s.fail(fmt.Errorf("update standing: %w", err))
	}
	s.commit(epoch, func() {
		s.reflections = domain.PrependReflection(s.reflections, reflection)
	})

	s.track(ctx, domain.Event{
		Action:   domain.ActionReflectionCreated,
		QuestID:  reflection.QuestID,
		Metadata: map[string]any{"mood": reflection.Mood, "points": reflection.Points},
	})
	return reflection, updated, nil
}

// DeleteReflection removes a reflection. Points it awarded are kept.
func (s *DataStore) DeleteReflection(ctx context.Context, reflectionID string) error {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	if _, err := s.ports.Session.Standing(ctx); err != nil {
		return s.fail(err)
	}
	s.mu.RLock()
	found := false
	for _, r := range s.reflections {
		if r.ID == reflectionID {
			found = true
			break
		}
	}
	s.mu.RUnlock()
	if !found {
		return s.fail(fmt.Errorf("%w: %s", apperrors.ErrReflectionNotFound, reflectionID))
	}

	epoch := s.currentEpoch()
	if err := s.ports.Reflections.Delete(ctx, reflectionID); err != nil {
		return s.fail(err)
	}
	s.commit(epoch, func() {
		kept := make([]domain.Reflection, 0, len(s.reflections))
		for _, r := range s.reflections {
			if r.ID != reflectionID {
				kept = append(kept, r)
			}
		}
		s.reflections = kept
	})
	return nil
}

// CheckRedeem reports whether a reward looks redeemable with the current
// points. It is advisory; RedeemReward leaves the decision to the backend.
func (s *DataStore) CheckRedeem(ctx context.Context, rewardID string) error {
	standing, err := s.ports.Session.Standing(ctx)
	if err != nil {
		return err
	}
	reward, ok := s.findReward(rewardID)
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrRewardNotFound, rewardID)
	}
	return reward.CheckRedeemable(standing.SparkPoints)
}

func (s *DataStore) RedeemReward(ctx context.Context, rewardID string) (domain.Reward, domain.Standing, error) {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	standing, err := s.ports.Session.Standing(ctx)
	if err != nil {
		return domain.Reward{}, domain.Standing{}, s.fail(err)
	}
	reward, ok := s.findReward(rewardID)
	if !ok {
		return domain.Reward{}, standing, s.fail(fmt.Errorf("%w: %s", apperrors.ErrRewardNotFound, rewardID))
	}
	if reward.Redeemed {
		return reward, standing, s.fail(fmt.Errorf("%w: %s", apperrors.ErrRewardAlreadyRedeemed, reward.Title))
	}

	epoch := s.currentEpoch()
	if err := s.ports.Rewards.Redeem(ctx, reward.ID); err != nil {
		return reward, standing, s.fail(err)
	}
	updated, err := s.ports.Session.Apply(ctx, standing.AddPoints(-reward.Cost))
	if err != nil {
		return reward, standing, s.fail(fmt.Errorf("update standing: %w", err))
	}
	redeemed := reward.Redeem()
	s.commit(epoch, func() {
		for i := range s.rewards {
			if s.rewards[i].ID == redeemed.ID {
				s.rewards[i] = redeemed
			}
		}
	})

	s.track(ctx, domain.Event{
		Action:   domain.ActionRewardRedeemed,
		Metadata: map[string]any{"rewardId": redeemed.ID, "cost": redeemed.Cost},
	})
	return redeemed, updated, nil
}

func (s *DataStore) UpdateMood(ctx context.Context, mood string) (domain.Standing, error) {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	mood = strings.TrimSpace(mood)
	if mood == "" {
		return domain.Standing{}, s.fail(fmt.Errorf("%w: mood is required", apperrors.ErrInvalidInput))
	}
	if _, err := s.ports.Session.Standing(ctx); err != nil {
		return domain.Standing{}, s.fail(err)
	}
	if err := s.ports.Mood.UpdateMood(ctx, mood); err != nil {
		return domain.Standing{}, s.fail(err)
	}
	updated, err := s.ports.Session.Apply(ctx, domain.StandingPatch{CurrentMood: &mood})
	if err != nil {
		return domain.Standing{}, s.fail(fmt.Errorf("update standing: %w", err))
	}
	s.clearErr()
	s.track(ctx, domain.Event{
		Action:   domain.ActionMoodUpdated,
		Metadata: map[string]any{"mood": mood},
	})
	return updated, nil
}

// AddSparkPoints awards points locally. The backend is not consulted.
func (s *DataStore) AddSparkPoints(ctx context.Context, points int) (domain.Standing, error) {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	if points <= 0 {
		return domain.Standing{}, s.fail(fmt.Errorf("%w: points must be positive", apperrors.ErrInvalidInput))
	}
	standing, err := s.ports.Session.Standing(ctx)
	if err != nil {
		return domain.Standing{}, s.fail(err)
	}
	updated, err := s.ports.Session.Apply(ctx, standing.AddPoints(points))
	if err != nil {
		return standing, s.fail(fmt.Errorf("update standing: %w", err))
	}
	s.clearErr()
	return updated, nil
}

// Catalog lists every quest the backend offers. The result is not stored.
func (s *DataStore) Catalog(ctx context.Context) ([]domain.Quest, error) {
	if _, err := s.ports.Session.Standing(ctx); err != nil {
		return nil, err
	}
	quests, err := s.ports.Quests.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return s.validQuests(quests), nil
}

func (s *DataStore) Analytics(ctx context.Context) (map[string]any, error) {
	if _, err := s.ports.Session.Standing(ctx); err != nil {
		return nil, err
	}
	return s.ports.Analytics.Summary(ctx)
}

// UploadMedia sends a local file to the backend and returns its remote URL.
func (s *DataStore) UploadMedia(ctx context.Context, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: file path is required", apperrors.ErrInvalidInput)
	}
	if _, err := s.ports.Session.Standing(ctx); err != nil {
		return "", err
	}
	url, err := s.ports.Media.Upload(ctx, path)
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", fmt.Errorf("upload %s: backend returned no url", path)
	}
	return url, nil
}

// ExportJournal writes every loaded reflection as a markdown note and rebuilds
// the journal index.
func (s *DataStore) ExportJournal(ctx context.Context) ([]string, string, error) {
	reflections := s.Reflections()
	paths := make([]string, 0, len(reflections))
	entries := make([]domain.JournalEntry, 0, len(reflections))
	for _, r := range reflections {
		path, err := s.ports.Journal.WriteReflection(ctx, r)
		if err != nil {
			return paths, "", err
		}
		paths = append(paths, path)
		entries = append(entries, domain.JournalEntry{Path: path, QuestTitle: r.QuestTitle, Mood: r.Mood, CreatedAt: r.CreatedAt})
	}
	index, err := s.ports.Journal.WriteIndex(ctx, entries)
	if err != nil {
		return paths, "", err
	}
	return paths, index, nil
}

func (s *DataStore) completeReflection(created domain.Reflection, draft domain.ReflectionDraft, quest domain.Quest) domain.Reflection {
	out := created
	if out.ID == "" {
		out.ID = s.ids.New()
	}
	if out.QuestID == "" {
		out.QuestID = quest.ID
	}
	if out.QuestTitle == "" {
		out.QuestTitle = quest.Title
	}
	if out.Text == "" {
		out.Text = draft.Text
	}
	if out.Mood == "" {
		out.Mood = draft.Mood
	}
	if out.PhotoURI == "" {
		out.PhotoURI = draft.PhotoURI
	}
	if out.AudioURI == "" {
		out.AudioURI = draft.AudioURI
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = s.clock.Now()
	}
	if out.Points <= 0 {
		out.Points = domain.ReflectionPoints(quest.Points)
	}
	return out
}

func (s *DataStore) validQuests(quests []domain.Quest) []domain.Quest {
	out := make([]domain.Quest, 0, len(quests))
	for _, q := range quests {
		if err := q.Validate(); err != nil {
			s.logger.Warn("skipping quest", zap.Error(err))
			continue
		}
		out = append(out, q)
	}
	return out
}

func (s *DataStore) findQuest(questID string) (domain.Quest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.quests {
		if q.ID == questID {
			return q, true
		}
	}
	return domain.Quest{}, false
}

func (s *DataStore) findReward(rewardID string) (domain.Reward, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rewards {
		if r.ID == rewardID {
			return r, true
		}
	}
	return domain.Reward{}, false
}

func (s *DataStore) beginLoading() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	return s.epoch
}

func (s *DataStore) currentEpoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// commit applies fn and clears the store error unless the store was cleared
// after epoch was taken.
func (s *DataStore) commit(epoch uint64, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	fn()
	s.lastErr = ""
}

func (s *DataStore) clearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *DataStore) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}

func (s *DataStore) track(ctx context.Context, event domain.Event) {
	if s.ports.Analytics == nil {
		return
	}
	if err := s.ports.Analytics.Track(ctx, event); err != nil {
		s.logger.Warn("track event", zap.String("action", event.Action), zap.Error(err))
	}
}

func cloneQuests(quests []domain.Quest) []domain.Quest {
	out := make([]domain.Quest, len(quests))
	for i, q := range quests {
		q.Instructions = append([]string(nil), q.Instructions...)
		out[i] = q
	}
	return out
}
