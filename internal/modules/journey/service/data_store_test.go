package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"sparks/internal/modules/journey/domain"
	"sparks/internal/modules/journey/service"
	"sparks/internal/platform/clock"
	apperrors "sparks/internal/platform/errors"
)

var now = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

type fakeQuests struct {
	mu          sync.Mutex
	list        []domain.Quest
	listErr     error
	completes   int
	completeErr error
	receipt     domain.CompletionReceipt
}

func (f *fakeQuests) Personalized(context.Context) ([]domain.Quest, error) {
	return append([]domain.Quest(nil), f.list...), f.listErr
}

func (f *fakeQuests) Catalog(context.Context) ([]domain.Quest, error) {
	return append([]domain.Quest(nil), f.list...), f.listErr
}

func (f *fakeQuests) Complete(context.Context, string) (domain.CompletionReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completes++
	return f.receipt, f.completeErr
}

type fakeReflections struct {
	list      []domain.Reflection
	listErr   error
	created   domain.Reflection
	createErr error
	deleted   []string
}

func (f *fakeReflections) List(context.Context) ([]domain.Reflection, error) {
	return append([]domain.Reflection(nil), f.list...), f.listErr
}

func (f *fakeReflections) Create(context.Context, domain.ReflectionDraft) (domain.Reflection, error) {
	return f.created, f.createErr
}

func (f *fakeReflections) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRewards struct {
	list      []domain.Reward
	listErr   error
	redeemErr error
	redeems   int
}

func (f *fakeRewards) List(context.Context) ([]domain.Reward, error) {
	return append([]domain.Reward(nil), f.list...), f.listErr
}

func (f *fakeRewards) Redeem(context.Context, string) error {
	f.redeems++
	return f.redeemErr
}

type fakeMood struct {
	moods []string
}

func (f *fakeMood) UpdateMood(_ context.Context, mood string) error {
	f.moods = append(f.moods, mood)
	return nil
}

type fakeAnalytics struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (f *fakeAnalytics) Track(_ context.Context, event domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *fakeAnalytics) Summary(context.Context) (map[string]any, error) {
	return map[string]any{"totalQuests": 3.0}, nil
}

type fakeSession struct {
	mu       sync.Mutex
	standing domain.Standing
	signedIn bool
	applyErr error
}

func (f *fakeSession) Standing(context.Context) (domain.Standing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.signedIn {
		return domain.Standing{}, apperrors.ErrNotAuthenticated
	}
	return f.standing, nil
}

func (f *fakeSession) Apply(_ context.Context, patch domain.StandingPatch) (domain.Standing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return domain.Standing{}, f.applyErr
	}
	f.standing = patch.Apply(f.standing)
	return f.standing, nil
}

type fakeIDs struct{}

func (fakeIDs) New() string { return "local-1" }

type fixture struct {
	quests      *fakeQuests
	reflections *fakeReflections
	rewards     *fakeRewards
	mood        *fakeMood
	analytics   *fakeAnalytics
	session     *fakeSession
	store       *service.DataStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		quests: &fakeQuests{list: []domain.Quest{
			{ID: "q1", Title: "Mindful Morning", Type: domain.QuestMindfulness, Difficulty: domain.DifficultyEasy, Points: 40},
			{ID: "q2", Title: "Sketch a Feeling", Type: domain.QuestCreativity, Difficulty: domain.DifficultyMedium, Points: 60, Completed: true},
		}},
		reflections: &fakeReflections{list: []domain.Reflection{{ID: "ref-0", QuestID: "q2", Points: 30}}},
		rewards: &fakeRewards{list: []domain.Reward{
			{ID: "r1", Title: "Golden Frame", Cost: 100, Unlocked: true},
			{ID: "r2", Title: "Secret Prompt", Cost: 20, Unlocked: true},
		}},
		mood:      &fakeMood{},
		analytics: &fakeAnalytics{},
		session:   &fakeSession{signedIn: true, standing: domain.Standing{UserID: "u1", SparkPoints: 80, Level: 1, CompletedQuests: 1}},
	}
	f.store = service.NewDataStore(service.Ports{
		Quests:      f.quests,
		Reflections: f.reflections,
		Rewards:     f.rewards,
		Mood:        f.mood,
		Analytics:   f.analytics,
		Session:     f.session,
	}, clock.Fixed(now), fakeIDs{}, nil)
	return f
}

func (f *fixture) refresh(t *testing.T) {
	t.Helper()
	if err := f.store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
}

func TestRefreshLoadsAllCollections(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)

	quests, err := f.store.Quests(domain.QuestFilter{})
	if err != nil {
		t.Fatalf("quests: %v", err)
	}
	if len(quests) != 2 || len(f.store.Reflections()) != 1 || len(f.store.Rewards()) != 2 {
		t.Fatalf("collections not loaded")
	}
	if status := f.store.Status(); status.Loading || status.Error != "" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestRefreshRequiresSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.session.signedIn = false
	if err := f.store.Refresh(context.Background()); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
}

func TestRefreshPartialFailureKeepsOtherCollections(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)

	f.reflections.listErr = errors.New("Network error")
	f.rewards.list = append(f.rewards.list, domain.Reward{ID: "r3", Title: "Token", Cost: 5, Unlocked: true})
	err := f.store.Refresh(context.Background())
	if err == nil {
		t.Fatalf("expected refresh error")
	}

	quests, _ := f.store.Quests(domain.QuestFilter{})
	if len(quests) != 2 {
		t.Fatalf("quests should still be exposed")
	}
	if len(f.store.Rewards()) != 3 {
		t.Fatalf("rewards should be replaced by the fresh fetch")
	}
	if len(f.store.Reflections()) != 1 {
		t.Fatalf("previous reflections should be kept")
	}
	status := f.store.Status()
	if !strings.Contains(status.Error, "reflections") || strings.Contains(status.Error, "quests") {
		t.Fatalf("unexpected store error: %q", status.Error)
	}
}

func TestRefreshSkipsInvalidQuests(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.quests.list = append(f.quests.list, domain.Quest{Title: "No ID", Points: 10})
	f.refresh(t)
	quests, _ := f.store.Quests(domain.QuestFilter{})
	if len(quests) != 2 {
		t.Fatalf("invalid quest should be skipped, got %d", len(quests))
	}
}

func TestCompleteQuestAwardsPointsAndLevel(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)

	quest, standing, err := f.store.CompleteQuest(context.Background(), "q1")
	if err != nil {
		t.Fatalf("complete quest: %v", err)
	}
	if standing.SparkPoints != 120 || standing.Level != 2 || standing.CompletedQuests != 2 {
		t.Fatalf("unexpected standing: %+v", standing)
	}
	if standing.Level != domain.LevelForPoints(standing.SparkPoints) {
		t.Fatalf("level out of sync with points")
	}
	if !quest.Completed || quest.CompletedAt == nil || !quest.CompletedAt.Equal(now) {
		t.Fatalf("unexpected quest: %+v", quest)
	}
	listed, _ := f.store.Quests(domain.QuestFilter{CompletedOnly: true})
	if len(listed) != 2 {
		t.Fatalf("quest not flipped in the collection")
	}
	if len(f.analytics.events) != 1 || f.analytics.events[0].Action != domain.ActionQuestCompleted || f.analytics.events[0].Metadata["points"] != 40 {
		t.Fatalf("unexpected analytics: %+v", f.analytics.events)
	}
}

func TestCompleteQuestUsesServerTimestamp(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	server := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	f.quests.receipt = domain.CompletionReceipt{CompletedAt: &server}
	f.refresh(t)

	quest, _, err := f.store.CompleteQuest(context.Background(), "q1")
	if err != nil {
		t.Fatalf("complete quest: %v", err)
	}
	if !quest.CompletedAt.Equal(server) {
		t.Fatalf("expected server timestamp, got %v", quest.CompletedAt)
	}
}

func TestCompleteQuestTwiceDoesNotAwardAgain(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)

	if _, _, err := f.store.CompleteQuest(context.Background(), "q1"); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	_, standing, err := f.store.CompleteQuest(context.Background(), "q1")
	if !errors.Is(err, apperrors.ErrQuestAlreadyCompleted) {
		t.Fatalf("expected already completed, got %v", err)
	}
	if standing.SparkPoints != 120 {
		t.Fatalf("points awarded twice: %d", standing.SparkPoints)
	}
	if f.quests.completes != 1 {
		t.Fatalf("backend called %d times", f.quests.completes)
	}
}

func TestCompleteQuestBackendFailureChangesNothing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)
	f.quests.completeErr = errors.New("Quest already completed today")

	if _, _, err := f.store.CompleteQuest(context.Background(), "q1"); err == nil {
		t.Fatalf("expected backend error")
	}
	if f.session.standing.SparkPoints != 80 {
		t.Fatalf("points changed on failure")
	}
	pending, _ := f.store.Quests(domain.QuestFilter{PendingOnly: true})
	if len(pending) != 1 {
		t.Fatalf("quest flipped on failure")
	}
	if got := f.store.Status().Error; got != "Quest already completed today" {
		t.Fatalf("store error not recorded: %q", got)
	}
}

func TestCompleteUnknownQuest(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)
	if _, _, err := f.store.CompleteQuest(context.Background(), "nope"); !errors.Is(err, apperrors.ErrQuestNotFound) {
		t.Fatalf("expected quest not found, got %v", err)
	}
}

func TestAddReflectionAwardsHalfPointsAndPrepends(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.reflections.created = domain.Reflection{ID: "ref-1", QuestID: "q2", Text: "I drew the rain"}
	f.refresh(t)

	reflection, standing, err := f.store.AddReflection(context.Background(), domain.ReflectionDraft{
		QuestID: "q2",
		Text:    "I drew the rain",
		Mood:    "calm",
	})
	if err != nil {
		t.Fatalf("add reflection: %v", err)
	}
	if reflection.Points != 30 || reflection.QuestTitle != "Sketch a Feeling" || reflection.Mood != "calm" {
		t.Fatalf("unexpected reflection: %+v", reflection)
	}
	if !reflection.CreatedAt.Equal(now) {
		t.Fatalf("expected local timestamp, got %v", reflection.CreatedAt)
	}
	if standing.SparkPoints != 110 || standing.Level != 2 {
		t.Fatalf("unexpected standing: %+v", standing)
	}
	list := f.store.Reflections()
	if len(list) != 2 || list[0].ID != "ref-1" {
		t.Fatalf("reflection not prepended: %+v", list)
	}
	last := f.analytics.events[len(f.analytics.events)-1]
	if last.Action != domain.ActionReflectionCreated || last.Metadata["points"] != 30 {
		t.Fatalf("unexpected analytics: %+v", last)
	}
}

func TestAddReflectionServerPointsWin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.reflections.created = domain.Reflection{ID: "ref-1", Points: 45}
	f.refresh(t)

	reflection, standing, err := f.store.AddReflection(context.Background(), domain.ReflectionDraft{QuestID: "q2", Text: "x", Mood: "joy"})
	if err != nil {
		t.Fatalf("add reflection: %v", err)
	}
	if reflection.Points != 45 || standing.SparkPoints != 125 {
		t.Fatalf("server points should win: %+v %+v", reflection, standing)
	}
}

func TestAddReflectionPreconditions(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)

	cases := []struct {
		draft domain.ReflectionDraft
		want  error
	}{
		{domain.ReflectionDraft{QuestID: "q2", Mood: "calm"}, apperrors.ErrInvalidInput},
		{domain.ReflectionDraft{QuestID: "q2", Text: "x"}, apperrors.ErrInvalidInput},
		{domain.ReflectionDraft{QuestID: "missing", Text: "x", Mood: "calm"}, apperrors.ErrQuestNotFound},
		{domain.ReflectionDraft{QuestID: "q1", Text: "x", Mood: "calm"}, apperrors.ErrQuestNotCompleted},
	}
	for _, tc := range cases {
		if _, _, err := f.store.AddReflection(context.Background(), tc.draft); !errors.Is(err, tc.want) {
			t.Fatalf("draft %+v: expected %v, got %v", tc.draft, tc.want, err)
		}
	}
	if len(f.store.Reflections()) != 1 || f.session.standing.SparkPoints != 80 {
		t.Fatalf("failed reflections must not change state")
	}
}

func TestDeleteReflectionKeepsPoints(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)

	if err := f.store.DeleteReflection(context.Background(), "ref-0"); err != nil {
		t.Fatalf("delete reflection: %v", err)
	}
	if len(f.store.Reflections()) != 0 || len(f.reflections.deleted) != 1 {
		t.Fatalf("reflection not deleted")
	}
	if f.session.standing.SparkPoints != 80 {
		t.Fatalf("points should be kept")
	}
	if err := f.store.DeleteReflection(context.Background(), "ref-0"); !errors.Is(err, apperrors.ErrReflectionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRedeemRewardRejectedByBackend(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.session.standing = domain.Standing{UserID: "u1", SparkPoints: 50, Level: 1}
	f.rewards.redeemErr = errors.New("Insufficient spark points")
	f.refresh(t)

	if _, _, err := f.store.RedeemReward(context.Background(), "r1"); err == nil {
		t.Fatalf("expected backend rejection")
	}
	for _, r := range f.store.Rewards() {
		if r.ID == "r1" && r.Redeemed {
			t.Fatalf("reward marked redeemed after rejection")
		}
	}
	if f.session.standing.SparkPoints != 50 {
		t.Fatalf("points changed: %d", f.session.standing.SparkPoints)
	}
	if err := f.store.CheckRedeem(context.Background(), "r1"); !errors.Is(err, apperrors.ErrInsufficientPoints) {
		t.Fatalf("expected insufficient points from check, got %v", err)
	}
}

func TestRedeemRewardDeductsCost(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.session.standing = domain.Standing{UserID: "u1", SparkPoints: 110, Level: 2}
	f.refresh(t)

	reward, standing, err := f.store.RedeemReward(context.Background(), "r2")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if !reward.Redeemed || standing.SparkPoints != 90 || standing.Level != 1 {
		t.Fatalf("unexpected redeem result: %+v %+v", reward, standing)
	}
	if _, _, err := f.store.RedeemReward(context.Background(), "r2"); !errors.Is(err, apperrors.ErrRewardAlreadyRedeemed) {
		t.Fatalf("expected already redeemed, got %v", err)
	}
	if f.rewards.redeems != 1 {
		t.Fatalf("backend called %d times", f.rewards.redeems)
	}
}

func TestUpdateMood(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	if _, err := f.store.UpdateMood(context.Background(), "  "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	standing, err := f.store.UpdateMood(context.Background(), "energized")
	if err != nil {
		t.Fatalf("update mood: %v", err)
	}
	if standing.CurrentMood != "energized" || len(f.mood.moods) != 1 {
		t.Fatalf("mood not updated: %+v", standing)
	}
	if f.store.Status().Error != "" {
		t.Fatalf("successful mutation should clear the store error")
	}
}

func TestAddSparkPoints(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	if _, err := f.store.AddSparkPoints(context.Background(), 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	standing, err := f.store.AddSparkPoints(context.Background(), 25)
	if err != nil {
		t.Fatalf("add points: %v", err)
	}
	if standing.SparkPoints != 105 || standing.Level != 2 {
		t.Fatalf("unexpected standing: %+v", standing)
	}
}

func TestStandingPersistFailureLeavesQuestPending(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)
	f.session.applyErr = errors.New("disk full")

	if _, _, err := f.store.CompleteQuest(context.Background(), "q1"); err == nil {
		t.Fatalf("expected standing error")
	}
	pending, _ := f.store.Quests(domain.QuestFilter{PendingOnly: true})
	if len(pending) != 1 {
		t.Fatalf("quest should stay pending")
	}
}

func TestAnalyticsFailureDoesNotFailMutation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.analytics.err = errors.New("Network error")
	f.refresh(t)
	if _, _, err := f.store.CompleteQuest(context.Background(), "q1"); err != nil {
		t.Fatalf("analytics failure leaked: %v", err)
	}
}

func TestClearDropsCollections(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)
	f.store.Clear()

	quests, _ := f.store.Quests(domain.QuestFilter{})
	if len(quests) != 0 || len(f.store.Reflections()) != 0 || len(f.store.Rewards()) != 0 {
		t.Fatalf("collections survived clear")
	}
}

func TestConcurrentCompletionsDoNotInterleave(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.quests.list = []domain.Quest{
		{ID: "a", Title: "A", Points: 40},
		{ID: "b", Title: "B", Points: 40},
		{ID: "c", Title: "C", Points: 40},
	}
	f.refresh(t)

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "a"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _, _ = f.store.CompleteQuest(context.Background(), id)
		}(id)
	}
	wg.Wait()

	if got := f.session.standing.SparkPoints; got != 200 {
		t.Fatalf("expected 200 points, got %d", got)
	}
	if got := f.session.standing.Level; got != 3 {
		t.Fatalf("expected level 3, got %d", got)
	}
	if f.quests.completes != 3 {
		t.Fatalf("expected 3 backend completions, got %d", f.quests.completes)
	}
}

func TestOverview(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.refresh(t)
	overview, err := f.store.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.NextQuest == nil || overview.NextQuest.ID != "q1" {
		t.Fatalf("unexpected next quest: %+v", overview.NextQuest)
	}
	if overview.Progress.Current != 80 || overview.AvgPointsPerQuest != 80 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
}
