package domain

import "time"

const (
	ActionQuestCompleted    = "quest_completed"
	ActionReflectionCreated = "reflection_created"
	ActionRewardRedeemed    = "reward_redeemed"
	ActionMoodUpdated       = "mood_updated"
)

// Event is a behavior record sent to the analytics endpoint.
type Event struct {
	Action   string
	QuestID  string
	Metadata map[string]any
}

// CompletionReceipt is what the backend reports after completing a quest.
type CompletionReceipt struct {
	CompletedAt *time.Time
}

// JournalEntry points at one exported reflection note.
type JournalEntry struct {
	Path       string
	QuestTitle string
	Mood       string
	CreatedAt  time.Time
}

type Status struct {
	Loading bool
	Error   string
}
