package dto

import "time"

type QuestOutput struct {
	ID           string
	Title        string
	Description  string
	Type         string
	Difficulty   string
	Points       int
	Duration     string
	Instructions []string
	Completed    bool
	CompletedAt  *time.Time
	Personalized bool
}

type ReflectionOutput struct {
	ID         string
	QuestID    string
	QuestTitle string
	Text       string
	PhotoURI   string
	AudioURI   string
	Mood       string
	CreatedAt  time.Time
	Points     int
}

type RewardOutput struct {
	ID          string
	Title       string
	Description string
	Cost        int
	Type        string
	Unlocked    bool
	Redeemed    bool
}

type StandingOutput struct {
	SparkPoints     int
	Level           int
	CompletedQuests int
	Streak          int
	CurrentMood     string
}

type QuestFilterInput struct {
	Type          string
	Difficulty    string
	CompletedOnly bool
	PendingOnly   bool
}

type AddReflectionInput struct {
	QuestID  string
	Text     string
	Mood     string
	PhotoURI string
	AudioURI string
}

type CompleteQuestOutput struct {
	Quest    QuestOutput
	Standing StandingOutput
}

type AddReflectionOutput struct {
	Reflection ReflectionOutput
	Standing   StandingOutput
}

type RedeemRewardOutput struct {
	Reward   RewardOutput
	Standing StandingOutput
}

type StatusOutput struct {
	Loading bool
	Error   string
}

type LevelProgressOutput struct {
	Level   int
	Current int
	Needed  int
	Percent float64
}

type OverviewOutput struct {
	Standing            StandingOutput
	Progress            LevelProgressOutput
	CompletedQuestCount int
	ReflectionCount     int
	AvgPointsPerQuest   int
	NextQuest           *QuestOutput
	WeeklyGoal          int
	CompletedThisWeek   int
	RedeemedRewardCount int
	RedeemableRewardIDs []string
}

type ExportJournalOutput struct {
	Paths     []string
	IndexPath string
}
