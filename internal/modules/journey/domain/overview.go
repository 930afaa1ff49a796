package domain

import "math"

type Overview struct {
	Standing            Standing
	Progress            LevelProgress
	CompletedQuestCount int
	ReflectionCount     int
	AvgPointsPerQuest   int
	NextQuest           *Quest
	WeeklyGoal          int
	CompletedThisWeek   int
	RedeemedRewardCount int
	RedeemableRewardIDs []string
}

// BuildOverview derives the dashboard numbers from the current collections.
// Streak and weekly figures are display approximations; the backend owns the
// real accounting.
func BuildOverview(standing Standing, quests []Quest, reflections []Reflection, rewards []Reward) Overview {
	out := Overview{
		Standing:          standing,
		Progress:          standing.Progress(),
		ReflectionCount:   len(reflections),
		WeeklyGoal:        WeeklyGoal,
		CompletedThisWeek: standing.CompletedQuests % 7,
	}
	for i := range quests {
		if quests[i].Completed {
			out.CompletedQuestCount++
			continue
		}
		if out.NextQuest == nil {
			next := quests[i]
			out.NextQuest = &next
		}
	}
	// Averaged over the quests completed in the loaded list, not the lifetime counter.
	if out.CompletedQuestCount > 0 {
		out.AvgPointsPerQuest = int(math.Round(float64(standing.SparkPoints) / float64(out.CompletedQuestCount)))
	}
	for _, r := range rewards {
		if r.Redeemed {
			out.RedeemedRewardCount++
			continue
		}
		if r.CheckRedeemable(standing.SparkPoints) == nil {
			out.RedeemableRewardIDs = append(out.RedeemableRewardIDs, r.ID)
		}
	}
	return out
}
