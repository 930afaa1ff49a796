package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	apperrors "sparks/internal/platform/errors"
)

type QuestType string

const (
	QuestSelfReflection QuestType = "self-reflection"
	QuestMindfulness    QuestType = "mindfulness"
	QuestCreativity     QuestType = "creativity"
	QuestSocial         QuestType = "social"
	QuestAdventure      QuestType = "adventure"
	QuestWellness       QuestType = "wellness"
)

var QuestTypes = []QuestType{QuestSelfReflection, QuestMindfulness, QuestCreativity, QuestSocial, QuestAdventure, QuestWellness}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// FilterAll matches every quest type or difficulty.
const FilterAll = "all"

type Quest struct {
	ID           string
	Title        string
	Description  string
	Type         QuestType
	Difficulty   Difficulty
	Points       int
	Duration     string
	Instructions []string
	Completed    bool
	CompletedAt  *time.Time
	Personalized bool
}

// Validate flags quests the backend sent in a shape the client cannot use.
// Unknown types and difficulties are tolerated for forward compatibility.
func (q Quest) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("%w: quest id is required", apperrors.ErrInvalidInput)
	}
	if q.Points < 0 {
		return fmt.Errorf("%w: quest %s has negative points", apperrors.ErrInvalidInput, q.ID)
	}
	return nil
}

// Complete flips the quest to completed. Completion is one-way.
func (q Quest) Complete(at time.Time) Quest {
	out := q
	out.Completed = true
	ts := at
	out.CompletedAt = &ts
	return out
}

type QuestFilter struct {
	Type          string
	Difficulty    string
	CompletedOnly bool
	PendingOnly   bool
}

func (f QuestFilter) Validate() error {
	if f.Type != "" && f.Type != FilterAll && !slices.Contains(QuestTypes, QuestType(f.Type)) {
		return fmt.Errorf("%w: unknown quest type %q", apperrors.ErrInvalidInput, f.Type)
	}
	if f.Difficulty != "" && f.Difficulty != FilterAll && !slices.Contains(Difficulties, Difficulty(f.Difficulty)) {
		return fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrInvalidInput, f.Difficulty)
	}
	if f.CompletedOnly && f.PendingOnly {
		return fmt.Errorf("%w: completed and pending filters are exclusive", apperrors.ErrInvalidInput)
	}
	return nil
}

func (f QuestFilter) Match(q Quest) bool {
	if f.Type != "" && f.Type != FilterAll && string(q.Type) != f.Type {
		return false
	}
	if f.Difficulty != "" && f.Difficulty != FilterAll && string(q.Difficulty) != f.Difficulty {
		return false
	}
	if f.CompletedOnly && !q.Completed {
		return false
	}
	if f.PendingOnly && q.Completed {
		return false
	}
	return true
}

func FilterQuests(quests []Quest, f QuestFilter) []Quest {
	out := make([]Quest, 0, len(quests))
	for _, q := range quests {
		if f.Match(q) {
			out = append(out, q)
		}
	}
	return out
}
