package domain

import (
	"fmt"
	"strings"

	apperrors "sparks/internal/platform/errors"
)

// Profile is the signed-in user. JSON names match the backend user object so
// the persisted snapshot and the API payload share one shape.
type Profile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Age             int      `json:"age"`
	PersonalityType string   `json:"personalityType"`
	EmotionalNeeds  []string `json:"emotionalNeeds"`
	Interests       []string `json:"interests"`
	Goals           []string `json:"goals"`
	CurrentMood     string   `json:"currentMood"`
	SparkPoints     int      `json:"sparkPoints"`
	Level           int      `json:"level"`
	CompletedQuests int      `json:"completedQuests"`
	Streak          int      `json:"streak"`
}

func (p Profile) Clone() Profile {
	out := p
	out.EmotionalNeeds = append([]string(nil), p.EmotionalNeeds...)
	out.Interests = append([]string(nil), p.Interests...)
	out.Goals = append([]string(nil), p.Goals...)
	return out
}

// Normalize clamps counters and canonicalizes the string sets.
func (p Profile) Normalize() Profile {
	out := p.Clone()
	out.EmotionalNeeds = NormalizeSet(out.EmotionalNeeds)
	out.Interests = NormalizeSet(out.Interests)
	out.Goals = NormalizeSet(out.Goals)
	if out.SparkPoints < 0 {
		out.SparkPoints = 0
	}
	if out.Level < 1 {
		out.Level = 1
	}
	if out.CompletedQuests < 0 {
		out.CompletedQuests = 0
	}
	if out.Streak < 0 {
		out.Streak = 0
	}
	return out
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: profile id is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// ProfilePatch carries the fields to overwrite. Nil fields are left alone.
type ProfilePatch struct {
	Name            *string
	Age             *int
	PersonalityType *string
	EmotionalNeeds  []string
	Interests       []string
	Goals           []string
	CurrentMood     *string
	SparkPoints     *int
	Level           *int
	CompletedQuests *int
	Streak          *int
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Age == nil && p.PersonalityType == nil &&
		p.EmotionalNeeds == nil && p.Interests == nil && p.Goals == nil &&
		p.CurrentMood == nil && p.SparkPoints == nil && p.Level == nil &&
		p.CompletedQuests == nil && p.Streak == nil
}

func (p ProfilePatch) Apply(profile Profile) Profile {
	out := profile.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Age != nil {
		out.Age = *p.Age
	}
	if p.PersonalityType != nil {
		out.PersonalityType = *p.PersonalityType
	}
	if p.EmotionalNeeds != nil {
		out.EmotionalNeeds = NormalizeSet(p.EmotionalNeeds)
	}
	if p.Interests != nil {
		out.Interests = NormalizeSet(p.Interests)
	}
	if p.Goals != nil {
		out.Goals = NormalizeSet(p.Goals)
	}
	if p.CurrentMood != nil {
		out.CurrentMood = *p.CurrentMood
	}
	if p.SparkPoints != nil {
		out.SparkPoints = *p.SparkPoints
	}
	if p.Level != nil {
		out.Level = *p.Level
	}
	if p.CompletedQuests != nil {
		out.CompletedQuests = *p.CompletedQuests
	}
	if p.Streak != nil {
		out.Streak = *p.Streak
	}
	return out.Normalize()
}

// NormalizeSet trims entries, drops blanks and duplicates, and keeps first-seen order.
func NormalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
