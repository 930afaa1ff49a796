package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "sparks/internal/platform/errors"
)

type Reflection struct {
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

type ReflectionDraft struct {
	QuestID  string
	Text     string
	Mood     string
	PhotoURI string
	AudioURI string
}

func (d ReflectionDraft) Normalize() ReflectionDraft {
	return ReflectionDraft{
		QuestID:  strings.TrimSpace(d.QuestID),
		Text:     strings.TrimSpace(d.Text),
		Mood:     strings.TrimSpace(d.Mood),
		PhotoURI: strings.TrimSpace(d.PhotoURI),
		AudioURI: strings.TrimSpace(d.AudioURI),
	}
}

func (d ReflectionDraft) Validate() error {
	switch {
	case d.QuestID == "":
		return fmt.Errorf("%w: select a quest to reflect on", apperrors.ErrInvalidInput)
	case d.Text == "":
		return fmt.Errorf("%w: reflection text is required", apperrors.ErrInvalidInput)
	case d.Mood == "":
		return fmt.Errorf("%w: mood is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// ReflectionPoints is the award for reflecting on a quest: half its points, rounded down.
func ReflectionPoints(questPoints int) int {
	if questPoints <= 0 {
		return 0
	}
	return questPoints / 2
}

// PrependReflection returns a new slice with r first.
func PrependReflection(list []Reflection, r Reflection) []Reflection {
	out := make([]Reflection, 0, len(list)+1)
	out = append(out, r)
	return append(out, list...)
}
