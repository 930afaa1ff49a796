package domain

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"

	apperrors "sparks/internal/platform/errors"
)

type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

const MinPasswordLength = 6

var PersonalityTypes = []string{
	"creative-explorer",
	"mindful-seeker",
	"social-connector",
	"adventure-spirit",
	"gentle-nurturer",
}

// Credentials is what the credential store persists: the opaque token plus the
// profile snapshot.
type Credentials struct {
	Token   string
	Profile Profile
}

type Session struct {
	State   State
	Profile *Profile
}

// Registration is the onboarding payload.
type Registration struct {
	Name            string
	Email           string
	Password        string
	Age             int
	PersonalityType string
	EmotionalNeeds  []string
	Interests       []string
	Goals           []string
	CurrentMood     string
}

func (r Registration) Normalize() Registration {
	out := r
	out.Name = strings.TrimSpace(r.Name)
	out.Email = strings.TrimSpace(r.Email)
	out.PersonalityType = strings.TrimSpace(r.PersonalityType)
	out.CurrentMood = strings.TrimSpace(r.CurrentMood)
	out.EmotionalNeeds = NormalizeSet(r.EmotionalNeeds)
	out.Interests = NormalizeSet(r.Interests)
	out.Goals = NormalizeSet(r.Goals)
	return out
}

func (r Registration) Validate() error {
	switch {
	case r.Name == "":
		return invalid("name is required")
	case r.Email == "":
		return invalid("email is required")
	case !validEmail(r.Email):
		return invalid("email %q is not valid", r.Email)
	case len(r.Password) < MinPasswordLength:
		return invalid("password must be at least %d characters", MinPasswordLength)
	case r.Age <= 0:
		return invalid("age must be positive")
	case !slices.Contains(PersonalityTypes, r.PersonalityType):
		return invalid("personality type must be one of %s", strings.Join(PersonalityTypes, ", "))
	case len(r.EmotionalNeeds) == 0:
		return invalid("select at least one emotional need")
	case len(r.Interests) == 0:
		return invalid("select at least one interest")
	case len(r.Goals) == 0:
		return invalid("select at least one goal")
	case r.CurrentMood == "":
		return invalid("current mood is required")
	}
	return nil
}

func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return invalid("email and password are required")
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{apperrors.ErrInvalidInput}, args...)...)
}
