package dto

type RegisterInput struct {
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

type LoginInput struct {
	Email    string
	Password string
}

// ProfileOutput is a copy of the signed-in user.
type ProfileOutput struct {
	ID              string
	Name            string
	Email           string
	Age             int
	PersonalityType string
	EmotionalNeeds  []string
	Interests       []string
	Goals           []string
	CurrentMood     string
	SparkPoints     int
	Level           int
	CompletedQuests int
	Streak          int
}

type SessionOutput struct {
	State         string
	Authenticated bool
	Profile       *ProfileOutput
}

// UpdateUserInput is a local patch on the profile; nil fields are untouched.
type UpdateUserInput struct {
	CurrentMood     *string
	SparkPoints     *int
	Level           *int
	CompletedQuests *int
	Streak          *int
}

// UpdateProfileInput is sent to the backend; nil fields are not sent.
type UpdateProfileInput struct {
	Name            *string
	Age             *int
	PersonalityType *string
	EmotionalNeeds  []string
	Interests       []string
	Goals           []string
}
