package sparkapi

import "encoding/json"

// User is the backend's user object. It is also the persisted session snapshot.
type User struct {
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

type AuthPayload struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Age             int      `json:"age"`
	PersonalityType string   `json:"personalityType"`
	EmotionalNeeds  []string `json:"emotionalNeeds"`
	Interests       []string `json:"interests"`
	Goals           []string `json:"goals"`
	CurrentMood     string   `json:"currentMood"`
}

// ProfileUpdate is a partial profile; nil fields are omitted from the request.
type ProfileUpdate struct {
	Name            *string  `json:"name,omitempty"`
	Age             *int     `json:"age,omitempty"`
	PersonalityType *string  `json:"personalityType,omitempty"`
	EmotionalNeeds  []string `json:"emotionalNeeds,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	Goals           []string `json:"goals,omitempty"`
}

type Quest struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	Difficulty     string     `json:"difficulty"`
	Points         int        `json:"points"`
	Duration       string     `json:"duration"`
	Instructions   []string   `json:"instructions"`
	Completed      bool       `json:"completed"`
	CompletedAt    *Timestamp `json:"completedAt,omitempty"`
	IsPersonalized bool       `json:"isPersonalized,omitempty"`
}

type Reflection struct {
	ID         string    `json:"id"`
	QuestID    string    `json:"questId"`
	QuestTitle string    `json:"questTitle"`
	Text       string    `json:"text,omitempty"`
	PhotoURI   string    `json:"photoUri,omitempty"`
	AudioURI   string    `json:"audioUri,omitempty"`
	Mood       string    `json:"mood"`
	CreatedAt  Timestamp `json:"createdAt"`
	Points     int       `json:"points"`
}

type CreateReflectionRequest struct {
	QuestID  string `json:"questId"`
	Text     string `json:"text,omitempty"`
	Mood     string `json:"mood"`
	PhotoURI string `json:"photoUri,omitempty"`
	AudioURI string `json:"audioUri,omitempty"`
}

type Reward struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Type        string `json:"type"`
	Unlocked    bool   `json:"unlocked"`
	Redeemed    bool   `json:"redeemed"`
}

type BehaviorEvent struct {
	Action   string         `json:"action"`
	QuestID  string         `json:"questId,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type UploadPayload struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// Raw is used where the backend shape is not fixed (completion receipts, analytics).
type Raw = json.RawMessage
