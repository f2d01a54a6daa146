package models

import "time"

// UserData is the per-user free-form blob (profile/settings/progress).
type UserData struct {
	Profile   map[string]any `json:"profile"`
	Settings  map[string]any `json:"settings"`
	Progress  map[string]any `json:"progress"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty"`
}

// NewUserData returns the default shape with empty, non-nil maps.
func NewUserData() UserData {
	return UserData{
		Profile:  map[string]any{},
		Settings: map[string]any{},
		Progress: map[string]any{},
	}
}

type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadDate time.Time `json:"uploadDate"`
	Category   string    `json:"category"`
}

// DocumentPatch renames or recategorizes a document.
type DocumentPatch struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
}

type FormEntry struct {
	Data      map[string]any `json:"data"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Forms maps a form type (e.g. "ds160") to its last saved state.
type Forms map[string]FormEntry

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// CivicsProgress tracks civics-test practice.
type CivicsProgress struct {
	TotalAnswered      int        `json:"totalAnswered"`
	CorrectAnswers     int        `json:"correctAnswers"`
	QuizzesTaken       int        `json:"quizzesTaken"`
	BestScore          int        `json:"bestScore"`
	MissedQuestions    []string   `json:"missedQuestions"`
	CompletedQuestions []string   `json:"completedQuestions"`
	LastStudied        *time.Time `json:"lastStudied,omitempty"`
}

// NewCivicsProgress returns the default shape with empty, non-nil slices.
func NewCivicsProgress() CivicsProgress {
	return CivicsProgress{MissedQuestions: []string{}, CompletedQuestions: []string{}}
}

// Settings is the global, not per-user, settings blob.
type Settings map[string]any
