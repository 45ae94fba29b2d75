// README: Per-user dialogue session: transcript, trip state, last options.
package session

import (
	"errors"

	"travelai/internal/modules/schema"
)

var (
	// ErrBadRequest is returned when the user identifier is empty or absent.
	ErrBadRequest = errors.New("user id is required")
	// ErrNotFound is returned when a session is referenced before initialization.
	ErrNotFound = errors.New("session not found")
)

// Greeting seeds every new session's transcript. The "Bot: " prefix is part
// of the transcript format the role mapper relies on.
const Greeting = "Bot: Hello! I am here to help you plan your vacation. Let's get started! Where are you planning to visit this time for vacation?"

// Session is the per-user mutable dialogue state. It is mutated exactly
// once per completed turn, with full-replacement writes (last-writer-wins).
type Session struct {
	UserID string `json:"user_id"`
	// Transcript is append-only within a session; lines carry a
	// "User: " or "Bot: " speaker tag.
	Transcript []string `json:"chat_history"`
	// State is the current nested trip schema.
	State map[string]any `json:"current_json"`
	// Options are the option strings for the field currently being asked
	// about, or empty.
	Options []string `json:"options"`
}

// New returns a freshly bootstrapped session: greeting transcript, all-unset
// schema, no options.
func New(userID string) *Session {
	return &Session{
		UserID:     userID,
		Transcript: []string{Greeting},
		State:      schema.NewNested(),
		Options:    []string{},
	}
}
