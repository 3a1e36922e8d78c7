package state

import "context"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the chat.
	StateIdle State = "idle"
)

// Session stores the conversation step and scratch data for a chat. Data
// values are strings so sessions survive a round trip through Redis intact.
type Session struct {
	State State             `json:"state"`
	Data  map[string]string `json:"data,omitempty"`
}

// Manager orchestrates chat sessions and FSM state transitions. Backends may
// perform I/O, so every method takes a context.
type Manager interface {
	Get(ctx context.Context, chatID int64) (Session, error)

	State(ctx context.Context, chatID int64) (State, error)
	SetState(ctx context.Context, chatID int64, st State) error

	SetData(ctx context.Context, chatID int64, key, value string) error
	Data(ctx context.Context, chatID int64, key string) (string, bool, error)
	ClearData(ctx context.Context, chatID int64, key string) error

	// Clear removes the whole session, returning the chat to idle.
	Clear(ctx context.Context, chatID int64) error

	InProgress(ctx context.Context, chatID int64) (bool, error)
}
