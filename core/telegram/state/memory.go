package state

import (
	"context"
	"sync"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryManager constructs an in-memory Manager implementation. Sessions
// do not survive a restart; use the Redis backend for that.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
	}
}

// Get returns a copy of the session for a chat, or an idle session if none exists.
func (m *memoryManager) Get(_ context.Context, chatID int64) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if sess, ok := m.sessions[chatID]; ok {
		return cloneSession(sess), nil
	}
	return Session{State: StateIdle}, nil
}

// State returns the current FSM state of a chat, or StateIdle if none exists.
func (m *memoryManager) State(_ context.Context, chatID int64) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[chatID]; ok {
		return sess.State, nil
	}
	return StateIdle, nil
}

// SetState sets the FSM state for the given chat, creating a session if necessary.
func (m *memoryManager) SetState(_ context.Context, chatID int64, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(chatID).State = st
	return nil
}

// SetData stores a scratch key/value pair for the given chat session.
func (m *memoryManager) SetData(_ context.Context, chatID int64, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.session(chatID)
	if sess.Data == nil {
		sess.Data = make(map[string]string)
	}
	sess.Data[key] = value
	return nil
}

// Data retrieves a scratch value by key for the given chat session.
func (m *memoryManager) Data(_ context.Context, chatID int64, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[chatID]
	if !ok || sess.Data == nil {
		return "", false, nil
	}
	v, ok := sess.Data[key]
	return v, ok, nil
}

// ClearData removes a scratch key/value pair for the given chat session.
func (m *memoryManager) ClearData(_ context.Context, chatID int64, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[chatID]; ok && sess.Data != nil {
		delete(sess.Data, key)
	}
	return nil
}

// Clear removes the entire session for a chat.
func (m *memoryManager) Clear(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
	return nil
}

// InProgress reports whether the chat currently has an active FSM state.
func (m *memoryManager) InProgress(ctx context.Context, chatID int64) (bool, error) {
	st, err := m.State(ctx, chatID)
	if err != nil {
		return false, err
	}
	return st != StateIdle, nil
}

// session returns the live session for a chat, creating it if needed.
// Callers must hold the write lock.
func (m *memoryManager) session(chatID int64) *Session {
	sess, ok := m.sessions[chatID]
	if !ok {
		sess = &Session{State: StateIdle}
		m.sessions[chatID] = sess
	}
	return sess
}

func cloneSession(sess *Session) Session {
	out := Session{State: sess.State}
	if len(sess.Data) > 0 {
		out.Data = make(map[string]string, len(sess.Data))
		for k, v := range sess.Data {
			out.Data[k] = v
		}
	}
	return out
}
