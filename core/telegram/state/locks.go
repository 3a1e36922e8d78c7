package state

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// ChatLocks serializes update handling per chat so a second tap cannot
// observe a half-written session. Different chats proceed in parallel.
type ChatLocks struct {
	mu    sync.Mutex
	locks map[int64]*chatLock
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

// NewChatLocks creates an empty lock table.
func NewChatLocks() *ChatLocks {
	return &ChatLocks{locks: make(map[int64]*chatLock)}
}

// Lock acquires the per-chat lock, blocking while the chat has an update in flight.
func (c *ChatLocks) Lock(chatID int64) {
	c.mu.Lock()
	l, ok := c.locks[chatID]
	if !ok {
		l = &chatLock{}
		c.locks[chatID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
}

// Unlock releases the per-chat lock and drops the entry once nobody waits on it.
func (c *ChatLocks) Unlock(chatID int64) {
	c.mu.Lock()
	l, ok := c.locks[chatID]
	if ok {
		l.refs--
		if l.refs <= 0 {
			delete(c.locks, chatID)
		}
	}
	c.mu.Unlock()

	if ok {
		l.mu.Unlock()
	}
}

// Middleware wraps handlers so updates from the same chat run one at a time.
func (c *ChatLocks) Middleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(tc tele.Context) error {
			chat := tc.Chat()
			if chat == nil {
				return next(tc)
			}
			c.Lock(chat.ID)
			defer c.Unlock(chat.ID)
			return next(tc)
		}
	}
}
