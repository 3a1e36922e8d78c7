package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// RedisOptions configures the Redis-backed session manager.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// TTL bounds how long an untouched session is kept. Zero means the default.
	TTL time.Duration
}

type redisManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisManager constructs a Manager backed by Redis so sessions survive
// bot restarts. It verifies connectivity before returning.
func NewRedisManager(ctx context.Context, opts RedisOptions) (Manager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("state: redis ping: %w", err)
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &redisManager{client: client, ttl: ttl}, nil
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}

// Get returns the stored session for a chat, or an idle session if none exists.
func (m *redisManager) Get(ctx context.Context, chatID int64) (Session, error) {
	raw, err := m.client.Get(ctx, sessionKey(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{State: StateIdle}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("state: redis get: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		// Treat a corrupted session as absent rather than wedging the chat.
		return Session{State: StateIdle}, nil
	}
	if sess.State == "" {
		sess.State = StateIdle
	}
	return sess, nil
}

func (m *redisManager) put(ctx context.Context, chatID int64, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("state: marshal session: %w", err)
	}
	if err := m.client.Set(ctx, sessionKey(chatID), data, m.ttl).Err(); err != nil {
		return fmt.Errorf("state: redis set: %w", err)
	}
	return nil
}

func (m *redisManager) State(ctx context.Context, chatID int64) (State, error) {
	sess, err := m.Get(ctx, chatID)
	if err != nil {
		return StateIdle, err
	}
	return sess.State, nil
}

func (m *redisManager) SetState(ctx context.Context, chatID int64, st State) error {
	sess, err := m.Get(ctx, chatID)
	if err != nil {
		return err
	}
	sess.State = st
	return m.put(ctx, chatID, sess)
}

func (m *redisManager) SetData(ctx context.Context, chatID int64, key, value string) error {
	sess, err := m.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if sess.Data == nil {
		sess.Data = make(map[string]string)
	}
	sess.Data[key] = value
	return m.put(ctx, chatID, sess)
}

func (m *redisManager) Data(ctx context.Context, chatID int64, key string) (string, bool, error) {
	sess, err := m.Get(ctx, chatID)
	if err != nil {
		return "", false, err
	}
	if sess.Data == nil {
		return "", false, nil
	}
	v, ok := sess.Data[key]
	return v, ok, nil
}

func (m *redisManager) ClearData(ctx context.Context, chatID int64, key string) error {
	sess, err := m.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if sess.Data == nil {
		return nil
	}
	delete(sess.Data, key)
	return m.put(ctx, chatID, sess)
}

func (m *redisManager) Clear(ctx context.Context, chatID int64) error {
	if err := m.client.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("state: redis del: %w", err)
	}
	return nil
}

func (m *redisManager) InProgress(ctx context.Context, chatID int64) (bool, error) {
	st, err := m.State(ctx, chatID)
	if err != nil {
		return false, err
	}
	return st != StateIdle, nil
}
