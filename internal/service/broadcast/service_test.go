package broadcast

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/coursebot/internal/domain"
)

type fakeStore struct {
	targets  []domain.User
	blocked  map[int64]bool
	finished *struct{ success, failed int64 }
}

func (f *fakeStore) ListBroadcastTargets(context.Context) ([]domain.User, error) {
	return f.targets, nil
}

func (f *fakeStore) SetUserBlocked(_ context.Context, chatID int64, blocked bool) error {
	if f.blocked == nil {
		f.blocked = map[int64]bool{}
	}
	f.blocked[chatID] = blocked
	return nil
}

func (f *fakeStore) CreateBroadcast(context.Context, int64, string) (int64, error) {
	return 1, nil
}

func (f *fakeStore) FinishBroadcast(_ context.Context, _ int64, success, failed int64) error {
	f.finished = &struct{ success, failed int64 }{success, failed}
	return nil
}

type fakeSender struct {
	failChats    map[int64]bool
	blockedChats map[int64]bool
	sent         []int64
}

func (f *fakeSender) SendBroadcast(_ context.Context, chatID int64, _ Message) (bool, error) {
	if f.failChats[chatID] {
		return f.blockedChats[chatID], errors.New("send failed")
	}
	f.sent = append(f.sent, chatID)
	return false, nil
}

func users(ids ...int64) []domain.User {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.User{ChatID: id, IsActive: true})
	}
	return out
}

func TestRunCountsPerUserOutcomes(t *testing.T) {
	store := &fakeStore{targets: users(1, 2, 3)}
	sender := &fakeSender{failChats: map[int64]bool{2: true}}
	svc := New(store, sender, 0)

	res, err := svc.Run(context.Background(), 999, Message{Text: "salem"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Success)
	assert.Equal(t, int64(1), res.Failed)
	assert.Equal(t, []int64{1, 3}, sender.sent)

	require.NotNil(t, store.finished)
	assert.Equal(t, int64(2), store.finished.success)
	assert.Equal(t, int64(1), store.finished.failed)
}

func TestRunMarksBlockedUsers(t *testing.T) {
	store := &fakeStore{targets: users(7)}
	sender := &fakeSender{
		failChats:    map[int64]bool{7: true},
		blockedChats: map[int64]bool{7: true},
	}
	svc := New(store, sender, 0)

	res, err := svc.Run(context.Background(), 999, Message{Text: "salem"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Failed)
	assert.True(t, store.blocked[7])
}

func TestRunStopsOnCancel(t *testing.T) {
	store := &fakeStore{targets: users(1, 2, 3)}
	sender := &fakeSender{}
	svc := New(store, sender, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.Run(ctx, 999, Message{Text: "salem"})
	require.NoError(t, err)
	assert.Zero(t, res.Success+res.Failed)
}
