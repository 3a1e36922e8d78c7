package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
)

type fakeStore struct {
	users map[int64]*domain.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]*domain.User{}}
}

func (f *fakeStore) UpsertUser(_ context.Context, u *domain.User) (*domain.User, error) {
	if existing, ok := f.users[u.ChatID]; ok {
		existing.Username = u.Username
		existing.FirstName = u.FirstName
		existing.LastName = u.LastName
		return existing, nil
	}
	stored := *u
	f.users[u.ChatID] = &stored
	return &stored, nil
}

func (f *fakeStore) GetUserByChatID(_ context.Context, chatID int64) (*domain.User, error) {
	u, ok := f.users[chatID]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "error_start_command")
	}
	return u, nil
}

func (f *fakeStore) SetUserLocale(_ context.Context, chatID int64, loc domain.Locale) error {
	f.users[chatID].Locale = loc
	return nil
}

func (f *fakeStore) SetUserPhone(_ context.Context, chatID int64, phone string) error {
	f.users[chatID].Phone = phone
	return nil
}

func (f *fakeStore) TouchUser(context.Context, int64) error { return nil }

func TestRegisterKeepsSavedFields(t *testing.T) {
	store := newFakeStore()
	svc := New(store)

	u, err := svc.Register(context.Background(), Profile{ChatID: 100, FirstName: "Aybek"})
	require.NoError(t, err)
	assert.False(t, u.HasContact())

	require.NoError(t, svc.SetLocale(context.Background(), 100, domain.LocaleUZ))
	require.NoError(t, svc.SaveContact(context.Background(), 100, 100, "+998901112233"))

	// Re-registering refreshes the profile without dropping locale or phone.
	u, err = svc.Register(context.Background(), Profile{ChatID: 100, FirstName: "Aybek", Username: "aybek"})
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleUZ, u.Locale)
	assert.Equal(t, "+998901112233", u.Phone)
	assert.Equal(t, "aybek", u.Username)
}

func TestSaveContactOwnerCheck(t *testing.T) {
	store := newFakeStore()
	svc := New(store)

	_, err := svc.Register(context.Background(), Profile{ChatID: 100, FirstName: "Aybek"})
	require.NoError(t, err)

	err = svc.SaveContact(context.Background(), 100, 200, "+998900000000")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "error_not_your_contact", apperr.MsgKeyOf(err))

	err = svc.SaveContact(context.Background(), 100, 100, "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
