package bot

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coursebot/core/telegram/state"
	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
	"github.com/m3rciful/coursebot/internal/i18n"
	"github.com/m3rciful/coursebot/internal/service/users"
)

// chatCtx is a minimal tele.Context for handler tests: it records what was
// sent and carries just enough metadata for the context helpers.
type chatCtx struct {
	tele.Context

	chat *tele.Chat
	msg  *tele.Message
	sent []string
	vals map[string]interface{}
}

func newChatCtx(chatID int64) *chatCtx {
	chat := &tele.Chat{ID: chatID}
	return &chatCtx{
		chat: chat,
		msg:  &tele.Message{Chat: chat},
		vals: map[string]interface{}{},
	}
}

func (c *chatCtx) Chat() *tele.Chat       { return c.chat }
func (c *chatCtx) Sender() *tele.User     { return &tele.User{ID: c.chat.ID} }
func (c *chatCtx) Message() *tele.Message { return c.msg }
func (c *chatCtx) Update() tele.Update    { return tele.Update{} }
func (c *chatCtx) Text() string           { return c.msg.Text }

func (c *chatCtx) Send(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, fmt.Sprint(what))
	return nil
}

func (c *chatCtx) Set(key string, v interface{}) { c.vals[key] = v }
func (c *chatCtx) Get(key string) interface{}    { return c.vals[key] }

func TestReceiptWithoutPurchaseDataResetsToMenu(t *testing.T) {
	app := &App{sessions: state.NewMemoryManager()}
	c := newChatCtx(42)
	ctx := context.Background()

	require.NoError(t, app.sessions.SetState(ctx, 42, StateAwaitingReceipt))
	// Only one of the two scratch ids survived; the upload cannot proceed.
	require.NoError(t, app.setScratchInt64(ctx, 42, dataCourseID, 7))

	err := app.acceptReceipt(ctx, c, domain.LocaleQR, receiptUpload{fromPhoto: true})
	require.NoError(t, err)

	require.Len(t, c.sent, 1)
	assert.Equal(t, i18n.Text("error_purchase_data_lost", domain.LocaleQR), c.sent[0])

	// The chat lands back in the menu instead of looping on the upload
	// prompt, and the leftover scratch id is gone.
	st, err := app.sessions.State(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, StateMainMenu, st)

	_, ok := app.scratchInt64(ctx, 42, dataCourseID)
	assert.False(t, ok)
}

type fakeUserStore struct {
	touched []int64
}

func (f *fakeUserStore) UpsertUser(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (f *fakeUserStore) GetUserByChatID(context.Context, int64) (*domain.User, error) {
	return nil, apperr.New(apperr.KindNotFound, "error_start_command")
}

func (f *fakeUserStore) SetUserLocale(context.Context, int64, domain.Locale) error { return nil }

func (f *fakeUserStore) SetUserPhone(context.Context, int64, string) error { return nil }

func (f *fakeUserStore) TouchUser(_ context.Context, chatID int64) error {
	f.touched = append(f.touched, chatID)
	return nil
}

func TestTrackActivityTouchesSender(t *testing.T) {
	store := &fakeUserStore{}
	app := &App{users: users.New(store)}

	var reached bool
	next := func(tele.Context) error {
		reached = true
		return nil
	}

	require.NoError(t, app.trackActivity(next)(newChatCtx(42)))
	assert.True(t, reached)
	assert.Equal(t, []int64{42}, store.touched)
}
