package bot

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coursebot/core/telegram/helpers"
	"github.com/m3rciful/coursebot/core/telegram/state"
	"github.com/m3rciful/coursebot/internal/domain"
	"github.com/m3rciful/coursebot/internal/i18n"
)

// Conversation steps of the purchase flow.
const (
	StateAwaitingLanguage      state.State = "awaiting_language"
	StateAwaitingContact       state.State = "awaiting_contact"
	StateMainMenu              state.State = "main_menu"
	StateCourseSelection       state.State = "course_selection"
	StateCourseDetails         state.State = "course_details"
	StateAwaitingPaymentMethod state.State = "awaiting_payment_method"
	StateAwaitingReceipt       state.State = "awaiting_receipt"
)

// Scratch keys carried between the buy step and the receipt upload.
const (
	dataCourseID = "buying_course_id"
	dataMethodID = "payment_method_id"
)

// fsmAdapter exposes the app's conversation dispatch to the message router.
type fsmAdapter struct {
	app *App
}

func (f fsmAdapter) InProgress(c tele.Context) bool {
	ctx := helpers.BuildContext(c)
	active, err := f.app.sessions.InProgress(ctx, c.Chat().ID)
	if err != nil {
		return false
	}
	return active
}

func (f fsmAdapter) Dispatch(c tele.Context) error {
	return f.app.dispatchFlow(c)
}

// dispatchFlow routes an in-conversation update by payload kind first, then
// by the chat's current step.
func (a *App) dispatchFlow(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	chatID := c.Chat().ID

	st, err := a.sessions.State(ctx, chatID)
	if err != nil {
		st = state.StateIdle
	}

	msg := c.Message()
	if msg != nil {
		switch {
		case msg.Contact != nil:
			return a.onContact(c, st)
		case msg.Photo != nil:
			return a.onPhoto(c, st)
		case msg.Document != nil:
			return a.onDocument(c, st)
		}
	}
	return a.onFlowText(c, st)
}

// onFlowText handles plain text inside a conversation: menu buttons first,
// then a per-step reprompt so a lost user always gets a way forward.
func (a *App) onFlowText(c tele.Context, st state.State) error {
	ctx := helpers.BuildContext(c)
	loc := a.localeOf(ctx, c)

	if handled, err := a.handleMenuText(c, loc, c.Text()); handled {
		return err
	}

	switch st {
	case StateAwaitingLanguage:
		return helpers.SendHTML(c, i18n.Text("welcome_prompt_language", loc), languageMarkup())
	case StateAwaitingContact:
		return a.promptContact(c, loc)
	case StateAwaitingReceipt:
		return helpers.SendText(c, i18n.Text("send_receipt_prompt", loc))
	default:
		return a.showMainMenu(c, loc)
	}
}

// handleMenuText matches the reply-keyboard button labels in any locale.
func (a *App) handleMenuText(c tele.Context, loc domain.Locale, text string) (bool, error) {
	switch text {
	case i18n.Text("courses_button", domain.LocaleQR), i18n.Text("courses_button", domain.LocaleUZ):
		return true, a.showCourses(c, loc, false)
	case i18n.Text("about_button", domain.LocaleQR), i18n.Text("about_button", domain.LocaleUZ):
		return true, a.showInfoPage(c, loc, "about", "info_not_found")
	case i18n.Text("support_button", domain.LocaleQR), i18n.Text("support_button", domain.LocaleUZ):
		return true, a.showInfoPage(c, loc, "support", "support_info_not_found")
	}
	return false, nil
}

// localeOf resolves the user's language, defaulting to Karakalpak for chats
// the storage has never seen.
func (a *App) localeOf(ctx context.Context, c tele.Context) domain.Locale {
	u, err := helpers.CurrentUser[*domain.User](ctx, a.store, c.Chat().ID)
	if err != nil || u == nil {
		return domain.LocaleQR
	}
	return domain.NormalizeLocale(string(u.Locale))
}

func (a *App) setScratchInt64(ctx context.Context, chatID int64, key string, value int64) error {
	return state.SetDataInt64(ctx, a.sessions, chatID, key, value)
}

func (a *App) scratchInt64(ctx context.Context, chatID int64, key string) (int64, bool) {
	v, ok, err := state.DataInt64(ctx, a.sessions, chatID, key)
	if err != nil {
		return 0, false
	}
	return v, ok
}

// clearPurchaseScratch drops the buy-flow scratch ids on terminal
// transitions so nothing leaks into the next flow.
func (a *App) clearPurchaseScratch(ctx context.Context, chatID int64) {
	_ = a.sessions.ClearData(ctx, chatID, dataCourseID)
	_ = a.sessions.ClearData(ctx, chatID, dataMethodID)
}
