package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coursebot/core/telegram/callbacks"
	"github.com/m3rciful/coursebot/core/telegram/helpers"
	"github.com/m3rciful/coursebot/core/telegram/keyboard"
	"github.com/m3rciful/coursebot/core/telegram/state"
	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
	"github.com/m3rciful/coursebot/internal/i18n"
	usersvc "github.com/m3rciful/coursebot/internal/service/users"
)

// handleStart upserts the user and always reopens the language prompt, so
// /start doubles as a reset.
func (a *App) handleStart(c tele.Context) error {
	ctx := helpers.WithHandler(c, "start")
	chatID := c.Chat().ID

	profile := usersvc.Profile{ChatID: chatID}
	if sender := c.Sender(); sender != nil {
		profile.Username = sender.Username
		profile.FirstName = sender.FirstName
		profile.LastName = sender.LastName
	}

	if _, err := a.users.Register(ctx, profile); err != nil {
		_ = a.replyError(c, domain.LocaleQR, err)
		return err
	}

	if err := a.sessions.SetState(ctx, chatID, StateAwaitingLanguage); err != nil {
		return err
	}
	a.clearPurchaseScratch(ctx, chatID)

	return helpers.SendHTML(c, i18n.Text("welcome_prompt_language", domain.LocaleQR), languageMarkup())
}

// handleSetLang persists the chosen locale, then asks for the contact or
// goes straight to the menu when the phone is already on file.
func (a *App) handleSetLang(c tele.Context) error {
	ctx := helpers.WithHandler(c, "set_lang")
	chatID := c.Chat().ID

	loc := domain.NormalizeLocale(callbacks.CallbackPayload(c))
	if err := a.users.SetLocale(ctx, chatID, loc); err != nil {
		_ = a.replyError(c, loc, err)
		return err
	}

	_ = helpers.EditHTML(c, i18n.Text("language_selected", loc))

	u, err := a.users.Get(ctx, chatID)
	if err != nil {
		_ = a.replyError(c, loc, err)
		return err
	}
	if !u.HasContact() {
		if err := a.sessions.SetState(ctx, chatID, StateAwaitingContact); err != nil {
			return err
		}
		return a.promptContact(c, loc)
	}
	return a.showMainMenu(c, loc)
}

func (a *App) promptContact(c tele.Context, loc domain.Locale) error {
	markup := keyboard.ContactRequest(i18n.Text("request_contact_button", loc))
	return helpers.SendText(c, i18n.Text("welcome_after_lang", loc), &tele.SendOptions{ReplyMarkup: markup})
}

// onContact saves the shared phone number. Contact cards belonging to
// someone else are bounced with a fresh request keyboard.
func (a *App) onContact(c tele.Context, _ state.State) error {
	ctx := helpers.WithHandler(c, "contact")
	chatID := c.Chat().ID
	loc := a.localeOf(ctx, c)

	contact := c.Message().Contact
	if contact == nil {
		return a.promptContact(c, loc)
	}

	err := a.users.SaveContact(ctx, chatID, contact.UserID, contact.PhoneNumber)
	if err != nil {
		key := "error_contact_save"
		if apperr.Is(err, apperr.KindValidation) {
			key = "error_not_your_contact"
		}
		markup := keyboard.ContactRequest(i18n.Text("request_contact_button", loc))
		_ = helpers.SendText(c, i18n.Text(key, loc), &tele.SendOptions{ReplyMarkup: markup})
		return err
	}

	_ = helpers.SendText(c, i18n.Text("contact_saved", loc))
	return a.showMainMenu(c, loc)
}

// showMainMenu resets the chat to the main menu step.
func (a *App) showMainMenu(c tele.Context, loc domain.Locale) error {
	ctx := helpers.BuildContext(c)
	if err := a.sessions.SetState(ctx, c.Chat().ID, StateMainMenu); err != nil {
		return err
	}
	return helpers.SendHTML(c, i18n.Text("main_menu_title", loc), mainMenuMarkup(loc))
}

// handleCancel aborts whatever flow is active and returns to the menu.
func (a *App) handleCancel(c tele.Context) error {
	ctx := helpers.WithHandler(c, "cancel")
	chatID := c.Chat().ID
	loc := a.localeOf(ctx, c)

	a.clearPurchaseScratch(ctx, chatID)
	_ = helpers.SendText(c, i18n.Text("returning_to_main_menu", loc))
	return a.showMainMenu(c, loc)
}

func (a *App) handleHelp(c tele.Context) error {
	ctx := helpers.WithHandler(c, "help")
	loc := a.localeOf(ctx, c)
	return helpers.SendHTML(c, i18n.Text("help_text", loc))
}
