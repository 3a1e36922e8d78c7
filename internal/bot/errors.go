package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coursebot/core/telegram/helpers"
	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
	"github.com/m3rciful/coursebot/internal/i18n"
)

// fallbackKeys maps error kinds without a message key to a generic reply.
var fallbackKeys = map[apperr.Kind]string{
	apperr.KindTransport:  "error_file_download",
	apperr.KindValidation: "error_processing_receipt",
	apperr.KindState:      "error_start_command",
	apperr.KindConflict:   "course_not_available",
	apperr.KindNotFound:   "info_not_found",
	apperr.KindInternal:   "error_start_command",
}

// replyError narrates a handler error to the user in their language and
// swallows it: the router already logged the failure with its error code.
func (a *App) replyError(c tele.Context, loc domain.Locale, err error) error {
	key := apperr.MsgKeyOf(err)
	if key == "" || !i18n.Has(key) {
		key = fallbackKeys[apperr.KindOf(err)]
	}
	return helpers.SendText(c, i18n.Text(key, loc))
}
