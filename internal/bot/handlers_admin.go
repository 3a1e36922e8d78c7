package bot

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coursebot/core/telegram/callbacks"
	"github.com/m3rciful/coursebot/core/telegram/helpers"
	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/service/broadcast"
)

// handleAdminApprove confirms a payment from the review chat. The message
// under the buttons is rewritten with the outcome so a second tap has
// nothing left to act on.
func (a *App) handleAdminApprove(c tele.Context) error {
	ctx := helpers.WithHandler(c, "admin_approve")

	paymentID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.SendText(c, "⚠️ Tólem identifikatorı qáte.")
	}

	info, err := a.payments.Approve(ctx, paymentID, c.Sender().ID)
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return helpers.EditHTML(c, alreadyResolvedText(err))
		}
		return err
	}
	return helpers.EditHTML(c, adminResolvedText(info, true))
}

// handleAdminReject declines a payment without a comment. Commented
// rejections go through the /reject command.
func (a *App) handleAdminReject(c tele.Context) error {
	ctx := helpers.WithHandler(c, "admin_reject")

	paymentID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.SendText(c, "⚠️ Tólem identifikatorı qáte.")
	}

	info, err := a.payments.Reject(ctx, paymentID, c.Sender().ID, "")
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return helpers.EditHTML(c, alreadyResolvedText(err))
		}
		return err
	}
	return helpers.EditHTML(c, adminResolvedText(info, false))
}

func alreadyResolvedText(err error) string {
	status := apperr.StatusOf(err)
	if status == "" {
		status = "belgisiz"
	}
	return fmt.Sprintf("⚠️ Tólem qayta islenip bolǵan. Házirgi statusı: <b>%s</b>", status)
}

// cmdReject handles "/reject <payment-id> <comment>" so the admin can tell
// the buyer what was wrong with the receipt.
func (a *App) cmdReject(c tele.Context) error {
	ctx := helpers.WithHandler(c, "reject")

	parts := strings.SplitN(strings.TrimSpace(c.Message().Payload), " ", 2)
	if len(parts) == 0 || parts[0] == "" {
		return helpers.SendText(c, "Qollanıw: /reject <tólem_id> <kommentariy>")
	}
	paymentID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return helpers.SendText(c, "⚠️ Tólem identifikatorı qáte.")
	}
	comment := ""
	if len(parts) == 2 {
		comment = strings.TrimSpace(parts[1])
	}

	info, err := a.payments.Reject(ctx, paymentID, c.Sender().ID, comment)
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return helpers.SendHTML(c, alreadyResolvedText(err))
		}
		return err
	}
	return helpers.SendHTML(c, adminResolvedText(info, false))
}

// cmdPending re-posts every unresolved payment with fresh action buttons.
func (a *App) cmdPending(c tele.Context) error {
	ctx := helpers.WithHandler(c, "pending")

	pending, err := a.payments.Pending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return helpers.SendText(c, "✅ Kútilip turǵan tólemler joq.")
	}

	for i := range pending {
		info := &pending[i]
		if err := helpers.SendHTML(c, adminNewPaymentText(info), adminActionMarkup(info.Payment.ID)); err != nil {
			return err
		}
	}
	return helpers.SendText(c, fmt.Sprintf("Jámi: %d tólem kútilip tur.", len(pending)))
}

// cmdBroadcast sends "/broadcast <text>" to every active user and replies
// with the delivery counts once every send has been attempted. The run
// blocks the handler; the per-message delay keeps it under Telegram's rate
// limits.
func (a *App) cmdBroadcast(c tele.Context) error {
	ctx := helpers.WithHandler(c, "broadcast")

	text := strings.TrimSpace(c.Message().Payload)
	if text == "" {
		return helpers.SendText(c, "Qollanıw: /broadcast <tekst>")
	}

	res, err := a.broadcast.Run(ctx, c.Sender().ID, broadcast.Message{Text: text})
	if err != nil {
		return err
	}
	return helpers.SendText(c, fmt.Sprintf("📣 Jiberildi: %d, qátelik: %d.", res.Success, res.Failed))
}
