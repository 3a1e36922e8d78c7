package bot

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coursebot/core/logger"
	"github.com/m3rciful/coursebot/internal/receipts"
	"github.com/m3rciful/coursebot/internal/service/broadcast"
	"github.com/m3rciful/coursebot/internal/service/payments"
)

// notifier pushes payment and broadcast messages through the running bot.
// It implements payments.Notifier and broadcast.Sender.
type notifier struct {
	bot         *tele.Bot
	adminChatID int64
	receipts    *receipts.Store
}

func newNotifier(bot *tele.Bot, adminChatID int64, store *receipts.Store) *notifier {
	return &notifier{bot: bot, adminChatID: adminChatID, receipts: store}
}

var htmlOpts = &tele.SendOptions{ParseMode: tele.ModeHTML}

// NewPayment posts the review card to the admin chat and attaches the
// receipt file best effort.
func (n *notifier) NewPayment(ctx context.Context, info *payments.Info) error {
	admin := tele.ChatID(n.adminChatID)
	if _, err := n.bot.Send(admin, adminNewPaymentText(info), adminActionMarkup(info.Payment.ID), htmlOpts); err != nil {
		return err
	}

	if path := info.Payment.ReceiptPath; path != "" {
		n.attachReceipt(ctx, admin, info.Payment.ID, path)
	}
	return nil
}

func (n *notifier) attachReceipt(ctx context.Context, to tele.Recipient, paymentID int64, path string) {
	rc, err := n.receipts.Open(path)
	if err == nil {
		defer rc.Close()
		file := tele.FromReader(rc)
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			_, err = n.bot.Send(to, &tele.Document{File: file, FileName: filepath.Base(path)})
		} else {
			_, err = n.bot.Send(to, &tele.Photo{File: file})
		}
	}
	if err != nil {
		logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "notify.receipt_attach_failed",
			slog.Int64("payment_id", paymentID),
			slog.String("error", err.Error()),
		)
	}
}

// Approved tells the buyer the course is unlocked and hands over the group
// link.
func (n *notifier) Approved(ctx context.Context, info *payments.Info) error {
	loc := info.User.Locale
	_, err := n.bot.Send(tele.ChatID(info.User.ChatID), approvedUserText(loc, info), approvedUserMarkup(loc), htmlOpts)
	return err
}

// Rejected tells the buyer the payment was declined, with the admin comment
// when there is one.
func (n *notifier) Rejected(ctx context.Context, info *payments.Info) error {
	loc := info.User.Locale
	_, err := n.bot.Send(tele.ChatID(info.User.ChatID), rejectedUserText(loc, info), rejectedUserMarkup(loc, info.Payment.CourseID), htmlOpts)
	return err
}

// SendBroadcast delivers one announcement. A 403 from Telegram means the
// user blocked the bot; the caller marks them and moves on.
func (n *notifier) SendBroadcast(ctx context.Context, chatID int64, msg broadcast.Message) (bool, error) {
	to := tele.ChatID(chatID)

	var markup *tele.ReplyMarkup
	if msg.ButtonText != "" && msg.ButtonURL != "" {
		markup = &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{{
			{Text: msg.ButtonText, URL: msg.ButtonURL},
		}}}
	}

	var err error
	if msg.ImageURL != "" {
		photo := &tele.Photo{File: tele.FromURL(msg.ImageURL), Caption: msg.Text}
		if markup != nil {
			_, err = n.bot.Send(to, photo, markup, htmlOpts)
		} else {
			_, err = n.bot.Send(to, photo, htmlOpts)
		}
	} else if markup != nil {
		_, err = n.bot.Send(to, msg.Text, markup, htmlOpts)
	} else {
		_, err = n.bot.Send(to, msg.Text, htmlOpts)
	}
	if err == nil {
		return false, nil
	}
	if errors.Is(err, tele.ErrBlockedByUser) || errors.Is(err, tele.ErrUserIsDeactivated) {
		return true, err
	}
	return false, err
}
