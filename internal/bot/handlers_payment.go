package bot

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coursebot/core/telegram/callbacks"
	"github.com/m3rciful/coursebot/core/telegram/helpers"
	"github.com/m3rciful/coursebot/core/telegram/state"
	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
	"github.com/m3rciful/coursebot/internal/i18n"
	paysvc "github.com/m3rciful/coursebot/internal/service/payments"
)

// handleBuy starts a purchase: availability and duplicate checks, then the
// payment method picker. A single active method short-circuits straight to
// the requisites.
func (a *App) handleBuy(c tele.Context) error {
	ctx := helpers.WithHandler(c, "buy")
	chatID := c.Chat().ID
	loc := a.localeOf(ctx, c)

	courseID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.SendText(c, i18n.Text("error_buy_course", loc))
	}

	det, err := a.catalog.CourseDetails(ctx, courseID)
	if err != nil {
		_ = a.replyError(c, loc, err)
		return err
	}
	if !det.Available() {
		return helpers.EditOrSendHTML(c, i18n.Text("course_not_available", loc), backToCoursesMarkup(loc))
	}

	blocking, err := a.payments.Blocking(ctx, chatID, courseID)
	if err != nil {
		_ = a.replyError(c, loc, err)
		return err
	}
	if blocking != nil {
		name := det.Course.Name.In(loc)
		if blocking.Status == domain.PaymentApproved {
			text := i18n.Textf("already_bought_course", loc, name, det.Course.GroupLink)
			return helpers.EditOrSendHTML(c, text, backToCoursesMarkup(loc))
		}
		text := i18n.Textf("payment_already_pending", loc, name, string(blocking.Status))
		return helpers.EditOrSendHTML(c, text, pendingPaymentMarkup(loc, blocking.ID))
	}

	methods, err := a.catalog.PaymentMethods(ctx)
	if err != nil {
		_ = a.replyError(c, loc, err)
		return err
	}
	if len(methods) == 0 {
		return helpers.EditOrSendHTML(c, i18n.Text("no_payment_methods_available", loc), backToCoursesMarkup(loc))
	}

	if len(methods) == 1 {
		return a.showPaymentDetails(ctx, c, loc, det.Course, methods[0])
	}

	if err := a.sessions.SetState(ctx, chatID, StateAwaitingPaymentMethod); err != nil {
		return err
	}
	_ = a.setScratchInt64(ctx, chatID, dataCourseID, courseID)

	return helpers.EditOrSendHTML(c, methodSelectText(loc, det.Course), methodSelectMarkup(loc, courseID, methods))
}

// handlePaymentMethod shows the requisites for the chosen method and moves
// the chat to the receipt step. Payload is "<courseID>|<methodID>".
func (a *App) handlePaymentMethod(c tele.Context) error {
	ctx := helpers.WithHandler(c, "payment_method")
	loc := a.localeOf(ctx, c)

	courseID, methodID, err := callbacks.PayloadTwoInt64(c, "|")
	if err != nil {
		return helpers.SendText(c, i18n.Text("error_payment_method_selection", loc))
	}

	course, err := a.catalog.CourseDetails(ctx, courseID)
	if err != nil {
		_ = a.replyError(c, loc, err)
		return err
	}
	method, err := a.catalog.PaymentMethod(ctx, methodID)
	if err != nil {
		_ = a.replyError(c, loc, err)
		return err
	}

	return a.showPaymentDetails(ctx, c, loc, course.Course, *method)
}

func (a *App) showPaymentDetails(ctx context.Context, c tele.Context, loc domain.Locale, course domain.Course, method domain.PaymentMethod) error {
	chatID := c.Chat().ID
	if err := a.sessions.SetState(ctx, chatID, StateAwaitingReceipt); err != nil {
		return err
	}
	_ = a.setScratchInt64(ctx, chatID, dataCourseID, course.ID)
	_ = a.setScratchInt64(ctx, chatID, dataMethodID, method.ID)

	return helpers.EditOrSendHTML(c, paymentDetailsText(loc, course, method), paymentDetailsMarkup(loc, course.ID))
}

// handleCancelPayment abandons the purchase and clears the scratch ids.
func (a *App) handleCancelPayment(c tele.Context) error {
	ctx := helpers.WithHandler(c, "cancel_payment")
	chatID := c.Chat().ID
	loc := a.localeOf(ctx, c)

	a.clearPurchaseScratch(ctx, chatID)
	if err := a.sessions.SetState(ctx, chatID, StateMainMenu); err != nil {
		return err
	}
	return helpers.EditOrSendHTML(c, i18n.Text("purchase_cancelled", loc), cancelledMarkup(loc))
}

// handleCancelPending withdraws a pending payment the buyer submitted, so
// the course can be bought again. Payload is the payment id.
func (a *App) handleCancelPending(c tele.Context) error {
	ctx := helpers.WithHandler(c, "cancel_pending")
	loc := a.localeOf(ctx, c)

	paymentID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.SendText(c, i18n.Text("error_start_command", loc))
	}

	if err := a.payments.Cancel(ctx, paymentID, c.Chat().ID); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return helpers.EditOrSendHTML(c, i18n.Text("payment_already_resolved", loc), backToMenuMarkup(loc))
		}
		_ = a.replyError(c, loc, err)
		return err
	}
	return helpers.EditOrSendHTML(c, i18n.Text("pending_payment_cancelled", loc), cancelledMarkup(loc))
}

// onPhoto accepts a photo receipt in the receipt step; anywhere else it
// explains how the purchase flow works.
func (a *App) onPhoto(c tele.Context, st state.State) error {
	ctx := helpers.WithHandler(c, "photo_receipt")
	loc := a.localeOf(ctx, c)

	if st != StateAwaitingReceipt {
		return helpers.SendText(c, i18n.Text("photo_received_outside_payment", loc))
	}

	photo := c.Message().Photo
	if photo == nil {
		return helpers.SendText(c, i18n.Text("error_photo_not_found", loc))
	}

	return a.acceptReceipt(ctx, c, loc, receiptUpload{
		file:      photo.MediaFile(),
		fromPhoto: true,
		errorKey:  "error_photo_download",
	})
}

// onDocument accepts a PDF or image document receipt in the receipt step.
func (a *App) onDocument(c tele.Context, st state.State) error {
	ctx := helpers.WithHandler(c, "document_receipt")
	loc := a.localeOf(ctx, c)

	if st != StateAwaitingReceipt {
		return helpers.SendText(c, i18n.Text("document_received_outside_payment", loc))
	}

	doc := c.Message().Document
	if doc == nil {
		return helpers.SendText(c, i18n.Text("error_document_not_found", loc))
	}

	return a.acceptReceipt(ctx, c, loc, receiptUpload{
		file:     doc.MediaFile(),
		fileName: doc.FileName,
		mime:     doc.MIME,
		size:     doc.FileSize,
		errorKey: "error_file_download",
	})
}

type receiptUpload struct {
	file      *tele.File
	fileName  string
	mime      string
	size      int64
	fromPhoto bool
	errorKey  string
}

// acceptReceipt downloads the upload, hands it to the payments service and
// confirms to the buyer. The scratch course/method ids must still be there;
// a lost session asks the user to start over.
func (a *App) acceptReceipt(ctx context.Context, c tele.Context, loc domain.Locale, up receiptUpload) error {
	chatID := c.Chat().ID

	courseID, okCourse := a.scratchInt64(ctx, chatID, dataCourseID)
	methodID, okMethod := a.scratchInt64(ctx, chatID, dataMethodID)
	if !okCourse || !okMethod {
		// Without the ids the upload cannot complete; leaving the chat in
		// the receipt step would bounce every message back to the upload
		// prompt, so drop back to the menu.
		a.clearPurchaseScratch(ctx, chatID)
		_ = a.sessions.SetState(ctx, chatID, StateMainMenu)
		return helpers.SendText(c, i18n.Text("error_purchase_data_lost", loc))
	}

	// Validate before downloading so an oversized file never moves.
	if !up.fromPhoto {
		if err := domain.ValidateReceiptDocument(up.mime, up.size); err != nil {
			_ = a.replyError(c, loc, err)
			return err
		}
	}

	bot := a.bot.Load()
	if bot == nil {
		return helpers.SendText(c, i18n.Text(up.errorKey, loc))
	}
	body, err := bot.File(up.file)
	if err != nil {
		_ = helpers.SendText(c, i18n.Text(up.errorKey, loc))
		return apperr.Wrap(apperr.KindTransport, up.errorKey, err)
	}
	defer body.Close()

	var comment string
	if msg := c.Message(); msg != nil {
		comment = msg.Caption
	}

	info, err := a.payments.Create(ctx, paysvc.CreateParams{
		ChatID:    chatID,
		CourseID:  courseID,
		MethodID:  methodID,
		Receipt:   body,
		FileName:  up.fileName,
		MIME:      up.mime,
		Size:      up.size,
		FromPhoto: up.fromPhoto,
		Comment:   comment,
	})
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			_ = a.replyError(c, loc, err)
			a.clearPurchaseScratch(ctx, chatID)
			_ = a.sessions.SetState(ctx, chatID, StateMainMenu)
			return err
		}
		_ = a.replyError(c, loc, err)
		return err
	}

	a.clearPurchaseScratch(ctx, chatID)
	if err := a.sessions.SetState(ctx, chatID, StateMainMenu); err != nil {
		return err
	}

	fileName := up.fileName
	if up.fromPhoto {
		fileName = fmt.Sprintf("receipt_%d.jpg", info.Payment.ID)
	}
	return helpers.SendHTML(c, receiptAcceptedText(loc, info, up.fromPhoto, fileName), pendingPaymentMarkup(loc, info.Payment.ID))
}
