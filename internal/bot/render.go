package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coursebot/core/telegram/keyboard"
	"github.com/m3rciful/coursebot/internal/domain"
	"github.com/m3rciful/coursebot/internal/i18n"
	"github.com/m3rciful/coursebot/internal/service/catalog"
	"github.com/m3rciful/coursebot/internal/service/payments"
)

// Callback uniques. Telebot encodes buttons as \f<unique>|<payload>.
const (
	cbSetLang       = "set_lang"
	cbCourse        = "course"
	cbBuy           = "buy"
	cbBackToCourses = "back_to_courses"
	cbBackToMenu    = "back_to_menu"
	cbPayMethod     = "payment_method"
	cbCancelPayment = "cancel_payment"
	cbCancelPending = "cancel_pending"
	cbAdminApprove  = "admin_approve"
	cbAdminReject   = "admin_reject"
)

func languageMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: i18n.Text("language_chosen_button", domain.LocaleQR), Unique: cbSetLang, Data: "qr"},
		{Text: i18n.Text("language_chosen_button", domain.LocaleUZ), Unique: cbSetLang, Data: "uz"},
	})
}

func mainMenuMarkup(loc domain.Locale) *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{i18n.Text("courses_button", loc)},
		[]string{i18n.Text("about_button", loc), i18n.Text("support_button", loc)},
	)
}

func courseButtonLabel(loc domain.Locale, c domain.Course) string {
	label := "📚 " + c.Name.In(loc)
	if d := c.DiscountPercent(); d > 0 {
		label += fmt.Sprintf(" (-%d%%)", d)
	}
	return label
}

func courseListMarkup(loc domain.Locale, courses []domain.Course) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(courses)+1)
	for _, c := range courses {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   courseButtonLabel(loc, c),
			Unique: cbCourse,
			Data:   fmt.Sprintf("%d", c.ID),
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{
		Text:   i18n.Text("back_to_menu_button", loc),
		Unique: cbBackToMenu,
	})
	return keyboard.InlineButtons(buttons)
}

func courseDetailsText(loc domain.Locale, det *catalog.Details) string {
	c := det.Course

	var b strings.Builder
	b.WriteString(i18n.Textf("course_details_header", loc, c.Name.In(loc), c.Description.In(loc)))

	if d := c.DiscountPercent(); d > 0 {
		b.WriteString(i18n.Text("price_label", loc) + " ")
		b.WriteString(i18n.Textf("old_price_label", loc, c.OldPrice, c.Price))
		b.WriteString(" " + i18n.Textf("discount_label", loc, d))
	} else {
		b.WriteString(i18n.Text("price_label", loc) + " ")
		b.WriteString(i18n.Textf("current_price_label", loc, c.Price))
	}

	if c.MaxStudents > 0 {
		b.WriteString(i18n.Textf("taken_slots", loc, det.ApprovedCount, c.MaxStudents))
		if !det.Available() {
			b.WriteString(i18n.Text("no_slots_left", loc))
		} else {
			b.WriteString(i18n.Textf("free_slots", loc, c.FreeSlots(det.ApprovedCount)))
		}
	}
	return b.String()
}

func courseDetailsMarkup(loc domain.Locale, det *catalog.Details) *tele.ReplyMarkup {
	var buttons []keyboard.InlineBtn
	if det.Available() {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   i18n.Textf("buy_button", loc, det.Course.Price),
			Unique: cbBuy,
			Data:   fmt.Sprintf("%d", det.Course.ID),
		})
	}
	buttons = append(buttons,
		keyboard.InlineBtn{Text: i18n.Text("back_to_courses_button", loc), Unique: cbBackToCourses},
		keyboard.InlineBtn{Text: i18n.Text("back_to_menu_button", loc), Unique: cbBackToMenu},
	)
	return keyboard.InlineButtons(buttons)
}

func methodSelectText(loc domain.Locale, c domain.Course) string {
	return i18n.Textf("select_payment_method_title", loc, c.Name.In(loc), c.Price)
}

func methodSelectMarkup(loc domain.Locale, courseID int64, methods []domain.PaymentMethod) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(methods)+1)
	for _, m := range methods {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   "💳 " + m.Name.In(loc),
			Unique: cbPayMethod,
			Data:   fmt.Sprintf("%d|%d", courseID, m.ID),
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{
		Text:   i18n.Text("cancel_button", loc),
		Unique: cbCourse,
		Data:   fmt.Sprintf("%d", courseID),
	})
	return keyboard.InlineButtons(buttons)
}

func paymentDetailsText(loc domain.Locale, c domain.Course, m domain.PaymentMethod) string {
	var b strings.Builder
	b.WriteString(i18n.Textf("payment_details_title", loc, c.Name.In(loc)))
	b.WriteString(i18n.Textf("amount_to_pay", loc, c.Price))
	b.WriteString(i18n.Text("payment_requisites", loc))

	b.WriteString("💳 " + m.Name.In(loc) + "\n")
	if m.CardNumber != "" {
		b.WriteString(i18n.Text("payment_method_card_number", loc) + " " + m.CardNumber + "\n")
	}
	if m.Cardholder != "" {
		b.WriteString(i18n.Text("payment_method_cardholder", loc) + " " + m.Cardholder + "\n")
	}
	if m.BankName != "" {
		b.WriteString(i18n.Text("payment_method_bank", loc) + " " + m.BankName + "\n")
	}
	if instructions := m.Instructions.In(loc); instructions != "" {
		b.WriteString(i18n.Text("payment_method_instructions", loc) + "\n" + instructions)
	}

	b.WriteString(i18n.Text("important_note", loc))
	b.WriteString(i18n.Textf("important_note_1", loc, c.Price))
	b.WriteString(i18n.Text("important_note_2", loc))
	b.WriteString(i18n.Text("important_note_3", loc))
	b.WriteString(i18n.Text("send_receipt_prompt", loc))
	return b.String()
}

func paymentDetailsMarkup(loc domain.Locale, courseID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: i18n.Text("cancel_purchase_button", loc), Unique: cbCancelPayment},
		{Text: i18n.Text("back_button", loc), Unique: cbCourse, Data: fmt.Sprintf("%d", courseID)},
	})
}

func receiptAcceptedText(loc domain.Locale, info *payments.Info, fromPhoto bool, fileName string) string {
	var b strings.Builder
	if fromPhoto {
		b.WriteString(i18n.Text("receipt_accepted_photo", loc))
	} else {
		b.WriteString(i18n.Text("receipt_accepted_document", loc))
	}
	b.WriteString(i18n.Text("course_label", loc) + " " + info.Course.Name.In(loc) + "\n")
	b.WriteString(i18n.Text("amount_label", loc) + " " + fmt.Sprintf("%d sum", info.Payment.Amount) + "\n")
	b.WriteString(i18n.Text("payment_method_label", loc) + " " + info.Method.Name.In(loc) + "\n")
	if !fromPhoto && fileName != "" {
		b.WriteString(i18n.Text("file_label", loc) + " " + fileName + "\n")
	}
	b.WriteString(i18n.Text("payment_pending_admin_review", loc))
	return b.String()
}

// pendingPaymentMarkup accompanies messages about a payment under review:
// the buyer can withdraw it while the admin has not acted yet.
func pendingPaymentMarkup(loc domain.Locale, paymentID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{
			Text:   i18n.Text("cancel_pending_payment_button", loc),
			Unique: cbCancelPending,
			Data:   fmt.Sprintf("%d", paymentID),
		}},
		[]keyboard.InlineBtn{{
			Text:   i18n.Text("back_to_menu_button", loc),
			Unique: cbBackToMenu,
		}},
	)
}

func backToMenuMarkup(loc domain.Locale) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: i18n.Text("back_to_menu_button", loc), Unique: cbBackToMenu},
	})
}

func backToCoursesMarkup(loc domain.Locale) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: i18n.Text("back_to_courses_button", loc), Unique: cbBackToCourses},
	})
}

func cancelledMarkup(loc domain.Locale) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: i18n.Text("back_to_courses_button", loc), Unique: cbBackToCourses},
		{Text: i18n.Text("back_to_menu_button", loc), Unique: cbBackToMenu},
	})
}

func approvedUserText(loc domain.Locale, info *payments.Info) string {
	var b strings.Builder
	b.WriteString(i18n.Text("payment_approved_title", loc))
	b.WriteString(i18n.Text("course_label", loc) + " " + info.Course.Name.In(loc) + "\n")
	b.WriteString(i18n.Text("amount_label", loc) + " " + fmt.Sprintf("%d sum", info.Payment.Amount) + "\n\n")
	b.WriteString(i18n.Text("congratulations_on_purchase", loc))
	b.WriteString(i18n.Textf("group_link_message", loc, info.Course.GroupLink))
	b.WriteString(i18n.Text("join_group_and_start", loc))
	return b.String()
}

func approvedUserMarkup(loc domain.Locale) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: i18n.Text("other_courses_button", loc), Unique: cbBackToCourses},
	})
}

func rejectedUserText(loc domain.Locale, info *payments.Info) string {
	var b strings.Builder
	b.WriteString(i18n.Text("payment_rejected_title", loc))
	b.WriteString(i18n.Text("course_label", loc) + " " + info.Course.Name.In(loc) + "\n")
	b.WriteString(i18n.Text("amount_label", loc) + " " + fmt.Sprintf("%d sum", info.Payment.Amount) + "\n\n")
	b.WriteString(i18n.Text("payment_rejected_body", loc))
	if info.Payment.AdminComment != "" {
		b.WriteString(i18n.Textf("admin_comment_message", loc, info.Payment.AdminComment))
	}
	b.WriteString(i18n.Text("if_questions_contact_support", loc))
	return b.String()
}

func rejectedUserMarkup(loc domain.Locale, courseID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{
			Text:   i18n.Text("retry_payment_button", loc),
			Unique: cbBuy,
			Data:   fmt.Sprintf("%d", courseID),
		}},
		[]keyboard.InlineBtn{{
			Text:   i18n.Text("back_to_courses_button", loc),
			Unique: cbBackToCourses,
		}},
	)
}

// Admin texts are single-language on purpose, matching the review chat.
func adminNewPaymentText(info *payments.Info) string {
	var b strings.Builder
	b.WriteString("🔔 <b>Jańa tólem!</b>\n\n")
	b.WriteString("👤 Paydalanıwshı: " + orDash(info.User.FullName()) + "\n")
	b.WriteString("📱 Telegram: @" + orDash(info.User.Username) + "\n")
	b.WriteString("📞 Telefon: " + orDash(info.User.Phone) + "\n")
	b.WriteString(fmt.Sprintf("🆔 Chat ID: <code>%d</code>\n\n", info.User.ChatID))
	b.WriteString("📚 Kurs: " + info.Course.Name.QR + "\n")
	b.WriteString(fmt.Sprintf("💰 Summa: %d sum\n", info.Payment.Amount))
	b.WriteString("💳 Tólem usılı: " + info.Method.Name.QR + "\n\n")
	if info.Payment.UserComment != "" {
		b.WriteString("💬 Kommentariy: " + info.Payment.UserComment + "\n\n")
	}
	b.WriteString("🕐 Waqıt: " + info.Payment.CreatedAt.Format("02.01.2006 15:04"))
	return b.String()
}

func adminActionMarkup(paymentID int64) *tele.ReplyMarkup {
	payload := fmt.Sprintf("%d", paymentID)
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "✅ Tastıyıqlaw", Unique: cbAdminApprove, Data: payload},
		{Text: "❌ Biykar etiw", Unique: cbAdminReject, Data: payload},
	})
}

func adminResolvedText(info *payments.Info, approved bool) string {
	var b strings.Builder
	if approved {
		b.WriteString("✅ <b>Tólem tastıyıqlandı!</b>\n\n")
	} else {
		b.WriteString("❌ <b>Tólem biykar etildi</b>\n\n")
	}
	b.WriteString("👤 Paydalanıwshı: " + orDash(info.User.FullName()) + "\n")
	b.WriteString("📚 Kurs: " + info.Course.Name.QR + "\n\n")
	if approved {
		if info.LinkDelivered {
			b.WriteString("📤 Gruppaǵa silteme paydalanıwshıǵa jiberildi.")
		} else {
			b.WriteString("⚠️ Paydalanıwshıǵa silteme jiberiwde qátelik.")
		}
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "kórsetilmegen"
	}
	return s
}
