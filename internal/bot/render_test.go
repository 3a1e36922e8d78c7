package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/coursebot/internal/domain"
	"github.com/m3rciful/coursebot/internal/service/catalog"
	"github.com/m3rciful/coursebot/internal/service/payments"
)

func sampleCourse() domain.Course {
	return domain.Course{
		ID:       7,
		Name:     domain.LocalizedText{QR: "Go kursı", UZ: "Go kursi"},
		Price:    500000,
		OldPrice: 1000000,
	}
}

func TestCourseDetailsTextDiscount(t *testing.T) {
	det := &catalog.Details{Course: sampleCourse()}

	text := courseDetailsText(domain.LocaleQR, det)
	assert.Contains(t, text, "Go kursı")
	assert.Contains(t, text, "<s>1000000</s>")
	assert.Contains(t, text, "-50%")
}

func TestCourseDetailsTextSlots(t *testing.T) {
	c := sampleCourse()
	c.OldPrice = 0
	c.MaxStudents = 10

	full := &catalog.Details{Course: c, ApprovedCount: 10}
	text := courseDetailsText(domain.LocaleQR, full)
	assert.NotContains(t, text, "-50%")
	assert.Contains(t, text, "10/10")

	open := &catalog.Details{Course: c, ApprovedCount: 4}
	assert.Contains(t, courseDetailsText(domain.LocaleQR, open), "4/10")
}

func TestCourseDetailsMarkupHidesBuyWhenFull(t *testing.T) {
	c := sampleCourse()
	c.MaxStudents = 1

	sellable := courseDetailsMarkup(domain.LocaleQR, &catalog.Details{Course: c})
	soldOut := courseDetailsMarkup(domain.LocaleQR, &catalog.Details{Course: c, ApprovedCount: 1})

	require.Len(t, sellable.InlineKeyboard, 3)
	require.Len(t, soldOut.InlineKeyboard, 2)
	assert.Equal(t, cbBuy, sellable.InlineKeyboard[0][0].Unique)
}

func TestMethodSelectMarkupPayload(t *testing.T) {
	methods := []domain.PaymentMethod{
		{ID: 1, Name: domain.LocalizedText{QR: "Humo"}},
		{ID: 2, Name: domain.LocalizedText{QR: "UzCard"}},
	}

	markup := methodSelectMarkup(domain.LocaleQR, 7, methods)
	require.Len(t, markup.InlineKeyboard, 3)
	assert.Equal(t, "7|1", markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "7|2", markup.InlineKeyboard[1][0].Data)
	// The trailing cancel button reopens the course card.
	assert.Equal(t, cbCourse, markup.InlineKeyboard[2][0].Unique)
	assert.Equal(t, "7", markup.InlineKeyboard[2][0].Data)
}

func TestPaymentDetailsTextSkipsEmptyRequisites(t *testing.T) {
	method := domain.PaymentMethod{Name: domain.LocalizedText{QR: "Humo"}, CardNumber: "8600 0000 0000 0000"}

	text := paymentDetailsText(domain.LocaleQR, sampleCourse(), method)
	assert.Contains(t, text, "8600 0000 0000 0000")
	assert.NotContains(t, text, "Bank:")
}

func TestPaymentDetailsTextLocalizedMethodName(t *testing.T) {
	method := domain.PaymentMethod{Name: domain.LocalizedText{QR: "Qaraqalpaq banki", UZ: "Qoraqalpoq banki"}}

	assert.Contains(t, paymentDetailsText(domain.LocaleQR, sampleCourse(), method), "Qaraqalpaq banki")
	assert.Contains(t, paymentDetailsText(domain.LocaleUZ, sampleCourse(), method), "Qoraqalpoq banki")

	// A method without an Uzbek name falls back to the Karakalpak one.
	method.Name.UZ = ""
	assert.Contains(t, paymentDetailsText(domain.LocaleUZ, sampleCourse(), method), "Qaraqalpaq banki")
}

func TestPendingPaymentMarkupPayload(t *testing.T) {
	markup := pendingPaymentMarkup(domain.LocaleQR, 31)

	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, cbCancelPending, markup.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "31", markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, cbBackToMenu, markup.InlineKeyboard[1][0].Unique)
}

func TestReceiptAcceptedTextFileName(t *testing.T) {
	info := &payments.Info{
		Payment: domain.Payment{Amount: 500000},
		Course:  sampleCourse(),
		Method:  domain.PaymentMethod{Name: domain.LocalizedText{QR: "Humo"}},
	}

	doc := receiptAcceptedText(domain.LocaleQR, info, false, "check.pdf")
	assert.Contains(t, doc, "check.pdf")

	photo := receiptAcceptedText(domain.LocaleQR, info, true, "check.pdf")
	assert.NotContains(t, photo, "check.pdf")
}

func TestAdminResolvedTextLinkDelivery(t *testing.T) {
	info := &payments.Info{
		User:   domain.User{FirstName: "Aybek"},
		Course: sampleCourse(),
	}

	info.LinkDelivered = true
	assert.Contains(t, adminResolvedText(info, true), "jiberildi")

	info.LinkDelivered = false
	assert.Contains(t, adminResolvedText(info, true), "qátelik")

	// Rejections never mention link delivery.
	assert.NotContains(t, adminResolvedText(info, false), "silteme")
}

func TestRejectedUserTextComment(t *testing.T) {
	info := &payments.Info{
		Payment: domain.Payment{Amount: 500000, AdminComment: "summa sáykes emes"},
		Course:  sampleCourse(),
		Method:  domain.PaymentMethod{Name: domain.LocalizedText{QR: "Humo"}},
	}

	text := rejectedUserText(domain.LocaleQR, info)
	assert.Contains(t, text, "summa sáykes emes")

	info.Payment.AdminComment = ""
	assert.NotContains(t, rejectedUserText(domain.LocaleQR, info), "summa sáykes emes")
}
