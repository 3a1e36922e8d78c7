package domain

import (
	"testing"

	"github.com/m3rciful/coursebot/internal/apperr"
)

func TestValidateReceiptDocument(t *testing.T) {
	if err := ValidateReceiptDocument("application/pdf", MaxReceiptSize); err != nil {
		t.Fatalf("pdf at the size limit must pass: %v", err)
	}
	if err := ValidateReceiptDocument("image/jpeg", 1024); err != nil {
		t.Fatalf("jpeg must pass: %v", err)
	}
	if err := ValidateReceiptDocument("IMAGE/PNG", 1024); err != nil {
		t.Fatalf("mime comparison must be case-insensitive: %v", err)
	}

	err := ValidateReceiptDocument("application/pdf", MaxReceiptSize+1)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("oversized file: got %v, want validation error", err)
	}
	if got := apperr.MsgKeyOf(err); got != "error_file_too_large" {
		t.Fatalf("oversized file msg key = %q", got)
	}

	err = ValidateReceiptDocument("application/zip", 1024)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("unsupported mime: got %v, want validation error", err)
	}
	if got := apperr.MsgKeyOf(err); got != "error_unsupported_format" {
		t.Fatalf("unsupported mime msg key = %q", got)
	}
}

func TestReceiptExtension(t *testing.T) {
	cases := []struct {
		mime, fileName, want string
	}{
		{"application/pdf", "receipt.PDF", ".pdf"},
		{"image/jpeg", "scan.jpeg", ".jpeg"},
		{"application/pdf", "", ".pdf"},
		{"image/png", "noext", ".png"},
		{"", "", ".jpg"},
		{"application/pdf", "receipt.docx", ".pdf"},
	}
	for _, tc := range cases {
		if got := ReceiptExtension(tc.mime, tc.fileName); got != tc.want {
			t.Fatalf("ReceiptExtension(%q, %q) = %q, want %q", tc.mime, tc.fileName, got, tc.want)
		}
	}
}

func TestPaymentStatusBlocking(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentPending, PaymentApproved} {
		if !s.Blocking() {
			t.Fatalf("%s must block a new purchase", s)
		}
	}
	for _, s := range []PaymentStatus{PaymentRejected, PaymentCancelled} {
		if s.Blocking() {
			t.Fatalf("%s must not block a new purchase", s)
		}
	}
}
