package domain

import (
	"path/filepath"
	"strings"

	"github.com/m3rciful/coursebot/internal/apperr"
)

// MaxReceiptSize caps uploaded receipt documents at 10 MiB.
const MaxReceiptSize = 10 * 1024 * 1024

var receiptMIMETypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// ValidateReceiptDocument checks a document upload against the accepted
// receipt formats. Photo uploads skip this: Telegram re-encodes photos to
// JPEG, so only documents carry an untrusted MIME type.
func ValidateReceiptDocument(mime string, size int64) error {
	if size > MaxReceiptSize {
		return apperr.New(apperr.KindValidation, "error_file_too_large")
	}
	if _, ok := receiptMIMETypes[strings.ToLower(mime)]; !ok {
		return apperr.New(apperr.KindValidation, "error_unsupported_format")
	}
	return nil
}

// ReceiptExtension resolves the stored file extension for an upload. The
// document's own filename wins when it carries a known extension, otherwise
// the MIME type decides. Photos always come back as .jpg.
func ReceiptExtension(mime, fileName string) string {
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" {
		switch ext {
		case ".pdf", ".jpg", ".jpeg", ".png":
			return ext
		}
	}
	if ext, ok := receiptMIMETypes[strings.ToLower(mime)]; ok {
		return ext
	}
	return ".jpg"
}
