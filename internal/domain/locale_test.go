package domain

import "testing"

func TestNormalizeLocale(t *testing.T) {
	if got := NormalizeLocale("uz"); got != LocaleUZ {
		t.Fatalf("NormalizeLocale(uz) = %s", got)
	}
	for _, raw := range []string{"qr", "", "ru", "en"} {
		if got := NormalizeLocale(raw); got != LocaleQR {
			t.Fatalf("NormalizeLocale(%q) = %s, want qr", raw, got)
		}
	}
}

func TestLocalizedTextFallback(t *testing.T) {
	full := LocalizedText{QR: "salem", UZ: "salom"}
	if got := full.In(LocaleUZ); got != "salom" {
		t.Fatalf("In(uz) = %q", got)
	}
	if got := full.In(LocaleQR); got != "salem" {
		t.Fatalf("In(qr) = %q", got)
	}

	qrOnly := LocalizedText{QR: "salem"}
	if got := qrOnly.In(LocaleUZ); got != "salem" {
		t.Fatalf("In(uz) with empty uz = %q, want qr fallback", got)
	}
}
