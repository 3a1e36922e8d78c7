package i18n

import (
	"strings"
	"testing"

	"github.com/m3rciful/coursebot/internal/domain"
)

func TestTextLocaleSelection(t *testing.T) {
	qr := Text("main_menu_title", domain.LocaleQR)
	uz := Text("main_menu_title", domain.LocaleUZ)
	if qr == "" || uz == "" {
		t.Fatal("main_menu_title must exist in both locales")
	}
	if qr == uz {
		t.Fatal("main_menu_title must differ between locales")
	}
}

func TestTextUnknownKey(t *testing.T) {
	got := Text("no_such_key", domain.LocaleQR)
	if !strings.Contains(got, "no_such_key") {
		t.Fatalf("unknown key must surface the key, got %q", got)
	}
}

func TestTextfDiscount(t *testing.T) {
	got := Textf("discount_label", domain.LocaleQR, 25)
	if !strings.Contains(got, "-25%") {
		t.Fatalf("discount_label formatting broken: %q", got)
	}
	if strings.Contains(got, "%!") || strings.Contains(got, "%d") {
		t.Fatalf("unconsumed fmt verb in %q", got)
	}
}

func TestCatalogHasNoStrayBraces(t *testing.T) {
	// All placeholders were converted to fmt verbs; a leftover {name} brace
	// means a key was missed.
	for key, msg := range catalog {
		for _, s := range []string{msg.QR, msg.UZ} {
			if strings.Contains(s, "{") || strings.Contains(s, "}") {
				t.Errorf("key %s still carries a brace placeholder", key)
			}
		}
	}
}

func TestCatalogFallback(t *testing.T) {
	for _, key := range []string{
		"welcome_prompt_language", "contact_saved", "courses_list_title",
		"send_receipt_prompt", "payment_approved_title", "payment_rejected_title",
		"help_text", "error_unsupported_format", "error_file_too_large",
	} {
		if !Has(key) {
			t.Errorf("catalog missing key %s", key)
		}
		if Text(key, domain.LocaleQR) == "" {
			t.Errorf("key %s has empty qr text", key)
		}
	}
}
