// Package i18n holds the user-facing message catalog in Karakalpak and
// Uzbek. Admin-facing texts are single-language and live next to the admin
// handlers instead.
package i18n

import (
	"fmt"

	"github.com/m3rciful/coursebot/internal/domain"
)

// Text returns the message for key in the given locale. Unknown keys come
// back wrapped in brackets so a missing entry is visible in the chat
// instead of silently dropping the reply.
func Text(key string, loc domain.Locale) string {
	msg, ok := catalog[key]
	if !ok {
		return "⟦" + key + "⟧"
	}
	return msg.In(loc)
}

// Textf formats the message for key with fmt verbs. Argument order per key
// is noted in the catalog.
func Textf(key string, loc domain.Locale, args ...any) string {
	return fmt.Sprintf(Text(key, loc), args...)
}

// Has reports whether the catalog contains key.
func Has(key string) bool {
	_, ok := catalog[key]
	return ok
}
