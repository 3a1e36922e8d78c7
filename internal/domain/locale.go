package domain

// Locale identifies a supported interface language.
type Locale string

const (
	// LocaleQR is Karakalpak, the default language.
	LocaleQR Locale = "qr"
	// LocaleUZ is Uzbek.
	LocaleUZ Locale = "uz"
)

// NormalizeLocale maps arbitrary input to a supported locale, falling back
// to Karakalpak.
func NormalizeLocale(raw string) Locale {
	switch Locale(raw) {
	case LocaleUZ:
		return LocaleUZ
	default:
		return LocaleQR
	}
}

// LocalizedText holds a string in both supported languages.
type LocalizedText struct {
	QR string `db:"-" json:"qr"`
	UZ string `db:"-" json:"uz"`
}

// In returns the text for the locale, falling back to Karakalpak when the
// requested translation is empty.
func (t LocalizedText) In(loc Locale) string {
	if loc == LocaleUZ && t.UZ != "" {
		return t.UZ
	}
	return t.QR
}
