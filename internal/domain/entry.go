package domain

import "time"

// LocalizationEntry holds one translatable string: the authoritative English
// source plus one field per target locale. Key is globally unique.
type LocalizationEntry struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	En        string    `json:"en"`
	Es        string    `json:"es"`
	Fr        string    `json:"fr"`
	De        string    `json:"de"`
	Ja        string    `json:"ja"`
	Zh        string    `json:"zh"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Value returns the stored text for the given locale, empty for unknown codes.
func (e *LocalizationEntry) Value(locale string) string {
	switch locale {
	case SourceLocale:
		return e.En
	case "es":
		return e.Es
	case "fr":
		return e.Fr
	case "de":
		return e.De
	case "ja":
		return e.Ja
	case "zh":
		return e.Zh
	}
	return ""
}

// SetValue stores text for the given locale and reports whether the code was known.
func (e *LocalizationEntry) SetValue(locale, text string) bool {
	switch locale {
	case SourceLocale:
		e.En = text
	case "es":
		e.Es = text
	case "fr":
		e.Fr = text
	case "de":
		e.De = text
	case "ja":
		e.Ja = text
	case "zh":
		e.Zh = text
	default:
		return false
	}
	return true
}
