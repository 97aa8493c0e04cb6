package domain

// SourceLocale is the authoring language; every other locale is derived from it.
const SourceLocale = "en"

// TargetLocales lists the translated locales in processing order.
var TargetLocales = []string{"es", "fr", "de", "ja", "zh"}

var localeNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"ja": "Japanese",
	"zh": "Chinese (Simplified)",
}

// AllLocales returns the source locale followed by the target locales.
func AllLocales() []string {
	out := make([]string, 0, len(TargetLocales)+1)
	out = append(out, SourceLocale)
	out = append(out, TargetLocales...)
	return out
}

func IsLocale(code string) bool {
	_, ok := localeNames[code]
	return ok
}

func IsTargetLocale(code string) bool {
	return code != SourceLocale && IsLocale(code)
}

// LocaleName returns the English display name used in provider prompts.
func LocaleName(code string) string {
	if n, ok := localeNames[code]; ok {
		return n
	}
	return code
}
