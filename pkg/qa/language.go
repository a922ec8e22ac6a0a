package qa

// languageCodes maps display names to ISO-639-1 codes. The resolver
// intentionally knows more languages than the selector offers.
var languageCodes = map[string]string{
	"English":  "en",
	"Hindi":    "hi",
	"Spanish":  "es",
	"French":   "fr",
	"German":   "de",
	"Gujarati": "gu",
	"Tamil":    "ta",
	"Telugu":   "te",
	"Thai":     "th",
	"Arabic":   "ar",
}

// offeredLanguages is the subset shown in the language selector.
var offeredLanguages = []string{"English", "Hindi", "Thai", "Spanish", "Arabic"}

// ResolveLanguage maps a display name to its language code.
// Unknown names resolve to "en"; this never fails.
func ResolveLanguage(displayName string) string {
	if code, ok := languageCodes[displayName]; ok {
		return code
	}
	return "en"
}

// OfferedLanguages returns the display names offered by the selector,
// in presentation order.
func OfferedLanguages() []string {
	out := make([]string, len(offeredLanguages))
	copy(out, offeredLanguages)
	return out
}
