package qa

import (
	"regexp"
	"strings"
)

// friendlyPhrases is the closed set of greetings and pleasantries that
// short-circuit the retrieval pipeline.
var friendlyPhrases = map[string]struct{}{
	"hi":              {},
	"hello":           {},
	"hey":             {},
	"how are you":     {},
	"good morning":    {},
	"good evening":    {},
	"good afternoon":  {},
	"can you help me": {},
	"who are you":     {},
	"what do you do":  {},
	"are you a bot":   {},
	"nice to meet you": {},
	"thank you":       {},
	"thanks":          {},
	"bye":             {},
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// IsFriendly reports whether the query is a plain greeting or pleasantry.
// The normalized string must match a phrase exactly; a greeting buried in
// a longer sentence does not count.
func IsFriendly(query string) bool {
	normalized := nonWordRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(query)), "")
	_, ok := friendlyPhrases[normalized]
	return ok
}
