package qa

import (
	"context"
	"strings"

	"doc-voicebot-be/pkg/store"
)

// historyWindow is how many of the most recent turns are read when
// building the prompt. Older turns stay in the session but never reach
// the model.
const historyWindow = 5

// FormatHistory renders the most recent conversation turns into the
// textual block injected into the generation prompt. The prompt is
// always assembled in English, so when the session language is not
// English both sides of each turn are translated first; a failed
// translation keeps the original text rather than dropping the turn.
func FormatHistory(ctx context.Context, history []store.Turn, targetLang string, translator Translator) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var block strings.Builder
	for _, turn := range history {
		q := strings.TrimSpace(turn.Query)
		a := strings.TrimSpace(turn.Response)
		if q == "" || a == "" || IsFriendly(q) {
			continue
		}
		if targetLang != "en" && translator != nil {
			if tq, err := translator.Translate(ctx, q, "en", "auto"); err == nil {
				q = tq
			}
			if ta, err := translator.Translate(ctx, a, "en", "auto"); err == nil {
				a = ta
			}
		}
		block.WriteString("User: ")
		block.WriteString(q)
		block.WriteString("\nAssistant: ")
		block.WriteString(a)
		block.WriteString("\n")
	}
	return block.String()
}
