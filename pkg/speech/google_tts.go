package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"
)

const defaultTTSEndpoint = "https://translate.google.com/translate_tts"

// The endpoint rejects long inputs, so text is synthesized in chunks
// and the MPEG streams concatenated (valid for MP3 framing).
const maxTTSChunk = 200

// GoogleSynthesizer renders speech through the Google translate TTS
// endpoint, returning MP3 bytes.
type GoogleSynthesizer struct {
	Endpoint string
	Client   *http.Client
}

var _ Synthesizer = &GoogleSynthesizer{}

func NewGoogleSynthesizer() *GoogleSynthesizer {
	return &GoogleSynthesizer{
		Endpoint: defaultTTSEndpoint,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string, languageCode string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	var out []byte
	for _, chunk := range chunkText(text, maxTTSChunk) {
		mp3, err := g.synthesizeChunk(ctx, chunk, languageCode)
		if err != nil {
			return nil, err
		}
		out = append(out, mp3...)
	}
	return out, nil
}

func (g *GoogleSynthesizer) synthesizeChunk(ctx context.Context, text string, languageCode string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", languageCode)
	params.Set("q", text)

	reqURL := fmt.Sprintf("%s?%s", g.Endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts service error: status %d (language %q may be unsupported)", resp.StatusCode, languageCode)
	}

	return io.ReadAll(resp.Body)
}

// chunkText splits on rune boundaries, preferring to break after a
// space so words stay intact.
func chunkText(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > 0 {
		if len(runes) <= limit {
			chunks = append(chunks, string(runes))
			break
		}
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == ' ' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	return chunks
}
