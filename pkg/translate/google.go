package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator translates through the public Google translation
// endpoint. No API key; the endpoint is the same one the web widget
// uses, which keeps this prototype dependency-free on credentials.
type GoogleTranslator struct {
	Endpoint string
	Client   *http.Client
}

var _ Translator = &GoogleTranslator{}

func NewGoogleTranslator() *GoogleTranslator {
	return &GoogleTranslator{
		Endpoint: defaultEndpoint,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *GoogleTranslator) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	if sourceLang == "" {
		sourceLang = "auto"
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", sourceLang)
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	reqURL := fmt.Sprintf("%s?%s", g.Endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", &ServiceError{Reason: "create request", Err: err}
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", &ServiceError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServiceError{Reason: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{Reason: fmt.Sprintf("status %d: %s", resp.StatusCode, string(bodyBytes))}
	}

	translated, err := parseTranslation(bodyBytes)
	if err != nil {
		return "", &ServiceError{Reason: "parse response", Err: err}
	}
	return translated, nil
}

// parseTranslation walks the endpoint's nested-array response:
// [[["<translated>","<original>",...], ...], ...]. Segments are
// concatenated in order.
func parseTranslation(body []byte) (string, error) {
	var payload []interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation payload")
	}

	segments, ok := payload[0].([]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected translation payload shape")
	}

	var out strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]interface{})
		if !ok || len(parts) == 0 {
			continue
		}
		if piece, ok := parts[0].(string); ok {
			out.WriteString(piece)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("no translated segments in payload")
	}
	return out.String(), nil
}
