package textsplitter

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkSize  int
		overlap    int
		wantChunks int
	}{
		{name: "short text single chunk", text: "hello world", chunkSize: 100, overlap: 10, wantChunks: 1},
		{name: "exact fit single chunk", text: strings.Repeat("a", 100), chunkSize: 100, overlap: 10, wantChunks: 1},
		{name: "two chunks", text: strings.Repeat("a", 150), chunkSize: 100, overlap: 10, wantChunks: 2},
		{name: "empty text", text: "", chunkSize: 100, overlap: 10, wantChunks: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.chunkSize, tt.overlap)
			if len(chunks) != tt.wantChunks {
				t.Errorf("got %d chunks, want %d", len(chunks), tt.wantChunks)
			}
		})
	}
}

func TestSplitOverlap(t *testing.T) {
	// 0-9 digits repeated so positions are recognizable.
	text := strings.Repeat("0123456789", 3)
	chunks := Split(text, 10, 3)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	first, second := chunks[0], chunks[1]
	if !strings.HasPrefix(second, first[len(first)-3:]) {
		t.Errorf("second chunk %q does not start with the 3-char tail of %q", second, first)
	}
}

func TestSplitCoversWholeText(t *testing.T) {
	text := strings.Repeat("abcdefghij", 25)
	chunks := Split(text, 40, 8)

	if !strings.HasSuffix(chunks[len(chunks)-1], text[len(text)-8:]) {
		t.Error("final chunk does not reach the end of the text")
	}

	// Walking the chunks with the overlap stripped reproduces the text.
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		if len(chunk) > 8 {
			rebuilt.WriteString(chunk[8:])
		}
	}
	if rebuilt.String() != text {
		t.Error("chunks with overlap removed do not reassemble the original text")
	}
}

func TestSplitRuneSafety(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 20)
	for _, chunk := range Split(text, 30, 5) {
		if strings.ContainsRune(chunk, '�') {
			t.Fatalf("chunk contains a broken rune: %q", chunk)
		}
	}
}

func TestSplitOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := Split(text, 10, 15)
	// Degenerate overlap falls back to non-overlapping steps instead
	// of looping forever.
	if len(chunks) != 5 {
		t.Errorf("got %d chunks, want 5", len(chunks))
	}
}
