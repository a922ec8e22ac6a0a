package textsplitter

// Defaults matching the ingestion pipeline: ~1000 characters per chunk
// with 100 characters of overlap to preserve context at boundaries.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 100
)

// Split cuts a long string into chunks of approximately chunkSize
// characters with the given overlap. Character-based; rune-safe.
func Split(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
