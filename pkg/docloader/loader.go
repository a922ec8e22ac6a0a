// Package docloader extracts plain text from uploaded documents.
package docloader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for any extension other than
// .pdf, .txt or .docx.
type ErrUnsupportedFormat struct {
	Extension string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported file format: %q", e.Extension)
}

// Load reads the document at path and returns its plain text content.
func Load(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return loadPDF(path)
	case ".txt":
		return loadTXT(path)
	case ".docx":
		return loadDOCX(path)
	default:
		return "", &ErrUnsupportedFormat{Extension: ext}
	}
}

// Format returns the format tag for a file name, or an error for
// unsupported extensions.
func Format(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf", ".txt", ".docx":
		return ext[1:], nil
	default:
		return "", &ErrUnsupportedFormat{Extension: ext}
	}
}
