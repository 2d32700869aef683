// Package extract converts source documents into raw text.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyDocument signals that extraction produced no text at all.
// Callers skip the document; the monitoring loop is unaffected.
var ErrEmptyDocument = errors.New("extract: document contains no extractable text")

// Extractor converts a document at path into raw text. An error means
// the document must be skipped (corrupt file, unsupported structure,
// empty content); it never aborts monitoring.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// PDFExtractor extracts the plain-text content of a PDF, all pages
// concatenated.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract implements the Extractor interface.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("extract: open %s: %w", path, err)
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract: read text of %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("extract: read text of %s: %w", path, err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
