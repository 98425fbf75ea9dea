// Package preview materializes a fetched résumé document for display. A
// Handle owns a temporary file holding the binary and the plain text
// extracted from it; the owner must Release it when the selection changes
// or the view is torn down.
package preview

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// Handle is an in-memory reference to a fetched document. At most one
// handle should exist per view at a time.
type Handle struct {
	path string
	text string
}

// Materialize writes data to a temporary file and extracts its plain text.
// The returned handle owns the file even when extraction fails; Text is
// empty in that case.
func Materialize(data []byte) (*Handle, error) {
	f, err := os.CreateTemp("", "skillsense-cv-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	f.Close()

	h := &Handle{path: f.Name()}
	h.text, _ = extractText(data)
	return h, nil
}

// Path returns the temporary file location, or "" after Release.
func (h *Handle) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}

// Text returns the extracted plain text, or "" when extraction failed.
func (h *Handle) Text() string {
	if h == nil {
		return ""
	}
	return h.text
}

// Release removes the temporary file. Safe to call on nil and more than
// once.
func (h *Handle) Release() {
	if h == nil || h.path == "" {
		return
	}
	os.Remove(h.path)
	h.path = ""
	h.text = ""
}

func extractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	r, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf content: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
