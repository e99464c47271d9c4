package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/apitools/endpointindex/internal/extract"
)

// Column widths of the committed endpoints.txt layout. Changing these
// breaks byte-compatibility with previously generated indexes.
const (
	methodColumnWidth = 6
	pathColumnWidth   = 60
)

// FormatLine renders one fixed-width index row.
func FormatLine(ep extract.Endpoint) string {
	return fmt.Sprintf("%-*s %-*s %s",
		methodColumnWidth, ep.HTTPMethod,
		pathColumnWidth, ep.Path,
		ep.QualifiedName)
}

// RenderText renders the full text index: one row per endpoint,
// newline-joined with a single trailing newline. An empty endpoint set
// renders as empty content, not a lone newline.
func RenderText(endpoints []extract.Endpoint) []byte {
	if len(endpoints) == 0 {
		return []byte{}
	}

	lines := make([]string, 0, len(endpoints))
	for _, ep := range endpoints {
		lines = append(lines, FormatLine(ep))
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// TextWriter writes the fixed-column text index.
type TextWriter struct {
	writer io.Writer
	closed bool
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{writer: w}
}

// WriteResult writes the endpoint table for the result.
func (t *TextWriter) WriteResult(result *Result) error {
	if t.closed {
		return nil
	}

	_, err := t.writer.Write(RenderText(result.Endpoints))
	return err
}

// Flush flushes the underlying writer if it supports it.
func (t *TextWriter) Flush() error {
	if flusher, ok := t.writer.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close closes the underlying writer if it supports it.
func (t *TextWriter) Close() error {
	t.closed = true

	if closer, ok := t.writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
