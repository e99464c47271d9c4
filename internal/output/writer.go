// Package output provides output formatting for the endpoint index.
package output

import (
	"io"
)

// Format names accepted by NewWriter.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Writer defines the interface for index writers.
type Writer interface {
	// WriteResult writes the complete generation result
	WriteResult(result *Result) error

	// Flush flushes any buffered output
	Flush() error

	// Close closes the writer
	Close() error
}

// Config holds output configuration.
type Config struct {
	Format string
	Pretty bool
}

// NewWriter creates a writer for the configured format. Unknown
// formats fall back to the text table, which is the committed-index
// format.
func NewWriter(w io.Writer, config Config) Writer {
	switch config.Format {
	case FormatJSON:
		return NewJSONWriter(w, config.Pretty)
	default:
		return NewTextWriter(w)
	}
}
