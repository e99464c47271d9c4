package discovery

import (
	"encoding/json"
	"os"

	"github.com/apitools/endpointindex/internal/errors"
)

// Load reads and parses a discovery document from path. A missing file
// and malformed JSON are reported as distinct error types; a document
// without a top-level resources field loads successfully with nil
// Resources.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(path, err)
		}
		return nil, errors.NewIOError(path, "read", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.NewParseError(path, err)
	}

	return doc, nil
}
