package index

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/apitools/endpointindex/internal/discovery"
	"github.com/apitools/endpointindex/internal/errors"
	"github.com/apitools/endpointindex/internal/extract"
	"github.com/apitools/endpointindex/internal/logger"
	"github.com/apitools/endpointindex/internal/openapi"
	"github.com/apitools/endpointindex/internal/output"
	"github.com/apitools/endpointindex/internal/state"
)

// Indexer loads a discovery document and produces the endpoint index.
type Indexer struct {
	config *Config
	log    *logger.Logger
	store  state.Store
}

// New creates an Indexer with the given options.
func New(opts ...Option) (*Indexer, error) {
	ix := &Indexer{
		config: DefaultConfig(),
		log:    logger.Global().WithComponent("indexer"),
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	if err := ix.config.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	return ix, nil
}

// Config returns the active configuration.
func (ix *Indexer) Config() *Config {
	return ix.config
}

// load reads the discovery document and flattens its resources. A
// document without a resources field yields an empty endpoint list.
func (ix *Indexer) load() (*discovery.Document, []extract.Endpoint, error) {
	in := ix.config.InputPath()

	doc, err := discovery.Load(in)
	if err != nil {
		return nil, nil, err
	}
	ix.log.WithPath(in).Debugf("loaded discovery document %s %s", doc.Name, doc.Version)

	return doc, extract.Flatten(doc.Resources, ""), nil
}

// Generate runs the full pipeline: load the discovery document,
// flatten it, write the index file, and record a run snapshot when a
// store is configured. It returns the result for summary reporting.
func (ix *Indexer) Generate() (*output.Result, error) {
	start := time.Now()

	doc, endpoints, err := ix.load()
	if err != nil {
		return nil, err
	}

	result := &output.Result{
		Source:      ix.config.InputPath(),
		API:         doc.Name,
		Version:     doc.Version,
		GeneratedAt: start.UTC(),
		Stats:       output.ComputeStats(endpoints),
		Endpoints:   endpoints,
	}

	out := ix.config.OutputPath()
	f, err := os.Create(out)
	if err != nil {
		return nil, errors.NewIOError(out, "create", err)
	}

	w := output.NewWriter(f, output.Config{
		Format: ix.config.Format,
		Pretty: ix.config.Pretty,
	})
	if err := w.WriteResult(result); err != nil {
		f.Close()
		return nil, errors.NewIOError(out, "write", err)
	}
	if err := w.Close(); err != nil {
		return nil, errors.NewIOError(out, "close", err)
	}

	ix.log.IndexEvent(result.Source, len(endpoints), time.Since(start))

	if ix.store != nil {
		if err := ix.record(result); err != nil {
			// The index itself was written; a history failure is not fatal.
			ix.log.WithError(err).Warn("failed to record run snapshot")
		}
	}

	return result, nil
}

// record appends a snapshot of this run and logs the delta against the
// previous one.
func (ix *Indexer) record(result *output.Result) error {
	hash := IndexHash(result.Endpoints)

	prev, err := ix.store.Latest()
	if err != nil {
		return err
	}

	if prev != nil {
		switch {
		case prev.IndexHash == hash:
			ix.log.Debug("index unchanged since last run")
		default:
			ix.log.Infof("index changed: %d -> %d endpoints", prev.EndpointCount, result.Stats.EndpointCount)
		}
	}

	return ix.store.Append(&state.Snapshot{
		IndexHash:     hash,
		EndpointCount: result.Stats.EndpointCount,
		Source:        result.Source,
		Output:        ix.config.OutputPath(),
		GeneratedAt:   result.GeneratedAt,
	})
}

// Check regenerates the text index in memory and compares it to the
// file on disk. It returns a stale error when the file is missing or
// out of date; nothing is written.
func (ix *Indexer) Check() error {
	_, endpoints, err := ix.load()
	if err != nil {
		return err
	}
	want := output.RenderText(endpoints)

	out := ix.config.OutputPath()
	got, err := os.ReadFile(out)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewStaleError(out, "index file missing; run generate")
		}
		return errors.NewIOError(out, "read", err)
	}

	if !bytes.Equal(got, want) {
		return errors.NewStaleError(out, fmt.Sprintf("index is out of date (%d endpoints in document); run generate", len(endpoints)))
	}

	ix.log.WithPath(out).Debug("index is up to date")
	return nil
}

// Stats loads the document and returns the flattened result without
// writing anything.
func (ix *Indexer) Stats() (*output.Result, error) {
	doc, endpoints, err := ix.load()
	if err != nil {
		return nil, err
	}

	return &output.Result{
		Source:      ix.config.InputPath(),
		API:         doc.Name,
		Version:     doc.Version,
		GeneratedAt: time.Now().UTC(),
		Stats:       output.ComputeStats(endpoints),
		Endpoints:   endpoints,
	}, nil
}

// Export converts the discovery document to an OpenAPI 3 spec and
// writes it to path. It returns the number of exported operations,
// which excludes methods without a REST path.
func (ix *Indexer) Export(path string) (int, error) {
	in := ix.config.InputPath()

	doc, err := discovery.Load(in)
	if err != nil {
		return 0, err
	}

	spec := openapi.Convert(doc)
	if err := openapi.WriteFile(spec, path); err != nil {
		return 0, errors.NewIOError(path, "write", err)
	}

	count := openapi.CountOperations(spec)
	ix.log.WithPath(path).Infof("exported %d operations", count)
	return count, nil
}

// History returns recorded run snapshots, newest first.
func (ix *Indexer) History() ([]*state.Snapshot, error) {
	if ix.store == nil {
		return nil, errors.NewValidationError("run history requires a state store")
	}
	return ix.store.List()
}

// IndexHash returns the hex SHA-256 of the rendered text index. Equal
// hashes mean byte-identical index files.
func IndexHash(endpoints []extract.Endpoint) string {
	sum := sha256.Sum256(output.RenderText(endpoints))
	return hex.EncodeToString(sum[:])
}
