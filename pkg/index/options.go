package index

import (
	"github.com/apitools/endpointindex/internal/logger"
	"github.com/apitools/endpointindex/internal/state"
)

// Option is a functional option for configuring the Indexer.
type Option func(*Indexer) error

// WithConfig replaces the entire configuration.
func WithConfig(config *Config) Option {
	return func(ix *Indexer) error {
		if config != nil {
			ix.config = config
		}
		return nil
	}
}

// WithRoot sets the repository root directory.
func WithRoot(dir string) Option {
	return func(ix *Indexer) error {
		if dir != "" {
			ix.config.RootDir = dir
		}
		return nil
	}
}

// WithFormat sets the output format.
func WithFormat(format string) Option {
	return func(ix *Indexer) error {
		ix.config.Format = format
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(ix *Indexer) error {
		if log != nil {
			ix.log = log
		}
		return nil
	}
}

// WithStore sets the run-history store. The caller retains ownership
// and is responsible for closing it.
func WithStore(store state.Store) Option {
	return func(ix *Indexer) error {
		ix.store = store
		return nil
	}
}
