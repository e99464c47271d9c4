// Package state persists a history of index generation runs.
package state

import (
	"time"
)

// Snapshot records one successful index generation.
type Snapshot struct {
	IndexHash     string    `json:"index_hash"`
	EndpointCount int       `json:"endpoint_count"`
	Source        string    `json:"source"`
	Output        string    `json:"output"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// Store persists generation snapshots.
type Store interface {
	// Append records a new snapshot.
	Append(snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil when no runs
	// have been recorded.
	Latest() (*Snapshot, error)

	// List returns all snapshots, newest first.
	List() ([]*Snapshot, error)

	// Close releases the underlying storage.
	Close() error
}
