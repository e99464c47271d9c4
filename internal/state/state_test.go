package state

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()

	store, err := NewBoltStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestBoltStore_EmptyHistory(t *testing.T) {
	store := newTestStore(t)

	latest, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest != nil {
		t.Errorf("Latest() = %+v, want nil for empty store", latest)
	}

	snaps, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("len(List()) = %d, want 0", len(snaps))
	}
}

func TestBoltStore_AppendAndLatest(t *testing.T) {
	store := newTestStore(t)

	snap := &Snapshot{
		IndexHash:     "abc123",
		EndpointCount: 42,
		Source:        "docs/api/discovery.json",
		Output:        "docs/api/endpoints.txt",
		GeneratedAt:   time.Now().UTC(),
	}
	if err := store.Append(snap); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	latest, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest == nil {
		t.Fatal("Latest() = nil, want snapshot")
	}
	if latest.IndexHash != snap.IndexHash {
		t.Errorf("IndexHash = %q, want %q", latest.IndexHash, snap.IndexHash)
	}
	if latest.EndpointCount != snap.EndpointCount {
		t.Errorf("EndpointCount = %d, want %d", latest.EndpointCount, snap.EndpointCount)
	}
}

func TestBoltStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		snap := &Snapshot{
			IndexHash:     fmt.Sprintf("hash-%d", i),
			EndpointCount: i,
			GeneratedAt:   time.Now().UTC(),
		}
		if err := store.Append(snap); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	snaps, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(snaps) != 5 {
		t.Fatalf("len(List()) = %d, want 5", len(snaps))
	}
	for i, snap := range snaps {
		want := fmt.Sprintf("hash-%d", 4-i)
		if snap.IndexHash != want {
			t.Errorf("snaps[%d].IndexHash = %q, want %q", i, snap.IndexHash, want)
		}
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}
	if err := store.Append(&Snapshot{IndexHash: "persist-me", EndpointCount: 7}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore() reopen error = %v", err)
	}
	defer reopened.Close()

	latest, err := reopened.Latest()
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest == nil || latest.IndexHash != "persist-me" {
		t.Errorf("Latest() = %+v, want persisted snapshot", latest)
	}
}

func TestBoltStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}
	defer store.Close()

	if store.Path() != path {
		t.Errorf("Path() = %q, want %q", store.Path(), path)
	}
}
