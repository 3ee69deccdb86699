package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestStoreWriteAndReadLatest(t *testing.T) {
	store := newTestStore(t)

	older := []Show{{Title: "Old Show"}}
	newer := []Show{{Title: "New Show"}}

	if _, err := store.Write(ShowsPrefix, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), older); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	path, err := store.Write(ShowsPrefix, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), newer)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if filepath.Base(path) != "shows_26-08-20.json" {
		t.Errorf("unexpected artifact name: %s", filepath.Base(path))
	}

	shows, err := store.ReadLatestShows()
	if err != nil {
		t.Fatalf("ReadLatestShows() error: %v", err)
	}
	if len(shows) != 1 || shows[0].Title != "New Show" {
		t.Errorf("expected latest artifact, got %+v", shows)
	}
}

func TestStoreMissingArtifact(t *testing.T) {
	store := newTestStore(t)

	_, err := store.ReadLatestArtists()
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var noArtifact *ErrNoArtifact
	if !errors.As(err, &noArtifact) {
		t.Fatalf("expected *ErrNoArtifact, got %T: %v", err, err)
	}

	// The message must tell the user which stage to rerun.
	if got := noArtifact.Error(); !strings.Contains(got, "artists") {
		t.Errorf("error does not name the stage to rerun: %s", got)
	}
}

func TestStoreValidationFailsFast(t *testing.T) {
	store := newTestStore(t)

	// An artist record without a catalog ID must fail at the read
	// boundary, not surface downstream.
	bad := `[{"show_title": "Some Show", "search_term": "Someone", "id": "", "name": "Someone"}]`
	path := filepath.Join(store.Dir(), "artist_list_26-08-20.json")
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}

	if _, err := store.ReadLatestArtists(); err == nil {
		t.Fatal("expected validation error, got nil")
	}
}

func TestStoreInvalidJSON(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(store.Dir(), "track_list_26-08-20.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}

	if _, err := store.ReadLatestTracks(); err == nil {
		t.Fatal("expected error, got nil")
	}
}
