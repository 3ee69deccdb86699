package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/venuesync/venuesync/pkg/catalog"
	"github.com/venuesync/venuesync/pkg/venue"
)

// fakeEventLister serves a canned event list.
type fakeEventLister struct {
	events []venue.Event
	err    error
}

func (f *fakeEventLister) Events(ctx context.Context) ([]venue.Event, error) {
	return f.events, f.err
}

// fakeSearcher resolves artist names from a fixed map.
type fakeSearcher struct {
	results map[string][]catalog.Artist
	queries []string
}

func (f *fakeSearcher) Artists(ctx context.Context, query string, limit int) ([]catalog.Artist, error) {
	f.queries = append(f.queries, query)
	return f.results[query], nil
}

// fakeTracks serves top tracks from a fixed map.
type fakeTracks struct {
	byArtist map[string][]catalog.Track
	calls    []string
	err      error
}

func (f *fakeTracks) TopTracks(ctx context.Context, artistID string) ([]catalog.Track, error) {
	f.calls = append(f.calls, artistID)
	if f.err != nil {
		return nil, f.err
	}
	return f.byArtist[artistID], nil
}

// fakePlaylists records sync operations.
type fakePlaylists struct {
	existing  map[string]string // name -> id
	removed   int
	added     []string
	addErr    error
	createdID string
}

func (f *fakePlaylists) FindOrCreateByName(ctx context.Context, name, description string) (*catalog.Playlist, error) {
	if id, ok := f.existing[name]; ok {
		return &catalog.Playlist{ID: id, Name: name}, nil
	}
	f.createdID = "pl-created"
	return &catalog.Playlist{ID: f.createdID, Name: name}, nil
}

func (f *fakePlaylists) RemoveAll(ctx context.Context, playlistID string) (int, error) {
	f.removed++
	return 4, nil
}

func (f *fakePlaylists) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, trackIDs...)
	return nil
}

func TestFetchShows(t *testing.T) {
	lister := &fakeEventLister{events: []venue.Event{
		{Name: "Vampire Weekend + Courtney Barnett", Date: "2026-09-01", URL: "https://tix/1",
			Artists: []venue.EventArtist{{DiscoveryID: "d1", Name: "Vampire Weekend", Genre: "Indie"}}},
		{Name: "", Date: "2026-09-02"}, // untitled events are skipped
	}}

	shows, err := FetchShows(context.Background(), lister, zerolog.Nop())
	if err != nil {
		t.Fatalf("FetchShows() error: %v", err)
	}
	if len(shows) != 1 {
		t.Fatalf("expected 1 show, got %d", len(shows))
	}
	if shows[0].Title != "Vampire Weekend + Courtney Barnett" {
		t.Errorf("unexpected title: %s", shows[0].Title)
	}
	if len(shows[0].Artists) != 1 || shows[0].Artists[0].Name != "Vampire Weekend" {
		t.Errorf("unexpected bill: %+v", shows[0].Artists)
	}
}

func TestResolveArtists(t *testing.T) {
	t.Run("partial resolution skips the miss", func(t *testing.T) {
		// Only Vampire Weekend exists in the catalog: the show keeps
		// one artist and Courtney Barnett is absent with a logged skip.
		searcher := &fakeSearcher{results: map[string][]catalog.Artist{
			"Vampire Weekend": {{ID: "vw", Name: "Vampire Weekend", Popularity: 71}},
		}}
		shows := []Show{{Title: "Vampire Weekend + Courtney Barnett"}}

		resolved, err := ResolveArtists(context.Background(), searcher, shows, 0, zerolog.Nop())
		if err != nil {
			t.Fatalf("ResolveArtists() error: %v", err)
		}

		if len(searcher.queries) != 2 {
			t.Errorf("expected 2 searches, got %v", searcher.queries)
		}
		if len(resolved) != 1 {
			t.Fatalf("expected 1 resolved artist, got %d", len(resolved))
		}
		if resolved[0].ID != "vw" || resolved[0].SearchTerm != "Vampire Weekend" {
			t.Errorf("unexpected resolution: %+v", resolved[0])
		}
	})

	t.Run("venue bill takes precedence over title splitting", func(t *testing.T) {
		searcher := &fakeSearcher{results: map[string][]catalog.Artist{
			"The Band": {{ID: "b1", Name: "The Band"}},
		}}
		shows := []Show{{
			Title:   "The Band and Friends: Farewell Tour",
			Artists: []ShowArtist{{Name: "The Band"}},
		}}

		resolved, err := ResolveArtists(context.Background(), searcher, shows, 0, zerolog.Nop())
		if err != nil {
			t.Fatalf("ResolveArtists() error: %v", err)
		}
		if len(searcher.queries) != 1 || searcher.queries[0] != "The Band" {
			t.Errorf("expected a single bill-derived search, got %v", searcher.queries)
		}
		if len(resolved) != 1 {
			t.Errorf("expected 1 resolved artist, got %d", len(resolved))
		}
	})
}

func TestCollectTracks(t *testing.T) {
	t.Run("fetches once per artist id", func(t *testing.T) {
		fetcher := &fakeTracks{byArtist: map[string][]catalog.Track{
			"vw": {{ID: "t1", Name: "A-Punk", DurationMS: 138000}},
		}}
		artists := []ResolvedArtist{
			{ShowTitle: "Night One", SearchTerm: "Vampire Weekend", ID: "vw", Name: "Vampire Weekend"},
			{ShowTitle: "Night Two", SearchTerm: "Vampire Weekend", ID: "vw", Name: "Vampire Weekend"},
		}

		records, err := CollectTracks(context.Background(), fetcher, artists, 0, zerolog.Nop())
		if err != nil {
			t.Fatalf("CollectTracks() error: %v", err)
		}
		if len(fetcher.calls) != 1 {
			t.Errorf("expected 1 top-tracks call, got %v", fetcher.calls)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].ArtistID != "vw" || records[0].ID != "t1" {
			t.Errorf("unexpected record: %+v", records[0])
		}
	})

	t.Run("vanished artist is skipped", func(t *testing.T) {
		fetcher := &fakeTracks{err: &catalog.Error{StatusCode: http.StatusNotFound, Message: "non existing id"}}
		artists := []ResolvedArtist{{ShowTitle: "Show", SearchTerm: "Gone", ID: "gone", Name: "Gone"}}

		records, err := CollectTracks(context.Background(), fetcher, artists, 0, zerolog.Nop())
		if err != nil {
			t.Fatalf("CollectTracks() error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
	})
}

func TestSyncPlaylist(t *testing.T) {
	t.Run("clears then appends", func(t *testing.T) {
		client := &fakePlaylists{existing: map[string]string{"Brooklyn Paramount": "pl-1"}}
		tracks := []TrackRecord{
			{ArtistID: "vw", ArtistName: "Vampire Weekend", ID: "t1", Name: "A-Punk"},
			{ArtistID: "vw", ArtistName: "Vampire Weekend", ID: "t2", Name: "Oxford Comma"},
		}

		result, err := SyncPlaylist(context.Background(), client, "Brooklyn Paramount", "", tracks, zerolog.Nop())
		if err != nil {
			t.Fatalf("SyncPlaylist() error: %v", err)
		}
		if result.PlaylistID != "pl-1" || result.Added != 2 || result.Removed != 4 {
			t.Errorf("unexpected result: %+v", result)
		}
		if client.removed != 1 {
			t.Errorf("expected playlist cleared exactly once, got %d", client.removed)
		}
		if len(client.added) != 2 || client.added[0] != "t1" {
			t.Errorf("unexpected added tracks: %v", client.added)
		}
	})

	t.Run("failed append aborts", func(t *testing.T) {
		client := &fakePlaylists{
			existing: map[string]string{"Brooklyn Paramount": "pl-1"},
			addErr:   fmt.Errorf("batch rejected"),
		}
		tracks := []TrackRecord{{ArtistID: "a", ArtistName: "A", ID: "t1", Name: "One"}}

		if _, err := SyncPlaylist(context.Background(), client, "Brooklyn Paramount", "", tracks, zerolog.Nop()); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
