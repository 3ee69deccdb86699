package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindOrCreateByName(t *testing.T) {
	t.Run("finds existing playlist", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/me/playlists":
				fmt.Fprint(w, `{"items": [{"id": "pl-1", "name": "Brooklyn Paramount"}], "next": ""}`)
			default:
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		playlist, err := client.Playlists().FindOrCreateByName(context.Background(), "Brooklyn Paramount", "")
		if err != nil {
			t.Fatalf("FindOrCreateByName() error: %v", err)
		}
		if playlist.ID != "pl-1" {
			t.Errorf("expected pl-1, got %s", playlist.ID)
		}
	})

	t.Run("creates when missing", func(t *testing.T) {
		created := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/me/playlists":
				fmt.Fprint(w, `{"items": [{"id": "pl-9", "name": "Other List"}], "next": ""}`)
			case r.URL.Path == "/me":
				fmt.Fprint(w, `{"id": "user-1"}`)
			case r.URL.Path == "/users/user-1/playlists" && r.Method == "POST":
				created = true
				var body map[string]any
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode create body: %v", err)
				}
				if body["name"] != "Brooklyn Paramount" {
					t.Errorf("unexpected playlist name: %v", body["name"])
				}
				if body["public"] != false {
					t.Errorf("expected private playlist, got public=%v", body["public"])
				}
				fmt.Fprint(w, `{"id": "pl-new", "name": "Brooklyn Paramount"}`)
			default:
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		playlist, err := client.Playlists().FindOrCreateByName(context.Background(), "Brooklyn Paramount", "Tracks from upcoming shows")
		if err != nil {
			t.Fatalf("FindOrCreateByName() error: %v", err)
		}
		if !created {
			t.Error("expected playlist to be created")
		}
		if playlist.ID != "pl-new" {
			t.Errorf("expected pl-new, got %s", playlist.ID)
		}
	})
}

func TestAddTracks(t *testing.T) {
	t.Run("splits into batches of 100", func(t *testing.T) {
		var batches [][]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/playlists/pl-1/tracks" || r.Method != "POST" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			var body struct {
				URIs []string `json:"uris"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			batches = append(batches, body.URIs)
			fmt.Fprint(w, `{"snapshot_id": "snap"}`)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		ids := make([]string, 250)
		for i := range ids {
			ids[i] = fmt.Sprintf("track-%03d", i)
		}

		if err := client.Playlists().AddTracks(context.Background(), "pl-1", ids); err != nil {
			t.Fatalf("AddTracks() error: %v", err)
		}

		if len(batches) != 3 {
			t.Fatalf("expected 3 batches, got %d", len(batches))
		}
		if len(batches[0]) != 100 || len(batches[1]) != 100 || len(batches[2]) != 50 {
			t.Errorf("unexpected batch sizes: %d, %d, %d", len(batches[0]), len(batches[1]), len(batches[2]))
		}
		if batches[0][0] != "spotify:track:track-000" {
			t.Errorf("expected bare IDs to become URIs, got %s", batches[0][0])
		}
	})

	t.Run("failed batch aborts", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 2 {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error": {"status": 400, "message": "Invalid track uri"}}`)
				return
			}
			fmt.Fprint(w, `{"snapshot_id": "snap"}`)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		ids := make([]string, 150)
		for i := range ids {
			ids[i] = fmt.Sprintf("track-%03d", i)
		}

		err := client.Playlists().AddTracks(context.Background(), "pl-1", ids)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if calls != 2 {
			t.Errorf("expected abort after failed batch, got %d calls", calls)
		}
	})

	t.Run("no tracks is a no-op", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		if err := client.Playlists().AddTracks(context.Background(), "pl-1", nil); err != nil {
			t.Fatalf("AddTracks() error: %v", err)
		}
	})
}

func TestRemoveAll(t *testing.T) {
	var removed [][]map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			fmt.Fprint(w, `{
				"items": [
					{"track": {"uri": "spotify:track:t1"}},
					{"track": {"uri": "spotify:track:t2"}}
				],
				"next": ""
			}`)
		case "DELETE":
			var body struct {
				Tracks []map[string]string `json:"tracks"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			removed = append(removed, body.Tracks)
			fmt.Fprint(w, `{"snapshot_id": "snap"}`)
		default:
			t.Errorf("unexpected method: %s", r.Method)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	count, err := client.Playlists().RemoveAll(context.Background(), "pl-1")
	if err != nil {
		t.Fatalf("RemoveAll() error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 removed, got %d", count)
	}
	if len(removed) != 1 || len(removed[0]) != 2 {
		t.Errorf("unexpected delete batches: %+v", removed)
	}
	if removed[0][0]["uri"] != "spotify:track:t1" {
		t.Errorf("unexpected first removed uri: %s", removed[0][0]["uri"])
	}
}

func TestTrackURI(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"bare id", "abc123", "spotify:track:abc123"},
		{"already a uri", "spotify:track:abc123", "spotify:track:abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrackURI(tt.id); got != tt.want {
				t.Errorf("TrackURI(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}
