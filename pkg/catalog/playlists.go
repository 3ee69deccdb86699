package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PlaylistsService provides playlist management operations.
type PlaylistsService struct {
	client *Client
}

const (
	// MaxBatchSize is the maximum number of tracks the API accepts in
	// a single add or remove call.
	MaxBatchSize = 100

	// playlistPageSize is the page size used when listing playlists
	// and playlist items.
	playlistPageSize = 50
)

// Me returns the authenticated user.
func (s *PlaylistsService) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.call(ctx, "GET", "/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all playlists owned by or followed by the current
// user, following pagination to the end.
func (s *PlaylistsService) List(ctx context.Context) ([]Playlist, error) {
	var playlists []Playlist

	for offset := 0; ; offset += playlistPageSize {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(playlistPageSize))
		q.Set("offset", strconv.Itoa(offset))

		var resp struct {
			Items []Playlist `json:"items"`
			Next  string     `json:"next"`
		}
		if err := s.client.call(ctx, "GET", "/me/playlists", q, nil, &resp); err != nil {
			return nil, err
		}

		playlists = append(playlists, resp.Items...)
		if resp.Next == "" {
			break
		}
	}

	return playlists, nil
}

// Create creates a new private playlist for the given user.
func (s *PlaylistsService) Create(ctx context.Context, userID, name, description string) (*Playlist, error) {
	if userID == "" || name == "" {
		return nil, fmt.Errorf("catalog: user ID and playlist name required")
	}

	body := map[string]any{
		"name":        name,
		"public":      false,
		"description": description,
	}

	var playlist Playlist
	if err := s.client.call(ctx, "POST", "/users/"+userID+"/playlists", nil, body, &playlist); err != nil {
		return nil, err
	}

	return &playlist, nil
}

// FindOrCreateByName returns the current user's playlist with the
// given name, creating it when no playlist matches. Name comparison
// is exact.
func (s *PlaylistsService) FindOrCreateByName(ctx context.Context, name, description string) (*Playlist, error) {
	playlists, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	for _, p := range playlists {
		if p.Name == name {
			return &p, nil
		}
	}

	user, err := s.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	playlist, err := s.Create(ctx, user.ID, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	return playlist, nil
}

// Items returns the track URIs currently on the playlist, following
// pagination to the end.
func (s *PlaylistsService) Items(ctx context.Context, playlistID string) ([]string, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("catalog: playlist ID required")
	}

	var uris []string

	for offset := 0; ; offset += playlistPageSize {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(playlistPageSize))
		q.Set("offset", strconv.Itoa(offset))

		var resp struct {
			Items []struct {
				Track struct {
					URI string `json:"uri"`
				} `json:"track"`
			} `json:"items"`
			Next string `json:"next"`
		}
		if err := s.client.call(ctx, "GET", "/playlists/"+playlistID+"/tracks", q, nil, &resp); err != nil {
			return nil, err
		}

		for _, item := range resp.Items {
			if item.Track.URI != "" {
				uris = append(uris, item.Track.URI)
			}
		}
		if resp.Next == "" {
			break
		}
	}

	return uris, nil
}

// RemoveAll clears every track from the playlist, removing in batches
// of at most MaxBatchSize.
func (s *PlaylistsService) RemoveAll(ctx context.Context, playlistID string) (int, error) {
	uris, err := s.Items(ctx, playlistID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch playlist items: %w", err)
	}

	removed := 0
	for start := 0; start < len(uris); start += MaxBatchSize {
		end := start + MaxBatchSize
		if end > len(uris) {
			end = len(uris)
		}

		tracks := make([]map[string]string, 0, end-start)
		for _, uri := range uris[start:end] {
			tracks = append(tracks, map[string]string{"uri": uri})
		}

		body := map[string]any{"tracks": tracks}
		if err := s.client.call(ctx, "DELETE", "/playlists/"+playlistID+"/tracks", nil, body, nil); err != nil {
			return removed, fmt.Errorf("failed to remove tracks: %w", err)
		}
		removed += end - start
	}

	return removed, nil
}

// AddTracks appends tracks to the playlist in batches of at most
// MaxBatchSize. A failed batch aborts immediately: the playlist is
// left with the batches already written, and the caller must rerun
// the sync from scratch.
func (s *PlaylistsService) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if playlistID == "" {
		return fmt.Errorf("catalog: playlist ID required")
	}
	if len(trackIDs) == 0 {
		return nil
	}

	for start := 0; start < len(trackIDs); start += MaxBatchSize {
		end := start + MaxBatchSize
		if end > len(trackIDs) {
			end = len(trackIDs)
		}

		uris := make([]string, 0, end-start)
		for _, id := range trackIDs[start:end] {
			uris = append(uris, TrackURI(id))
		}

		body := map[string]any{"uris": uris}
		if err := s.client.call(ctx, "POST", "/playlists/"+playlistID+"/tracks", nil, body, nil); err != nil {
			return fmt.Errorf("failed to add batch starting at %d: %w", start, err)
		}
	}

	return nil
}

// TrackURI converts a bare track catalog ID into a playable URI.
// IDs that already look like URIs pass through unchanged.
func TrackURI(id string) string {
	if len(id) > len("spotify:") && id[:len("spotify:")] == "spotify:" {
		return id
	}
	return "spotify:track:" + id
}
