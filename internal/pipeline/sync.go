package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/venuesync/venuesync/pkg/catalog"
)

// PlaylistClient is the slice of the catalog playlist service the
// sync stage needs.
type PlaylistClient interface {
	FindOrCreateByName(ctx context.Context, name, description string) (*catalog.Playlist, error)
	RemoveAll(ctx context.Context, playlistID string) (int, error)
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error
}

// SyncResult summarizes a completed playlist synchronization.
type SyncResult struct {
	PlaylistID   string
	PlaylistName string
	Removed      int
	Added        int
}

// SyncPlaylist replaces the named playlist's contents with the given
// track sequence: find-or-create, clear, then append in batches.
//
// There is no partial-failure recovery. A failed batch aborts the
// run; the playlist is left part-written and the sync must be rerun
// from scratch.
func SyncPlaylist(ctx context.Context, client PlaylistClient, name, description string, tracks []TrackRecord, logger zerolog.Logger) (*SyncResult, error) {
	logger = logger.With().Str("component", "sync").Logger()

	playlist, err := client.FindOrCreateByName(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to find or create playlist %q: %w", name, err)
	}
	logger.Info().Str("playlist", playlist.Name).Str("id", playlist.ID).Msg("Target playlist ready")

	removed, err := client.RemoveAll(ctx, playlist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear playlist %q: %w", name, err)
	}
	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Cleared existing playlist tracks")
	}

	ids := make([]string, len(tracks))
	for i, track := range tracks {
		ids[i] = track.ID
	}

	if err := client.AddTracks(ctx, playlist.ID, ids); err != nil {
		return nil, fmt.Errorf("failed to add tracks to %q: %w", name, err)
	}

	logger.Info().Int("added", len(ids)).Str("playlist", playlist.Name).Msg("Playlist synchronized")

	return &SyncResult{
		PlaylistID:   playlist.ID,
		PlaylistName: playlist.Name,
		Removed:      removed,
		Added:        len(ids),
	}, nil
}
