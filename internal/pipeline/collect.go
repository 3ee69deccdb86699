package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/venuesync/venuesync/pkg/catalog"
)

// TopTracksFetcher fetches an artist's top tracks from the catalog.
type TopTracksFetcher interface {
	TopTracks(ctx context.Context, artistID string) ([]catalog.Track, error)
}

// CollectTracks fetches the top-tracks list for every resolved
// artist, tagging each track with its owning artist. Artists the
// catalog no longer knows are logged and skipped. A fixed advisory
// delay spaces out the calls.
//
// The same artist can appear once per show it plays; top tracks are
// fetched only once per catalog ID.
func CollectTracks(ctx context.Context, fetcher TopTracksFetcher, artists []ResolvedArtist, delay time.Duration, logger zerolog.Logger) ([]TrackRecord, error) {
	logger = logger.With().Str("component", "tracks").Logger()

	var records []TrackRecord
	fetched := make(map[string]bool)

	for _, artist := range artists {
		if artist.ID == "" || fetched[artist.ID] {
			continue
		}
		fetched[artist.ID] = true

		tracks, err := fetcher.TopTracks(ctx, artist.ID)
		if err != nil {
			var apiErr *catalog.Error
			if errors.As(err, &apiErr) && apiErr.IsNotFound() {
				logger.Warn().Str("artist", artist.Name).Str("id", artist.ID).Msg("Artist vanished from catalog, skipping")
				continue
			}
			return nil, fmt.Errorf("top tracks for %q failed: %w", artist.Name, err)
		}

		for _, track := range tracks {
			records = append(records, TrackRecord{
				ArtistID:   artist.ID,
				ArtistName: artist.Name,
				ID:         track.ID,
				Name:       track.Name,
				Popularity: track.Popularity,
				DurationMS: track.DurationMS,
			})
		}
		logger.Info().Str("artist", artist.Name).Int("tracks", len(tracks)).Msg("Collected top tracks")

		if delay > 0 && !sleepCtx(ctx, delay) {
			return nil, ctx.Err()
		}
	}

	logger.Info().Int("tracks", len(records)).Msg("Collected top tracks for all artists")
	return records, nil
}
