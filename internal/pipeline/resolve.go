package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/venuesync/venuesync/pkg/catalog"
)

// ArtistSearcher searches the music catalog for artists by name.
type ArtistSearcher interface {
	Artists(ctx context.Context, query string, limit int) ([]catalog.Artist, error)
}

// ResolveArtists matches each show's performers against the catalog.
//
// Candidate names come from the venue's own bill when present, and
// from splitting the show title otherwise. Each candidate gets one
// search; the top-ranked hit wins. A candidate with no match is
// logged and skipped, never fatal. A fixed advisory delay spaces out
// the search calls.
func ResolveArtists(ctx context.Context, searcher ArtistSearcher, shows []Show, delay time.Duration, logger zerolog.Logger) ([]ResolvedArtist, error) {
	logger = logger.With().Str("component", "artists").Logger()

	var resolved []ResolvedArtist
	seen := make(map[string]bool)

	for _, show := range shows {
		for _, name := range candidateNames(show) {
			matches, err := searcher.Artists(ctx, name, 1)
			if err != nil {
				var apiErr *catalog.Error
				if errors.As(err, &apiErr) && apiErr.IsNotFound() {
					logger.Warn().Str("artist", name).Str("show", show.Title).Msg("Artist not in catalog, skipping")
					continue
				}
				return nil, fmt.Errorf("search for %q failed: %w", name, err)
			}
			if len(matches) == 0 {
				logger.Warn().Str("artist", name).Str("show", show.Title).Msg("No catalog match, skipping")
				continue
			}

			top := matches[0]
			if seen[show.Title+"\x00"+top.ID] {
				continue
			}
			seen[show.Title+"\x00"+top.ID] = true

			resolved = append(resolved, ResolvedArtist{
				ShowTitle:  show.Title,
				SearchTerm: name,
				ID:         top.ID,
				Name:       top.Name,
				Popularity: top.Popularity,
				Followers:  top.Followers,
				Genres:     top.Genres,
			})
			logger.Info().Str("artist", top.Name).Str("id", top.ID).Str("show", show.Title).Msg("Resolved artist")

			if delay > 0 && !sleepCtx(ctx, delay) {
				return nil, ctx.Err()
			}
		}
	}

	logger.Info().Int("artists", len(resolved)).Msg("Resolved show artists")
	return resolved, nil
}

// candidateNames returns the names to search for a show: the venue's
// billed performers when known, otherwise the split show title.
func candidateNames(show Show) []string {
	if len(show.Artists) > 0 {
		names := make([]string, 0, len(show.Artists))
		for _, a := range show.Artists {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	return SplitTitle(show.Title)
}

// sleepCtx waits for the duration or until the context is cancelled.
// Returns false on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
