package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/venuesync/venuesync/internal/config"
	"github.com/venuesync/venuesync/internal/pipeline"
)

// combineCmd represents the combine command
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Merge shows, artists, and tracks into one record set",
	Long: `Read the most recent shows, artist, and track artifacts and merge
them into the combined structure: each show carries its resolved
artists, each artist its deduplicated track list.

Artist catalog IDs are unique across the merged output and track
catalog IDs are unique within each artist. The combined artifact feeds
both the sync stage and the quiz UI.`,
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger()
	return combineStage(cmd.Context(), cfg, logger)
}

// combineStage merges the three artifacts and writes the combined one.
func combineStage(_ context.Context, cfg *config.Config, logger zerolog.Logger) error {
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	shows, err := store.ReadLatestShows()
	if err != nil {
		return err
	}
	artists, err := store.ReadLatestArtists()
	if err != nil {
		return err
	}
	tracks, err := store.ReadLatestTracks()
	if err != nil {
		return err
	}

	combined := pipeline.Combine(shows, artists, tracks)

	path, err := store.Write(pipeline.CombinedPrefix, time.Now(), combined)
	if err != nil {
		return err
	}

	totalArtists := 0
	totalTracks := 0
	for _, show := range combined {
		totalArtists += len(show.Artists)
		for _, artist := range show.Artists {
			totalTracks += len(artist.Tracks)
		}
	}

	logger.Info().
		Int("shows", len(combined)).
		Int("artists", totalArtists).
		Int("tracks", totalTracks).
		Msg("Combined pipeline data")

	fmt.Printf("Saved %d combined shows (%d artists, %d tracks) to %s\n", len(combined), totalArtists, totalTracks, path)
	return nil
}
