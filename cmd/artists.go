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

// artistsCmd represents the artists command
var artistsCmd = &cobra.Command{
	Use:   "artists",
	Short: "Resolve show performers against the music catalog",
	Long: `Read the most recent shows artifact, resolve each show's performers
against the music catalog, and persist the matches as a dated JSON
artifact.

Candidate names come from the venue's bill when present, otherwise
from splitting the show title on co-headliner conjunctions. Each
candidate gets one search; the top-ranked result wins. Names with no
match are logged and skipped.`,
	RunE: runArtists,
}

func init() {
	rootCmd.AddCommand(artistsCmd)
}

func runArtists(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger()
	return artistsStage(cmd.Context(), cfg, logger)
}

// artistsStage resolves performers and writes the artist artifact.
func artistsStage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	shows, err := store.ReadLatestShows()
	if err != nil {
		return err
	}

	client, err := newCatalogClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	artists, err := pipeline.ResolveArtists(ctx, client.Search(), shows, cfg.RequestDelay, logger)
	if err != nil {
		return err
	}

	path, err := store.Write(pipeline.ArtistsPrefix, time.Now(), artists)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %d artists to %s\n", len(artists), path)
	return nil
}
