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

// tracksCmd represents the tracks command
var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Fetch top tracks for every resolved artist",
	Long: `Read the most recent artist artifact and fetch each artist's top
tracks from the catalog (the API serves at most ten per artist), then
persist them as a dated JSON artifact.

Artists without a catalog ID are skipped. Each artist is fetched once
even when they play multiple shows.`,
	RunE: runTracks,
}

func init() {
	rootCmd.AddCommand(tracksCmd)
}

func runTracks(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger()
	return tracksStage(cmd.Context(), cfg, logger)
}

// tracksStage collects top tracks and writes the track artifact.
func tracksStage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	artists, err := store.ReadLatestArtists()
	if err != nil {
		return err
	}

	client, err := newCatalogClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	tracks, err := pipeline.CollectTracks(ctx, client.Artists(), artists, cfg.RequestDelay, logger)
	if err != nil {
		return err
	}

	path, err := store.Write(pipeline.TracksPrefix, time.Now(), tracks)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %d tracks to %s\n", len(tracks), path)
	return nil
}
