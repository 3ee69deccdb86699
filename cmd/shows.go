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

// showsCmd represents the shows command
var showsCmd = &cobra.Command{
	Use:   "shows",
	Short: "Scrape the venue's upcoming show listings",
	Long: `Scrape the venue's events API and persist the upcoming shows as a
dated JSON artifact.

Each show carries its title, date, ticket URL, and the performers on
the venue's bill. Later stages read the most recent shows artifact.`,
	RunE: runShows,
}

func init() {
	rootCmd.AddCommand(showsCmd)
}

func runShows(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger()
	return showsStage(cmd.Context(), cfg, logger)
}

// showsStage fetches the venue listings and writes the shows artifact.
func showsStage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	client, err := newVenueClient(cfg, logger)
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	shows, err := pipeline.FetchShows(ctx, client, logger)
	if err != nil {
		return err
	}

	path, err := store.Write(pipeline.ShowsPrefix, time.Now(), shows)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %d shows to %s\n", len(shows), path)
	return nil
}
