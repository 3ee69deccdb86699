package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/venuesync/venuesync/internal/config"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline end to end",
	Long: `Execute every pipeline stage in order: shows, artists, tracks,
combine, sync.

Stages run strictly sequentially; each persists its artifact before
the next begins, so a failed run can be resumed by rerunning the
failed stage on its own.`,
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&syncFirstArtistOnly, "first-artist-only", false, "Only sync each show's first artist")
	runCmd.Flags().StringVar(&syncPlaylistName, "playlist", "", "Target playlist name (overrides config)")
}

func runAll(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger()
	ctx := cmd.Context()

	stages := []struct {
		name string
		run  func() error
	}{
		{"shows", func() error { return showsStage(ctx, cfg, logger) }},
		{"artists", func() error { return artistsStage(ctx, cfg, logger) }},
		{"tracks", func() error { return tracksStage(ctx, cfg, logger) }},
		{"combine", func() error { return combineStage(ctx, cfg, logger) }},
		{"sync", func() error { return syncStage(ctx, cfg, logger) }},
	}

	for _, stage := range stages {
		logger.Info().Str("stage", stage.name).Msg("Starting stage")
		if err := stage.run(); err != nil {
			return fmt.Errorf("stage %s failed: %w", stage.name, err)
		}
	}

	return nil
}
