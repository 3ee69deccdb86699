package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/venuesync/venuesync/internal/config"
	"github.com/venuesync/venuesync/internal/pipeline"
)

var (
	syncFirstArtistOnly bool
	syncPlaylistName    string
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the merged tracks into the playlist",
	Long: `Flatten the most recent combined artifact into one ordered track
sequence and push it to the target playlist: find-or-create the
playlist by name, clear its contents, then append the tracks in
batches of at most 100.

The flattened sequence never contains the same track twice, even when
two shows share a headliner. With --first-artist-only, only each
show's first merged artist contributes tracks.

There is no partial-failure recovery: if a batch fails, the playlist
is left part-written and the sync must be rerun.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncFirstArtistOnly, "first-artist-only", false, "Only sync each show's first artist")
	syncCmd.Flags().StringVar(&syncPlaylistName, "playlist", "", "Target playlist name (overrides config)")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger()
	return syncStage(cmd.Context(), cfg, logger)
}

// syncStage flattens the combined artifact and pushes it to the playlist.
func syncStage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	combined, err := store.ReadLatestCombined()
	if err != nil {
		return err
	}

	tracks := pipeline.Flatten(combined, syncFirstArtistOnly)
	if len(tracks) == 0 {
		return fmt.Errorf("no tracks to sync: the combined artifact has no resolved tracks")
	}

	client, err := newCatalogClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	name := cfg.PlaylistName
	if syncPlaylistName != "" {
		name = syncPlaylistName
	}
	description := "Top tracks from artists with upcoming shows, updated by venuesync"

	result, err := pipeline.SyncPlaylist(ctx, client.Playlists(), name, description, tracks, logger)
	if err != nil {
		return err
	}

	journal, err := pipeline.NewJournal(journalPath(cfg))
	if err != nil {
		return fmt.Errorf("failed to open run journal: %w", err)
	}
	defer func() { _ = journal.Close() }()

	if _, err := journal.Record(ctx, result.PlaylistID, result.PlaylistName, syncFirstArtistOnly, tracks); err != nil {
		logger.Warn().Err(err).Msg("Failed to journal sync run")
	}

	fmt.Printf("Synced %d tracks to playlist %q (removed %d)\n", result.Added, result.PlaylistName, result.Removed)
	return nil
}
