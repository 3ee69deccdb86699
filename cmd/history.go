package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/venuesync/venuesync/internal/config"
	"github.com/venuesync/venuesync/internal/pipeline"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show past playlist sync runs",
	Long: `List the playlist syncs recorded in the run journal, most recent
first.

With a run ID argument, print the tracks submitted during that run in
playlist order instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list (0=all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := cmd.Context()

	journal, err := pipeline.NewJournal(journalPath(cfg))
	if err != nil {
		return fmt.Errorf("failed to open run journal: %w", err)
	}
	defer func() { _ = journal.Close() }()

	if len(args) == 1 {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID %q", args[0])
		}
		return printRunTracks(cmd, journal, runID)
	}

	runs, err := journal.Runs(ctx, historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No sync runs recorded yet. Run 'venuesync sync' first.")
		return nil
	}

	fmt.Printf("%s %s %s %s %s\n",
		padColumn("ID", 5),
		padColumn("SYNCED", 17),
		padColumn("PLAYLIST", 28),
		padColumn("TRACKS", 6),
		"MODE")

	for _, run := range runs {
		mode := "full"
		if run.FirstArtistOnly {
			mode = "first-artist"
		}
		fmt.Printf("%s %s %s %s %s\n",
			padColumn(strconv.FormatInt(run.ID, 10), 5),
			padColumn(run.SyncedAt.Format("2006-01-02 15:04"), 17),
			padColumn(run.PlaylistName, 28),
			padColumn(strconv.Itoa(run.TrackCount), 6),
			mode)
	}

	return nil
}

func printRunTracks(cmd *cobra.Command, journal *pipeline.Journal, runID int64) error {
	tracks, err := journal.Tracks(cmd.Context(), runID)
	if err != nil {
		return err
	}

	if len(tracks) == 0 {
		fmt.Printf("No tracks recorded for run %d\n", runID)
		return nil
	}

	fmt.Printf("%s %s %s\n",
		padColumn("#", 4),
		padColumn("TRACK", 40),
		"ARTIST")

	for _, track := range tracks {
		fmt.Printf("%s %s %s\n",
			padColumn(strconv.Itoa(track.Position+1), 4),
			padColumn(track.TrackName, 40),
			track.ArtistName)
	}

	return nil
}

// padColumn pads or truncates text to a fixed display width, measured
// in display columns so wide Unicode characters line up.
func padColumn(text string, width int) string {
	current := runewidth.StringWidth(text)
	if current > width {
		return runewidth.Truncate(text, width, "...")
	}
	if current < width {
		return text + strings.Repeat(" ", width-current)
	}
	return text
}
