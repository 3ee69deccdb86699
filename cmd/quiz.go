package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/venuesync/venuesync/internal/config"
	"github.com/venuesync/venuesync/internal/tui"
	"github.com/venuesync/venuesync/pkg/catalog"
)

var quizFromBeginning bool

// quizCmd represents the quiz command
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Play a song quiz from the combined show data",
	Long: `Launch an interactive song quiz built from the most recent combined
artifact. Tracks play in shuffled order on your active playback device
while their names stay hidden until you reveal them.

By default each track starts at a random position between 10% and 75%
of its length so the intro doesn't give it away; --from-beginning
plays tracks from the start instead.

Requires an open player app on some device and a completed combine
stage.`,
	RunE: runQuiz,
}

func init() {
	rootCmd.AddCommand(quizCmd)

	quizCmd.Flags().BoolVar(&quizFromBeginning, "from-beginning", false, "Play tracks from the start instead of a random position")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger()
	ctx := cmd.Context()

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	combined, err := store.ReadLatestCombined()
	if err != nil {
		return err
	}

	var tracks []tui.QuizTrack
	seen := make(map[string]bool)
	for _, show := range combined {
		for _, artist := range show.Artists {
			for _, track := range artist.Tracks {
				if seen[track.ID] {
					continue
				}
				seen[track.ID] = true
				tracks = append(tracks, tui.QuizTrack{
					ID:         track.ID,
					URI:        catalog.TrackURI(track.ID),
					Name:       track.Name,
					ArtistName: artist.Name,
					ShowTitle:  show.Title,
					DurationMS: track.DurationMS,
				})
			}
		}
	}

	if len(tracks) == 0 {
		return fmt.Errorf("no tracks to quiz on: the combined artifact has no resolved tracks")
	}

	client, err := newCatalogClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app := tui.New(tracks, client.Player(), tui.Config{
		RandomStart: !quizFromBeginning,
	})
	return app.Run(ctx)
}
