package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "venuesync",
	Short: "Sync a venue's upcoming shows into a playlist",
	Long: `venuesync scrapes a venue's upcoming concert listings, resolves the
performers against a music catalog, collects each artist's top tracks,
and synchronizes the result into a playlist.

The pipeline runs as sequential stages, each persisting a dated JSON
artifact before the next begins:

  shows    scrape the venue's event listings
  artists  resolve show titles to catalog artists
  tracks   fetch each artist's top tracks
  combine  merge shows, artists, and tracks, deduplicated
  sync     push the flattened track sequence to the playlist

'venuesync run' executes all five in order. Each stage can also be
rerun on its own; it always reads the most recent artifact of the
stage before it.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// setupLogger builds the console logger stage commands share.
func setupLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// sdkLogger adapts zerolog to the Debugf interface the SDK packages accept.
type sdkLogger struct {
	logger zerolog.Logger
}

func (l sdkLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
