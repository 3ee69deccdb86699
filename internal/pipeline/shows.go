package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/venuesync/venuesync/pkg/venue"
)

// EventLister fetches the venue's upcoming events.
type EventLister interface {
	Events(ctx context.Context) ([]venue.Event, error)
}

// FetchShows scrapes the venue's upcoming events and maps them to
// Show records. Events without a title are logged and skipped rather
// than aborting the run.
func FetchShows(ctx context.Context, client EventLister, logger zerolog.Logger) ([]Show, error) {
	logger = logger.With().Str("component", "shows").Logger()

	events, err := client.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch venue events: %w", err)
	}

	shows := make([]Show, 0, len(events))
	for _, ev := range events {
		if ev.Name == "" {
			logger.Warn().Str("date", ev.Date).Msg("Skipping event without a title")
			continue
		}

		show := Show{
			Title:     ev.Name,
			Date:      ev.Date,
			TicketURL: ev.URL,
		}
		for _, a := range ev.Artists {
			show.Artists = append(show.Artists, ShowArtist{
				Name:     a.Name,
				Genre:    a.Genre,
				ImageURL: a.ImageURL,
			})
		}
		shows = append(shows, show)
	}

	logger.Info().Int("shows", len(shows)).Msg("Fetched venue shows")
	return shows, nil
}
