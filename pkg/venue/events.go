package venue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Event represents a single upcoming event at the venue.
type Event struct {
	Name    string        // Event title as listed by the venue
	Date    string        // Local event date (YYYY-MM-DD)
	Time    string        // Local start time, may be empty
	URL     string        // Ticketing URL
	Artists []EventArtist // Billed performers, headliner first
}

// EventArtist is a performer on an event's bill.
type EventArtist struct {
	DiscoveryID string
	Name        string
	Genre       string
	ImageURL    string
}

// eventsQuery is the getEvents GraphQL document. The endpoint caps
// pages at 36 events and sorts ascending by start date.
const eventsQuery = `
query EVENTS_PAGE($offset: Int!, $venue_id: String!) {
  getEvents(
    filter: {exclude_status_codes: ["cancelled", "postponed"], venue_id: $venue_id}
    limit: 36
    offset: $offset
    order: "ascending"
    sort_by: "start_date"
  ) {
    artists {
      discovery_id
      name
      genre
      images {
        image_url
      }
    }
    event_date
    event_time
    name
    url
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data struct {
		GetEvents []eventJSON `json:"getEvents"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type eventJSON struct {
	Artists []struct {
		DiscoveryID string `json:"discovery_id"`
		Name        string `json:"name"`
		Genre       string `json:"genre"`
		Images      []struct {
			ImageURL string `json:"image_url"`
		} `json:"images"`
	} `json:"artists"`
	EventDate string `json:"event_date"`
	EventTime string `json:"event_time"`
	Name      string `json:"name"`
	URL       string `json:"url"`
}

// Events fetches every upcoming event for the configured venue,
// paging until the endpoint returns an empty page.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	var events []Event

	for offset := 0; ; offset += pageSize {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		events = append(events, page...)
	}

	return events, nil
}

// fetchPage fetches a single page of events with retry logic.
func (c *Client) fetchPage(ctx context.Context, offset int) ([]Event, error) {
	body, err := json.Marshal(graphqlRequest{
		Query: eventsQuery,
		Variables: map[string]any{
			"offset":   offset,
			"venue_id": c.venueID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var lastErr error
	backoff := 1 * time.Second
	maxRetries := 3

	for i := 0; i < maxRetries; i++ {
		c.logDebugf("venue: fetching events offset=%d (attempt %d/%d)", offset, i+1, maxRetries)

		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("User-Agent", "venuesync/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if shouldRetryNetworkError(err) && i < maxRetries-1 {
				c.logDebugf("venue: network error, retrying: %v", err)
				if !sleep(ctx, backoff) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, fmt.Errorf("http request failed: %w", err)
		}

		respBody, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %d %s", resp.StatusCode, resp.Status)
			if i < maxRetries-1 {
				c.logDebugf("venue: server error, retrying: %v", lastErr)
				if !sleep(ctx, backoff) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, lastErr
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var gql graphqlResponse
		if err := json.Unmarshal(respBody, &gql); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}

		if len(gql.Errors) > 0 {
			msgs := make([]string, len(gql.Errors))
			for i, e := range gql.Errors {
				msgs[i] = e.Message
			}
			return nil, &Error{Messages: msgs}
		}

		events := make([]Event, 0, len(gql.Data.GetEvents))
		for _, ev := range gql.Data.GetEvents {
			events = append(events, decodeEvent(ev))
		}

		c.logDebugf("venue: offset=%d returned %d events", offset, len(events))
		return events, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func decodeEvent(ev eventJSON) Event {
	event := Event{
		Name: ev.Name,
		Date: ev.EventDate,
		Time: ev.EventTime,
		URL:  ev.URL,
	}
	for _, a := range ev.Artists {
		artist := EventArtist{
			DiscoveryID: a.DiscoveryID,
			Name:        a.Name,
			Genre:       a.Genre,
		}
		if len(a.Images) > 0 {
			artist.ImageURL = a.Images[0].ImageURL
		}
		event.Artists = append(event.Artists, artist)
	}
	return event
}

// shouldRetryNetworkError checks if a network error is retryable.
func shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	if urlErr, ok := err.(*url.Error); ok {
		if _, ok := urlErr.Err.(net.Error); ok {
			return true
		}
	}

	return false
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(duration):
		return true
	}
}

// nextBackoff calculates the next backoff duration with exponential increase.
// Maximum backoff is capped at 30 seconds.
func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > 30*time.Second {
		return 30 * time.Second
	}
	return next
}
