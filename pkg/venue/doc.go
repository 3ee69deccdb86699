// Package venue provides a client for venue event-listing APIs that
// expose the Live Nation style getEvents GraphQL endpoint.
//
// # Overview
//
// The client fetches every upcoming event for a single venue, paging
// through the endpoint until it runs dry. Responses are decoded into
// plain Event records; callers never see GraphQL.
//
// # Quick Start
//
//	client, err := venue.NewClient(venue.Config{
//	    APIKey:  "your-api-key",
//	    VenueID: "KovZpZA77ldA",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	events, err := client.Events(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ev := range events {
//	    fmt.Println(ev.Name, ev.Date, ev.URL)
//	}
//
// # Error Handling
//
// GraphQL-level failures are returned as *venue.Error with the raw
// message list from the endpoint. Transport failures (network, 5xx)
// are retried with exponential backoff before being returned.
//
// # Context Support
//
// All API methods accept a context.Context for cancellation and
// timeouts.
package venue
