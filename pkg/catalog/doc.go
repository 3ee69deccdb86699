// Package catalog provides a client library for a Spotify-style music
// catalog Web API.
//
// # Overview
//
// The package covers the operations a playlist-building pipeline
// needs: artist search, top tracks, playlist management, playback
// control, and the OAuth authorization-code token exchange. It is
// designed to be used as a standalone SDK.
//
// # Quick Start
//
// Create a client with your application credentials:
//
//	client, err := catalog.NewClient(catalog.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Authentication
//
// The catalog uses the OAuth 2.0 authorization-code flow:
//
//  1. Direct the user to the URL from client.Auth().AuthURL(...)
//  2. Receive the code on your redirect URI
//  3. Exchange the code for tokens with client.Auth().Exchange(ctx, code)
//  4. Store the refresh token and renew with client.Auth().Refresh(ctx, rt)
//
// Once an access token is set (SetAccessToken or via Exchange), all
// services make authenticated requests.
//
// # Services
//
// Operations are grouped into services hanging off the client:
//
//	client.Search().Artists(ctx, "Vampire Weekend", 1)
//	client.Artists().TopTracks(ctx, artistID)
//	client.Playlists().FindOrCreateByName(ctx, "Brooklyn Paramount", "Upcoming shows")
//	client.Playlists().AddTracks(ctx, playlistID, trackIDs)
//	client.Player().Play(ctx, uris, deviceID)
//
// # Error Handling
//
// API failures are returned as *catalog.Error carrying the HTTP
// status and message from the error body:
//
//	var apiErr *catalog.Error
//	if errors.As(err, &apiErr) {
//	    if apiErr.IsNotFound() {
//	        // skip the entity and continue
//	    }
//	}
//
// Rate-limited requests (429) are retried a bounded number of times,
// honoring the Retry-After header. Authorization failures (401) are
// never retried.
//
// # Context Support
//
// All API methods accept a context.Context for cancellation and
// timeouts.
package catalog
