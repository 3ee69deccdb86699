package catalog

import (
	"context"
	"fmt"
	"net/url"
)

// ArtistsService provides artist catalog operations.
type ArtistsService struct {
	client *Client
}

// TopTracks fetches the artist's top tracks. The API serves a fixed
// list of at most ten tracks per artist.
func (s *ArtistsService) TopTracks(ctx context.Context, artistID string) ([]Track, error) {
	if artistID == "" {
		return nil, fmt.Errorf("catalog: artist ID required")
	}

	q := url.Values{}
	q.Set("market", "US")

	var resp struct {
		Tracks []Track `json:"tracks"`
	}
	if err := s.client.call(ctx, "GET", "/artists/"+artistID+"/top-tracks", q, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Tracks, nil
}
