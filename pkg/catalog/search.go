package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchService provides search operations.
type SearchService struct {
	client *Client
}

// searchResponse is the artist-search envelope from the Web API.
type searchResponse struct {
	Artists struct {
		Items []artistJSON `json:"items"`
	} `json:"artists"`
}

type artistJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
	Followers  struct {
		Total int `json:"total"`
	} `json:"followers"`
	Genres []string `json:"genres"`
}

// Artists searches the catalog for artists matching the query and
// returns them in the API's relevance ranking, best match first.
//
// Callers resolving a free-text name usually pass limit 1 and take
// the top hit. An empty result is not an error.
func (s *SearchService) Artists(ctx context.Context, query string, limit int) ([]Artist, error) {
	if query == "" {
		return nil, fmt.Errorf("catalog: search query required")
	}
	if limit <= 0 {
		limit = 1
	}

	q := url.Values{}
	q.Set("q", "artist:"+query)
	q.Set("type", "artist")
	q.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := s.client.call(ctx, "GET", "/search", q, nil, &resp); err != nil {
		return nil, err
	}

	artists := make([]Artist, 0, len(resp.Artists.Items))
	for _, item := range resp.Artists.Items {
		artists = append(artists, Artist{
			ID:         item.ID,
			Name:       item.Name,
			Popularity: item.Popularity,
			Followers:  item.Followers.Total,
			Genres:     item.Genres,
		})
	}

	return artists, nil
}
