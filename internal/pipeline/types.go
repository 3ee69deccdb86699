package pipeline

import "fmt"

// Show is a single concert listing scraped from the venue.
type Show struct {
	Title     string       `json:"title"`
	Date      string       `json:"date"`
	TicketURL string       `json:"ticket_url"`
	Artists   []ShowArtist `json:"artists,omitempty"`
}

// ShowArtist is a performer on the venue's bill for a show.
type ShowArtist struct {
	Name     string `json:"name"`
	Genre    string `json:"genre,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Validate fails fast on records the downstream stages cannot key on.
func (s Show) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("show missing title")
	}
	return nil
}

// ResolvedArtist is a performer matched against the music catalog.
// ShowTitle and SearchTerm record where the match came from so the
// merge stage can re-link artists to their shows.
type ResolvedArtist struct {
	ShowTitle  string   `json:"show_title"`
	SearchTerm string   `json:"search_term"`
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Popularity int      `json:"popularity"`
	Followers  int      `json:"followers"`
	Genres     []string `json:"genres,omitempty"`
}

// Validate fails fast on records the downstream stages cannot key on.
func (a ResolvedArtist) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("artist %q missing catalog id", a.Name)
	}
	if a.ShowTitle == "" {
		return fmt.Errorf("artist %q missing show title", a.Name)
	}
	return nil
}

// TrackRecord is one of an artist's top tracks, tagged with the
// owning artist so the merge stage can join on it.
type TrackRecord struct {
	ArtistID   string `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	ID         string `json:"track_id"`
	Name       string `json:"track_name"`
	Popularity int    `json:"popularity"`
	DurationMS int    `json:"duration_ms"`
}

// Validate fails fast on records the downstream stages cannot key on.
func (t TrackRecord) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("track %q missing catalog id", t.Name)
	}
	if t.ArtistID == "" {
		return fmt.Errorf("track %q missing artist id", t.Name)
	}
	return nil
}

// CombinedShow is the merged show record: the show plus its resolved
// artists, each carrying its deduplicated track list. Built once by
// the combine stage and immutable afterwards.
type CombinedShow struct {
	Title     string           `json:"title"`
	Date      string           `json:"date"`
	TicketURL string           `json:"ticket_url"`
	Artists   []CombinedArtist `json:"artists"`
}

// CombinedArtist is a resolved artist nested inside a CombinedShow.
type CombinedArtist struct {
	Name       string        `json:"name"`
	CatalogID  string        `json:"catalog_id"`
	Popularity int           `json:"popularity"`
	Followers  int           `json:"followers"`
	Genres     []string      `json:"genres,omitempty"`
	Tracks     []TrackRecord `json:"tracks"`
}

// Validate fails fast on records the downstream stages cannot key on.
func (s CombinedShow) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("combined show missing title")
	}
	for _, a := range s.Artists {
		if a.CatalogID == "" {
			return fmt.Errorf("combined show %q: artist %q missing catalog id", s.Title, a.Name)
		}
	}
	return nil
}
