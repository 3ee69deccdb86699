package pipeline

// Combine joins the three stage outputs into the merged record set.
//
// Artists attach to shows by their originating show title, preserving
// the order they first appeared in the artist list. Tracks attach to
// artists by the artist-ID foreign key, deduplicated by track catalog
// ID with the first occurrence winning. An artist with zero tracks
// stays on the show; a show with zero resolved artists stays in the
// combined output (it only drops out of the flattened sequence).
//
// The merge is a pure function of its inputs: identical inputs yield
// an identical combined structure, including ordering.
func Combine(shows []Show, artists []ResolvedArtist, tracks []TrackRecord) []CombinedShow {
	// Tracks grouped by owning artist, deduplicated per artist.
	tracksByArtist := make(map[string][]TrackRecord)
	seenTrack := make(map[string]map[string]bool)
	for _, track := range tracks {
		perArtist := seenTrack[track.ArtistID]
		if perArtist == nil {
			perArtist = make(map[string]bool)
			seenTrack[track.ArtistID] = perArtist
		}
		if perArtist[track.ID] {
			continue
		}
		perArtist[track.ID] = true
		tracksByArtist[track.ArtistID] = append(tracksByArtist[track.ArtistID], track)
	}

	// Artists grouped by show title, in first-appearance order.
	artistsByShow := make(map[string][]ResolvedArtist)
	for _, artist := range artists {
		artistsByShow[artist.ShowTitle] = append(artistsByShow[artist.ShowTitle], artist)
	}

	combined := make([]CombinedShow, 0, len(shows))
	seenArtist := make(map[string]bool)

	for _, show := range shows {
		cs := CombinedShow{
			Title:     show.Title,
			Date:      show.Date,
			TicketURL: show.TicketURL,
			Artists:   []CombinedArtist{},
		}

		for _, artist := range artistsByShow[show.Title] {
			// Artist catalog IDs are unique within the merged output:
			// a headliner shared by two shows keeps its tracks on the
			// first show it appeared under.
			if seenArtist[artist.ID] {
				continue
			}
			seenArtist[artist.ID] = true

			cs.Artists = append(cs.Artists, CombinedArtist{
				Name:       artist.Name,
				CatalogID:  artist.ID,
				Popularity: artist.Popularity,
				Followers:  artist.Followers,
				Genres:     artist.Genres,
				Tracks:     tracksByArtist[artist.ID],
			})
		}

		combined = append(combined, cs)
	}

	return combined
}

// Flatten reduces the combined structure to the single ordered track
// sequence submitted to the playlist. Order is show, then artist,
// then track. Track catalog IDs are deduplicated across the entire
// output: a track must not appear twice even when two shows share a
// headliner.
//
// With firstArtistOnly set, only each show's first merged artist
// contributes. When the show's headliner never resolved against the
// catalog, the first merged artist is the next one that did; a show
// whose artists all failed to resolve contributes nothing.
func Flatten(combined []CombinedShow, firstArtistOnly bool) []TrackRecord {
	var out []TrackRecord
	seen := make(map[string]bool)

	for _, show := range combined {
		artists := show.Artists
		if firstArtistOnly && len(artists) > 1 {
			artists = artists[:1]
		}

		for _, artist := range artists {
			for _, track := range artist.Tracks {
				if seen[track.ID] {
					continue
				}
				seen[track.ID] = true
				out = append(out, track)
			}
		}
	}

	return out
}
