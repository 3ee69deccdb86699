package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Artifact prefixes, one per pipeline stage.
const (
	ShowsPrefix    = "shows"
	ArtistsPrefix  = "artist_list"
	TracksPrefix   = "track_list"
	CombinedPrefix = "combined"
)

// dateLayout is the date suffix on artifact filenames (YY-MM-DD).
// Lexicographic order on the suffix matches chronological order, so
// the latest artifact is simply the greatest filename.
const dateLayout = "06-01-02"

// ErrNoArtifact is returned when a stage's input artifact does not
// exist. The message names the stage to rerun.
type ErrNoArtifact struct {
	Prefix string
	Dir    string
}

func (e *ErrNoArtifact) Error() string {
	return fmt.Sprintf("no %s artifact found in %s: rerun the %s stage first", e.Prefix, e.Dir, stageFor(e.Prefix))
}

func stageFor(prefix string) string {
	switch prefix {
	case ShowsPrefix:
		return "shows"
	case ArtistsPrefix:
		return "artists"
	case TracksPrefix:
		return "tracks"
	case CombinedPrefix:
		return "combine"
	default:
		return prefix
	}
}

// Store reads and writes the dated JSON artifacts that hand data
// between stages. Every stage opens its own inputs and writes one
// output; nothing is mutated in place.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// Write persists v as <prefix>_<YY-MM-DD>.json for the given date and
// returns the written path.
func (s *Store) Write(prefix string, date time.Time, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s artifact: %w", prefix, err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", prefix, date.Format(dateLayout)))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s artifact: %w", prefix, err)
	}

	return path, nil
}

// LatestPath returns the most recent artifact for the prefix, by the
// date embedded in the filename.
func (s *Store) LatestPath(prefix string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to read data directory: %w", err)
	}

	var matches []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix+"_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		matches = append(matches, name)
	}

	if len(matches) == 0 {
		return "", &ErrNoArtifact{Prefix: prefix, Dir: s.dir}
	}

	sort.Strings(matches)
	return filepath.Join(s.dir, matches[len(matches)-1]), nil
}

// validator is implemented by every artifact record type.
type validator interface {
	Validate() error
}

// readLatest decodes the latest artifact for prefix into out.
func (s *Store) readLatest(prefix string, out any) (string, error) {
	path, err := s.LatestPath(prefix)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return "", fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return path, nil
}

// validateAll fails on the first record missing a required field.
// Validation happens at the read boundary so a malformed artifact
// fails the stage immediately instead of surfacing downstream.
func validateAll[T validator](path string, records []T) error {
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("%s: record %d: %w", path, i, err)
		}
	}
	return nil
}

// ReadLatestShows loads and validates the most recent shows artifact.
func (s *Store) ReadLatestShows() ([]Show, error) {
	var shows []Show
	path, err := s.readLatest(ShowsPrefix, &shows)
	if err != nil {
		return nil, err
	}
	if err := validateAll(path, shows); err != nil {
		return nil, err
	}
	return shows, nil
}

// ReadLatestArtists loads and validates the most recent artist artifact.
func (s *Store) ReadLatestArtists() ([]ResolvedArtist, error) {
	var artists []ResolvedArtist
	path, err := s.readLatest(ArtistsPrefix, &artists)
	if err != nil {
		return nil, err
	}
	if err := validateAll(path, artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// ReadLatestTracks loads and validates the most recent track artifact.
func (s *Store) ReadLatestTracks() ([]TrackRecord, error) {
	var tracks []TrackRecord
	path, err := s.readLatest(TracksPrefix, &tracks)
	if err != nil {
		return nil, err
	}
	if err := validateAll(path, tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// ReadLatestCombined loads and validates the most recent combined artifact.
func (s *Store) ReadLatestCombined() ([]CombinedShow, error) {
	var combined []CombinedShow
	path, err := s.readLatest(CombinedPrefix, &combined)
	if err != nil {
		return nil, err
	}
	if err := validateAll(path, combined); err != nil {
		return nil, err
	}
	return combined, nil
}
