package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Journal records completed sync runs in SQLite so past submissions
// can be inspected after the fact.
type Journal struct {
	db *sql.DB
}

// Run is one recorded playlist synchronization.
type Run struct {
	ID              int64
	PlaylistID      string
	PlaylistName    string
	TrackCount      int
	FirstArtistOnly bool
	SyncedAt        time.Time
}

// JournaledTrack is one track submitted during a recorded run.
type JournaledTrack struct {
	Position   int
	TrackID    string
	TrackName  string
	ArtistName string
}

// NewJournal opens (and if needed initializes) a run journal at dbPath.
func NewJournal(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection keeps in-memory databases consistent and is
	// plenty for a sequential pipeline.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id TEXT NOT NULL,
			playlist_name TEXT NOT NULL,
			track_count INTEGER NOT NULL,
			first_artist_only BOOLEAN NOT NULL DEFAULT 0,
			synced_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		);

		CREATE TABLE IF NOT EXISTS run_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			track_id TEXT NOT NULL,
			track_name TEXT NOT NULL,
			artist_name TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_run_tracks_run ON run_tracks(run_id, position);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record stores a completed run and its submitted tracks in one
// transaction.
func (j *Journal) Record(ctx context.Context, playlistID, playlistName string, firstArtistOnly bool, tracks []TrackRecord) (int64, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO runs (playlist_id, playlist_name, track_count, first_artist_only) VALUES (?, ?, ?, ?)",
		playlistID, playlistName, len(tracks), firstArtistOnly,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO run_tracks (run_id, position, track_id, track_name, artist_name) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, track := range tracks {
		if _, err := stmt.ExecContext(ctx, runID, i, track.ID, track.Name, track.ArtistName); err != nil {
			return 0, fmt.Errorf("failed to insert track %s: %w", track.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return runID, nil
}

// Runs returns recorded runs, most recent first. A limit of 0 returns
// everything.
func (j *Journal) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, playlist_id, playlist_name, track_count, first_artist_only, synced_at
		FROM runs
		ORDER BY synced_at DESC, id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := j.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var syncedUnix int64

		if err := rows.Scan(&r.ID, &r.PlaylistID, &r.PlaylistName, &r.TrackCount, &r.FirstArtistOnly, &syncedUnix); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.SyncedAt = time.Unix(syncedUnix, 0)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// Tracks returns the tracks submitted during a run, in playlist order.
func (j *Journal) Tracks(ctx context.Context, runID int64) ([]JournaledTrack, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT position, track_id, track_name, artist_name
		FROM run_tracks
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run tracks: %w", err)
	}
	defer rows.Close()

	var tracks []JournaledTrack
	for rows.Next() {
		var t JournaledTrack
		if err := rows.Scan(&t.Position, &t.TrackID, &t.TrackName, &t.ArtistName); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracks: %w", err)
	}

	return tracks, nil
}
