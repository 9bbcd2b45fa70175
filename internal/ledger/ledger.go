// Package ledger records albums the process command has already downloaded,
// so a document can be processed again without fetching them twice.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Ledger is a SQLite record of downloaded albums
type Ledger struct {
	db *sql.DB
}

// Entry is one downloaded album
type Entry struct {
	AlbumID      string
	ArtistName   string
	AlbumName    string
	Path         string
	DownloadedAt time.Time
}

// New opens (or creates) the ledger at dbPath. ":memory:" is accepted.
func New(dbPath string) (*Ledger, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Workers share one connection; it also keeps ":memory:" a single database
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS downloads (
			album_id TEXT PRIMARY KEY,
			artist_name TEXT NOT NULL,
			album_name TEXT NOT NULL,
			path TEXT NOT NULL DEFAULT '',
			downloaded_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_artist ON downloads(artist_name, downloaded_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the database connection
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Has reports whether albumID was downloaded before
func (l *Ledger) Has(ctx context.Context, albumID string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM downloads WHERE album_id = ?", albumID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up album %s: %w", albumID, err)
	}
	return n > 0, nil
}

// Record marks an album as downloaded. Recording the same album again
// refreshes its path and time.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	if e.AlbumID == "" {
		return fmt.Errorf("album id is required")
	}
	if e.DownloadedAt.IsZero() {
		e.DownloadedAt = time.Now()
	}

	query := `
		INSERT INTO downloads (album_id, artist_name, album_name, path, downloaded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(album_id) DO UPDATE SET
			artist_name = excluded.artist_name,
			album_name = excluded.album_name,
			path = excluded.path,
			downloaded_at = excluded.downloaded_at
	`

	_, err := l.db.ExecContext(ctx, query,
		e.AlbumID,
		e.ArtistName,
		e.AlbumName,
		e.Path,
		e.DownloadedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record album %s: %w", e.AlbumID, err)
	}

	return nil
}

// List returns downloaded albums, newest first. An empty artist lists all.
func (l *Ledger) List(ctx context.Context, artist string) ([]Entry, error) {
	query := `
		SELECT album_id, artist_name, album_name, path, downloaded_at
		FROM downloads
	`
	var args []interface{}
	if artist != "" {
		query += " WHERE artist_name = ?"
		args = append(args, artist)
	}
	query += " ORDER BY downloaded_at DESC, album_name ASC"

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var downloadedUnix int64

		if err := rows.Scan(&e.AlbumID, &e.ArtistName, &e.AlbumName, &e.Path, &downloadedUnix); err != nil {
			return nil, fmt.Errorf("failed to scan download: %w", err)
		}

		e.DownloadedAt = time.Unix(downloadedUnix, 0)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating downloads: %w", err)
	}

	return entries, nil
}

// Count returns the number of downloaded albums
func (l *Ledger) Count(ctx context.Context) (int, error) {
	var count int
	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM downloads").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count downloads: %w", err)
	}
	return count, nil
}

// Forget removes an album so the next run downloads it again
func (l *Ledger) Forget(ctx context.Context, albumID string) error {
	result, err := l.db.ExecContext(ctx, "DELETE FROM downloads WHERE album_id = ?", albumID)
	if err != nil {
		return fmt.Errorf("failed to forget album %s: %w", albumID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("album %s not found", albumID)
	}

	return nil
}
