// Package downloader fetches the albums of a document with an external
// command, a few albums at a time, skipping those already in the ledger.
package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jodique2/spotify-album-fetcher/internal/document"
	"github.com/jodique2/spotify-album-fetcher/internal/ledger"
	"github.com/jodique2/spotify-album-fetcher/internal/runner"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of albums downloaded at once
const DefaultWorkers = 4

// Store is the part of the ledger the downloader needs
type Store interface {
	Has(ctx context.Context, albumID string) (bool, error)
	Record(ctx context.Context, e ledger.Entry) error
}

// Config holds downloader settings
type Config struct {
	// Command is run inside the album directory with the album URL appended
	Command []string

	// Root is the directory artist folders are created in
	Root string

	// Workers bounds concurrent downloads; values below 1 use DefaultWorkers
	Workers int
}

// Status is the result of one album
type Status int

const (
	StatusPending    Status = iota // Not started, e.g. after cancellation
	StatusDownloaded               // Command succeeded and was recorded
	StatusSkipped                  // Already in the ledger
	StatusNoURL                    // Document has no url_album for it
	StatusFailed
)

// String returns a human-readable representation of the Status
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDownloaded:
		return "downloaded"
	case StatusSkipped:
		return "skipped"
	case StatusNoURL:
		return "no url"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes what happened to one album
type Result struct {
	Album  document.Album
	Dir    string
	Status Status
	Err    error
}

// Summary collects per-album results in document order
type Summary struct {
	Artist  string
	Results []Result
}

// Count returns how many albums ended with status
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Downloader runs the download command for each album of a document
type Downloader struct {
	cfg    Config
	runner runner.Runner
	store  Store
	logger zerolog.Logger
}

// New creates a Downloader. store may be nil to download everything.
func New(cfg Config, run runner.Runner, store Store, logger zerolog.Logger) *Downloader {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	return &Downloader{
		cfg:    cfg,
		runner: run,
		store:  store,
		logger: logger.With().Str("component", "downloader").Logger(),
	}
}

// Process downloads every album of doc that has a URL and is not yet in
// the ledger. A failing album is logged and recorded in the summary; the
// others continue. The returned error is only set when the run could not
// start or ctx was cancelled.
func (d *Downloader) Process(ctx context.Context, doc *document.Document) (*Summary, error) {
	if len(d.cfg.Command) == 0 {
		return nil, fmt.Errorf("no download command configured")
	}

	artistDir := filepath.Join(d.cfg.Root, SanitizeFileName(doc.ArtistName))
	if err := os.MkdirAll(artistDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artist directory: %w", err)
	}

	summary := &Summary{
		Artist:  doc.ArtistName,
		Results: make([]Result, len(doc.Albums)),
	}

	d.logger.Info().
		Str("artist", doc.ArtistName).
		Int("albums", len(doc.Albums)).
		Int("workers", d.cfg.Workers).
		Msg("Processing document")

	// All ledger lookups finish before the first download starts
	var pending []int
	dirs := make(map[string]struct{}, len(doc.Albums))
	for i, album := range doc.Albums {
		dir := filepath.Join(artistDir, albumDirName(album.Name, dirs))
		summary.Results[i] = Result{Album: album, Dir: dir}

		if album.URL == "" {
			summary.Results[i].Status = StatusNoURL
			continue
		}

		if d.store != nil {
			done, err := d.store.Has(ctx, album.ID)
			if err != nil {
				return nil, err
			}
			if done {
				d.logger.Info().Str("album", album.Name).Msg("Already downloaded")
				summary.Results[i].Status = StatusSkipped
				continue
			}
		}

		pending = append(pending, i)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)

	for _, i := range pending {
		i := i
		result := &summary.Results[i]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if err := d.download(gctx, doc.ArtistName, result.Album, result.Dir); err != nil {
				result.Status = StatusFailed
				result.Err = err
				d.logger.Error().
					Err(err).
					Str("album", result.Album.Name).
					Msg("Download failed")
				return nil
			}

			result.Status = StatusDownloaded
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	d.logger.Info().
		Int("downloaded", summary.Count(StatusDownloaded)).
		Int("skipped", summary.Count(StatusSkipped)).
		Int("failed", summary.Count(StatusFailed)).
		Msg("Finished processing document")

	return summary, nil
}

func (d *Downloader) download(ctx context.Context, artist string, album document.Album, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create album directory: %w", err)
	}

	d.logger.Info().
		Str("artist", artist).
		Str("album", album.Name).
		Msg("Downloading")

	start := time.Now()
	argv := append(append([]string{}, d.cfg.Command...), album.URL)
	if err := d.runner.Run(ctx, dir, argv); err != nil {
		return err
	}

	d.logger.Info().
		Str("album", album.Name).
		Dur("took", time.Since(start)).
		Msg("Downloaded")

	if d.store == nil {
		return nil
	}

	return d.store.Record(ctx, ledger.Entry{
		AlbumID:    album.ID,
		ArtistName: artist,
		AlbumName:  album.Name,
		Path:       dir,
	})
}

// albumDirName returns the folder name for an album, adding " (2)", " (3)"
// and so on when an earlier album of the same document already claimed the
// name. Names are compared case-insensitively.
func albumDirName(name string, claimed map[string]struct{}) string {
	base := SanitizeFileName(name)
	dir := base
	for n := 2; ; n++ {
		key := strings.ToLower(dir)
		if _, taken := claimed[key]; !taken {
			claimed[key] = struct{}{}
			return dir
		}
		dir = fmt.Sprintf("%s (%d)", base, n)
	}
}
