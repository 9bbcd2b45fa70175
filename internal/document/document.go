// Package document holds the result document written by a search session:
// an artist and its deduplicated releases.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jodique2/spotify-album-fetcher/pkg/spotify"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Document is the artifact of one session.
// Field names are part of the file format read by the process command.
type Document struct {
	ArtistID   string  `json:"id_artista"`
	ArtistName string  `json:"nome_artista"`
	Albums     []Album `json:"albuns"`
}

// Album is one release in a Document.
type Album struct {
	ID   string `json:"id_album"`
	Name string `json:"nome_album"`
	URL  string `json:"url_album,omitempty"`
}

// New builds a Document for artist from releases, keeping their order.
// Album URLs are only filled when includeURLs is set.
func New(artist spotify.Artist, releases []spotify.Release, includeURLs bool) *Document {
	doc := &Document{
		ArtistID:   artist.ID,
		ArtistName: artist.Name,
		Albums:     make([]Album, 0, len(releases)),
	}

	for _, r := range releases {
		album := Album{ID: r.ID, Name: r.Name}
		if includeURLs {
			album.URL = r.ExternalURLs.Spotify
		}
		doc.Albums = append(doc.Albums, album)
	}

	return doc
}

// Encode returns the document as indented JSON with a trailing newline.
// Non-ASCII text and HTML characters are written as-is.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the document to dir/<slug>.json, creating dir if needed,
// and returns the path written. An existing file for the same artist is
// replaced; when the file belongs to another artist with the same slug the
// document goes to dir/<slug>-<artist id>.json instead.
func (d *Document) WriteFile(dir string) (string, error) {
	data, err := d.Encode()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	path := d.path(dir)

	// Write atomically via temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	return path, nil
}

func (d *Document) path(dir string) string {
	slug := Slugify(d.ArtistName)
	path := filepath.Join(dir, slug+".json")
	if d.ArtistID == "" {
		return path
	}

	existing, err := Read(path)
	if err != nil || existing.ArtistID == "" || existing.ArtistID == d.ArtistID {
		return path
	}
	return filepath.Join(dir, slug+"-"+d.ArtistID+".json")
}

// Read loads a document from path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", filepath.Base(path), err)
	}
	if doc.ArtistName == "" {
		return nil, fmt.Errorf("document %s has no nome_artista", filepath.Base(path))
	}

	return &doc, nil
}

// fallbackSlug names documents for artists whose name has no letters or digits.
const fallbackSlug = "artist"

// Slugify turns an artist name into a lowercase, hyphen-separated file stem.
//
// Diacritics are stripped ("Sigur Rós" -> "sigur-ros"); letters and digits
// from other scripts are kept.
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}
