package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jodique2/spotify-album-fetcher/pkg/spotify"
)

// ErrNoResults means a search matched neither an artist nor an album.
// It ends a session normally.
var ErrNoResults = errors.New("no artist or album matched the search")

// DownstreamError reports a failed post-processing handoff.
type DownstreamError struct {
	Command []string
	Err     error
}

func (e *DownstreamError) Error() string {
	return fmt.Sprintf("downstream %q: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *DownstreamError) Unwrap() error {
	return e.Err
}

// ResolveArtist picks the artist a search refers to.
//
// The first artist result wins regardless of album results. Without artist
// results, the first artist credited on the first album is used.
func ResolveArtist(result *spotify.SearchResult) (spotify.Artist, error) {
	if result == nil {
		return spotify.Artist{}, ErrNoResults
	}

	if len(result.Artists.Items) > 0 {
		return result.Artists.Items[0], nil
	}

	if len(result.Albums.Items) > 0 && len(result.Albums.Items[0].Artists) > 0 {
		return result.Albums.Items[0].Artists[0], nil
	}

	return spotify.Artist{}, ErrNoResults
}
