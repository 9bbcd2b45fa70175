// Package session runs one discography search: prompt, token, search,
// artist resolution, release listing and output.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jodique2/spotify-album-fetcher/internal/config"
	"github.com/jodique2/spotify-album-fetcher/internal/document"
	"github.com/jodique2/spotify-album-fetcher/internal/runner"
	"github.com/jodique2/spotify-album-fetcher/pkg/spotify"
	"github.com/rs/zerolog"
)

// Prompt is shown before reading the search text.
const Prompt = "Search artist or album: "

// TokenSource exchanges client credentials for a token
type TokenSource interface {
	Token(ctx context.Context, creds spotify.Credentials) (*spotify.Token, error)
}

// Catalog searches and lists releases
type Catalog interface {
	Search(ctx context.Context, token, query string) (*spotify.SearchResult, error)
	ListAllReleases(ctx context.Context, token, artistID string) ([]spotify.Release, error)
}

// Options control where a session's result goes.
type Options struct {
	Credentials spotify.Credentials

	// Output is config.OutputStdout or config.OutputFile
	Output string

	// DataDir receives the document in file mode
	DataDir string

	// Stdout receives the document in stdout mode
	Stdout io.Writer

	// PromptOut receives the prompt; nil disables it
	PromptOut io.Writer

	// Downstream is run with the document path appended after a file
	// is written. Empty disables the handoff.
	Downstream []string
}

// Outcome describes how a session ended without error.
type Outcome struct {
	Query     string
	Empty     bool // Input was blank, nothing was requested
	NoResults bool // Search matched no artist or album

	Artist   spotify.Artist
	Document *document.Document
	Path     string // Written file, file mode only

	// DownstreamErr is a *DownstreamError when the handoff failed.
	// The document was still produced.
	DownstreamErr error
}

// Session runs one search from input to emitted document.
// A Session is single-use and not safe for concurrent use.
type Session struct {
	tokens  TokenSource
	catalog Catalog
	runner  runner.Runner
	opts    Options
	logger  zerolog.Logger
	state   State
}

// New creates a Session. run may be nil when Options.Downstream is empty.
func New(tokens TokenSource, catalog Catalog, run runner.Runner, opts Options, logger zerolog.Logger) *Session {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	return &Session{
		tokens:  tokens,
		catalog: catalog,
		runner:  run,
		opts:    opts,
		logger:  logger.With().Str("component", "session").Logger(),
		state:   StateAwaitingInput,
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Run prompts for a query on in and runs the session with it.
func (s *Session) Run(ctx context.Context, in io.Reader) (*Outcome, error) {
	if s.opts.PromptOut != nil {
		fmt.Fprint(s.opts.PromptOut, Prompt)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.transition(StateFailed)
		return nil, fmt.Errorf("failed to read search text: %w", err)
	}

	return s.Search(ctx, line)
}

// Search runs the session for query.
//
// Blank queries and searches without matches end normally with Empty or
// NoResults set. Authentication, API and output failures move the session
// to StateFailed and are returned; nothing is written in that case.
func (s *Session) Search(ctx context.Context, query string) (*Outcome, error) {
	query = strings.TrimSpace(query)
	outcome := &Outcome{Query: query}

	if query == "" {
		s.logger.Debug().Msg("Empty search, nothing to do")
		outcome.Empty = true
		s.transition(StateDone)
		return outcome, nil
	}

	s.transition(StateAuthenticating)
	token, err := s.tokens.Token(ctx, s.opts.Credentials)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to authenticate: %w", err))
	}

	s.transition(StateSearching)
	result, err := s.catalog.Search(ctx, token.AccessToken, query)
	if err != nil {
		return nil, s.fail(fmt.Errorf("search failed: %w", err))
	}

	s.transition(StateResolvingArtist)
	artist, err := ResolveArtist(result)
	if err != nil {
		s.logger.Info().Str("query", query).Msg("No results")
		outcome.NoResults = true
		s.transition(StateDone)
		return outcome, nil
	}
	outcome.Artist = artist

	s.logger.Info().
		Str("artist", artist.Name).
		Str("artist_id", artist.ID).
		Msg("Resolved artist")

	s.transition(StateFetchingReleases)
	releases, err := s.catalog.ListAllReleases(ctx, token.AccessToken, artist.ID)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to fetch releases: %w", err))
	}

	s.logger.Info().Int("releases", len(releases)).Msg("Fetched discography")

	s.transition(StateEmitting)
	if err := s.emit(ctx, outcome, artist, releases); err != nil {
		return nil, s.fail(err)
	}

	s.transition(StateDone)
	return outcome, nil
}

// emit prints or writes the document, then runs the downstream handoff.
func (s *Session) emit(ctx context.Context, outcome *Outcome, artist spotify.Artist, releases []spotify.Release) error {
	toFile := s.opts.Output == config.OutputFile
	doc := document.New(artist, releases, toFile)
	outcome.Document = doc

	if !toFile {
		data, err := doc.Encode()
		if err != nil {
			return err
		}
		if _, err := s.opts.Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	path, err := doc.WriteFile(s.opts.DataDir)
	if err != nil {
		return err
	}
	outcome.Path = path
	s.logger.Info().Str("path", path).Msg("Wrote document")

	if len(s.opts.Downstream) > 0 {
		outcome.DownstreamErr = s.handoff(ctx, path)
	}

	return nil
}

// handoff runs the downstream program. Its failure is reported, not returned.
func (s *Session) handoff(ctx context.Context, path string) error {
	argv := append(append([]string{}, s.opts.Downstream...), path)
	s.logger.Info().Strs("command", argv).Msg("Starting downstream processing")

	if s.runner == nil {
		err := &DownstreamError{Command: argv, Err: errors.New("no runner configured")}
		s.logger.Warn().Err(err).Msg("Downstream processing failed")
		return err
	}

	if err := s.runner.Run(ctx, "", argv); err != nil {
		dErr := &DownstreamError{Command: argv, Err: err}
		s.logger.Warn().Err(dErr).Msg("Downstream processing failed")
		return dErr
	}

	s.logger.Info().Msg("Downstream processing finished")
	return nil
}

func (s *Session) transition(next State) {
	s.logger.Debug().
		Str("from", s.state.String()).
		Str("to", next.String()).
		Msg("Session state")
	s.state = next
}

func (s *Session) fail(err error) error {
	s.transition(StateFailed)
	return err
}
