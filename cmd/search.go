package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jodique2/spotify-album-fetcher/internal/config"
	"github.com/jodique2/spotify-album-fetcher/internal/runner"
	"github.com/jodique2/spotify-album-fetcher/internal/session"
	"github.com/spf13/cobra"
)

var (
	searchOutput  string
	searchDataDir string
	searchProcess bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search an artist and print their discography",
	Long: `Search Spotify for an artist or album and list the artist's discography.

Without arguments the search text is read from stdin after a prompt.
The first artist result is used; when no artist matches, the first
artist credited on the first matching album is used instead.

Output modes:
  stdout - print the document as JSON (default)
  file   - write <data-dir>/<artist>.json including album links

With --process (file mode only) the written document is handed to
'discog process' or the configured downstream command. A failing
downstream step is reported but does not fail the search.

Exit codes:
  0 - Document produced, empty input, or no results
  1 - Authentication, API or output error`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "Output mode: stdout or file (overrides config)")
	searchCmd.Flags().StringVar(&searchDataDir, "data-dir", "", "Directory for documents in file mode (overrides config)")
	searchCmd.Flags().BoolVar(&searchProcess, "process", false, "Run the downstream step on the written document")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if searchOutput != "" {
		cfg.Output = searchOutput
	}
	if searchDataDir != "" {
		cfg.DataDir = searchDataDir
	}
	if searchProcess {
		cfg.Downstream.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := loggerFor(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newSpotifyClient(cfg, logger)

	opts := session.Options{
		Credentials: credentials(cfg),
		Output:      cfg.Output,
		DataDir:     cfg.DataDir,
		Stdout:      os.Stdout,
	}
	if cfg.Downstream.Enabled {
		opts.Downstream = downstreamCommand(cfg)
	}
	if len(args) == 0 {
		// Keep stdout for the document
		opts.PromptOut = os.Stderr
	}

	sess := session.New(client.Auth(), client.Catalog(), runner.NewExec(os.Stdout, os.Stderr), opts, logger)

	var outcome *session.Outcome
	if len(args) > 0 {
		outcome, err = sess.Search(ctx, strings.Join(args, " "))
	} else {
		outcome, err = sess.Run(ctx, os.Stdin)
	}
	if err != nil {
		return err
	}

	switch {
	case outcome.Empty:
		fmt.Fprintln(os.Stderr, "Nothing to search for.")
	case outcome.NoResults:
		fmt.Fprintf(os.Stderr, "No results for %q.\n", outcome.Query)
	case outcome.Path != "":
		fmt.Fprintf(os.Stderr, "✓ %s: %d releases saved to %s\n",
			outcome.Artist.Name, len(outcome.Document.Albums), outcome.Path)
		if outcome.DownstreamErr != nil {
			fmt.Fprintf(os.Stderr, "! Processing failed: %v\n", outcome.DownstreamErr)
		}
	}

	return nil
}

// downstreamCommand returns the configured handoff program, defaulting to
// this binary's process command.
func downstreamCommand(cfg *config.Config) []string {
	if len(cfg.Downstream.Command) > 0 {
		return cfg.Downstream.Command
	}

	self, err := os.Executable()
	if err != nil {
		self = "discog"
	}
	return []string{self, "process"}
}
