package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jodique2/spotify-album-fetcher/internal/config"
	"github.com/jodique2/spotify-album-fetcher/internal/document"
	"github.com/jodique2/spotify-album-fetcher/pkg/spotify"
	"github.com/spf13/cobra"
)

var (
	releasesName string
	releasesURLs bool
)

var releasesCmd = &cobra.Command{
	Use:   "releases <artist-id>",
	Short: "Print the discography of a known Spotify artist id",
	Long: `Fetch every album and single of an artist by Spotify id and print the
deduplicated list as JSON. Searching and artist resolution are skipped.

The releases endpoint does not return the artist's name; pass --name to
fill nome_artista, otherwise the id is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runReleases,
}

func init() {
	rootCmd.AddCommand(releasesCmd)

	releasesCmd.Flags().StringVar(&releasesName, "name", "", "Artist name for the document")
	releasesCmd.Flags().BoolVar(&releasesURLs, "urls", false, "Include album links (url_album)")
}

func runReleases(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := loggerFor(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newSpotifyClient(cfg, logger)

	token, err := client.Auth().Token(ctx, credentials(cfg))
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	artist := spotify.Artist{ID: args[0], Name: releasesName}
	if artist.Name == "" {
		artist.Name = artist.ID
	}

	releases, err := client.Catalog().ListAllReleases(ctx, token.AccessToken, artist.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch releases: %w", err)
	}

	logger.Info().
		Str("artist_id", artist.ID).
		Int("releases", len(releases)).
		Msg("Fetched discography")

	data, err := document.New(artist, releases, releasesURLs).Encode()
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(data)
	return err
}
