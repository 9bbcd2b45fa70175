package cmd

import (
	"context"
	"fmt"

	"github.com/jodique2/spotify-album-fetcher/internal/config"
	"github.com/spf13/cobra"
)

var downloadsForget string

var downloadsCmd = &cobra.Command{
	Use:   "downloads [artist]",
	Short: "List albums recorded in the download ledger",
	Long: `List the albums 'discog process' has downloaded, newest first.

Pass an artist name to filter the list. Use --forget <album-id> to remove
an album from the ledger so the next run downloads it again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDownloads,
}

func init() {
	rootCmd.AddCommand(downloadsCmd)

	downloadsCmd.Flags().StringVar(&downloadsForget, "forget", "", "Remove an album id from the ledger")
}

func runDownloads(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	if downloadsForget != "" {
		if err := store.Forget(ctx, downloadsForget); err != nil {
			return err
		}
		fmt.Printf("✓ Forgot %s\n", downloadsForget)
		return nil
	}

	artist := ""
	if len(args) == 1 {
		artist = args[0]
	}

	entries, err := store.List(ctx, artist)
	if err != nil {
		return err
	}

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	artists := make([]string, len(entries))
	albums := make([]string, len(entries))
	for i, e := range entries {
		artists[i] = e.ArtistName
		albums[i] = e.AlbumName
	}
	artistWidth := columnWidth(artists, maxNameWidth/2)
	albumWidth := columnWidth(albums, maxNameWidth)

	for _, e := range entries {
		fmt.Printf("%s  %s  %s  %s\n",
			e.DownloadedAt.Format("2006-01-02 15:04"),
			padToWidth(e.ArtistName, artistWidth),
			padToWidth(e.AlbumName, albumWidth),
			e.AlbumID,
		)
	}

	fmt.Printf("\n%d of %d recorded albums shown\n", len(entries), total)
	return nil
}
