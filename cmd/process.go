package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/jodique2/spotify-album-fetcher/internal/config"
	"github.com/jodique2/spotify-album-fetcher/internal/document"
	"github.com/jodique2/spotify-album-fetcher/internal/downloader"
	"github.com/jodique2/spotify-album-fetcher/internal/ledger"
	"github.com/jodique2/spotify-album-fetcher/internal/runner"
	"github.com/spf13/cobra"
)

var (
	processDataDir string
	processRoot    string
	processWorkers int
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Download the albums of a saved document",
	Long: `Download every album of a document written by 'discog search -o file'.

Without a file, the JSON documents in the data directory are listed and
you choose one by number. Each album is downloaded by the configured
downloader command (default: spotdl) run inside
<root>/<artist>/<album>, with the album link as its last argument.

Albums already recorded in the download ledger are skipped, so a document
can be processed again after an interrupted run. A failing album does not
stop the others; the command exits non-zero when any album failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&processDataDir, "data-dir", "", "Directory listed when no file is given (overrides config)")
	processCmd.Flags().StringVar(&processRoot, "root", "", "Music root directory (overrides config)")
	processCmd.Flags().IntVarP(&processWorkers, "workers", "w", 0, "Concurrent downloads (overrides config)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if processDataDir != "" {
		cfg.DataDir = processDataDir
	}
	if processRoot != "" {
		cfg.Downloader.Root = processRoot
	}
	if processWorkers != 0 {
		cfg.Downloader.Workers = processWorkers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := loggerFor(cfg)

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		path, err = chooseDocument(cfg.DataDir, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
	}

	doc, err := document.Read(path)
	if err != nil {
		return err
	}

	store, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := downloader.New(downloader.Config{
		Command: cfg.Downloader.Command,
		Root:    cfg.Downloader.Root,
		Workers: cfg.Downloader.Workers,
	}, runner.NewExec(os.Stdout, os.Stderr), store, logger)

	summary, err := d.Process(ctx, doc)
	if summary != nil {
		fmt.Printf("\n%s\n", summary.Artist)
		for _, line := range renderSummary(summary) {
			fmt.Printf("  %s\n", line)
		}
	}
	if err != nil {
		return fmt.Errorf("processing %s: %w", path, err)
	}

	if failed := summary.Count(downloader.StatusFailed); failed > 0 {
		return fmt.Errorf("%d of %d albums failed to download", failed, len(summary.Results))
	}

	fmt.Println("\n✓ All downloads finished")
	return nil
}

// openLedger opens the configured ledger, creating its directory
func openLedger(cfg *config.Config) (*ledger.Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Downloader.Ledger), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}
	store, err := ledger.New(cfg.Downloader.Ledger)
	if err != nil {
		return nil, fmt.Errorf("failed to open download ledger: %w", err)
	}
	return store, nil
}

// chooseDocument lists the JSON documents in dir and reads a choice from in
func chooseDocument(dir string, in io.Reader, out io.Writer) (string, error) {
	entries, err := listDocuments(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no JSON documents found in %s", dir)
	}

	fmt.Fprintln(out, "Documents available for download:")
	for _, line := range renderMenu(entries) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprint(out, "\nChoose a document by number: ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read choice: %w", err)
	}

	idx, err := parseChoice(answer, len(entries))
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, entries[idx].File), nil
}

// listDocuments returns the JSON files in dir sorted by name
func listDocuments(dir string) ([]menuEntry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var entries []menuEntry
	for _, f := range files {
		if f.IsDir() || !strings.EqualFold(filepath.Ext(f.Name()), ".json") {
			continue
		}

		entry := menuEntry{File: f.Name()}
		if doc, err := document.Read(filepath.Join(dir, f.Name())); err == nil {
			entry.Artist = doc.ArtistName
			entry.Albums = len(doc.Albums)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].File < entries[j].File
	})

	return entries, nil
}
