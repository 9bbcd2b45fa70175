package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jodique2/spotify-album-fetcher/internal/config"
	"github.com/jodique2/spotify-album-fetcher/internal/document"
	"github.com/jodique2/spotify-album-fetcher/pkg/spotify"
)

func writeDocument(t *testing.T, dir, name string, albums int) string {
	t.Helper()

	var releases []spotify.Release
	for i := 0; i < albums; i++ {
		releases = append(releases, spotify.Release{ID: string(rune('a' + i)), Name: string(rune('A' + i))})
	}

	path, err := document.New(spotify.Artist{ID: "x", Name: name}, releases, true).WriteFile(dir)
	if err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
	return path
}

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, dir, "Sigur Rós", 3)
	writeDocument(t, dir, "Björk", 2)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "dir.json"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err := listDocuments(dir)
	if err != nil {
		t.Fatalf("listDocuments failed: %v", err)
	}

	var files []string
	for _, e := range entries {
		files = append(files, e.File)
	}
	if got := strings.Join(files, ","); got != "bjork.json,broken.json,sigur-ros.json" {
		t.Fatalf("unexpected files %s", got)
	}

	if entries[0].Artist != "Björk" || entries[0].Albums != 2 {
		t.Errorf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Artist != "" {
		t.Errorf("expected unreadable entry to have no artist, got %+v", entries[1])
	}
}

func TestListDocumentsMissingDir(t *testing.T) {
	entries, err := listDocuments(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("expected no error for missing dir, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestChooseDocument(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, dir, "Björk", 1)
	want := writeDocument(t, dir, "Sigur Rós", 1)

	var out bytes.Buffer
	got, err := chooseDocument(dir, strings.NewReader("2\n"), &out)
	if err != nil {
		t.Fatalf("chooseDocument failed: %v", err)
	}
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !strings.Contains(out.String(), "2. sigur-ros.json  Sigur Rós (1 albums)") {
		t.Errorf("menu not shown as expected:\n%s", out.String())
	}

	if _, err := chooseDocument(dir, strings.NewReader("7\n"), &out); err == nil {
		t.Error("expected error for out of range choice")
	}
}

func TestChooseDocumentEmptyDir(t *testing.T) {
	var out bytes.Buffer
	if _, err := chooseDocument(t.TempDir(), strings.NewReader("1\n"), &out); err == nil {
		t.Error("expected error when no documents exist")
	}
}

func TestDownstreamCommand(t *testing.T) {
	cfg := &config.Config{}
	argv := downstreamCommand(cfg)
	if len(argv) != 2 || argv[1] != "process" {
		t.Errorf("expected '<self> process', got %v", argv)
	}

	cfg.Downstream.Command = []string{"python", "-m", "post"}
	argv = downstreamCommand(cfg)
	if strings.Join(argv, " ") != "python -m post" {
		t.Errorf("expected configured command, got %v", argv)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug").String() != "debug" {
		t.Error("expected debug level")
	}
	if parseLevel("bogus").String() != "info" {
		t.Error("expected unknown levels to fall back to info")
	}
}
