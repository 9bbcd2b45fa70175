package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/jodique2/spotify-album-fetcher/internal/document"
	"github.com/jodique2/spotify-album-fetcher/internal/downloader"
	"github.com/mattn/go-runewidth"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    6,
			expected: "Hi    ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "Live at the Royal Albert Hall",
			width:    12,
			expected: "Live at t...",
		},
		{
			name:     "accented text is one column per letter",
			input:    "Sigur Rós",
			width:    11,
			expected: "Sigur Rós  ",
		},
		{
			name:     "wide characters",
			input:    "日本語",
			width:    8,
			expected: "日本語  ",
		},
		{
			name:     "truncate wide characters",
			input:    "日本語のアルバム",
			width:    10,
			expected: "日本語... ",
		},
		{
			name:     "minimum width for truncation",
			input:    "Hello",
			width:    3,
			expected: "...",
		},
		{
			name:     "width below ellipsis",
			input:    "Hello",
			width:    2,
			expected: "..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := padToWidth(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, expected %q", tt.input, tt.width, result, tt.expected)
			}
			if tt.width > 0 {
				if w := runewidth.StringWidth(result); w != tt.width {
					t.Errorf("padToWidth(%q, %d) has width %d", tt.input, tt.width, w)
				}
			}
		})
	}
}

func TestColumnWidth(t *testing.T) {
	if got := columnWidth([]string{"a", "Björk", "日本"}, 0); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := columnWidth([]string{strings.Repeat("x", 80)}, 10); got != 10 {
		t.Errorf("expected cap of 10, got %d", got)
	}
	if got := columnWidth(nil, 10); got != 0 {
		t.Errorf("expected 0 for no values, got %d", got)
	}
}

func TestRenderMenu(t *testing.T) {
	entries := []menuEntry{
		{File: "bjork.json", Artist: "Björk", Albums: 12},
		{File: "sigur-ros.json", Artist: "Sigur Rós", Albums: 9},
		{File: "broken.json"},
	}

	lines := renderMenu(entries)
	want := []string{
		"1. bjork.json      Björk (12 albums)",
		"2. sigur-ros.json  Sigur Rós (9 albums)",
		"3. broken.json     (unreadable)",
	}

	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], want[i])
		}
	}
}

func TestRenderMenuNumberAlignment(t *testing.T) {
	var entries []menuEntry
	for i := 0; i < 10; i++ {
		entries = append(entries, menuEntry{File: "a.json", Artist: "A"})
	}

	lines := renderMenu(entries)
	if !strings.HasPrefix(lines[0], " 1. ") {
		t.Errorf("expected right-aligned number, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[9], "10. ") {
		t.Errorf("expected two-digit number, got %q", lines[9])
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input   string
		n       int
		want    int
		wantErr bool
	}{
		{"1\n", 3, 0, false},
		{" 3 ", 3, 2, false},
		{"0", 3, 0, true},
		{"4", 3, 0, true},
		{"-1", 3, 0, true},
		{"two", 3, 0, true},
		{"", 3, 0, true},
	}

	for _, tt := range tests {
		got, err := parseChoice(tt.input, tt.n)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseChoice(%q, %d) expected error", tt.input, tt.n)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseChoice(%q, %d) unexpected error: %v", tt.input, tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseChoice(%q, %d) = %d, expected %d", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	summary := &downloader.Summary{
		Artist: "Björk",
		Results: []downloader.Result{
			{Album: document.Album{Name: "Debut"}, Status: downloader.StatusDownloaded},
			{Album: document.Album{Name: "Homogenic"}, Status: downloader.StatusSkipped},
			{Album: document.Album{Name: "Post"}, Status: downloader.StatusFailed, Err: errors.New("spotdl exited with code 1")},
		},
	}

	lines := renderSummary(summary)
	want := []string{
		"Debut      downloaded",
		"Homogenic  skipped",
		"Post       failed: spotdl exited with code 1",
	}

	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], want[i])
		}
	}
}
