package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jodique2/spotify-album-fetcher/internal/downloader"
	"github.com/mattn/go-runewidth"
)

// maxNameWidth caps the name column in menus and summaries
const maxNameWidth = 48

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		result := runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis

		// Wide runes can leave the truncation one column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}

// columnWidth returns the display width of the widest value, capped at limit
func columnWidth(values []string, limit int) int {
	width := 0
	for _, v := range values {
		if w := runewidth.StringWidth(v); w > width {
			width = w
		}
	}
	if limit > 0 && width > limit {
		return limit
	}
	return width
}

// menuEntry is one document offered by the process command
type menuEntry struct {
	File   string
	Artist string
	Albums int
}

// renderMenu returns numbered, column-aligned menu lines
func renderMenu(entries []menuEntry) []string {
	files := make([]string, len(entries))
	for i, e := range entries {
		files[i] = e.File
	}
	width := columnWidth(files, maxNameWidth)
	numWidth := len(strconv.Itoa(len(entries)))

	lines := make([]string, len(entries))
	for i, e := range entries {
		label := e.Artist
		if label == "" {
			label = "(unreadable)"
		} else {
			label = fmt.Sprintf("%s (%d albums)", e.Artist, e.Albums)
		}
		lines[i] = fmt.Sprintf("%*d. %s  %s", numWidth, i+1, padToWidth(e.File, width), label)
	}
	return lines
}

// parseChoice turns a 1-based menu answer into an index below n
func parseChoice(input string, n int) (int, error) {
	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("invalid choice %q", strings.TrimSpace(input))
	}
	if choice < 1 || choice > n {
		return 0, fmt.Errorf("choice %d out of range 1-%d", choice, n)
	}
	return choice - 1, nil
}

// renderSummary returns one aligned line per album of a download run
func renderSummary(summary *downloader.Summary) []string {
	names := make([]string, len(summary.Results))
	for i, r := range summary.Results {
		names[i] = r.Album.Name
	}
	width := columnWidth(names, maxNameWidth)

	lines := make([]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		line := fmt.Sprintf("%s  %s", padToWidth(r.Album.Name, width), r.Status)
		if r.Err != nil {
			line += ": " + r.Err.Error()
		}
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}
