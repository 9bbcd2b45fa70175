package downloader

import (
	"regexp"
	"strings"
)

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// SanitizeFileName makes name usable as a folder name on every platform.
//
// Reserved characters and control characters become underscores, trailing
// dots are removed and whitespace runs collapse to one space:
//
//	SanitizeFileName("AC/DC")          // "AC_DC"
//	SanitizeFileName("Takk...")        // "Takk"
//	SanitizeFileName("  Live   2008 ") // "Live 2008"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = trailingDots.ReplaceAllString(name, "")
	name = strings.TrimRight(name, " ")

	if name == "" {
		return "_"
	}
	return name
}
