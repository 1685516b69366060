package ingest

import (
	"regexp"
	"strings"
)

var (
	repeatedNewlines = regexp.MustCompile(`\n+`)
	pageMarkers      = regexp.MustCompile(`(?i)Page\s*\d+`)
	whitespaceRuns   = regexp.MustCompile(`\s{2,}`)
)

// Clean normalizes raw extracted text: repeated newlines collapse to one,
// standalone "Page N" markers are removed, runs of whitespace collapse to a
// single space, and the result is trimmed.
func Clean(text string) string {
	text = repeatedNewlines.ReplaceAllString(text, "\n")
	text = pageMarkers.ReplaceAllString(text, "")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
