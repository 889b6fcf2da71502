package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Highlight markers wrapped around every matched term.
const (
	MarkOpen  = `<mark class="highlight">`
	MarkClose = `</mark>`
)

// minHighlightLen is the shortest token worth highlighting.
const minHighlightLen = 3

// HighlightTerms wraps every case-insensitive occurrence of each query token
// (three characters or longer) in text with highlight markers. Tokens are applied
// in query order, each pass seeing the output of the previous one.
func HighlightTerms(text, query string) string {
	if query == "" || text == "" {
		return text
	}

	highlighted := text
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(token) < minHighlightLen {
			continue
		}
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(token))
		highlighted = re.ReplaceAllString(highlighted, MarkOpen+"${0}"+MarkClose)
	}
	return highlighted
}
