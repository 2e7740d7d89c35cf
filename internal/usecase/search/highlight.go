package search

import (
	"strings"
	"unicode/utf8"

	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
)

// highlightContext is how many characters of context surround a match.
const highlightContext = 50

// defaultHighlightFields are highlighted when the query names none.
var defaultHighlightFields = []string{"title", "overview"}

// buildHighlights collects one highlighted fragment per field a term
// occurs in. Returns nil when nothing matched.
func buildHighlights(doc *domdoc.Document, terms, fields []string) map[string][]string {
	if len(fields) == 0 {
		fields = defaultHighlightFields
	}

	var highlights map[string][]string
	for _, field := range fields {
		var content string
		switch field {
		case "title":
			content = doc.Title()
		case "overview":
			content = doc.Overview()
		default:
			continue
		}
		if content == "" {
			continue
		}
		for _, term := range terms {
			fragment, ok := highlightFragment(content, term)
			if !ok {
				continue
			}
			if highlights == nil {
				highlights = make(map[string][]string)
			}
			highlights[field] = append(highlights[field], fragment)
		}
	}
	return highlights
}

// highlightFragment locates the first case-insensitive occurrence of
// term in content and returns it wrapped in <em> markers with up to
// highlightContext characters of context on each side. Truncated
// windows gain leading/trailing ellipses.
func highlightFragment(content, term string) (string, bool) {
	pos := indexFold(content, term)
	if pos < 0 {
		return "", false
	}

	start := pos - highlightContext
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	end := pos + len(term) + highlightContext
	if end > len(content) {
		end = len(content)
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(content[start:pos])
	b.WriteString("<em>")
	b.WriteString(content[pos : pos+len(term)])
	b.WriteString("</em>")
	b.WriteString(content[pos+len(term) : end])
	if end < len(content) {
		b.WriteString("...")
	}
	return b.String(), true
}

// indexFold returns the byte offset of the first occurrence of term in
// content, comparing equal-length windows case-insensitively. Positions
// are always valid offsets into content itself, so slicing with them is
// safe even when lowercasing would change a rune's byte length. Matches
// whose folded forms differ in byte length are not found; the caller
// then skips the highlight rather than failing the search.
func indexFold(content, term string) int {
	if term == "" || len(term) > len(content) {
		return -1
	}
	for i := 0; i+len(term) <= len(content); i++ {
		if strings.EqualFold(content[i:i+len(term)], term) {
			return i
		}
	}
	return -1
}
