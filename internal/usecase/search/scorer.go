package search

import (
	"strings"

	domdoc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/document"
)

// scoreDocument computes the relevance of doc for the given lower-cased
// terms: a title hit contributes titleMatchWeight, and every occurrence
// in the searchable text contributes textOccurWeight. A zero score
// means the document does not match at all.
func scoreDocument(doc *domdoc.Document, terms []string) float64 {
	title := strings.ToLower(doc.Title())
	text := doc.SearchableText()

	score := 0.0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += titleMatchWeight
		}
		score += float64(strings.Count(text, term)) * textOccurWeight
	}
	return score
}
