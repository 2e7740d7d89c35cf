package facet

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// labels maps field:value to a human-readable display label.
var labels = map[string]string{
	"content_type:study_guide":       "Study Guide",
	"content_type:podcast_script":    "Podcast Script",
	"content_type:one_pager_summary": "One-Pager Summary",
	"content_type:faq":               "FAQ",
	"content_type:flashcards":        "Flashcards",
	"content_type:reading_guide":     "Reading Guide",
	"content_type:outline":           "Outline",

	"difficulty:beginner":     "Beginner",
	"difficulty:intermediate": "Intermediate",
	"difficulty:advanced":     "Advanced",

	"target_audience:high_school":  "High School",
	"target_audience:college":      "College",
	"target_audience:professional": "Professional",
	"target_audience:general":      "General",

	"status:published": "Published",
	"status:draft":     "Draft",
	"status:archived":  "Archived",
}

var titleCaser = cases.Title(language.English)

// Label returns the display label for a facet value. Unknown values fall
// back to the title-cased, underscore-replaced raw value.
func Label(field, value string) string {
	if l, ok := labels[field+":"+value]; ok {
		return l
	}
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}
