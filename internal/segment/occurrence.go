package segment

import (
	"regexp"

	"github.com/wesleyflorence/bookchat/internal/book"
)

// Occurrence is a claim that a chapter heading appears at a line.
// The raw occurrence list from FindOccurrences may repeat titles and
// contain false positives (a title appearing in running prose); the
// reconciliation passes in reconcile.go clean it up.
type Occurrence struct {
	Title string `json:"title"`
	Line  int    `json:"line"`
}

// Matcher reports whether a document line reads as the start of the named
// chapter. The heading heuristic lives here and nowhere else, so alternate
// heuristics (fuzzy matching, whitespace normalization) can be swapped in
// without touching reconciliation.
type Matcher func(line, title string) bool

// DefaultMatcher builds the standard heading heuristic for a set of
// titles: optional leading chapter number ("12."), optional whitespace,
// then the literal title text, case-insensitive, anchored at line start.
// Patterns are compiled once per title.
func DefaultMatcher(titles []string) Matcher {
	patterns := make(map[string]*regexp.Regexp, len(titles))
	for _, t := range titles {
		patterns[t] = headingPattern(t)
	}
	return func(line, title string) bool {
		re, ok := patterns[title]
		if !ok {
			re = headingPattern(title)
		}
		return re.MatchString(line)
	}
}

func headingPattern(title string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(\d+\.)?\s*` + regexp.QuoteMeta(title))
}

// FindOccurrences scans every line of the document against every candidate
// title and records each match. Lines are visited in the outer loop, so the
// result is in document order. O(lines x titles) is accepted: both are
// bounded by a single book. A nil match uses DefaultMatcher.
func FindOccurrences(doc *book.Document, titles []string, match Matcher) []Occurrence {
	if match == nil {
		match = DefaultMatcher(titles)
	}
	var occs []Occurrence
	for n := 1; n <= doc.LineCount(); n++ {
		line := doc.Line(n)
		for _, title := range titles {
			if match(line, title) {
				occs = append(occs, Occurrence{Title: title, Line: n})
			}
		}
	}
	return occs
}
