// Package toc turns a raw document prefix into an ordered list of
// candidate chapter titles by asking the text-generation service to read
// the book's table of contents.
package toc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wesleyflorence/bookchat/internal/book"
	"github.com/wesleyflorence/bookchat/internal/llm"
)

// ErrNoTableOfContents means the service found no table of contents in
// the document prefix. Terminal for the whole run: no heuristic TOC is
// constructed in its place.
var ErrNoTableOfContents = errors.New("no table of contents found")

// DefaultPrefixBytes is how much of the document the extraction prompt
// sees. Tables of contents sit in the first few thousand characters and
// full-document prompts are costly.
const DefaultPrefixBytes = 5000

const extractPrompt = `Analyze the following text and identify the table of contents.
Return ONLY a list of chapter names, one per line, in the order they appear, without any introductory text or numbering.
Do not include the chapter number and do not preface the list with a statement like 'Here is list of chapter names'.
If no table of contents is found, return an empty list.

Example input:
CONTENTS
Dedication
Prologue: A New Beginning
1. The First Step
2. Challenges Ahead
3. Overcoming Obstacles
4. The Final Push
Epilogue: Looking Back
Acknowledgements

Example output:
The First Step
Challenges Ahead
Overcoming Obstacles
The Final Push

Now, analyze this text:
%s`

// Extractor asks a Generator for the chapter titles of a document.
// It performs no retry itself; transient failures propagate to the
// caller, whose backoff policy wraps this interface.
type Extractor struct {
	gen         llm.Generator
	prefixBytes int
}

func NewExtractor(gen llm.Generator, prefixBytes int) *Extractor {
	if prefixBytes <= 0 {
		prefixBytes = DefaultPrefixBytes
	}
	return &Extractor{gen: gen, prefixBytes: prefixBytes}
}

// Extract returns candidate chapter titles in the order the book claims
// they appear. Titles are not guaranteed unique, exhaustive, or accurate.
// An empty response parses to ErrNoTableOfContents.
func (e *Extractor) Extract(ctx context.Context, doc *book.Document) ([]string, error) {
	prompt := fmt.Sprintf(extractPrompt, doc.Prefix(e.prefixBytes))
	resp, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extract toc: %w", err)
	}

	titles := parseTitles(resp)
	if len(titles) == 0 {
		return nil, ErrNoTableOfContents
	}
	return titles, nil
}

// parseTitles splits the response into one title per line, trimming
// whitespace and dropping blanks.
func parseTitles(resp string) []string {
	var titles []string
	for _, line := range strings.Split(resp, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			titles = append(titles, line)
		}
	}
	return titles
}
