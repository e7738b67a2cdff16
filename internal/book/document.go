package book

import (
	"strings"
)

// Document is an immutable, line-addressed view of a book's text.
// Lines are 1-indexed and the numbering assigned here is the only
// numbering the rest of the pipeline uses — no downstream component
// re-tokenizes the text.
type Document struct {
	title string
	text  string
	lines []string
}

// NewDocument splits text into lines once and freezes the result.
// CRLF line endings are normalized before splitting.
func NewDocument(title, text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Document{
		title: title,
		text:  text,
		lines: strings.Split(text, "\n"),
	}
}

// Title returns the book title.
func (d *Document) Title() string {
	return d.title
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the 1-indexed line n. Out-of-range n returns "".
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// Text returns lines start through end (1-indexed, inclusive) joined by
// newlines and trimmed of leading and trailing whitespace. Bounds are
// clamped to the document.
func (d *Document) Text(start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(d.lines) {
		end = len(d.lines)
	}
	if start > end {
		return ""
	}
	return strings.TrimSpace(strings.Join(d.lines[start-1:end], "\n"))
}

// Prefix returns the first n bytes of the document text, truncated at a
// rune boundary. Tables of contents appear early, so the TOC prompt only
// needs this window rather than the whole book.
func (d *Document) Prefix(n int) string {
	if n <= 0 {
		return ""
	}
	if n >= len(d.text) {
		return d.text
	}
	// Back up to a rune boundary.
	for n > 0 && d.text[n]&0xC0 == 0x80 {
		n--
	}
	return d.text[:n]
}
