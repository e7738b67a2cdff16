package analysis

import (
	"fmt"
	"strings"
)

// Review accumulates the markdown review document for one book: a title
// header, one section per chapter, and any question/answer exchanges.
// Not safe for concurrent use; callers that share a Review guard it.
type Review struct {
	buf strings.Builder
}

func NewReview(bookTitle string) *Review {
	r := &Review{}
	fmt.Fprintf(&r.buf, "# AI Review: %s\n\n", bookTitle)
	return r
}

// AddChapter appends one chapter's analysis.
func (r *Review) AddChapter(analysis string) {
	fmt.Fprintf(&r.buf, "\n\n%s\n\n---\n", analysis)
}

// AddExchange appends a user question and its answer.
func (r *Review) AddExchange(question, answer string) {
	fmt.Fprintf(&r.buf, "\n\n## User Question\n\n%s\n\n## Answer\n\n%s\n\n---\n", question, answer)
}

// Markdown returns the review document so far.
func (r *Review) Markdown() string {
	return r.buf.String()
}
