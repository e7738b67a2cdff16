package segment

import (
	"errors"
	"fmt"

	"github.com/wesleyflorence/bookchat/internal/book"
)

// ErrNoOccurrences means a table of contents was extracted but none of its
// titles literally matched the document text. Terminal: no chapter ranges
// are fabricated.
var ErrNoOccurrences = errors.New("no chapter titles matched the document text")

// PrefaceKey identifies the synthetic range owning any lines before the
// first real chapter start.
const PrefaceKey = "0000_Preface"

// ChapterRange is a contiguous slice of document lines assigned to one
// chapter. Ranges from Split are non-overlapping and together cover the
// whole document. Immutable once created.
type ChapterRange struct {
	Key   string `json:"key"`   // "<zero-padded start line>_<title>"
	Title string `json:"title"`
	Start int    `json:"start"` // first line, 1-indexed
	End   int    `json:"end"`   // last line, inclusive
	Text  string `json:"-"`     // range text, leading/trailing whitespace trimmed
}

// Split materializes reconciled chapter starts into chapter ranges, in
// document order. Each range ends one line before the next start, or at
// end-of-document for the last chapter. Lines before the first start
// become the 0000_Preface range. starts must be ascending by line, which
// Reconcile guarantees; an empty starts slice returns ErrNoOccurrences —
// callers are expected to have checked for that case already.
func Split(doc *book.Document, starts []Occurrence) ([]ChapterRange, error) {
	if len(starts) == 0 {
		return nil, ErrNoOccurrences
	}

	ranges := make([]ChapterRange, 0, len(starts)+1)
	if starts[0].Line > 1 {
		ranges = append(ranges, ChapterRange{
			Key:   PrefaceKey,
			Title: "Preface",
			Start: 1,
			End:   starts[0].Line - 1,
			Text:  doc.Text(1, starts[0].Line-1),
		})
	}

	for i, s := range starts {
		end := doc.LineCount()
		if i+1 < len(starts) {
			end = starts[i+1].Line - 1
		}
		ranges = append(ranges, ChapterRange{
			Key:   fmt.Sprintf("%04d_%s", s.Line, s.Title),
			Title: s.Title,
			Start: s.Line,
			End:   end,
			Text:  doc.Text(s.Line, end),
		})
	}

	return ranges, nil
}
