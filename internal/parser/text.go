package parser

import (
	"io"
)

// TextParser handles plain text files. Digitized books arrive with their
// table of contents and chapter headings already laid out line by line,
// so the text passes through untouched — reflowing would break the line
// numbers the segmenter depends on.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
