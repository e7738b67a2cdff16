package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBParser handles .epub files. Spine items are visited in reading
// order and their XHTML content is reduced to heading and content blocks,
// the same way standalone HTML is.
type EPUBParser struct{}

func (p *EPUBParser) Parse(r io.Reader, filename string) (string, error) {
	// The epub reader opens a zip by path, so write to a temp file.
	tmp, err := os.CreateTemp("", "bookchat-epub-*.epub")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	rc, err := epub.OpenReader(tmpPath)
	if err != nil {
		return "", fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return "", fmt.Errorf("no rootfiles found in epub")
	}

	var blocks []string
	for _, ref := range rc.Rootfiles[0].Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		item, err := ref.Item.Open()
		if err != nil {
			continue
		}
		doc, err := html.Parse(item)
		item.Close()
		if err != nil {
			continue
		}
		blocks = append(blocks, htmlBlocks(doc)...)
	}

	return strings.Join(blocks, "\n\n"), nil
}
