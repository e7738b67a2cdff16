package book

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Entry is one book discovered in the library.
type Entry struct {
	Label string `json:"label"` // "Author - Title"
	Path  string `json:"path"`
}

// FindBooks walks a Calibre-style library (Author/Title/book.txt) and
// returns the plain-text books found, in walk order.
func FindBooks(root string) ([]Entry, error) {
	var books []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		// Author is the directory above the title directory.
		author := filepath.Base(filepath.Dir(filepath.Dir(path)))
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		books = append(books, Entry{
			Label: fmt.Sprintf("%s - %s", author, title),
			Path:  path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk library %s: %w", root, err)
	}
	return books, nil
}
