package api

import (
	"encoding/json"
	"net/http"

	"github.com/wesleyflorence/bookchat/internal/book"
)

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	if s.cfg.LibraryPath == "" {
		jsonError(w, "no library configured", http.StatusNotFound)
		return
	}
	books, err := book.FindBooks(s.cfg.LibraryPath)
	if err != nil {
		s.log.Error("library scan failed", "path", s.cfg.LibraryPath, "error", err)
		jsonError(w, "library scan failed", http.StatusInternalServerError)
		return
	}
	if books == nil {
		books = []book.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"books": books})
}
