package book

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindBooks_CalibreLayout(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "Jane Austen", "Emma", "Emma.txt"), "text")
	mustWrite(t, filepath.Join(root, "Jane Austen", "Emma", "cover.jpg"), "not a book")
	mustWrite(t, filepath.Join(root, "Herman Melville", "Moby Dick", "Moby Dick.txt"), "text")

	books, err := FindBooks(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d: %v", len(books), books)
	}

	labels := map[string]bool{}
	for _, b := range books {
		labels[b.Label] = true
	}
	if !labels["Jane Austen - Emma"] {
		t.Errorf("missing expected label, got %v", labels)
	}
	if !labels["Herman Melville - Moby Dick"] {
		t.Errorf("missing expected label, got %v", labels)
	}
}

func TestFindBooks_EmptyLibrary(t *testing.T) {
	books, err := FindBooks(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected no books, got %v", books)
	}
}

func TestFindBooks_MissingRoot(t *testing.T) {
	if _, err := FindBooks(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestSafeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A Book: The Sequel", "A_Book_The_Sequel"},
		{`what/why\how?`, "whatwhyhow"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := SafeFilename(c.in); got != c.want {
			t.Errorf("SafeFilename(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestSafeFilename_LengthCap(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "abcdefghij"
	}
	if got := SafeFilename(long); len(got) != 200 {
		t.Errorf("expected 200-char cap, got %d", len(got))
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
