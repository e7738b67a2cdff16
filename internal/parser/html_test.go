package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_HeadingsAndParagraphs(t *testing.T) {
	input := `<html><head><title>ignored</title></head><body>
<nav>skip this nav</nav>
<h1>The First Step</h1>
<p>First paragraph.</p>
<h2>Challenges Ahead</h2>
<p>Second paragraph.</p>
<script>var skip = true;</script>
</body></html>`

	p := &HTMLParser{}
	got, err := p.Parse(strings.NewReader(input), "book.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(got, "\n")
	for _, want := range []string{"The First Step", "Challenges Ahead"} {
		found := false
		for _, line := range lines {
			if line == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected heading %q on its own line, got:\n%s", want, got)
		}
	}

	if !strings.Contains(got, "First paragraph.") || !strings.Contains(got, "Second paragraph.") {
		t.Errorf("expected paragraph content, got:\n%s", got)
	}
	if strings.Contains(got, "skip this nav") {
		t.Errorf("expected nav content to be excluded, got:\n%s", got)
	}
	if strings.Contains(got, "var skip") {
		t.Errorf("expected script content to be excluded, got:\n%s", got)
	}
}

func TestHTMLParser_NestedInlineMarkup(t *testing.T) {
	input := `<body><h1>The <em>First</em> Step</h1><p>Some <strong>bold</strong> text.</p></body>`
	p := &HTMLParser{}
	got, err := p.Parse(strings.NewReader(input), "b.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "The First Step") {
		t.Errorf("expected inline markup flattened inside heading, got %q", got)
	}
	if !strings.Contains(got, "Some bold text.") {
		t.Errorf("expected inline markup flattened inside paragraph, got %q", got)
	}
}
