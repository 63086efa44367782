package convert

import (
	"strings"
	"testing"
)

func TestToMarkdown_PreservesLinks(t *testing.T) {
	c := New()
	got, err := c.ToMarkdown(`<p>Hello <a href="http://x.com">link</a></p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Hello") {
		t.Fatalf("expected text preserved, got %q", got)
	}
	if !strings.Contains(got, "http://x.com") {
		t.Fatalf("expected link target preserved, got %q", got)
	}
}

func TestToMarkdown_PreservesImages(t *testing.T) {
	c := New()
	got, err := c.ToMarkdown(`<p><img src="https://example.com/pic.png" alt="diagram"></p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "https://example.com/pic.png") {
		t.Fatalf("expected image source preserved, got %q", got)
	}
}

func TestToMarkdown_PreservesTables(t *testing.T) {
	c := New()
	got, err := c.ToMarkdown(`<table>
	  <tr><th>Name</th><th>Score</th></tr>
	  <tr><td>alpha</td><td>10</td></tr>
	</table>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Name", "Score", "alpha", "10", "|"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in table markdown, got %q", want, got)
		}
	}
}

func TestToMarkdown_NoForcedWrapping(t *testing.T) {
	long := strings.Repeat("word ", 100)
	c := New()
	got, err := c.ToMarkdown("<p>" + strings.TrimSpace(long) + "</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line := strings.TrimSpace(got)
	if strings.Contains(line, "\n") {
		t.Fatalf("expected a single unwrapped line, got %q", got)
	}
}

func TestToMarkdown_Headings(t *testing.T) {
	c := New()
	got, err := c.ToMarkdown(`<h2>Section</h2><p>body</p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "## Section") {
		t.Fatalf("expected heading markdown, got %q", got)
	}
}
