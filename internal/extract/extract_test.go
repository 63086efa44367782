package extract

import (
	"strings"
	"testing"
)

func TestArticle_PrefersArticleOverBoilerplate(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <body>
	    <nav>Site navigation</nav>
	    <script>var tracking = true;</script>
	    <article><p>Hello world</p></article>
	    <footer>Footer text</footer>
	  </body>
	</html>`

	got := Article(html)
	if !strings.Contains(got, "Hello world") {
		t.Fatalf("expected article text to survive, got %q", got)
	}
	if strings.Contains(got, "Site navigation") {
		t.Fatalf("did not expect nav text, got %q", got)
	}
	if strings.Contains(got, "tracking") {
		t.Fatalf("did not expect script text, got %q", got)
	}
	if strings.Contains(got, "Footer text") {
		t.Fatalf("did not expect footer text, got %q", got)
	}
}

func TestArticle_ProbeOrder(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "main when no article",
			html: `<html><body><div class="stuff">x</div><main><p>main wins</p></main></body></html>`,
			want: "main wins",
		},
		{
			name: "content class",
			html: `<html><body><div class="content"><p>classed content</p></div></body></html>`,
			want: "classed content",
		},
		{
			name: "content id",
			html: `<html><body><div id="content"><p>id content</p></div></body></html>`,
			want: "id content",
		},
		{
			name: "article beats main",
			html: `<html><body><main>not this</main><article>article first</article></body></html>`,
			want: "article first",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Article(tt.html)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("expected %q in output, got %q", tt.want, got)
			}
		})
	}
}

func TestArticle_FallbackToBody(t *testing.T) {
	html := `<html><body><p>just a body paragraph</p><span>more</span></body></html>`
	got := Article(html)
	if !strings.Contains(got, "just a body paragraph") || !strings.Contains(got, "more") {
		t.Fatalf("expected body contents unchanged, got %q", got)
	}
}

func TestArticle_RemovesHintedBoilerplate(t *testing.T) {
	html := `<html><body>
	  <div class="sidebar">sidebar junk</div>
	  <div id="comments-section">comment junk</div>
	  <div class="ad-banner">buy things</div>
	  <article><p>real content</p></article>
	</body></html>`

	got := Article(html)
	if !strings.Contains(got, "real content") {
		t.Fatalf("expected article content, got %q", got)
	}
	for _, junk := range []string{"sidebar junk", "comment junk", "buy things"} {
		if strings.Contains(got, junk) {
			t.Fatalf("expected %q removed, got %q", junk, got)
		}
	}
}

func TestArticle_UnparseableInputReturnedVerbatim(t *testing.T) {
	// Not valid HTML at all; the html parser is lenient, so the important
	// property is that nothing is lost or thrown.
	in := "%% not html at all %%"
	got := Article(in)
	if !strings.Contains(got, "not html at all") {
		t.Fatalf("expected input preserved, got %q", got)
	}
}

func TestArticle_Idempotent(t *testing.T) {
	html := `<html><body><article><p>stable</p></article></body></html>`
	first := Article(html)
	second := Article(html)
	if first != second {
		t.Fatalf("expected identical output for identical input:\n%q\n%q", first, second)
	}
}
