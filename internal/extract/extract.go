// Package extract isolates the main content region of an HTML page,
// discarding navigational and boilerplate markup. It is a best-effort
// heuristic: the output may be over- or under-inclusive, and any failure
// during parsing falls back to the unmodified input.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// removeSelectors names elements that are never article content.
const removeSelectors = "nav, header, footer, aside, script, style, iframe"

// boilerplateHints are class/id substrings that mark advertising,
// navigation, menus, sidebars, and comment sections.
var boilerplateHints = []string{"advert", "nav", "menu", "sidebar", "comment"}

// boilerplateTokens match whole class/id tokens only; "ad" as a substring
// would also hit words like "header" or "shadow".
var boilerplateTokens = []string{"ad", "ads"}

// contentProbes is the fixed priority order for locating the article body.
var contentProbes = []string{
	"article",
	"main",
	".content", ".post", ".article",
	"#content", "#main",
}

// Article reduces raw HTML to a fragment likely to contain the article body.
// Probe order: article, main, content/post/article classes, content/main ids,
// then the document body, then the whole tree. On any parse failure the
// input is returned unchanged.
func Article(rawHTML string) (out string) {
	// The reduction must never fail harder than "no reduction".
	defer func() {
		if r := recover(); r != nil {
			out = rawHTML
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	doc.Find(removeSelectors).Remove()
	doc.Find("[class],[id]").Each(func(_ int, s *goquery.Selection) {
		if isBoilerplate(s) {
			s.Remove()
		}
	})

	for _, probe := range contentProbes {
		if sel := doc.Find(probe).First(); sel.Length() > 0 {
			if h, err := goquery.OuterHtml(sel); err == nil {
				return h
			}
		}
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		if h, err := body.Html(); err == nil {
			return h
		}
	}

	if h, err := doc.Html(); err == nil {
		return h
	}
	return rawHTML
}

// isBoilerplate reports whether the element's class or id carries a
// boilerplate hint.
func isBoilerplate(s *goquery.Selection) bool {
	for _, attr := range []string{"class", "id"} {
		val, ok := s.Attr(attr)
		if !ok {
			continue
		}
		val = strings.ToLower(val)
		for _, hint := range boilerplateHints {
			if strings.Contains(val, hint) {
				return true
			}
		}
		for _, tok := range strings.FieldsFunc(val, func(r rune) bool {
			return r == ' ' || r == '-' || r == '_'
		}) {
			for _, hint := range boilerplateTokens {
				if tok == hint {
					return true
				}
			}
		}
	}
	return false
}
