// Package clean normalizes free-form social-media text before it
// reaches any inference stage.
package clean

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	urlRE   = regexp.MustCompile(`https?://\S+`)
	spaceRE = regexp.MustCompile(`\s+`)
)

// Normalize strips URLs, newlines, and redundant whitespace.
// It is a pure function, idempotent, and treats empty input as "".
func Normalize(s string) string {
	t := urlRE.ReplaceAllString(s, " ")
	t = strings.ReplaceAll(t, "\n", " ")
	t = spaceRE.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// StripHTML drops tags and decodes entities, keeping only text content.
// Hacker News comments arrive as HTML fragments; the other platforms
// pass through unchanged since plain text contains no tags.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// Tag boundaries separate words in rendered text.
			b.WriteByte(' ')
		}
	}
}

// NormalizeHTML strips markup first, then applies Normalize.
func NormalizeHTML(s string) string {
	return Normalize(StripHTML(s))
}
