package render

import (
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

/*
Design Principles
- Deterministic, stateless conversion from cached markdown to HTML
- Rendering happens on every cache hit; markup is never cached
- Renderer upgrades therefore apply retroactively to existing cache
  entries without invalidating the cache

Conversion Rules
- Bold/italic map to <strong>/<em>
- Paragraphs map to <p>
- No table of contents, footnotes or other document-level machinery:
  a definition is one or two sentences plus an optional example paragraph
*/

// Renderer converts cached markdown-flavored definition text into
// presentation markup.
type Renderer interface {
	Render(markdownText string) string
}

// Compile-time interface check
var _ Renderer = (*HTMLRenderer)(nil)

type HTMLRenderer struct{}

func NewHTMLRenderer() HTMLRenderer {
	return HTMLRenderer{}
}

// Render converts markdown to HTML. A fresh parser is built per call
// because gomarkdown parsers are single-use; the output depends only
// on the input text.
func (HTMLRenderer) Render(markdownText string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	opts := mdhtml.RendererOptions{Flags: mdhtml.CommonFlags}
	renderer := mdhtml.NewRenderer(opts)

	out := markdown.ToHTML([]byte(markdownText), p, renderer)
	return strings.TrimSpace(string(out))
}
