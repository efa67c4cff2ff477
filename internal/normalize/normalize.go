package normalize

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Shape raw model output into cacheable source markdown
- Trim surrounding whitespace
- Convert leaked HTML markup back to markdown

The cache stores source markdown only. Models are instructed to answer in
plain markdown but occasionally emit HTML tags anyway; converting those
back keeps every cache entry in one format, so the renderer remains the
single place where markup is produced.
*/

// CleanDefinition returns the cacheable form of a raw model response.
func CleanDefinition(raw string) (string, *NormalizeError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	if !containsHTMLElement(trimmed) {
		return trimmed, nil
	}

	markdown, err := htmlToMarkdown(trimmed)
	if err != nil {
		return "", &NormalizeError{
			Message: err.Error(),
			Cause:   ErrCauseConversionFailure,
		}
	}
	return strings.TrimSpace(markdown), nil
}

// htmlToMarkdown is a stateless pure function converting an HTML fragment
// to markdown. A fresh converter is built per call; output depends only
// on the input.
func htmlToMarkdown(fragment string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return conv.ConvertString(fragment)
}

// containsHTMLElement reports whether the text parses into any real HTML
// element. html.Parse wraps everything in html/head/body, so only nodes
// below the synthetic body count.
func containsHTMLElement(text string) bool {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return false
	}

	body := findBody(doc)
	if body == nil {
		return false
	}
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if hasElement(child) {
			return true
		}
	}
	return false
}

func findBody(node *html.Node) *html.Node {
	if node.Type == html.ElementNode && node.Data == "body" {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if body := findBody(child); body != nil {
			return body
		}
	}
	return nil
}

func hasElement(node *html.Node) bool {
	if node.Type == html.ElementNode {
		return true
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if hasElement(child) {
			return true
		}
	}
	return false
}
