package render

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html"

	"docrender/common"
	"docrender/document"
)

// payload builds single block payload with given components.
func payload(data document.Data, styles []document.StyleEntry, comps ...document.Component) *document.Payload {
	if data == nil {
		data = document.Data{}
	}
	return &document.Payload{
		Document: document.Document{
			Blocks:     []document.Block{{ID: "main"}},
			Components: map[string][]document.Component{"main": comps},
			Styles:     styles,
		},
		Data: data,
	}
}

func visible(c document.Common) document.Common {
	c.Placeholder = common.PlaceholderModeVisible
	return c
}

func mustRender(t *testing.T, r *Renderer, p *document.Payload) string {
	t.Helper()
	out, err := r.Render(p)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return out
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	return New(DefaultSettings(), zaptest.NewLogger(t))
}

// sectionHTML returns inner markup of the first section element.
func sectionHTML(t *testing.T, out string) string {
	t.Helper()
	start := strings.Index(out, "<section")
	if start < 0 {
		t.Fatalf("no section in output:\n%s", out)
	}
	start += strings.Index(out[start:], ">") + 1
	end := strings.Index(out[start:], "</section>")
	if end < 0 {
		t.Fatalf("section is not closed:\n%s", out)
	}
	return out[start : start+end]
}

func parseDoc(t *testing.T, out string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	return doc
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func rowTexts(tr *html.Node, cellTag string) []string {
	var out []string
	for _, c := range findAll(tr, cellTag) {
		out = append(out, textOf(c))
	}
	return out
}
