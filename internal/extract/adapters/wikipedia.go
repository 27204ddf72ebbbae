package adapters

import (
	"strings"

	"golang.org/x/net/html"
)

// WikipediaAdapter extracts article prose from Wikipedia pages
type WikipediaAdapter struct {
	BaseAdapter
	stopSections []string
}

// NewWikipediaAdapter creates a new Wikipedia adapter
func NewWikipediaAdapter() *WikipediaAdapter {
	return &WikipediaAdapter{
		stopSections: []string{
			"references", "external links", "see also", "further reading", "notes",
			"referências", "ligações externas", "ver também", "bibliografia",
		},
	}
}

// Name returns the adapter name
func (a *WikipediaAdapter) Name() string {
	return "wikipedia"
}

// CanHandle checks if this is a Wikipedia URL
func (a *WikipediaAdapter) CanHandle(rawURL string, contentType string) bool {
	return strings.Contains(rawURL, "wikipedia.org")
}

// ExtractContent returns the paragraphs and list items of the article body,
// stopping at the reference sections
func (a *WikipediaAdapter) ExtractContent(doc *html.Node, rawURL string) (Content, error) {
	content := a.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" &&
			(a.HasClass(n, "mw-parser-output") || a.GetAttribute(n, "id") == "mw-content-text")
	})
	if content == nil {
		content = doc
	}

	var paragraphs []string
	stopped := false

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if stopped {
			return
		}
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "h2" && a.isStopSection(n):
				stopped = true
				return
			case a.isMetadata(n):
				return
			case n.Data == "p" || (n.Data == "li" && !a.inReferenceList(n)):
				if text := a.paragraphText(n); text != "" {
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(content)

	return Content{
		Title: a.articleTitle(doc),
		Text:  strings.Join(paragraphs, "\n"),
	}, nil
}

func (a *WikipediaAdapter) articleTitle(doc *html.Node) string {
	heading := a.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "h1" && a.GetAttribute(n, "id") == "firstHeading"
	})
	if heading != nil {
		return strings.TrimSpace(a.ExtractText(heading))
	}
	return strings.TrimSuffix(a.DocumentTitle(doc), " - Wikipedia")
}

// isMetadata reports infoboxes, navigation boxes, edit links and similar chrome
func (a *WikipediaAdapter) isMetadata(n *html.Node) bool {
	switch n.Data {
	case "table":
		return a.HasClass(n, "infobox") || a.HasClass(n, "navbox") || a.HasClass(n, "sidebar") || a.HasClass(n, "metadata")
	case "div":
		return a.HasClass(n, "navbox") || a.HasClass(n, "reflist") || a.HasClass(n, "toc") || a.HasClass(n, "hatnote")
	case "span":
		return a.HasClass(n, "mw-editsection")
	case "ol":
		return a.HasClass(n, "references")
	}
	return false
}

func (a *WikipediaAdapter) isStopSection(heading *html.Node) bool {
	text := strings.ToLower(a.ExtractText(heading))
	for _, s := range a.stopSections {
		if strings.HasPrefix(text, s) {
			return true
		}
	}
	return false
}

func (a *WikipediaAdapter) inReferenceList(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "ol" && a.HasClass(p, "references") {
			return true
		}
	}
	return false
}

// paragraphText renders one block without citation markers like [1]
func (a *WikipediaAdapter) paragraphText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if node.Data == "sup" && a.HasClass(node, "reference") {
				return
			}
			if node.Data == "style" || node.Data == "script" || a.isMetadata(node) {
				return
			}
		}
		if node.Type == html.TextNode {
			buf.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}
