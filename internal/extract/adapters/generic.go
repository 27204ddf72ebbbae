package adapters

import (
	"golang.org/x/net/html"
)

// GenericAdapter is the fallback adapter for unknown domains
type GenericAdapter struct {
	BaseAdapter
}

// NewGenericAdapter creates a new generic adapter
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{}
}

// Name returns the adapter name
func (a *GenericAdapter) Name() string {
	return "generic"
}

// CanHandle always returns true (fallback adapter)
func (a *GenericAdapter) CanHandle(url string, contentType string) bool {
	return true
}

// ExtractContent prefers <article>, then <main>, then <body>
func (a *GenericAdapter) ExtractContent(doc *html.Node, url string) (Content, error) {
	root := doc
	for _, tag := range []string{"article", "main", "body"} {
		if n := a.FindFirst(doc, isElement(tag)); n != nil {
			root = n
			break
		}
	}

	return Content{
		Title: a.DocumentTitle(doc),
		Text:  a.ExtractText(withoutChrome(root)),
	}, nil
}

// withoutChrome detaches navigation, header and footer elements below root
func withoutChrome(root *html.Node) *html.Node {
	var drop []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "nav", "header", "footer", "aside", "form":
				drop = append(drop, n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for _, n := range drop {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	return root
}
