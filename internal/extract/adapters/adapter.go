package adapters

import (
	"strings"

	"github.com/ppiankov/textprobe/internal/extract"
	"golang.org/x/net/html"
)

// Content is the readable part of a fetched document
type Content struct {
	Title   string
	Text    string
	Adapter string
}

// Adapter turns a parsed page from one kind of site into plain text
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given URL/content
	CanHandle(url string, contentType string) bool

	// ExtractContent returns the title and body text of the document
	ExtractContent(doc *html.Node, url string) (Content, error)
}

// Registry manages domain adapters
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a new adapter registry
func NewRegistry() *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	registry.Register(NewWikipediaAdapter())

	// Set generic adapter as fallback
	registry.generic = NewGenericAdapter()

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter finds the best adapter for the given URL and content type
func (r *Registry) FindAdapter(url string, contentType string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(url, contentType) {
			return adapter
		}
	}
	return r.generic
}

// Extract converts a fetched body into Content. Plain text bodies are
// returned as-is; anything else is parsed as HTML.
func (r *Registry) Extract(body, url, contentType string) (Content, error) {
	if isPlainText(contentType) {
		return Content{Text: strings.TrimSpace(body), Adapter: "text"}, nil
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return Content{}, err
	}

	adapter := r.FindAdapter(url, contentType)
	content, err := adapter.ExtractContent(doc, url)
	if err != nil {
		return Content{}, err
	}
	content.Adapter = adapter.Name()
	return content, nil
}

func isPlainText(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "text/plain") || strings.HasPrefix(ct, "text/markdown")
}

// BaseAdapter provides common functionality for adapters
type BaseAdapter struct{}

// ExtractText extracts visible text content from a node
func (b *BaseAdapter) ExtractText(n *html.Node) string {
	return extract.NodeText(n)
}

// HasClass checks if a node has a specific CSS class
func (b *BaseAdapter) HasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, class := range strings.Fields(attr.Val) {
				if class == className {
					return true
				}
			}
		}
	}
	return false
}

// GetAttribute gets an attribute value from a node
func (b *BaseAdapter) GetAttribute(n *html.Node, attrKey string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrKey {
			return attr.Val
		}
	}
	return ""
}

// FindAll finds all nodes matching a predicate
func (b *BaseAdapter) FindAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// FindFirst finds the first node matching a predicate
func (b *BaseAdapter) FindFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// DocumentTitle returns the text of the <title> element
func (b *BaseAdapter) DocumentTitle(doc *html.Node) string {
	title := b.FindFirst(doc, isElement("title"))
	if title == nil {
		return ""
	}
	return strings.TrimSpace(b.ExtractText(title))
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}
