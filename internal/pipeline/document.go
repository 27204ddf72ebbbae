package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/textprobe/internal/extract/adapters"
)

// Document is raw text to analyze plus where it came from
type Document struct {
	Source string
	Title  string
	Text   string
}

// TextDocument wraps literal text
func TextDocument(text, source string) Document {
	if source == "" {
		source = "inline"
	}
	return Document{Source: source, Text: text}
}

// IsURL reports whether ref should be fetched rather than read from disk
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Loader resolves document references (file paths, URLs, "-" for stdin)
type Loader struct {
	fetcher  *Fetcher
	registry *adapters.Registry
	stdin    io.Reader
}

// NewLoader creates a loader; fetcher may be nil when URLs are not needed
func NewLoader(fetcher *Fetcher, registry *adapters.Registry) *Loader {
	if registry == nil {
		registry = adapters.NewRegistry()
	}
	return &Loader{fetcher: fetcher, registry: registry, stdin: os.Stdin}
}

// Load reads the document behind ref
func (l *Loader) Load(ctx context.Context, ref string) (Document, error) {
	switch {
	case ref == "-":
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return Document{}, fmt.Errorf("read stdin: %w", err)
		}
		return Document{Source: "stdin", Text: string(data)}, nil

	case IsURL(ref):
		return l.loadURL(ctx, ref)

	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return Document{}, fmt.Errorf("read file: %w", err)
		}
		return Document{Source: ref, Text: string(data)}, nil
	}
}

func (l *Loader) loadURL(ctx context.Context, rawURL string) (Document, error) {
	if l.fetcher == nil {
		return Document{}, fmt.Errorf("no fetcher configured for %s", rawURL)
	}

	result, err := l.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return Document{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	content, err := l.registry.Extract(result.Body, result.FinalURL, result.ContentType)
	if err != nil {
		return Document{}, fmt.Errorf("extract text: %w", err)
	}

	title := content.Title
	if title == "" {
		title = result.Subject
	}
	return Document{Source: result.FinalURL, Title: title, Text: content.Text}, nil
}
