// Package corpus holds the reference texts that input sentences are compared against.
//
// A Corpus is built once at startup and never mutated, so it can be shared
// across goroutines without locking.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is a named, ordered group of reference sentences
type Category struct {
	Name      string   `yaml:"name" json:"name"`
	Sentences []string `yaml:"sentences" json:"sentences"`
}

// Entry is one reference sentence together with its category
type Entry struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Corpus is an immutable, ordered reference corpus
type Corpus struct {
	categories  []Category
	entries     []Entry
	texts       []string
	fingerprint string
}

type corpusFile struct {
	Categories []Category `yaml:"categories"`
}

// New builds a corpus from categories, preserving their order
func New(categories []Category) (*Corpus, error) {
	c := &Corpus{}
	seen := make(map[string]bool)

	for _, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("category with empty name")
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate category: %s", name)
		}
		seen[name] = true

		copied := Category{Name: name}
		for _, s := range cat.Sentences {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			copied.Sentences = append(copied.Sentences, s)
			c.entries = append(c.entries, Entry{Category: name, Text: s})
			c.texts = append(c.texts, s)
		}
		c.categories = append(c.categories, copied)
	}

	if len(c.texts) == 0 {
		return nil, fmt.Errorf("corpus has no reference sentences")
	}

	c.fingerprint = fingerprint(c.entries)
	return c, nil
}

// Load reads a YAML corpus file
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse corpus file: %w", err)
	}

	c, err := New(file.Categories)
	if err != nil {
		return nil, fmt.Errorf("build corpus from %s: %w", path, err)
	}
	return c, nil
}

// FromFileOrDefault loads path when set and falls back to the built-in corpus
func FromFileOrDefault(path string) (*Corpus, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Flatten returns all reference sentences in category order.
// Category association is dropped; use CategoryAt to recover it by index.
func (c *Corpus) Flatten() []string {
	out := make([]string, len(c.texts))
	copy(out, c.texts)
	return out
}

// Len returns the number of reference sentences
func (c *Corpus) Len() int {
	return len(c.texts)
}

// CategoryAt returns the category of the flattened sentence at index i
func (c *Corpus) CategoryAt(i int) string {
	if i < 0 || i >= len(c.entries) {
		return ""
	}
	return c.entries[i].Category
}

// Categories returns a copy of the categories in order
func (c *Corpus) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Sentences: append([]string(nil), cat.Sentences...)}
	}
	return out
}

// Entries returns a copy of all entries in order
func (c *Corpus) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Fingerprint identifies the corpus content (stable across runs)
func (c *Corpus) Fingerprint() string {
	return c.fingerprint
}

// MarshalYAML writes the corpus in the same shape Load reads
func (c *Corpus) MarshalYAML() (interface{}, error) {
	return corpusFile{Categories: c.Categories()}, nil
}

func fingerprint(entries []Entry) string {
	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(e.Category))
		h.Write([]byte{0})
		h.Write([]byte(e.Text))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
