package knowledge

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is one Q&A record of the knowledge base. Items are immutable for the
// process lifetime; identity is Id.
type Item struct {
	Id          string   `yaml:"id"`
	Category    string   `yaml:"category"`
	SubCategory string   `yaml:"sub_category,omitempty"`
	Question    string   `yaml:"question"`
	Answer      string   `yaml:"answer"`
	Keywords    []string `yaml:"keywords"`
}

type file struct {
	Items []Item `yaml:"items"`
}

// Store holds the ordered knowledge base, loaded once at startup. The
// serialized context is precomputed because every main request embeds the
// entire knowledge base, untruncated and unranked.
type Store struct {
	items   []Item
	context string
}

const contextSeparator = "\n\n---\n\n"

// NewStore validates the items and precomputes the serialized context.
// Insertion order is preserved.
func NewStore(items []Item) (*Store, error) {
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if item.Id == "" {
			return nil, fmt.Errorf("knowledge item %d: missing id", i)
		}
		if seen[item.Id] {
			return nil, fmt.Errorf("knowledge item %d: duplicate id %q", i, item.Id)
		}
		seen[item.Id] = true
		if strings.TrimSpace(item.Question) == "" {
			return nil, fmt.Errorf("knowledge item %q: missing question", item.Id)
		}
		if strings.TrimSpace(item.Answer) == "" {
			return nil, fmt.Errorf("knowledge item %q: missing answer", item.Id)
		}
	}

	serialized := make([]string, 0, len(items))
	for _, item := range items {
		serialized = append(serialized, fmt.Sprintf("Q: %s\nA: %s", item.Question, item.Answer))
	}

	return &Store{
		items:   items,
		context: strings.Join(serialized, contextSeparator),
	}, nil
}

// Load reads the knowledge base from a YAML file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("knowledge base %s contains no items", path)
	}

	return NewStore(f.Items)
}

// Context returns the full serialized knowledge base in insertion order.
func (s *Store) Context() string {
	return s.context
}

// Items returns a copy of the ordered item list.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Top returns the first n items (the FAQ shortlist).
func (s *Store) Top(n int) []Item {
	if n < 0 {
		n = 0
	}
	if n > len(s.items) {
		n = len(s.items)
	}
	out := make([]Item, n)
	copy(out, s.items[:n])
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}
