package devserver

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
	"gopkg.in/yaml.v3"

	"suggestable/internal/domain"
)

// Entry is one suggestable query with its optional annotation and link
type Entry struct {
	Query  string `yaml:"query"`
	Text   string `yaml:"text,omitempty"`
	URL    string `yaml:"url,omitempty"`
	Weight int    `yaml:"weight,omitempty"`
}

// Index answers prefix lookups over a word list. Keys are lowercased; the
// entry keeps the original spelling.
type Index struct {
	trie *patricia.Trie
	size int
}

// NewIndex creates an index holding entries
func NewIndex(entries ...Entry) *Index {
	idx := &Index{trie: patricia.NewTrie()}
	for _, e := range entries {
		idx.Add(e)
	}
	return idx
}

// Add inserts or replaces an entry
func (idx *Index) Add(e Entry) {
	k := strings.ToLower(strings.TrimSpace(e.Query))
	if k == "" {
		return
	}
	if idx.trie.Get(patricia.Prefix(k)) == nil {
		idx.size++
	}
	idx.trie.Set(patricia.Prefix(k), e)
}

// Len returns the number of distinct queries
func (idx *Index) Len() int { return idx.size }

// Search returns up to limit entries starting with term, heaviest first and
// alphabetical among equals. A limit <= 0 means no limit.
func (idx *Index) Search(term string, limit int) []domain.Suggestion {
	prefix := strings.ToLower(strings.TrimSpace(term))
	if prefix == "" {
		return []domain.Suggestion{}
	}

	var found []Entry
	err := idx.trie.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		if e, ok := item.(Entry); ok {
			found = append(found, e)
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Weight != found[j].Weight {
			return found[i].Weight > found[j].Weight
		}
		return found[i].Query < found[j].Query
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}

	out := make([]domain.Suggestion, len(found))
	for i, e := range found {
		out[i] = domain.Suggestion{Query: e.Query, SuggestText: e.Text, SuggestURL: e.URL}
	}
	return out
}

// LoadFile reads a word list. YAML files hold a list of entries; anything
// else is read with ReadLines.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var entries []Entry
		if err := yaml.NewDecoder(f).Decode(&entries); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to parse word list: %w", err)
		}
		return entries, nil
	}
	return ReadLines(f)
}

// ReadLines parses one entry per line as query, text and url separated by
// tabs. Blank lines and lines starting with # are skipped.
func ReadLines(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		e := Entry{Query: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			e.Text = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			e.URL = strings.TrimSpace(parts[2])
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return entries, nil
}

// SampleEntries is the word list served when none is given
var SampleEntries = []Entry{
	{Query: "cat food", Text: "pet supplies", URL: "/search?q=cat+food", Weight: 9},
	{Query: "cat toy", Text: "pet supplies", Weight: 7},
	{Query: "cat tree", Weight: 5},
	{Query: "catalog"},
	{Query: "catamaran", Text: "boats"},
	{Query: "dog bed", Text: "pet supplies", Weight: 8},
	{Query: "dog food", Text: "pet supplies", Weight: 9},
	{Query: "dog leash", Weight: 4},
	{Query: "Paris", Text: "France", URL: "/city/paris", Weight: 10},
	{Query: "Parma", Text: "Italy", URL: "/city/parma", Weight: 3},
	{Query: "Porto", Text: "Portugal", URL: "/city/porto", Weight: 6},
	{Query: "Prague", Text: "Czechia", URL: "/city/prague", Weight: 7},
	{Query: "Berlin", Text: "Germany", URL: "/city/berlin", Weight: 9},
	{Query: "Bern", Text: "Switzerland", URL: "/city/bern", Weight: 4},
	{Query: "Bergen", Text: "Norway", URL: "/city/bergen", Weight: 3},
	{Query: "日本語", Text: "Japanese"},
}
