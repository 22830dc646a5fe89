package index

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/occasio/listindex/core"
	yaml "gopkg.in/yaml.v2"
)

//go:embed data/category_keywords.yaml
var defaultKeywords []byte

// KeywordTable maps category slugs to the vocabulary terms injected into
// search documents for listings assigned to that category. Loaded once at
// startup and read-only afterwards, safe for concurrent use. Adding a
// category means adding a table entry, not code.
type KeywordTable struct {
	terms map[string][]string
}

// DefaultKeywordTable loads the keyword table bundled with the binary.
func DefaultKeywordTable() (*KeywordTable, error) {
	return parseKeywords(defaultKeywords)
}

// LoadKeywordTable loads a keyword table from an external YAML file.
func LoadKeywordTable(path string) (*KeywordTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword table: %w", err)
	}
	return parseKeywords(data)
}

func parseKeywords(data []byte) (*KeywordTable, error) {
	var file map[string][]string
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing keyword table: %w", err)
	}

	t := &KeywordTable{terms: make(map[string][]string, len(file))}
	for slug, terms := range file {
		folded := make([]string, 0, len(terms))
		for _, term := range terms {
			if n := core.Normalize(term); n != "" {
				folded = append(folded, n)
			}
		}
		t.terms[slug] = folded
	}
	return t, nil
}

// Terms returns the vocabulary terms for a category slug, or nil when the
// slug has no entry.
func (t *KeywordTable) Terms(slug string) []string {
	return t.terms[slug]
}
