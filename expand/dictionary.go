package expand

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/occasio/listindex/core"
	yaml "gopkg.in/yaml.v2"
)

//go:embed data/dictionary.yaml
var defaultDictionary []byte

// Dictionary is the static synonym and brand expansion table. It is loaded
// once at startup and read-only afterwards, so it is safe to share across
// concurrent requests without locking.
type Dictionary struct {
	synonyms map[string][]string
	brands   map[string][]string

	// keys bucketed by rune length, for the bounded fuzzy-fallback scan
	keysByLen map[int][]string
}

type dictionaryFile struct {
	Synonyms map[string][]string `yaml:"synonyms"`
	Brands   map[string][]string `yaml:"brands"`
}

// DefaultDictionary loads the dictionary bundled with the binary.
func DefaultDictionary() (*Dictionary, error) {
	return parseDictionary(defaultDictionary)
}

// LoadDictionary loads a dictionary from an external YAML file, so the
// expansion tables stay editable without recompilation.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	return parseDictionary(data)
}

func parseDictionary(data []byte) (*Dictionary, error) {
	var file dictionaryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing dictionary: %w", err)
	}

	d := &Dictionary{
		synonyms:  make(map[string][]string, len(file.Synonyms)),
		brands:    make(map[string][]string, len(file.Brands)),
		keysByLen: make(map[int][]string),
	}

	// Keys and terms are folded with the same normalizer the query path
	// uses, so lookups stay symmetric whatever the file contains.
	for key, terms := range file.Synonyms {
		d.synonyms[core.Normalize(key)] = normalizeTerms(terms)
	}
	for key, terms := range file.Brands {
		d.brands[core.Normalize(key)] = normalizeTerms(terms)
	}

	seen := make(map[string]bool)
	for key := range d.synonyms {
		seen[key] = true
	}
	for key := range d.brands {
		seen[key] = true
	}
	for key := range seen {
		n := len([]rune(key))
		d.keysByLen[n] = append(d.keysByLen[n], key)
	}
	for _, bucket := range d.keysByLen {
		sort.Strings(bucket)
	}

	return d, nil
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := core.Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Synonyms returns the synonym expansion terms for a normalized token,
// or nil if the token has no entry.
func (d *Dictionary) Synonyms(token string) []string {
	return d.synonyms[token]
}

// Brands returns the brand expansion terms for a normalized token,
// or nil if the token has no entry.
func (d *Dictionary) Brands(token string) []string {
	return d.brands[token]
}

// Has reports whether the token has a direct entry in either table.
func (d *Dictionary) Has(token string) bool {
	_, inSyn := d.synonyms[token]
	_, inBrand := d.brands[token]
	return inSyn || inBrand
}

// SimilarKeys returns all dictionary keys within maxDist edits of the token,
// ordered by distance, then alphabetically. Only keys within ±maxDist of the
// token's length are scanned.
func (d *Dictionary) SimilarKeys(token string, maxDist int) []string {
	tokenLen := len([]rune(token))

	type match struct {
		key  string
		dist int
	}
	var matches []match

	for n := tokenLen - maxDist; n <= tokenLen+maxDist; n++ {
		if n < 1 {
			continue
		}
		for _, key := range d.keysByLen[n] {
			if key == token {
				continue
			}
			if dist := Distance(token, key); dist <= maxDist {
				matches = append(matches, match{key: key, dist: dist})
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].key < matches[j].key
	})

	keys := make([]string, len(matches))
	for i, m := range matches {
		keys[i] = m.key
	}
	return keys
}
