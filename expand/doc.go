// Package expand turns raw user queries into enriched token sets.
//
// The Dictionary type holds the static synonym and brand expansion tables,
// loaded once from YAML. The Expander type tokenizes and normalizes a raw
// query and expands every token through the dictionary, falling back to a
// locale-variant rewrite and then to edit-distance matching against the
// dictionary keys for probable typos. Expansion never fails: nonsense input
// degrades to the trivial expansion.
package expand
