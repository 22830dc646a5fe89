// Package index derives the searchable representation of listings.
//
// The Builder type assembles a normalized, weighted search document per
// listing from its fields, category assignments, and seller location.
// Field importance is encoded as controlled repetition, which the lexical
// ranking downstream rewards through term frequency.
//
// The Reindexer type rebuilds all stored documents concurrently using a
// worker pool, for use after the expansion dictionary or the category
// keyword table changed.
//
// TrigramSet provides the character-trigram similarity used as the fuzzy
// branch of the search match condition.
package index
