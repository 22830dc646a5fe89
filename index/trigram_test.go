package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTrigramSet(t *testing.T) {
	set := NewTrigramSet("ab")
	assert.Contains(t, set, "  a")
	assert.Contains(t, set, " ab")
	assert.Contains(t, set, "ab ")

	assert.Empty(t, NewTrigramSet(""))
	assert.Empty(t, NewTrigramSet("!!!"))
}

func TestTrigramSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("velo", "velo"))
	assert.Equal(t, 1.0, Similarity("Velo", "vélo"), "folded before comparison")
	assert.Equal(t, 0.0, Similarity("velo", ""))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))

	// a one-letter typo keeps most trigrams shared
	sim := Similarity("fussball", "fusball")
	assert.Greater(t, sim, 0.15)
	assert.Less(t, sim, 1.0)

	// similarity is symmetric
	assert.Equal(t, Similarity("rennvelo carbon", "rennrad"), Similarity("rennrad", "rennvelo carbon"))
}

func TestTrigramSimilarity_ProbeAgainstDocument(t *testing.T) {
	document := "rennvelo rennvelo rennvelo carbon bmc teammachine sport fitness"
	probe := "renvelo"

	assert.Greater(t, NewTrigramSet(document).Similarity(NewTrigramSet(probe)), 0.15,
		"typo probe clears the match threshold against a real document")
}
