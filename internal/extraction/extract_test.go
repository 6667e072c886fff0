package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_FrequencyOrder(t *testing.T) {
	text := "kubernetes docker kubernetes terraform kubernetes docker"

	keywords := Extract(text, 3)
	require.Len(t, keywords, 3)

	// kubernetes appears 3 times, docker and the "kubernetes docker" bigram
	// twice each; the earlier first occurrence breaks the tie.
	assert.Equal(t, "kubernetes", keywords[0])
	assert.Equal(t, "docker", keywords[1])
	assert.Equal(t, "kubernetes docker", keywords[2])
}

func TestExtract_TiesKeepFirstOccurrenceOrder(t *testing.T) {
	keywords := Extract("python java rust kotlin swift", 3)
	require.Len(t, keywords, 3)
	assert.Equal(t, []string{"python", "java", "rust"}, keywords)
}

func TestExtract_FiltersStopWords(t *testing.T) {
	keywords := Extract("the and for with kubernetes experience required", 10)
	assert.Equal(t, []string{"kubernetes"}, keywords)
}

func TestExtract_PreservesDisplayCase(t *testing.T) {
	keywords := Extract("PostgreSQL tuning postgresql replication PostgreSQL backups", 1)
	require.Len(t, keywords, 1)
	// Case of the first occurrence wins.
	assert.Equal(t, "PostgreSQL", keywords[0])
}

func TestExtract_ShortInput(t *testing.T) {
	assert.Empty(t, Extract("go", 5))
	assert.Empty(t, Extract("", 5))
	assert.Empty(t, Extract("   ", 5))
}

func TestExtract_NonPositiveTopK(t *testing.T) {
	assert.Empty(t, Extract("kubernetes docker terraform ansible", 0))
	assert.Empty(t, Extract("kubernetes docker terraform ansible", -1))
}

func TestValidKeyword(t *testing.T) {
	valid := []string{"c++", "c#", "node.js", "scikit-learn", "go", "kubernetes", "ci cd", "python3"}
	for _, term := range valid {
		assert.True(t, ValidKeyword(term), "expected %q to be valid", term)
	}

	invalid := []string{
		"x",       // too short
		"42",      // purely numeric
		"3.14",    // purely numeric with dot
		"https",   // URL fragment
		"www.foo", // URL fragment
		"+go",     // must start alphanumeric
		"foo_bar", // underscore not allowed
		"café",    // non-ASCII
	}
	for _, term := range invalid {
		assert.False(t, ValidKeyword(term), "expected %q to be invalid", term)
	}
}
