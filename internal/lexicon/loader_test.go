package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Stopwords(t *testing.T) {
	english, err := Get(StopwordsFile, "english")
	require.NoError(t, err)
	assert.Contains(t, english, "the")
	assert.Contains(t, english, "yourselves")

	fallback, err := Get(StopwordsFile, "fallback")
	require.NoError(t, err)
	assert.Len(t, fallback, 51)
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "english")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read lexicon file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get(StopwordsFile, "klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustSet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustSet(StopwordsFile, "klingon")
	})
}

func TestSet(t *testing.T) {
	set, err := Set(TaggerFile, "DET")
	require.NoError(t, err)
	assert.True(t, set["the"])
	assert.False(t, set["python"])
}

func TestGet_TaggerTags(t *testing.T) {
	for _, tag := range []string{"ADJ", "ADP", "AUX", "CCONJ", "DET", "PRON", "PROPN", "VERB", "NOUN_ING"} {
		words, err := Get(TaggerFile, tag)
		require.NoError(t, err, tag)
		assert.NotEmpty(t, words, tag)
	}
}
