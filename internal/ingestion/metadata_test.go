package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("Senior Go engineer", "https://example.com/job")

	assert.Equal(t, "https://example.com/job", meta.URL)
	assert.Equal(t, 18, meta.Chars)
	assert.Equal(t, computeHash("Senior Go engineer"), meta.Hash)
	assert.NotEqual(t, computeHash("Senior Go engineer!"), meta.Hash)

	_, err := time.Parse(time.RFC3339, meta.Timestamp)
	assert.NoError(t, err)
}
