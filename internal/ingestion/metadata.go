package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"
)

// Metadata describes where an ingested document came from.
type Metadata struct {
	URL       string `json:"url,omitempty"`
	Path      string `json:"path,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA-256 of the cleaned text
	Chars     int    `json:"chars"`
	Platform  string `json:"platform,omitempty"`
	Rendered  bool   `json:"rendered,omitempty"` // fetched through the headless browser
	Cached    bool   `json:"cached,omitempty"`
}

// NewMetadata creates metadata for cleaned content.
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     utf8.RuneCountInString(content),
	}
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
