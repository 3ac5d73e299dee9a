package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes one decoded resume document.
type Metadata struct {
	Filename  string `json:"filename"`
	Format    Format `json:"format"`
	Bytes     int    `json:"bytes"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(filename string, format Format, size int, content string) *Metadata {
	return &Metadata{
		Filename:  filename,
		Format:    format,
		Bytes:     size,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
