// Package source fetches card payloads from the external catalog.
//
// Each dataset variant has an ordered registry of sources tried strictly
// in sequence; the first source producing a non-empty card list wins.
// Partial yield from a failing source is never merged with the next
// source's yield: catalogs from different source generations must not be
// interleaved.
package source

import (
	"fmt"

	"github.com/matheuskafuri/cardex/internal/card"
)

// Encoding names the payload shape a source is expected to serve.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingHTML Encoding = "html"
	EncodingFeed Encoding = "feed"
)

// ParseEncoding validates an encoding tag from config.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case EncodingJSON, EncodingHTML, EncodingFeed:
		return Encoding(s), nil
	}
	return "", fmt.Errorf("unknown encoding %q (valid: json, html, feed)", s)
}

// Source describes one remote endpoint.
type Source struct {
	Name     string
	URL      string
	Encoding Encoding
}

// Registry holds the ordered source list per dataset variant.
type Registry map[card.Variant][]Source

// Attempt is the ephemeral outcome of walking a variant's registry. Never
// persisted; the refresh orchestrator consumes it immediately.
type Attempt struct {
	// Cards from the first usable source, deduplicated. Empty when every
	// source failed.
	Cards []card.Card
	// Source names the endpoint that produced Cards, "" if none did.
	Source string
	// Errors holds one "<source>: <reason>" entry per failed attempt, in
	// registry order.
	Errors []string
}
