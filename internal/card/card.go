package card

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Variant selects one of the two dataset variants the engine manages.
type Variant string

const (
	// VariantBase covers canonical/default prints only.
	VariantBase Variant = "base"
	// VariantAll includes alternate prints and promos.
	VariantAll Variant = "all"
)

// Variants returns the managed variants in canonical order.
func Variants() []Variant {
	return []Variant{VariantBase, VariantAll}
}

// ParseVariant validates a variant tag from config or CLI flags.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(s)); v {
	case VariantBase, VariantAll:
		return v, nil
	}
	return "", fmt.Errorf("unknown variant %q (valid: base, all)", s)
}

// Card is the canonical normalized catalog record. Name and ImageURL are
// required; a record missing either is discarded during extraction.
type Card struct {
	ID        string
	Name      string
	ImageURL  string
	SetNumber string
	Info      string
}

// Key is the composite identity used for deduplication.
func (c Card) Key() string {
	return c.Name + "-" + c.SetNumber + "-" + c.ImageURL
}

// DeriveID builds a stable fallback ID for records that carry none of
// their own. With a set number the ID is human-readable; without one it
// falls back to a content hash so repeated extraction of the same
// payload yields the same ID.
func DeriveID(name, setNumber, imageURL string) string {
	if setNumber != "" {
		return name + "-" + setNumber
	}
	h := sha256.Sum256([]byte(name + "-" + imageURL))
	return fmt.Sprintf("%s-%x", name, h[:8])
}

// Dedupe collapses exact duplicates by identity key, keeping the first
// occurrence and preserving order. Applied once per fetch attempt.
func Dedupe(cards []Card) []Card {
	if len(cards) < 2 {
		return cards
	}
	seen := make(map[string]bool, len(cards))
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		k := c.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}
