// Package search ranks cards against a query string.
//
// Ranking is pure and deterministic: for a fixed card set and query two
// invocations yield identical output. The score bands guarantee
// exact > prefix > substring > fuzzy for any query; the constants inside
// a band only shape ordering within it.
package search

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/matheuskafuri/cardex/internal/card"
)

// MaxResults caps every ranked result list.
const MaxResults = 50

// Rank scores and orders cards against query. Cards that do not match at
// all are excluded. An empty query (after trimming and case-folding)
// returns the first MaxResults cards in ingestion order.
func Rank(cards []card.Card, query string) []card.Card {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		n := len(cards)
		if n > MaxResults {
			n = MaxResults
		}
		return append([]card.Card(nil), cards[:n]...)
	}

	type scored struct {
		card  card.Card
		score int
	}
	var hits []scored
	for _, c := range cards {
		if s := score(c.Name, q); s > 0 {
			hits = append(hits, scored{card: c, score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return strings.ToLower(hits[i].card.Name) < strings.ToLower(hits[j].card.Name)
	})

	if len(hits) > MaxResults {
		hits = hits[:MaxResults]
	}
	out := make([]card.Card, len(hits))
	for i, h := range hits {
		out[i] = h.card
	}
	return out
}

// score bands: 1000 exact, 800..850 prefix, 301..500 substring,
// 1..300 fuzzy subsequence, 0 no match.
func score(name, q string) int {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == q {
		return 1000
	}

	nr := []rune(n)
	qr := []rune(q)

	// Prefix: shorter names beyond the prefix score higher.
	if strings.HasPrefix(n, q) {
		bonus := 50 - (len(nr) - len(qr))
		if bonus < 0 {
			bonus = 0
		}
		return 800 + bonus
	}

	// Substring: earlier occurrence scores higher. Floored above the
	// fuzzy band so a late substring still beats any fuzzy hit.
	if idx := strings.Index(n, q); idx >= 0 {
		s := 500 - utf8.RuneCountInString(n[:idx])
		if s < 301 {
			s = 301
		}
		return s
	}

	// Fuzzy subsequence: consume q in order, count skipped runes.
	qi, gaps := 0, 0
	for _, r := range nr {
		if qi < len(qr) && r == qr[qi] {
			qi++
			if qi == len(qr) {
				break
			}
			continue
		}
		gaps++
	}
	if qi < len(qr) {
		return 0
	}
	s := 200 + int(math.Round(100*float64(len(qr))/float64(len(nr)))) - gaps
	if s > 300 {
		s = 300
	}
	if s <= 0 {
		return 0
	}
	return s
}
