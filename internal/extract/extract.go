// Package extract normalizes arbitrary catalog payloads into cards.
//
// The external catalog has no schema contract: payloads arrive as JSON of
// unknown shape, HTML pages with embedded hydration state, or RSS/Atom
// feeds. Extraction is a documented fallback chain with deterministic
// precedence, not ad hoc duck-typing: a known-key lookup first, then an
// exhaustive cycle-safe traversal of the whole value graph.
package extract

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/matheuskafuri/cardex/internal/card"
)

// Conventional collection keys, tried in this order.
var collectionKeys = []string{"cards", "data", "items", "results"}

// Alias priority per canonical field: first present, non-empty value wins.
var (
	nameAliases  = []string{"name", "cardName", "title"}
	imageAliases = []string{"imageUrl", "image_url", "image", "img", "cardImage"}
	setAliases   = []string{"setNumber", "set_number", "cardNumber", "number", "set"}
	infoAliases  = []string{"info", "text", "description", "effect"}
	idAliases    = []string{"id", "slug", "uuid"}
)

// Extract turns a decoded JSON value of unknown shape into zero or more
// cards. Phase 1 concatenates arrays held under conventional collection
// keys; any yield short-circuits. Phase 2 falls back to visiting every
// reachable object node.
func Extract(v any) []card.Card {
	if obj, ok := v.(map[string]any); ok {
		if cards := fromKnownKeys(obj); len(cards) > 0 {
			return cards
		}
	}
	return traverse(v)
}

func fromKnownKeys(obj map[string]any) []card.Card {
	var out []card.Card
	for _, key := range collectionKeys {
		seq, ok := obj[key].([]any)
		if !ok {
			continue
		}
		for _, el := range seq {
			m, ok := el.(map[string]any)
			if !ok {
				continue
			}
			if c, ok := build(m); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// traverse visits every object/array reachable from v. The visited set is
// keyed on map/slice identity so cyclic values terminate. Card-shaped
// nodes are collected and still descended into: a card object may nest
// further card objects.
func traverse(v any) []card.Card {
	var out []card.Card
	visited := make(map[uintptr]bool)

	var walk func(v any)
	walk = func(v any) {
		switch node := v.(type) {
		case map[string]any:
			p := reflect.ValueOf(node).Pointer()
			if visited[p] {
				return
			}
			visited[p] = true

			if c, ok := build(node); ok {
				out = append(out, c)
			}

			// Sorted keys keep the yield order deterministic.
			keys := make([]string, 0, len(node))
			for k := range node {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(node[k])
			}

		case []any:
			if len(node) > 0 {
				p := reflect.ValueOf(node).Pointer()
				if visited[p] {
					return
				}
				visited[p] = true
			}
			for _, el := range node {
				walk(el)
			}
		}
	}

	walk(v)
	return out
}

// build attempts to normalize a single object node into a card. Nodes
// missing a resolvable name or image are not cards.
func build(m map[string]any) (card.Card, bool) {
	name := firstString(m, nameAliases)
	image := firstString(m, imageAliases)
	if name == "" || image == "" {
		return card.Card{}, false
	}

	set := firstScalar(m, setAliases)
	id := firstScalar(m, idAliases)
	if id == "" {
		id = card.DeriveID(name, set, image)
	}

	return card.Card{
		ID:        id,
		Name:      name,
		ImageURL:  image,
		SetNumber: set,
		Info:      firstString(m, infoAliases),
	}, true
}

func firstString(m map[string]any, aliases []string) string {
	for _, key := range aliases {
		s, ok := m[key].(string)
		if !ok {
			continue
		}
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
	}
	return ""
}

// firstScalar is firstString plus numeric tolerance: ids and set numbers
// frequently arrive as JSON numbers.
func firstScalar(m map[string]any, aliases []string) string {
	for _, key := range aliases {
		switch v := m[key].(type) {
		case string:
			if t := strings.TrimSpace(v); t != "" {
				return t
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
