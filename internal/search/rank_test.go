package search

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/matheuskafuri/cardex/internal/card"
)

func named(names ...string) []card.Card {
	cards := make([]card.Card, len(names))
	for i, n := range names {
		cards[i] = card.Card{ID: n, Name: n, ImageURL: "https://img/" + n + ".png"}
	}
	return cards
}

func namesOf(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

func TestRankBandOrdering(t *testing.T) {
	// Exact match first, then prefix, then substring.
	cards := named("Aeon Knight", "Aeon", "Knight of Aeon")

	got := namesOf(Rank(cards, "aeon"))
	want := []string{"Aeon", "Aeon Knight", "Knight of Aeon"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank = %v, want %v", got, want)
	}
}

func TestRankCaseFolding(t *testing.T) {
	cards := named("AEON")
	if got := Rank(cards, "  aeon  "); len(got) != 1 {
		t.Errorf("expected trimmed, case-folded exact match, got %v", got)
	}
	if score("AEON", "aeon") != 1000 {
		t.Errorf("expected exact score 1000, got %d", score("AEON", "aeon"))
	}
}

func TestRankPrefixPrefersShorterNames(t *testing.T) {
	cards := named("Aeonworld Champion Edition", "Aeonic")

	got := namesOf(Rank(cards, "aeon"))
	if got[0] != "Aeonic" {
		t.Errorf("expected shorter prefix match first, got %v", got)
	}
}

func TestRankSubstringPrefersEarlierOccurrence(t *testing.T) {
	cards := named("The Grand Aeon", "An Aeon Rising")

	got := namesOf(Rank(cards, "aeon"))
	if got[0] != "An Aeon Rising" {
		t.Errorf("expected earlier occurrence first, got %v", got)
	}
}

func TestRankFuzzySubsequence(t *testing.T) {
	// "aen" is a subsequence of "Aeon" but not a substring.
	s := score("Aeon", "aen")
	if s <= 0 {
		t.Fatalf("expected fuzzy hit, got score %d", s)
	}
	if s > 300 {
		t.Errorf("fuzzy score %d leaks above its band", s)
	}
}

func TestRankNonMatchExcluded(t *testing.T) {
	cards := named("Aeon", "Dragon", "Knight")
	got := Rank(cards, "zzz")
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestRankBandsNeverInvert(t *testing.T) {
	q := "aeon"
	exact := score("Aeon", q)
	prefix := score("Aeonworld Champion Grand Edition Anniversary Box", q)
	substring := score("The Dusk Chronicle Tome of the Endless Aeon", q)
	fuzzy := score("a certain epic of nothing", q)

	if fuzzy <= 0 {
		t.Fatal("fixture: fuzzy candidate should match as subsequence")
	}
	if !(exact > prefix && prefix > substring && substring > fuzzy) {
		t.Errorf("band ordering violated: exact=%d prefix=%d substring=%d fuzzy=%d",
			exact, prefix, substring, fuzzy)
	}
}

func TestRankDeterministic(t *testing.T) {
	cards := named("Aeon", "Aeonic", "An Aeon Rising", "The Grand Aeon", "Dragon")
	first := namesOf(Rank(cards, "aeon"))
	second := namesOf(Rank(cards, "aeon"))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ranking not deterministic: %v vs %v", first, second)
	}
}

func TestRankTieBreaksByName(t *testing.T) {
	// Same score (both exact-length prefix band), tie broken lexicographically.
	cards := named("aeon b", "aeon a")
	got := namesOf(Rank(cards, "aeon"))
	if !reflect.DeepEqual(got, []string{"aeon a", "aeon b"}) {
		t.Errorf("expected lexicographic tie-break, got %v", got)
	}
}

func TestRankCapsResults(t *testing.T) {
	var cards []card.Card
	for i := 0; i < MaxResults+20; i++ {
		cards = append(cards, card.Card{
			Name:     fmt.Sprintf("Aeon %03d", i),
			ImageURL: "https://img/x.png",
		})
	}
	if got := Rank(cards, "aeon"); len(got) != MaxResults {
		t.Errorf("expected cap at %d, got %d", MaxResults, len(got))
	}
}

func TestRankEmptyQueryIngestionOrder(t *testing.T) {
	cards := named("Zebra", "Apple", "Mango")
	got := namesOf(Rank(cards, "   "))
	if !reflect.DeepEqual(got, []string{"Zebra", "Apple", "Mango"}) {
		t.Errorf("expected ingestion order for empty query, got %v", got)
	}

	var many []card.Card
	for i := 0; i < MaxResults+5; i++ {
		many = append(many, card.Card{Name: fmt.Sprintf("c%d", i), ImageURL: "u"})
	}
	if got := Rank(many, ""); len(got) != MaxResults {
		t.Errorf("expected empty query capped at %d, got %d", MaxResults, len(got))
	}
}
