package card

import (
	"reflect"
	"testing"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input string
		want  Variant
		err   bool
	}{
		{"base", VariantBase, false},
		{"all", VariantAll, false},
		{"Base", VariantBase, false},
		{"", "", true},
		{"promos", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("ParseVariant(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVariant(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDedupeCollapsesDuplicates(t *testing.T) {
	cards := []Card{
		{ID: "1", Name: "Aeon", SetNumber: "001", ImageURL: "https://img/a.png"},
		{ID: "2", Name: "Knight", SetNumber: "002", ImageURL: "https://img/b.png"},
		{ID: "3", Name: "Aeon", SetNumber: "001", ImageURL: "https://img/a.png"},
		{ID: "4", Name: "Aeon", SetNumber: "001", ImageURL: "https://img/a-alt.png"},
	}

	got := Dedupe(cards)
	if len(got) != 3 {
		t.Fatalf("expected 3 cards after dedupe, got %d", len(got))
	}
	// First occurrence wins, order preserved.
	if got[0].ID != "1" || got[1].ID != "2" || got[2].ID != "4" {
		t.Errorf("unexpected survivors: %v", got)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	cards := []Card{
		{Name: "A", ImageURL: "u1"},
		{Name: "B", ImageURL: "u2"},
		{Name: "A", ImageURL: "u1"},
	}
	once := Dedupe(cards)
	twice := Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedupe not idempotent: %v vs %v", once, twice)
	}
}

func TestDedupeDistinguishesSetNumbers(t *testing.T) {
	cards := []Card{
		{Name: "Aeon", SetNumber: "001", ImageURL: "u"},
		{Name: "Aeon", SetNumber: "002", ImageURL: "u"},
	}
	if got := Dedupe(cards); len(got) != 2 {
		t.Errorf("expected set numbers to split identity, got %d cards", len(got))
	}
}

func TestDeriveID(t *testing.T) {
	if got := DeriveID("Aeon Knight", "001", "https://img/a.png"); got != "Aeon Knight-001" {
		t.Errorf("DeriveID with set number = %q", got)
	}

	a := DeriveID("Aeon Knight", "", "https://img/a.png")
	b := DeriveID("Aeon Knight", "", "https://img/a.png")
	if a != b {
		t.Errorf("derived ID not stable: %q vs %q", a, b)
	}
	c := DeriveID("Aeon Knight", "", "https://img/other.png")
	if a == c {
		t.Errorf("derived ID should depend on image URL")
	}
}
