package cmd

import (
	"testing"

	"github.com/matheuskafuri/cardex/internal/card"
)

func TestResolveVariant(t *testing.T) {
	tests := []struct {
		input string
		want  card.Variant
		err   bool
	}{
		{"base", card.VariantBase, false},
		{"all", card.VariantAll, false},
		{"BASE", card.VariantBase, false},
		{"holo", "", true},
		{"", "", true},
	}

	orig := flagVariant
	defer func() { flagVariant = orig }()

	for _, tt := range tests {
		flagVariant = tt.input
		got, err := resolveVariant()
		if tt.err {
			if err == nil {
				t.Errorf("resolveVariant(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveVariant(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveVariant(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
