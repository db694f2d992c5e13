package browser

import "testing"

func TestOpenRejectsNonHTTP(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://img.catalog.test/card.png", true},
		{"", true},
	}

	for _, tt := range tests {
		err := Open(tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("Open(%q): expected error, got nil", tt.url)
		}
	}
	// http/https URLs pass scheme validation; the actual launch is not
	// asserted because headless test environments have no browser.
}
