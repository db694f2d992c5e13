package extract

import "testing"

func TestExtractHTMLNextData(t *testing.T) {
	html := `<html><head><title>Catalog</title></head><body>
		<div id="root"></div>
		<script id="__NEXT_DATA__" type="application/json">
			{"props": {"pageProps": {"cards": [
				{"name": "Hydrated", "imageUrl": "https://img/h.png", "setNumber": "003"}
			]}}}
		</script>
	</body></html>`

	got := ExtractHTML(html)
	if len(got) != 1 {
		t.Fatalf("expected 1 card from hydration block, got %d", len(got))
	}
	if got[0].Name != "Hydrated" || got[0].SetNumber != "003" {
		t.Errorf("unexpected card: %v", got[0])
	}
}

func TestExtractHTMLInitialState(t *testing.T) {
	html := `<html><body>
		<script>var theme = "dark";</script>
		<script>
			window.__INITIAL_STATE__ = {"catalog": {"items": [
				{"name": "Assigned", "image": "https://img/a.png"}
			]}};
			window.__INITIAL_STATE_LOADED__ = true;
		</script>
	</body></html>`

	got := ExtractHTML(html)
	if len(got) != 1 || got[0].Name != "Assigned" {
		t.Fatalf("expected card from state assignment, got %v", got)
	}
}

func TestExtractHTMLPreloadedState(t *testing.T) {
	html := `<script>window.__PRELOADED_STATE__ = {"cards":[{"name":"P","imageUrl":"https://img/p.png"}]};</script>`
	got := ExtractHTML(html)
	if len(got) != 1 || got[0].Name != "P" {
		t.Fatalf("expected card from preloaded state, got %v", got)
	}
}

func TestExtractHTMLStateWithBracesInStrings(t *testing.T) {
	html := `<script>window.__INITIAL_STATE__ = {"cards":[{"name":"Brace {Master}","imageUrl":"https://img/b.png","info":"say \"}\" aloud"}]};</script>`
	got := ExtractHTML(html)
	if len(got) != 1 {
		t.Fatalf("expected 1 card, got %d", len(got))
	}
	if got[0].Name != "Brace {Master}" {
		t.Errorf("brace handling broken: %q", got[0].Name)
	}
}

func TestExtractHTMLNoState(t *testing.T) {
	html := `<html><body><p>Just a page</p><script>console.log("hi")</script></body></html>`
	if got := ExtractHTML(html); len(got) != 0 {
		t.Errorf("expected no cards from plain HTML, got %v", got)
	}
}

func TestExtractHTMLMalformedState(t *testing.T) {
	html := `<script>window.__INITIAL_STATE__ = {"cards": [ broken</script>`
	if got := ExtractHTML(html); len(got) != 0 {
		t.Errorf("expected no cards from malformed state, got %v", got)
	}
}

func TestBalancedJSON(t *testing.T) {
	tests := []struct {
		input string
		want  string
		err   bool
	}{
		{` {"a": 1}; rest`, `{"a": 1}`, false},
		{`[1, [2, 3]] // tail`, `[1, [2, 3]]`, false},
		{`{"s": "}"}`, `{"s": "}"}`, false},
		{`{"esc": "\"}"}`, `{"esc": "\"}"}`, false},
		{`{"open": 1`, "", true},
		{`"bare string"`, "", true},
		{``, "", true},
	}

	for _, tt := range tests {
		got, err := balancedJSON(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("balancedJSON(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("balancedJSON(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("balancedJSON(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
