package extract

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/matheuskafuri/cardex/internal/card"
)

// Global state variables some catalog pages assign their hydration
// payload to. Checked in order inside every script body.
var stateMarkers = []string{
	"window.__INITIAL_STATE__",
	"window.__PRELOADED_STATE__",
}

// ExtractHTML locates JSON state embedded in an HTML document and runs
// the normal extraction phases over it. HTML without a recognizable
// state block is a valid empty outcome, not an error.
func ExtractHTML(html string) []card.Card {
	state, ok := embeddedState(html)
	if !ok {
		return nil
	}
	return Extract(state)
}

func embeddedState(html string) (any, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}

	// Hydration block: <script id="__NEXT_DATA__" type="application/json">.
	if txt := strings.TrimSpace(doc.Find("script#__NEXT_DATA__").First().Text()); txt != "" {
		var v any
		if json.Unmarshal([]byte(txt), &v) == nil {
			return v, true
		}
	}

	// Assignment to a well-known global inside any inline script.
	var (
		state any
		found bool
	)
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		body := s.Text()
		for _, marker := range stateMarkers {
			idx := strings.Index(body, marker)
			if idx < 0 {
				continue
			}
			rest := body[idx+len(marker):]
			eq := strings.Index(rest, "=")
			if eq < 0 {
				continue
			}
			text, err := balancedJSON(rest[eq+1:])
			if err != nil {
				continue
			}
			var v any
			if json.Unmarshal([]byte(text), &v) == nil {
				state = v
				found = true
				return false
			}
		}
		return true
	})
	return state, found
}

// balancedJSON returns the leading brace- or bracket-balanced JSON value
// of s, ignoring delimiters inside string literals. This tolerates
// trailing `;` and whatever script text follows the assignment.
func balancedJSON(s string) (string, error) {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" {
		return "", errors.New("no value after assignment")
	}

	open := s[0]
	var closing byte
	switch open {
	case '{':
		closing = '}'
	case '[':
		closing = ']'
	default:
		return "", errors.New("value is not an object or array")
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[:i+1], nil
			}
		}
	}
	return "", errors.New("unbalanced state block")
}
