package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/matheuskafuri/cardex/internal/card"
	"github.com/matheuskafuri/cardex/internal/extract"
)

// A browser UA avoids anti-bot 403s from catalog CDNs.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

const maxPayloadBytes = 8 << 20

// Client wraps an http.Client with the timeouts and headers the catalog
// endpoints need. Fetches are sequential; at most one outstanding request
// exists per refresh.
type Client struct {
	http *http.Client
}

// NewClient builds a client with an overall request timeout. Zero means
// the 20s default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
	}
	return &Client{http: &http.Client{Transport: transport, Timeout: timeout}}
}

// FetchVariant walks the sources strictly in order and stops at the first
// one yielding cards. Transport failures, non-2xx statuses and
// semantically empty payloads all count as per-source failures and fall
// through to the next source. When every source fails the attempt carries
// no cards and the full ordered error list.
func (c *Client) FetchVariant(ctx context.Context, sources []Source) Attempt {
	var attempt Attempt
	for _, src := range sources {
		cards, err := c.fetchOne(ctx, src)
		if err != nil {
			attempt.Errors = append(attempt.Errors, fmt.Sprintf("%s: %v", src.Name, err))
			continue
		}
		attempt.Cards = card.Dedupe(cards)
		attempt.Source = src.Name
		return attempt
	}
	return attempt
}

func (c *Client) fetchOne(ctx context.Context, src Source) ([]card.Card, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html, application/rss+xml;q=0.9, */*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	cards := decode(src.Encoding, body)
	if len(cards) == 0 {
		return nil, errors.New("no cards in payload")
	}
	return cards, nil
}

func decode(enc Encoding, body []byte) []card.Card {
	switch enc {
	case EncodingHTML:
		return extract.ExtractHTML(string(body))
	case EncodingFeed:
		return extract.ExtractFeed(bytes.NewReader(body))
	default:
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			// Some source generations serve HTML from the JSON endpoint.
			return extract.ExtractHTML(string(body))
		}
		return extract.Extract(v)
	}
}
