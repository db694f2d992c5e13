// Package catalog decides when to trust the snapshot and when to go back
// to the external catalog, and exposes the engine's boundary operations.
//
// The failure-tolerance cascade is fresh -> stale-but-served ->
// empty-with-errors: a transient outage of every source never blanks an
// already-working dataset.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/cardex/internal/card"
	"github.com/matheuskafuri/cardex/internal/search"
	"github.com/matheuskafuri/cardex/internal/snapshot"
	"github.com/matheuskafuri/cardex/internal/source"
)

// Freshness classifies where a returned card list came from.
type Freshness string

const (
	// FreshnessFresh: just fetched and persisted.
	FreshnessFresh Freshness = "fresh"
	// FreshnessCached: served from the snapshot without a refresh attempt.
	FreshnessCached Freshness = "cached"
	// FreshnessStale: served from the snapshot after a failed refresh.
	FreshnessStale Freshness = "stale"
	// FreshnessUnavailable: no snapshot and no successful fetch.
	FreshnessUnavailable Freshness = "unavailable"
)

// ErrUnavailable marks the terminal no-data condition: nothing persisted
// and every source failed.
var ErrUnavailable = errors.New("card data temporarily unavailable")

type Catalog struct {
	store    *snapshot.Store
	client   *source.Client
	registry source.Registry
}

func New(store *snapshot.Store, client *source.Client, registry source.Registry) *Catalog {
	return &Catalog{store: store, client: client, registry: registry}
}

// Result is the outcome of resolving a variant's card list.
type Result struct {
	Cards     []card.Card
	Freshness Freshness
	UpdatedAt time.Time
	Errors    []string
}

// ListOpts controls a ListCards call.
type ListOpts struct {
	ForceRefresh  bool
	RemoteAllowed bool
}

// ListCards returns a variant's cards, refreshing from the external
// catalog when asked. The only hard error is a failed snapshot write
// after a successful fetch, plus the terminal ErrUnavailable.
func (c *Catalog) ListCards(ctx context.Context, v card.Variant, opts ListOpts) (Result, error) {
	return c.resolve(ctx, v, opts.ForceRefresh, opts.RemoteAllowed)
}

func (c *Catalog) resolve(ctx context.Context, v card.Variant, force, remoteAllowed bool) (Result, error) {
	if !force {
		entry := c.store.Read(v)
		return Result{Cards: entry.Cards, Freshness: FreshnessCached, UpdatedAt: entry.UpdatedAt}, nil
	}

	if !remoteAllowed {
		entry := c.store.Read(v)
		return Result{
			Cards:     entry.Cards,
			Freshness: FreshnessCached,
			UpdatedAt: entry.UpdatedAt,
			Errors:    []string{"remote fetch disabled"},
		}, nil
	}

	attempt := c.client.FetchVariant(ctx, c.registry[v])
	if len(attempt.Cards) > 0 {
		if err := c.store.Write(v, attempt.Cards); err != nil {
			return Result{}, fmt.Errorf("persisting refresh for %s: %w", v, err)
		}
		entry := c.store.Read(v)
		return Result{
			Cards:     entry.Cards,
			Freshness: FreshnessFresh,
			UpdatedAt: entry.UpdatedAt,
			Errors:    attempt.Errors,
		}, nil
	}

	// Every source failed. Prefer staleness over emptiness: the snapshot
	// is left untouched and served as-is.
	entry := c.store.Read(v)
	if len(entry.Cards) > 0 {
		return Result{
			Cards:     entry.Cards,
			Freshness: FreshnessStale,
			UpdatedAt: entry.UpdatedAt,
			Errors:    attempt.Errors,
		}, nil
	}

	return Result{Freshness: FreshnessUnavailable, Errors: attempt.Errors}, ErrUnavailable
}

// SearchOpts controls a SearchCards call. Zero Page/PageSize default to
// the first page of 20.
type SearchOpts struct {
	Page          int
	PageSize      int
	Ranked        bool
	ForceRefresh  bool
	RemoteAllowed bool
}

// SearchResult is a page of matches plus the pre-pagination total.
type SearchResult struct {
	Cards     []card.Card
	Total     int
	UpdatedAt time.Time
}

// SearchCards filters or ranks a variant's cards and paginates the
// matches. The default mode is a simple substring filter over the
// snapshot; Ranked applies the full scoring order (capped at
// search.MaxResults) before pagination.
func (c *Catalog) SearchCards(ctx context.Context, v card.Variant, query string, opts SearchOpts) (SearchResult, error) {
	res, err := c.resolve(ctx, v, opts.ForceRefresh, opts.RemoteAllowed)
	if err != nil {
		return SearchResult{}, err
	}

	var matched []card.Card
	q := strings.ToLower(strings.TrimSpace(query))
	switch {
	case opts.Ranked:
		matched = search.Rank(res.Cards, query)
	case q == "":
		matched = res.Cards
	default:
		for _, cd := range res.Cards {
			if strings.Contains(strings.ToLower(cd.Name), q) {
				matched = append(matched, cd)
			}
		}
	}

	total := len(matched)

	page := opts.Page
	if page < 1 {
		page = 1
	}
	size := opts.PageSize
	if size < 1 {
		size = 20
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return SearchResult{
		Cards:     matched[start:end],
		Total:     total,
		UpdatedAt: res.UpdatedAt,
	}, nil
}
