package graphql

import (
	"context"
	"time"

	"character-browser/internal/domain"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Fetcher executes the characters query.
type Fetcher interface {
	FetchCharacters(ctx context.Context, params domain.QueryParams) (*domain.CharacterPage, error)
}

// CachingFetcher serves repeated queries from an in-memory LRU.
// Failed queries are never cached.
type CachingFetcher struct {
	next  Fetcher
	pages *expirable.LRU[domain.QueryParams, *domain.CharacterPage]
}

// NewCachingFetcher wraps next with a cache of size entries that expire
// after ttl. A zero ttl keeps entries until they are evicted.
func NewCachingFetcher(next Fetcher, size int, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{
		next:  next,
		pages: expirable.NewLRU[domain.QueryParams, *domain.CharacterPage](size, nil, ttl),
	}
}

// FetchCharacters implements Fetcher.
func (f *CachingFetcher) FetchCharacters(ctx context.Context, params domain.QueryParams) (*domain.CharacterPage, error) {
	if page, ok := f.pages.Get(params); ok {
		log.Debug("query cache hit", "page", params.Page, "status", params.Status, "species", params.Species)
		return page, nil
	}

	page, err := f.next.FetchCharacters(ctx, params)
	if err != nil {
		return nil, err
	}
	f.pages.Add(params, page)
	return page, nil
}

// Purge drops every cached page.
func (f *CachingFetcher) Purge() {
	f.pages.Purge()
}
