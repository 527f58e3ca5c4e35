// Package db defines the store contracts the search core executes
// against. Implementations live in subpackages.
package db

import (
	"context"
	"time"

	"github.com/konectfeed/feedsearch/internal/domain/search/predicate"
)

// SearchQuery is the input for a single FT search round trip. The
// predicate tree is translated into the store's query syntax by the
// driver; Schema tells the driver which columns are tags, text or
// numerics.
type SearchQuery struct {
	IndexName    string
	Predicate    predicate.Predicate
	Schema       *IndexDefinition
	Limit        int
	ReturnFields []string
	WithScores   bool
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single row hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// Searcher executes compiled queries against an FT index.
type Searcher interface {
	Search(ctx context.Context, q *SearchQuery) (*SearchResult, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SupportsTextSearch(ctx context.Context) bool
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is the full store facade.
type Store interface {
	Pinger
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
