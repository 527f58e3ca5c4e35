// Package listing adapts the store into the search core's data source:
// it translates compiled plans into store queries and rows into domain
// listings.
package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/konectfeed/feedsearch/internal/db"
	"github.com/konectfeed/feedsearch/internal/domain"
	domlisting "github.com/konectfeed/feedsearch/internal/domain/listing"
	"github.com/konectfeed/feedsearch/internal/domain/search/plan"
	"github.com/konectfeed/feedsearch/internal/domain/search/predicate"
)

// DefaultCandidateWindow bounds how many candidate rows one search pulls
// from the store. Ranking happens in the core, so the fetch must cover
// more than the final page.
const DefaultCandidateWindow = 500

// store is the consumer interface for listing search operations.
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SupportsTextSearch(ctx context.Context) bool
}

// Repo executes compiled search plans against the listings index.
type Repo struct {
	store     store
	keyPrefix string
	index     *db.IndexDefinition
	window    int
}

// New creates a listing repository. keyPrefix is the hash key namespace
// listings live under (e.g. "konectfeed:listing:"); window bounds the
// candidate fetch (0 means DefaultCandidateWindow).
func New(s store, keyPrefix string, window int) *Repo {
	if window <= 0 {
		window = DefaultCandidateWindow
	}
	return &Repo{
		store:     s,
		keyPrefix: keyPrefix,
		index:     indexDefinition(keyPrefix),
		window:    window,
	}
}

// indexDefinition declares the listings FT index: TAG for the exact-filter
// columns and the tags set, TEXT for searchable prose (search_text is the
// ingestion-time concatenation backing tokenized search), NUMERIC for
// prices and ranking columns.
func indexDefinition(keyPrefix string) *db.IndexDefinition {
	return db.NewIndex(keyPrefix + "idx").
		OnHash().
		Prefix(keyPrefix).
		Tag(domlisting.FieldCity).
		Tag(domlisting.FieldCategory).
		Tag(domlisting.FieldSubcategory).
		TagWithOpts(domlisting.FieldTags, ",", false).
		Text(domlisting.FieldBusinessName).
		Text(domlisting.FieldOfferTitle).
		Text(domlisting.FieldOfferDescription).
		Text(domlisting.FieldSearchText).
		Numeric(domlisting.FieldPrice).
		Numeric(domlisting.FieldMinPrice).
		Numeric(domlisting.FieldMaxPrice).
		Numeric(domlisting.FieldRating).
		Numeric(domlisting.FieldReviewCount).
		NumericSortable(domlisting.FieldScore).
		NumericSortable(domlisting.FieldSponsored).
		MustBuild()
}

// EnsureIndex creates the listings index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.index.Name)
	if err != nil {
		return fmt.Errorf("ensure listings index: %w", err)
	}
	if exists {
		return nil
	}

	// A concurrent creator can still win between the probe and the create.
	if err := r.store.CreateIndex(ctx, r.index); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("ensure listings index: %w", err)
	}
	return nil
}

// SupportsTextSearch proxies the capability check from the store.
func (r *Repo) SupportsTextSearch(ctx context.Context) bool {
	return r.store.SupportsTextSearch(ctx)
}

// Execute runs a compiled plan: one round trip, no retry. Store failures
// wrap domain.ErrDataSource; the caller decides what surfaces outward.
func (r *Repo) Execute(ctx context.Context, p plan.Plan) ([]domlisting.Listing, error) {
	window := r.window
	if window < p.Limit() {
		window = p.Limit()
	}

	q := &db.SearchQuery{
		IndexName:  r.index.Name,
		Predicate:  p.Predicate(),
		Schema:     r.index,
		Limit:      window,
		WithScores: hasTextNode(p.Predicate()),
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataSource, err)
	}

	listings := make([]domlisting.Listing, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		listings = append(listings, parseRow(ctx, r.keyPrefix, entry))
	}
	return listings, nil
}

func hasTextNode(p predicate.Predicate) bool {
	if p.Kind() == predicate.KindText {
		return true
	}
	for _, c := range p.Children() {
		if hasTextNode(c) {
			return true
		}
	}
	return false
}
