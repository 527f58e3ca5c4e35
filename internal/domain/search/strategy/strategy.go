// Package strategy selects how a free-text term compiles into a
// predicate, depending on the text-matching capability of the store.
package strategy

import (
	"github.com/konectfeed/feedsearch/internal/domain/listing"
	"github.com/konectfeed/feedsearch/internal/domain/search/predicate"
)

// Strategy is the text-search strategy. It is a deployment-time
// configuration value, never a per-request decision, so compiled-query
// shape stays predictable.
type Strategy string

const (
	// Tokenized treats the term as a web-style query against the
	// precomputed search_text column and lets the store's text index
	// contribute relevance. Requires a store with text-search support.
	Tokenized Strategy = "tokenized"
	// Substring applies a case-insensitive contains test to each
	// searchable field independently, joined with Or. Works on any store.
	Substring Strategy = "substring"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Tokenized || s == Substring
}

// SubstringFields are the columns the substring strategy probes. The tags
// set is included so tag matches are never silently excluded.
var SubstringFields = []string{
	listing.FieldBusinessName,
	listing.FieldCategory,
	listing.FieldSubcategory,
	listing.FieldCity,
	listing.FieldOfferTitle,
	listing.FieldOfferDescription,
	listing.FieldTags,
}

// Compile turns a free-text term into a predicate. The term is sanitized
// here; callers pass raw user text.
func (s Strategy) Compile(term string) predicate.Predicate {
	safe := predicate.Sanitize(term)

	if s == Tokenized {
		return predicate.Text([]string{listing.FieldSearchText}, safe)
	}

	parts := make([]predicate.Predicate, 0, len(SubstringFields))
	for _, f := range SubstringFields {
		parts = append(parts, predicate.ContainsCI(f, safe))
	}
	return predicate.Or(parts...)
}
