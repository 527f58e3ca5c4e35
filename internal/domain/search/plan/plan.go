// Package plan compiles a normalized query into an immutable, executable
// search plan: predicate tree, sort chain and clamped limit.
package plan

import (
	"github.com/konectfeed/feedsearch/internal/domain/listing"
	"github.com/konectfeed/feedsearch/internal/domain/search/predicate"
	"github.com/konectfeed/feedsearch/internal/domain/search/query"
	"github.com/konectfeed/feedsearch/internal/domain/search/sortkey"
	"github.com/konectfeed/feedsearch/internal/domain/search/strategy"
)

// DefaultMaxLimit bounds the result count when the deployment configures
// no explicit maximum.
const DefaultMaxLimit = 50

// MatchPolicy declares how the exact-filter fields (city, category,
// subcategory) match. One policy for all three fields, fixed at
// deployment time.
type MatchPolicy string

// Field match policies.
const (
	MatchSubstring MatchPolicy = "substring"
	MatchExact     MatchPolicy = "exact"
)

// IsValid checks if the match policy is one of the supported values.
func (m MatchPolicy) IsValid() bool {
	return m == MatchSubstring || m == MatchExact
}

// Policy is the deployment-time compilation configuration.
type Policy struct {
	FieldMatch MatchPolicy
	Strategy   strategy.Strategy
	Secondary  sortkey.SecondaryKey
	MaxLimit   int
}

// Plan is the compiled query. Once built it is never mutated and is safe
// to execute any number of times.
type Plan struct {
	pred  predicate.Predicate
	sort  sortkey.Chain
	limit int
}

// Predicate returns the compiled predicate tree.
func (p Plan) Predicate() predicate.Predicate { return p.pred }

// Sort returns the tie-break chain.
func (p Plan) Sort() sortkey.Chain { return p.sort }

// Limit returns the clamped result limit.
func (p Plan) Limit() int { return p.limit }

// Compile builds the plan for a normalized query. Compilation is pure and
// total: it cannot fail for any normalized query.
func Compile(q query.Query, policy Policy) Plan {
	var conds []predicate.Predicate

	for _, f := range []struct {
		field string
		value string
	}{
		{listing.FieldCity, q.City()},
		{listing.FieldCategory, q.Category()},
		{listing.FieldSubcategory, q.Subcategory()},
	} {
		if f.value == "" {
			continue
		}
		if policy.FieldMatch == MatchExact {
			conds = append(conds, predicate.Equals(f.field, f.value))
		} else {
			conds = append(conds, predicate.ContainsCI(f.field, predicate.Sanitize(f.value)))
		}
	}

	if pricePred, ok := compilePrice(q.MinPrice(), q.MaxPrice()); ok {
		conds = append(conds, pricePred)
	}

	if q.HasTerm() {
		conds = append(conds, policy.Strategy.Compile(q.Term()))
	}

	return Plan{
		pred:  predicate.And(conds...),
		sort:  sortkey.DefaultChain(policy.Secondary),
		limit: ClampLimit(q.Limit(), policy.MaxLimit),
	}
}

// compilePrice builds the price filter under the overlap policy: a listing
// satisfies a bound if either its single price or the relevant end of its
// min_price/max_price range does. Listings that only populate the range
// columns are never dropped.
//
// An inverted request (min > max) compiles to a single empty interval on
// the price column so it matches zero rows deterministically; the overlap
// disjunction would otherwise admit wide-range listings.
func compilePrice(minPrice, maxPrice *float64) (predicate.Predicate, bool) {
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return predicate.Range(listing.FieldPrice, minPrice, maxPrice), true
	}

	var conds []predicate.Predicate
	if maxPrice != nil {
		conds = append(conds, predicate.Or(
			predicate.Range(listing.FieldPrice, nil, maxPrice),
			predicate.Range(listing.FieldMinPrice, nil, maxPrice),
		))
	}
	if minPrice != nil {
		conds = append(conds, predicate.Or(
			predicate.Range(listing.FieldPrice, minPrice, nil),
			predicate.Range(listing.FieldMaxPrice, minPrice, nil),
		))
	}
	if len(conds) == 0 {
		return predicate.Predicate{}, false
	}
	return predicate.And(conds...), true
}

// ClampLimit bounds a requested limit into [1, maxLimit]. A limit of zero
// or below clamps up to 1, never to an empty page. Idempotent.
func ClampLimit(requested, maxLimit int) int {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	if requested < 1 {
		return 1
	}
	if requested > maxLimit {
		return maxLimit
	}
	return requested
}
