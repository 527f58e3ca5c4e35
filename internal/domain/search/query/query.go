// Package query turns raw, string-typed request parameters into a typed,
// immutable search query.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/konectfeed/feedsearch/internal/domain"
)

// DefaultLimit is the result count used when the caller supplies no usable
// limit.
const DefaultLimit = 10

// Params is the flat mapping of recognized request parameters. Every field
// is an optional raw string; unrecognized parameters never reach this
// struct.
type Params struct {
	Q           string
	City        string
	Category    string
	Subcategory string
	MinPrice    string
	MaxPrice    string
	Limit       string
}

// Policy configures normalization behavior per deployment.
type Policy struct {
	// RequireFilter rejects queries that carry neither a free-text term
	// nor a city filter. Deployments that allow unrestricted listing set
	// it to false.
	RequireFilter bool
}

// Query is the normalized caller intent. Built once per request, immutable
// thereafter.
type Query struct {
	term        string
	city        string
	category    string
	subcategory string
	minPrice    *float64
	maxPrice    *float64
	limit       int
}

// Parse validates and coerces raw parameters into a Query.
//
// Malformed optional numeric filters are dropped, never errors: a garbled
// min_price must not abort the search. The limit falls back to
// DefaultLimit when absent or unparseable; an explicit non-positive limit
// is kept for the downstream clamp. Strings are trimmed and an empty
// string is treated as absent.
func Parse(p Params, policy Policy) (Query, error) {
	q := Query{
		term:        strings.TrimSpace(p.Q),
		city:        strings.TrimSpace(p.City),
		category:    strings.TrimSpace(p.Category),
		subcategory: strings.TrimSpace(p.Subcategory),
		minPrice:    parseOptionalFloat(p.MinPrice),
		maxPrice:    parseOptionalFloat(p.MaxPrice),
		limit:       parseLimit(p.Limit),
	}

	if policy.RequireFilter && q.term == "" && q.city == "" {
		return Query{}, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrMissingFilter)
	}

	return q, nil
}

func parseOptionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseLimit coerces the raw limit. Absent or unparseable values fall
// back to DefaultLimit; an explicitly supplied non-positive value passes
// through unchanged so the downstream clamp raises it to the minimum
// page of one instead of silently restoring the default.
func parseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultLimit
	}
	return n
}

// Term returns the free-text search term ("" when absent).
func (q Query) Term() string { return q.term }

// City returns the city filter ("" when absent).
func (q Query) City() string { return q.city }

// Category returns the category filter ("" when absent).
func (q Query) Category() string { return q.category }

// Subcategory returns the subcategory filter ("" when absent).
func (q Query) Subcategory() string { return q.subcategory }

// MinPrice returns the requested price floor (nil when absent).
func (q Query) MinPrice() *float64 { return q.minPrice }

// MaxPrice returns the requested price ceiling (nil when absent).
func (q Query) MaxPrice() *float64 { return q.maxPrice }

// Limit returns the requested result count, defaulted but not yet clamped.
func (q Query) Limit() int { return q.limit }

// HasTerm reports whether a free-text term is present.
func (q Query) HasTerm() bool { return q.term != "" }
