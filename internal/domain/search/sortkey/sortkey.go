// Package sortkey composes the deterministic multi-key ordering applied to
// search results.
package sortkey

import (
	"strings"

	"github.com/konectfeed/feedsearch/internal/domain/listing"
)

// Direction is the sort direction of a key.
type Direction int

// Sort directions.
const (
	Asc Direction = iota
	Desc
)

// Key is a single entry in the tie-break chain.
type Key struct {
	field     string
	direction Direction
	nullsLast bool
}

// Field returns the column the key sorts on.
func (k Key) Field() string { return k.field }

// Direction returns the sort direction.
func (k Key) Direction() Direction { return k.direction }

// NullsLast reports whether rows missing the column sort after populated
// ones.
func (k Key) NullsLast() bool { return k.nullsLast }

// SecondaryKey selects the deployment's secondary ranking column.
type SecondaryKey string

// Supported secondary keys: rating descending (default) or price
// ascending.
const (
	SecondaryRating SecondaryKey = "rating"
	SecondaryPrice  SecondaryKey = "price"
)

// IsValid checks if the secondary key is one of the supported values.
func (s SecondaryKey) IsValid() bool {
	return s == SecondaryRating || s == SecondaryPrice
}

// Chain is an ordered tie-break chain. Keys apply in sequence until two
// rows are distinguished.
type Chain []Key

// DefaultChain returns the canonical ordering: sponsored first, then
// relevance/quality score descending with nulls last, then the configured
// secondary key, and finally id ascending. The id tie-break is mandatory:
// without it, order for equal-ranked rows is undefined.
func DefaultChain(secondary SecondaryKey) Chain {
	chain := Chain{
		{field: listing.FieldSponsored, direction: Desc},
		{field: listing.FieldScore, direction: Desc, nullsLast: true},
	}
	if secondary == SecondaryPrice {
		chain = append(chain, Key{field: listing.FieldPrice, direction: Asc, nullsLast: true})
	} else {
		chain = append(chain, Key{field: listing.FieldRating, direction: Desc, nullsLast: true})
	}
	return append(chain, Key{field: listing.FieldID, direction: Asc})
}

// Less reports whether a sorts before b under the chain. It is a strict
// weak ordering suitable for sort.SliceStable.
func (c Chain) Less(a, b listing.Listing) bool {
	for _, k := range c {
		if cmp := k.compare(a, b); cmp != 0 {
			return cmp < 0
		}
	}
	return false
}

// compare returns -1 when a sorts before b on this key, 1 when after,
// 0 when the key does not distinguish them.
func (k Key) compare(a, b listing.Listing) int {
	if k.field == listing.FieldID {
		cmp := strings.Compare(a.ID, b.ID)
		if k.direction == Desc {
			return -cmp
		}
		return cmp
	}

	if k.field == listing.FieldSponsored {
		av, bv := boolRank(a.Sponsored), boolRank(b.Sponsored)
		return compareFloat(&av, &bv, k.direction)
	}

	return compareFloat(numericField(a, k.field), numericField(b, k.field), k.direction)
}

func boolRank(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func numericField(l listing.Listing, field string) *float64 {
	switch field {
	case listing.FieldScore:
		return l.Score
	case listing.FieldRating:
		return l.Rating
	case listing.FieldPrice:
		return l.Price
	}
	return nil
}

// compareFloat orders two optional numerics. Nil always sorts after
// non-nil regardless of direction (nulls-last policy); two nils are equal.
func compareFloat(a, b *float64, dir Direction) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a == *b:
		return 0
	}
	less := *a < *b
	if dir == Desc {
		less = !less
	}
	if less {
		return -1
	}
	return 1
}
