package sortkey

import (
	"sort"
	"testing"

	"github.com/konectfeed/feedsearch/internal/domain/listing"
)

func f(v float64) *float64 { return &v }

func TestDefaultChain_Shape(t *testing.T) {
	chain := DefaultChain(SecondaryRating)
	if len(chain) != 4 {
		t.Fatalf("chain length = %d, want 4", len(chain))
	}
	if chain[0].Field() != listing.FieldSponsored || chain[0].Direction() != Desc {
		t.Errorf("key 0 = %+v, want sponsored desc", chain[0])
	}
	if chain[1].Field() != listing.FieldScore || chain[1].Direction() != Desc {
		t.Errorf("key 1 = %+v, want score desc", chain[1])
	}
	if chain[2].Field() != listing.FieldRating {
		t.Errorf("key 2 = %+v, want rating", chain[2])
	}
	if chain[3].Field() != listing.FieldID || chain[3].Direction() != Asc {
		t.Errorf("final key = %+v, want id asc", chain[3])
	}
}

func TestDefaultChain_PriceSecondary(t *testing.T) {
	chain := DefaultChain(SecondaryPrice)
	if chain[2].Field() != listing.FieldPrice || chain[2].Direction() != Asc {
		t.Errorf("key 2 = %+v, want price asc", chain[2])
	}
	if chain[3].Field() != listing.FieldID {
		t.Error("id tie-break must always be present")
	}
}

func TestLess_SponsoredFirst(t *testing.T) {
	chain := DefaultChain(SecondaryRating)
	sponsored := listing.Listing{ID: "z", Sponsored: true}
	organic := listing.Listing{ID: "a", Score: f(99), Rating: f(5)}

	if !chain.Less(sponsored, organic) {
		t.Error("sponsored listing must sort before organic regardless of score")
	}
	if chain.Less(organic, sponsored) {
		t.Error("ordering must be asymmetric")
	}
}

func TestLess_ScoreDescNullsLast(t *testing.T) {
	chain := DefaultChain(SecondaryRating)
	scored := listing.Listing{ID: "b", Score: f(0.5)}
	unscored := listing.Listing{ID: "a"}

	if !chain.Less(scored, unscored) {
		t.Error("scored row must sort before null score")
	}

	high := listing.Listing{ID: "b", Score: f(10)}
	low := listing.Listing{ID: "a", Score: f(1)}
	if !chain.Less(high, low) {
		t.Error("higher score must sort first")
	}
}

func TestLess_IDTieBreakIsDeterministic(t *testing.T) {
	chain := DefaultChain(SecondaryRating)
	a := listing.Listing{ID: "listing-1", Sponsored: true, Score: f(3), Rating: f(4)}
	b := listing.Listing{ID: "listing-2", Sponsored: true, Score: f(3), Rating: f(4)}

	if !chain.Less(a, b) {
		t.Error("smaller identifier must sort first on full tie")
	}
	if chain.Less(b, a) {
		t.Error("tie-break must be a strict ordering")
	}
	if chain.Less(a, a) {
		t.Error("Less(x, x) must be false")
	}
}

func TestLess_SortIsStableAcrossShuffles(t *testing.T) {
	chain := DefaultChain(SecondaryRating)
	rows := []listing.Listing{
		{ID: "d"},
		{ID: "b", Sponsored: true},
		{ID: "c", Score: f(2)},
		{ID: "a", Sponsored: true, Score: f(1)},
	}

	sorted := make([]listing.Listing, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return chain.Less(sorted[i], sorted[j]) })

	want := []string{"a", "b", "c", "d"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Fatalf("position %d = %q, want %q", i, sorted[i].ID, id)
		}
	}

	// reversed input must produce the identical order
	reversed := []listing.Listing{rows[3], rows[2], rows[1], rows[0]}
	sort.SliceStable(reversed, func(i, j int) bool { return chain.Less(reversed[i], reversed[j]) })
	for i, id := range want {
		if reversed[i].ID != id {
			t.Fatalf("reversed input: position %d = %q, want %q", i, reversed[i].ID, id)
		}
	}
}

func TestLess_PriceAscendingNullsLast(t *testing.T) {
	chain := DefaultChain(SecondaryPrice)
	cheap := listing.Listing{ID: "b", Price: f(10)}
	expensive := listing.Listing{ID: "c", Price: f(90)}
	unpriced := listing.Listing{ID: "a"}

	if !chain.Less(cheap, expensive) {
		t.Error("lower price must sort first")
	}
	if !chain.Less(expensive, unpriced) {
		t.Error("priced row must sort before null price")
	}
}
