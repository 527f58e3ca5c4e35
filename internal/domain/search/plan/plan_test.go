package plan

import (
	"testing"

	"github.com/konectfeed/feedsearch/internal/domain/listing"
	"github.com/konectfeed/feedsearch/internal/domain/search/predicate"
	"github.com/konectfeed/feedsearch/internal/domain/search/query"
	"github.com/konectfeed/feedsearch/internal/domain/search/sortkey"
	"github.com/konectfeed/feedsearch/internal/domain/search/strategy"
)

func testPolicy() Policy {
	return Policy{
		FieldMatch: MatchSubstring,
		Strategy:   strategy.Tokenized,
		Secondary:  sortkey.SecondaryRating,
		MaxLimit:   50,
	}
}

func mustParse(t *testing.T, p query.Params) query.Query {
	t.Helper()
	q, err := query.Parse(p, query.Policy{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return q
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"zero clamps up to one", 0, 1},
		{"negative clamps up to one", -3, 1},
		{"one", 1, 1},
		{"in range", 25, 25},
		{"at max", 50, 50},
		{"over max", 500, 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClampLimit(tc.requested, 50)
			if got != tc.want {
				t.Errorf("ClampLimit(%d, 50) = %d, want %d", tc.requested, got, tc.want)
			}
			// idempotence
			if again := ClampLimit(got, 50); again != got {
				t.Errorf("ClampLimit not idempotent: %d -> %d", got, again)
			}
		})
	}
}

func TestClampLimit_DefaultMax(t *testing.T) {
	if got := ClampLimit(1000, 0); got != DefaultMaxLimit {
		t.Errorf("ClampLimit(1000, 0) = %d, want %d", got, DefaultMaxLimit)
	}
}

func TestCompile_EmptyQueryMatchesAll(t *testing.T) {
	p := Compile(mustParse(t, query.Params{}), testPolicy())
	if !p.Predicate().IsAll() {
		t.Errorf("predicate = %+v, want All", p.Predicate())
	}
	if p.Limit() != query.DefaultLimit {
		t.Errorf("Limit() = %d", p.Limit())
	}
	if len(p.Sort()) != 4 {
		t.Errorf("sort chain length = %d, want 4", len(p.Sort()))
	}
}

func TestCompile_SubstringFieldPolicy(t *testing.T) {
	p := Compile(mustParse(t, query.Params{City: "Phoenix"}), testPolicy())
	pred := p.Predicate()
	if pred.Kind() != predicate.KindContains {
		t.Fatalf("Kind() = %v, want ContainsCI", pred.Kind())
	}
	if pred.Field() != listing.FieldCity || pred.Value() != "Phoenix" {
		t.Errorf("predicate = %+v", pred)
	}
}

func TestCompile_ExactFieldPolicy(t *testing.T) {
	policy := testPolicy()
	policy.FieldMatch = MatchExact

	p := Compile(mustParse(t, query.Params{Category: "Med Spa"}), policy)
	pred := p.Predicate()
	if pred.Kind() != predicate.KindEquals {
		t.Fatalf("Kind() = %v, want Equals", pred.Kind())
	}
	if pred.Value() != "Med Spa" {
		t.Errorf("Value() = %q, exact match embeds the raw value", pred.Value())
	}
}

func TestCompile_FieldFilterSanitized(t *testing.T) {
	p := Compile(mustParse(t, query.Params{City: "a{b}"}), testPolicy())
	if p.Predicate().Value() != `a\{b\}` {
		t.Errorf("Value() = %q, want sanitized pattern", p.Predicate().Value())
	}
}

func TestCompile_PriceOverlapCeiling(t *testing.T) {
	p := Compile(mustParse(t, query.Params{Q: "spa", MaxPrice: "50"}), testPolicy())
	pred := p.Predicate()
	if pred.Kind() != predicate.KindAnd {
		t.Fatalf("top = %v, want And", pred.Kind())
	}

	var overlap *predicate.Predicate
	for i, c := range pred.Children() {
		if c.Kind() == predicate.KindOr {
			overlap = &pred.Children()[i]
		}
	}
	if overlap == nil {
		t.Fatal("no Or group for the price ceiling")
	}
	if len(overlap.Children()) != 2 {
		t.Fatalf("overlap children = %d, want 2", len(overlap.Children()))
	}

	fields := map[string]bool{}
	for _, c := range overlap.Children() {
		if c.Kind() != predicate.KindRange {
			t.Errorf("overlap child = %v, want Range", c.Kind())
		}
		if c.Upper() == nil || *c.Upper() != 50 {
			t.Errorf("Upper() = %v, want 50", c.Upper())
		}
		fields[c.Field()] = true
	}
	if !fields[listing.FieldPrice] || !fields[listing.FieldMinPrice] {
		t.Errorf("overlap fields = %v: a range-only listing would be dropped", fields)
	}
}

func TestCompile_PriceOverlapFloor(t *testing.T) {
	p := Compile(mustParse(t, query.Params{Q: "spa", MinPrice: "20"}), testPolicy())

	var overlap predicate.Predicate
	found := false
	walk(p.Predicate(), func(n predicate.Predicate) {
		if n.Kind() == predicate.KindOr {
			overlap = n
			found = true
		}
	})
	if !found {
		t.Fatal("no Or group for the price floor")
	}

	fields := map[string]bool{}
	for _, c := range overlap.Children() {
		fields[c.Field()] = true
	}
	if !fields[listing.FieldPrice] || !fields[listing.FieldMaxPrice] {
		t.Errorf("floor overlap fields = %v", fields)
	}
}

func TestCompile_InvertedRangeIsEmptyInterval(t *testing.T) {
	p := Compile(mustParse(t, query.Params{Q: "spa", MinPrice: "60", MaxPrice: "50"}), testPolicy())

	var ranges []predicate.Predicate
	orSeen := false
	walk(p.Predicate(), func(n predicate.Predicate) {
		switch n.Kind() {
		case predicate.KindRange:
			ranges = append(ranges, n)
		case predicate.KindOr:
			orSeen = true
		}
	})

	if orSeen {
		t.Error("inverted range must not compile to the overlap disjunction")
	}
	if len(ranges) != 1 {
		t.Fatalf("ranges = %d, want exactly one empty interval", len(ranges))
	}
	r := ranges[0]
	if r.Field() != listing.FieldPrice || *r.Lower() != 60 || *r.Upper() != 50 {
		t.Errorf("range = %+v, want price:[60 50]", r)
	}
}

func TestCompile_TermCombinedWithFilters(t *testing.T) {
	p := Compile(mustParse(t, query.Params{Q: "botox", City: "Phoenix"}), testPolicy())
	pred := p.Predicate()
	if pred.Kind() != predicate.KindAnd {
		t.Fatalf("top = %v, want And", pred.Kind())
	}

	kinds := map[predicate.Kind]int{}
	for _, c := range pred.Children() {
		kinds[c.Kind()]++
	}
	if kinds[predicate.KindContains] != 1 || kinds[predicate.KindText] != 1 {
		t.Errorf("children kinds = %v, want one ContainsCI and one Text", kinds)
	}
}

// Compilation is total: hostile or degenerate input must never panic.
func TestCompile_Total(t *testing.T) {
	inputs := []query.Params{
		{},
		{Q: `%%__,,@@{}()|`},
		{City: "  ", MinPrice: "-1", MaxPrice: "-2"},
		{Q: "x", Limit: "999999999"},
	}
	for _, in := range inputs {
		p := Compile(mustParse(t, in), testPolicy())
		if p.Limit() < 1 || p.Limit() > testPolicy().MaxLimit {
			t.Errorf("limit %d out of bounds for %+v", p.Limit(), in)
		}
	}
}

func walk(p predicate.Predicate, visit func(predicate.Predicate)) {
	visit(p)
	for _, c := range p.Children() {
		walk(c, visit)
	}
}
