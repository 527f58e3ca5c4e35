// Package predicate models the injection-safe boolean expression tree a
// search query compiles into.
package predicate

// Kind discriminates the predicate node variants.
type Kind int

// Predicate node kinds.
const (
	// KindAll matches every row (an And with no children).
	KindAll Kind = iota
	KindEquals
	KindContains
	KindRange
	KindText
	KindAnd
	KindOr
)

// Predicate is an immutable tagged node. Leaf nodes carry a field (or a
// field list for Text) and a value; And/Or carry children. Any pattern or
// term originating from user input is sanitized before it enters a node.
type Predicate struct {
	kind     Kind
	field    string
	fields   []string
	value    string
	lower    *float64
	upper    *float64
	children []Predicate
}

// All returns the match-everything predicate.
func All() Predicate {
	return Predicate{kind: KindAll}
}

// Equals creates an exact-match node. The value is embedded verbatim; the
// store driver escapes it for its own syntax at translation time.
func Equals(field, value string) Predicate {
	return Predicate{kind: KindEquals, field: field, value: value}
}

// ContainsCI creates a case-insensitive substring node. The pattern must
// already be sanitized (see Sanitize).
func ContainsCI(field, pattern string) Predicate {
	return Predicate{kind: KindContains, field: field, value: pattern}
}

// Range creates a numeric interval node. A nil bound is unbounded; both
// bounds are inclusive. An inverted interval (lower > upper) matches
// nothing.
func Range(field string, lower, upper *float64) Predicate {
	return Predicate{kind: KindRange, field: field, lower: lower, upper: upper}
}

// Text creates a tokenized full-text node across the given fields. The
// term must already be sanitized. Its match relevance is contributed by
// the store's text index.
func Text(fields []string, term string) Predicate {
	return Predicate{kind: KindText, fields: fields, value: term}
}

// And conjoins predicates. Zero children collapse to All, a single child
// collapses to itself.
func And(children ...Predicate) Predicate {
	return combine(KindAnd, children)
}

// Or disjoins predicates. Zero children collapse to All, a single child
// collapses to itself.
func Or(children ...Predicate) Predicate {
	return combine(KindOr, children)
}

func combine(kind Kind, children []Predicate) Predicate {
	switch len(children) {
	case 0:
		return All()
	case 1:
		return children[0]
	}
	return Predicate{kind: kind, children: children}
}

// Kind returns the node variant.
func (p Predicate) Kind() Kind { return p.kind }

// Field returns the leaf field name.
func (p Predicate) Field() string { return p.field }

// Fields returns the field list of a Text node.
func (p Predicate) Fields() []string { return p.fields }

// Value returns the match value, pattern or term.
func (p Predicate) Value() string { return p.value }

// Lower returns the inclusive lower bound of a Range node.
func (p Predicate) Lower() *float64 { return p.lower }

// Upper returns the inclusive upper bound of a Range node.
func (p Predicate) Upper() *float64 { return p.upper }

// Children returns the children of an And/Or node.
func (p Predicate) Children() []Predicate { return p.children }

// IsAll reports whether the predicate matches every row.
func (p Predicate) IsAll() bool { return p.kind == KindAll }
