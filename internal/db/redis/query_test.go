package redis

import (
	"strings"
	"testing"

	"github.com/konectfeed/feedsearch/internal/db"
	"github.com/konectfeed/feedsearch/internal/domain/search/predicate"
)

func testSchema() *db.IndexDefinition {
	return db.NewIndex("listings:idx").
		Tag("city").
		Tag("category").
		TagWithOpts("tags", ",", false).
		Text("business_name").
		Text("search_text").
		Numeric("price").
		Numeric("min_price").
		MustBuild()
}

func TestBuildQuery_All(t *testing.T) {
	if got := buildQuery(predicate.All(), testSchema()); got != "*" {
		t.Errorf("buildQuery(All) = %q, want *", got)
	}
}

func TestBuildQuery_Equals(t *testing.T) {
	got := buildQuery(predicate.Equals("city", "Phoenix"), testSchema())
	if got != "@city:{Phoenix}" {
		t.Errorf("buildQuery = %q", got)
	}
}

func TestBuildQuery_EqualsEscapesTagSyntax(t *testing.T) {
	got := buildQuery(predicate.Equals("city", "San Tan Valley, AZ"), testSchema())
	if strings.Contains(got, ", ") || !strings.Contains(got, `\,`) || !strings.Contains(got, `\ `) {
		t.Errorf("buildQuery = %q, tag value not escaped", got)
	}
}

func TestBuildQuery_ContainsOnTagField(t *testing.T) {
	got := buildQuery(predicate.ContainsCI("city", "phoenix"), testSchema())
	if got != "@city:{*phoenix*}" {
		t.Errorf("buildQuery = %q", got)
	}
}

func TestBuildQuery_ContainsOnTagFieldEscapesSpaces(t *testing.T) {
	got := buildQuery(predicate.ContainsCI("city", predicate.Sanitize("new york")), testSchema())
	if got != `@city:{*new\ york*}` {
		t.Errorf("buildQuery = %q, unescaped space would end the tag value", got)
	}
}

func TestBuildQuery_ContainsOnTextField(t *testing.T) {
	got := buildQuery(predicate.ContainsCI("business_name", "glow"), testSchema())
	if got != "@business_name:(*glow*)" {
		t.Errorf("buildQuery = %q", got)
	}
}

func TestBuildQuery_Range(t *testing.T) {
	lo, hi := 10.0, 50.0

	tests := []struct {
		name string
		pred predicate.Predicate
		want string
	}{
		{"closed", predicate.Range("price", &lo, &hi), "@price:[10 50]"},
		{"open lower", predicate.Range("price", nil, &hi), "@price:[-inf 50]"},
		{"open upper", predicate.Range("price", &lo, nil), "@price:[10 +inf]"},
		{"inverted", predicate.Range("price", &hi, &lo), "@price:[50 10]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildQuery(tc.pred, testSchema()); got != tc.want {
				t.Errorf("buildQuery = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildQuery_Text(t *testing.T) {
	got := buildQuery(predicate.Text([]string{"search_text"}, "botox clinic"), testSchema())
	if got != "@search_text:(botox clinic)" {
		t.Errorf("buildQuery = %q", got)
	}
}

func TestBuildQuery_TextMultiField(t *testing.T) {
	got := buildQuery(predicate.Text([]string{"business_name", "search_text"}, "spa"), testSchema())
	if got != "@business_name|search_text:(spa)" {
		t.Errorf("buildQuery = %q", got)
	}
}

func TestBuildQuery_AndOrComposition(t *testing.T) {
	lo := 20.0
	p := predicate.And(
		predicate.ContainsCI("city", "phoenix"),
		predicate.Or(
			predicate.Range("price", &lo, nil),
			predicate.Range("min_price", &lo, nil),
		),
	)
	got := buildQuery(p, testSchema())
	want := "(@city:{*phoenix*} (@price:[20 +inf] | @min_price:[20 +inf]))"
	if got != want {
		t.Errorf("buildQuery = %q, want %q", got, want)
	}
}

// A sanitized hostile term must stay inside its clause: the translated
// query may never gain extra field markers or group separators.
func TestBuildQuery_SanitizedTermCannotEscapeClause(t *testing.T) {
	term := predicate.Sanitize(`x) | @city:{Tempe}`)
	got := buildQuery(predicate.Text([]string{"search_text"}, term), testSchema())

	if strings.Count(got, "@") != 1+strings.Count(got, `\@`) {
		t.Errorf("unescaped field marker leaked into %q", got)
	}
	if !strings.HasPrefix(got, "@search_text:(") || !strings.HasSuffix(got, ")") {
		t.Errorf("clause shape broken: %q", got)
	}
}
