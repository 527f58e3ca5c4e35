package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/konectfeed/feedsearch/internal/db"
	"github.com/konectfeed/feedsearch/internal/domain/search/predicate"
)

// Search runs a compiled predicate against an FT index via FT.SEARCH.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	queryStr := buildQuery(q.Predicate, q.Schema)

	args := []string{q.IndexName, queryStr}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	if q.WithScores {
		args = append(args, "WITHSCORES")
	}

	args = append(args,
		"LIMIT", "0", strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	if q.WithScores {
		return parseScoredResult(raw)
	}
	return parsePlainResult(raw)
}

// --- Result parsing ---

func parsePlainResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, total)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseScoredResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, total)
	// 3-stride: [total, key1, score1, fields1, key2, score2, fields2, ...]
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			continue
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Score:  score,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Predicate translation ---

// buildQuery translates a predicate tree into an FT.SEARCH query string.
// ContainsCI patterns and Text terms arrive pre-sanitized from the
// compiler; Equals values are escaped here since they are embedded as tag
// literals.
func buildQuery(p predicate.Predicate, schema *db.IndexDefinition) string {
	switch p.Kind() {
	case predicate.KindAll:
		return "*"

	case predicate.KindEquals:
		return fmt.Sprintf("@%s:{%s}", p.Field(), tagEscaper.Replace(p.Value()))

	case predicate.KindContains:
		if isTagField(p.Field(), schema) {
			return fmt.Sprintf("@%s:{*%s*}", p.Field(), escapeTagSpaces(p.Value()))
		}
		return fmt.Sprintf("@%s:(*%s*)", p.Field(), p.Value())

	case predicate.KindRange:
		return buildNumericClause(p)

	case predicate.KindText:
		return fmt.Sprintf("@%s:(%s)", strings.Join(p.Fields(), "|"), p.Value())

	case predicate.KindAnd:
		return buildGroup(p.Children(), schema, " ")

	case predicate.KindOr:
		return buildGroup(p.Children(), schema, " | ")
	}
	return "*"
}

func buildGroup(children []predicate.Predicate, schema *db.IndexDefinition, sep string) string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		parts = append(parts, buildQuery(c, schema))
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func buildNumericClause(p predicate.Predicate) string {
	lower := "-inf"
	upper := "+inf"
	if p.Lower() != nil {
		lower = formatBound(*p.Lower())
	}
	if p.Upper() != nil {
		upper = formatBound(*p.Upper())
	}
	return fmt.Sprintf("@%s:[%s %s]", p.Field(), lower, upper)
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// escapeTagSpaces escapes spaces in pre-sanitized contains patterns. The
// sanitizer leaves spaces alone so tokenized terms stay splittable, but
// inside a TAG clause an unescaped space ends the value.
func escapeTagSpaces(v string) string {
	return strings.ReplaceAll(v, " ", "\\ ")
}

func isTagField(name string, schema *db.IndexDefinition) bool {
	f, ok := schema.Field(name)
	return ok && f.Type == db.IndexFieldTag
}

// tagEscaper escapes FT tag syntax in exact-match values.
var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)
