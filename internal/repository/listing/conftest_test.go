package listing

import (
	"context"
	"testing"

	"github.com/konectfeed/feedsearch/internal/db"
	"github.com/konectfeed/feedsearch/internal/domain/search/plan"
	"github.com/konectfeed/feedsearch/internal/domain/search/query"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn             func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	createIndexFn        func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn        func(ctx context.Context, name string) (bool, error)
	supportsTextSearchFn func(ctx context.Context) bool
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) SupportsTextSearch(ctx context.Context) bool {
	if m.supportsTextSearchFn != nil {
		return m.supportsTextSearchFn(ctx)
	}
	return true
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "konectfeed:listing:", 0)
	return repo, ms
}

func mustPlan(t *testing.T, params query.Params, policy plan.Policy) plan.Plan {
	t.Helper()
	q, err := query.Parse(params, query.Policy{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return plan.Compile(q, policy)
}
