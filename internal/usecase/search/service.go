// Package search orchestrates a business search: normalize, compile,
// execute, rank, truncate, project.
package search

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/konectfeed/feedsearch/internal/domain/listing"
	"github.com/konectfeed/feedsearch/internal/domain/search/plan"
	"github.com/konectfeed/feedsearch/internal/domain/search/query"
	"github.com/konectfeed/feedsearch/internal/domain/search/strategy"
	"github.com/konectfeed/feedsearch/internal/logger"
)

// Service handles business-listing search requests. It is stateless apart
// from read-only policies and safe for concurrent use.
type Service struct {
	repo        Repository
	queryPolicy query.Policy
	planPolicy  plan.Policy
}

// New creates a search service.
func New(repo Repository, queryPolicy query.Policy, planPolicy plan.Policy) *Service {
	return &Service{repo: repo, queryPolicy: queryPolicy, planPolicy: planPolicy}
}

// WarnOnMissingCapability logs when the configured strategy expects a
// text index the store does not offer. Called once at startup.
func (s *Service) WarnOnMissingCapability(ctx context.Context) {
	if s.planPolicy.Strategy == strategy.Tokenized && !s.repo.SupportsTextSearch(ctx) {
		logger.FromContext(ctx).Warn(
			"tokenized search strategy configured but store reports no text-search capability",
		)
	}
}

// Search runs one search request end to end. Validation failures surface
// before any store call; store failures propagate as-is for the transport
// to classify.
func (s *Service) Search(ctx context.Context, params query.Params) ([]listing.Projection, error) {
	q, err := query.Parse(params, s.queryPolicy)
	if err != nil {
		return nil, err
	}

	p := plan.Compile(q, s.planPolicy)

	rows, err := s.repo.Execute(ctx, p)
	if err != nil {
		return nil, err
	}

	chain := p.Sort()
	sort.SliceStable(rows, func(i, j int) bool {
		return chain.Less(rows[i], rows[j])
	})

	if len(rows) > p.Limit() {
		rows = rows[:p.Limit()]
	}

	logger.FromContext(ctx).Debug("search executed",
		zap.String("term", q.Term()),
		zap.String("city", q.City()),
		zap.Int("limit", p.Limit()),
		zap.Int("results", len(rows)),
	)

	results := make([]listing.Projection, len(rows))
	for i, row := range rows {
		results[i] = listing.Project(row)
	}
	return results, nil
}
