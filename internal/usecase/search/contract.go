package search

import (
	"context"

	"github.com/konectfeed/feedsearch/internal/domain/listing"
	"github.com/konectfeed/feedsearch/internal/domain/search/plan"
)

// Repository defines the data-source contract for search: one call per
// request, no streaming, no retries.
type Repository interface {
	Execute(ctx context.Context, p plan.Plan) ([]listing.Listing, error)
	SupportsTextSearch(ctx context.Context) bool
}
