package feedsearch

import (
	"context"
	"fmt"

	"github.com/konectfeed/feedsearch/internal/domain/listing"
	"github.com/konectfeed/feedsearch/internal/domain/search/query"
	"github.com/konectfeed/feedsearch/internal/logger"
)

// SearchParams are the raw search parameters. Every field is an optional
// string, exactly as they arrive on the wire; the core normalizes and
// validates them.
type SearchParams struct {
	Q           string
	City        string
	Category    string
	Subcategory string
	MinPrice    string
	MaxPrice    string
	Limit       string
}

// Business is a single search hit in the canonical output shape. Optional
// fields are nil when the backing row does not populate them.
type Business struct {
	ID               string
	BusinessName     *string
	Category         *string
	Subcategory      *string
	City             *string
	State            *string
	Address          *string
	Zip              *string
	Phone            *string
	Email            *string
	Website          *string
	Rating           *float64
	ReviewCount      *int64
	Price            *float64
	MinPrice         *float64
	MaxPrice         *float64
	OfferTitle       *string
	OfferDescription *string
	ImageURL         *string
	BuyURL           *string
	BookURL          *string
	Tags             []string
	Sponsored        bool
	Score            *float64
}

// SearchBusinesses runs one search request against the store. The
// client's logger rides the context, so core debug logs carry through.
func (c *Client) SearchBusinesses(ctx context.Context, params SearchParams) ([]Business, error) {
	results, err := c.searchSvc.Search(logger.ContextWithLogger(ctx, c.log), query.Params{
		Q:           params.Q,
		City:        params.City,
		Category:    params.Category,
		Subcategory: params.Subcategory,
		MinPrice:    params.MinPrice,
		MaxPrice:    params.MaxPrice,
		Limit:       params.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search businesses: %w", err)
	}
	return fromProjections(results), nil
}

func fromProjections(results []listing.Projection) []Business {
	out := make([]Business, len(results))
	for i := range results {
		p := &results[i]
		out[i] = Business{
			ID:               p.ID,
			BusinessName:     p.BusinessName,
			Category:         p.Category,
			Subcategory:      p.Subcategory,
			City:             p.City,
			State:            p.State,
			Address:          p.Address,
			Zip:              p.Zip,
			Phone:            p.Phone,
			Email:            p.Email,
			Website:          p.Website,
			Rating:           p.Rating,
			ReviewCount:      p.ReviewCount,
			Price:            p.Price,
			MinPrice:         p.MinPrice,
			MaxPrice:         p.MaxPrice,
			OfferTitle:       p.OfferTitle,
			OfferDescription: p.OfferDescription,
			ImageURL:         p.ImageURL,
			BuyURL:           p.BuyURL,
			BookURL:          p.BookURL,
			Tags:             p.Tags,
			Sponsored:        p.Sponsored,
			Score:            p.Score,
		}
	}
	return out
}
