package listing

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/konectfeed/feedsearch/internal/db"
	domlisting "github.com/konectfeed/feedsearch/internal/domain/listing"
	"github.com/konectfeed/feedsearch/internal/logger"
)

// parseRow maps a raw store row into a Listing. A malformed or missing
// column never fails the row: the field stays at its null marker and a
// debug log records it. Both "subcategory" and the legacy "sub_category"
// column name are accepted.
func parseRow(ctx context.Context, keyPrefix string, entry db.SearchEntry) domlisting.Listing {
	f := entry.Fields

	id := f[domlisting.FieldID]
	if id == "" {
		id = strings.TrimPrefix(entry.Key, keyPrefix)
	}

	subcategory := f[domlisting.FieldSubcategory]
	if subcategory == "" {
		subcategory = f["sub_category"]
	}

	l := domlisting.Listing{
		ID:               id,
		BusinessName:     f[domlisting.FieldBusinessName],
		Category:         f[domlisting.FieldCategory],
		Subcategory:      subcategory,
		City:             f[domlisting.FieldCity],
		State:            f[domlisting.FieldState],
		Address:          f[domlisting.FieldAddress],
		Zip:              f[domlisting.FieldZip],
		Phone:            f[domlisting.FieldPhone],
		Email:            f[domlisting.FieldEmail],
		Website:          f[domlisting.FieldWebsite],
		Rating:           parseFloatColumn(ctx, f, domlisting.FieldRating),
		ReviewCount:      parseIntColumn(ctx, f, domlisting.FieldReviewCount),
		Price:            parseFloatColumn(ctx, f, domlisting.FieldPrice),
		MinPrice:         parseFloatColumn(ctx, f, domlisting.FieldMinPrice),
		MaxPrice:         parseFloatColumn(ctx, f, domlisting.FieldMaxPrice),
		OfferTitle:       f[domlisting.FieldOfferTitle],
		OfferDescription: f[domlisting.FieldOfferDescription],
		ImageURL:         f[domlisting.FieldImageURL],
		BuyURL:           f[domlisting.FieldBuyURL],
		BookURL:          f[domlisting.FieldBookURL],
		Tags:             parseTags(f[domlisting.FieldTags]),
		Sponsored:        parseSponsored(f[domlisting.FieldSponsored]),
		Score:            parseFloatColumn(ctx, f, domlisting.FieldScore),
	}

	// Rows without a quality score fall back to the store's per-query
	// relevance when the tokenized strategy supplied one.
	if l.Score == nil && entry.Score > 0 {
		score := entry.Score
		l.Score = &score
	}

	return l
}

func parseFloatColumn(ctx context.Context, fields map[string]string, name string) *float64 {
	raw, ok := fields[name]
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.FromContext(ctx).Debug("unparseable numeric column",
			zap.String("column", name), zap.String("value", raw))
		return nil
	}
	return &v
}

func parseIntColumn(ctx context.Context, fields map[string]string, name string) *int64 {
	raw, ok := fields[name]
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// some backing schemas store counts as floats
		if fv, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
			iv := int64(fv)
			return &iv
		}
		logger.FromContext(ctx).Debug("unparseable integer column",
			zap.String("column", name), zap.String("value", raw))
		return nil
	}
	return &v
}

func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseSponsored(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes":
		return true
	}
	return false
}
