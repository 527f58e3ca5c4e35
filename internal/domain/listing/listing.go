// Package listing defines the business-listing record and its canonical
// public projection.
package listing

// Backing-store column names. The FT index, the predicate translation and
// the row parser all agree on these.
const (
	FieldID               = "id"
	FieldBusinessName     = "business_name"
	FieldCategory         = "category"
	FieldSubcategory      = "subcategory"
	FieldCity             = "city"
	FieldState            = "state"
	FieldAddress          = "address"
	FieldZip              = "zip"
	FieldPhone            = "phone"
	FieldEmail            = "email"
	FieldWebsite          = "website"
	FieldRating           = "rating"
	FieldReviewCount      = "review_count"
	FieldPrice            = "price"
	FieldMinPrice         = "min_price"
	FieldMaxPrice         = "max_price"
	FieldOfferTitle       = "offer_title"
	FieldOfferDescription = "offer_description"
	FieldImageURL         = "image_url"
	FieldBuyURL           = "buy_url"
	FieldBookURL          = "book_url"
	FieldTags             = "tags"
	FieldSponsored        = "sponsored"
	FieldScore            = "score"
	// FieldSearchText is the precomputed concatenation of all searchable
	// text (name, categories, city, offer text, tags) written at ingestion
	// time. It backs the tokenized text-search strategy.
	FieldSearchText = "search_text"
)

// Listing is a single business record as read from the store. Numeric
// fields are pointers: nil means the column was absent or unparseable.
// The search core never mutates a Listing.
type Listing struct {
	ID               string
	BusinessName     string
	Category         string
	Subcategory      string
	City             string
	State            string
	Address          string
	Zip              string
	Phone            string
	Email            string
	Website          string
	Rating           *float64
	ReviewCount      *int64
	Price            *float64
	MinPrice         *float64
	MaxPrice         *float64
	OfferTitle       string
	OfferDescription string
	ImageURL         string
	BuyURL           string
	BookURL          string
	Tags             []string
	Sponsored        bool
	Score            *float64
}
