package listing

// Projection is the stable public output shape of a listing. The field set
// is fixed: optional values serialize as explicit nulls, never omitted
// keys, so the response shape is identical across rows and backing-schema
// variants.
type Projection struct {
	ID               string   `json:"id"`
	BusinessName     *string  `json:"business_name"`
	Category         *string  `json:"category"`
	Subcategory      *string  `json:"subcategory"`
	City             *string  `json:"city"`
	State            *string  `json:"state"`
	Address          *string  `json:"address"`
	Zip              *string  `json:"zip"`
	Phone            *string  `json:"phone"`
	Email            *string  `json:"email"`
	Website          *string  `json:"website"`
	Rating           *float64 `json:"rating"`
	ReviewCount      *int64   `json:"review_count"`
	Price            *float64 `json:"price"`
	MinPrice         *float64 `json:"min_price"`
	MaxPrice         *float64 `json:"max_price"`
	OfferTitle       *string  `json:"offer_title"`
	OfferDescription *string  `json:"offer_description"`
	ImageURL         *string  `json:"image_url"`
	BuyURL           *string  `json:"buy_url"`
	BookURL          *string  `json:"book_url"`
	Tags             []string `json:"tags"`
	Sponsored        bool     `json:"sponsored"`
	Score            *float64 `json:"score"`
}

// Project maps a Listing into the canonical output shape. Empty string
// columns become nulls; the tags set is always an array.
func Project(l Listing) Projection {
	tags := l.Tags
	if tags == nil {
		tags = []string{}
	}
	return Projection{
		ID:               l.ID,
		BusinessName:     optString(l.BusinessName),
		Category:         optString(l.Category),
		Subcategory:      optString(l.Subcategory),
		City:             optString(l.City),
		State:            optString(l.State),
		Address:          optString(l.Address),
		Zip:              optString(l.Zip),
		Phone:            optString(l.Phone),
		Email:            optString(l.Email),
		Website:          optString(l.Website),
		Rating:           l.Rating,
		ReviewCount:      l.ReviewCount,
		Price:            l.Price,
		MinPrice:         l.MinPrice,
		MaxPrice:         l.MaxPrice,
		OfferTitle:       optString(l.OfferTitle),
		OfferDescription: optString(l.OfferDescription),
		ImageURL:         optString(l.ImageURL),
		BuyURL:           optString(l.BuyURL),
		BookURL:          optString(l.BookURL),
		Tags:             tags,
		Sponsored:        l.Sponsored,
		Score:            l.Score,
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
