package domain

// Offer represents one product listing extracted from an e-commerce site.
// Field names follow the public API shape consumed by the frontend.
type Offer struct {
	Link         string   `json:"link"`
	Price        string   `json:"price"`
	Currency     string   `json:"currency"`
	ProductName  string   `json:"productName"`
	Website      string   `json:"website"` // e.g., "Amazon", "Flipkart"
	Availability string   `json:"availability"`
	Rating       *float64 `json:"rating,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
}

// Availability values. Sites rarely expose an explicit stock signal on
// search result pages, so adapters default to AvailabilityInStock when
// none is found.
const (
	AvailabilityInStock    = "In Stock"
	AvailabilityOutOfStock = "Out of Stock"
)

// SearchRequest is the inbound search payload: a free-text product query
// and an ISO-like two-letter country code.
type SearchRequest struct {
	Country string `json:"country" binding:"required"`
	Query   string `json:"query" binding:"required"`
}
