package models

import "math"

// OffersPerPage is the fixed page size of offer searches.
const OffersPerPage = 2

// Sort orders accepted by offer searches.
const (
	SortNone      = ""
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// OfferFilter holds the optional search criteria for offers.
type OfferFilter struct {
	// Title matches offers whose title contains it, case-insensitively.
	Title string

	// PriceMin is the inclusive lower price bound (0 when unset).
	PriceMin float64

	// PriceMax is the inclusive upper price bound; nil means unbounded.
	PriceMax *float64

	// Sort is one of SortNone, SortPriceAsc, SortPriceDesc.
	Sort string

	// Page is the requested 1-based page number.
	Page int
}

// OfferQuery is a resolved page request handed to the store.
type OfferQuery struct {
	OfferFilter
	Limit  uint64
	Offset uint64
}

// OffersPage is the result of an offer search.
type OffersPage struct {
	// Count is the number of offers on this page.
	Count int `json:"count"`

	// Offers are the offers on this page, owners populated.
	Offers []Offer `json:"offers"`

	// Total is the number of offers matching the filter across all pages.
	Total int `json:"total"`

	// Page is the page actually returned after clamping.
	Page int `json:"page"`

	// Pages is the total number of pages, at least 1.
	Pages int `json:"pages"`
}

// TotalPages returns max(1, ceil(total/perPage)).
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(float64(total)/float64(perPage))))
}

// ClampPage returns page clamped to [1, pages].
func ClampPage(page, pages int) int {
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return page
}
