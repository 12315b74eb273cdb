package models

import (
	"strings"
	"time"
)

// Property categories.
const (
	CategoryPlot      = "plot"
	CategoryHouse     = "house"
	CategoryApartment = "apartment"
	CategoryLand      = "land"
)

// PropertyCategories lists the categories in display order.
var PropertyCategories = []string{
	CategoryPlot,
	CategoryHouse,
	CategoryApartment,
	CategoryLand,
}

// IsValidCategory reports whether c names a known property category.
func IsValidCategory(c string) bool {
	for _, known := range PropertyCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Location is the structured address of a listing.
type Location struct {
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Country string `json:"country" bson:"country"`
	Pincode string `json:"pincode" bson:"pincode"`
}

// PropertyDetails holds the category-conditional attributes. Only the fields
// meaningful to a listing's category are set.
type PropertyDetails struct {
	Sqft         *float64 `json:"sqft,omitempty" bson:"sqft,omitempty"`
	Ankanam      *float64 `json:"ankanam,omitempty" bson:"ankanam,omitempty"`
	PricePerSqft *float64 `json:"pricePerSqft,omitempty" bson:"price_per_sqft,omitempty"`
	Acres        *float64 `json:"acres,omitempty" bson:"acres,omitempty"`
	CarpetArea   *float64 `json:"carpetArea,omitempty" bson:"carpet_area,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty" bson:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	Floors       *int     `json:"floors,omitempty" bson:"floors,omitempty"`
	TotalFloors  *int     `json:"totalFloors,omitempty" bson:"total_floors,omitempty"`
	Balconies    *int     `json:"balconies,omitempty" bson:"balconies,omitempty"`
	Lift         *bool    `json:"lift,omitempty" bson:"lift,omitempty"`
	Facing       string   `json:"facing,omitempty" bson:"facing,omitempty"`
	Furnishing   string   `json:"furnishing,omitempty" bson:"furnishing,omitempty"`
	WaterSupply  string   `json:"waterSupply,omitempty" bson:"water_supply,omitempty"`
	YearBuilt    *int     `json:"yearBuilt,omitempty" bson:"year_built,omitempty"`
}

// Property is a persisted listing.
type Property struct {
	ID            string      `json:"id" bson:"_id"`
	Title         string      `json:"title" bson:"title"`
	Description   string      `json:"description" bson:"description"`
	Category      string      `json:"category" bson:"category"`
	Price         float64     `json:"price" bson:"price"`
	Location      Location    `json:"location" bson:"location"`
	Amenities     []string    `json:"amenities" bson:"amenities"`
	FeaturedImage *MediaFile  `json:"featuredImage,omitempty" bson:"featured_image,omitempty"`
	MediaFiles    []MediaFile `json:"mediaFiles" bson:"media_files"`
	Featured      bool        `json:"featured" bson:"featured"`
	CreatedBy     string      `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	CreatedAt     time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" bson:"updated_at"`

	PropertyDetails `bson:",inline"`
}

// PropertyInput is the create/update payload. YearBuilt accepts any date-like
// string; the service keeps only the four-digit year.
type PropertyInput struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Category      string      `json:"category"`
	Price         float64     `json:"price"`
	Location      Location    `json:"location"`
	Amenities     []string    `json:"amenities"`
	FeaturedImage *MediaFile  `json:"featuredImage,omitempty"`
	MediaFiles    []MediaFile `json:"mediaFiles"`
	Featured      bool        `json:"featured"`

	Sqft         *float64 `json:"sqft,omitempty"`
	Ankanam      *float64 `json:"ankanam,omitempty"`
	PricePerSqft *float64 `json:"pricePerSqft,omitempty"`
	Acres        *float64 `json:"acres,omitempty"`
	CarpetArea   *float64 `json:"carpetArea,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	Floors       *int     `json:"floors,omitempty"`
	TotalFloors  *int     `json:"totalFloors,omitempty"`
	Balconies    *int     `json:"balconies,omitempty"`
	Lift         *bool    `json:"lift,omitempty"`
	Facing       string   `json:"facing,omitempty"`
	Furnishing   string   `json:"furnishing,omitempty"`
	WaterSupply  string   `json:"waterSupply,omitempty"`
	YearBuilt    string   `json:"yearBuilt,omitempty"`
}

func (r *PropertyInput) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		errors["title"] = "Title is required"
	}
	if strings.TrimSpace(r.Description) == "" {
		errors["description"] = "Description is required"
	}
	if !IsValidCategory(r.Category) {
		errors["category"] = "Category must be one of plot, house, apartment, land"
	}
	if r.Price < 0 {
		errors["price"] = "Price cannot be negative"
	}

	return errors
}

// SetFeaturedRequest toggles the featured flag of a listing.
type SetFeaturedRequest struct {
	Featured bool `json:"featured"`
}
