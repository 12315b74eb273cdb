// Package listing filters and orders property records for the browse view.
//
// Everything here is a pure function over in-memory records: no I/O, and the
// caller's slice is never reordered or modified.
package listing

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// SortKey selects the output ordering.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// AnyValue disables the location and type filters.
const AnyValue = "all"

// ParseSortKey maps a query value to a SortKey. Empty input means newest.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.TrimSpace(s)) {
	case "", SortNewest:
		return SortNewest, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Record is the read model the engine works on.
type Record struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Beds        int       `json:"beds"`
	Baths       int       `json:"baths"`
	Sqft        float64   `json:"sqft"`
	Featured    bool      `json:"featured"`
	ListedDate  time.Time `json:"listedDate"`
}

// PriceRange is an inclusive price bound.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Criteria is the set of user-selected filters and the sort order.
type Criteria struct {
	PriceRange   PriceRange `json:"priceRange"`
	Location     string     `json:"location"`
	PropertyType string     `json:"propertyType"`
	MinBeds      int        `json:"minBeds"`
	MinBaths     int        `json:"minBaths"`
	SearchText   string     `json:"searchText"`
	Sort         SortKey    `json:"sortKey"`
}

// DefaultCriteria matches every record and sorts newest first.
func DefaultCriteria() Criteria {
	return Criteria{
		PriceRange:   PriceRange{Min: 0, Max: math.MaxFloat64},
		Location:     AnyValue,
		PropertyType: AnyValue,
		Sort:         SortNewest,
	}
}

// ComputeVisible returns the records matching c, ordered by c.Sort.
// An inverted price range matches nothing.
func ComputeVisible(all []Record, c Criteria) []Record {
	visible := make([]Record, 0, len(all))
	if c.PriceRange.Min > c.PriceRange.Max {
		return visible
	}

	query := strings.ToLower(strings.TrimSpace(c.SearchText))
	for _, r := range all {
		if query != "" && !matchesText(r, query) {
			continue
		}
		if r.Price < c.PriceRange.Min || r.Price > c.PriceRange.Max {
			continue
		}
		if isSet(c.Location) && r.Location != c.Location {
			continue
		}
		if isSet(c.PropertyType) && r.Type != c.PropertyType {
			continue
		}
		if r.Beds < c.MinBeds || r.Baths < c.MinBaths {
			continue
		}
		visible = append(visible, r)
	}

	sortRecords(visible, c.Sort)
	return visible
}

func matchesText(r Record, query string) bool {
	return strings.Contains(strings.ToLower(r.Title), query) ||
		strings.Contains(strings.ToLower(r.Location), query) ||
		strings.Contains(strings.ToLower(r.Description), query)
}

func isSet(v string) bool {
	return v != "" && v != AnyValue
}

func sortRecords(records []Record, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Price < records[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Price > records[j].Price
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ListedDate.After(records[j].ListedDate)
		})
	}
}
