package listing

import "sort"

// Facets describes the values available to the filter controls.
type Facets struct {
	Locations  []string   `json:"locations"`
	Types      []string   `json:"types"`
	PriceRange PriceRange `json:"priceRange"`
}

// BuildFacets collects distinct locations and types (sorted) and the price
// bounds of all. Empty input yields empty lists and a zero range.
func BuildFacets(all []Record) Facets {
	f := Facets{
		Locations: []string{},
		Types:     []string{},
	}
	if len(all) == 0 {
		return f
	}

	locations := make(map[string]struct{})
	types := make(map[string]struct{})
	f.PriceRange = PriceRange{Min: all[0].Price, Max: all[0].Price}

	for _, r := range all {
		if r.Location != "" {
			locations[r.Location] = struct{}{}
		}
		if r.Type != "" {
			types[r.Type] = struct{}{}
		}
		if r.Price < f.PriceRange.Min {
			f.PriceRange.Min = r.Price
		}
		if r.Price > f.PriceRange.Max {
			f.PriceRange.Max = r.Price
		}
	}

	for l := range locations {
		f.Locations = append(f.Locations, l)
	}
	for t := range types {
		f.Types = append(f.Types, t)
	}
	sort.Strings(f.Locations)
	sort.Strings(f.Types)
	return f
}
