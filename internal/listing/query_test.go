package listing

import (
	"math"
	"net/url"
	"testing"
)

func TestParseQuery(t *testing.T) {
	q := url.Values{
		"q":        {" villa "},
		"minPrice": {"1000"},
		"maxPrice": {"5000.5"},
		"location": {"Vizag"},
		"type":     {"house"},
		"minBeds":  {"2"},
		"minBaths": {"1"},
		"sort":     {"price-desc"},
	}
	c, errs := ParseQuery(q)
	if len(errs) != 0 {
		t.Fatalf("errs = %v", errs)
	}
	want := Criteria{
		PriceRange:   PriceRange{Min: 1000, Max: 5000.5},
		Location:     "Vizag",
		PropertyType: "house",
		MinBeds:      2,
		MinBaths:     1,
		SearchText:   "villa",
		Sort:         SortPriceDesc,
	}
	if c != want {
		t.Errorf("criteria = %+v\nwant %+v", c, want)
	}
}

func TestParseQueryDefaults(t *testing.T) {
	c, errs := ParseQuery(url.Values{})
	if len(errs) != 0 || c != DefaultCriteria() {
		t.Errorf("ParseQuery(empty) = %+v, %v", c, errs)
	}
	if c.PriceRange.Max != math.MaxFloat64 {
		t.Errorf("max = %v", c.PriceRange.Max)
	}
}

func TestParseQueryErrors(t *testing.T) {
	q := url.Values{
		"minPrice": {"cheap"},
		"maxPrice": {"-1"},
		"minBeds":  {"1.5"},
		"minBaths": {"-2"},
		"sort":     {"oldest"},
	}
	_, errs := ParseQuery(q)
	for _, key := range []string{"minPrice", "maxPrice", "minBeds", "minBaths", "sort"} {
		if _, ok := errs[key]; !ok {
			t.Errorf("missing error for %s: %v", key, errs)
		}
	}
}
