package listing

import "testing"

func TestBuildFacets(t *testing.T) {
	records := []Record{
		{Location: "Vizag", Type: "house", Price: 300},
		{Location: "Guntur", Type: "plot", Price: 50},
		{Location: "Vizag", Type: "plot", Price: 120},
		{Location: "", Type: "", Price: 80},
	}

	f := BuildFacets(records)

	if !equalStrings(f.Locations, []string{"Guntur", "Vizag"}) {
		t.Errorf("locations = %v", f.Locations)
	}
	if !equalStrings(f.Types, []string{"house", "plot"}) {
		t.Errorf("types = %v", f.Types)
	}
	if f.PriceRange.Min != 50 || f.PriceRange.Max != 300 {
		t.Errorf("price range = %+v", f.PriceRange)
	}
}

func TestBuildFacetsEmpty(t *testing.T) {
	f := BuildFacets(nil)
	if len(f.Locations) != 0 || len(f.Types) != 0 {
		t.Errorf("got %+v, want empty", f)
	}
	if f.PriceRange != (PriceRange{}) {
		t.Errorf("price range = %+v, want zero", f.PriceRange)
	}
}
