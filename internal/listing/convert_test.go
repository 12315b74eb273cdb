package listing

import (
	"testing"
	"time"

	"github.com/estately/backend/internal/models"
)

func TestFromProperty(t *testing.T) {
	beds, baths, sqft := 3, 2, 1450.0
	listed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	p := &models.Property{
		ID:          "p1",
		Title:       "Lake Villa",
		Description: "Quiet street",
		Category:    models.CategoryHouse,
		Price:       7500000,
		Location:    models.Location{Address: "12 Lake Rd", City: "Vizag"},
		Featured:    true,
		CreatedAt:   listed,
	}
	p.Bedrooms, p.Bathrooms, p.Sqft = &beds, &baths, &sqft

	got := FromProperty(p)
	want := Record{
		ID: "p1", Title: "Lake Villa", Location: "Vizag", Type: "house",
		Description: "Quiet street", Price: 7500000, Beds: 3, Baths: 2, Sqft: 1450,
		Featured: true, ListedDate: listed,
	}
	if got != want {
		t.Errorf("FromProperty = %+v\nwant %+v", got, want)
	}
}

func TestFromPropertyFallbacks(t *testing.T) {
	p := &models.Property{ID: "p2", Category: models.CategoryPlot, Location: models.Location{Address: "Survey 42"}}

	got := FromProperty(p)
	if got.Location != "Survey 42" {
		t.Errorf("location = %q", got.Location)
	}
	if got.Beds != 0 || got.Baths != 0 || got.Sqft != 0 {
		t.Errorf("unset details should be zero: %+v", got)
	}

	records := FromProperties([]*models.Property{p, nil})
	if len(records) != 1 {
		t.Errorf("FromProperties len = %d", len(records))
	}
}
