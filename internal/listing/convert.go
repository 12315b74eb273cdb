package listing

import (
	"math"
	"strings"

	"github.com/estately/backend/internal/models"
)

// FromProperty projects a stored property onto the engine's read model.
// The location is the city, or the street address when no city was given.
func FromProperty(p *models.Property) Record {
	loc := strings.TrimSpace(p.Location.City)
	if loc == "" {
		loc = strings.TrimSpace(p.Location.Address)
	}

	r := Record{
		ID:          p.ID,
		Title:       p.Title,
		Location:    loc,
		Type:        p.Category,
		Description: p.Description,
		Price:       math.Max(p.Price, 0),
		Featured:    p.Featured,
		ListedDate:  p.CreatedAt,
	}
	if p.Bedrooms != nil && *p.Bedrooms > 0 {
		r.Beds = *p.Bedrooms
	}
	if p.Bathrooms != nil && *p.Bathrooms > 0 {
		r.Baths = *p.Bathrooms
	}
	if p.Sqft != nil && *p.Sqft > 0 {
		r.Sqft = *p.Sqft
	}
	return r
}

func FromProperties(props []*models.Property) []Record {
	out := make([]Record, 0, len(props))
	for _, p := range props {
		if p == nil {
			continue
		}
		out = append(out, FromProperty(p))
	}
	return out
}
