package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/propertyform"
)

var ErrInvalidYearBuilt = errors.New("yearBuilt must contain a four-digit year")

var yearPattern = regexp.MustCompile(`\b(1[0-9]{3}|2[0-9]{3})\b`)

var yearLayouts = []string{
	"2006",
	"2006-01-02",
	"2006-01",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2006",
}

// DeriveYearBuilt extracts the four-digit year from a date-like value.
// Blank input yields nil.
func DeriveYearBuilt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range yearLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y := t.Year()
			return &y, nil
		}
	}
	if m := yearPattern.FindString(raw); m != "" {
		y, _ := strconv.Atoi(m)
		return &y, nil
	}
	return nil, ErrInvalidYearBuilt
}

// normalizeEnum title-cases free-form enum values: "NORTH-east" -> "North-East".
func normalizeEnum(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(s))
}

// applyInput copies a create/update payload onto p, normalising enum casing
// and deriving yearBuilt and pricePerSqft.
func applyInput(p *models.Property, in *models.PropertyInput, now time.Time) error {
	year, err := DeriveYearBuilt(in.YearBuilt)
	if err != nil {
		return err
	}

	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.Category = strings.ToLower(strings.TrimSpace(in.Category))
	p.Price = in.Price
	p.Location = in.Location
	p.Amenities = dedupe(in.Amenities)
	p.FeaturedImage = in.FeaturedImage
	p.MediaFiles = append([]models.MediaFile{}, in.MediaFiles...)
	p.Featured = in.Featured
	p.UpdatedAt = now

	p.PropertyDetails = models.PropertyDetails{
		Sqft:        in.Sqft,
		Ankanam:     in.Ankanam,
		Acres:       in.Acres,
		CarpetArea:  in.CarpetArea,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Floors:      in.Floors,
		TotalFloors: in.TotalFloors,
		Balconies:   in.Balconies,
		Lift:        in.Lift,
		Facing:      normalizeEnum(in.Facing),
		Furnishing:  normalizeEnum(in.Furnishing),
		WaterSupply: normalizeEnum(in.WaterSupply),
		YearBuilt:   year,
	}

	// Client-supplied pricePerSqft is never trusted.
	if in.Sqft != nil {
		if pps, ok := propertyform.PricePerSqft(in.Price, *in.Sqft); ok {
			p.PricePerSqft = &pps
		}
	}
	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
