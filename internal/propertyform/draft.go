// Package propertyform models the listing editor: a draft of typed string
// inputs, a pure reducer over edit events, category-dependent field rules,
// validation, and the submit lifecycle.
package propertyform

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/estately/backend/internal/models"
)

// Draft is the in-progress listing. Field values are kept exactly as typed;
// numeric interpretation happens on validation and conversion.
type Draft struct {
	PropertyID    string             `json:"propertyId,omitempty"`
	Category      Category           `json:"category"`
	Amenities     []string           `json:"amenities"`
	Location      models.Location    `json:"location"`
	FeaturedImage *models.MediaFile  `json:"featuredImage,omitempty"`
	MediaFiles    []models.MediaFile `json:"mediaFiles"`
	Featured      bool               `json:"featured"`
	values        map[Field]string
}

// NewDraft returns an empty draft in the plot category.
func NewDraft() Draft {
	return Draft{Category: Plot, values: make(map[Field]string)}
}

// Value returns the typed text of f, or "" when unset.
func (d Draft) Value(f Field) string {
	return d.values[f]
}

// Values returns the set fields keyed by wire name.
func (d Draft) Values() map[string]string {
	out := make(map[string]string, len(d.values))
	for f, v := range d.values {
		out[string(f)] = v
	}
	return out
}

// MarshalJSON includes the typed field values under "fields".
func (d Draft) MarshalJSON() ([]byte, error) {
	type plain Draft
	return json.Marshal(struct {
		plain
		Fields map[string]string `json:"fields"`
	}{plain(d), d.Values()})
}

// HasAmenity reports whether id is selected.
func (d Draft) HasAmenity(id string) bool {
	for _, a := range d.Amenities {
		if a == id {
			return true
		}
	}
	return false
}

func (d *Draft) set(f Field, v string) {
	if d.values == nil {
		d.values = make(map[Field]string)
	}
	if v == "" {
		delete(d.values, f)
		return
	}
	d.values[f] = v
}

func (d Draft) clone() Draft {
	out := d
	out.values = make(map[Field]string, len(d.values))
	for f, v := range d.values {
		out.values[f] = v
	}
	if d.Amenities != nil {
		out.Amenities = append([]string(nil), d.Amenities...)
	}
	if d.MediaFiles != nil {
		out.MediaFiles = append([]models.MediaFile(nil), d.MediaFiles...)
	}
	if d.FeaturedImage != nil {
		img := *d.FeaturedImage
		out.FeaturedImage = &img
	}
	return out
}

// FromProperty hydrates a draft for editing an existing listing.
func FromProperty(p *models.Property) Draft {
	d := NewDraft()
	d.PropertyID = p.ID
	if c := Category(p.Category); c.Valid() {
		d.Category = c
	}
	d.set(FieldTitle, p.Title)
	d.set(FieldDescription, p.Description)
	d.set(FieldPrice, formatNumber(p.Price))
	d.set(FieldSqft, formatFloatPtr(p.Sqft))
	d.set(FieldAnkanam, formatFloatPtr(p.Ankanam))
	d.set(FieldAcres, formatFloatPtr(p.Acres))
	d.set(FieldCarpetArea, formatFloatPtr(p.CarpetArea))
	d.set(FieldBedrooms, formatIntPtr(p.Bedrooms))
	d.set(FieldBathrooms, formatIntPtr(p.Bathrooms))
	d.set(FieldFloors, formatIntPtr(p.Floors))
	d.set(FieldTotalFloors, formatIntPtr(p.TotalFloors))
	d.set(FieldBalconies, formatIntPtr(p.Balconies))
	d.set(FieldYearBuilt, formatIntPtr(p.YearBuilt))
	d.set(FieldFacing, p.Facing)
	d.set(FieldFurnishing, p.Furnishing)
	d.set(FieldWaterSupply, p.WaterSupply)
	if p.Lift != nil {
		if *p.Lift {
			d.set(FieldLift, "yes")
		} else {
			d.set(FieldLift, "no")
		}
	}
	d.Location = p.Location
	d.Featured = p.Featured
	if len(p.Amenities) > 0 {
		d.Amenities = append([]string(nil), p.Amenities...)
	}
	if len(p.MediaFiles) > 0 {
		d.MediaFiles = append([]models.MediaFile(nil), p.MediaFiles...)
	}
	if p.FeaturedImage != nil {
		img := *p.FeaturedImage
		d.FeaturedImage = &img
	}
	d.recomputePricePerSqft()
	return d
}

// Input converts the draft into the persistence payload. Only the detail
// fields of the active category are carried.
func (d Draft) Input() *models.PropertyInput {
	in := &models.PropertyInput{
		Title:         strings.TrimSpace(d.values[FieldTitle]),
		Description:   strings.TrimSpace(d.values[FieldDescription]),
		Category:      string(d.Category),
		Location:      d.Location,
		Amenities:     append([]string{}, d.Amenities...),
		FeaturedImage: d.FeaturedImage,
		MediaFiles:    append([]models.MediaFile{}, d.MediaFiles...),
		Featured:      d.Featured,
	}
	if price, ok := parseAmount(d.values[FieldPrice]); ok {
		in.Price = price
	}

	switch det := d.Details().(type) {
	case PlotDetails:
		in.Sqft, in.Ankanam, in.PricePerSqft = det.Sqft, det.Ankanam, det.PricePerSqft
		in.Facing = det.Facing
	case HouseDetails:
		in.Sqft, in.PricePerSqft, in.CarpetArea = det.Sqft, det.PricePerSqft, det.CarpetArea
		in.Bedrooms, in.Bathrooms, in.Floors = det.Bedrooms, det.Bathrooms, det.Floors
		in.Facing, in.Furnishing, in.WaterSupply = det.Facing, det.Furnishing, det.WaterSupply
		in.YearBuilt = det.YearBuilt
	case ApartmentDetails:
		in.Sqft, in.PricePerSqft, in.CarpetArea = det.Sqft, det.PricePerSqft, det.CarpetArea
		in.Bedrooms, in.Bathrooms = det.Bedrooms, det.Bathrooms
		in.TotalFloors, in.Balconies, in.Lift = det.TotalFloors, det.Balconies, det.Lift
		in.Facing, in.Furnishing, in.WaterSupply = det.Facing, det.Furnishing, det.WaterSupply
		in.YearBuilt = det.YearBuilt
	case LandDetails:
		in.Acres, in.Ankanam = det.Acres, det.Ankanam
		in.Facing, in.WaterSupply = det.Facing, det.WaterSupply
	}
	return in
}

func (d Draft) floatValue(f Field) *float64 {
	v, ok := parseAmount(d.values[f])
	if !ok {
		return nil
	}
	return &v
}

func (d Draft) intValue(f Field) *int {
	v, ok := parseAmount(d.values[f])
	if !ok {
		return nil
	}
	n := int(math.Round(v))
	return &n
}

func (d Draft) boolValue(f Field) *bool {
	var b bool
	switch strings.ToLower(strings.TrimSpace(d.values[f])) {
	case "yes", "true", "1":
		b = true
	case "no", "false", "0":
		b = false
	default:
		return nil
	}
	return &b
}

func (d Draft) text(f Field) string {
	return strings.TrimSpace(d.values[f])
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNumber(*v)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
