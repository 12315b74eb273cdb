package propertyform

// Details is the category-specific projection of a draft. Exactly one of
// PlotDetails, HouseDetails, ApartmentDetails or LandDetails is returned by
// Draft.Details, matching the draft's category.
type Details interface {
	Category() Category
}

type PlotDetails struct {
	Sqft         *float64
	Ankanam      *float64
	PricePerSqft *float64
	Facing       string
}

type HouseDetails struct {
	Sqft         *float64
	PricePerSqft *float64
	CarpetArea   *float64
	Bedrooms     *int
	Bathrooms    *int
	Floors       *int
	Facing       string
	Furnishing   string
	WaterSupply  string
	YearBuilt    string
}

type ApartmentDetails struct {
	Sqft         *float64
	PricePerSqft *float64
	CarpetArea   *float64
	Bedrooms     *int
	Bathrooms    *int
	TotalFloors  *int
	Balconies    *int
	Lift         *bool
	Facing       string
	Furnishing   string
	WaterSupply  string
	YearBuilt    string
}

type LandDetails struct {
	Acres       *float64
	Ankanam     *float64
	Facing      string
	WaterSupply string
}

func (PlotDetails) Category() Category      { return Plot }
func (HouseDetails) Category() Category     { return House }
func (ApartmentDetails) Category() Category { return Apartment }
func (LandDetails) Category() Category      { return Land }

// Details projects the draft onto its category's detail fields.
func (d Draft) Details() Details {
	switch d.Category {
	case House:
		return HouseDetails{
			Sqft:         d.floatValue(FieldSqft),
			PricePerSqft: d.floatValue(FieldPricePerSqft),
			CarpetArea:   d.floatValue(FieldCarpetArea),
			Bedrooms:     d.intValue(FieldBedrooms),
			Bathrooms:    d.intValue(FieldBathrooms),
			Floors:       d.intValue(FieldFloors),
			Facing:       d.text(FieldFacing),
			Furnishing:   d.text(FieldFurnishing),
			WaterSupply:  d.text(FieldWaterSupply),
			YearBuilt:    d.text(FieldYearBuilt),
		}
	case Apartment:
		return ApartmentDetails{
			Sqft:         d.floatValue(FieldSqft),
			PricePerSqft: d.floatValue(FieldPricePerSqft),
			CarpetArea:   d.floatValue(FieldCarpetArea),
			Bedrooms:     d.intValue(FieldBedrooms),
			Bathrooms:    d.intValue(FieldBathrooms),
			TotalFloors:  d.intValue(FieldTotalFloors),
			Balconies:    d.intValue(FieldBalconies),
			Lift:         d.boolValue(FieldLift),
			Facing:       d.text(FieldFacing),
			Furnishing:   d.text(FieldFurnishing),
			WaterSupply:  d.text(FieldWaterSupply),
			YearBuilt:    d.text(FieldYearBuilt),
		}
	case Land:
		return LandDetails{
			Acres:       d.floatValue(FieldAcres),
			Ankanam:     d.floatValue(FieldAnkanam),
			Facing:      d.text(FieldFacing),
			WaterSupply: d.text(FieldWaterSupply),
		}
	default:
		return PlotDetails{
			Sqft:         d.floatValue(FieldSqft),
			Ankanam:      d.floatValue(FieldAnkanam),
			PricePerSqft: d.floatValue(FieldPricePerSqft),
			Facing:       d.text(FieldFacing),
		}
	}
}
