package propertyform

import (
	"fmt"
	"strings"

	"github.com/estately/backend/internal/models"
)

// Category selects which detail fields a draft carries.
type Category string

const (
	Plot      Category = models.CategoryPlot
	House     Category = models.CategoryHouse
	Apartment Category = models.CategoryApartment
	Land      Category = models.CategoryLand
)

// ParseCategory accepts the category names case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	return models.IsValidCategory(string(c))
}

// Field names an editable draft input.
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldPrice        Field = "price"
	FieldSqft         Field = "sqft"
	FieldAnkanam      Field = "ankanam"
	FieldPricePerSqft Field = "pricePerSqft"
	FieldAcres        Field = "acres"
	FieldCarpetArea   Field = "carpetArea"
	FieldBedrooms     Field = "bedrooms"
	FieldBathrooms    Field = "bathrooms"
	FieldFloors       Field = "floors"
	FieldTotalFloors  Field = "totalFloors"
	FieldBalconies    Field = "balconies"
	FieldLift         Field = "lift"
	FieldFacing       Field = "facing"
	FieldFurnishing   Field = "furnishing"
	FieldWaterSupply  Field = "waterSupply"
	FieldYearBuilt    Field = "yearBuilt"
)

var allFields = []Field{
	FieldTitle, FieldDescription, FieldPrice,
	FieldSqft, FieldAnkanam, FieldPricePerSqft, FieldAcres, FieldCarpetArea,
	FieldBedrooms, FieldBathrooms, FieldFloors, FieldTotalFloors, FieldBalconies,
	FieldLift, FieldFacing, FieldFurnishing, FieldWaterSupply, FieldYearBuilt,
}

// ParseField maps a wire name to a Field.
func ParseField(s string) (Field, error) {
	for _, f := range allFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// clearedOnSwitch lists the fields reset when a draft switches to the key
// category. Anything not listed survives the switch.
var clearedOnSwitch = map[Category][]Field{
	Plot:      {FieldBedrooms, FieldBathrooms, FieldFloors, FieldTotalFloors, FieldBalconies, FieldCarpetArea, FieldFurnishing, FieldLift},
	House:     {FieldAcres, FieldAnkanam, FieldTotalFloors, FieldLift},
	Apartment: {FieldAcres, FieldAnkanam, FieldFloors},
	Land:      {FieldBedrooms, FieldBathrooms, FieldFloors, FieldSqft},
}

var coreFields = []Field{FieldTitle, FieldDescription, FieldPrice}

var detailFields = map[Category][]Field{
	Plot: {FieldSqft, FieldAnkanam, FieldPricePerSqft, FieldFacing},
	House: {
		FieldSqft, FieldPricePerSqft, FieldCarpetArea, FieldBedrooms, FieldBathrooms,
		FieldFloors, FieldFacing, FieldFurnishing, FieldWaterSupply, FieldYearBuilt,
	},
	Apartment: {
		FieldSqft, FieldPricePerSqft, FieldCarpetArea, FieldBedrooms, FieldBathrooms,
		FieldTotalFloors, FieldBalconies, FieldLift, FieldFacing, FieldFurnishing,
		FieldWaterSupply, FieldYearBuilt,
	},
	Land: {FieldAcres, FieldAnkanam, FieldFacing, FieldWaterSupply},
}

// VisibleFields returns the inputs the editor shows for c, core fields first.
func VisibleFields(c Category) []Field {
	out := make([]Field, 0, len(coreFields)+len(detailFields[c]))
	out = append(out, coreFields...)
	return append(out, detailFields[c]...)
}
