package propertyform

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MinYearBuilt is the earliest accepted construction year.
const MinYearBuilt = 1800

var fourDigitYear = regexp.MustCompile(`^[0-9]{4}$`)

var numericLabels = []struct {
	field Field
	label string
}{
	{FieldPrice, "Price"},
	{FieldBedrooms, "Bedrooms"},
	{FieldBathrooms, "Bathrooms"},
	{FieldSqft, "Square feet"},
	{FieldPricePerSqft, "Price per sqft"},
	{FieldAnkanam, "Ankanam"},
	{FieldAcres, "Acres"},
	{FieldCarpetArea, "Carpet area"},
	{FieldFloors, "Floors"},
	{FieldTotalFloors, "Total floors"},
	{FieldBalconies, "Balconies"},
}

// Validate returns field name to message for every problem in d. An empty
// map means the draft may be submitted. Detail fields the category does not
// show are skipped, since Input never carries them.
func Validate(d Draft) map[string]string {
	errs := make(map[string]string)

	if d.text(FieldTitle) == "" {
		errs[string(FieldTitle)] = "Title is required"
	}
	if d.text(FieldDescription) == "" {
		errs[string(FieldDescription)] = "Description is required"
	}
	if !d.Category.Valid() {
		errs["category"] = "Category is required"
	}

	visible := make(map[Field]bool)
	for _, f := range VisibleFields(d.Category) {
		visible[f] = true
	}

	for _, n := range numericLabels {
		if !visible[n.field] {
			continue
		}
		raw := d.text(n.field)
		if raw == "" {
			continue
		}
		if v, ok := parseAmount(raw); !ok || v < 0 {
			errs[string(n.field)] = n.label + " must be a non-negative number"
		}
	}

	if raw := d.text(FieldYearBuilt); raw != "" && visible[FieldYearBuilt] {
		if !validYear(raw) {
			errs[string(FieldYearBuilt)] = fmt.Sprintf("Year built must be a four-digit year, %d or later", MinYearBuilt)
		}
	}

	return errs
}

func validYear(s string) bool {
	if !fourDigitYear.MatchString(s) {
		return false
	}
	y, err := strconv.Atoi(s)
	return err == nil && y >= MinYearBuilt
}

// ValidationError carries the per-field messages of a rejected submit.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid draft: " + strings.Join(keys, ", ")
}
