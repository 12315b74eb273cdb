package propertyform

import (
	"math"
	"strconv"
	"strings"
)

// SqftPerAnkanam is the fixed area ratio: 1 ankanam = 36 sqft.
const SqftPerAnkanam = 36.0

func SqftToAnkanam(sqft float64) float64 {
	return sqft / SqftPerAnkanam
}

func AnkanamToSqft(ankanam float64) float64 {
	return ankanam * SqftPerAnkanam
}

// PricePerSqft returns price/sqft rounded to two decimals. ok is false when
// either input is zero or negative.
func PricePerSqft(price, sqft float64) (float64, bool) {
	if price <= 0 || sqft <= 0 {
		return 0, false
	}
	return round2(price / sqft), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}

// parseAmount reads a typed numeric input. Blank and non-finite values are
// reported as unset.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// deriveArea updates the counterpart of the area field the user edited.
func (d *Draft) deriveArea(edited Field) {
	switch edited {
	case FieldSqft:
		if sqft, ok := parseAmount(d.values[FieldSqft]); ok {
			d.set(FieldAnkanam, formatAmount(SqftToAnkanam(sqft)))
		} else {
			d.set(FieldAnkanam, "")
		}
	case FieldAnkanam:
		if ankanam, ok := parseAmount(d.values[FieldAnkanam]); ok {
			d.set(FieldSqft, formatAmount(AnkanamToSqft(ankanam)))
		} else {
			d.set(FieldSqft, "")
		}
	}
}

func (d *Draft) recomputePricePerSqft() {
	price, priceOK := parseAmount(d.values[FieldPrice])
	sqft, sqftOK := parseAmount(d.values[FieldSqft])
	if !priceOK || !sqftOK {
		d.set(FieldPricePerSqft, "")
		return
	}
	if pps, ok := PricePerSqft(price, sqft); ok {
		d.set(FieldPricePerSqft, formatAmount(pps))
		return
	}
	d.set(FieldPricePerSqft, "")
}
