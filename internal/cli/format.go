package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/estately/backend/internal/listing"
	"github.com/estately/backend/internal/models"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecordTable prints search results as a table, followed by the
// match count out of total.
func printRecordTable(out io.Writer, records []listing.Record, total int) error {
	if len(records) == 0 {
		fmt.Fprintln(out, "No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tTYPE\tPRICE\tBED\tBATH\tSQFT\tLISTED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t--------\t----\t-----\t---\t----\t----\t------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, r := range records {
		title := truncate(r.Title, 32)
		if r.Featured {
			title = "* " + title
		}
		listed := "-"
		if !r.ListedDate.IsZero() {
			listed = r.ListedDate.Format("2006-01-02")
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, title, orDash(r.Location), orDash(r.Type), formatPrice(r.Price),
			countOrDash(r.Beds), countOrDash(r.Baths), areaOrDash(r.Sqft), listed); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nShowing %d of %d properties\n", len(records), total)
	return nil
}

// printPropertyDetail prints a single property in text format.
func printPropertyDetail(w io.Writer, p *models.Property) error {
	fmt.Fprintf(w, "Property %s\n", p.ID)
	fmt.Fprintf(w, "  Title:     %s\n", p.Title)
	fmt.Fprintf(w, "  Category:  %s\n", p.Category)
	fmt.Fprintf(w, "  Price:     %s\n", formatPrice(p.Price))
	if loc := formatLocation(p.Location); loc != "" {
		fmt.Fprintf(w, "  Location:  %s\n", loc)
	}
	if p.Featured {
		fmt.Fprintln(w, "  Featured:  yes")
	}

	d := p.PropertyDetails
	if d.Sqft != nil {
		fmt.Fprintf(w, "  Sqft:      %s\n", strconv.FormatFloat(*d.Sqft, 'f', -1, 64))
	}
	if d.Ankanam != nil {
		fmt.Fprintf(w, "  Ankanam:   %.2f\n", *d.Ankanam)
	}
	if d.PricePerSqft != nil {
		fmt.Fprintf(w, "  Per sqft:  %.2f\n", *d.PricePerSqft)
	}
	if d.Acres != nil {
		fmt.Fprintf(w, "  Acres:     %s\n", strconv.FormatFloat(*d.Acres, 'f', -1, 64))
	}
	if d.CarpetArea != nil {
		fmt.Fprintf(w, "  Carpet:    %s sqft\n", strconv.FormatFloat(*d.CarpetArea, 'f', -1, 64))
	}
	if d.Bedrooms != nil {
		fmt.Fprintf(w, "  Beds:      %d\n", *d.Bedrooms)
	}
	if d.Bathrooms != nil {
		fmt.Fprintf(w, "  Baths:     %d\n", *d.Bathrooms)
	}
	if d.Floors != nil {
		fmt.Fprintf(w, "  Floors:    %d\n", *d.Floors)
	}
	if d.TotalFloors != nil {
		fmt.Fprintf(w, "  Of floors: %d\n", *d.TotalFloors)
	}
	if d.Balconies != nil {
		fmt.Fprintf(w, "  Balconies: %d\n", *d.Balconies)
	}
	if d.Lift != nil {
		fmt.Fprintf(w, "  Lift:      %t\n", *d.Lift)
	}
	if d.Facing != "" {
		fmt.Fprintf(w, "  Facing:    %s\n", d.Facing)
	}
	if d.Furnishing != "" {
		fmt.Fprintf(w, "  Furnished: %s\n", d.Furnishing)
	}
	if d.WaterSupply != "" {
		fmt.Fprintf(w, "  Water:     %s\n", d.WaterSupply)
	}
	if d.YearBuilt != nil {
		fmt.Fprintf(w, "  Built:     %d\n", *d.YearBuilt)
	}
	if len(p.Amenities) > 0 {
		fmt.Fprintf(w, "  Amenities: %s\n", strings.Join(p.Amenities, ", "))
	}
	if len(p.MediaFiles) > 0 {
		fmt.Fprintf(w, "  Media:     %d file(s)\n", len(p.MediaFiles))
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
	return nil
}

func formatLocation(l models.Location) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{l.Address, l.City, l.State, l.Pincode} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// formatPrice rounds to a whole amount and groups digits with commas.
// Unbounded values print as "any".
func formatPrice(v float64) string {
	if v >= math.MaxFloat64 || math.IsInf(v, 1) {
		return "any"
	}
	s := strconv.FormatInt(int64(math.Round(v)), 10)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		pre := len(s) % 3
		if pre > 0 {
			b.WriteString(s[:pre])
		}
		for i := pre; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		s = "-" + s
	}
	return s
}

func countOrDash(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func areaOrDash(v float64) string {
	if v <= 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
