package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/estately/backend/internal/listing"
)

func newFacetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "List filter values",
		Long:  "List the locations, property types and price bounds present in the listings.",
		Args:  cobra.NoArgs,
		RunE:  runFacets,
	}
}

func runFacets(cmd *cobra.Command, _ []string) error {
	props, err := newAPIClient().ListProperties(cmd.Context())
	if err != nil {
		return err
	}
	f := listing.BuildFacets(listing.FromProperties(props))

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), f)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Locations: %s\n", joinOrDash(f.Locations))
	fmt.Fprintf(w, "Types:     %s\n", joinOrDash(f.Types))
	fmt.Fprintf(w, "Price:     %s - %s\n", formatPrice(f.PriceRange.Min), formatPrice(f.PriceRange.Max))
	return nil
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
