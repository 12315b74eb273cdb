package cli

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/estately/backend/internal/listing"
)

// searchFlags maps command-line flags to listing query parameters.
var searchFlags = []struct {
	flag  string
	param string
	usage string
}{
	{"text", "q", "free-text match on title, location and description"},
	{"min-price", "minPrice", "minimum price"},
	{"max-price", "maxPrice", "maximum price"},
	{"location", "location", `location to match, or "all"`},
	{"type", "type", `property type to match, or "all"`},
	{"min-beds", "minBeds", "minimum bedrooms"},
	{"min-baths", "minBaths", "minimum bathrooms"},
	{"sort", "sort", "newest, price-asc or price-desc"},
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search listings",
		Long:  "Fetch all listings and filter and sort them locally.",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}
	for _, f := range searchFlags {
		cmd.Flags().String(f.flag, "", f.usage)
	}
	return cmd
}

func runSearch(cmd *cobra.Command, _ []string) error {
	q := url.Values{}
	for _, f := range searchFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, err := cmd.Flags().GetString(f.flag)
		if err != nil {
			return err
		}
		q.Set(f.param, v)
	}

	criteria, errs := listing.ParseQuery(q)
	if len(errs) > 0 {
		return queryError(errs)
	}

	props, err := newAPIClient().ListProperties(cmd.Context())
	if err != nil {
		return err
	}
	visible := listing.ComputeVisible(listing.FromProperties(props), criteria)

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), visible)
	}
	return printRecordTable(cmd.OutOrStdout(), visible, len(props))
}

// queryError reports malformed filters, naming the flag rather than the
// query parameter.
func queryError(errs map[string]string) error {
	flags := make(map[string]string, len(searchFlags))
	for _, f := range searchFlags {
		flags[f.param] = f.flag
	}

	msgs := make([]string, 0, len(errs))
	for param, msg := range errs {
		name := param
		if f, ok := flags[param]; ok {
			name = f
		}
		msgs = append(msgs, fmt.Sprintf("--%s: %s", name, msg))
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid filters: %s", strings.Join(msgs, "; "))
}
