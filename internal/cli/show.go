package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/estately/backend/internal/client"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show property details",
		Long:  "Show full details for a property, including its category-specific attributes.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := newAPIClient().GetProperty(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("property %s not found", args[0])
		}
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), p)
	}
	return printPropertyDetail(cmd.OutOrStdout(), p)
}
