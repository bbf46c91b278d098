package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/themes/internal/allocator"
	"github.com/mesh-intelligence/themes/pkg/types"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the theme dictionary and PID prefixes",
		Long: `Print the configured themes in dictionary order with the display index
used in paper IDs, followed by the submission types and their prefixes.`,
		Args: exactArgs(0),
		RunE: a.runCatalog,
	}
}

func (a *app) runCatalog(cmd *cobra.Command, _ []string) error {
	c := a.config.Catalog
	out := cmd.OutOrStdout()

	if a.flags.jsonMode {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	// Renumber works on an assignment; an empty one carries the same order.
	var empty types.Assignment
	for _, id := range c.ThemeIDs() {
		label, _ := c.Label(id)
		empty.Themes = append(empty.Themes, types.Theme{ID: id, Label: label})
	}

	fmt.Fprintln(out, "# Index, Theme ID, Label")
	for _, dt := range allocator.Renumber(empty) {
		fmt.Fprintf(out, "%2d, %3d, %s\n", dt.Index, dt.ID, dt.Label)
	}
	fmt.Fprintln(out, "# Prefix, Type ID, Name")
	for _, st := range c.Types {
		fmt.Fprintf(out, "%s, %3d, %s\n", st.Prefix, st.ID, st.Name)
	}
	return nil
}
