// categories.go implements the "agora categories" command.

package cmd

import (
	"fmt"

	"github.com/mkvarda/agora/internal/format"
	"github.com/mkvarda/agora/internal/log"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories in use",
	Long: `List every category across the latest revision of all listings,
with the number of listings carrying it, most used first.`,
	RunE: runCategories,
}

func runCategories(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	cats, err := svc.Categories(ctx)

	log.Event("catalog:categories", "list").
		Author(Author()).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("categories: %w", err))
	}

	if JSON() {
		return PrintJSON(cats)
	}
	if len(cats) == 0 {
		fmt.Fprintln(Out(), "No categories found")
		return nil
	}
	return format.Categories(Out(), cats)
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
