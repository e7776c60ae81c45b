// search.go implements the "agora search" command for ranked full-text
// search over names, descriptions and keywords.

package cmd

import (
	"fmt"
	"strings"

	"github.com/mkvarda/agora/internal/catalog"
	"github.com/mkvarda/agora/internal/format"
	"github.com/mkvarda/agora/internal/log"
	"github.com/spf13/cobra"
)

var (
	searchCategories []string
	searchThreshold  int
	searchSort       string
	searchOrder      string
	searchPage       int
	searchSize       int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search listings",
	Long: `Full-text search across names, descriptions and keywords, most
relevant first.

  agora search "text summarisation"
  agora search translate --category nlp --category productivity
  agora search pipeline --sort updatedAt --order desc

Every term must match as a prefix somewhere in the listing. --category
keeps listings in any of the given categories. Descriptions are
truncated; use show for the full listing.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	query := args[0]

	results, err := svc.Search(ctx, catalog.SearchParams{
		Query:                query,
		Page:                 searchPage,
		PageSize:             searchSize,
		Categories:           searchCategories,
		DescriptionThreshold: searchThreshold,
		SortBy:               searchSort,
		SortOrder:            searchOrder,
	})

	log.Event("catalog:search", "search").
		Author(Author()).
		Detail("query", query).
		Detail("categories", strings.Join(searchCategories, ",")).
		Detail("results", len(results)).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("search %q: %w", query, err))
	}

	if JSON() {
		return PrintJSON(rankedPageJSON(results))
	}
	if len(results) == 0 {
		fmt.Fprintln(Out(), "No listings found")
		return nil
	}
	return format.SearchResults(Out(), results)
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchCategories, "category", nil, "Keep listings in any of these categories (repeatable)")
	searchCmd.Flags().IntVar(&searchThreshold, "threshold", 0, "Description characters to return (default from config)")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", "", "Sort by: rank (default), createdAt, updatedAt, name")
	searchCmd.Flags().StringVar(&searchOrder, "order", "", "Sort order: asc, desc")
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "Page number (default 1)")
	searchCmd.Flags().IntVar(&searchSize, "size", 0, "Page size (default from config)")
	rootCmd.AddCommand(searchCmd)
}
