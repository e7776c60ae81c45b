// ls.go implements the "agora ls" command for listing catalog entries.
//
// Design: Ls mimics Unix ls over the latest revision of every listing.
// Structured filters (--name, --keyword, --category) narrow in SQL; --match
// adds the fuzzy description post-filter. -l shows metadata, -q prints bare
// ids for scripting.

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
	lsName      string
	lsKeyword   string
	lsCategory  string
	lsMatch     string
	lsThreshold int
	lsSort      string
	lsOrder     string
	lsPage      int
	lsSize      int
	lsLong      bool
	lsQuiet     bool
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List catalog entries",
	Long: `List the latest revision of every listing, newest first.

  agora ls                              # first page
  agora ls --category nlp --long       # filter with metadata columns
  agora ls --match "summarise text"    # fuzzy description filter
  agora ls --sort name --order asc     # reorder
  agora ls -q                           # bare ids for scripting

Filters combine with AND. --match keeps listings whose description scores
at least --threshold (0-100) against the given text.`,
	RunE: runLs,
}

func runLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	page, err := svc.List(ctx, catalog.ListParams{
		Page:                 lsPage,
		PageSize:             lsSize,
		Name:                 lsName,
		Keyword:              lsKeyword,
		Category:             lsCategory,
		Description:          lsMatch,
		DescriptionThreshold: lsThreshold,
		SortBy:               lsSort,
		SortOrder:            lsOrder,
	})

	log.Event("catalog:ls", "list").
		Author(Author()).
		Detail("filters", lsFilterSummary()).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("ls: %w", err))
	}

	if JSON() {
		return PrintJSON(pageJSON(page))
	}

	switch {
	case lsQuiet:
		err = format.IDs(Out(), page.Items)
	case lsLong:
		err = format.Long(Out(), page.Items)
	default:
		err = format.List(Out(), page.Items)
	}
	if err != nil {
		return err
	}
	if !lsQuiet {
		format.PageInfo(Out(), page.Page, page.TotalPages, page.TotalCount)
	}
	return nil
}

// lsFilterSummary compacts the active filters for the audit log.
func lsFilterSummary() string {
	var parts []string
	if lsName != "" {
		parts = append(parts, "name="+lsName)
	}
	if lsKeyword != "" {
		parts = append(parts, "keyword="+lsKeyword)
	}
	if lsCategory != "" {
		parts = append(parts, "category="+lsCategory)
	}
	if lsMatch != "" {
		parts = append(parts, "match="+lsMatch)
	}
	return strings.Join(parts, " ")
}

func init() {
	lsCmd.Flags().StringVar(&lsName, "name", "", "Filter by name substring (case-insensitive)")
	lsCmd.Flags().StringVar(&lsKeyword, "keyword", "", "Filter by exact keyword")
	lsCmd.Flags().StringVar(&lsCategory, "category", "", "Filter by exact category")
	lsCmd.Flags().StringVar(&lsMatch, "match", "", "Fuzzy description filter")
	lsCmd.Flags().IntVar(&lsThreshold, "threshold", 0, "Similarity cutoff for --match, 0-100 (default from config)")
	lsCmd.Flags().StringVarP(&lsSort, "sort", "s", "", "Sort by: createdAt, updatedAt, name, author, version")
	lsCmd.Flags().StringVar(&lsOrder, "order", "", "Sort order: asc, desc")
	lsCmd.Flags().IntVar(&lsPage, "page", 0, "Page number (default 1)")
	lsCmd.Flags().IntVar(&lsSize, "size", 0, "Page size (default from config)")
	lsCmd.Flags().BoolVarP(&lsLong, "long", "l", false, "Long format with metadata")
	lsCmd.Flags().BoolVarP(&lsQuiet, "quiet", "q", false, "Print ids only")
	rootCmd.AddCommand(lsCmd)
}
