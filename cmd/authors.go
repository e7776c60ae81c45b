// authors.go implements the "agora authors" command.

package cmd

import (
	"fmt"

	"github.com/mkvarda/agora/internal/log"
	"github.com/spf13/cobra"
)

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "List publishers",
	Long:  `List every author who has published a listing, alphabetically.`,
	RunE:  runAuthors,
}

func runAuthors(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	authors, err := svc.Authors(ctx)

	log.Event("catalog:authors", "list").
		Author(Author()).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("authors: %w", err))
	}

	if JSON() {
		if authors == nil {
			authors = []string{}
		}
		return PrintJSON(authors)
	}
	if len(authors) == 0 {
		fmt.Fprintln(Out(), "No authors found")
		return nil
	}
	for _, a := range authors {
		fmt.Fprintln(Out(), a)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(authorsCmd)
}
