// revisions.go implements the "agora revisions" command for listing a
// listing's revision history.

package cmd

import (
	"fmt"

	"github.com/mkvarda/agora/internal/format"
	"github.com/mkvarda/agora/internal/log"
	"github.com/mkvarda/agora/internal/store"
	"github.com/spf13/cobra"
)

var revisionsCmd = &cobra.Command{
	Use:   "revisions <id>",
	Short: "Show a listing's revision history",
	Long: `List every revision of a listing, newest first.

  agora revisions 0c42e5b1-...

Use "agora diff <id> <v1:v2>" to compare two revisions and
"agora show <id> -v N" to read one.`,
	Args: cobra.ExactArgs(1),
	RunE: runRevisions,
}

func runRevisions(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]

	revs, err := svc.Revisions(ctx, id)

	log.Event("catalog:revisions", "list").
		Author(Author()).
		Listing(id).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("revisions %q: %w", id, err))
	}

	if JSON() {
		items := make([]store.AgentJSON, 0, len(revs))
		for i := range revs {
			items = append(items, revs[i].ToJSON(false))
		}
		return PrintJSON(items)
	}
	return format.Revisions(Out(), revs)
}

func init() {
	rootCmd.AddCommand(revisionsCmd)
}
