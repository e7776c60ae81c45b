// publish.go implements the "agora publish" command for creating listings
// and revisions.
//
// Design: publish takes a seed file (the same JSON shape import uses) and
// creates exactly one listing from it. --new-version redirects the draft
// to an existing listing id, creating the next revision instead. Bulk
// loads belong to import.

package cmd

import (
	"fmt"

	"github.com/mkvarda/agora/internal/importer"
	"github.com/mkvarda/agora/internal/log"
	"github.com/mkvarda/agora/internal/store"
	"github.com/spf13/cobra"
)

var publishVersionOf string

var publishCmd = &cobra.Command{
	Use:   "publish <file.json>",
	Short: "Publish a listing or a new revision",
	Long: `Publish a listing from a seed file.

  agora publish summariser.json                      # new listing
  agora publish summariser.json --new-version <id>   # next revision of <id>
  cat summariser.json | agora publish -              # read seed from stdin

The seed file holds one draft:

  {
    "name": "Summariser",
    "description": "Summarises long documents",
    "keywords": ["nlp", "summaries"],
    "categories": ["productivity"],
    "graph": { "nodes": [], "edges": [] }
  }

The author comes from the seed, --author, or config (in that order).
Earlier revisions stay readable; publishing never rewrites history.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func runPublish(c *cobra.Command, args []string) error {
	ctx := c.Context()

	d, err := importer.ReadDraft(args[0], Author())
	if err != nil {
		return PrintJSONError(err)
	}

	var a *store.Agent
	action := "create"
	if publishVersionOf != "" {
		action = "new-version"
		a, err = svc.PublishVersion(ctx, publishVersionOf, d)
	} else {
		a, err = svc.Create(ctx, d)
	}

	b := log.Event("catalog:publish", action).
		Author(Author()).
		Detail("name", d.Name)
	if a != nil {
		b = b.Listing(a.ID).ResultVersion(a.Version)
	} else if publishVersionOf != "" {
		b = b.Listing(publishVersionOf)
	}
	b.Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("publish %q: %w", d.Name, err))
	}

	if !JSON() {
		fmt.Fprintf(Out(), "Published %s v%d (%s)\n", a.Name, a.Version, a.ID)
	}
	return PrintJSON(a.ToJSON(true))
}

func init() {
	publishCmd.Flags().StringVar(&publishVersionOf, "new-version", "", "Publish as the next revision of an existing listing id")
	rootCmd.AddCommand(publishCmd)
}
