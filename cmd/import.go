// import.go implements the "agora import" command for bulk-loading seed
// files into the catalog.

package cmd

import (
	"fmt"
	"io"

	"github.com/mkvarda/agora/internal/importer"
	"github.com/mkvarda/agora/internal/log"
	"github.com/spf13/cobra"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file.json|dir>",
	Short: "Import listings from seed files",
	Long: `Create listings from JSON seed files.

  agora import seeds.json        # one file: a draft or an array of drafts
  agora import ./seeds/          # directory: every .json file, recursively
  agora import seeds.json --dry-run

Each draft becomes a new listing at version 1. Drafts without an author
get --author or the configured author. A draft that fails validation
stops the import; listings already created stay.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(c *cobra.Command, args []string) error {
	ctx := c.Context()
	src := args[0]

	w := Out()
	if JSON() {
		w = io.Discard
	}

	result, err := importer.Run(ctx, w, svc, src, importer.Options{
		Author: Author(),
		DryRun: importDryRun,
	})

	log.Event("catalog:import", "import").
		Author(Author()).
		Detail("source", src).
		Detail("imported", result.Imported).
		Detail("dry_run", importDryRun).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}

	if !JSON() && !importDryRun {
		fmt.Fprintf(w, "Imported %d listing(s)\n", result.Imported)
	}
	return PrintJSON(result)
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without importing")
	rootCmd.AddCommand(importCmd)
}
