// export.go implements the "agora export" command for writing listings
// back out as seed files.

package cmd

import (
	"fmt"
	"io"

	"github.com/mkvarda/agora/internal/exporter"
	"github.com/mkvarda/agora/internal/log"
	"github.com/spf13/cobra"
)

var (
	exportID      string
	exportVersion int
)

var exportCmd = &cobra.Command{
	Use:   "export <dst>",
	Short: "Export listings as JSON files",
	Long: `Write listings to JSON files that import and publish accept.

  agora export ./seeds                    # every listing (latest revision)
  agora export ./out --id 0c42e5b1-...    # one listing
  agora export out.json --id 0c42e5b1-... -v 2

Exports include graph payloads, so an exported catalog re-imports
losslessly. Existing files are kept unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(c *cobra.Command, args []string) error {
	ctx := c.Context()
	dst := args[0]

	w := Out()
	if JSON() {
		w = io.Discard
	}

	result, err := exporter.Run(ctx, w, svc, exportID, dst, exporter.Options{
		Version: exportVersion,
		Force:   Force(),
	})

	log.Event("catalog:export", "export").
		Author(Author()).
		Listing(exportID).
		Detail("destination", dst).
		Detail("exported", result.Exported).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("export: %w", err))
	}

	if !JSON() {
		fmt.Fprintf(w, "Exported %d listing(s)\n", result.Exported)
	}
	return PrintJSON(result)
}

func init() {
	exportCmd.Flags().StringVar(&exportID, "id", "", "Export a single listing by id")
	exportCmd.Flags().IntVarP(&exportVersion, "version", "v", 0, "Revision to export with --id (default latest)")
	rootCmd.AddCommand(exportCmd)
}
