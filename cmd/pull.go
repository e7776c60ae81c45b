// pull.go implements the "agora pull" command for fetching a listing's
// graph payload.
//
// Design: pull is the marketplace "download" action, so it always records
// a download against the listing (show records views). The payload goes to
// stdout for piping, or to a file with -f.

package cmd

import (
	"fmt"
	"os"

	"github.com/mkvarda/agora/internal/log"
	"github.com/mkvarda/agora/internal/store"
	"github.com/spf13/cobra"
)

var (
	pullVersion int
	pullFile    string
)

var pullCmd = &cobra.Command{
	Use:   "pull <id>",
	Short: "Download a listing's graph payload",
	Long: `Fetch the agent graph payload for one listing and record a download.

  agora pull 0c42e5b1-...                  # payload to stdout
  agora pull 0c42e5b1-... -v 2             # specific revision
  agora pull 0c42e5b1-... -f agent.json    # save to file

With -o json the full listing (metadata plus graph) is returned instead
of the bare payload.`,
	Args: cobra.ExactArgs(1),
	RunE: runPull,
}

func runPull(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]

	var a *store.Agent
	var err error

	defer func() {
		b := log.Event("catalog:pull", "download").Author(Author()).Listing(id)
		if a != nil {
			b = b.Version(a.Version)
		}
		b.Write(err)
	}()

	a, err = svc.Get(ctx, id, pullVersion)
	if err != nil {
		return PrintJSONError(fmt.Errorf("pull %q: %w", id, err))
	}

	if err = svc.RecordDownload(ctx, a.ID); err != nil {
		return PrintJSONError(fmt.Errorf("pull %q: %w", id, err))
	}

	if JSON() {
		return PrintJSON(a.ToJSON(true))
	}

	payload := prettyGraph(a.Graph) + "\n"

	if pullFile != "" {
		if _, statErr := os.Stat(pullFile); statErr == nil && !Force() {
			err = fmt.Errorf("file exists: %s (use --force to overwrite)", pullFile)
			return PrintJSONError(err)
		}
		if err = os.WriteFile(pullFile, []byte(payload), 0644); err != nil {
			return PrintJSONError(fmt.Errorf("writing %s: %w", pullFile, err))
		}
		fmt.Fprintf(Out(), "Pulled %s v%d -> %s\n", a.Name, a.Version, pullFile)
		return nil
	}

	fmt.Fprint(Out(), payload)
	return nil
}

func init() {
	pullCmd.Flags().IntVarP(&pullVersion, "version", "v", 0, "Pull specific revision (default latest)")
	pullCmd.Flags().StringVarP(&pullFile, "file", "f", "", "Write the payload to a file instead of stdout")
	rootCmd.AddCommand(pullCmd)
}
