// top.go implements the "agora top" command: the download leaderboard.

package cmd

import (
	"fmt"

	"github.com/mkvarda/agora/internal/format"
	"github.com/mkvarda/agora/internal/log"
	"github.com/spf13/cobra"
)

var (
	topPage int
	topSize int
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Most downloaded listings",
	Long: `List listings by download count, most downloaded first.

  agora top
  agora top --page 2 --size 25

Shows the latest revision of each listing with its download and view
counters.`,
	RunE: runTop,
}

func runTop(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	page, err := svc.TopByDownloads(ctx, topPage, topSize)

	log.Event("catalog:top", "list").
		Author(Author()).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("top: %w", err))
	}

	if JSON() {
		return PrintJSON(trackedPageJSON(page))
	}
	if err := format.Top(Out(), page.Items); err != nil {
		return err
	}
	format.PageInfo(Out(), page.Page, page.TotalPages, page.TotalCount)
	return nil
}

func init() {
	topCmd.Flags().IntVar(&topPage, "page", 0, "Page number (default 1)")
	topCmd.Flags().IntVar(&topSize, "size", 0, "Page size (default from config)")
	rootCmd.AddCommand(topCmd)
}
