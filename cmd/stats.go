// stats.go implements the "agora stats" command for catalog statistics.

package cmd

import (
	"fmt"
	"time"

	"github.com/mkvarda/agora/internal/format"
	"github.com/mkvarda/agora/internal/log"
	"github.com/spf13/cobra"
)

// statsResult is the JSON shape of the stats command.
type statsResult struct {
	Listings  int64  `json:"listings"`
	Revisions int64  `json:"revisions"`
	Authors   int64  `json:"authors"`
	Tracked   int64  `json:"tracked"`
	Downloads int64  `json:"downloads"`
	Views     int64  `json:"views"`
	Oldest    string `json:"oldest,omitempty"`
	Newest    string `json:"newest,omitempty"`
	SizeBytes int64  `json:"size_bytes"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Show aggregate statistics: listings, revisions, authors, analytics
counters and database size.`,
	RunE: runStats,
}

func runStats(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	st, err := svc.Stats(ctx)
	if err != nil {
		log.Event("catalog:stats", "stats").Author(Author()).Write(err)
		return PrintJSONError(fmt.Errorf("stats: %w", err))
	}

	size, err := svc.FileSize(ctx)

	log.Event("catalog:stats", "stats").Author(Author()).Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("stats: %w", err))
	}

	if JSON() {
		r := statsResult{
			Listings:  st.Listings,
			Revisions: st.Revisions,
			Authors:   st.Authors,
			Tracked:   st.Tracked,
			Downloads: st.Downloads,
			Views:     st.Views,
			SizeBytes: size,
		}
		if st.Oldest > 0 {
			r.Oldest = time.Unix(st.Oldest, 0).UTC().Format(time.RFC3339)
		}
		if st.Newest > 0 {
			r.Newest = time.Unix(st.Newest, 0).UTC().Format(time.RFC3339)
		}
		return PrintJSON(r)
	}

	return format.Stats(Out(), st, size)
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
