// show.go implements the "agora show" command for reading a listing.
//
// Design: Show behaves like a marketplace detail page. Terminal output gets
// glamour markdown rendering; pipe/redirect gets raw markdown. Each show
// records a view unless --no-track is given; a failed increment never fails
// the read.

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/mkvarda/agora/internal/log"
	"github.com/mkvarda/agora/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	showVersion int
	showNoTrack bool
	showRaw     bool
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a listing",
	Long: `Show one listing's details, rendered as markdown on a terminal.

  agora show 0c42e5b1-...            # latest revision
  agora show 0c42e5b1-... -v 2       # specific revision
  agora show 0c42e5b1-... --raw      # raw markdown, no rendering

Each show records a view for the listing. Use --no-track to skip.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]

	var a *store.Agent
	var err error

	defer func() {
		b := log.Event("catalog:show", "read").Author(Author()).Listing(id)
		if a != nil {
			b = b.Version(a.Version)
		}
		b.Write(err)
	}()

	a, err = svc.Get(ctx, id, showVersion)
	if err != nil {
		return PrintJSONError(fmt.Errorf("show %q: %w", id, err))
	}

	if !showNoTrack {
		if viewErr := svc.RecordView(ctx, a.ID); viewErr != nil {
			log.Event("catalog:show", "view").Listing(a.ID).Write(viewErr)
		}
	}

	if JSON() {
		return PrintJSON(a.ToJSON(true))
	}

	md := listingMarkdown(a)

	// Render with glamour if TTY and not --raw
	if !showRaw && term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, renderErr := glamour.Render(md, "dark")
		if renderErr == nil {
			fmt.Fprint(Out(), rendered)
			return nil
		}
	}

	fmt.Fprint(Out(), md)
	return nil
}

// listingMarkdown builds the markdown detail card for one revision.
func listingMarkdown(a *store.Agent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Name)
	fmt.Fprintf(&b, "- **ID**: %s\n", a.ID)
	fmt.Fprintf(&b, "- **Version**: %d\n", a.Version)
	if a.Author != "" {
		fmt.Fprintf(&b, "- **Author**: %s\n", a.Author)
	}
	if len(a.Keywords) > 0 {
		fmt.Fprintf(&b, "- **Keywords**: %s\n", strings.Join(a.Keywords, ", "))
	}
	if len(a.Categories) > 0 {
		fmt.Fprintf(&b, "- **Categories**: %s\n", strings.Join(a.Categories, ", "))
	}
	fmt.Fprintf(&b, "- **Created**: %s\n", time.Unix(a.CreatedAt, 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Updated**: %s\n", time.Unix(a.UpdatedAt, 0).UTC().Format(time.RFC3339))
	if a.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", a.Description)
	}
	if len(a.Graph) > 0 {
		b.WriteString("\n## Graph\n\n```json\n")
		b.WriteString(prettyGraph(a.Graph))
		b.WriteString("\n```\n")
	}
	return b.String()
}

// prettyGraph indents the stored graph payload. Falls back to the stored
// bytes when they do not re-indent cleanly.
func prettyGraph(graph json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, graph, "", "  "); err != nil {
		return string(graph)
	}
	return buf.String()
}

func init() {
	showCmd.Flags().IntVarP(&showVersion, "version", "v", 0, "Show specific revision (default latest)")
	showCmd.Flags().BoolVar(&showNoTrack, "no-track", false, "Do not record a view")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Output raw markdown without rendering")
	rootCmd.AddCommand(showCmd)
}
