// diff.go implements the "agora diff" command for comparing two revisions
// of a listing.
//
// Design: Output uses unified diff format compatible with patch tools.
// Colour follows the render.colour config key: auto (TTY only), always,
// or never; --raw forces it off.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mkvarda/agora/internal/config"
	"github.com/mkvarda/agora/internal/diff"
	"github.com/mkvarda/agora/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var diffRaw bool

var diffCmd = &cobra.Command{
	Use:   "diff <id> <v1:v2>",
	Short: "Compare two revisions of a listing",
	Long: `Show a unified diff of a listing between two revisions.

Examples:
  agora diff 0c42e5b1-... 1:2    # compare revision 1 with revision 2
  agora diff 0c42e5b1-... 1:3 --raw    # without colour

The diff covers the rendered listing: name, author, description,
keywords, categories and the graph payload.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]

	v1, v2, err := diff.ParseVersionRange(args[1])
	if err != nil {
		return PrintJSONError(err)
	}

	w := Out()
	if JSON() {
		w = io.Discard
	}
	colour := !diffRaw && colourEnabled()

	r, err := diff.Run(ctx, w, svc, id, v1, v2, colour)

	log.Event("catalog:diff", "diff").
		Author(Author()).
		Listing(id).
		Detail("versions", args[1]).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("diff %q: %w", id, err))
	}

	return PrintJSON(map[string]string{
		"old":  r.Old,
		"new":  r.New,
		"diff": r.Format(false),
	})
}

// colourEnabled applies the render.colour config key: always, never, or
// auto (colour only when stdout is a terminal).
func colourEnabled() bool {
	mode := config.DefaultRenderColour
	if cfg, err := config.Load(); err == nil {
		mode = cfg.RenderColour()
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

func init() {
	diffCmd.Flags().BoolVar(&diffRaw, "raw", false, "Output without colour")
	rootCmd.AddCommand(diffCmd)
}
