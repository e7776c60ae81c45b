// db.go implements the "agora db" command for catalog management.
//
// Design: db is a noStoreCommand because it manages catalog metadata
// (gitignore entries) without opening the databases themselves. This
// allows managing catalogs that might be locked or corrupted.

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/mkvarda/agora/internal/log"
	"github.com/mkvarda/agora/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	dbLocal bool
	dbShare bool
)

var dbCmd = &cobra.Command{
	Use:   "db [name]",
	Short: "List or manage catalogs",
	Long: `List catalogs or change their local/shared status.

  agora db                     # list all catalogs
  agora db --local             # mark default catalog as local
  agora db staging --local     # mark staging catalog as local
  agora db staging --share     # mark as shared
  agora db --dir /path         # list catalogs in external directory

Local catalogs are not committed. Shared catalogs are.
If no name is given with --local or --share, operates on the default catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDB,
}

func runDB(_ *cobra.Command, args []string) error {
	// The db command edits gitignore entries in the .agora directory.
	// Without --dir it discovers the nearest one by walking up; with
	// --dir it targets that project directly.
	targetDir := Dir()
	wsDir := ""
	if targetDir != "" {
		wsDir = filepath.Join(targetDir, workspace.Dir)
	}

	// No args and no flags: list catalogs
	if len(args) == 0 && !dbLocal && !dbShare {
		err := listCatalogs(wsDir)

		log.Event("workspace:db", "list").
			Author(Author()).
			Detail("dir", targetDir).
			Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		return nil
	}

	// Catalog name - empty string means the default catalog
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	if dbLocal {
		err := workspace.IgnoreDB(name, wsDir)

		log.Event("workspace:db", "ignore").
			Author(Author()).
			Detail("db", name).
			Detail("dir", targetDir).
			Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("db ignore %q: %w", name, err))
		}
		fmt.Fprintf(Out(), "%s marked as local\n", workspace.DBFileName(name))
		return nil
	}

	if dbShare {
		err := workspace.UnignoreDB(name, wsDir)

		log.Event("workspace:db", "unignore").
			Author(Author()).
			Detail("db", name).
			Detail("dir", targetDir).
			Write(err)

		if err != nil {
			return PrintJSONError(fmt.Errorf("db unignore %q: %w", name, err))
		}
		fmt.Fprintf(Out(), "%s marked as shared\n", workspace.DBFileName(name))
		return nil
	}

	// No flags with name: show status of that catalog
	ignored, err := workspace.IsIgnored(name, wsDir)

	log.Event("workspace:db", "status").
		Author(Author()).
		Detail("db", name).
		Detail("dir", targetDir).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
	}
	status := "shared"
	if ignored {
		status = "local"
	}
	fmt.Fprintf(Out(), "%s: %s\n", workspace.DBFileName(name), status)
	return nil
}

// listCatalogs displays all catalogs in the target directory with their
// status: "shared" (committed) or "local" (gitignored).
func listCatalogs(wsDir string) error {
	dbs, err := workspace.ListDBs(wsDir)
	if err != nil {
		return err
	}

	if JSON() {
		return PrintJSON(dbs)
	}

	if len(dbs) == 0 {
		fmt.Fprintln(Out(), "No catalogs found")
		return nil
	}

	for _, db := range dbs {
		status := "shared"
		if db.Local {
			status = "local"
		}
		fmt.Fprintf(Out(), "%s  %s\n", db.File, status)
	}
	return nil
}

func init() {
	dbCmd.Flags().BoolVarP(&dbLocal, "local", "l", false, "Mark catalog as local")
	dbCmd.Flags().BoolVarP(&dbShare, "share", "s", false, "Mark catalog as shared")
	dbCmd.MarkFlagsMutuallyExclusive("local", "share")
	rootCmd.AddCommand(dbCmd)
}
