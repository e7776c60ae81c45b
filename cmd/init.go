// init.go implements the "agora init" command for catalog initialisation.
//
// Init is special because it runs before a catalog exists and creates the
// initial database.
//
// Design: Init does NOT create config - that's managed separately via
// "agora config". This follows git's model where init creates workspace
// structure and config is separate. The --local flag controls whether the
// catalog is committed to git or gitignored.

package cmd

import (
	"fmt"

	"github.com/mkvarda/agora/internal/catalog"
	"github.com/mkvarda/agora/internal/log"
	"github.com/mkvarda/agora/internal/workspace"
	"github.com/spf13/cobra"
)

var initLocal bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise a new agora catalog",
	Long: `Creates a .agora/catalog.db database in the current directory.

Use --db to create additional catalogs:
  agora init --db staging    # creates .agora/catalog-staging.db

Use --dir to create in a different directory:
  agora init --dir /path/to/project    # creates /path/to/project/.agora/catalog.db

Use --local to exclude from git:
  agora init --db scratch --local    # creates catalog-scratch.db, not committed

Note: init does not create config. Use "agora config" to set up configuration.`,
	RunE: runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	db, targetDir := DB(), Dir()

	// --local adds the catalog to the current project's .gitignore. With
	// --dir the catalog lives elsewhere, so the entry would point at
	// nothing; manage git exclusions in that project directly.
	if initLocal && targetDir != "" {
		return PrintJSONError(fmt.Errorf("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the catalog elsewhere"))
	}

	err := catalog.Init(Force(), db, initLocal, targetDir)

	log.Event("workspace:init", "init").
		Author(Author()).
		Detail("db", db).
		Detail("dir", targetDir).
		Detail("local", initLocal).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("init: %w", err))
	}

	dbFile := workspace.DBFileName(db)
	loc := workspace.Dir + "/" + dbFile
	if targetDir != "" {
		loc = targetDir + "/" + workspace.Dir + "/" + dbFile
	}

	if JSON() {
		return PrintJSON(map[string]string{"initialised": loc})
	}
	fmt.Fprintf(Out(), "Initialised empty agora catalog in %s\n", loc)
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initLocal, "local", "l", false, "Mark catalog as local (gitignored)")
	rootCmd.AddCommand(initCmd)
}
