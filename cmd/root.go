/*
Copyright © 2026 Marek Kvarda (mkvarda) <marek@kvarda.dev>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from service.go to isolate cobra setup from catalog
// initialisation logic.
//
// Design: PersistentPreRunE handles catalog initialisation lazily - only
// commands that need the catalog trigger it. This enables bootstrap
// commands (init, guide, config) to work without a catalog existing. The
// noStoreCommands map controls which commands skip initialisation.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/mkvarda/agora/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agora",
	Short: "Agent marketplace catalog",
	Long:  `A catalog of publishable agent listings with revision history, full-text search, fuzzy filtering, and download/view analytics.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Detect author if not explicitly set
		if author == "" {
			author = detectAuthor()
		}

		// Check if command requires author and none is configured
		cmdName := topLevelCmdName(cmd)
		if authorRequiredCommands[cmdName] && author == "" {
			return fmt.Errorf("author not configured (checked .agora/config.yaml and ~/.agora/config.yaml)\n\nRun: agora config author.name \"Your Name\"\n\nSee 'agora guide config' for local vs global options.")
		}

		// Open the catalog for commands that need it
		if !noStoreCommands[cmdName] {
			if err := initService(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("open catalog: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "agora show 0c42e5b1", returns "show".
// For "agora db notes --local", returns "db".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and ensures proper cleanup of
// the catalog service before exit. Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	err := rootCmd.Execute()

	// Close the service if it was created
	if svc != nil {
		if closeErr := svc.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing catalog: %v\n", closeErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
