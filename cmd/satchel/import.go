// Import command: one-time migration from the legacy JSON flat files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satchel-io/satchel/pkg/types"
)

var (
	importDir   string
	importForce bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import legacy JSON data",
	Long: `Import reads a legacy users.json plus per-user progress_<username>.json
files and inserts them through the normal store operations.

By default the import only runs when the store holds zero users, so repeated
invocations never double-import. Use --force to import into a non-empty store
(existing usernames are skipped).`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "", "directory holding the legacy files (default: legacy_dir from config, else CWD)")
	importCmd.Flags().BoolVar(&importForce, "force", false, "import even when users already exist")
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		result *types.ImportResult
		err    error
	)
	if importForce {
		result, err = store.ImportLegacyJSON(importDir)
	} else {
		result, err = store.ImportLegacyIfEmpty(importDir)
	}
	if err != nil {
		return fmt.Errorf("import legacy data: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, result)
	}
	out := cmd.OutOrStdout()
	switch result.Status {
	case types.ImportStatusSkipped:
		fmt.Fprintln(out, "Import skipped: store already has users")
	case types.ImportStatusNoData:
		fmt.Fprintln(out, "No legacy data found")
	default:
		fmt.Fprintf(out, "Imported %d users, %d progress records (%d failed)\n",
			result.Users, result.Progress, result.Failed)
	}
	return nil
}
