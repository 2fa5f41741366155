// Shared helpers for satchel CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satchel-io/satchel/internal/paths"
	"github.com/satchel-io/satchel/pkg/types"
)

// resolveConfigDirFromFlags resolves the configuration directory from the
// global flags and environment.
func resolveConfigDirFromFlags() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// effectiveDBName returns the configured database filename, defaulting to
// types.DefaultDBName.
func effectiveDBName() string {
	if configDBName != "" {
		return configDBName
	}
	return types.DefaultDBName
}

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// parseID parses a positional ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user ID %q", arg)
	}
	return id, nil
}
