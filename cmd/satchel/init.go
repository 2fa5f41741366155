// Init command prepares configuration and storage for first use.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFile holds the structure written to config.yaml when init records
// explicit settings.
type configFile struct {
	DataDir   string `yaml:"data_dir,omitempty"`
	DBName    string `yaml:"db_name"`
	LegacyDir string `yaml:"legacy_dir,omitempty"`
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize satchel storage",
	Long: `Init creates the configuration and data directories, writes config.yaml,
and initializes the database schema.

When --data-dir is given, the directory is recorded in config.yaml so later
invocations find the same database without the flag.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// The store was already opened (and the schema applied) by the
	// persistent pre-run. Record explicit settings if any were given.
	if flagDataDir != "" {
		if err := writeConfig(); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Satchel initialized successfully")
	return nil
}

// writeConfig persists the effective settings to config.yaml.
func writeConfig() error {
	configDir, err := resolveConfigDirFromFlags()
	if err != nil {
		return err
	}

	cfg := configFile{
		DataDir:   flagDataDir,
		DBName:    effectiveDBName(),
		LegacyDir: configLegacyDir,
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(configDir, configFileExt), data, 0o644)
}
