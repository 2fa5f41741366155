// Root command for the satchel CLI. Opens the store before any data command
// runs and closes it afterwards.
package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/satchel-io/satchel/internal/paths"
	"github.com/satchel-io/satchel/internal/sqlite"
	"github.com/satchel-io/satchel/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// Config values loaded from config.yaml by PersistentPreRunE.
var (
	configDataDir   string
	configDBName    string
	configLegacyDir string
)

// store is the global store instance, opened on startup for data commands.
var store *sqlite.Store

var rootCmd = &cobra.Command{
	Use:   "satchel",
	Short: "Satchel stores accounts, progress, and certificates for a learning app",
	Long: `Satchel is the administrative CLI for the satchel learning-records store.

It manages user accounts, learning progress, activity events, and completion
certificates persisted in a single embedded SQLite database file.`,
	PersistentPreRunE:  openStore,
	PersistentPostRunE: closeStore,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.satchel)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(certCmd)
}

// openStore loads config and opens the store. The version command runs
// without a store.
func openStore(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	configDataDir = cfg.GetString(cfgKeyDataDir)
	configDBName = cfg.GetString(cfgKeyDBName)
	configLegacyDir = cfg.GetString(cfgKeyLegacyDir)

	dataDir, err := paths.ResolveDataDir(flagDataDir, configDataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	dbName := configDBName
	if dbName == "" {
		dbName = types.DefaultDBName
	}

	store = sqlite.NewStore(slog.Default())
	if err := store.Open(types.Config{
		DBPath:    filepath.Join(dataDir, dbName),
		LegacyDir: configLegacyDir,
	}); err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	return nil
}

// closeStore releases the store handle after the command completes.
func closeStore(cmd *cobra.Command, args []string) error {
	if store == nil {
		return nil
	}
	return store.Close()
}
