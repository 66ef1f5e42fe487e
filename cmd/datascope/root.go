// Root command for the datascope CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/datascope/internal/paths"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
)

// Values loaded from config.yaml by PersistentPreRunE, available to all
// subcommands.
var (
	configDataDir    string
	configListenAddr string
)

var rootCmd = &cobra.Command{
	Use:     "datascope",
	Short:   "DataScope is a browsing API for JSON record catalogs",
	Version: version,
	Long: `DataScope stores datasets of schemaless JSON records and serves them
over a REST API: paginated listing with filtering, sorting, and search,
CSV export, per-field schema statistics, and per-user bookmarks.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configListenAddr = cfg.GetString(cfgKeyListenAddr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.datascope-db)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > DATASCOPE_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > DATASCOPE_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
