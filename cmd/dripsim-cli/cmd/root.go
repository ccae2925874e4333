package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dripsim/internal/adapters/sqlite"
	"dripsim/internal/bootstrap"
	"dripsim/internal/config"
)

var (
	cfg          config.Config
	catalogPath  string
	templatesDir string
	templateURL  string
	programKey   string
)

var rootCmd = &cobra.Command{
	Use:   "dripsim-cli",
	Short: "Headless email journey simulator",
	Long: `dripsim-cli drives the drip-campaign journey simulator without the
terminal UI.

It runs a journey for a number of simulated days under a recipient
behavior mode, lists the catalog and its flows, previews email bodies
and inspects runs exported to SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("catalog") {
			loaded.Catalog = catalogPath
		}
		if flags.Changed("templates") {
			loaded.Templates = templatesDir
		}
		if flags.Changed("template-url") {
			loaded.TemplateURL = templateURL
		}
		if flags.Changed("program") {
			loaded.Program = programKey
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&catalogPath, "catalog", "c", "", "catalog file or directory (default: built-in catalog)")
	flags.StringVarP(&templatesDir, "templates", "t", "", "local templates directory")
	flags.StringVar(&templateURL, "template-url", "", "base URL of remote templates")
	flags.StringVarP(&programKey, "program", "p", config.DefaultProgram, "program to simulate")
}

// openRuntime builds the engine from the resolved configuration
func openRuntime(ctx context.Context, opts ...bootstrap.Option) (*bootstrap.Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return bootstrap.Open(ctx, cfg, opts...)
}

// exportDBPath picks the run database: the --db flag, then export_db from
// the config, then one database per custom catalog. Empty means the
// default database.
func exportDBPath(c config.Config, flagValue string) string {
	switch {
	case flagValue != "":
		return flagValue
	case c.ExportDB != "":
		return c.ExportDB
	case c.Catalog != "":
		catalog := c.Catalog
		if abs, err := filepath.Abs(catalog); err == nil {
			catalog = abs
		}
		return sqlite.PathFor(catalog)
	}
	return ""
}
