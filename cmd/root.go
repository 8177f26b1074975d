package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/carloom/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Dataset path flags (override config if set)
	flagRawPath     string
	flagCleanedPath string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "carloom",
	Short: "Carloom: explore a used-car listings dataset in the browser",
	Long:  `Carloom loads a raw and a cleaned used-car dataset and serves an interactive dashboard with filters, descriptive statistics, and univariate, bivariate, and multivariate charts.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.carloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagRawPath, "raw", "", "path to the raw dataset (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCleanedPath, "cleaned", "", "path to the cleaned dataset (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("raw") && flagRawPath != "" {
		cfg.RawPath = flagRawPath
	}
	if f.Changed("cleaned") && flagCleanedPath != "" {
		cfg.CleanedPath = flagCleanedPath
	}
}

// newLogger builds the process logger; --debug switches to the development
// config with debug level enabled.
func newLogger() (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
