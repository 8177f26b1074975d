package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/carloom/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Carloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("raw_path: %s\n", cfg.RawPath)
		fmt.Printf("cleaned_path: %s\n", cfg.CleanedPath)
		fmt.Printf("listen_addr: %s\n", cfg.ListenAddr)
		fmt.Printf("company_column: %s\n", cfg.CompanyColumn)
		fmt.Printf("year_column: %s\n", cfg.YearColumn)
		fmt.Printf("price_column: %s\n", cfg.PriceColumn)
		fmt.Printf("kilometers_column: %s\n", cfg.KilometersColumn)
		fmt.Printf("power_column: %s\n", cfg.PowerColumn)
		fmt.Printf("fuel_column: %s\n", cfg.FuelColumn)
		fmt.Printf("transmission_column: %s\n", cfg.TransmissionColumn)
		fmt.Printf("latitude_column: %s\n", cfg.LatitudeColumn)
		fmt.Printf("longitude_column: %s\n", cfg.LongitudeColumn)
		fmt.Printf("chart_width: %d\n", cfg.ChartWidth)
		fmt.Printf("chart_height: %d\n", cfg.ChartHeight)
		fmt.Printf("preview_rows: %d\n", cfg.PreviewRows)
		fmt.Printf("shutdown_timeout_sec: %d\n", cfg.ShutdownTimeoutSec)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "raw_path":
			cfg.RawPath = val
		case "cleaned_path":
			cfg.CleanedPath = val
		case "listen_addr":
			cfg.ListenAddr = val
		case "company_column":
			cfg.CompanyColumn = val
		case "year_column":
			cfg.YearColumn = val
		case "price_column":
			cfg.PriceColumn = val
		case "kilometers_column":
			cfg.KilometersColumn = val
		case "power_column":
			cfg.PowerColumn = val
		case "fuel_column":
			cfg.FuelColumn = val
		case "transmission_column":
			cfg.TransmissionColumn = val
		case "latitude_column":
			cfg.LatitudeColumn = val
		case "longitude_column":
			cfg.LongitudeColumn = val
		case "chart_width", "chart_height", "preview_rows", "shutdown_timeout_sec":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid %s: %s (expected positive integer)", key, val)
			}
			switch key {
			case "chart_width":
				cfg.ChartWidth = n
			case "chart_height":
				cfg.ChartHeight = n
			case "preview_rows":
				cfg.PreviewRows = n
			case "shutdown_timeout_sec":
				cfg.ShutdownTimeoutSec = n
			}
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
