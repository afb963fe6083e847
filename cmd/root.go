package cmd

import (
	"fmt"

	"github.com/alexiusacademia/rcflex/internal/config"
	"github.com/alexiusacademia/rcflex/internal/log"
	"github.com/alexiusacademia/rcflex/internal/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	debug      bool

	// cfg is loaded before any subcommand runs
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "rcflex",
	Short: "Flexural capacity of reinforced concrete beams",
	Long: `rcflex - Reinforced Concrete Flexural Capacity

A CLI tool for the flexural analysis of rectangular reinforced concrete
sections by the strength design method (ACI 318).

This tool computes:
  - Nominal and design moment (Mn, φMn)
  - Neutral axis, stress block and steel strains
  - Minimum, balanced and maximum steel areas
  - Failure mode (tension, compression or balanced)
  - Minimum beam width for one layer of bars

Units: cm, kg/cm², ton·m.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := log.Init(debug); err != nil {
			return err
		}
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := loaded.ApplyEnv(); err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded
		log.Debugw("configuration loaded", "file", configFile, "fc", cfg.Materials.Fc, "fy", cfg.Materials.Fy, "method", cfg.Solver.Method)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   rcflex v%-48s║\n", version.Version)
		fmt.Println("  ║   Reinforced Concrete Flexural Capacity                   ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the flexural analysis of rectangular")
		fmt.Println("  reinforced concrete beams (ACI 318 strength design).")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Singly and doubly reinforced section analysis")
		fmt.Println("    • Bar catalog and one-layer minimum width")
		fmt.Println("    • Factored moment from ACI load combinations")
		fmt.Println("    • Workbook batch evaluation and PDF reports")
		fmt.Println("    • JSON API server")
		fmt.Println()
		fmt.Println("  Use 'rcflex --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("rcflex: %v", err)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
