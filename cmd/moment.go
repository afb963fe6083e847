package cmd

import (
	"fmt"

	"github.com/alexiusacademia/rcflex/internal/aci"
	"github.com/spf13/cobra"
)

var (
	// Unfactored moments (ton·m)
	momentDead       float64
	momentLive       float64
	momentRoof       float64
	momentWind       float64
	momentEarthquake float64
	momentRain       float64

	// Options
	showAll     bool
	useGravity  bool
	momentPhiMn float64
)

var momentCmd = &cobra.Command{
	Use:   "moment",
	Short: "Calculate factored moment using ACI 318 load combinations",
	Long: `Calculate the factored moment (Mu) based on the ACI 318 strength
design load combinations (section 5.3.1).

Provide unfactored moments from different load types and this command will
compute the factored moments for all applicable load combinations.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Simple gravity loads (dead + live)
  rcflex moment --dead 5 --live 3

  # With wind load, showing all combinations
  rcflex moment --dead 5 --live 3 --wind 2 --all

  # Compare with a design capacity from 'rcflex beam analyze'
  rcflex moment --dead 5 --live 3 --capacity 12.5`,
	Run: runMoment,
}

func init() {
	rootCmd.AddCommand(momentCmd)

	// Load moment flags
	momentCmd.Flags().Float64VarP(&momentDead, "dead", "d", 0, "Moment due to dead load (ton·m)")
	momentCmd.Flags().Float64VarP(&momentLive, "live", "l", 0, "Moment due to live load (ton·m)")
	momentCmd.Flags().Float64VarP(&momentRoof, "roof", "r", 0, "Moment due to roof live load (ton·m)")
	momentCmd.Flags().Float64VarP(&momentWind, "wind", "w", 0, "Moment due to wind load (ton·m)")
	momentCmd.Flags().Float64VarP(&momentEarthquake, "earthquake", "e", 0, "Moment due to earthquake load (ton·m)")
	momentCmd.Flags().Float64VarP(&momentRain, "rain", "R", 0, "Moment due to rain load (ton·m)")

	// Options
	momentCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all load combination results")
	momentCmd.Flags().BoolVarP(&useGravity, "gravity", "g", false, "Use gravity combinations only (1.4D and 1.2D+1.6L)")
	momentCmd.Flags().Float64Var(&momentPhiMn, "capacity", 0, "Design capacity φMn to check against (ton·m)")
}

func runMoment(cmd *cobra.Command, args []string) {
	moments := aci.LoadMoments{
		Dead:       momentDead,
		Live:       momentLive,
		Roof:       momentRoof,
		Wind:       momentWind,
		Earthquake: momentEarthquake,
		Rain:       momentRain,
	}

	if moments.IsZero() {
		fmt.Println("Error: Please provide at least one unfactored moment.")
		fmt.Println("Use 'rcflex moment --help' for usage information.")
		return
	}

	combinations := aci.Combinations
	if useGravity {
		combinations = aci.GravityCombinations
	}

	printTitle("     ACI 318 FACTORED MOMENT CALCULATION")

	printHeading("UNFACTORED MOMENTS (ton·m):")
	w := newTable()
	if moments.Dead != 0 {
		fmt.Fprintf(w, "  Dead Load (D):\t%.2f\n", moments.Dead)
	}
	if moments.Live != 0 {
		fmt.Fprintf(w, "  Live Load (L):\t%.2f\n", moments.Live)
	}
	if moments.Roof != 0 {
		fmt.Fprintf(w, "  Roof Live Load (Lr):\t%.2f\n", moments.Roof)
	}
	if moments.Wind != 0 {
		fmt.Fprintf(w, "  Wind Load (W):\t%.2f\n", moments.Wind)
	}
	if moments.Earthquake != 0 {
		fmt.Fprintf(w, "  Earthquake Load (E):\t%.2f\n", moments.Earthquake)
	}
	if moments.Rain != 0 {
		fmt.Fprintf(w, "  Rain Load (R):\t%.2f\n", moments.Rain)
	}
	w.Flush()
	fmt.Println()

	maxMu, governing := aci.Governing(moments, combinations)

	if showAll {
		printHeading("LOAD COMBINATIONS (ACI 318 Section 5.3.1):")
		w = newTable()
		fmt.Fprintf(w, "  #\tCombination\tMu (ton·m)\n")
		fmt.Fprintf(w, "  ─\t───────────\t──────────\n")
		for _, combo := range combinations {
			marker := ""
			if combo.ID == governing.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", combo.ID, combo.Description, combo.Factored(moments), marker)
		}
		w.Flush()
		fmt.Println()
	}

	printHeading("RESULT:")
	if governing.ID == "" {
		fmt.Println("  No combination produces a positive moment.")
		fmt.Println()
		return
	}
	fmt.Printf("  Governing Combination: %s (%s)\n", governing.ID, governing.Description)
	fmt.Println()
	printBox("FACTORED MOMENT",
		fmt.Sprintf("Mu = %.2f ton·m", maxMu),
		fmt.Sprintf("Combination %s", governing.ID),
	)

	if momentPhiMn > 0 {
		dc, err := aci.CheckDemand(maxMu, momentPhiMn)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		printHeading("CAPACITY CHECK:")
		w = newTable()
		fmt.Fprintf(w, "  φMn:\t%.2f ton·m\n", dc.PhiMn)
		fmt.Fprintf(w, "  Mu/φMn:\t%.3f %s\n", dc.Ratio, check(dc.OK))
		w.Flush()
		if !dc.OK {
			fmt.Println("  ⚠ Mu exceeds the design capacity")
		}
		fmt.Println()
	}
}
