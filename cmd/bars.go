package cmd

import (
	"fmt"

	"github.com/alexiusacademia/rcflex/internal/steel"
	"github.com/spf13/cobra"
)

var barsCmd = &cobra.Command{
	Use:   "bars",
	Short: "List the reinforcing bar catalog",
	Long: `List the available bar sizes with their nominal area and the
diameter derived from it (d = √(4A/π)).`,
	Run: runBars,
}

func init() {
	rootCmd.AddCommand(barsCmd)
}

func runBars(cmd *cobra.Command, args []string) {
	printTitle("REINFORCING BAR CATALOG")

	w := newTable()
	fmt.Fprintf(w, "  Size\tArea (cm²)\tDiameter (cm)\n")
	fmt.Fprintf(w, "  ────\t──────────\t─────────────\n")
	for _, s := range steel.Standard.Sizes() {
		fmt.Fprintf(w, "  %s\t%.2f\t%.3f\n", s.Designation, s.Area, s.Diameter())
	}
	w.Flush()
	fmt.Println()
}
