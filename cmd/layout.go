package cmd

import (
	"fmt"

	"github.com/alexiusacademia/rcflex/internal/layout"
	"github.com/alexiusacademia/rcflex/internal/steel"
	"github.com/spf13/cobra"
)

var (
	layoutBars    string
	layoutWidth   float64
	layoutCover   float64
	layoutStirrup float64
	layoutSpacing float64
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Minimum beam width for one layer of bars",
	Long: `Calculate the narrowest section that takes the bars in a single layer:

  b,min = Σ n·db + (N - 1)·s + 2·cover + 2·stirrup

Detailing defaults come from the configuration (4 cm cover, 1 cm stirrup,
2.54 cm clear spacing).

Examples:
  rcflex layout --bars '3x5/8"'
  rcflex layout --bars '2x1",2x3/4"' --width 25`,
	Run: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().StringVar(&layoutBars, "bars", "", "Bars in the layer, e.g. '2x1\",1x5/8\"' [required]")
	layoutCmd.Flags().Float64VarP(&layoutWidth, "width", "b", 0, "Beam width to check (cm)")
	layoutCmd.Flags().Float64Var(&layoutCover, "cover", 0, "Clear cover to the stirrup (cm)")
	layoutCmd.Flags().Float64Var(&layoutStirrup, "stirrup", 0, "Stirrup diameter (cm)")
	layoutCmd.Flags().Float64Var(&layoutSpacing, "spacing", 0, "Minimum clear spacing between bars (cm)")

	layoutCmd.MarkFlagRequired("bars")
}

func runLayout(cmd *cobra.Command, args []string) {
	groups, err := steel.ParseGroups(layoutBars)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	p := cfg.Layout
	if cmd.Flags().Changed("cover") {
		p.Cover = layoutCover
	}
	if cmd.Flags().Changed("stirrup") {
		p.StirrupDiameter = layoutStirrup
	}
	if cmd.Flags().Changed("spacing") {
		p.MinClearSpacing = layoutSpacing
	}

	result, err := layout.MinimumWidth(steel.Standard, groups, p)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printTitle("ONE-LAYER MINIMUM WIDTH")

	printHeading("INPUT DATA:")
	w := newTable()
	fmt.Fprintf(w, "  Bars:\t%s\n", steel.FormatGroups(groups))
	fmt.Fprintf(w, "  Cover:\t%.2f cm\n", p.Cover)
	fmt.Fprintf(w, "  Stirrup:\t%.2f cm\n", p.StirrupDiameter)
	fmt.Fprintf(w, "  Clear spacing:\t%.2f cm\n", p.MinClearSpacing)
	w.Flush()
	fmt.Println()

	printBox("MINIMUM WIDTH",
		fmt.Sprintf("b,min = %.2f cm", result.Width),
		fmt.Sprintf("Bars in the layer: %d", result.BarCount),
	)

	if layoutWidth > 0 {
		if result.Fits(layoutWidth) {
			fmt.Printf("  ✓ The bars fit in one layer of a %.1f cm beam\n", layoutWidth)
		} else {
			fmt.Printf("  ⚠ The bars need %.2f cm more than b = %.1f cm; use two layers\n", result.Width-layoutWidth, layoutWidth)
		}
		fmt.Println()
	}
}
