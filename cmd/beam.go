package cmd

import (
	"github.com/spf13/cobra"
)

var beamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Rectangular beam flexural analysis",
	Long: `Flexural capacity of rectangular reinforced concrete beams.

Singly reinforced sections are solved in closed form. Sections with
compression steel are solved for the neutral axis by iteration or by
the quadratic equilibrium equation (--method).`,
}

func init() {
	rootCmd.AddCommand(beamCmd)
}
