package cmd

import (
	"fmt"

	"github.com/alexiusacademia/rcflex/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rcflex",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rcflex v%s\n", version.Version)
		fmt.Println("Reinforced Concrete Flexural Capacity")
		fmt.Println("Based on ACI 318 strength design")
		if version.GitCommit != "unknown" {
			fmt.Printf("Commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
