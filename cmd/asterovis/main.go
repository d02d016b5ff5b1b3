package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "asterovis",
	Short: "Visibility and illumination analysis for asteroid shape models",
	Long: `asterovis computes face-to-face visibility, direct solar illumination
with self-shadowing, and binary-body eclipse shadowing over triangulated
shape models, producing the inputs for thermal and radiative simulations.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
