package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/asterovis/internal/asterovis"
)

var runCmd = &cobra.Command{
	Use:   "run <config.yaml>",
	Short: "Execute an analysis job described by a YAML config",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := asterovis.Run(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
