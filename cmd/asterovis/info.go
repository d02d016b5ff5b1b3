package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/asterovis/internal/asterovis"
)

var infoCmd = &cobra.Command{
	Use:   "info <shape.obj>",
	Short: "Display statistics about a shape model",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	mesh, err := asterovis.LoadOBJ(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading shape model: %v\n", err)
		os.Exit(1)
	}

	totalArea := 0.0
	for _, a := range mesh.Areas {
		totalArea += a
	}

	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("  Vertices: %d\n", len(mesh.Vertices))
	fmt.Printf("  Faces: %d\n", mesh.NFaces())
	fmt.Printf("  Surface area: %.6f\n", totalArea)
	fmt.Printf("  Bounding-sphere radius: %.6f\n", mesh.BoundingRadius())
	fmt.Printf("  Inscribed-sphere radius: %.6f\n", mesh.InscribedRadius())
}
