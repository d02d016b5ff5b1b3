package asterovis

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/lukaszgryglicki/asterovis/internal/logger"
)

// Run executes one analysis job described by a YAML config: load the shape
// model, evaluate per-face illumination, optionally apply eclipse shadowing
// by a secondary body, and write the per-face result file.
func Run(cfgPath string) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	mesh, err := LoadOBJ(cfg.Shape)
	if err != nil {
		return err
	}
	logger.Log.Info("loaded shape model",
		zap.String("path", cfg.Shape),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("faces", mesh.NFaces()),
		zap.Float64("bounding_radius", mesh.BoundingRadius()),
		zap.Float64("inscribed_radius", mesh.InscribedRadius()))

	sun := Vector3{cfg.SunDirection[0], cfg.SunDirection[1], cfg.SunDirection[2]}

	var il *Illuminator
	switch cfg.Mode {
	case "pseudo_convex":
		il = NewPseudoConvexIlluminator(mesh)
	case "self_shadowing":
		start := time.Now()
		graph := BuildVisibilityGraph(mesh)
		maxElev, err := FaceMaxElevations(mesh, graph)
		if err != nil {
			return err
		}
		logger.Log.Info("built visibility graph",
			zap.Int("visible_pairs", graph.NPairs()),
			zap.Duration("elapsed", time.Since(start)))
		il, err = NewSelfShadowingIlluminator(mesh, graph, maxElev, cfg.ElevationMarginDeg*math.Pi/180)
		if err != nil {
			return err
		}
	}

	illum := make([]bool, mesh.NFaces())
	start := time.Now()
	if err := il.IlluminateAll(sun, illum); err != nil {
		return err
	}
	logger.Log.Info("evaluated illumination",
		zap.String("mode", cfg.Mode),
		zap.Int("sunlit", countTrue(illum)),
		zap.Duration("elapsed", time.Since(start)))

	if cfg.Secondary != nil {
		meshB, err := LoadOBJ(cfg.Secondary.Shape)
		if err != nil {
			return err
		}
		idxB := BuildIndex(meshB)
		rot := RotFromAngles(Rot3{
			X: cfg.Secondary.RotationDeg[0] * math.Pi / 180,
			Y: cfg.Secondary.RotationDeg[1] * math.Pi / 180,
			Z: cfg.Secondary.RotationDeg[2] * math.Pi / 180,
		})
		pos := Point3{cfg.Secondary.Position[0], cfg.Secondary.Position[1], cfg.Secondary.Position[2]}
		status, err := ApplyEclipseShadowing(illum, mesh, meshB, idxB, sun, pos, rot)
		if err != nil {
			return err
		}
		logger.Log.Info("applied eclipse shadowing",
			zap.String("status", status.String()),
			zap.Int("sunlit", countTrue(illum)))
	}

	if cfg.Output != "" {
		if err := writeIlluminationCSV(cfg.Output, illum); err != nil {
			return err
		}
		logger.Log.Info("wrote result file", zap.String("path", cfg.Output))
	}
	return nil
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func writeIlluminationCSV(path string, illum []bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "face,illuminated")
	for i, lit := range illum {
		v := 0
		if lit {
			v = 1
		}
		fmt.Fprintf(w, "%d,%d\n", i, v)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return nil
}
