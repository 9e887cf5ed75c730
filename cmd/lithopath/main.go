// Command lithopath plans a fabrication toolpath for a primitive solid,
// prints its statistics and optionally persists it.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/microfab-data/lithopath/internal/geom"
	"github.com/microfab-data/lithopath/internal/store"
	"github.com/microfab-data/lithopath/internal/toolpath"
)

var (
	shape   = flag.String("shape", "cube", "Solid to plan: cube, cylinder or sphere")
	size    = flag.Float64("size", 10, "Edge length, or diameter for round shapes (um)")
	height  = flag.Float64("height", 10, "Cylinder height (um)")
	centerZ = flag.Float64("center-z", 10, "Z of the solid centre (um)")

	layerHeight = flag.Float64("layer-height", 0.3, "Z increment between layers (um)")
	hatch       = flag.Float64("hatch", 0.5, "Spacing between scan lines (um)")
	speed       = flag.Float64("speed", 50000, "Scan speed (um/s)")
	power       = flag.Float64("power", 20, "Laser power (mW)")
	pattern     = flag.String("pattern", "rectilinear", "Fill pattern: rectilinear, concentric or spiral")

	firstLayerPower = flag.Float64("first-layer-power", 0, "Layer 0 power override, 0 to disable (mW)")
	firstLayerSpeed = flag.Float64("first-layer-speed", 0, "Layer 0 speed override, 0 to disable (um/s)")

	bidirectional = flag.Bool("bidirectional", true, "Scan alternate lines in reverse")
	optimize      = flag.Bool("optimize", true, "Reorder scan segments to reduce travel")

	output  = flag.String("o", "", "Output file (.gcode or .json)")
	csvPath = flag.String("csv", "", "Tabular export file")
	archive = flag.String("archive", "", "Record the toolpath in this sqlite archive")
	name    = flag.String("name", "", "Archive record name (defaults to the shape)")
)

func buildSolid() (geom.Solid, error) {
	switch *shape {
	case "cube":
		return geom.NewCube(*size, 0, 0, *centerZ)
	case "cylinder":
		return geom.NewCylinder(*size/2, *height, 0, 0, *centerZ)
	case "sphere":
		return geom.NewSphere(*size/2, 0, 0, *centerZ)
	default:
		return nil, fmt.Errorf("unknown shape %q", *shape)
	}
}

func main() {
	flag.Parse()

	solid, err := buildSolid()
	if err != nil {
		log.Fatalf("Invalid shape: %v", err)
	}

	cfg := toolpath.PlanningConfig{
		LayerHeight:    *layerHeight,
		HatchDistance:  *hatch,
		ScanSpeed:      *speed,
		Power:          *power,
		FillPattern:    toolpath.FillPattern(*pattern),
		OptimizeTravel: *optimize,
		Bidirectional:  *bidirectional,
	}
	if *firstLayerPower > 0 || *firstLayerSpeed > 0 {
		fl := &toolpath.FirstLayer{Power: *power, Speed: *speed}
		if *firstLayerPower > 0 {
			fl.Power = *firstLayerPower
		}
		if *firstLayerSpeed > 0 {
			fl.Speed = *firstLayerSpeed
		}
		cfg.FirstLayer = fl
	}

	planner, err := toolpath.NewPlanner(cfg)
	if err != nil {
		log.Fatalf("Invalid planning config: %v", err)
	}

	tp, err := planner.Generate(solid)
	if err != nil {
		log.Fatalf("Failed to generate toolpath: %v", err)
	}

	stats := tp.Statistics()
	fmt.Printf("Toolpath for %s:\n", *shape)
	fmt.Printf("  Points:         %d\n", stats.NumPoints)
	fmt.Printf("  Layers:         %d\n", stats.NumLayers)
	fmt.Printf("  Total length:   %.2f um\n", stats.TotalLength)
	fmt.Printf("  Estimated time: %.1f s\n", stats.TimeEstimate)
	fmt.Printf("  Power:          %.2f - %.2f mW (mean %.2f)\n", stats.MinPower, stats.MaxPower, stats.MeanPower)
	fmt.Printf("  Speed:          %.0f - %.0f um/s (mean %.0f)\n", stats.MinSpeed, stats.MaxSpeed, stats.MeanSpeed)
	fmt.Printf("  Nominal dose:   %.4f\n", cfg.DoseEstimate())

	if *output != "" {
		if err := tp.Save(*output, ""); err != nil {
			log.Fatalf("Failed to save toolpath: %v", err)
		}
		log.Printf("Saved toolpath to %s", *output)
	}
	if *csvPath != "" {
		if err := tp.ExportCSV(*csvPath); err != nil {
			log.Fatalf("Failed to export table: %v", err)
		}
		log.Printf("Exported table to %s", *csvPath)
	}
	if *archive != "" {
		s, err := store.Open(*archive)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer s.Close()

		recordName := *name
		if recordName == "" {
			recordName = *shape
		}
		id, err := s.Put(recordName, tp)
		if err != nil {
			log.Fatalf("Failed to archive toolpath: %v", err)
		}
		log.Printf("Archived toolpath %s as %s", recordName, id)
	}
}
