// Command fabricate streams a saved toolpath to the laser and stage
// controllers. Interrupting the run closes the shutter before exiting.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/microfab-data/lithopath/internal/device"
	"github.com/microfab-data/lithopath/internal/toolpath"
)

var (
	input = flag.String("i", "", "Toolpath file to fabricate (.gcode or .json)")

	laserPort = flag.String("laser-port", "/dev/ttyUSB0", "Laser controller serial port")
	laserBaud = flag.Int("laser-baud", 115200, "Laser controller baud rate")
	maxPower  = flag.Float64("max-power", 100, "Laser power ceiling (mW)")

	stagePort = flag.String("stage-port", "/dev/ttyUSB1", "Stage controller serial port")
	stageBaud = flag.Int("stage-baud", 115200, "Stage controller baud rate")
	travelX   = flag.Float64("travel-x", 100, "Stage X travel range (um)")
	travelY   = flag.Float64("travel-y", 100, "Stage Y travel range (um)")
	travelZ   = flag.Float64("travel-z", 100, "Stage Z travel range (um)")

	dryRun = flag.Bool("dry-run", false, "Use mock controllers instead of serial ports")
)

func openLinks() (laser, stage device.Link, err error) {
	if *dryRun {
		return device.NewMockLink(nil), device.NewMockLink(nil), nil
	}
	laser, err = device.OpenSerialLink(*laserPort, *laserBaud)
	if err != nil {
		return nil, nil, err
	}
	stage, err = device.OpenSerialLink(*stagePort, *stageBaud)
	if err != nil {
		laser.Close()
		return nil, nil, err
	}
	return laser, stage, nil
}

func main() {
	flag.Parse()
	if *input == "" {
		log.Fatal("No toolpath file given, use -i")
	}

	tp, err := toolpath.Load(*input, "")
	if err != nil {
		log.Fatalf("Failed to load toolpath: %v", err)
	}
	stats := tp.Statistics()
	log.Printf("Loaded %s: %d points, %d layers, estimated %.1f s",
		*input, stats.NumPoints, stats.NumLayers, stats.TimeEstimate)

	laserLink, stageLink, err := openLinks()
	if err != nil {
		log.Fatalf("Failed to open controller links: %v", err)
	}

	laser := device.NewLaser(laserLink, *maxPower)
	if err := laser.Connect(); err != nil {
		log.Fatalf("Laser: %v", err)
	}
	defer laser.Disconnect()

	stage := device.NewStage(stageLink, device.TravelRange{X: *travelX, Y: *travelY, Z: *travelZ})
	if err := stage.Connect(); err != nil {
		log.Fatalf("Stage: %v", err)
	}
	defer stage.Disconnect()

	if err := stage.Home(); err != nil {
		log.Fatalf("Stage homing failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := &device.Writer{Laser: laser, Stage: stage}
	if err := w.Run(ctx, tp); err != nil {
		if emergencyErr := laser.EmergencyStop(); emergencyErr != nil {
			log.Printf("Emergency stop: %v", emergencyErr)
		}
		log.Fatalf("Fabrication failed: %v", err)
	}
	log.Printf("Fabrication complete")
}
