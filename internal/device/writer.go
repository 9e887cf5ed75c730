package device

import (
	"context"
	"fmt"
	"log"

	"github.com/microfab-data/lithopath/internal/toolpath"
)

// Writer streams a planned toolpath to a laser and stage pair: for every
// point it retunes speed and power when they change, moves the stage, and
// keeps the shutter open for the duration of the exposure sequence.
type Writer struct {
	Laser *Laser
	Stage *Stage
}

// Run fabricates the toolpath. The context cancels between points; a
// cancelled run closes the shutter before returning. Cancellation semantics
// live here, at the hardware boundary, not inside the planning pipeline.
func (w *Writer) Run(ctx context.Context, tp *toolpath.Toolpath) error {
	if tp.NumPoints() == 0 {
		return fmt.Errorf("writer: empty toolpath")
	}

	log.Printf("device: writing %d points across %d layers", tp.NumPoints(), tp.Layers)

	var curPower, curSpeed float64
	shutterOpen := false
	defer func() {
		if shutterOpen {
			if err := w.Laser.CloseShutter(); err != nil {
				log.Printf("device: closing shutter after run: %v", err)
			}
		}
	}()

	for i, p := range tp.Points {
		select {
		case <-ctx.Done():
			return fmt.Errorf("writer: cancelled at point %d: %w", i, ctx.Err())
		default:
		}

		if p.Speed != curSpeed {
			if err := w.Stage.SetSpeed(p.Speed); err != nil {
				return err
			}
			curSpeed = p.Speed
		}
		if p.Power != curPower {
			if err := w.Laser.SetPower(p.Power); err != nil {
				return err
			}
			curPower = p.Power
		}
		if err := w.Stage.MoveTo(p.X, p.Y, p.Z); err != nil {
			return err
		}
		if !shutterOpen {
			if err := w.Laser.OpenShutter(); err != nil {
				return err
			}
			shutterOpen = true
		}
	}

	if err := w.Laser.CloseShutter(); err != nil {
		return err
	}
	shutterOpen = false
	return nil
}
