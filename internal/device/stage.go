package device

import (
	"fmt"
	"strconv"
	"strings"
)

// TravelRange is the reachable volume of a stage axis set, in micrometres
// from the hardware origin.
type TravelRange struct {
	X, Y, Z float64
}

// Stage controls an XYZ translation stage over a command link. Positions are
// absolute micrometres; moves outside the travel range are rejected before
// any command reaches the hardware.
type Stage struct {
	link      Link
	travel    TravelRange
	connected bool
	x, y, z   float64
	speed     float64 // µm/s
}

// NewStage wraps a link with the given travel range.
func NewStage(link Link, travel TravelRange) *Stage {
	return &Stage{link: link, travel: travel}
}

// Connect verifies the controller responds to identification.
func (s *Stage) Connect() error {
	reply, err := s.link.Send("*IDN?")
	if err != nil {
		return fmt.Errorf("stage connect: %w", err)
	}
	if reply == "" {
		return fmt.Errorf("stage connect: no response from controller")
	}
	s.connected = true
	return nil
}

// Disconnect releases the link.
func (s *Stage) Disconnect() error {
	s.connected = false
	return s.link.Close()
}

// Home moves all axes to the travel-range centre.
func (s *Stage) Home() error {
	if !s.connected {
		return fmt.Errorf("stage: not connected")
	}
	reply, err := s.link.Send("HOME")
	if err != nil {
		return fmt.Errorf("stage home: %w", err)
	}
	if !strings.Contains(reply, "OK") {
		return fmt.Errorf("stage home: controller replied %q", reply)
	}
	s.x, s.y, s.z = s.travel.X/2, s.travel.Y/2, s.travel.Z/2
	return nil
}

// MoveTo moves to an absolute position.
func (s *Stage) MoveTo(x, y, z float64) error {
	if !s.connected {
		return fmt.Errorf("stage: not connected")
	}
	if x < 0 || x > s.travel.X || y < 0 || y > s.travel.Y || z < 0 || z > s.travel.Z {
		return fmt.Errorf("stage: position (%.2f, %.2f, %.2f) outside travel range (%.0f, %.0f, %.0f)",
			x, y, z, s.travel.X, s.travel.Y, s.travel.Z)
	}
	reply, err := s.link.Send(fmt.Sprintf("MOVE %.4f %.4f %.4f", x, y, z))
	if err != nil {
		return fmt.Errorf("stage move: %w", err)
	}
	if !strings.Contains(reply, "OK") {
		return fmt.Errorf("stage move: controller replied %q", reply)
	}
	s.x, s.y, s.z = x, y, z
	return nil
}

// MoveBy moves relative to the current position.
func (s *Stage) MoveBy(dx, dy, dz float64) error {
	return s.MoveTo(s.x+dx, s.y+dy, s.z+dz)
}

// Position queries the controller for the current position.
func (s *Stage) Position() (x, y, z float64, err error) {
	if !s.connected {
		return 0, 0, 0, fmt.Errorf("stage: not connected")
	}
	reply, err := s.link.Send("POS?")
	if err != nil {
		return 0, 0, 0, fmt.Errorf("stage query position: %w", err)
	}
	fields := strings.Fields(reply)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("stage query position: bad reply %q", reply)
	}
	coords := make([]float64, 3)
	for i, f := range fields {
		coords[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("stage query position: bad reply %q: %w", reply, err)
		}
	}
	s.x, s.y, s.z = coords[0], coords[1], coords[2]
	return s.x, s.y, s.z, nil
}

// SetSpeed sets the traversal speed in micrometres per second.
func (s *Stage) SetSpeed(speed float64) error {
	if !s.connected {
		return fmt.Errorf("stage: not connected")
	}
	if speed <= 0 {
		return fmt.Errorf("stage: speed must be positive, got %g", speed)
	}
	reply, err := s.link.Send(fmt.Sprintf("SPEED %.0f", speed))
	if err != nil {
		return fmt.Errorf("stage set speed: %w", err)
	}
	if !strings.Contains(reply, "OK") {
		return fmt.Errorf("stage set speed: controller replied %q", reply)
	}
	s.speed = speed
	return nil
}

// Speed returns the last commanded traversal speed.
func (s *Stage) Speed() float64 { return s.speed }
