package device

import (
	"fmt"
	"strconv"
	"strings"
)

// LaserState is the operational state of the laser controller.
type LaserState int

const (
	LaserOff LaserState = iota
	LaserStandby
	LaserReady
	LaserEmitting
	LaserError
)

func (s LaserState) String() string {
	switch s {
	case LaserOff:
		return "off"
	case LaserStandby:
		return "standby"
	case LaserReady:
		return "ready"
	case LaserEmitting:
		return "emitting"
	default:
		return "error"
	}
}

// LaserStatus is a snapshot of the laser controller.
type LaserStatus struct {
	State       LaserState
	Power       float64 // mW
	ShutterOpen bool
}

// Laser controls a femtosecond laser over a command link: power setpoint,
// shutter and status queries.
type Laser struct {
	link     Link
	maxPower float64
	state    LaserState
	power    float64
	shutter  bool
}

// NewLaser wraps a link with the given maximum power in milliwatts.
func NewLaser(link Link, maxPower float64) *Laser {
	return &Laser{link: link, maxPower: maxPower}
}

// Connect verifies the controller responds to identification.
func (l *Laser) Connect() error {
	reply, err := l.link.Send("*IDN?")
	if err != nil {
		return fmt.Errorf("laser connect: %w", err)
	}
	if reply == "" {
		return fmt.Errorf("laser connect: no response from controller")
	}
	l.state = LaserStandby
	return nil
}

// Disconnect closes the shutter if needed and releases the link.
func (l *Laser) Disconnect() error {
	if l.shutter {
		if err := l.CloseShutter(); err != nil {
			return err
		}
	}
	l.state = LaserOff
	return l.link.Close()
}

// SetPower sets the laser power setpoint in milliwatts.
func (l *Laser) SetPower(power float64) error {
	if l.state == LaserOff {
		return fmt.Errorf("laser: not connected")
	}
	if power < 0 || power > l.maxPower {
		return fmt.Errorf("laser: power %.2f mW outside [0, %.2f]", power, l.maxPower)
	}
	reply, err := l.link.Send(fmt.Sprintf("POWER %.2f", power))
	if err != nil {
		return fmt.Errorf("laser set power: %w", err)
	}
	if !strings.Contains(reply, "OK") {
		return fmt.Errorf("laser set power: controller replied %q", reply)
	}
	l.power = power
	return nil
}

// Power queries the current power setpoint.
func (l *Laser) Power() (float64, error) {
	if l.state == LaserOff {
		return 0, fmt.Errorf("laser: not connected")
	}
	reply, err := l.link.Send("POWER?")
	if err != nil {
		return 0, fmt.Errorf("laser query power: %w", err)
	}
	power, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0, fmt.Errorf("laser query power: bad reply %q: %w", reply, err)
	}
	l.power = power
	return power, nil
}

// OpenShutter enables emission.
func (l *Laser) OpenShutter() error {
	if l.state == LaserOff {
		return fmt.Errorf("laser: not connected")
	}
	reply, err := l.link.Send("SHUTTER OPEN")
	if err != nil {
		return fmt.Errorf("laser open shutter: %w", err)
	}
	if !strings.Contains(reply, "OK") {
		return fmt.Errorf("laser open shutter: controller replied %q", reply)
	}
	l.shutter = true
	l.state = LaserEmitting
	return nil
}

// CloseShutter disables emission.
func (l *Laser) CloseShutter() error {
	if l.state == LaserOff {
		return fmt.Errorf("laser: not connected")
	}
	reply, err := l.link.Send("SHUTTER CLOSE")
	if err != nil {
		return fmt.Errorf("laser close shutter: %w", err)
	}
	if !strings.Contains(reply, "OK") {
		return fmt.Errorf("laser close shutter: controller replied %q", reply)
	}
	l.shutter = false
	l.state = LaserReady
	return nil
}

// Status returns the current controller snapshot.
func (l *Laser) Status() LaserStatus {
	return LaserStatus{State: l.state, Power: l.power, ShutterOpen: l.shutter}
}

// EmergencyStop closes the shutter and zeroes the power, ignoring state
// checks. Errors from the controller are returned but the local state is
// reset regardless.
func (l *Laser) EmergencyStop() error {
	_, shutterErr := l.link.Send("SHUTTER CLOSE")
	_, powerErr := l.link.Send("POWER 0.00")
	l.shutter = false
	l.power = 0
	l.state = LaserStandby
	if shutterErr != nil {
		return fmt.Errorf("laser emergency stop: %w", shutterErr)
	}
	if powerErr != nil {
		return fmt.Errorf("laser emergency stop: %w", powerErr)
	}
	return nil
}
