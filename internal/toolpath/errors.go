package toolpath

import "fmt"

// ConfigError reports an invalid PlanningConfig. It is returned at planner
// construction, before any toolpath is generated.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("planning config: %s %s", e.Field, e.Reason)
}

// GeometryError reports missing, empty or un-sliceable input geometry. It is
// returned at Generate entry.
type GeometryError struct {
	Reason string
	Err    error
}

func (e *GeometryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geometry: %s: %v", e.Reason, e.Err)
	}
	return "geometry: " + e.Reason
}

func (e *GeometryError) Unwrap() error { return e.Err }

// FormatError reports an unsupported persistence format or file extension.
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported toolpath format %q", e.Format)
}

// DataError reports a malformed persisted record encountered during load.
// Partial parses are discarded; the caller never receives a half-read
// toolpath.
type DataError struct {
	Path   string
	Line   int
	Reason string
	Err    error
}

func (e *DataError) Error() string {
	msg := fmt.Sprintf("toolpath data %s: %s", e.Path, e.Reason)
	if e.Line > 0 {
		msg = fmt.Sprintf("toolpath data %s:%d: %s", e.Path, e.Line, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataError) Unwrap() error { return e.Err }
