package toolpath

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
)

// ExportCSV writes the tabular export: a fixed header row followed by one
// row per point at the persisted precision. The export is write-only; this
// subsystem never reads it back.
func (tp *Toolpath) ExportCSV(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := filesystem.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	f, err := filesystem.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := tp.writeCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (tp *Toolpath) writeCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "x,y,z,power,speed\n")
	for _, p := range tp.Points {
		if _, err := fmt.Fprintf(bw, "%.4f,%.4f,%.4f,%.2f,%.0f\n",
			p.X, p.Y, p.Z, p.Power, p.Speed); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	return bw.Flush()
}
