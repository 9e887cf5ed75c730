package toolpath

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// EncodeGCode writes the line-oriented command format: comment headers with
// the point count, layer count, total length and time estimate, a G21/G90
// preamble, then one G1 line per point with X/Y/Z/F/P tokens and a closing
// comment. The layout is a stable contract.
func (tp *Toolpath) EncodeGCode(w io.Writer) error {
	if err := tp.checkEncodable(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "; Microfabrication Toolpath\n")
	fmt.Fprintf(bw, "; Points: %d\n", tp.NumPoints())
	fmt.Fprintf(bw, "; Layers: %d\n", tp.Layers)
	fmt.Fprintf(bw, "; Total length: %.2f um\n", tp.TotalLength())
	fmt.Fprintf(bw, "; Estimated time: %.1f s\n", tp.TimeEstimate())
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "G21 ; Set units to micrometers\n")
	fmt.Fprintf(bw, "G90 ; Absolute positioning\n")
	fmt.Fprintf(bw, "\n")

	for _, p := range tp.Points {
		if _, err := fmt.Fprintf(bw, "G1 X%.4f Y%.4f Z%.4f F%.0f P%.2f\n",
			p.X, p.Y, p.Z, p.Speed, p.Power); err != nil {
			return fmt.Errorf("write toolpath command: %w", err)
		}
	}

	fmt.Fprintf(bw, "\n; End of toolpath\n")
	return bw.Flush()
}

// DecodeGCode parses the line-oriented command format. Unknown comment lines
// are tolerated; the layer count comes from its designated header comment
// and defaults to 1 when absent.
func DecodeGCode(r io.Reader) (*Toolpath, error) {
	tp := &Toolpath{Layers: 1}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "; Layers:") {
			v := strings.TrimSpace(strings.TrimPrefix(line, "; Layers:"))
			layers, err := strconv.Atoi(v)
			if err != nil {
				return nil, &DataError{Line: lineNo, Reason: "malformed layer count", Err: err}
			}
			tp.Layers = layers
			continue
		}

		if !strings.HasPrefix(line, "G1") {
			continue
		}
		p, err := parseG1(line)
		if err != nil {
			return nil, &DataError{Line: lineNo, Reason: "malformed command line", Err: err}
		}
		tp.Points = append(tp.Points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read toolpath: %w", err)
	}
	return tp, nil
}

// parseG1 extracts position, speed and power from a G1 command's
// key-prefixed tokens.
func parseG1(line string) (Point, error) {
	var p Point
	for _, tok := range strings.Fields(line)[1:] {
		if len(tok) < 2 {
			return Point{}, fmt.Errorf("bare token %q", tok)
		}
		v, err := strconv.ParseFloat(tok[1:], 64)
		if err != nil {
			return Point{}, fmt.Errorf("token %q: %w", tok, err)
		}
		switch tok[0] {
		case 'X':
			p.X = v
		case 'Y':
			p.Y = v
		case 'Z':
			p.Z = v
		case 'F':
			p.Speed = v
		case 'P':
			p.Power = v
		default:
			return Point{}, fmt.Errorf("unknown token %q", tok)
		}
	}
	return p, nil
}
