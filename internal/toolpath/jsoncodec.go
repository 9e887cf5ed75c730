package toolpath

import (
	"encoding/json"
	"fmt"
	"io"
)

// The structured record format: a metadata block followed by ordered
// per-point records. Field names are a stable contract.
type jsonMetadata struct {
	NumPoints    int     `json:"num_points"`
	NumLayers    int     `json:"num_layers"`
	TotalLength  float64 `json:"total_length"`
	TimeEstimate float64 `json:"time_estimate"`
}

type jsonPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Power float64 `json:"power"`
	Speed float64 `json:"speed"`
}

type jsonToolpath struct {
	Metadata jsonMetadata `json:"metadata"`
	Toolpath []jsonPoint  `json:"toolpath"`
}

// EncodeJSON writes the structured record format. Values are rounded to the
// persisted precision before encoding so a reload reproduces them exactly.
func (tp *Toolpath) EncodeJSON(w io.Writer) error {
	if err := tp.checkEncodable(); err != nil {
		return err
	}
	doc := jsonToolpath{
		Metadata: jsonMetadata{
			NumPoints:    tp.NumPoints(),
			NumLayers:    tp.Layers,
			TotalLength:  tp.TotalLength(),
			TimeEstimate: tp.TimeEstimate(),
		},
		Toolpath: make([]jsonPoint, len(tp.Points)),
	}
	for i, p := range tp.Points {
		doc.Toolpath[i] = jsonPoint{
			X:     roundTo(p.X, positionDecimals),
			Y:     roundTo(p.Y, positionDecimals),
			Z:     roundTo(p.Z, positionDecimals),
			Power: roundTo(p.Power, powerDecimals),
			Speed: roundTo(p.Speed, 0),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode toolpath json: %w", err)
	}
	return nil
}

// DecodeJSON parses the structured record format. A metadata/record-count
// mismatch is rejected rather than silently completed.
func DecodeJSON(r io.Reader) (*Toolpath, error) {
	var doc jsonToolpath
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &DataError{Reason: "malformed structured record", Err: err}
	}
	if doc.Metadata.NumPoints != len(doc.Toolpath) {
		return nil, &DataError{Reason: fmt.Sprintf(
			"metadata reports %d points but %d records present",
			doc.Metadata.NumPoints, len(doc.Toolpath))}
	}

	tp := &Toolpath{Layers: doc.Metadata.NumLayers}
	if tp.Layers == 0 {
		tp.Layers = 1
	}
	tp.Points = make([]Point, len(doc.Toolpath))
	for i, rec := range doc.Toolpath {
		tp.Points[i] = Point{X: rec.X, Y: rec.Y, Z: rec.Z, Power: rec.Power, Speed: rec.Speed}
	}
	return tp, nil
}
