package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Scenario string               `json:"scenario"`
	Steppers map[string]string    `json:"steppers"`
	Dt       float64              `json:"dt"`
	Duration float64              `json:"duration"`
	Courant  float64              `json:"courant"`
	Steps    int                  `json:"steps"`
	Times    []float64            `json:"times"`
	Dts      []float64            `json:"dts"`
	Series   map[string][]float64 `json:"series"`
	Metrics  map[string]float64   `json:"metrics"`
}

// ExportJSON writes a run as one self-contained JSON document.
func ExportJSON(path string, meta *RunMetadata, times, dts []float64, series map[string][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encodeExport(file, meta, times, dts, series)
}

// ExportJSONStdout writes the same document to standard output.
func ExportJSONStdout(meta *RunMetadata, times, dts []float64, series map[string][]float64) error {
	return encodeExport(os.Stdout, meta, times, dts, series)
}

func encodeExport(w io.Writer, meta *RunMetadata, times, dts []float64, series map[string][]float64) error {
	data := ExportData{
		Scenario: meta.Scenario,
		Steppers: meta.Steppers,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Courant:  meta.Courant,
		Steps:    meta.Steps,
		Times:    times,
		Dts:      dts,
		Series:   series,
		Metrics:  meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
