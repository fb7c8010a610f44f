package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/Sciguy324/QuantumSimulator/internal/sim"
)

// ExportData is the full-run JSON payload: run metadata plus the
// sampled series.
type ExportData struct {
	RunMetadata
	Times  []float64            `json:"times"`
	Series map[string][]float64 `json:"series"`
}

// ExportJSON writes metadata and series as indented JSON. An empty
// path or "-" selects stdout.
func ExportJSON(path string, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		RunMetadata: meta,
		Times:       result.Times,
		Series:      result.Series,
	}
	data.StepsTaken = result.StepsTaken
	data.NormDrift = result.NormDrift
	data.EnergyDrift = result.EnergyDrift
	data.Metrics = result.Metrics

	out := io.Writer(os.Stdout)
	if path != "" && path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes the sampled series as CSV. An empty path or "-"
// selects stdout.
func ExportCSV(path string, result *sim.Result) error {
	if path == "" || path == "-" {
		return writeSeriesTo(os.Stdout, result.Times, result.Series)
	}
	return writeSeries(path, result.Times, result.Series)
}

func writeSeries(path string, times []float64, series map[string][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeSeriesTo(file, times, series)
}

func writeSeriesTo(out io.Writer, times []float64, series map[string][]float64) error {
	w := csv.NewWriter(out)

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	header := append([]string{"time"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range times {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(t, 'f', 6, 64))
		for _, name := range names {
			vals := series[name]
			v := 0.0
			if i < len(vals) {
				v = vals[i]
			}
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
