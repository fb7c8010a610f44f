package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
	"github.com/Sciguy324/QuantumSimulator/internal/sim"
)

// Store keeps finished runs on disk, one directory per run holding
// metadata.json, the sampled observables, and the final wavefunction.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Dim         int                `json:"dim"`
	Shape       []int              `json:"shape"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	StepsTaken  int                `json:"steps_taken"`
	Order       int                `json:"order"`
	Propagator  string             `json:"propagator"`
	Boundary    string             `json:"boundary"`
	NormDrift   float64            `json:"norm_drift"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one run to <baseDir>/<scenario>_<unixtime>/. The caller
// fills the scenario and numerical fields of meta; everything derived
// from the run itself is filled in here.
func (s *Store) Save(meta RunMetadata, g *quantum.Grid, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Dim = g.Dim()
	meta.Shape = g.Shape
	meta.StepsTaken = result.StepsTaken
	meta.NormDrift = result.NormDrift
	meta.EnergyDrift = result.EnergyDrift
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeSeries(filepath.Join(runDir, "observables.csv"), result.Times, result.Series); err != nil {
		return "", err
	}
	if err := writeWavefunction(filepath.Join(runDir, "wavefunction.csv"), g, result.Final); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads the sampled observables back, keyed the way the
// probes named them.
func (s *Store) LoadSeries(runID string) ([]float64, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "observables.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return []float64{}, map[string][]float64{}, nil
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)
	series := make(map[string][]float64, len(header)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(header) {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				val = 0
			}
			series[header[j]] = append(series[header[j]], val)
		}
	}

	return times, series, nil
}

// LoadWavefunction reads the stored final state back as amplitudes.
func (s *Store) LoadWavefunction(runID string) (quantum.State, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "wavefunction.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return quantum.State{}, nil
	}

	reCol, imCol := -1, -1
	for j, name := range records[0] {
		switch name {
		case "re":
			reCol = j
		case "im":
			imCol = j
		}
	}
	if reCol < 0 || imCol < 0 {
		return nil, fmt.Errorf("wavefunction header lacks re/im columns")
	}

	psi := make(quantum.State, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) <= imCol {
			continue
		}
		re, err := strconv.ParseFloat(record[reCol], 64)
		if err != nil {
			continue
		}
		im, err := strconv.ParseFloat(record[imCol], 64)
		if err != nil {
			continue
		}
		psi = append(psi, complex(re, im))
	}

	return psi, nil
}

// formatG keeps full precision; amplitudes span orders of magnitude.
func formatG(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeWavefunction(path string, g *quantum.Grid, psi quantum.State) error {
	if len(psi) == 0 {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"x", "re", "im", "density"}
	if g.Dim() == 2 {
		header = []string{"x", "y", "re", "im", "density"}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	switch g.Dim() {
	case 1:
		for i, x := range g.Axes[0] {
			v := psi[i]
			re, im := real(v), imag(v)
			row := []string{formatG(x), formatG(re), formatG(im), formatG(re*re + im*im)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	case 2:
		ny := g.Shape[1]
		for ix, x := range g.Axes[0] {
			for iy, y := range g.Axes[1] {
				v := psi[ix*ny+iy]
				re, im := real(v), imag(v)
				row := []string{formatG(x), formatG(y), formatG(re), formatG(im), formatG(re*re + im*im)}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
