package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	require.NoError(t, ExportJSON(path, testMeta(), testResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded ExportData
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "well", decoded.Scenario)
	assert.Equal(t, 2, decoded.StepsTaken)
	assert.Len(t, decoded.Times, 3)
	require.Contains(t, decoded.Series, "energy")
	assert.InDelta(t, 4.5, decoded.Series["energy"][1], 1e-12)
	assert.InDelta(t, 2e-10, decoded.EnergyDrift, 1e-15)
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")

	require.NoError(t, ExportCSV(path, testResult()))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, []string{"time", "energy", "norm"}, records[0])
	assert.Equal(t, "0.005000", records[2][0])
	assert.Equal(t, "4.500000", records[1][1])
}
