package scenario

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/impactviz-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const scenarioYAML = `
scenarios:
  - name: tunguska
    diameter: 60
    velocity: 27000
    angle: 45
  - diameter: 100
    velocity: 20000
    composition: iron
    location:
      lat: 40.7
      lon: -74.0
  - name: broken
    velocity: 20000
`

func newCalc() *domain.Calculator {
	return domain.NewCalculator(domain.DefaultConstants(), nil)
}

func ptr(v float64) *float64 { return &v }

func TestParse(t *testing.T) {
	scenarios, err := Parse([]byte(scenarioYAML))
	require.NoError(t, err)
	require.Len(t, scenarios, 3)

	assert.Equal(t, "tunguska", scenarios[0].Name)
	require.NotNil(t, scenarios[0].Angle)
	assert.InDelta(t, 45, *scenarios[0].Angle, 0)

	assert.Equal(t, "scenario-2", scenarios[1].Name)
	assert.Equal(t, domain.CompositionIron, scenarios[1].Composition)
	require.NotNil(t, scenarios[1].Location)
	assert.InDelta(t, 40.7, scenarios[1].Location.Lat, 1e-9)
	assert.Nil(t, scenarios[1].Density)

	assert.Nil(t, scenarios[2].Diameter)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte("scenarios: []\n"))
	require.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("scenarios: [\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o600))

	scenarios, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, scenarios, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRun_KeepsGoingPastInvalidScenario(t *testing.T) {
	scenarios, err := Parse([]byte(scenarioYAML))
	require.NoError(t, err)

	results := Run(newCalc(), scenarios)
	require.Len(t, results, 3)

	require.NotNil(t, results[0].Report)
	assert.Empty(t, results[0].Error)

	require.NotNil(t, results[1].Report)
	assert.InDelta(t, 7800, results[1].Report.InputParams.DensityKgM3, 0)

	assert.Nil(t, results[2].Report)
	assert.Equal(t, domain.MissingFieldsMessage, results[2].Error)
}

func TestWrite_JSON(t *testing.T) {
	results := Run(newCalc(), []Scenario{{
		Name:          "reference",
		ImpactRequest: domain.ImpactRequest{Diameter: ptr(100), Velocity: ptr(20000)},
	}})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, results))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "reference", decoded[0]["name"])
	report := decoded[0]["report"].(map[string]any)
	energy := report["kinetic_energy"].(map[string]any)
	assert.InDelta(t, 75.09, energy["megatons_tnt"].(float64), 0.01)
	assert.NotContains(t, decoded[0], "error")
}

func TestWrite_YAML(t *testing.T) {
	results := []Result{{Name: "bad", Error: "nope"}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, results))

	var decoded []Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, results, decoded)
}

func TestWrite_Text(t *testing.T) {
	results := Run(newCalc(), []Scenario{
		{Name: "reference", ImpactRequest: domain.ImpactRequest{Diameter: ptr(100), Velocity: ptr(20000)}},
		{Name: "broken"},
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, results))

	out := buf.String()
	assert.Contains(t, out, "reference")
	assert.Contains(t, out, "Mt TNT")
	assert.Contains(t, out, "Seismic magnitude")
	assert.Contains(t, out, domain.ApproximationNote)
	assert.Contains(t, out, domain.MissingFieldsMessage)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
