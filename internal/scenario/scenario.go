// Package scenario runs batches of impact simulations described in YAML and
// renders their reports for the terminal.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/impactviz-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// Scenario is one named simulation request.
type Scenario struct {
	Name                 string `yaml:"name"`
	domain.ImpactRequest `yaml:",inline"`
}

// File is the on-disk scenario document.
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Result pairs a scenario name with its report or validation error.
type Result struct {
	Name   string               `json:"name" yaml:"name"`
	Report *domain.ImpactReport `json:"report,omitempty" yaml:"report,omitempty"`
	Error  string               `json:"error,omitempty" yaml:"error,omitempty"`
}

// Load reads and parses a scenario file.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a scenario document. Unnamed scenarios are numbered.
func Parse(data []byte) ([]Scenario, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, errors.New("parse scenarios: no scenarios defined")
	}
	for i := range f.Scenarios {
		if f.Scenarios[i].Name == "" {
			f.Scenarios[i].Name = fmt.Sprintf("scenario-%d", i+1)
		}
	}
	return f.Scenarios, nil
}

// Run simulates every scenario in order. Invalid scenarios produce a Result
// with Error set rather than aborting the batch.
func Run(calc *domain.Calculator, scenarios []Scenario) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		report, err := calc.Simulate(s.ImpactRequest)
		if err != nil {
			results = append(results, Result{Name: s.Name, Error: err.Error()})
			continue
		}
		results = append(results, Result{Name: s.Name, Report: &report})
	}
	return results
}
