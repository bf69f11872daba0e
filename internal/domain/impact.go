package domain

import (
	"fmt"
	"math"
	"strings"
)

// Location is a WGS-84 coordinate pair for the impact point.
type Location struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// ImpactRequest holds caller-supplied simulation parameters. Pointer fields
// distinguish "absent" from zero.
type ImpactRequest struct {
	Diameter    *float64    `json:"diameter" yaml:"diameter" binding:"required"`
	Velocity    *float64    `json:"velocity" yaml:"velocity" binding:"required"`
	Density     *float64    `json:"density,omitempty" yaml:"density,omitempty"`
	Angle       *float64    `json:"angle,omitempty" yaml:"angle,omitempty"`
	Composition Composition `json:"composition,omitempty" yaml:"composition,omitempty"`
	Location    *Location   `json:"location,omitempty" yaml:"location,omitempty"`
}

// Validate checks that diameter and velocity are present and finite. Optional
// numeric fields must be finite when given, and a composition must be known.
func (r ImpactRequest) Validate() error {
	if !finite(r.Diameter) || !finite(r.Velocity) {
		return &InputError{Message: MissingFieldsMessage}
	}
	if r.Density != nil && !finite(r.Density) {
		return &InputError{Message: "'density' must be a finite number (kg/m³)."}
	}
	if r.Angle != nil && !finite(r.Angle) {
		return &InputError{Message: "'angle' must be a finite number (degrees)."}
	}
	if r.Composition != "" {
		if _, ok := normalizeComposition(r.Composition).Density(); !ok {
			return &InputError{Message: fmt.Sprintf("Unknown composition %q; expected stony, iron or carbonaceous.", r.Composition)}
		}
	}
	return nil
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func normalizeComposition(c Composition) Composition {
	return Composition(strings.ToLower(strings.TrimSpace(string(c))))
}

// InputParams echoes the resolved inputs, defaults applied.
type InputParams struct {
	DiameterM   float64   `json:"diameter_m" yaml:"diameter_m"`
	VelocityMS  float64   `json:"velocity_m_s" yaml:"velocity_m_s"`
	DensityKgM3 float64   `json:"density_kg_m3" yaml:"density_kg_m3"`
	AngleDeg    float64   `json:"angle_deg" yaml:"angle_deg"`
	Location    *Location `json:"location" yaml:"location"`
}

// Energy is the impact energy in joules and TNT equivalent.
type Energy struct {
	Joules              float64 `json:"joules" yaml:"joules"`
	MegatonsTNT         float64 `json:"megatons_tnt" yaml:"megatons_tnt"`
	EffectiveVelocityMS float64 `json:"effective_velocity_m_s" yaml:"effective_velocity_m_s"`
}

// Effects are the derived surface effects.
type Effects struct {
	CraterDiameterM  float64 `json:"crater_diameter_m_approx" yaml:"crater_diameter_m_approx"`
	SeismicMagnitude float64 `json:"seismic_magnitude" yaml:"seismic_magnitude"`
	TsunamiRisk      bool    `json:"tsunami_risk" yaml:"tsunami_risk"`
	Note             string  `json:"note" yaml:"note"`
}

// ImpactReport is the result of a single simulation.
type ImpactReport struct {
	InputParams   InputParams `json:"input_params" yaml:"input_params"`
	MassKg        float64     `json:"calculated_mass_kg" yaml:"calculated_mass_kg"`
	KineticEnergy Energy      `json:"kinetic_energy" yaml:"kinetic_energy"`
	ImpactEffects Effects     `json:"impact_effects" yaml:"impact_effects"`
}

// ApproximationNote accompanies every report.
const ApproximationNote = "Crater size and seismic magnitude are approximations based on simplified physics models."
