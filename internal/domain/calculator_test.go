package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func baseRequest() ImpactRequest {
	return ImpactRequest{Diameter: ptr(100), Velocity: ptr(20000)}
}

func newTestCalculator() *Calculator {
	return NewCalculator(DefaultConstants(), LandOnly{})
}

func TestSimulate_ReferenceImpact(t *testing.T) {
	report, err := newTestCalculator().Simulate(baseRequest())
	require.NoError(t, err)

	expectedMass := 4.0 / 3.0 * math.Pi * math.Pow(50, 3) * 3000
	assert.InDelta(t, expectedMass, report.MassKg, 1)
	assert.InDelta(t, 1.5708e9, report.MassKg, 1e5)
	assert.InDelta(t, 20000, report.KineticEnergy.EffectiveVelocityMS, 1e-9)
	assert.InDelta(t, 0.5*expectedMass*20000*20000, report.KineticEnergy.Joules, 1e3)
	assert.InDelta(t, 3.1416e17, report.KineticEnergy.Joules, 1e13)
	assert.InDelta(t, 75.09, report.KineticEnergy.MegatonsTNT, 0.01)

	assert.Equal(t, 3000.0, report.InputParams.DensityKgM3)
	assert.Equal(t, 90.0, report.InputParams.AngleDeg)
	assert.Nil(t, report.InputParams.Location)

	assert.Greater(t, report.ImpactEffects.CraterDiameterM, 0.0)
	assert.InDelta(t, 8.46, report.ImpactEffects.SeismicMagnitude, 0.01)
	assert.False(t, report.ImpactEffects.TsunamiRisk)
	assert.Equal(t, ApproximationNote, report.ImpactEffects.Note)
}

func TestSimulate_ObliqueImpact(t *testing.T) {
	calc := newTestCalculator()

	vertical, err := calc.Simulate(baseRequest())
	require.NoError(t, err)

	req := baseRequest()
	req.Angle = ptr(30)
	oblique, err := calc.Simulate(req)
	require.NoError(t, err)

	assert.InDelta(t, 10000, oblique.KineticEnergy.EffectiveVelocityMS, 1e-6)
	assert.InDelta(t, 0.25, oblique.KineticEnergy.Joules/vertical.KineticEnergy.Joules, 1e-12)
	assert.Equal(t, 30.0, oblique.InputParams.AngleDeg)
}

func TestSimulate_ZeroInputsGuarded(t *testing.T) {
	tests := []struct {
		name string
		req  ImpactRequest
	}{
		{"zero diameter", ImpactRequest{Diameter: ptr(0), Velocity: ptr(20000)}},
		{"zero velocity", ImpactRequest{Diameter: ptr(100), Velocity: ptr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newTestCalculator().Simulate(tt.req)
			require.NoError(t, err)

			assert.Equal(t, 0.0, report.KineticEnergy.Joules)
			assert.Equal(t, 0.0, report.ImpactEffects.CraterDiameterM)
			assert.Equal(t, 0.0, report.ImpactEffects.SeismicMagnitude)
			assert.False(t, math.IsNaN(report.ImpactEffects.CraterDiameterM))
		})
	}
}

func TestSimulate_NegativeInputsAccepted(t *testing.T) {
	req := ImpactRequest{Diameter: ptr(-100), Velocity: ptr(20000)}

	report, err := newTestCalculator().Simulate(req)
	require.NoError(t, err)

	assert.Less(t, report.KineticEnergy.Joules, 0.0)
	assert.Equal(t, 0.0, report.ImpactEffects.CraterDiameterM)
	assert.Equal(t, 0.0, report.ImpactEffects.SeismicMagnitude)
}

func TestSimulate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  ImpactRequest
	}{
		{"missing diameter", ImpactRequest{Velocity: ptr(20000)}},
		{"missing velocity", ImpactRequest{Diameter: ptr(100)}},
		{"missing both", ImpactRequest{}},
		{"NaN velocity", ImpactRequest{Diameter: ptr(100), Velocity: ptr(math.NaN())}},
		{"infinite diameter", ImpactRequest{Diameter: ptr(math.Inf(1)), Velocity: ptr(20000)}},
		{"NaN angle", ImpactRequest{Diameter: ptr(100), Velocity: ptr(20000), Angle: ptr(math.NaN())}},
		{"unknown composition", ImpactRequest{Diameter: ptr(100), Velocity: ptr(20000), Composition: "cheese"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newTestCalculator().Simulate(tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Equal(t, ImpactReport{}, report)
		})
	}
}

func TestSimulate_OverflowRejected(t *testing.T) {
	tests := []struct {
		name string
		req  ImpactRequest
	}{
		{"infinite mass times zero velocity", ImpactRequest{Diameter: ptr(1e300), Velocity: ptr(0)}},
		{"infinite energy", ImpactRequest{Diameter: ptr(1e200), Velocity: ptr(1e200)}},
		{"huge diameter at grazing angle", ImpactRequest{Diameter: ptr(1e300), Velocity: ptr(20000), Angle: ptr(0)}},
		{"huge density", ImpactRequest{Diameter: ptr(100), Velocity: ptr(20000), Density: ptr(1e307)}},
		{"huge velocity", ImpactRequest{Diameter: ptr(100), Velocity: ptr(1e200)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newTestCalculator().Simulate(tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, OutOfRangeMessage, inputErr.Message)
			assert.Equal(t, ImpactReport{}, report)
		})
	}
}

func TestSimulate_LargeFiniteInputsStayFinite(t *testing.T) {
	report, err := newTestCalculator().Simulate(ImpactRequest{Diameter: ptr(1e80), Velocity: ptr(1e10)})
	require.NoError(t, err)

	for name, v := range map[string]float64{
		"mass":      report.MassKg,
		"joules":    report.KineticEnergy.Joules,
		"megatons":  report.KineticEnergy.MegatonsTNT,
		"crater":    report.ImpactEffects.CraterDiameterM,
		"magnitude": report.ImpactEffects.SeismicMagnitude,
	} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s = %v", name, v)
	}
}

func TestSimulate_MissingFieldsMessage(t *testing.T) {
	_, err := newTestCalculator().Simulate(ImpactRequest{Velocity: ptr(20000)})

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, MissingFieldsMessage, inputErr.Message)
}

func TestSimulate_Idempotent(t *testing.T) {
	calc := newTestCalculator()
	req := baseRequest()
	req.Angle = ptr(47.5)
	req.Location = &Location{Lat: 12.5, Lon: -45}

	first, err := calc.Simulate(req)
	require.NoError(t, err)
	second, err := calc.Simulate(req)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated simulation differs (-first +second):\n%s", diff)
	}
}

func TestSimulate_CraterDependsOnEnergyNotProjectileDensity(t *testing.T) {
	calc := newTestCalculator()

	light := baseRequest()
	light.Density = ptr(1000)
	heavy := baseRequest()
	heavy.Density = ptr(8000)
	heavy.Velocity = ptr(20000 * math.Sqrt(1000.0/8000.0)) // same energy

	lr, err := calc.Simulate(light)
	require.NoError(t, err)
	hr, err := calc.Simulate(heavy)
	require.NoError(t, err)

	assert.InDelta(t, lr.KineticEnergy.Joules, hr.KineticEnergy.Joules, lr.KineticEnergy.Joules*1e-12)
	assert.InDelta(t, lr.ImpactEffects.CraterDiameterM, hr.ImpactEffects.CraterDiameterM, 0.011)

	// Crater depends on density only through energy, never through the target term.
	c := DefaultConstants()
	assert.Equal(t, round2(c.CraterDiameter(lr.KineticEnergy.Joules)), lr.ImpactEffects.CraterDiameterM)
}

func TestSimulate_OceanFlagAlwaysFalse(t *testing.T) {
	locations := []*Location{
		nil,
		{Lat: 0, Lon: -160},     // central Pacific
		{Lat: 30.27, Lon: -97.7}, // Austin
		{Lat: -60, Lon: 0},       // Southern Ocean
	}

	for _, loc := range locations {
		req := baseRequest()
		req.Location = loc

		report, err := newTestCalculator().Simulate(req)
		require.NoError(t, err)
		assert.False(t, report.ImpactEffects.TsunamiRisk)
		assert.Equal(t, loc, report.InputParams.Location)
	}
}

type alwaysOcean struct{ calls int }

func (a *alwaysOcean) IsOceanImpact(*Location) bool {
	a.calls++
	return true
}

func TestSimulate_UsesInjectedOceanDetector(t *testing.T) {
	detector := &alwaysOcean{}
	calc := NewCalculator(DefaultConstants(), detector)

	report, err := calc.Simulate(baseRequest())
	require.NoError(t, err)

	assert.True(t, report.ImpactEffects.TsunamiRisk)
	assert.Equal(t, 1, detector.calls)
}

func TestNewCalculator_NilDetectorDefaultsToLand(t *testing.T) {
	report, err := NewCalculator(DefaultConstants(), nil).Simulate(baseRequest())
	require.NoError(t, err)
	assert.False(t, report.ImpactEffects.TsunamiRisk)
}

func TestSimulate_DensityResolution(t *testing.T) {
	tests := []struct {
		name        string
		density     *float64
		composition Composition
		expected    float64
	}{
		{"default", nil, "", 3000},
		{"explicit density", ptr(2500), "", 2500},
		{"iron preset", nil, CompositionIron, 7800},
		{"carbonaceous preset", nil, CompositionCarbonaceous, 1400},
		{"case-insensitive preset", nil, "  Iron ", 7800},
		{"explicit density wins", ptr(2000), CompositionIron, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.Density = tt.density
			req.Composition = tt.composition

			report, err := newTestCalculator().Simulate(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, report.InputParams.DensityKgM3)
			assert.InDelta(t, EstimateMass(100, tt.expected), report.MassKg, 1e-3)
		})
	}
}
