package domain

import "math"

// Calculator runs the impact pipeline. It holds no mutable state and is safe
// for concurrent use.
type Calculator struct {
	consts Constants
	ocean  OceanDetector
}

// NewCalculator creates a Calculator. A nil detector defaults to LandOnly.
func NewCalculator(consts Constants, ocean OceanDetector) *Calculator {
	if ocean == nil {
		ocean = LandOnly{}
	}
	return &Calculator{consts: consts, ocean: ocean}
}

// Constants returns the model parameters the calculator was built with.
func (c *Calculator) Constants() Constants {
	return c.consts
}

// Simulate validates req and computes its impact report. The only error is an
// *InputError matching ErrInvalidInput, returned for rejected inputs and for
// finite inputs whose mass, velocity or energy overflows float64.
func (c *Calculator) Simulate(req ImpactRequest) (ImpactReport, error) {
	if err := req.Validate(); err != nil {
		return ImpactReport{}, err
	}

	diameter := *req.Diameter
	velocity := *req.Velocity
	density := c.resolveDensity(req)
	angle := c.consts.DefaultAngle
	if req.Angle != nil {
		angle = *req.Angle
	}

	mass := EstimateMass(diameter, density)
	vEff := EffectiveVelocity(velocity, angle)
	energy := KineticEnergy(mass, vEff)
	if !isFinite(mass) || !isFinite(vEff) || !isFinite(energy) {
		return ImpactReport{}, &InputError{Message: OutOfRangeMessage}
	}

	return ImpactReport{
		InputParams: InputParams{
			DiameterM:   diameter,
			VelocityMS:  velocity,
			DensityKgM3: density,
			AngleDeg:    angle,
			Location:    req.Location,
		},
		MassKg: mass,
		KineticEnergy: Energy{
			Joules:              energy,
			MegatonsTNT:         c.consts.Megatons(energy),
			EffectiveVelocityMS: vEff,
		},
		ImpactEffects: Effects{
			CraterDiameterM:  round2(c.consts.CraterDiameter(energy)),
			SeismicMagnitude: SeismicMagnitude(energy),
			TsunamiRisk:      c.ocean.IsOceanImpact(req.Location),
			Note:             ApproximationNote,
		},
	}, nil
}

// resolveDensity picks the explicit density, then the composition preset,
// then the default.
func (c *Calculator) resolveDensity(req ImpactRequest) float64 {
	if req.Density != nil {
		return *req.Density
	}
	if req.Composition != "" {
		if d, ok := normalizeComposition(req.Composition).Density(); ok {
			return d
		}
	}
	return c.consts.DefaultDensity
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
