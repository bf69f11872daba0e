package domain

import "math"

// EstimateMass returns the mass in kg of a sphere of the given diameter and density.
func EstimateMass(diameter, density float64) float64 {
	radius := diameter / 2
	volume := (4.0 / 3.0) * math.Pi * radius * radius * radius
	return volume * density
}

// EffectiveVelocity projects velocity onto the surface normal. angleDeg is
// measured from the surface, so 90 keeps the full velocity.
func EffectiveVelocity(velocity, angleDeg float64) float64 {
	return velocity * math.Sin(angleDeg*math.Pi/180)
}

// KineticEnergy returns ½·m·v² in joules.
func KineticEnergy(mass, velocity float64) float64 {
	return 0.5 * mass * velocity * velocity
}

// Megatons converts joules to megatons of TNT.
func (c Constants) Megatons(joules float64) float64 {
	return joules / c.MegatonJoules
}

// CraterDiameter applies the fourth-root scaling law against the constant
// target density. Non-positive energy yields 0.
func (c Constants) CraterDiameter(energy float64) float64 {
	if energy <= 0 {
		return 0
	}
	return c.CraterCoefficient * math.Pow(energy/(c.Gravity*c.TargetDensity), 0.25)
}

// SeismicMagnitude estimates the local magnitude from energy in joules,
// rounded to two decimals. Non-positive energy yields 0.
func SeismicMagnitude(energy float64) float64 {
	if energy <= 0 {
		return 0
	}
	return round2((2.0/3.0)*math.Log10(energy) - 3.2)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
