package domain

// Constants are the physical parameters of the impact model. A Calculator
// copies them at construction and never mutates them.
type Constants struct {
	MegatonJoules     float64 // J per megaton of TNT
	Gravity           float64 // m/s²
	TargetDensity     float64 // kg/m³ of the impacted crust
	CraterCoefficient float64
	DefaultDensity    float64 // kg/m³ of the projectile when none is given
	DefaultAngle      float64 // degrees
}

// DefaultConstants returns the reference model parameters.
func DefaultConstants() Constants {
	return Constants{
		MegatonJoules:     4.184e15,
		Gravity:           9.8,
		TargetDensity:     3000,
		CraterCoefficient: 1.5,
		DefaultDensity:    3000,
		DefaultAngle:      90,
	}
}

// Composition names a projectile class with a typical bulk density.
type Composition string

const (
	CompositionStony        Composition = "stony"
	CompositionIron         Composition = "iron"
	CompositionCarbonaceous Composition = "carbonaceous"
)

// compositionDensity maps projectile classes to bulk density in kg/m³.
var compositionDensity = map[Composition]float64{
	CompositionStony:        3000,
	CompositionIron:         7800,
	CompositionCarbonaceous: 1400,
}

// Density returns the preset density for c and whether c is known.
func (c Composition) Density() (float64, bool) {
	d, ok := compositionDensity[c]
	return d, ok
}
