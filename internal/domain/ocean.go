package domain

// OceanDetector decides whether an impact point lies over water.
type OceanDetector interface {
	IsOceanImpact(loc *Location) bool
}

// LandOnly treats every location as land.
type LandOnly struct{}

func (LandOnly) IsOceanImpact(*Location) bool { return false }
