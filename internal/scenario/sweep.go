package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/couchcryptid/impactviz-service/internal/domain"
	"github.com/guptarohit/asciigraph"
)

// SweepPoint is the energy at one impact angle.
type SweepPoint struct {
	AngleDeg float64 `json:"angle_deg" yaml:"angle_deg"`
	Megatons float64 `json:"megatons_tnt" yaml:"megatons_tnt"`
}

// AngleSweep simulates req at every angle from 0 to 90 degrees in step
// increments, always including 90. Any angle on req is ignored.
func AngleSweep(calc *domain.Calculator, req domain.ImpactRequest, step float64) ([]SweepPoint, error) {
	if !(step > 0) || step > 90 {
		return nil, errors.New("step must be in (0, 90]")
	}

	var points []SweepPoint
	for i := 0; ; i++ {
		a := math.Min(float64(i)*step, 90)
		req.Angle = &a
		report, err := calc.Simulate(req)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{AngleDeg: a, Megatons: report.KineticEnergy.MegatonsTNT})
		if a == 90 {
			return points, nil
		}
	}
}

// PlotSweep draws the sweep as an ASCII chart.
func PlotSweep(points []SweepPoint) string {
	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = p.Megatons
	}
	caption := "energy (Mt TNT) vs impact angle"
	if len(points) > 1 {
		caption = fmt.Sprintf("energy (Mt TNT) vs impact angle, %g°..%g°", points[0].AngleDeg, points[len(points)-1].AngleDeg)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	)
}
