package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// SimulationEvent is the published form of a completed simulation.
type SimulationEvent struct {
	ID          string       `json:"id"`
	Report      ImpactReport `json:"report"`
	SimulatedAt time.Time    `json:"simulated_at"`
}

// NewSimulationEvent wraps a report with its ID and the current time.
func NewSimulationEvent(report ImpactReport) SimulationEvent {
	return SimulationEvent{
		ID:          ReportID(report.InputParams),
		Report:      report,
		SimulatedAt: clock.Now().UTC(),
	}
}

// ReportID derives a deterministic ID from the resolved inputs. Identical
// inputs always map to the same ID.
func ReportID(in InputParams) string {
	key := fmt.Sprintf("%g|%g|%g|%g", in.DiameterM, in.VelocityMS, in.DensityKgM3, in.AngleDeg)
	if in.Location != nil {
		key += fmt.Sprintf("|%g|%g", in.Location.Lat, in.Location.Lon)
	}
	hash := sha256.Sum256([]byte(key))
	return "impact-" + hex.EncodeToString(hash[:8])
}
