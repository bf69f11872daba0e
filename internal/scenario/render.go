package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/impactviz-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff8800"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(22)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	noteStyle  = lipgloss.NewStyle().Italic(true).Faint(true)
)

// Write renders results in the requested format.
func Write(w io.Writer, format string, results []Result) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprint(w, renderText(r))
		}
		return nil
	default:
		return encode(w, format, results)
	}
}

// WriteSweep renders sweep points as json or yaml, or as a plot for text.
func WriteSweep(w io.Writer, format string, points []SweepPoint) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		_, err := fmt.Fprintln(w, PlotSweep(points))
		return err
	default:
		return encode(w, format, points)
	}
}

func encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(r Result) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Name) + "\n")
	if r.Report == nil {
		b.WriteString(errorStyle.Render("  "+r.Error) + "\n")
		return b.String()
	}

	rep := r.Report
	row := func(label, value string) {
		b.WriteString("  " + labelStyle.Render(label) + value + "\n")
	}
	row("Diameter", fmt.Sprintf("%g m", rep.InputParams.DiameterM))
	row("Velocity", fmt.Sprintf("%g m/s", rep.InputParams.VelocityMS))
	row("Density", fmt.Sprintf("%g kg/m³", rep.InputParams.DensityKgM3))
	row("Angle", fmt.Sprintf("%g°", rep.InputParams.AngleDeg))
	if loc := rep.InputParams.Location; loc != nil {
		row("Location", fmt.Sprintf("%.4f, %.4f", loc.Lat, loc.Lon))
	}
	row("Mass", fmt.Sprintf("%.4g kg", rep.MassKg))
	row("Effective velocity", fmt.Sprintf("%.2f m/s", rep.KineticEnergy.EffectiveVelocityMS))
	row("Energy", fmt.Sprintf("%.4g J (%.4g Mt TNT)", rep.KineticEnergy.Joules, rep.KineticEnergy.MegatonsTNT))
	row("Crater diameter", fmt.Sprintf("%.2f m", rep.ImpactEffects.CraterDiameterM))
	row("Seismic magnitude", fmt.Sprintf("%.2f", rep.ImpactEffects.SeismicMagnitude))
	row("Tsunami risk", fmt.Sprintf("%t", rep.ImpactEffects.TsunamiRisk))
	b.WriteString("  " + noteStyle.Render(domain.ApproximationNote) + "\n")
	return b.String()
}
