package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/impactviz-service/internal/domain"
	"github.com/couchcryptid/impactviz-service/internal/scenario"
	"github.com/spf13/cobra"
)

var (
	diameter    float64
	velocity    float64
	density     float64
	angle       float64
	composition string
	lat         float64
	lon         float64
	output      string
	step        float64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flag variables are reset to their
// defaults each time it is called.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "impactsim",
		Short:         "offline asteroid impact calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", scenario.FormatText, "output format (json|yaml|text)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a single impact",
		Args:  cobra.NoArgs,
		RunE:  runSingle,
	}
	addImpactFlags(runCmd)
	runCmd.Flags().Float64Var(&density, "density", 0, "projectile density (kg/m³)")
	runCmd.Flags().Float64Var(&angle, "angle", 90, "impact angle from the surface (degrees)")
	runCmd.Flags().StringVar(&composition, "composition", "", "projectile class (stony|iron|carbonaceous)")
	runCmd.Flags().Float64Var(&lat, "lat", 0, "impact latitude")
	runCmd.Flags().Float64Var(&lon, "lon", 0, "impact longitude")

	batchCmd := &cobra.Command{
		Use:   "batch [scenarios.yaml]",
		Short: "simulate every scenario in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "plot impact energy against entry angle",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addImpactFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&density, "density", 0, "projectile density (kg/m³)")
	sweepCmd.Flags().StringVar(&composition, "composition", "", "projectile class (stony|iron|carbonaceous)")
	sweepCmd.Flags().Float64Var(&step, "step", 5, "angle increment (degrees)")

	rootCmd.AddCommand(runCmd, batchCmd, sweepCmd)
	return rootCmd
}

func addImpactFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&diameter, "diameter", 0, "projectile diameter (m)")
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "entry velocity (m/s)")
	_ = cmd.MarkFlagRequired("diameter")
	_ = cmd.MarkFlagRequired("velocity")
}

// requestFromFlags leaves optional fields nil unless the flag was set, so the
// calculator applies its own defaults.
func requestFromFlags(cmd *cobra.Command) domain.ImpactRequest {
	req := domain.ImpactRequest{
		Diameter:    &diameter,
		Velocity:    &velocity,
		Composition: domain.Composition(composition),
	}
	flags := cmd.Flags()
	if flags.Changed("density") {
		req.Density = &density
	}
	if flags.Lookup("angle") != nil && flags.Changed("angle") {
		req.Angle = &angle
	}
	if flags.Lookup("lat") != nil && (flags.Changed("lat") || flags.Changed("lon")) {
		req.Location = &domain.Location{Lat: lat, Lon: lon}
	}
	return req
}

func newCalculator() *domain.Calculator {
	return domain.NewCalculator(domain.DefaultConstants(), domain.LandOnly{})
}

func runSingle(cmd *cobra.Command, _ []string) error {
	results := scenario.Run(newCalculator(), []scenario.Scenario{{
		Name:          "impact",
		ImpactRequest: requestFromFlags(cmd),
	}})
	if results[0].Report == nil {
		return errors.New(results[0].Error)
	}
	return scenario.Write(cmd.OutOrStdout(), output, results)
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenarios, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	return scenario.Write(cmd.OutOrStdout(), output, scenario.Run(newCalculator(), scenarios))
}

func runSweep(cmd *cobra.Command, _ []string) error {
	points, err := scenario.AngleSweep(newCalculator(), requestFromFlags(cmd), step)
	if err != nil {
		return err
	}
	return scenario.WriteSweep(cmd.OutOrStdout(), output, points)
}
