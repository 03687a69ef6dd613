// cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lisasim/lisasim/sim"
	_ "github.com/lisasim/lisasim/sim/orbit" // registers sim.NewGeometryFunc
	"github.com/lisasim/lisasim/sim/telemetry"
	"github.com/lisasim/lisasim/sim/trace"
)

var (
	// CLI flags
	configPath     string  // Path to the constellation YAML spec
	startTime      float64 // First reception time (s)
	endTime        float64 // Last reception time (s)
	stepTime       float64 // Grid spacing (s)
	armList        []int   // Signed arms to sample
	traceLevel     string  // none, travel_times, full
	logLevel       string  // Log verbosity level
	outPath        string  // Report destination; "-" for stdout
	plotPath       string  // Optional PNG of travel times
	includeSamples bool    // Embed raw samples in the report
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "lisasim",
	Short: "Constellation geometry and noisy travel-time simulator",
}

// runOptions collects everything one run needs.
type runOptions struct {
	Spec  *sim.ConstellationSpec
	Grid  sim.TimeGrid
	Arms  []sim.Arm
	Trace trace.TraceLevel
}

// runCmd samples travel times of a constellation over a time grid
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sample the travel times of a constellation over a time grid",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		if configPath == "" {
			logrus.Fatalf("--config is required")
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid --trace %q; expected none, travel_times or full", traceLevel)
		}
		arms, err := parseArms(armList)
		if err != nil {
			logrus.Fatalf("Invalid --arms: %v", err)
		}
		spec, err := sim.LoadConstellationSpec(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load constellation spec: %v", err)
		}

		opts := runOptions{
			Spec:  spec,
			Grid:  sim.TimeGrid{Start: startTime, End: endTime, Step: stepTime},
			Arms:  arms,
			Trace: trace.TraceLevel(traceLevel),
		}
		logrus.Infof("Starting %s run: seed=%d, grid=[%g, %g] step %g, arms=%v",
			spec.Geometry.Model, spec.Seed, startTime, endTime, stepTime, arms)

		wallStart := time.Now()
		report, gt, err := runConstellation(opts, prometheus.NewRegistry())
		if err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}
		logrus.Infof("Sampled %d travel times in %s", report.Summary.TotalSamples, time.Since(wallStart))

		if !includeSamples {
			report.Samples = nil
			report.Positions = nil
		}
		if err := writeReport(outPath, report); err != nil {
			logrus.Fatalf("Failed to write report: %v", err)
		}
		if plotPath != "" {
			if err := savePlot(plotPath, gt, arms); err != nil {
				logrus.Fatalf("Failed to save plot: %v", err)
			}
			logrus.Infof("Plot written to %s", plotPath)
		}
		logrus.Info("Run complete.")
	},
}

// validateCmd loads a spec and builds its constellation without sampling
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a constellation spec loads and builds",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if configPath == "" {
			logrus.Fatalf("--config is required")
		}
		spec, err := sim.LoadConstellationSpec(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load constellation spec: %v", err)
		}
		g, err := sim.NewConstellation(spec)
		if err != nil {
			logrus.Fatalf("Failed to build constellation: %v", err)
		}
		fmt.Fprintf(os.Stdout, "%s: %s geometry OK", configPath, spec.Geometry.Model)
		if n, ok := g.(*sim.NoisyGeometry); ok {
			fmt.Fprintf(os.Stdout, ", noise prebuffer %g s", n.Prebuffer())
		}
		fmt.Fprintln(os.Stdout)
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runConstellation builds the constellation described by opts, instruments
// it against reg and samples it over the grid.
func runConstellation(opts runOptions, reg *prometheus.Registry) (*RunReport, *trace.GeometryTrace, error) {
	g, err := sim.NewConstellation(opts.Spec)
	if err != nil {
		return nil, nil, err
	}
	collector, err := telemetry.NewCollector(reg)
	if err != nil {
		return nil, nil, err
	}
	collector.Instrument(g)

	gt := trace.NewGeometryTrace(trace.TraceConfig{Level: opts.Trace})
	if err := sim.SampleGeometry(g, opts.Grid, opts.Arms, gt, collector.ObserveSample); err != nil {
		return nil, nil, err
	}
	totals, err := collector.Totals()
	if err != nil {
		return nil, nil, err
	}
	return newRunReport(opts, gt, totals), gt, nil
}

// parseArms converts signed link numbers into arms.
func parseArms(links []int) ([]sim.Arm, error) {
	if len(links) == 0 {
		return nil, fmt.Errorf("no arms given")
	}
	arms := make([]sim.Arm, 0, len(links))
	seen := make(map[int]bool, len(links))
	for _, l := range links {
		a := sim.Arm(l)
		if !a.Valid() {
			return nil, fmt.Errorf("arm %d is not one of ±1, ±2, ±3", l)
		}
		if seen[l] {
			return nil, fmt.Errorf("arm %d given twice", l)
		}
		seen[l] = true
		arms = append(arms, a)
	}
	return arms, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, validateCmd} {
		c.Flags().StringVar(&configPath, "config", "", "Path to the constellation YAML spec")
		c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}

	// Time grid
	runCmd.Flags().Float64Var(&startTime, "start", 0, "First reception time (s)")
	runCmd.Flags().Float64Var(&endTime, "end", sim.YearSeconds, "Last reception time (s)")
	runCmd.Flags().Float64Var(&stepTime, "step", 86400, "Grid spacing (s)")
	runCmd.Flags().IntSliceVar(&armList, "arms", []int{1, 2, 3, -1, -2, -3}, "Comma-separated signed arms to sample")

	// Output
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelTravelTimes), "Trace level (none, travel_times, full)")
	runCmd.Flags().StringVar(&outPath, "out", "-", "Report path, or - for stdout")
	runCmd.Flags().StringVar(&plotPath, "plot", "", "Write a PNG of travel time against time to this path")
	runCmd.Flags().BoolVar(&includeSamples, "samples", false, "Include raw samples in the report")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
