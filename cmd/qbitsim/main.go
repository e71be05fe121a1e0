package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Chenchunxuan/qbit-simulator/internal/aero"
	"github.com/Chenchunxuan/qbit-simulator/internal/config"
	"github.com/Chenchunxuan/qbit-simulator/internal/control"
	"github.com/Chenchunxuan/qbit-simulator/internal/integrators"
	"github.com/Chenchunxuan/qbit-simulator/internal/metrics"
	"github.com/Chenchunxuan/qbit-simulator/internal/optim"
	"github.com/Chenchunxuan/qbit-simulator/internal/sim"
	"github.com/Chenchunxuan/qbit-simulator/internal/storage"
	"github.com/Chenchunxuan/qbit-simulator/internal/traj"
	"github.com/Chenchunxuan/qbit-simulator/internal/trim"
	"github.com/Chenchunxuan/qbit-simulator/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	speed      float64
	integrator string
	noAero     bool

	stepMagnitude  float64
	accel          float64
	buffer         float64
	alphaShape     string
	transitionTime float64
	terminalAlpha  float64
	liftRatio      float64
	includeAccel   bool
	waypointsFlag  string

	kp     float64
	kv     float64
	ktheta float64
	komega float64

	configFile string
	preset     string

	sweepMetric string
	kpValues    string
	kvValues    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qbitsim",
		Short: "longitudinal transition simulator for the QBiT tail-sitter",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".qbitsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [maneuver]",
		Short: "run a closed-loop maneuver",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [maneuver]",
		Short: "run a maneuver and replay it in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	trimCmd := &cobra.Command{
		Use:   "trim [speed]",
		Short: "solve the equilibrium flight condition at an airspeed",
		Args:  cobra.ExactArgs(1),
		RunE:  solveTrim,
	}
	trimCmd.Flags().Float64Var(&liftRatio, "lift-ratio", 0, "also size the terminal alpha for this lift/weight ratio")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list ready-to-run scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-16s %s, %.0fs\n", name, cfg.Maneuver, cfg.Duration)
			}
			return nil
		},
	}

	maneuversCmd := &cobra.Command{
		Use:   "maneuvers",
		Short: "list maneuver names",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range traj.Names() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [maneuver]",
		Short: "run the same maneuver under every integrator and compare metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [maneuver]",
		Short: "grid-search controller gains against a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepGains,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "tracking_error_rms", "metric to minimize")
	sweepCmd.Flags().StringVar(&kpValues, "kp-values", "1,2,4", "comma-separated kp candidates")
	sweepCmd.Flags().StringVar(&kvValues, "kv-values", "2,3,5", "comma-separated kv candidates")

	rootCmd.AddCommand(runCmd, liveCmd, trimCmd, listCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, presetsCmd, maneuversCmd, compareCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "cruise / target airspeed")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler, rk4)")
	cmd.Flags().BoolVar(&noAero, "no-aero", false, "disable aerodynamic forces")
	cmd.Flags().Float64Var(&stepMagnitude, "step", 1.0, "step magnitude (step maneuvers)")
	cmd.Flags().Float64Var(&accel, "accel", 4.0, "ramp acceleration")
	cmd.Flags().Float64Var(&buffer, "buffer", 2.0, "ramp settling buffer")
	cmd.Flags().StringVar(&alphaShape, "alpha-shape", "parabolic", "alpha decay (parabolic, exponential)")
	cmd.Flags().Float64Var(&transitionTime, "transition-time", 4.0, "alpha transition duration")
	cmd.Flags().Float64Var(&terminalAlpha, "terminal-alpha", 0, "terminal alpha (rad); 0 sizes it from unit lift")
	cmd.Flags().BoolVar(&includeAccel, "include-accel", false, "acceleration-inclusive transition references")
	cmd.Flags().StringVar(&waypointsFlag, "waypoints", "", "waypoint knots as y1:z1,y2:z2,...")
	cmd.Flags().Float64Var(&kp, "kp", 0, "position gain (0 = default)")
	cmd.Flags().Float64Var(&kv, "kv", 0, "velocity gain (0 = default)")
	cmd.Flags().Float64Var(&ktheta, "ktheta", 0, "attitude gain (0 = default)")
	cmd.Flags().Float64Var(&komega, "komega", 0, "rate gain (0 = default)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a preset scenario")
}

// buildConfig resolves precedence: defaults, then preset, then config file,
// then any flag the user actually set.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Maneuver = args[0]
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("speed") {
		cfg.CruiseSpeed = speed
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("no-aero") {
		cfg.AeroEnabled = !noAero
	}
	if cmd.Flags().Changed("step") {
		cfg.StepMagnitude = stepMagnitude
	}
	if cmd.Flags().Changed("accel") {
		cfg.Accel = accel
	}
	if cmd.Flags().Changed("buffer") {
		cfg.Buffer = buffer
	}
	if cmd.Flags().Changed("alpha-shape") {
		cfg.AlphaShape = alphaShape
	}
	if cmd.Flags().Changed("transition-time") {
		cfg.TransitionTime = transitionTime
	}
	if cmd.Flags().Changed("terminal-alpha") {
		cfg.TerminalAlpha = terminalAlpha
	}
	if cmd.Flags().Changed("include-accel") {
		cfg.IncludeAccel = includeAccel
	}
	if cmd.Flags().Changed("waypoints") {
		wps, err := parseWaypoints(waypointsFlag)
		if err != nil {
			return nil, err
		}
		cfg.Waypoints = wps
	}
	if kp > 0 {
		cfg.Gains.Kp = kp
	}
	if kv > 0 {
		cfg.Gains.Kv = kv
	}
	if ktheta > 0 {
		cfg.Gains.Ktheta = ktheta
	}
	if komega > 0 {
		cfg.Gains.Komega = komega
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseWaypoints(s string) ([][2]float64, error) {
	parts := strings.Split(s, ",")
	wps := make([][2]float64, 0, len(parts))
	for _, part := range parts {
		pair := strings.Split(strings.TrimSpace(part), ":")
		if len(pair) != 2 {
			return nil, fmt.Errorf("bad waypoint %q, want y:z", part)
		}
		y, err := strconv.ParseFloat(pair[0], 64)
		if err != nil {
			return nil, err
		}
		z, err := strconv.ParseFloat(pair[1], 64)
		if err != nil {
			return nil, err
		}
		wps = append(wps, [2]float64{y, z})
	}
	return wps, nil
}

// setup builds the aero model, trim solution, plan, and simulator for a
// validated config.
func setup(cfg *config.Config) (*traj.Plan, *sim.Simulator, sim.Config, error) {
	simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, AeroEnabled: cfg.AeroEnabled}

	model, err := aero.NewCoefficientModel(aero.DefaultPolar())
	if err != nil {
		return nil, nil, simCfg, err
	}

	maneuver, err := cfg.ParsedManeuver()
	if err != nil {
		return nil, nil, simCfg, err
	}

	solver := trim.NewSolver(cfg.Vehicle, model)

	in := traj.Input{
		Maneuver:       maneuver,
		N:              simCfg.Samples(),
		Dt:             cfg.Dt,
		Params:         cfg.Vehicle,
		Model:          model,
		CruiseSpeed:    cfg.CruiseSpeed,
		StepMagnitude:  cfg.StepMagnitude,
		Accel:          cfg.Accel,
		Buffer:         cfg.Buffer,
		Waypoints:      cfg.Waypoints,
		AlphaShape:     cfg.ParsedAlphaShape(),
		TransitionTime: cfg.TransitionTime,
		TerminalAlpha:  cfg.TerminalAlpha,
		IncludeAccel:   cfg.IncludeAccel,
	}

	switch maneuver {
	case traj.Cruise, traj.Waypoints, traj.DecelRamp, traj.StepPitchForward:
		sol, err := solver.Solve(cfg.CruiseSpeed)
		if err != nil {
			return nil, nil, simCfg, err
		}
		in.Trim = sol
	case traj.AlphaTransition:
		if in.TerminalAlpha <= 0 {
			alpha, err := solver.TerminalAlpha(cfg.CruiseSpeed, 1.0)
			if err != nil {
				return nil, nil, simCfg, err
			}
			in.TerminalAlpha = alpha
		}
	}

	plan, err := traj.Generate(in)
	if err != nil {
		return nil, nil, simCfg, err
	}

	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, nil, simCfg, err
	}

	tracker := control.NewTracker(cfg.Gains, cfg.Vehicle)
	simulator := sim.New(cfg.Vehicle, model, tracker, integ)
	simulator.AddMetric(metrics.NewTrackingError())
	simulator.AddMetric(metrics.NewControlEffort())

	return plan, simulator, simCfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	plan, simulator, simCfg, err := setup(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Maneuver)
	start := time.Now()

	result, err := simulator.Run(context.Background(), plan, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Maneuver:    cfg.Maneuver,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Integrator:  cfg.Integrator,
		CruiseSpeed: cfg.CruiseSpeed,
		AeroEnabled: cfg.AeroEnabled,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Steps))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	plan, simulator, simCfg, err := setup(cfg)
	if err != nil {
		return err
	}

	result, err := simulator.Run(context.Background(), plan, simCfg)
	if err != nil {
		return err
	}

	return viz.Run(cfg.Maneuver, result, cfg.Dt)
}

func solveTrim(cmd *cobra.Command, args []string) error {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad speed %q: %w", args[0], err)
	}

	model, err := aero.NewCoefficientModel(aero.DefaultPolar())
	if err != nil {
		return err
	}
	solver := trim.NewSolver(config.DefaultConfig().Vehicle, model)

	sol, err := solver.Solve(v)
	if err != nil {
		return err
	}

	fmt.Printf("trim at %.2f m/s:\n", v)
	fmt.Printf("  thrust top:    %.4f N\n", sol.Thrust.Top)
	fmt.Printf("  thrust bottom: %.4f N\n", sol.Thrust.Bottom)
	fmt.Printf("  pitch:         %.4f rad (%.2f deg)\n", sol.Theta, sol.Theta*180/math.Pi)

	if liftRatio > 0 {
		alpha, err := solver.TerminalAlpha(v, liftRatio)
		if err != nil {
			return err
		}
		fmt.Printf("  terminal alpha: %.4f rad (%.2f deg) at lift ratio %.2f\n",
			alpha, alpha*180/math.Pi, liftRatio)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMANEUVER\tTIME\tDURATION\tDT\tINTEG\tSPEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%.1f\n",
			run.ID,
			run.Maneuver,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.CruiseSpeed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	series, _, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("maneuver: %s\n\n", meta.Maneuver)

	fmt.Print(viz.Summary(series, []string{"z", "theta", "vy", "t_top", "t_bottom", "alpha_eff"}))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, times, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	names := sim.SeriesNames()
	columns := make([][]float64, len(names))
	for j, name := range names {
		col, ok := series[name]
		if !ok || len(col) != len(times) {
			return fmt.Errorf("run %s: stored data is missing series %q", args[0], name)
		}
		columns[j] = col
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}
	for i := range times {
		row := make([]string, 0, len(names)+1)
		row = append(row, strconv.FormatFloat(times[i], 'f', 6, 64))
		for _, col := range columns {
			row = append(row, strconv.FormatFloat(col[i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	schemes := []string{"euler", "rk4"}
	ensemble := sim.Ensemble{
		Runs: len(schemes),
		Run: func(ctx context.Context, idx int) (*sim.Result, error) {
			candidate := *cfg
			candidate.Integrator = schemes[idx]
			plan, simulator, simCfg, err := setup(&candidate)
			if err != nil {
				return nil, err
			}
			return simulator.Run(ctx, plan, simCfg)
		},
	}

	results, err := ensemble.RunAll(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tTRACKING RMS\tCONTROL EFFORT")
	for i, scheme := range schemes {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\n",
			scheme,
			results[i].Metrics["tracking_error_rms"],
			results[i].Metrics["control_effort"],
		)
	}
	return w.Flush()
}

func sweepGains(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	kps, err := parseFloats(kpValues)
	if err != nil {
		return err
	}
	kvs, err := parseFloats(kvValues)
	if err != nil {
		return err
	}

	gs := optim.NewGridSearch([]string{"kp", "kv"}, [][]float64{kps, kvs})

	run := func(ctx context.Context, g control.Gains) (*sim.Result, error) {
		candidate := *cfg
		candidate.Gains = g
		plan, simulator, simCfg, err := setup(&candidate)
		if err != nil {
			return nil, err
		}
		return simulator.Run(ctx, plan, simCfg)
	}

	fmt.Printf("sweeping %d x %d gain grid on %s...\n", len(kps), len(kvs), cfg.Maneuver)
	best, val, err := gs.Search(context.Background(), cfg.Gains, run, sweepMetric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", sweepMetric, val)
	fmt.Printf("  kp: %.2f  kv: %.2f  ktheta: %.2f  komega: %.2f\n",
		best.Kp, best.Kv, best.Ktheta, best.Komega)
	return nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}
