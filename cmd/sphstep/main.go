package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/san-kum/sphstep/internal/analysis"
	"github.com/san-kum/sphstep/internal/config"
	"github.com/san-kum/sphstep/internal/export"
	"github.com/san-kum/sphstep/internal/integrator"
	"github.com/san-kum/sphstep/internal/metrics"
	"github.com/san-kum/sphstep/internal/particles"
	"github.com/san-kum/sphstep/internal/scenario"
	"github.com/san-kum/sphstep/internal/sim"
	"github.com/san-kum/sphstep/internal/steppers"
	"github.com/san-kum/sphstep/internal/storage"
	"github.com/san-kum/sphstep/internal/viz"
)

var (
	dataDir  string
	dt       float64
	duration float64
	courant  float64
	adaptive bool
	minDt    float64
	maxDt    float64
	stride   int
	workers  int

	// Particle layout
	spacing float64
	nx      int
	ny      int
	seed    int64

	// Config file and presets
	configFile string
	presetName string

	// Output
	svgPath     string
	profileMode string
	metricName  string
	themeName   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sphstep",
		Short: "Smoothed particle hydrodynamics stepping lab",
		Long:  "sphstep integrates SPH particle systems with pluggable stepping schemes,\nrecords metric series and lets you inspect runs from the terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunPicker()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for stored runs")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Run a scenario headless and store the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "requested step size")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration in seconds")
	runCmd.Flags().Float64Var(&courant, "courant", config.DefaultCourant, "courant safety factor")
	runCmd.Flags().BoolVar(&adaptive, "adaptive", false, "derive dt from the stability estimate each cycle")
	runCmd.Flags().Float64Var(&minDt, "min-dt", config.DefaultMinDt, "adaptive step floor")
	runCmd.Flags().Float64Var(&maxDt, "max-dt", config.DefaultMaxDt, "adaptive step ceiling")
	runCmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "steps between metric samples")
	runCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines per phase (0 = all cpus)")
	runCmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "initial particle spacing")
	runCmd.Flags().IntVar(&nx, "nx", config.DefaultNX, "particle columns")
	runCmd.Flags().IntVar(&ny, "ny", config.DefaultNY, "particle rows")
	runCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "placement jitter seed")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file (yaml)")
	runCmd.Flags().StringVar(&presetName, "preset", "", "named preset configuration")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write final particle positions as svg")
	runCmd.Flags().StringVar(&profileMode, "profile", "", "write a profile: cpu or mem")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "Watch a scenario evolve in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "initial particle spacing")
	liveCmd.Flags().IntVar(&nx, "nx", config.DefaultNX, "particle columns")
	liveCmd.Flags().IntVar(&ny, "ny", config.DefaultNY, "particle rows")
	liveCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "placement jitter seed")
	liveCmd.Flags().Float64Var(&courant, "courant", config.DefaultCourant, "courant safety factor")
	liveCmd.Flags().StringVar(&themeName, "theme", "", "color theme: ocean, retro, mono, neon")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List available scenarios",
		RunE:  listScenarios,
	}

	steppersCmd := &cobra.Command{
		Use:   "steppers",
		Short: "Show stepping schemes and the fields they touch",
		RunE:  listSteppers,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "List preset configurations for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresetConfigs,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "Plot the metric series of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "plot a single metric")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "Frequency analysis of a stored metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&metricName, "metric", "kinetic_energy", "metric series to analyze")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "Render the final particle positions of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the snapshot as svg")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "Print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "Print the full run (metadata and series) as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "Print the metric series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "Sweep a scenario across step and particle counts",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}
	benchCmd.Flags().Float64Var(&duration, "time", 0.1, "simulated duration per run")
	benchCmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "steps between metric samples")
	benchCmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "initial particle spacing")
	benchCmd.Flags().IntVar(&nx, "nx", config.DefaultNX, "base particle columns")
	benchCmd.Flags().IntVar(&ny, "ny", config.DefaultNY, "base particle rows")
	benchCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "placement jitter seed")
	benchCmd.Flags().StringVar(&profileMode, "profile", "", "write a profile: cpu or mem")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [stepper...]",
		Short: "Run the same scenario under different stepping schemes",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSteppers,
	}
	compareCmd.Flags().Float64Var(&duration, "time", 0.2, "simulated duration per run")
	compareCmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "steps between metric samples")
	compareCmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "initial particle spacing")
	compareCmd.Flags().IntVar(&nx, "nx", config.DefaultNX, "particle columns")
	compareCmd.Flags().IntVar(&ny, "ny", config.DefaultNY, "particle rows")
	compareCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "placement jitter seed")

	rootCmd.AddCommand(runCmd, liveCmd, scenariosCmd, steppersCmd, presetsCmd,
		listCmd, plotCmd, analyzeCmd, snapshotCmd,
		exportCmd, exportJSONCmd, exportCSVCmd, benchCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg := config.DefaultConfig()
	if presetName != "" {
		preset := config.GetPreset(name, presetName)
		if preset == nil {
			return fmt.Errorf("unknown preset %q for %s (available: %s)",
				presetName, name, strings.Join(config.ListPresets(name), ", "))
		}
		cfg = preset
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg.Scenario = name

	// Explicit flags override preset and file values.
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("courant") {
		cfg.Courant = courant
	}
	if cmd.Flags().Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if cmd.Flags().Changed("min-dt") {
		cfg.MinDt = minDt
	}
	if cmd.Flags().Changed("max-dt") {
		cfg.MaxDt = maxDt
	}
	if cmd.Flags().Changed("stride") {
		cfg.SampleStride = stride
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("spacing") {
		cfg.Particles.Spacing = spacing
	}
	if cmd.Flags().Changed("nx") {
		cfg.Particles.NX = nx
	}
	if cmd.Flags().Changed("ny") {
		cfg.Particles.NY = ny
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if profileMode != "" {
		switch profileMode {
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			return fmt.Errorf("unknown profile mode: %s (valid: cpu, mem)", profileMode)
		}
	}

	setup, err := scenario.NewRegistry().Get(cfg.Scenario, scenario.Params{
		Spacing: cfg.Particles.Spacing,
		NX:      cfg.Particles.NX,
		NY:      cfg.Particles.NY,
		Seed:    cfg.Seed,
	})
	if err != nil {
		return err
	}
	for group, scheme := range cfg.Steppers {
		if err := overrideScheme(setup, group, scheme); err != nil {
			return err
		}
	}

	// The scenario recommends a CFL-derived dt and duration; explicit
	// settings win.
	runDt, runDuration := setup.Dt, setup.Duration
	if cmd.Flags().Changed("dt") || presetName != "" || configFile != "" {
		runDt = cfg.Dt
	}
	if cmd.Flags().Changed("time") || presetName != "" || configFile != "" {
		runDuration = cfg.Duration
	}

	opts := []integrator.Option{
		integrator.WithPipeline(setup.Pipeline),
		integrator.WithCourant(cfg.Courant),
	}
	if cfg.Workers > 0 {
		opts = append(opts, integrator.WithWorkers(cfg.Workers))
	}
	driver, err := integrator.New(setup.Groups, setup.Schemes, opts...)
	if err != nil {
		return err
	}

	runner := sim.New(driver)
	runner.AddMetric(metrics.NewKineticEnergy())
	runner.AddMetric(metrics.NewTotalMass())
	runner.AddMetric(metrics.NewMaxSpeed())
	runner.AddMetric(metrics.NewAvgDensity())

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s (%d particles, dt=%.2e, t=%.2fs)\n",
		cfg.Scenario, countParticles(setup.Groups), runDt, runDuration)

	start := time.Now()
	result, err := runner.Run(context.Background(), sim.Config{
		Dt:             runDt,
		Duration:       runDuration,
		Adaptive:       cfg.Adaptive,
		MinDt:          cfg.MinDt,
		MaxDt:          cfg.MaxDt,
		SampleStride:   cfg.SampleStride,
		ValidateFields: true,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, stepErr := range result.Errors {
		fmt.Printf("warning: %v\n", stepErr)
	}

	runID, err := store.Save(storage.RunMetadata{
		Scenario: cfg.Scenario,
		Seed:     cfg.Seed,
		Dt:       runDt,
		Duration: runDuration,
		Courant:  cfg.Courant,
		Steppers: driver.Assignment(),
	}, result, driver.Groups())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, samples: %d\n", result.StepsTaken, len(result.Times))
	fmt.Println("\nfinal metrics:")
	for _, metric := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", metric, result.Metrics[metric])
	}

	if svgPath != "" {
		svg := export.ParticlesToSVG(driver.Groups(), 800, 600)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if themeName != "" {
		viz.SetTheme(themeName)
	}
	setup, err := buildSetup(args[0])
	if err != nil {
		return err
	}
	driver, err := integrator.New(setup.Groups, setup.Schemes,
		integrator.WithPipeline(setup.Pipeline),
		integrator.WithCourant(courant))
	if err != nil {
		return err
	}
	model := viz.NewModel(setup.Name, driver, setup.Dt, setup.Duration)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tABOUT")
	for _, info := range scenario.NewRegistry().List() {
		fmt.Fprintf(w, "%s\t%s\n", info.Name, info.About)
	}
	return w.Flush()
}

func listSteppers(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range steppers.Names() {
		scheme, err := steppers.ByName(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", name)
		fmt.Fprintln(w, "  PHASE\tWRITES\tREADS\tDT")
		for _, phase := range steppers.Phases {
			usage, err := steppers.ExtractUsage(scheme, phase)
			if err != nil {
				return err
			}
			if len(usage.Dest) == 0 && len(usage.Src) == 0 {
				continue
			}
			needsDt := "no"
			if usage.NeedsDt {
				needsDt = "yes"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
				phase, fieldList(usage.Dest), fieldList(usage.Src), needsDt)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func listPresetConfigs(cmd *cobra.Command, args []string) error {
	names := config.ListPresets(args[0])
	if len(names) == 0 {
		return fmt.Errorf("no presets for scenario: %s", args[0])
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDT\tTIME\tCOURANT")
	for _, preset := range names {
		p := config.GetPreset(args[0], preset)
		fmt.Fprintf(w, "%s\t%.2e\t%.2fs\t%.2f\n", preset, p.Dt, p.Duration, p.Courant)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tSTEPS\tSTEPPERS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.2e\t%d\t%s\n",
			run.ID, run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration, run.Dt, run.Steps, assignmentString(run.Steppers))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	times, _, series, err := store.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}

	names := make([]string, 0, len(series))
	for name := range series {
		if metricName == "" || name == metricName {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("metric %q not in run %s (have: %s)",
			metricName, args[0], strings.Join(seriesNames(series), ", "))
	}
	sort.Strings(names)

	fmt.Printf("%s  (%s, %d samples)\n\n", meta.ID, meta.Scenario, len(times))
	for _, name := range names {
		fmt.Println(asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name)))
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	times, _, series, err := store.LoadSeries(args[0])
	if err != nil {
		return err
	}

	data, ok := series[metricName]
	if !ok {
		return fmt.Errorf("metric %q not in run %s (have: %s)",
			metricName, args[0], strings.Join(seriesNames(series), ", "))
	}
	if len(data) < 4 || len(times) < 2 {
		return fmt.Errorf("run %s has too few samples to analyze", args[0])
	}

	fmt.Printf("frequency analysis: %s (%s)\n", meta.ID, metricName)

	power := analysis.PowerSpectrum(analysis.PadToPowerOfTwo(data))
	plotData := power
	if len(power)/4 >= 2 {
		plotData = power[:len(power)/4]
	}
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (low bins)")))
	fmt.Println()

	span := times[len(times)-1] - times[0]
	freq := analysis.DominantFrequency(data, span)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	groups, err := storage.New(dataDir).LoadParticles(args[0])
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(70, 20)
	drawScatter(canvas, groups)
	fmt.Printf("final positions: %s\n\n", args[0])
	fmt.Print(canvas.String())
	fmt.Println()
	for _, g := range groups {
		fmt.Printf("%s: %d particles\n", g.Name(), g.Len())
	}

	if svgPath != "" {
		svg := export.ParticlesToSVG(groups, 800, 600)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	times, dts, series, err := store.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, times, dts, series)
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	times, dts, series, err := storage.New(dataDir).LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}
	names := seriesNames(series)

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time", "dt"}, names...)); err != nil {
		return err
	}
	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(dts[i], 'f', 6, 64),
		}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(series[name][i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	name := args[0]

	if profileMode != "" {
		switch profileMode {
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			return fmt.Errorf("unknown profile mode: %s (valid: cpu, mem)", profileMode)
		}
	}

	fmt.Printf("benchmarking %s (%.2fs per run)\n\n", name, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tDT\tSTEPS\tSAMPLES\tKINETIC")

	particleSteps := 0.0
	start := time.Now()
	for _, scale := range []int{1, 2} {
		snx, sny := nx*scale, ny*scale
		setup, err := buildSetupSized(name, snx, sny)
		if err != nil {
			return err
		}
		count := countParticles(setup.Groups)
		dts := []float64{setup.Dt / 2, setup.Dt, 2 * setup.Dt}

		sweep := sim.NewSweep(func() (sim.Stepper, error) {
			fresh, err := buildSetupSized(name, snx, sny)
			if err != nil {
				return nil, err
			}
			return integrator.New(fresh.Groups, fresh.Schemes,
				integrator.WithPipeline(fresh.Pipeline))
		}, dts...)
		sweep.Metrics = func() []sim.Metric {
			return []sim.Metric{metrics.NewKineticEnergy()}
		}

		results, err := sweep.Run(context.Background(), sim.Config{
			Duration:       duration,
			SampleStride:   stride,
			ValidateFields: true,
		})
		for i, result := range results {
			if result == nil {
				fmt.Fprintf(w, "%d\t%.2e\tfailed\t\t\n", count, dts[i])
				continue
			}
			particleSteps += float64(result.StepsTaken) * float64(count)
			fmt.Fprintf(w, "%d\t%.2e\t%d\t%d\t%.6f\n",
				count, dts[i], result.StepsTaken, len(result.Times),
				result.Metrics["kinetic_energy"])
		}
		if err != nil {
			w.Flush()
			return err
		}
	}
	elapsed := time.Since(start)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%.0f particle-steps/sec over %v\n",
		particleSteps/elapsed.Seconds(), elapsed.Round(time.Millisecond))
	return nil
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	name := args[0]

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tSTEPS\tKINETIC\tAVG_RHO\tTIME_MS")
	for _, scheme := range args[1:] {
		setup, err := buildSetup(name)
		if err != nil {
			return err
		}
		for _, g := range setup.Groups {
			if err = overrideScheme(setup, g.Name(), scheme); err != nil {
				break
			}
		}
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\n", scheme, err)
			continue
		}
		driver, err := integrator.New(setup.Groups, setup.Schemes,
			integrator.WithPipeline(setup.Pipeline))
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\n", scheme, err)
			continue
		}

		runner := sim.New(driver)
		runner.AddMetric(metrics.NewKineticEnergy())
		runner.AddMetric(metrics.NewAvgDensity())

		start := time.Now()
		result, err := runner.Run(context.Background(), sim.Config{
			Dt:             setup.Dt,
			Duration:       duration,
			SampleStride:   stride,
			ValidateFields: true,
		})
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\n", scheme, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.2f\t%.1f\n",
			scheme, result.StepsTaken,
			result.Metrics["kinetic_energy"],
			result.Metrics["avg_density"],
			float64(time.Since(start).Microseconds())/1000)
	}
	return w.Flush()
}

// buildSetup assembles a scenario from the layout flags.
func buildSetup(name string) (*scenario.Setup, error) {
	return buildSetupSized(name, nx, ny)
}

func buildSetupSized(name string, cols, rows int) (*scenario.Setup, error) {
	return scenario.NewRegistry().Get(name, scenario.Params{
		Spacing: spacing,
		NX:      cols,
		NY:      rows,
		Seed:    seed,
	})
}

// overrideScheme reassigns one group to a different stepping scheme,
// growing the group by whatever fields the new scheme needs.
func overrideScheme(setup *scenario.Setup, group, scheme string) error {
	s, err := steppers.ByName(scheme)
	if err != nil {
		return err
	}
	var target *particles.Group
	for _, g := range setup.Groups {
		if g.Name() == group {
			target = g
			break
		}
	}
	if target == nil {
		return fmt.Errorf("scenario %s has no group %q", setup.Name, group)
	}
	fields, err := steppers.RequiredFields(s)
	if err != nil {
		return err
	}
	target.AddFields(fields...)
	seedHatVelocities(target)
	setup.Schemes[group] = s
	return nil
}

// seedHatVelocities starts any transport velocity from the momentum
// velocity so a scheme switch does not freeze advection.
func seedHatVelocities(g *particles.Group) {
	for _, pair := range [][2]string{{"u", "uhat"}, {"v", "vhat"}, {"w", "what"}} {
		src, dst := g.Field(pair[0]), g.Field(pair[1])
		if src == nil || dst == nil {
			continue
		}
		copy(dst, src)
	}
}

func drawScatter(canvas *viz.Canvas, groups []*particles.Group) {
	var minX, maxX, minY, maxY float64
	found := false
	for _, g := range groups {
		x, y := g.Field("x"), g.Field("y")
		if x == nil || y == nil {
			continue
		}
		for i := range x {
			if !found {
				minX, maxX, minY, maxY = x[i], x[i], y[i], y[i]
				found = true
				continue
			}
			if x[i] < minX {
				minX = x[i]
			}
			if x[i] > maxX {
				maxX = x[i]
			}
			if y[i] < minY {
				minY = y[i]
			}
			if y[i] > maxY {
				maxY = y[i]
			}
		}
	}
	if !found {
		return
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	pw, ph := canvas.PixelSize()
	for _, g := range groups {
		x, y := g.Field("x"), g.Field("y")
		if x == nil || y == nil {
			continue
		}
		for i := range x {
			px := int((x[i] - minX) / spanX * float64(pw-1))
			py := (ph - 1) - int((y[i]-minY)/spanY*float64(ph-1))
			canvas.Set(px, py)
		}
	}
}

func countParticles(groups []*particles.Group) int {
	n := 0
	for _, g := range groups {
		n += g.Len()
	}
	return n
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func seriesNames(series map[string][]float64) []string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func assignmentString(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for group, scheme := range m {
		parts = append(parts, group+"="+scheme)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func fieldList(fields []string) string {
	if len(fields) == 0 {
		return "-"
	}
	return strings.Join(fields, ",")
}
