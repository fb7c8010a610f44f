package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Sciguy324/QuantumSimulator/internal/analysis"
	"github.com/Sciguy324/QuantumSimulator/internal/config"
	"github.com/Sciguy324/QuantumSimulator/internal/export"
	"github.com/Sciguy324/QuantumSimulator/internal/gui"
	"github.com/Sciguy324/QuantumSimulator/internal/observables"
	"github.com/Sciguy324/QuantumSimulator/internal/propagators"
	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
	"github.com/Sciguy324/QuantumSimulator/internal/scenarios"
	"github.com/Sciguy324/QuantumSimulator/internal/sim"
	"github.com/Sciguy324/QuantumSimulator/internal/storage"
	"github.com/Sciguy324/QuantumSimulator/internal/sweep"
	"github.com/Sciguy324/QuantumSimulator/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	configFile string

	dt          float64
	steps       int
	order       int
	propagator  string
	boundary    string
	sampleEvery int
	probes      []string
	renormalize bool
	follow      bool
	followFPS   int

	seriesName string
	outPath    string
	renderMode string
	colormap   string
	imgWidth   int
	imgHeight  int

	modes     int
	plotMode  int
	decompose bool
	threshold float64

	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepPoints int
	sweepSteps  int
	tolerance   float64

	benchSteps  int
	benchOrders []int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qsim",
		Short: "time-dependent schrodinger playground",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				logrus.Fatalf("invalid log level %q", logLevel)
			}
			logrus.SetLevel(level)
		},
		// Bare invocation opens the scenario picker, like live.
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunPicker()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultOutputDir, "run directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and save the results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (scenario default when 0)")
	runCmd.Flags().IntVar(&steps, "steps", 0, "number of steps (scenario default when 0)")
	runCmd.Flags().IntVar(&order, "order", 0, "taylor expansion order (scenario default when 0)")
	runCmd.Flags().StringVar(&propagator, "propagator", "", "taylor, euler, visscher, or crank-nicolson")
	runCmd.Flags().StringVar(&boundary, "boundary", "", "dirichlet or none")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record observables every n steps")
	runCmd.Flags().StringSliceVar(&probes, "probes", []string{"norm", "energy"}, "observables to record")
	runCmd.Flags().BoolVar(&renormalize, "renormalize", true, "renormalize after every step")
	runCmd.Flags().StringVar(&configFile, "config", "", "yaml config file")
	runCmd.Flags().BoolVar(&follow, "follow", false, "print a live density sparkline")
	runCmd.Flags().IntVar(&followFPS, "fps", 12, "sparkline frame rate")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "watch a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return viz.RunPicker()
			}
			return viz.Run(args[0])
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui [scenario]",
		Short: "watch a scenario in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := config.DefaultScenario
			if len(args) > 0 {
				name = args[0]
			}
			return gui.Run(name)
		},
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list bundled scenarios",
		RunE:  listScenarios,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "chart recorded observables",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&seriesName, "series", "", "plot a single series")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run-id]",
		Short: "export recorded observables as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outPath, "out", "", "output file (stdout when empty)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run-id]",
		Short: "export a run with its metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (stdout when empty)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run-id]",
		Short: "render the final wavefunction of a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "", "output file (<run-id>.svg when empty)")
	exportSVGCmd.Flags().StringVar(&renderMode, "mode", "", "square-modulus, real, or imag")
	exportSVGCmd.Flags().StringVar(&colormap, "colormap", "", "viridis, magma, or grayscale")
	exportSVGCmd.Flags().IntVar(&imgWidth, "width", 0, "image width (scenario default when 0)")
	exportSVGCmd.Flags().IntVar(&imgHeight, "height", 0, "image height (scenario default when 0)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run-id]",
		Short: "power spectrum of a recorded series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&seriesName, "series", "", "series to transform (position_x when recorded)")

	eigenCmd := &cobra.Command{
		Use:   "eigen [scenario]",
		Short: "stationary states of a 1D scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  eigenScenario,
	}
	eigenCmd.Flags().IntVar(&modes, "modes", 5, "number of eigenpairs")
	eigenCmd.Flags().IntVar(&plotMode, "plot", 0, "chart the density of this mode (0 skips)")
	eigenCmd.Flags().BoolVar(&decompose, "decompose", false, "project the initial state onto the eigenbasis")
	eigenCmd.Flags().Float64Var(&threshold, "threshold", 1e-4, "drop ket terms below this probability")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "steps per second across propagators",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 200, "steps per measurement")
	benchCmd.Flags().IntSliceVar(&benchOrders, "orders", []int{30, 50, 70}, "taylor orders to measure")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "map the stable region of dt or order",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepScenario,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", sweep.ParamDt, "dt or order")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "range start (parameter default when 0)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0, "range end (parameter default when 0)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 8, "points across the range")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 0, "steps per point (scenario default when 0)")
	sweepCmd.Flags().Float64Var(&tolerance, "tolerance", 0, "norm-drift bound for the stable flag")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [propagator...]",
		Short: "propagators side by side on one scenario",
		RunE:  comparePropagators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (scenario default when 0)")
	compareCmd.Flags().IntVar(&steps, "steps", 0, "number of steps (scenario default when 0)")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, scenariosCmd, runsCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, analyzeCmd, eigenCmd,
		benchCmd, sweepCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}

	// Flags override both the defaults and the config file.
	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("steps") {
		cfg.Steps = steps
	}
	if f.Changed("order") {
		cfg.Order = order
	}
	if f.Changed("propagator") {
		cfg.Propagator = propagator
	}
	if f.Changed("boundary") {
		cfg.Boundary = boundary
	}
	if f.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if f.Changed("probes") {
		cfg.Probes = probes
	}
	if f.Changed("renormalize") {
		cfg.Renormalize = renormalize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	scen, err := scenarios.Get(cfg.Scenario)
	if err != nil {
		return err
	}
	d := cfg.Resolved(scen.Defaults)

	sys, psi0, s, err := buildSimulator(scen, d)
	if err != nil {
		return err
	}
	for _, name := range cfg.Probes {
		p, err := observables.ByName(name, psi0)
		if err != nil {
			return err
		}
		s.AddProbe(p)
	}
	s.AddMetric(observables.NewStability(sys.Grid(), 1e-6))

	var fol *viz.Follow
	if follow {
		fol = viz.NewFollow(sys, os.Stdout, followFPS)
		s.AddObserver(fol)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logrus.Infof("running %s: %s grid, dt=%g, %d steps, %s order %d",
		scen.Name, shapeString(sys.Grid().Shape), d.Dt, d.Steps, d.Propagator, d.Order)

	start := time.Now()
	result, runErr := s.Run(ctx, psi0, cfg.RunConfig(d))
	elapsed := time.Since(start)
	if fol != nil {
		fol.Done()
	}
	if result == nil {
		return runErr
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Scenario:   scen.Name,
		Dt:         d.Dt,
		Steps:      d.Steps,
		Order:      d.Order,
		Propagator: d.Propagator,
		Boundary:   d.Boundary,
	}, sys.Grid(), result)
	if err != nil {
		return err
	}
	logrus.Infof("saved run to %s", dataDir)

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d/%d\n", result.StepsTaken, d.Steps)
	fmt.Printf("norm drift: %.3e\n", result.NormDrift)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		names := make([]string, 0, len(result.Metrics))
		for name := range result.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
		}
	}

	switch {
	case runErr == nil:
		return nil
	case errors.Is(runErr, context.Canceled):
		logrus.Warnf("interrupted after %d steps, partial run saved", result.StepsTaken)
		return nil
	default:
		logrus.Warnf("run stopped early: %v", runErr)
		return runErr
	}
}

// buildSimulator assembles a scenario with resolved numerical settings
// into a ready simulator.
func buildSimulator(scen *scenarios.Scenario, d scenarios.Defaults) (*quantum.Schrodinger, quantum.State, *sim.Simulator, error) {
	sys, psi0, err := scen.Build()
	if err != nil {
		return nil, nil, nil, err
	}
	prop, err := propagators.New(d.Propagator, d.Order)
	if err != nil {
		return nil, nil, nil, err
	}
	bnd, err := quantum.BoundaryByName(d.Boundary)
	if err != nil {
		return nil, nil, nil, err
	}
	return sys, psi0, sim.New(sys, prop, bnd), nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIM\tDT\tORDER\tPROPAGATOR\tBOUNDARY\tSTEPS\tDESCRIPTION")
	for _, name := range scenarios.Names() {
		scen, err := scenarios.Get(name)
		if err != nil {
			return err
		}
		d := scen.Defaults
		fmt.Fprintf(w, "%s\t%d\t%g\t%d\t%s\t%s\t%d\t%s\n",
			scen.Name, scen.Dim, d.Dt, d.Order, d.Propagator, d.Boundary, d.Steps, scen.Description)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tGRID\tDT\tSTEPS\tPROPAGATOR\tNORM-DRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%d/%d\t%s\t%.2e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			shapeString(run.Shape),
			run.Dt,
			run.StepsTaken,
			run.Steps,
			run.Propagator,
			run.NormDrift,
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
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d over %.3f time units\n\n", len(times), times[len(times)-1])

	names := seriesNames(series, seriesName)
	if len(names) == 0 {
		return fmt.Errorf("run %s has no series %q", args[0], seriesName)
	}
	for _, name := range names {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

// seriesNames filters to one series when only is set, otherwise all
// plottable series in stable order.
func seriesNames(series map[string][]float64, only string) []string {
	if only != "" {
		if _, ok := series[only]; !ok {
			return nil
		}
		return []string{only}
	}
	names := make([]string, 0, len(series))
	for name, vals := range series {
		if len(vals) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(outPath, &sim.Result{Times: times, Series: series})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	result := &sim.Result{
		Times:       times,
		Series:      series,
		StepsTaken:  meta.StepsTaken,
		NormDrift:   meta.NormDrift,
		EnergyDrift: meta.EnergyDrift,
		Metrics:     meta.Metrics,
	}
	return storage.ExportJSON(outPath, *meta, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	switch scenarios.RenderMode(renderMode) {
	case "", scenarios.SquareModulus, scenarios.RealPart, scenarios.ImaginaryPart:
	default:
		return fmt.Errorf("unknown render mode %q: %w", renderMode, quantum.ErrInvalidConfig)
	}

	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	psi, err := st.LoadWavefunction(args[0])
	if err != nil {
		return err
	}
	scen, err := scenarios.Get(meta.Scenario)
	if err != nil {
		return err
	}

	// The store keeps amplitudes only; the grid comes from rebuilding
	// the scenario.
	sys, _, err := scen.Build()
	if err != nil {
		return err
	}
	g := sys.Grid()
	if !equalShape(g.Shape, meta.Shape) {
		return fmt.Errorf("scenario %s builds a %s grid, run %s was recorded on %s: %w",
			meta.Scenario, shapeString(g.Shape), meta.ID, shapeString(meta.Shape), quantum.ErrGridMismatch)
	}

	opts := export.Options{Width: imgWidth, Height: imgHeight}
	if renderMode != "" {
		opts.Mode = scenarios.RenderMode(renderMode)
	}
	if colormap != "" {
		opts.Colormap = viz.ColormapByName(colormap)
	}
	svg, err := export.WavefunctionToSVG(scen, g, psi, opts)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = meta.ID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(times) < 2 {
		return fmt.Errorf("run %s has %d samples, need at least 2", args[0], len(times))
	}

	name := seriesName
	if name == "" {
		name = pickSeries(series)
	}
	data, ok := series[name]
	if !ok {
		return fmt.Errorf("run %s has no series %q (have: %s)",
			args[0], name, strings.Join(seriesNames(series, ""), ", "))
	}

	sampleDt := times[1] - times[0]
	spec, err := analysis.PowerSpectrum(data, sampleDt)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("series: %s, %d samples at dt=%g\n\n", name, len(data), sampleDt)

	plotData := spec.Power
	if len(plotData) >= 8 {
		plotData = plotData[:len(plotData)/4]
	}
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", name)),
	))
	fmt.Println()

	freq, err := analysis.DominantFrequency(data, sampleDt)
	if err != nil {
		return err
	}
	fmt.Printf("dominant frequency: %.4f cycles per unit time\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f, angular frequency: %.4f\n", 1/freq, 2*math.Pi*freq)
	}
	return nil
}

// pickSeries prefers the position expectation, which actually
// oscillates for superpositions; norm and energy are flat by
// construction.
func pickSeries(series map[string][]float64) string {
	if _, ok := series["position_x"]; ok {
		return "position_x"
	}
	names := seriesNames(series, "")
	for _, name := range names {
		if name != "norm" {
			return name
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

func eigenScenario(cmd *cobra.Command, args []string) error {
	name := config.DefaultScenario
	if len(args) > 0 {
		name = args[0]
	}
	scen, err := scenarios.Get(name)
	if err != nil {
		return err
	}
	sys, psi0, err := scen.Build()
	if err != nil {
		return err
	}

	res, err := analysis.Eigenstates(sys, modes)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tENERGY")
	for i, e := range res.Energies {
		fmt.Fprintf(w, "%d\t%.6f\n", i+1, e)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plotMode > 0 {
		if plotMode > len(res.States) {
			return fmt.Errorf("mode %d out of range, computed %d: %w", plotMode, len(res.States), quantum.ErrInvalidConfig)
		}
		dens := res.States[plotMode-1].SquareModulus(nil)
		fmt.Println()
		fmt.Println(asciigraph.Plot(dens,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("|psi_%d|^2", plotMode)),
		))
	}

	if decompose {
		comps, err := analysis.Decompose(sys, psi0, modes)
		if err != nil {
			return err
		}
		fmt.Println()
		dw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(dw, "MODE\tENERGY\tPROBABILITY")
		for _, c := range comps {
			fmt.Fprintf(dw, "%d\t%.6f\t%.6f\n", c.Index, c.Energy, c.Probability)
		}
		if err := dw.Flush(); err != nil {
			return err
		}
		fmt.Printf("\npsi0 = %s\n", analysis.Ket(comps, threshold))
	}
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	name := config.DefaultScenario
	if len(args) > 0 {
		name = args[0]
	}
	scen, err := scenarios.Get(name)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s (%d steps per row)\n\n", scen.Name, benchSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROPAGATOR\tORDER\tTIME\tSTEPS/SEC")

	for _, propName := range propagators.Names() {
		orders := []int{0}
		if propName == "taylor" {
			orders = benchOrders
		}
		for _, ord := range orders {
			d := scen.Defaults
			d.Propagator = propName
			if ord > 0 {
				d.Order = ord
			}
			orderLabel := strconv.Itoa(d.Order)
			if propName != "taylor" {
				orderLabel = "-"
			}

			_, psi0, s, err := buildSimulator(scen, d)
			if err != nil {
				fmt.Fprintf(w, "%s\t%s\terror: %v\t\n", propName, orderLabel, err)
				continue
			}
			cfg := sim.Config{
				Dt:          d.Dt,
				Steps:       benchSteps,
				SampleEvery: benchSteps,
				Renormalize: true,
			}
			start := time.Now()
			result, err := s.Run(context.Background(), psi0, cfg)
			elapsed := time.Since(start)
			if err != nil {
				fmt.Fprintf(w, "%s\t%s\terror: %v\t\n", propName, orderLabel, err)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%v\t%.0f\n",
				propName, orderLabel, elapsed.Round(time.Microsecond),
				float64(result.StepsTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	name := config.DefaultScenario
	if len(args) > 0 {
		name = args[0]
	}

	lo, hi := sweepMin, sweepMax
	if lo == 0 && hi == 0 {
		switch sweepParam {
		case sweep.ParamOrder:
			lo, hi = 10, 80
		default:
			lo, hi = 1e-3, 2e-2
		}
	}

	sw := sweep.Sweep{
		Scenario:  name,
		Param:     sweepParam,
		Min:       lo,
		Max:       hi,
		Points:    sweepPoints,
		Steps:     sweepSteps,
		Tolerance: tolerance,
	}

	logrus.Infof("sweeping %s over %s in [%g, %g], %d points", name, sweepParam, lo, hi, sweepPoints)

	points, err := sweep.Run(context.Background(), sw)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(sweepParam)+"\tNORM-DRIFT\tENERGY-DRIFT\tSTABLE")
	for _, pt := range points {
		fmt.Fprintf(w, "%g\t%.3e\t%.3e\t%v\n", pt.Value, pt.NormDrift, pt.EnergyDrift, pt.Stable)
	}
	return w.Flush()
}

func comparePropagators(cmd *cobra.Command, args []string) error {
	name := config.DefaultScenario
	props := propagators.Names()
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		props = args[1:]
	}
	scen, err := scenarios.Get(name)
	if err != nil {
		return err
	}
	d0 := scen.Defaults
	if dt > 0 {
		d0.Dt = dt
	}
	if steps > 0 {
		d0.Steps = steps
	}

	type outcome struct {
		name    string
		err     error
		grid    *quantum.Grid
		final   quantum.State
		norm    float64
		energy  float64
		elapsed time.Duration
	}
	outcomes := make([]outcome, 0, len(props))

	for _, propName := range props {
		d := d0
		d.Propagator = propName
		sys, psi0, s, err := buildSimulator(scen, d)
		if err != nil {
			outcomes = append(outcomes, outcome{name: propName, err: err})
			continue
		}
		normDrift := observables.NewNormDrift(sys.Grid())
		energyDrift := observables.NewEnergyDrift(sys)
		s.AddMetric(normDrift)
		s.AddMetric(energyDrift)

		// Drift is the point of the comparison, so no renormalization.
		cfg := sim.Config{
			Dt:            d.Dt,
			Steps:         d.Steps,
			SampleEvery:   d.Steps,
			ValidateEvery: 10,
		}
		start := time.Now()
		result, err := s.Run(context.Background(), psi0, cfg)
		elapsed := time.Since(start)
		if err != nil {
			outcomes = append(outcomes, outcome{name: propName, err: err})
			continue
		}
		outcomes = append(outcomes, outcome{
			name:    propName,
			grid:    sys.Grid(),
			final:   result.Final,
			norm:    normDrift.Value(),
			energy:  energyDrift.Value(),
			elapsed: elapsed,
		})
	}

	fmt.Printf("comparing propagators on %s (dt=%g, %d steps)\n\n", scen.Name, d0.Dt, d0.Steps)
	fmt.Printf("%-16s  %12s  %12s  %10s  %10s\n", "propagator", "norm_drift", "energy_drift", "overlap", "time_ms")
	fmt.Println(strings.Repeat("-", 68))

	// Overlap is measured against the first propagator that finished.
	var ref quantum.State
	for _, o := range outcomes {
		if o.err != nil {
			fmt.Printf("%-16s  error: %v\n", o.name, o.err)
			continue
		}
		ms := float64(o.elapsed.Microseconds()) / 1000

		final := o.final.Clone()
		if err := o.grid.Normalize(final); err != nil {
			fmt.Printf("%-16s  %12.2e  %12.2e  %10s  %10.2f\n", o.name, o.norm, o.energy, "-", ms)
			continue
		}
		if ref == nil {
			ref = final
		}
		overlap := cmplx.Abs(o.grid.InnerProduct(ref, final))
		fmt.Printf("%-16s  %12.2e  %12.2e  %10.6f  %10.2f\n", o.name, o.norm, o.energy, overlap, ms)
	}
	return nil
}

func shapeString(shape []int) string {
	parts := make([]string, len(shape))
	for i, n := range shape {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "x")
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
