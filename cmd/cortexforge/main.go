package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/san-kum/cortexforge/internal/analysis"
	"github.com/san-kum/cortexforge/internal/config"
	"github.com/san-kum/cortexforge/internal/export"
	"github.com/san-kum/cortexforge/internal/logging"
	"github.com/san-kum/cortexforge/internal/optim"
	"github.com/san-kum/cortexforge/internal/rcd"
	"github.com/san-kum/cortexforge/internal/viz"
	"github.com/spf13/cobra"
)

var (
	// simulation parameters
	timesteps int
	alpha     float64
	beta      float64
	gamma     float64
	shock     float64
	drug      string
	// config file
	configFile string
	// preset name
	preset string
	// logging
	logLevel  string
	logFormat string
	logFile   string
	// run
	withPlot  bool
	withStats bool
	// plot size
	plotWidth  int
	plotHeight int
	// phase view and svg
	rotX        float64
	rotY        float64
	zoom        float64
	phaseWidth  int
	phaseHeight int
	svgWidth    int
	svgHeight   int
	// export
	format  string
	outPath string
	// sweep range
	sweepFrom float64
	sweepTo   float64
	sweepBy   float64
	// optimize
	objective string
	maxRuns   int
)

var (
	logger  = slog.New(slog.DiscardHandler)
	logSink *os.File
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "cortexforge",
		Short:             "hope, memory and reinforcement recurrence simulator",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE:              runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text|json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append JSON logs to this file")
	bindSimFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate and print the final values",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	bindSimFlags(runCmd)
	runCmd.Flags().BoolVar(&withPlot, "plot", false, "append the series plot")
	runCmd.Flags().BoolVar(&withStats, "stats", false, "append trajectory statistics")
	bindPlotFlags(runCmd)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot H, M and R against the step index",
		Args:  cobra.NoArgs,
		RunE:  plotSeries,
	}
	bindSimFlags(plotCmd)
	bindPlotFlags(plotCmd)

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "render the 3D phase trajectory",
		Args:  cobra.NoArgs,
		RunE:  phasePlot,
	}
	bindSimFlags(phaseCmd)
	bindViewFlags(phaseCmd, &phaseWidth, &phaseHeight, 80, 30)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export the trajectory as csv, json or svg",
		Args:  cobra.NoArgs,
		RunE:  exportRun,
	}
	bindSimFlags(exportCmd)
	bindViewFlags(exportCmd, &svgWidth, &svgHeight, 800, 600)
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format (csv|json|svg)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	sweepCmd := &cobra.Command{
		Use:       "sweep [option]",
		Short:     "run one simulation per value of an option",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.OptionNames(),
		RunE:      sweepOption,
	}
	bindSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", math.NaN(), "first value (default option minimum)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", math.NaN(), "last value (default option maximum)")
	sweepCmd.Flags().Float64Var(&sweepBy, "by", math.NaN(), "increment (default option step)")

	optimizeCmd := &cobra.Command{
		Use:   "optimize [option...]",
		Short: "grid search the named options for the best objective",
		Args:  cobra.MinimumNArgs(1),
		RunE:  optimizeOptions,
	}
	bindSimFlags(optimizeCmd)
	optimizeCmd.Flags().StringVar(&objective, "objective", "max-hope", fmt.Sprintf("objective to minimize %v", optim.ObjectiveNames()))
	optimizeCmd.Flags().IntVar(&maxRuns, "max-runs", 50000, "refuse grids larger than this")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTEPS\tALPHA\tBETA\tGAMMA\tSHOCK\tDRUG")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
					name, p.Timesteps, p.Alpha, p.Beta, p.Gamma, p.ShockIntensity, p.DrugEffect)
			}
			return w.Flush()
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive slider view",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	bindSimFlags(tuiCmd)

	rootCmd.AddCommand(runCmd, plotCmd, phaseCmd, exportCmd, sweepCmd, optimizeCmd, presetsCmd, tuiCmd)
	return rootCmd
}

func bindSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&timesteps, "timesteps", config.DefaultTimesteps, "number of samples (100-1000)")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "memory rigidity (0-1)")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "reinforcement modulation (0-1)")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "symbolic coherence (0-1)")
	cmd.Flags().Float64Var(&shock, "shock", config.DefaultShock, "trauma shock intensity (0-1)")
	cmd.Flags().StringVar(&drug, "drug", config.DefaultDrug, "pharmacological analog (none|ssri|dopamine-agonist|aletheamine)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func bindPlotFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")
}

func bindViewFlags(cmd *cobra.Command, width, height *int, w, h int) {
	cam := viz.NewCamera()
	cmd.Flags().Float64Var(&rotX, "rot-x", cam.RotX, "rotation about x (radians)")
	cmd.Flags().Float64Var(&rotY, "rot-y", cam.RotY, "rotation about y (radians)")
	cmd.Flags().Float64Var(&zoom, "zoom", cam.Zoom, "zoom factor")
	cmd.Flags().IntVar(width, "width", w, "view width")
	cmd.Flags().IntVar(height, "height", h, "view height")
}

// setupLogging builds the shared logger. The interactive view draws on the
// terminal, so it only logs to --log-file.
func setupLogging(cmd *cobra.Command, args []string) error {
	var file io.Writer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logSink = f
		file = f
	}
	var term io.Writer = cmd.ErrOrStderr()
	if isInteractive(cmd) {
		term = nil
	}
	logger = logging.New(logging.Options{
		Level:  logLevel,
		Format: logFormat,
		Writer: term,
		File:   file,
	})
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}

func closeLog() {
	if logSink != nil {
		logSink.Close()
		logSink = nil
	}
	logger = slog.New(slog.DiscardHandler)
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	source := "defaults"

	if preset != "" {
		p, err := config.LookupPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
		source = "preset " + preset
	}

	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		source = "config " + configFile
	}

	flags := cmd.Flags()
	if flags.Changed("timesteps") {
		cfg.Timesteps = timesteps
	}
	if flags.Changed("alpha") {
		cfg.Alpha = alpha
	}
	if flags.Changed("beta") {
		cfg.Beta = beta
	}
	if flags.Changed("gamma") {
		cfg.Gamma = gamma
	}
	if flags.Changed("shock") {
		cfg.ShockIntensity = shock
	}
	if flags.Changed("drug") {
		cfg.DrugEffect = drug
	}

	logger.Debug("configuration resolved", "source", source,
		"timesteps", cfg.Timesteps, "alpha", cfg.Alpha, "beta", cfg.Beta,
		"gamma", cfg.Gamma, "shock", cfg.ShockIntensity, "drug", cfg.DrugEffect)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simulate(cmd *cobra.Command) (rcd.Config, rcd.Trajectory, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return rcd.Config{}, rcd.Trajectory{}, err
	}
	ecfg, err := cfg.Engine()
	if err != nil {
		return rcd.Config{}, rcd.Trajectory{}, err
	}

	start := time.Now()
	tr := rcd.Simulate(ecfg)
	logger.Debug("simulation complete", "steps", tr.Len(), "elapsed", time.Since(start))
	if !tr.Finite() {
		logger.Warn("trajectory contains non-finite values", "steps", tr.Len())
	}
	return ecfg, tr, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	_, tr, err := simulate(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, viz.Summary(tr))

	if withStats {
		fmt.Fprintln(out)
		if err := printReport(out, analysis.Analyze(tr)); err != nil {
			return err
		}
	}

	if withPlot {
		plot, err := viz.SeriesPlot(tr, plotWidth, plotHeight)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n", plot)
	}
	return nil
}

func printReport(out io.Writer, rep analysis.Report) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIABLE\tMIN\tMAX\tMEAN\tFINAL\tPERIOD")
	rows := []struct {
		name   string
		s      analysis.VarStats
		period float64
	}{
		{"hope", rep.Hope, rep.Period.Hope},
		{"memory", rep.Memory, rep.Period.Memory},
		{"reinforcement", rep.Reinforcement, rep.Period.Reinforcement},
	}
	for _, r := range rows {
		period := "-"
		if r.period > 0 {
			period = fmt.Sprintf("%.1f", r.period)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%s\n", r.name, r.s.Min, r.s.Max, r.s.Mean, r.s.Final, period)
	}
	return w.Flush()
}

func plotSeries(cmd *cobra.Command, args []string) error {
	_, tr, err := simulate(cmd)
	if err != nil {
		return err
	}
	plot, err := viz.SeriesPlot(tr, plotWidth, plotHeight)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), plot)
	return nil
}

func viewCamera() *viz.Camera {
	cam := viz.NewCamera()
	cam.RotX = rotX
	cam.RotY = rotY
	cam.Zoom = zoom
	return cam
}

func phasePlot(cmd *cobra.Command, args []string) error {
	_, tr, err := simulate(cmd)
	if err != nil {
		return err
	}
	if phaseWidth < 1 || phaseHeight < 1 {
		return fmt.Errorf("view size must be positive, got %dx%d", phaseWidth, phaseHeight)
	}

	canvas := viz.NewCanvas(phaseWidth, phaseHeight)
	viz.Render3D(canvas, viz.PhaseWireframe(tr), viewCamera())

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, canvas.Render())
	fmt.Fprintln(out, viz.Subtle.Render("axes: x = hope, y = reinforcement, z = memory; color runs dark to bright with time"))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	ecfg, tr, err := simulate(cmd)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	opts := export.Options{Camera: viewCamera(), Width: svgWidth, Height: svgHeight}
	if err := export.Write(w, format, ecfg, tr, opts); err != nil {
		return err
	}
	if outPath != "" {
		logger.Info("exported trajectory", "format", format, "path", outPath, "steps", tr.Len())
	}
	return nil
}

func sweepOption(cmd *cobra.Command, args []string) error {
	opt, err := config.LookupOption(args[0])
	if err != nil {
		return err
	}
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	from, to, by := sweepFrom, sweepTo, sweepBy
	if math.IsNaN(from) {
		from = opt.Min
	}
	if math.IsNaN(to) {
		to = opt.Max
	}
	if math.IsNaN(by) {
		by = opt.Step
	}
	vals, err := optim.Range(from, to, by)
	if err != nil {
		return err
	}

	cfgs := make([]rcd.Config, len(vals))
	for i, v := range vals {
		c := base.Clone()
		if err := c.Set(opt.Name, v); err != nil {
			return err
		}
		if cfgs[i], err = c.Engine(); err != nil {
			return err
		}
	}

	start := time.Now()
	trs, err := rcd.RunAll(cmd.Context(), cfgs)
	if err != nil {
		return err
	}
	logger.Debug("sweep complete", "option", opt.Name, "runs", len(trs), "elapsed", time.Since(start))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s\tH\tM\tR\t\n", opt.Name)
	for i, tr := range trs {
		f := tr.Final()
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t\n", strconv.FormatFloat(vals[i], 'g', -1, 64), f.H, f.M, f.R)
		if !tr.Finite() {
			logger.Warn("trajectory contains non-finite values", "option", opt.Name, "value", vals[i])
		}
	}
	return w.Flush()
}

func optimizeOptions(cmd *cobra.Command, args []string) error {
	obj, err := optim.LookupObjective(objective)
	if err != nil {
		return err
	}
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ranges := make([][]float64, len(args))
	for i, name := range args {
		if ranges[i], err = optim.OptionGrid(name); err != nil {
			return err
		}
	}
	gs := optim.NewGridSearch(args, ranges)
	if gs.Size() > maxRuns {
		return fmt.Errorf("grid has %d points, above --max-runs %d", gs.Size(), maxRuns)
	}

	start := time.Now()
	res, err := gs.Search(cmd.Context(), base, obj)
	if err != nil {
		return err
	}
	logger.Debug("search complete", "objective", objective, "runs", res.Runs, "elapsed", time.Since(start))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "best of %d runs (%s): %s\n", res.Runs, objective, res)
	fmt.Fprintf(out, "score: %g\n\n", res.Score)
	fmt.Fprint(out, viz.Summary(rcd.Simulate(res.Config)))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger.Info("starting interactive view")
	return viz.Run(cfg, logger)
}

