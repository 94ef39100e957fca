package main

import (
	"fmt"
	"os"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/gui"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	cols       int
	rows       int
	spacing    float64
	iterations int
	gravity    float64
	stretch    float64
	// Window
	winWidth  int
	winHeight int
	frameRate int
	// Terminal
	theme    string
	showMenu bool
	gifPath  string
	// Headless
	frames   int
	dt       float64
	cutLine  bool
	dragPull bool
	asJSON   bool
	outPath  string
	savePath string
	metric   string
	// Sweep
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	sweepTail  int
	// Automation
	trials     int
	seed       int64
	searchGrid []string
)

// addConfigFlags registers the flags that shape the cloth itself.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "default", "preset configuration")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "particles per row")
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "particle rows")
	cmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "rest distance between neighbours")
	cmd.Flags().IntVar(&iterations, "iterations", 8, "relaxation passes per frame")
	cmd.Flags().Float64Var(&gravity, "gravity", 0.35, "gravity per frame")
	cmd.Flags().Float64Var(&stretch, "stretch-limit", 5, "tear at this multiple of rest length")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60, "seconds per frame")
	cmd.Flags().BoolVar(&cutLine, "cut", false, "sweep a cut across the cloth")
	cmd.Flags().BoolVar(&dragPull, "drag", false, "grab the bottom edge and pull it down")
}

// resolveConfig layers preset, config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("cols") {
		cfg.Grid.Cols = cols
	}
	if flags.Changed("rows") {
		cfg.Grid.Rows = rows
	}
	if flags.Changed("spacing") {
		cfg.Grid.Spacing = spacing
	}
	if flags.Changed("iterations") {
		cfg.Solver.Iterations = iterations
	}
	if flags.Changed("gravity") {
		cfg.Physics.Gravity = gravity
	}
	if flags.Changed("stretch-limit") {
		cfg.Solver.StretchLimit = stretch
	}
	if flags.Changed("width") {
		cfg.Render.Width = winWidth
	}
	if flags.Changed("height") {
		cfg.Render.Height = winHeight
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	return sim.New(cfg.SimConfig())
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	opts := gui.DefaultOptions()
	opts.Width, opts.Height, opts.FPS = cfg.Render.Width, cfg.Render.Height, cfg.Render.FPS
	return gui.Run(s, cfg.Name, opts)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if showMenu {
		return viz.RunInteractive(theme)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	return viz.Run(s, cfg.Name, theme, gifPath)
}

// main registers commands and flags; with no subcommand the window opens.
func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "tearable cloth simulator",
		RunE:  runGUI,
	}
	addConfigFlags(rootCmd)
	rootCmd.Flags().IntVar(&winWidth, "width", config.DefaultWidth, "window width")
	rootCmd.Flags().IntVar(&winHeight, "height", config.DefaultHeight, "window height")
	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "target frame rate")

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the cloth in a window",
		RunE:  runGUI,
	}
	addConfigFlags(guiCmd)
	guiCmd.Flags().IntVar(&winWidth, "width", config.DefaultWidth, "window width")
	guiCmd.Flags().IntVar(&winHeight, "height", config.DefaultHeight, "window height")
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "target frame rate")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "open the cloth in the terminal",
		RunE:  runTUI,
	}
	addConfigFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&theme, "theme", "cyberpunk", fmt.Sprintf("hud theme %v", viz.ThemeNames()))
	tuiCmd.Flags().BoolVar(&showMenu, "menu", false, "start at the preset menu")
	tuiCmd.Flags().StringVar(&gifPath, "gif", "cloth.gif", "where G saves recordings")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the cloth headless and record metrics",
		RunE:  runHeadless,
	}
	addConfigFlags(runCmd)
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print the run as json instead of saving it")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&metric, "metric", "mean_depth", "metric series to analyse")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "simulate and write the final frame as SVG",
		RunE:  exportSVG,
	}
	addConfigFlags(exportSVGCmd)
	addRunFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "cloth.svg", "output file")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "rerun the cloth across a parameter range",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepParam,
	}
	addConfigFlags(sweepCmd)
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "values to try")
	sweepCmd.Flags().IntVar(&sweepTail, "tail", 60, "samples kept per value")
	sweepCmd.Flags().StringVar(&metric, "metric", "max_stretch", "metric to record")

	compareCmd := &cobra.Command{
		Use:   "compare [iterations...]",
		Short: "compare relaxation pass counts side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIterations,
	}
	addConfigFlags(compareCmd)
	addRunFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frames per second across grid sizes",
		RunE:  benchGrid,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted yaml scenario and save it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	montecarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "slash the cloth along random lines",
		RunE:  runMonteCarlo,
	}
	addConfigFlags(montecarloCmd)
	montecarloCmd.Flags().IntVar(&trials, "trials", 20, "random cuts to try")
	montecarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 for time based)")
	montecarloCmd.Flags().IntVar(&frames, "frames", 180, "frames per trial")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search cloth parameters minimising a metric",
		RunE:  runSearch,
	}
	addConfigFlags(searchCmd)
	addRunFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&searchGrid, "param", nil, "name=v1,v2,... (repeatable)")
	searchCmd.Flags().StringVar(&metric, "metric", "max_stretch", "metric to minimise")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s %dx%d  iterations %d  stretch %.1f\n",
					name, cfg.Grid.Cols, cfg.Grid.Rows, cfg.Solver.Iterations, cfg.Solver.StretchLimit)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		RunE:  showConfig,
	}
	addConfigFlags(configCmd)
	configCmd.Flags().StringVar(&savePath, "save", "", "also write the resolved configuration to this file")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, sweepCmd, compareCmd, benchCmd, scenarioCmd, montecarloCmd, searchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
