package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// buildScript turns the --cut and --drag flags into scripted pointer input.
func buildScript(cfg *config.Config) sim.Script {
	p, vp := cfg.Projector(), cfg.Viewport()
	height := float64(cfg.Grid.Rows-1) * cfg.Grid.Spacing

	var scripts []sim.Script
	if dragPull {
		grip := p.WorldToScreen(mgl64.Vec3{0, height, 0}, vp)
		scripts = append(scripts, sim.DragScript(grip, grip.Add(mgl64.Vec2{0, 200}), 30, 60))
	}
	if cutLine {
		y := p.WorldToScreen(mgl64.Vec3{0, height * 0.4, 0}, vp).Y()
		scripts = append(scripts, sim.CutScript(mgl64.Vec2{vp.Width * 0.1, y}, mgl64.Vec2{vp.Width * 0.9, y}, 120, 60))
	}
	if len(scripts) == 0 {
		return nil
	}
	return sim.Chain(scripts...)
}

func runConfig(cfg *config.Config) sim.RunConfig {
	rc := sim.DefaultRunConfig()
	rc.Frames = frames
	rc.Dt = dt
	rc.Viewport = cfg.Viewport()
	rc.Script = buildScript(cfg)
	return rc
}

func metricByName(name string) (func() sim.Metric, error) {
	if _, ok := metrics.ByName(name); !ok {
		return nil, fmt.Errorf("unknown metric: %s (available: %v)", name, metrics.Names())
	}
	return func() sim.Metric {
		m, _ := metrics.ByName(name)
		return m
	}, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	rc := runConfig(cfg)
	if !asJSON {
		fmt.Printf("running %s cloth (%dx%d, %d frames)...\n", cfg.Name, cfg.Grid.Cols, cfg.Grid.Rows, rc.Frames)
	}
	start := time.Now()

	result, err := s.Run(cmd.Context(), rc)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := storage.NewMetadata(cfg.Name, s.Config(), rc, result)
	if asJSON {
		return storage.ExportJSON(os.Stdout, meta, result)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  torn: %d  cut: %d  live: %d\n", result.FramesRun, result.Torn, result.Cut, result.Live)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for _, name := range storage.SeriesNames(result.Series) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tGRID\tITER\tFRAMES\tTORN\tCUT\tLIVE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Cols, run.Rows,
			run.Iterations,
			run.Frames,
			run.Torn,
			run.Cut,
			run.Live,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(times))

	for _, name := range storage.SeriesNames(series) {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(strings.ReplaceAll(name, "_", " ")),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	metric, _ := cmd.Flags().GetString("metric")

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, _, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	data := series[metric]
	if len(data) < 2 {
		return fmt.Errorf("no %s data in run %s", metric, runID)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("metric: %s\n\n", metric)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:max(len(ps)/4, 2)]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", metric)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, power := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz (magnitude %.3g)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{Times: times, Series: series, Metrics: meta.Metrics}
	return storage.ExportJSON(os.Stdout, *meta, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	if _, err := s.Run(cmd.Context(), runConfig(cfg)); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteSVG(f, s, cfg.Viewport()); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d constraints)\n", outPath, len(s.Mesh().Constraints))
	return nil
}

func sweepParam(cmd *cobra.Command, args []string) error {
	param := args[0]
	metric, _ := cmd.Flags().GetString("metric")

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	newMetric, err := metricByName(metric)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s from %.3f to %.3f (%d steps, %s)\n\n", param, sweepFrom, sweepTo, sweepSteps, metric)
	points, err := analysis.ParamSweep(cmd.Context(), cfg.SimConfig(), runConfig(cfg), param, sweepFrom, sweepTo, sweepSteps, newMetric, sweepTail)
	if err != nil {
		return err
	}

	fmt.Print(analysis.SweepToASCII(points, 80, 20))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tLAST\n", strings.ToUpper(param))
	for _, p := range points {
		last := 0.0
		if len(p.Values) > 0 {
			last = p.Values[len(p.Values)-1]
		}
		fmt.Fprintf(w, "%.3f\t%.4f\n", p.Param, last)
	}
	return w.Flush()
}

func compareIterations(cmd *cobra.Command, args []string) error {
	counts := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return fmt.Errorf("iterations must be positive integers, got %q", a)
		}
		counts[i] = n
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing iterations %v on %dx%d (%d frames)\n\n", counts, cfg.Grid.Cols, cfg.Grid.Rows, frames)

	start := time.Now()
	results, err := sim.NewEnsemble(cfg.SimConfig(), metrics.Default).Run(cmd.Context(), runConfig(cfg), counts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITER\tTORN\tCUT\tLIVE\tMAX_STRETCH\tMOTION")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.3f\t%.4f\n",
			counts[i], r.Torn, r.Cut, r.Live, r.Metrics["max_stretch"], r.Metrics["motion"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}

func benchGrid(cmd *cobra.Command, args []string) error {
	sizes := [][2]int{{20, 15}, {40, 30}, {70, 45}, {120, 80}}
	passes := []int{4, 8, 16}
	const benchFrames = 300

	fmt.Printf("benchmarking %d frames per run\n\n", benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tCONSTRAINTS\tITER\tTIME\tFRAMES/SEC")

	for _, size := range sizes {
		for _, n := range passes {
			cfg := sim.DefaultConfig()
			cfg.Cols, cfg.Rows = size[0], size[1]
			cfg.Params.Iterations = n

			s, err := sim.New(cfg)
			if err != nil {
				return err
			}
			constraints := len(s.Mesh().Constraints)

			rc := sim.DefaultRunConfig()
			rc.Frames = benchFrames

			start := time.Now()
			if _, err := s.Run(context.Background(), rc); err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n",
				size[0], size[1], constraints, n, elapsed, float64(benchFrames)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if savePath != "" {
		if err := config.Save(savePath, cfg); err != nil {
			return err
		}
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
