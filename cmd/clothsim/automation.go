package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/clothsim/internal/automation"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/optim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/spf13/cobra"
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := sc.Config()
	if err != nil {
		return err
	}
	rc, err := sc.RunConfig(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %s\n", sc.Name, sc.Description)
	result, err := automation.RunScenario(cmd.Context(), sc, cfg, metrics.Default())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.NewMetadata(cfg.Name, cfg.SimConfig(), rc, result), result)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  torn: %d  cut: %d  live: %d\n", result.FramesRun, result.Torn, result.Cut, result.Live)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// frames is shared with the run commands, which register a different default.
	n, _ := cmd.Flags().GetInt("frames")
	mc := automation.MonteCarloConfig{NumTrials: trials, Frames: n, CutFrames: 30, Seed: seed}
	results, err := automation.RunMonteCarlo(cmd.Context(), cfg, mc)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tFROM\tTO\tCUT\tTORN\tLIVE\tSTABLE")
	cut, torn := 0, 0
	for _, r := range results {
		fmt.Fprintf(w, "%d\t(%.0f, %.0f)\t(%.0f, %.0f)\t%d\t%d\t%d\t%v\n",
			r.TrialID, r.From.X(), r.From.Y(), r.To.X(), r.To.Y(), r.Cut, r.Torn, r.Live, r.Stable)
		cut += r.Cut
		torn += r.Torn
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(results) > 0 {
		n := float64(len(results))
		fmt.Printf("\nmean cut: %.1f  mean torn: %.1f\n", float64(cut)/n, float64(torn)/n)
	}
	return nil
}

// parseGrid reads name=v1,v2,... entries in flag order.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, e := range entries {
		name, list, ok := strings.Cut(e, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("invalid --param %q, want name=v1,v2", e)
		}
		var values []float64
		for _, v := range strings.Split(list, ",") {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid value %q for %s: %w", v, name, err)
			}
			values = append(values, f)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(searchGrid) == 0 {
		return fmt.Errorf("at least one --param is required")
	}
	metric, _ := cmd.Flags().GetString("metric")
	names, ranges, err := parseGrid(searchGrid)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	newMetric, err := metricByName(metric)
	if err != nil {
		return err
	}

	best, value, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), cfg.SimConfig(), runConfig(cfg), newMetric)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("best %s: %.6f\n", metric, value)
	for _, k := range keys {
		fmt.Printf("  %s = %g\n", k, best[k])
	}
	return nil
}
