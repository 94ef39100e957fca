package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/san-kum/clothsim/internal/sim"
)

// SweepPoint holds the tail of one metric series for a parameter value.
type SweepPoint struct {
	Param  float64
	Values []float64
}

// ParamSweep reruns the cloth for steps values of a cloth parameter between
// lo and hi and keeps the last record samples of the metric built by newMetric.
func ParamSweep(
	ctx context.Context,
	base sim.Config,
	rc sim.RunConfig,
	param string,
	lo, hi float64,
	steps int,
	newMetric func() sim.Metric,
	record int,
) ([]SweepPoint, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: %d sweep steps", sim.ErrInvalidRun, steps)
	}
	if _, ok := base.Params.GetParams()[param]; !ok {
		return nil, fmt.Errorf("%w: unknown parameter %q", sim.ErrInvalidRun, param)
	}

	results := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		value := lo
		if steps > 1 {
			value = lo + (hi-lo)*float64(i)/float64(steps-1)
		}

		cfg := base
		cfg.Params.SetParam(param, value)

		s, err := sim.New(cfg)
		if err != nil {
			return nil, err
		}
		m := newMetric()
		s.AddMetric(m)

		result, err := s.Run(ctx, rc)
		if err != nil {
			return nil, err
		}

		series := result.Series[m.Name()]
		start := len(series) - record
		if start < 0 {
			start = 0
		}
		values := make([]float64, len(series)-start)
		copy(values, series[start:])

		results = append(results, SweepPoint{Param: value, Values: values})
	}

	return results, nil
}

// SweepToASCII scatters every recorded value against its parameter column.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
