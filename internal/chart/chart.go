// Package chart holds the content of a chart pane and draws it.
package chart

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
)

// Config is the content carried by a chart window.
type Config struct {
	Symbol    string
	Exchange  string
	Timeframe string
	// Series is the loaded close prices, oldest first.
	Series []float64
	// Ready is set once loading finished, successfully or not.
	Ready bool
	// Err is the load failure shown in the pane.
	Err string
}

// Title is the pane title for c.
func (c Config) Title() string {
	return fmt.Sprintf("%s %s %s", c.Symbol, c.Exchange, c.Timeframe)
}

// Pending reports whether c still waits for data.
func (c Config) Pending() bool {
	return !c.Ready
}

// Loaded returns c with series and Ready set.
func (c Config) Loaded(series []float64) Config {
	c.Series = series
	c.Ready = true
	c.Err = ""
	return c
}

// Failed returns c marked ready with err.
func (c Config) Failed(err error) Config {
	c.Series = nil
	c.Ready = true
	c.Err = err.Error()
	return c
}

// Derive builds the content of a window split off from a window holding
// content. The new chart keeps symbol, exchange and timeframe and starts
// pending. Non-chart content yields nil.
func Derive(content any) any {
	c, ok := content.(Config)
	if !ok {
		return nil
	}
	return Config{Symbol: c.Symbol, Exchange: c.Exchange, Timeframe: c.Timeframe}
}

// Loader fetches the series for a chart.
type Loader interface {
	Load(ctx context.Context, c Config) ([]float64, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, c Config) ([]float64, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, c Config) ([]float64, error) { return f(ctx, c) }

// Synthetic generates a deterministic random walk per symbol, exchange and
// timeframe.
type Synthetic struct {
	Points int
}

// Load implements Loader.
func (s Synthetic) Load(ctx context.Context, c Config) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := s.Points
	if n < 2 {
		n = 2
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s/%s/%s", c.Symbol, c.Exchange, c.Timeframe)
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	series := make([]float64, n)
	price := 100 + rng.Float64()*900
	for i := range series {
		price *= 1 + rng.NormFloat64()*0.01
		series[i] = math.Round(price*100) / 100
	}
	return series, nil
}

// Change is the relative change from the first to the last value, in percent.
func Change(series []float64) float64 {
	if len(series) < 2 || series[0] == 0 {
		return 0
	}
	return (series[len(series)-1] - series[0]) / series[0] * 100
}

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline draws series as a bar chart width columns wide and height rows
// tall. The most recent values are kept when the series is wider than the
// chart. Returns height lines of exactly width runes.
func Sparkline(series []float64, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	if len(series) > width {
		series = series[len(series)-width:]
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range series {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	// eighths of a cell per column
	levels := make([]int, len(series))
	total := height * 8
	for i, v := range series {
		if hi == lo {
			levels[i] = total / 2
			continue
		}
		levels[i] = 1 + int(math.Round((v-lo)/(hi-lo)*float64(total-1)))
	}

	lines := make([]string, height)
	for row := 0; row < height; row++ {
		floor := (height - 1 - row) * 8
		var b strings.Builder
		for col := 0; col < width; col++ {
			if col >= len(levels) {
				b.WriteRune(' ')
				continue
			}
			fill := levels[col] - floor
			switch {
			case fill <= 0:
				b.WriteRune(' ')
			case fill >= 8:
				b.WriteRune(blocks[8])
			default:
				b.WriteRune(blocks[fill])
			}
		}
		lines[row] = b.String()
	}
	return lines
}
