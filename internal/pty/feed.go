package pty

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"chartgrid/internal/chart"
)

// Environment variables describing the requested chart. Feed commands read
// them to decide what to print.
const (
	EnvSymbol    = "CHARTGRID_SYMBOL"
	EnvExchange  = "CHARTGRID_EXCHANGE"
	EnvTimeframe = "CHARTGRID_TIMEFRAME"
	EnvPoints    = "CHARTGRID_POINTS"
)

// ErrNoData is returned when a feed printed no numbers.
var ErrNoData = errors.New("feed produced no data")

// Feed loads chart series by running a shell command in a PTY. The command
// prints one price per line (or whitespace separated); anything that does
// not parse as a number is ignored.
type Feed struct {
	Command string
	Timeout time.Duration
	// Points caps the series length, keeping the most recent values.
	Points int
	Runner Runner
}

var _ chart.Loader = (*Feed)(nil)

// Load implements chart.Loader.
func (f *Feed) Load(ctx context.Context, c chart.Config) ([]float64, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	runner := f.Runner
	if runner == nil {
		runner = &CreackPTY{}
	}

	cmd := exec.Command("sh", "-c", f.Command)
	cmd.Env = append(cmd.Environ(),
		EnvSymbol+"="+c.Symbol,
		EnvExchange+"="+c.Exchange,
		EnvTimeframe+"="+c.Timeframe,
		EnvPoints+"="+strconv.Itoa(f.Points),
	)
	term, err := runner.Start(ctx, cmd, Size{Rows: 24, Cols: 200})
	if err != nil {
		return nil, fmt.Errorf("start feed %q: %w", f.Command, err)
	}

	type result struct {
		series []float64
		err    error
	}
	done := make(chan result, 1)
	go func() {
		series, err := ParseSeries(term)
		done <- result{series, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		term.Close()
		<-done
		wait(cmd)
		return nil, fmt.Errorf("feed %q: %w", f.Command, ctx.Err())
	}
	term.Close()
	wait(cmd)

	if res.err != nil {
		return nil, fmt.Errorf("read feed %q: %w", f.Command, res.err)
	}
	if len(res.series) == 0 {
		return nil, fmt.Errorf("feed %q: %w", f.Command, ErrNoData)
	}
	if f.Points > 0 && len(res.series) > f.Points {
		res.series = res.series[len(res.series)-f.Points:]
	}
	return res.series, nil
}

func wait(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
	_ = cmd.Wait()
}

// ParseSeries reads numbers from r until EOF. A PTY reports the end of its
// output as EIO once the child exits, which counts as EOF.
func ParseSeries(r io.Reader) ([]float64, error) {
	var series []float64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		for _, field := range strings.Fields(sc.Text()) {
			v, err := strconv.ParseFloat(strings.TrimSuffix(field, ","), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			series = append(series, v)
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, syscall.EIO) {
		return series, err
	}
	return series, nil
}
