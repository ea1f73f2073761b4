package chart

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	src := Config{Symbol: "ETHUSDT", Exchange: "bybit", Timeframe: "4h", Series: []float64{1, 2}, Ready: true}
	got, ok := Derive(src).(Config)
	require.True(t, ok)
	assert.Equal(t, Config{Symbol: "ETHUSDT", Exchange: "bybit", Timeframe: "4h"}, got)
	assert.True(t, got.Pending())

	assert.Nil(t, Derive(nil))
	assert.Nil(t, Derive("text"))
}

func TestLoadedAndFailed(t *testing.T) {
	c := Config{Symbol: "BTCUSDT"}
	loaded := c.Loaded([]float64{1, 2, 3})
	assert.True(t, loaded.Ready)
	assert.Equal(t, []float64{1, 2, 3}, loaded.Series)

	failed := loaded.Failed(errors.New("feed timed out"))
	assert.True(t, failed.Ready)
	assert.Nil(t, failed.Series)
	assert.Equal(t, "feed timed out", failed.Err)
	assert.Equal(t, "BTCUSDT binance 1h", Config{Symbol: "BTCUSDT", Exchange: "binance", Timeframe: "1h"}.Title())
}

func TestSynthetic_Deterministic(t *testing.T) {
	s := Synthetic{Points: 50}
	c := Config{Symbol: "BTCUSDT", Exchange: "binance", Timeframe: "1h"}

	a, err := s.Load(context.Background(), c)
	require.NoError(t, err)
	b, err := s.Load(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, a, 50)
	assert.Equal(t, a, b)

	c.Timeframe = "1d"
	other, err := s.Load(context.Background(), c)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestSynthetic_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Synthetic{Points: 10}.Load(ctx, Config{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChange(t *testing.T) {
	assert.InDelta(t, 10.0, Change([]float64{100, 95, 110}), 1e-9)
	assert.Zero(t, Change([]float64{5}))
	assert.Zero(t, Change([]float64{0, 5}))
}

func TestSparkline(t *testing.T) {
	lines := Sparkline([]float64{1, 2, 3, 4}, 6, 2)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, 6, utf8.RuneCountInString(l))
	}
	assert.Equal(t, []rune("▁▆██  "), []rune(lines[1]))
	assert.Equal(t, []rune("  ▃█  "), []rune(lines[0]))
}

func TestSparkline_KeepsMostRecent(t *testing.T) {
	lines := Sparkline([]float64{9, 9, 1, 2}, 2, 1)
	assert.Equal(t, "▁█", lines[0])
}

func TestSparkline_Flat(t *testing.T) {
	lines := Sparkline([]float64{3, 3, 3}, 3, 1)
	assert.Equal(t, "▄▄▄", lines[0])
	assert.Nil(t, Sparkline([]float64{1}, 0, 3))
}
