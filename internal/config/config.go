// Package config loads chartgrid settings from defaults, an optional config
// file and CHARTGRID_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chartgrid/internal/chart"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: layout.min_pane is read from
// CHARTGRID_LAYOUT_MIN_PANE.
const EnvPrefix = "CHARTGRID"

// Config is the full configuration.
type Config struct {
	Layout  LayoutConfig  `mapstructure:"layout"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Logging LoggingConfig `mapstructure:"logging"`
	Trace   TraceConfig   `mapstructure:"trace"`
	UI      UIConfig      `mapstructure:"ui"`
}

// LayoutConfig controls the tiling engine and the initial window.
type LayoutConfig struct {
	MinPane          float64 `mapstructure:"min_pane"`
	InitialSymbol    string  `mapstructure:"initial_symbol"`
	InitialExchange  string  `mapstructure:"initial_exchange"`
	InitialTimeframe string  `mapstructure:"initial_timeframe"`
	PruneClosed      bool    `mapstructure:"prune_closed"`
}

// FeedConfig selects where chart data comes from. An empty Command uses the
// built-in synthetic series.
type FeedConfig struct {
	Command   string `mapstructure:"command"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
	Points    int    `mapstructure:"points"`
}

// LoggingConfig controls the debug log.
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	Dir     string `mapstructure:"dir"`
}

// TraceConfig controls OTLP export. An empty Endpoint disables it.
type TraceConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

// UIConfig controls the terminal UI.
type UIConfig struct {
	ShowHelp bool `mapstructure:"show_help"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			MinPane:          20,
			InitialSymbol:    "BTCUSDT",
			InitialExchange:  "binance",
			InitialTimeframe: "1h",
			PruneClosed:      true,
		},
		Feed: FeedConfig{
			TimeoutMs: 3000,
			Points:    120,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Trace: TraceConfig{
			ServiceName: "chartgrid",
			Insecure:    true,
		},
		UI: UIConfig{
			ShowHelp: true,
		},
	}
}

// FeedTimeout is Feed.TimeoutMs as a duration.
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.Feed.TimeoutMs) * time.Millisecond
}

// InitialChart is the content of the first window.
func (c *Config) InitialChart() chart.Config {
	return chart.Config{
		Symbol:    c.Layout.InitialSymbol,
		Exchange:  c.Layout.InitialExchange,
		Timeframe: c.Layout.InitialTimeframe,
	}
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("layout.min_pane", d.Layout.MinPane)
	v.SetDefault("layout.initial_symbol", d.Layout.InitialSymbol)
	v.SetDefault("layout.initial_exchange", d.Layout.InitialExchange)
	v.SetDefault("layout.initial_timeframe", d.Layout.InitialTimeframe)
	v.SetDefault("layout.prune_closed", d.Layout.PruneClosed)

	v.SetDefault("feed.command", d.Feed.Command)
	v.SetDefault("feed.timeout_ms", d.Feed.TimeoutMs)
	v.SetDefault("feed.points", d.Feed.Points)

	v.SetDefault("logging.enabled", d.Logging.Enabled)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.dir", d.Logging.Dir)

	v.SetDefault("trace.endpoint", d.Trace.Endpoint)
	v.SetDefault("trace.service_name", d.Trace.ServiceName)
	v.SetDefault("trace.insecure", d.Trace.Insecure)

	v.SetDefault("ui.show_help", d.UI.ShowHelp)
}

// NewViper returns a viper instance with defaults and environment binding.
// When file is empty the default config file is read if it exists.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
		return v, nil
	}

	v.SetConfigName("config")
	v.AddConfigPath(Dir())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load builds the configuration from file (see NewViper) and validates it.
func Load(file string) (*Config, error) {
	v, err := NewViper(file)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// Dir is the user config directory, $XDG_CONFIG_HOME/chartgrid or
// ~/.config/chartgrid.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chartgrid")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chartgrid"
	}
	return filepath.Join(home, ".config", "chartgrid")
}
