package main

import (
	"context"
	"fmt"
	"time"

	"chartgrid/internal/chart"
	"chartgrid/internal/config"
	"chartgrid/internal/layout"
	"chartgrid/internal/logging"
	"chartgrid/internal/pty"
	"chartgrid/internal/trace"
	"chartgrid/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "chartgrid",
		Short: "Tiling grid of live price charts in the terminal",
		Long: `chartgrid shows price charts in panes that can be split side by side or
stacked, closed, and resized by dragging the borders between them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/chartgrid/config.toml)")
	root.AddCommand(newTmuxCmd(&cfgFile))
	return root
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	dir := cfg.Logging.Dir
	if dir == "" {
		dir = config.Dir()
	}
	return logging.NewLogger(dir, cfg.Logging.Level)
}

func newLoader(cfg *config.Config) chart.Loader {
	if cfg.Feed.Command == "" {
		return chart.Synthetic{Points: cfg.Feed.Points}
	}
	return &pty.Feed{
		Command: cfg.Feed.Command,
		Timeout: cfg.FeedTimeout(),
		Points:  cfg.Feed.Points,
	}
}

func runTUI(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	tp, err := trace.New(ctx, trace.Options{
		Endpoint:    cfg.Trace.Endpoint,
		ServiceName: cfg.Trace.ServiceName,
		Insecure:    cfg.Trace.Insecure,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("trace shutdown failed", "error", err)
		}
	}()

	model := ui.NewAppModel(ui.AppConfig{
		Root:        layout.NewWindow(layout.UUIDs()(layout.KindWindow), cfg.InitialChart()),
		Loader:      newLoader(cfg),
		Ops:         layout.Ops{MinPane: cfg.Layout.MinPane, NewID: layout.UUIDs()},
		Tracer:      tp.Tracer(),
		Logger:      log,
		PruneClosed: cfg.Layout.PruneClosed,
		ShowHelp:    cfg.UI.ShowHelp,
	})
	log.Info("starting", "symbol", cfg.Layout.InitialSymbol, "tracing", tp.Enabled())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
