package main

import (
	"errors"
	"fmt"
	"strings"

	"chartgrid/internal/config"
	"chartgrid/internal/layout"
	"chartgrid/internal/tmux"

	"github.com/spf13/cobra"
)

func newTmuxCmd(cfgFile *string) *cobra.Command {
	var (
		printOnly bool
		target    string
		splits    string
		width     int
		height    int
	)
	cmd := &cobra.Command{
		Use:   "tmux",
		Short: "Mirror a chart layout into a tmux window",
		Long: `Builds a layout by splitting the newest window once per entry of --splits
(h = side by side, v = stacked) and applies it to a tmux window, or prints
the tmux layout string with --print.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			ops := layout.Ops{MinPane: cfg.Layout.MinPane, NewID: layout.SequentialIDs(1)}
			tree, err := buildLayout(ops, splits)
			if err != nil {
				return err
			}
			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), tmux.LayoutString(tree, width, height, nil))
				return nil
			}
			if !tmux.Inside() {
				return errors.New("not inside tmux: run chartgrid tmux from a tmux session or pass --print")
			}
			return tmux.New(target).Mirror(tree)
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the layout string instead of applying it")
	cmd.Flags().StringVarP(&target, "target", "t", "", "tmux target window (default current window)")
	cmd.Flags().StringVar(&splits, "splits", "", "comma separated split orientations, e.g. h,v,h")
	cmd.Flags().IntVar(&width, "width", 80, "window width for --print")
	cmd.Flags().IntVar(&height, "height", 24, "window height for --print")
	return cmd
}

// buildLayout starts from one window and splits the newest window once per
// orientation in splits.
func buildLayout(ops layout.Ops, splits string) (layout.Node, error) {
	var tree layout.Node = layout.NewWindow(ops.NewID(layout.KindWindow), nil)
	newest := tree.NodeID()
	for _, part := range strings.Split(splits, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		o, err := layout.ParseOrientation(part)
		if err != nil {
			return nil, err
		}
		before := windowSet(tree)
		tree = ops.Split(tree, newest, o)
		for _, w := range layout.Windows(tree) {
			if !before[w.ID] {
				newest = w.ID
			}
		}
	}
	return tree, nil
}

func windowSet(tree layout.Node) map[layout.NodeID]bool {
	set := make(map[layout.NodeID]bool)
	for _, w := range layout.Windows(tree) {
		set[w.ID] = true
	}
	return set
}
