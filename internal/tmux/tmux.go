// Package tmux mirrors a layout tree into a tmux window. Commands go through
// the tmux binary; with an empty target they act on the current window, so
// the caller is expected to run inside tmux (TMUX set).
package tmux

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"chartgrid/internal/layout"
)

// ExecFunc runs tmux with args and returns its stdout.
type ExecFunc func(args ...string) (string, error)

// Client issues tmux commands against one target window.
type Client struct {
	// Target is a tmux target-window. Empty means the current window.
	Target string
	Exec   ExecFunc
}

// New returns a Client for target that runs the tmux binary.
func New(target string) *Client {
	return &Client{Target: target, Exec: run}
}

// Inside reports whether the process runs inside a tmux session.
func Inside() bool {
	return os.Getenv("TMUX") != ""
}

func run(args ...string) (string, error) {
	cmd := exec.Command("tmux", args...)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux %s: %w: %s", args[0], err, strings.TrimSpace(errOut.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

func (c *Client) exec(args ...string) (string, error) {
	if c.Exec == nil {
		return run(args...)
	}
	return c.Exec(args...)
}

// withTarget inserts flag and the target right after the command name, since
// tmux stops parsing options at the first argument.
func (c *Client) withTarget(flag string, args ...string) []string {
	if c.Target == "" {
		return args
	}
	out := make([]string, 0, len(args)+2)
	out = append(out, args[0], flag, c.Target)
	return append(out, args[1:]...)
}

// WindowSize returns the target window's size in cells.
func (c *Client) WindowSize() (w, h int, err error) {
	out, err := c.exec(c.withTarget("-t", "display-message", "-p", "#{window_width} #{window_height}")...)
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("parse window size %q", out)
	}
	if w, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("parse window width: %w", err)
	}
	if h, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("parse window height: %w", err)
	}
	return w, h, nil
}

// ListPanes returns the pane ids (e.g. "%4") of the target window in order.
func (c *Client) ListPanes() ([]string, error) {
	out, err := c.exec(c.withTarget("-t", "list-panes", "-F", "#{pane_id}")...)
	if err != nil {
		return nil, err
	}
	var panes []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			panes = append(panes, line)
		}
	}
	return panes, nil
}

// SplitPane adds a pane to the target window and returns its id.
func (c *Client) SplitPane() (string, error) {
	return c.exec(c.withTarget("-t", "split-window", "-d", "-P", "-F", "#{pane_id}")...)
}

// KillPane kills pane id.
func (c *Client) KillPane(id string) error {
	_, err := c.exec("kill-pane", "-t", id)
	return err
}

// SelectLayout applies a layout string to the target window.
func (c *Client) SelectLayout(layoutString string) error {
	_, err := c.exec(c.withTarget("-t", "select-layout", layoutString)...)
	return err
}

// Mirror reshapes the target window to tree: it adds or kills panes until the
// window holds one pane per layout window, then applies the layout string.
func (c *Client) Mirror(tree layout.Node) error {
	want := layout.CountWindows(tree)
	if want == 0 {
		return fmt.Errorf("mirror: %w", layout.ErrNoWindows)
	}
	panes, err := c.ListPanes()
	if err != nil {
		return err
	}
	for len(panes) < want {
		id, err := c.SplitPane()
		if err != nil {
			return err
		}
		panes = append(panes, id)
	}
	for len(panes) > want {
		last := panes[len(panes)-1]
		if err := c.KillPane(last); err != nil {
			return err
		}
		panes = panes[:len(panes)-1]
	}

	w, h, err := c.WindowSize()
	if err != nil {
		return err
	}
	ids := make(map[layout.NodeID]int, want)
	for i, win := range layout.Windows(tree) {
		n, _ := strconv.Atoi(strings.TrimPrefix(panes[i], "%"))
		ids[win.ID] = n
	}
	return c.SelectLayout(LayoutString(tree, w, h, ids))
}
