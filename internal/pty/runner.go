// Package pty runs chart feed commands inside a pseudo terminal and parses
// the numbers they print into a price series.
package pty

import (
	"context"
	"io"
	"os/exec"

	"github.com/creack/pty"
)

// Size is a terminal size in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Runner spawns a command attached to a terminal.
type Runner interface {
	Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
}

// CreackPTY implements Runner with github.com/creack/pty.
type CreackPTY struct{}

var _ Runner = (*CreackPTY)(nil)

// Start implements Runner. The caller stops the command by closing the
// returned terminal.
func (c *CreackPTY) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}
