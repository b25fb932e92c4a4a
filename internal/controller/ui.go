// Package controller provides the user-facing output of phototools.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "phototools.dev/pkg/phototools/internal/model"
)

// UI defines how the workflow reports to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayScan(ctx context.Context, dir m.Path, cfg m.ExtensionConfig, files int)
	DisplayOrphans(ctx context.Context, orphans []m.FileEntry, summary m.PairingSummary) error
	// ConfirmActions asks the user to approve destructive actions.
	ConfirmActions(ctx context.Context, actions []m.Action) (bool, error)
	DisplayActionResult(ctx context.Context, result m.ActionResult)
	DisplayRunSummary(ctx context.Context, report m.RunReport)
	DisplayReport(ctx context.Context, report m.RunReport) error
	DisplayDiff(ctx context.Context, diff string)
}

// NewUI returns a TUI when output goes to a terminal and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
