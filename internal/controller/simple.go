package controller

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "phototools.dev/pkg/phototools/internal/model"
)

// SimpleUI implements UI using the cobra command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayScan describes the directory being inspected.
func (s *SimpleUI) DisplayScan(ctx context.Context, dir m.Path, cfg m.ExtensionConfig, files int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Using %s as the photo source directory.\n", dir)
	s.printf("Filtering orphan files by %s (raw: %s, developed: %s).\n", cfg.Mode(), cfg.RawExt(), cfg.DevelopedExt())
	s.printf("Found %d file(s) in the folder.\n", files)
}

// DisplayOrphans prints the orphan table and the pairing summary.
func (s *SimpleUI) DisplayOrphans(ctx context.Context, orphans []m.FileEntry, summary m.PairingSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderOrphanTable(orphans))
	s.printf("%s\n", formatSummary(summary))

	return nil
}

// ConfirmActions reads a y/N answer from the command's input.
func (s *SimpleUI) ConfirmActions(ctx context.Context, actions []m.Action) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.printf("Delete %d file(s)? This cannot be undone [y/N]: ", len(actions))

	answer, err := bufio.NewReader(s.cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		s.printf("\n")
		return false, nil
	}

	return isYes(answer), nil
}

// DisplayActionResult prints the outcome of one action.
func (s *SimpleUI) DisplayActionResult(ctx context.Context, result m.ActionResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", formatActionResult(result))
}

// DisplayRunSummary prints the totals of a finished run.
func (s *SimpleUI) DisplayRunSummary(ctx context.Context, report m.RunReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", formatRunSummary(report))
}

// DisplayReport prints a saved report.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Report for %s (%s, %s)\n", report.Dir, report.Mode, report.Disposition)
	s.printf("Started %s\n\n", report.StartedAt.Format("2006-01-02 15:04:05"))
	s.printf("%s", renderActionTable(report.Actions))
	s.printf("%s\n", formatRunSummary(report))

	return nil
}

// DisplayDiff prints a unified diff between a saved and a fresh plan.
func (s *SimpleUI) DisplayDiff(ctx context.Context, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		s.printf("Plan unchanged since the report was saved.\n")
		return
	}

	s.printf("%s", diff)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}

	return false
}

func renderOrphanTable(orphans []m.FileEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Base ID", "File"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, orphan := range orphans {
		table.Append([]string{orphan.BaseID, orphan.Name()})
	}

	table.SetFooter([]string{"Orphans", fmt.Sprintf("%d", len(orphans))})
	table.Render()

	return tableBuffer.String()
}

func renderActionTable(records []m.ActionRecord) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Action", "From", "To", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, rec := range records {
		status := string(rec.Status)
		if rec.Error != "" {
			status += ": " + rec.Error
		}

		table.Append([]string{string(rec.Type), rec.From, rec.To, status})
	}

	table.Render()

	return tableBuffer.String()
}

func formatSummary(summary m.PairingSummary) string {
	return fmt.Sprintf("Raw: %d | Developed: %d | Other: %d | Pairs: %d | Orphans: %d",
		summary.Raw, summary.Developed, summary.Other, summary.Pairs, summary.Orphans)
}

func formatActionResult(result m.ActionResult) string {
	switch {
	case result.Status == m.StatusFailed:
		return fmt.Sprintf("  ✗ %v", result.Err)
	case result.Action.Type == m.ActionMove:
		return fmt.Sprintf("  ✓ %s moved to %s", result.Action.From, result.Action.To)
	default:
		return fmt.Sprintf("  ✓ %s deleted", result.Action.From)
	}
}

func formatRunSummary(report m.RunReport) string {
	if report.DryRun {
		return fmt.Sprintf("Dry run: %d action(s) planned, nothing changed.", len(report.Actions))
	}

	if report.Summary.Cancelled > 0 {
		return fmt.Sprintf("Cancelled: %d action(s) skipped, nothing changed.", report.Summary.Cancelled)
	}

	line := fmt.Sprintf("Done: %d | Failed: %d", report.Summary.Done, report.Summary.Failed)
	if report.Disposition == string(m.ActionMove) && report.Summary.Done > 0 {
		line += fmt.Sprintf("\nThe folder %s contains the discarded files.", filepath.Join(report.Dir, report.Dest))
	}

	if report.JournalError != "" {
		line += fmt.Sprintf("\nWarning: moves were not journaled, restore cannot undo this run: %s", report.JournalError)
	}

	return line
}
