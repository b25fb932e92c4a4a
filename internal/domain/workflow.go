// Package domain implements orphan detection: filename classification,
// pairing, disposition planning and the workflows driving them.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"phototools.dev/pkg/phototools/internal/adapter"
	"phototools.dev/pkg/phototools/internal/controller"
	m "phototools.dev/pkg/phototools/internal/model"
	"phototools.dev/pkg/phototools/pkg"
)

// Workflow is the entry point used by the CLI commands.
type Workflow interface {
	List(ctx context.Context, args ListArgs) error
	Run(ctx context.Context, args RunArgs) error
	Restore(ctx context.Context, args RestoreArgs) error
	View(ctx context.Context, args ViewArgs) error
}

// ListArgs selects the directory and pairing configuration to inspect.
type ListArgs struct {
	Dir    m.Path
	Config m.ExtensionConfig
}

// RunArgs configures a full run: inspection, planning and execution.
type RunArgs struct {
	ListArgs
	Mode      PlanMode
	DryRun    bool
	AssumeYes bool // skip the confirmation before deleting
	Reports   m.Path
	Threads   int
}

// RestoreArgs selects the holding subdirectory to restore files from.
type RestoreArgs struct {
	Dir        m.Path
	DestSubdir string
	Threads    int
}

// ViewArgs selects the report to display.
type ViewArgs struct {
	Reports m.Path
	Diff    bool // compare the saved plan with a fresh one
}

type workflow struct {
	fs       adapter.PhotoFSAdapter
	executor adapter.ActionExecutor
	reports  adapter.ReportStore
	ui       controller.UI
	now      func() time.Time
	journal  func(dir string, records []m.MoveRecord) error
}

// NewWorkflow wires a Workflow from its adapters and UI.
func NewWorkflow(
	fs adapter.PhotoFSAdapter,
	executor adapter.ActionExecutor,
	reports adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		fs:       fs,
		executor: executor,
		reports:  reports,
		ui:       ui,
		now:      time.Now,
		journal:  writeJournal,
	}
}

type scanResult struct {
	dir     m.Path
	orphans []m.FileEntry
	summary m.PairingSummary
}

func (w *workflow) scan(ctx context.Context, args ListArgs) (scanResult, error) {
	if err := args.Config.Validate(); err != nil {
		return scanResult{}, err
	}

	dir, err := w.fs.ResolveDir(args.Dir)
	if err != nil {
		return scanResult{}, err
	}

	listing, err := w.fs.ListDir(dir)
	if err != nil {
		return scanResult{}, err
	}

	entries := NewFileEntries(listing)
	orphans := FindOrphans(entries, args.Config)
	summary := Summarize(entries, args.Config)

	slog.Debug("scanned photo directory",
		"dir", dir,
		"files", len(entries),
		"mode", args.Config.Mode(),
		"orphans", len(orphans),
	)

	w.ui.DisplayScan(ctx, dir, args.Config, len(entries))

	return scanResult{dir: dir, orphans: orphans, summary: summary}, nil
}

// List shows the orphans of a directory without planning or changing anything.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	res, err := w.scan(ctx, args)
	if err != nil {
		return err
	}

	return w.ui.DisplayOrphans(ctx, res.orphans, res.summary)
}

// Run finds orphans, plans their disposition and executes the plan.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	started := w.now()

	res, err := w.scan(ctx, args.ListArgs)
	if err != nil {
		return err
	}

	if err := w.ui.DisplayOrphans(ctx, res.orphans, res.summary); err != nil {
		return err
	}

	actions := Plan(res.orphans, args.Mode)
	report := newReport(res.dir, args, started)

	var results []m.ActionResult

	var journalErr error

	switch {
	case args.DryRun:
		results = withStatus(actions, m.StatusPlanned)
	case len(actions) == 0:
		results = nil
	default:
		results, err = w.execute(ctx, res.dir, args, actions)
		if err != nil {
			return err
		}

		journalErr = w.journalMoves(results)
		if journalErr != nil {
			slog.Error("failed to journal moves, restore will not see them", "dir", res.dir, "error", journalErr)
		}
	}

	finishReport(&report, res.summary, results, w.now())

	if journalErr != nil {
		report.JournalError = journalErr.Error()
	}

	if err := w.saveReport(args.Reports, report); err != nil {
		return err
	}

	w.ui.DisplayRunSummary(ctx, report)

	slog.Info("run finished",
		"dir", res.dir,
		"mode", report.Mode,
		"disposition", report.Disposition,
		"dry_run", report.DryRun,
		"done", report.Summary.Done,
		"failed", report.Summary.Failed,
	)

	if report.Summary.Failed > 0 {
		return fmt.Errorf("%d of %d action(s) failed", report.Summary.Failed, len(results))
	}

	if journalErr != nil {
		return fmt.Errorf("moves done but restore cannot undo them: %w", journalErr)
	}

	return nil
}

func (w *workflow) execute(ctx context.Context, dir m.Path, args RunArgs, actions []m.Action) ([]m.ActionResult, error) {
	if args.Mode.Delete && !args.AssumeYes {
		confirmed, err := w.ui.ConfirmActions(ctx, actions)
		if err != nil {
			return nil, err
		}

		if !confirmed {
			slog.Info("deletion cancelled by user", "dir", dir, "actions", len(actions))
			return withStatus(actions, m.StatusCancelled), nil
		}
	}

	results := w.executor.Execute(ctx, actions, args.Threads)
	for _, result := range results {
		w.ui.DisplayActionResult(ctx, result)
	}

	return results, nil
}

// journalMoves records successful moves next to the moved files so Restore
// can undo them.
func (w *workflow) journalMoves(results []m.ActionResult) error {
	byDir := make(map[string][]m.MoveRecord)
	dirs := make([]string, 0, 1)

	for _, result := range results {
		if result.Status != m.StatusDone || result.Action.Type != m.ActionMove {
			continue
		}

		dir := filepath.Dir(string(result.Action.To))
		if _, ok := byDir[dir]; !ok {
			dirs = append(dirs, dir)
		}

		byDir[dir] = append(byDir[dir], m.MoveRecord{From: result.Action.From, To: result.Action.To})
	}

	for _, dir := range dirs {
		if err := w.journal(dir, byDir[dir]); err != nil {
			return err
		}
	}

	return nil
}

func writeJournal(dir string, records []m.MoveRecord) error {
	journal, err := pkg.CreateJournal[m.MoveRecord](dir)
	if err != nil {
		return err
	}

	if err := journal.AppendBatch(records); err != nil {
		_ = journal.Close()
		return err
	}

	return journal.Close()
}

// Restore moves journaled files out of the holding subdirectory back to
// where they were found.
func (w *workflow) Restore(ctx context.Context, args RestoreArgs) error {
	started := w.now()

	dir, err := w.fs.ResolveDir(args.Dir)
	if err != nil {
		return err
	}

	dest := m.Path(filepath.Join(string(dir), PlanMode{DestSubdir: args.DestSubdir}.Dest()))
	report := m.RunReport{
		Dir:         string(dir),
		Disposition: "restore",
		Dest:        PlanMode{DestSubdir: args.DestSubdir}.Dest(),
		StartedAt:   started,
	}

	exists, err := w.fs.Exists(dest)
	if err != nil {
		return err
	}

	if !exists {
		slog.Info("nothing to restore", "dest", dest)
		finishReport(&report, m.PairingSummary{}, nil, w.now())
		w.ui.DisplayRunSummary(ctx, report)

		return nil
	}

	listing, err := w.fs.ListDir(dest)
	if err != nil {
		return err
	}

	var results []m.ActionResult

	for _, item := range listing {
		if !pkg.IsJournal(item.Name) {
			continue
		}

		journalResults, err := w.restoreJournal(ctx, item.FullPath, args.Threads)
		if err != nil {
			return err
		}

		results = append(results, journalResults...)
	}

	if err := w.fs.Remove(dest); err != nil {
		slog.Debug("holding directory kept", "dest", dest, "error", err)
	}

	finishReport(&report, m.PairingSummary{}, results, w.now())
	w.ui.DisplayRunSummary(ctx, report)

	if report.Summary.Failed > 0 {
		return fmt.Errorf("%d of %d restore(s) failed", report.Summary.Failed, len(results))
	}

	return nil
}

func (w *workflow) restoreJournal(ctx context.Context, path m.Path, threads int) ([]m.ActionResult, error) {
	journal, err := pkg.OpenJournal[m.MoveRecord](string(path))
	if err != nil {
		return nil, err
	}

	defer func() { _ = journal.Close() }()

	actions := make([]m.Action, 0, journal.Len())

	err = journal.Range(func(_ uint64, rec m.MoveRecord) error {
		actions = append(actions, m.Action{Type: m.ActionMove, From: rec.To, To: rec.From})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Undo the most recent move first.
	slices.Reverse(actions)

	results := w.executor.Execute(ctx, actions, threads)

	var pending []m.MoveRecord

	for _, result := range results {
		w.ui.DisplayActionResult(ctx, result)

		if result.Status != m.StatusDone {
			pending = append(pending, m.MoveRecord{From: result.Action.To, To: result.Action.From})
		}
	}

	if len(pending) > 0 {
		if err := w.journal(filepath.Dir(string(path)), pending); err != nil {
			return nil, err
		}
	}

	if err := w.fs.Remove(path); err != nil {
		return nil, fmt.Errorf("failed to remove journal %s: %w", path, err)
	}

	return results, nil
}

// View displays the last saved report and optionally diffs its plan against
// the current state of the directory.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.reports.LoadReport(args.Reports)
	if err != nil {
		return err
	}

	if err := w.ui.DisplayReport(ctx, report); err != nil {
		return err
	}

	if !args.Diff {
		return nil
	}

	cfg, err := m.NewExtensionConfig(
		report.RawExt,
		report.DevelopedExt,
		report.Mode.Subject(),
		m.WithFoldBaseCase(report.FoldCase),
	)
	if err != nil {
		return fmt.Errorf("report %s: %w", args.Reports, err)
	}

	res, err := w.scan(ctx, ListArgs{Dir: m.Path(report.Dir), Config: cfg})
	if err != nil {
		return err
	}

	mode := PlanMode{
		Delete:     report.Disposition == string(m.ActionDelete),
		DestSubdir: report.Dest,
	}

	diff, err := planDiff(report.Actions, Plan(res.orphans, mode))
	if err != nil {
		return err
	}

	w.ui.DisplayDiff(ctx, diff)

	return nil
}

func planDiff(saved []m.ActionRecord, fresh []m.Action) (string, error) {
	before := make([]string, 0, len(saved))
	for _, rec := range saved {
		before = append(before, rec.Action().String()+"\n")
	}

	after := make([]string, 0, len(fresh))
	for _, action := range fresh {
		after = append(after, action.String()+"\n")
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        before,
		B:        after,
		FromFile: "report",
		ToFile:   "current",
		Context:  1,
	})
}

func (w *workflow) saveReport(dir m.Path, report m.RunReport) error {
	if dir == "" {
		return nil
	}

	if err := w.reports.SaveReport(dir, report); err != nil {
		return err
	}

	slog.Debug("saved run report", "dir", dir)

	return nil
}

func newReport(dir m.Path, args RunArgs, started time.Time) m.RunReport {
	report := m.RunReport{
		Dir:          string(dir),
		Mode:         args.Config.Mode(),
		RawExt:       args.Config.RawExt(),
		DevelopedExt: args.Config.DevelopedExt(),
		FoldCase:     args.Config.FoldBaseCase(),
		Disposition:  string(m.ActionMove),
		DryRun:       args.DryRun,
		StartedAt:    started,
	}

	if args.Mode.Delete {
		report.Disposition = string(m.ActionDelete)
	} else {
		report.Dest = args.Mode.Dest()
	}

	return report
}

func finishReport(report *m.RunReport, summary m.PairingSummary, results []m.ActionResult, finished time.Time) {
	report.FinishedAt = finished
	report.Summary = m.ReportSummary{
		Raw:       summary.Raw,
		Developed: summary.Developed,
		Other:     summary.Other,
		Pairs:     summary.Pairs,
		Orphans:   summary.Orphans,
	}
	report.Actions = make([]m.ActionRecord, 0, len(results))

	for _, result := range results {
		switch result.Status {
		case m.StatusDone:
			report.Summary.Done++
		case m.StatusFailed:
			report.Summary.Failed++
		case m.StatusCancelled:
			report.Summary.Cancelled++
		}

		report.Actions = append(report.Actions, m.NewActionRecord(result))
	}
}

func withStatus(actions []m.Action, status m.ActionStatus) []m.ActionResult {
	results := make([]m.ActionResult, 0, len(actions))
	for _, action := range actions {
		results = append(results, m.ActionResult{Action: action, Status: status})
	}

	return results
}
