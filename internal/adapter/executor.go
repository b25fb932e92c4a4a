package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	m "phototools.dev/pkg/phototools/internal/model"
)

// ActionExecutor performs planned actions and reports each outcome.
type ActionExecutor interface {
	// Execute runs actions with at most threads in flight. The returned
	// results are in the same order as actions. A failing action never
	// stops the others.
	Execute(ctx context.Context, actions []m.Action, threads int) []m.ActionResult
}

type actionExecutor struct {
	fs PhotoFSAdapter
}

// NewActionExecutor builds an ActionExecutor on top of fs.
func NewActionExecutor(fs PhotoFSAdapter) ActionExecutor {
	return &actionExecutor{fs: fs}
}

func (e *actionExecutor) Execute(ctx context.Context, actions []m.Action, threads int) []m.ActionResult {
	results := make([]m.ActionResult, len(actions))

	if threads < 1 {
		threads = 1
	}

	dirErrs := e.prepareDestinations(actions)

	var group errgroup.Group

	group.SetLimit(threads)

	for i, action := range actions {
		group.Go(func() error {
			results[i] = e.run(ctx, action, dirErrs)
			return nil
		})
	}

	_ = group.Wait()

	return results
}

// prepareDestinations creates each distinct move destination directory once.
func (e *actionExecutor) prepareDestinations(actions []m.Action) map[string]error {
	dirErrs := make(map[string]error)

	for _, action := range actions {
		if action.Type != m.ActionMove {
			continue
		}

		dir := filepath.Dir(string(action.To))
		if _, seen := dirErrs[dir]; seen {
			continue
		}

		err := e.fs.MkdirAll(m.Path(dir))
		if err != nil {
			slog.Error("failed to create destination directory", "dir", dir, "error", err)
		}

		dirErrs[dir] = err
	}

	return dirErrs
}

func (e *actionExecutor) run(ctx context.Context, action m.Action, dirErrs map[string]error) m.ActionResult {
	if err := ctx.Err(); err != nil {
		return failed(action, err)
	}

	switch action.Type {
	case m.ActionMove:
		if err := dirErrs[filepath.Dir(string(action.To))]; err != nil {
			return failed(action, err)
		}

		if err := e.fs.Move(action.From, action.To); err != nil {
			return failed(action, err)
		}
	case m.ActionDelete:
		if err := e.fs.Remove(action.From); err != nil {
			return failed(action, err)
		}
	default:
		return failed(action, fmt.Errorf("unknown action type %q", action.Type))
	}

	slog.Debug("action done", "action", action.String())

	return m.ActionResult{Action: action, Status: m.StatusDone}
}

func failed(action m.Action, err error) m.ActionResult {
	slog.Warn("action failed", "action", action.String(), "error", err)

	return m.ActionResult{
		Action: action,
		Status: m.StatusFailed,
		Err:    &m.ActionError{Action: action, Err: err},
	}
}
