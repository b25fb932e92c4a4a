package domain

import (
	"path/filepath"

	m "phototools.dev/pkg/phototools/internal/model"
)

// DefaultDestSubdir is the holding subdirectory orphans are moved into.
const DefaultDestSubdir = "to_delete"

// PlanMode selects the disposition applied to orphans. The zero value moves
// orphans into DefaultDestSubdir.
type PlanMode struct {
	Delete     bool
	DestSubdir string
}

// MoveTo returns a mode moving orphans into subdir.
func MoveTo(subdir string) PlanMode {
	return PlanMode{DestSubdir: subdir}
}

// DeleteMode returns a mode deleting orphans.
func DeleteMode() PlanMode {
	return PlanMode{Delete: true}
}

// Dest returns the holding subdirectory used in move mode.
func (pm PlanMode) Dest() string {
	if pm.DestSubdir == "" {
		return DefaultDestSubdir
	}

	return pm.DestSubdir
}

// Plan computes one action per orphan without touching the filesystem.
// Moves keep the file name and land in the holding subdirectory next to the
// orphan; the executor is responsible for creating that directory.
func Plan(orphans []m.FileEntry, mode PlanMode) []m.Action {
	actions := make([]m.Action, 0, len(orphans))

	for _, orphan := range orphans {
		if mode.Delete {
			actions = append(actions, m.Action{Type: m.ActionDelete, From: orphan.FullPath})
			continue
		}

		from := string(orphan.FullPath)
		actions = append(actions, m.Action{
			Type: m.ActionMove,
			From: orphan.FullPath,
			To:   m.Path(filepath.Join(filepath.Dir(from), mode.Dest(), filepath.Base(from))),
		})
	}

	return actions
}
