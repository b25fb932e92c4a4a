package model

import "fmt"

// ActionType is the kind of disposition applied to an orphan.
type ActionType string

const (
	// ActionMove relocates a file into the holding subdirectory.
	ActionMove ActionType = "move"
	// ActionDelete removes a file.
	ActionDelete ActionType = "delete"
)

// Action is one planned filesystem operation. To is empty for deletions.
type Action struct {
	Type ActionType
	From Path
	To   Path
}

func (a Action) String() string {
	if a.Type == ActionMove {
		return fmt.Sprintf("move %s -> %s", a.From, a.To)
	}

	return fmt.Sprintf("%s %s", a.Type, a.From)
}

// ActionStatus is the outcome of an action.
type ActionStatus string

const (
	StatusPlanned   ActionStatus = "planned"
	StatusDone      ActionStatus = "done"
	StatusFailed    ActionStatus = "failed"
	StatusCancelled ActionStatus = "cancelled"
)

// ActionResult pairs an action with its outcome. Err is set when Status is
// StatusFailed and is always an *ActionError.
type ActionResult struct {
	Action Action
	Status ActionStatus
	Err    error
}

// MoveRecord is one journal entry describing an executed move.
type MoveRecord struct {
	From Path
	To   Path
}
