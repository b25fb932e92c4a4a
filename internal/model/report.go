package model

import "time"

// RunReport is the persisted description of a run, stored as YAML.
type RunReport struct {
	Dir          string    `yaml:"dir"`
	Mode         Mode      `yaml:"mode"`
	RawExt       string    `yaml:"raw_ext"`
	DevelopedExt string    `yaml:"developed_ext"`
	FoldCase     bool      `yaml:"fold_case"`
	Disposition  string    `yaml:"disposition"`
	Dest         string    `yaml:"dest,omitempty"`
	DryRun       bool      `yaml:"dry_run"`
	StartedAt    time.Time `yaml:"started_at"`
	FinishedAt   time.Time `yaml:"finished_at"`
	JournalError string    `yaml:"journal_error,omitempty"`

	Summary ReportSummary  `yaml:"summary"`
	Actions []ActionRecord `yaml:"actions"`
}

// ReportSummary aggregates a run.
type ReportSummary struct {
	Raw       int `yaml:"raw"`
	Developed int `yaml:"developed"`
	Other     int `yaml:"other"`
	Pairs     int `yaml:"pairs"`
	Orphans   int `yaml:"orphans"`
	Done      int `yaml:"done"`
	Failed    int `yaml:"failed"`
	Cancelled int `yaml:"cancelled"`
}

// ActionRecord is the serialized form of an ActionResult.
type ActionRecord struct {
	Type   ActionType   `yaml:"type"`
	From   string       `yaml:"from"`
	To     string       `yaml:"to,omitempty"`
	Status ActionStatus `yaml:"status"`
	Error  string       `yaml:"error,omitempty"`
}

// NewActionRecord converts a result into its report form.
func NewActionRecord(result ActionResult) ActionRecord {
	rec := ActionRecord{
		Type:   result.Action.Type,
		From:   string(result.Action.From),
		To:     string(result.Action.To),
		Status: result.Status,
	}

	if result.Err != nil {
		rec.Error = result.Err.Error()
	}

	return rec
}

// Action rebuilds the planned action of a record.
func (r ActionRecord) Action() Action {
	return Action{Type: r.Type, From: Path(r.From), To: Path(r.To)}
}
