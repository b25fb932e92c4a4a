package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "phototools.dev/pkg/phototools/internal/model"
)

// ReportFileName is the name of the run report inside the reports directory.
const ReportFileName = "report.yaml"

// ReportStore persists the report of the last run.
type ReportStore interface {
	SaveReport(dir m.Path, report m.RunReport) error
	LoadReport(dir m.Path) (m.RunReport, error)
}

type yamlReportStore struct{}

// NewReportStore returns a ReportStore writing YAML files.
func NewReportStore() ReportStore {
	return &yamlReportStore{}
}

func (s *yamlReportStore) SaveReport(dir m.Path, report m.RunReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	path := filepath.Join(string(dir), ReportFileName)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

func (s *yamlReportStore) LoadReport(dir m.Path) (m.RunReport, error) {
	path := filepath.Join(string(dir), ReportFileName)

	// #nosec G304 - path is inside the configured reports directory
	data, err := os.ReadFile(path)
	if err != nil {
		return m.RunReport{}, fmt.Errorf("failed to read report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("failed to decode report %s: %w", path, err)
	}

	return report, nil
}
