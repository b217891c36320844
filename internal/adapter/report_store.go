package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	m "github.com/graybeam/testpolicy/internal/model"
)

// ReportStore persists and retrieves scan reports.
type ReportStore interface {
	Save(path m.Path, report m.Report) error
	Load(path m.Path) (m.Report, error)
}

type jsonReportStore struct{}

// NewReportStore constructs a ReportStore that writes indented JSON.
func NewReportStore() ReportStore {
	return &jsonReportStore{}
}

func (rs *jsonReportStore) Save(path m.Path, report m.Report) error {
	content, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(string(path), append(content, '\n'), 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

func (rs *jsonReportStore) Load(path m.Path) (m.Report, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.Report{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.Report
	if err := json.Unmarshal(content, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}
