package adapter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// ReportStore persists scan reports.
type ReportStore interface {
	SaveReport(path m.Path, report m.ScanReport) error
	LoadReport(path m.Path) (m.ScanReport, error)
}

type yamlReportStore struct{}

// NewReportStore returns a ReportStore writing YAML documents.
func NewReportStore() ReportStore {
	return &yamlReportStore{}
}

func (s *yamlReportStore) SaveReport(path m.Path, report m.ScanReport) error {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

func (s *yamlReportStore) LoadReport(path m.Path) (m.ScanReport, error) {
	// #nosec G304 - path is the report location chosen by the user
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.ScanReport{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.ScanReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.ScanReport{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	if report.Version != m.ReportVersion {
		return m.ScanReport{}, fmt.Errorf("unsupported report version %d", report.Version)
	}

	return report, nil
}
