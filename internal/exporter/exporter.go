package exporter

import (
	"fmt"
	"os"
	"path/filepath"
)

// Exporter writes per-date curve artifacts (JSON, CSV, PNG) under
// <OutputDir>/daily, matching the layout existing consumers read.
type Exporter struct {
	OutputDir string
}

// NewExporter creates the output directory tree if needed.
func NewExporter(outputDir string) (*Exporter, error) {
	if err := os.MkdirAll(filepath.Join(outputDir, "daily"), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Exporter{OutputDir: outputDir}, nil
}

func (e *Exporter) dailyPath(date, suffix string) string {
	return filepath.Join(e.OutputDir, "daily", fmt.Sprintf("%s_yield_curve%s", date, suffix))
}
