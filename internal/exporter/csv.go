package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"CurveWatch/internal/model"
	"CurveWatch/internal/recorder"
)

// ExportCSV writes the curve table with the pinned column names. Undefined
// rates become empty cells.
func (e *Exporter) ExportCSV(rec *recorder.CurveRecord) (string, error) {
	path := e.dailyPath(rec.Date, ".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Tenor Year", "IBPA_Yield", "Spot_Rate", "Forward_Rate"}); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, p := range rec.Curve.Points {
		row := []string{
			formatFloat(p.Tenor),
			formatFloat(p.Yield),
			formatRate(p.Spot),
			formatRate(p.Forward),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}

// ExportBondsCSV writes the underlying bond quotes for the date, if any.
func (e *Exporter) ExportBondsCSV(rec *recorder.CurveRecord) (string, error) {
	if len(rec.Bonds) == 0 {
		return "", nil
	}
	path := filepath.Join(e.OutputDir, "daily", fmt.Sprintf("%s_bond_data.csv", rec.Date))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Type", "Series", "Price", "Yield"}); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, b := range rec.Bonds {
		row := []string{b.Type, b.Series, formatFloat(b.Price), formatFloat(b.Yield)}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRate(r model.Rate) string {
	if !r.OK() {
		return ""
	}
	return formatFloat(r.Value)
}
