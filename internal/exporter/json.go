package exporter

import (
	"encoding/json"
	"fmt"
	"os"

	"CurveWatch/internal/model"
	"CurveWatch/internal/recorder"
)

// Field names at this boundary are pinned for existing consumers:
// Tenor Year, IBPA_Yield, Spot_Rate, Forward_Rate. A rate without a usable
// value is null, with the deviation noted in the status field; the shortest
// tenor's Forward_Rate is always null.
type curveRow struct {
	Tenor         float64  `json:"Tenor Year"`
	Yield         float64  `json:"IBPA_Yield"`
	Spot          *float64 `json:"Spot_Rate"`
	SpotStatus    string   `json:"Spot_Status,omitempty"`
	Forward       *float64 `json:"Forward_Rate"`
	ForwardStatus string   `json:"Forward_Status,omitempty"`
}

type metadata struct {
	Date            string `json:"date"`
	ScrapeTimestamp string `json:"scrape_timestamp"`
	Source          string `json:"source"`
	TenorCount      int    `json:"tenor_count"`
	Failures        int    `json:"failures"`
	Status          string `json:"status"`
}

type document struct {
	Metadata   metadata          `json:"metadata"`
	YieldCurve []curveRow        `json:"yield_curve"`
	KeyMetrics map[string]string `json:"key_metrics,omitempty"`
}

// ExportJSON writes the full curve document and returns the file path.
func (e *Exporter) ExportJSON(rec *recorder.CurveRecord) (string, error) {
	doc := document{
		Metadata: metadata{
			Date:            rec.Date,
			ScrapeTimestamp: rec.FetchedAt.Format("2006-01-02T15:04:05Z07:00"),
			Source:          rec.Source,
			TenorCount:      len(rec.Curve.Points),
			Failures:        rec.Curve.Failures,
			Status:          rec.Curve.Status(),
		},
		YieldCurve: curveRows(rec.Curve),
		KeyMetrics: keyMetrics(rec.Metrics),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal curve document: %w", err)
	}
	path := e.dailyPath(rec.Date, ".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func curveRows(curve *model.YieldCurve) []curveRow {
	rows := make([]curveRow, len(curve.Points))
	for i, p := range curve.Points {
		rows[i] = curveRow{
			Tenor:         p.Tenor,
			Yield:         p.Yield,
			Spot:          rateValue(p.Spot),
			SpotStatus:    deviation(p.Spot),
			Forward:       rateValue(p.Forward),
			ForwardStatus: deviation(p.Forward),
		}
	}
	return rows
}

func keyMetrics(m *model.KeyMetrics) map[string]string {
	if m == nil {
		return nil
	}
	km := map[string]string{
		"Average Spot Rate":    fmt.Sprintf("%.4f", m.AvgSpot),
		"Average Forward Rate": fmt.Sprintf("%.4f", m.AvgForward),
		"Yield Range":          fmt.Sprintf("%.4f", m.YieldMax-m.YieldMin),
	}
	if m.Has10Y {
		km["Current 10Y Yield"] = fmt.Sprintf("%.4f", m.Yield10Y)
	}
	if m.HasSteepness {
		km["Steepness (10Y-2Y)"] = fmt.Sprintf("%.0fbp", m.SteepnessBp)
	}
	return km
}

func rateValue(r model.Rate) *float64 {
	if !r.OK() {
		return nil
	}
	v := r.Value
	return &v
}

// deviation reports anything other than a clean bootstrap result.
func deviation(r model.Rate) string {
	switch r.Status {
	case model.RateDegraded, model.RateFailed:
		return string(r.Status)
	default:
		return ""
	}
}
