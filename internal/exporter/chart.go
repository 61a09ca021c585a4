package exporter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"CurveWatch/internal/model"
	"CurveWatch/internal/recorder"
)

// RenderCurveChart renders a PNG line chart of the yield, spot and forward
// curves by tenor. Points without a usable rate are skipped per series.
// Returns raw PNG bytes.
func RenderCurveChart(date string, curve *model.YieldCurve) ([]byte, error) {
	if len(curve.Points) < 2 {
		return nil, fmt.Errorf("need at least 2 curve points, got %d", len(curve.Points))
	}

	yieldX := make([]float64, len(curve.Points))
	yieldY := make([]float64, len(curve.Points))
	for i, p := range curve.Points {
		yieldX[i] = p.Tenor
		yieldY[i] = p.Yield
	}

	var spotX, spotY, fwdX, fwdY []float64
	for _, p := range curve.Points {
		if p.Spot.OK() {
			spotX = append(spotX, p.Tenor)
			spotY = append(spotY, p.Spot.Value)
		}
		if p.Forward.OK() {
			fwdX = append(fwdX, p.Tenor)
			fwdY = append(fwdY, p.Forward.Value)
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name: "IBPA Yield",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
				StrokeWidth: 2.5,
			},
			XValues: yieldX,
			YValues: yieldY,
		},
	}
	if len(spotX) >= 2 {
		series = append(series, chart.ContinuousSeries{
			Name: "Spot Rate",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("16a34a"), // green-600
				StrokeWidth: 2.0,
			},
			XValues: spotX,
			YValues: spotY,
		})
	}
	if len(fwdX) >= 2 {
		series = append(series, chart.ContinuousSeries{
			Name: "Forward Rate",
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: fwdX,
			YValues: fwdY,
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("IDR Government Yield Curve %s", date),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0fY", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f%%", f*100)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportChart writes the curve chart PNG and returns the file path.
func (e *Exporter) ExportChart(rec *recorder.CurveRecord) (string, error) {
	png, err := RenderCurveChart(rec.Date, rec.Curve)
	if err != nil {
		return "", err
	}
	path := e.dailyPath(rec.Date, ".png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
