package recorder

import (
	"time"

	"CurveWatch/internal/model"
)

// CurveRecord holds everything persisted for one curve date.
type CurveRecord struct {
	Date      string
	Source    string
	FetchedAt time.Time
	Curve     *model.YieldCurve
	Metrics   *model.KeyMetrics
	Bonds     []model.BondQuote
}

// CurveSummary is the per-date digest row used by reports.
type CurveSummary struct {
	Date        string
	TenorCount  int
	Failures    int
	Yield10Y    float64
	SteepnessBp float64
	Status      string
}

// Recorder persists curve history for analysis and digests.
type Recorder interface {
	RecordCurve(rec *CurveRecord) error
	RecentCurves(n int) ([]CurveSummary, error)
	Close() error
}
