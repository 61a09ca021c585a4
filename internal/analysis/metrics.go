package analysis

import (
	"errors"

	"CurveWatch/internal/model"
)

// ErrEmptyCurve is returned when metrics are requested for a curve with no points.
var ErrEmptyCurve = errors.New("empty curve")

// ComputeMetrics derives the headline numbers for a bootstrapped curve:
// the 10Y benchmark yield, the 10Y-2Y steepness in basis points, and the
// averages over the computed spot and forward rates. Tenor-dependent
// metrics are flagged absent when the curve does not reach far enough.
func ComputeMetrics(curve *model.YieldCurve) (*model.KeyMetrics, error) {
	if curve == nil || len(curve.Points) == 0 {
		return nil, ErrEmptyCurve
	}

	m := &model.KeyMetrics{
		YieldMin: curve.Points[0].Yield,
		YieldMax: curve.Points[0].Yield,
	}
	for _, p := range curve.Points {
		if p.Yield < m.YieldMin {
			m.YieldMin = p.Yield
		}
		if p.Yield > m.YieldMax {
			m.YieldMax = p.Yield
		}
	}

	if y10, ok := yieldAtOrAbove(curve, 10); ok {
		m.Yield10Y = y10
		m.Has10Y = true
		if y2, ok := yieldAtOrAbove(curve, 2); ok {
			m.SteepnessBp = (y10 - y2) * 10000
			m.HasSteepness = true
		}
	}

	m.AvgSpot = averageSpot(curve)
	m.AvgForward = averageForward(curve)
	return m, nil
}

// yieldAtOrAbove returns the yield of the first tenor at or beyond the
// target maturity. Points are ascending by tenor.
func yieldAtOrAbove(curve *model.YieldCurve, tenor float64) (float64, bool) {
	for _, p := range curve.Points {
		if p.Tenor >= tenor {
			return p.Yield, true
		}
	}
	return 0, false
}

func averageSpot(curve *model.YieldCurve) float64 {
	sum, n := 0.0, 0
	for _, p := range curve.Points {
		if p.Spot.OK() {
			sum += p.Spot.Value
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func averageForward(curve *model.YieldCurve) float64 {
	sum, n := 0.0, 0
	for _, p := range curve.Points {
		if p.Forward.OK() {
			sum += p.Forward.Value
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
