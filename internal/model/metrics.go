package model

// KeyMetrics summarizes a computed curve for reports and exports.
type KeyMetrics struct {
	Yield10Y     float64 // yield at the first tenor >= 10 years
	Has10Y       bool
	SteepnessBp  float64 // 10Y - 2Y yield spread in basis points
	HasSteepness bool
	AvgSpot      float64
	AvgForward   float64
	YieldMin     float64
	YieldMax     float64
}
