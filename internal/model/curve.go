package model

// TenorPoint is a single observed point on the published yield curve:
// time to maturity in years and the annualized yield as a decimal fraction
// (0.0625 means 6.25%).
type TenorPoint struct {
	Tenor float64
	Yield float64
}

// RateStatus tags the outcome of a per-tenor rate computation.
type RateStatus string

const (
	// RateComputed means the rate was derived by the full bootstrap.
	RateComputed RateStatus = "computed"
	// RateDegraded means the bootstrap fell back to the observed yield
	// (first pillar, a single prior point, or a sub-year tenor).
	RateDegraded RateStatus = "degraded"
	// RateFailed means the computation produced no usable value for this
	// tenor; Reason explains why.
	RateFailed RateStatus = "failed"
	// RateNone means the rate is not defined at this point (the shortest
	// tenor has no forward rate).
	RateNone RateStatus = "none"
)

// Rate is a tagged computation result. Consumers must check the status
// rather than relying on sentinel values; a failed or undefined rate never
// carries a meaningful Value.
type Rate struct {
	Value  float64
	Status RateStatus
	Reason string
}

// OK reports whether the rate carries a usable value.
func (r Rate) OK() bool {
	return r.Status == RateComputed || r.Status == RateDegraded
}

// CurvePoint is one derived point of the curve: the observed yield plus the
// bootstrapped spot rate and the implied forward rate over the interval from
// the previous tenor.
type CurvePoint struct {
	Tenor   float64
	Yield   float64
	Spot    Rate
	Forward Rate
}

// YieldCurve is the bootstrapped curve, strictly ascending by tenor.
// Failures counts tenors whose spot or forward computation failed.
type YieldCurve struct {
	Points   []CurvePoint
	Failures int
}

// Complete reports whether every tenor computed without failure.
func (c *YieldCurve) Complete() bool { return c.Failures == 0 }

// Status returns "success" for a fully computed curve and "partial" when
// one or more tenors failed.
func (c *YieldCurve) Status() string {
	if c.Complete() {
		return "success"
	}
	return "partial"
}
