package bootstrap

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"CurveWatch/internal/model"
)

// Input validation errors. Any of these rejects the whole computation;
// the bootstrap cannot proceed from a malformed base.
var (
	ErrEmptyInput       = errors.New("empty tenor set")
	ErrNonPositiveTenor = errors.New("tenor must be positive")
	ErrNonFiniteTenor   = errors.New("tenor must be finite")
	ErrNonFiniteYield   = errors.New("yield must be finite")
	ErrDuplicateTenor   = errors.New("duplicate tenor")
)

// couponEps guards floating-point drift when walking whole-year coupon dates.
const couponEps = 1e-9

// Bootstrap derives the spot and forward curves from an observed tenor/yield
// table. The input is sorted ascending by tenor; spot rates are bootstrapped
// sequentially from the shortest maturity outward and forward rates are
// implied between consecutive tenors.
//
// A malformed input (empty, non-positive tenor, non-finite yield, duplicate
// tenor) returns an error and no curve. A tenor whose computation blows up
// numerically is tagged failed on that point only; the rest of the curve is
// still returned, with YieldCurve.Failures counting the affected tenors.
func Bootstrap(points []model.TenorPoint) (*model.YieldCurve, error) {
	sorted, err := normalize(points)
	if err != nil {
		return nil, err
	}

	spots := bootstrapSpots(sorted)
	forwards := deriveForwards(sorted, spots)

	curve := &model.YieldCurve{Points: make([]model.CurvePoint, len(sorted))}
	for i, p := range sorted {
		curve.Points[i] = model.CurvePoint{
			Tenor:   p.Tenor,
			Yield:   p.Yield,
			Spot:    spots[i],
			Forward: forwards[i],
		}
		if spots[i].Status == model.RateFailed || forwards[i].Status == model.RateFailed {
			curve.Failures++
		}
	}
	return curve, nil
}

// normalize validates every point and returns a fresh ascending-sorted copy.
// Sorting fixes the iteration order so identical input always produces
// identical output.
func normalize(points []model.TenorPoint) ([]model.TenorPoint, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	sorted := make([]model.TenorPoint, len(points))
	copy(sorted, points)

	for _, p := range sorted {
		if math.IsNaN(p.Tenor) || math.IsInf(p.Tenor, 0) {
			return nil, fmt.Errorf("tenor %v: %w", p.Tenor, ErrNonFiniteTenor)
		}
		if p.Tenor <= 0 {
			return nil, fmt.Errorf("tenor %v: %w", p.Tenor, ErrNonPositiveTenor)
		}
		if math.IsNaN(p.Yield) || math.IsInf(p.Yield, 0) {
			return nil, fmt.Errorf("tenor %v: %w", p.Tenor, ErrNonFiniteYield)
		}
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tenor < sorted[j].Tenor })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Tenor == sorted[i-1].Tenor {
			return nil, fmt.Errorf("tenor %v: %w", sorted[i].Tenor, ErrDuplicateTenor)
		}
	}
	return sorted, nil
}

// bootstrapSpots walks the sorted tenors shortest-first. The first point is
// taken at its observed yield (the zero-coupon assumption holds trivially
// there). The second point and any sub-year tenor degrade to the observed
// yield as well: with at most one prior pillar there is no interim coupon
// schedule to discount. Every later point is solved as an annual-coupon par
// bond against the pillars bootstrapped so far.
func bootstrapSpots(pts []model.TenorPoint) []model.Rate {
	spots := make([]model.Rate, len(pts))
	for i, p := range pts {
		switch {
		case i == 0:
			spots[i] = model.Rate{Value: p.Yield, Status: model.RateComputed}
		case i == 1 || p.Tenor < 1:
			spots[i] = model.Rate{Value: p.Yield, Status: model.RateDegraded}
		default:
			spots[i] = solveSpot(pts[:i], spots[:i], p)
		}
	}
	return spots
}

// solveSpot prices p as a par bond paying p.Yield annually: each coupon
// before maturity is discounted at the spot rate interpolated from the
// already-solved pillars, and the closing equation
//
//	1 - PV_known = (1 + y) / (1 + s)^t
//
// is solved for s in closed form.
func solveSpot(prior []model.TenorPoint, priorSpots []model.Rate, p model.TenorPoint) model.Rate {
	var pillarT, pillarR []float64
	for k := range prior {
		if priorSpots[k].OK() {
			pillarT = append(pillarT, prior[k].Tenor)
			pillarR = append(pillarR, priorSpots[k].Value)
		}
	}
	if len(pillarT) == 0 {
		// Every earlier pillar failed; nothing to discount against.
		return model.Rate{Value: p.Yield, Status: model.RateDegraded}
	}

	pvKnown := 0.0
	for m := 1.0; m+couponEps < p.Tenor; m++ {
		r := interpolateRate(pillarT, pillarR, m)
		pvKnown += p.Yield / math.Pow(1+r, m)
	}

	if pvKnown >= 1 {
		return model.Rate{
			Status: model.RateFailed,
			Reason: fmt.Sprintf("interim coupon value %.6f exceeds par; yield input inconsistent", pvKnown),
		}
	}

	s := math.Pow((1+p.Yield)/(1-pvKnown), 1/p.Tenor) - 1
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return model.Rate{
			Status: model.RateFailed,
			Reason: fmt.Sprintf("spot rate non-finite at tenor %v", p.Tenor),
		}
	}
	return model.Rate{Value: s, Status: model.RateComputed}
}

// interpolateRate looks up the spot rate at time t, linear in rate between
// pillars with flat extrapolation beyond either end. Pillars are ascending.
func interpolateRate(pillarT, pillarR []float64, t float64) float64 {
	n := len(pillarT)
	if t <= pillarT[0] {
		return pillarR[0]
	}
	if t >= pillarT[n-1] {
		return pillarR[n-1]
	}
	i := sort.SearchFloat64s(pillarT, t)
	if pillarT[i] == t {
		return pillarR[i]
	}
	t1, t2 := pillarT[i-1], pillarT[i]
	r1, r2 := pillarR[i-1], pillarR[i]
	return r1 + (r2-r1)*(t-t1)/(t2-t1)
}

// deriveForwards computes the implied one-period forward rate between each
// adjacent pair of tenors from the compounding identity
//
//	(1 + s2)^t2 = (1 + s1)^t1 * (1 + f)^(t2 - t1).
//
// The shortest tenor has no preceding point and carries no forward rate. An
// interval whose endpoint spot failed cannot be computed and is marked
// failed as well.
func deriveForwards(pts []model.TenorPoint, spots []model.Rate) []model.Rate {
	forwards := make([]model.Rate, len(pts))
	for i := range pts {
		if i == 0 {
			forwards[i] = model.Rate{Status: model.RateNone}
			continue
		}
		s1, s2 := spots[i-1], spots[i]
		if !s1.OK() || !s2.OK() {
			forwards[i] = model.Rate{
				Status: model.RateFailed,
				Reason: "spot rate unavailable on interval endpoint",
			}
			continue
		}
		t1, t2 := pts[i-1].Tenor, pts[i].Tenor
		grow := math.Pow(1+s2.Value, t2) / math.Pow(1+s1.Value, t1)
		f := math.Pow(grow, 1/(t2-t1)) - 1
		if math.IsNaN(f) || math.IsInf(f, 0) {
			forwards[i] = model.Rate{
				Status: model.RateFailed,
				Reason: fmt.Sprintf("forward rate non-finite on [%v, %v]", t1, t2),
			}
			continue
		}
		forwards[i] = model.Rate{Value: f, Status: model.RateComputed}
	}
	return forwards
}
