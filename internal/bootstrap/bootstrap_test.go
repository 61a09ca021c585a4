package bootstrap

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"CurveWatch/internal/model"
)

func benchmarkPoints() []model.TenorPoint {
	return []model.TenorPoint{
		{Tenor: 1, Yield: 0.0625},
		{Tenor: 2, Yield: 0.0650},
		{Tenor: 5, Yield: 0.0700},
		{Tenor: 10, Yield: 0.0720},
	}
}

func TestBootstrap_SingleTenor(t *testing.T) {
	curve, err := Bootstrap([]model.TenorPoint{{Tenor: 1, Yield: 0.0625}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(curve.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(curve.Points))
	}
	p := curve.Points[0]
	if p.Spot.Value != 0.0625 || p.Spot.Status != model.RateComputed {
		t.Errorf("expected spot = yield exactly, got %+v", p.Spot)
	}
	if p.Forward.Status != model.RateNone {
		t.Errorf("expected no forward on shortest tenor, got %+v", p.Forward)
	}
	if !curve.Complete() {
		t.Errorf("expected complete curve, failures=%d", curve.Failures)
	}
}

func TestBootstrap_InputValidation(t *testing.T) {
	tests := []struct {
		name   string
		points []model.TenorPoint
		want   error
	}{
		{"empty", nil, ErrEmptyInput},
		{"zero tenor", []model.TenorPoint{{Tenor: 0, Yield: 0.05}}, ErrNonPositiveTenor},
		{"negative tenor", []model.TenorPoint{{Tenor: -1, Yield: 0.05}}, ErrNonPositiveTenor},
		{"nan tenor", []model.TenorPoint{{Tenor: math.NaN(), Yield: 0.05}}, ErrNonFiniteTenor},
		{"nan yield", []model.TenorPoint{{Tenor: 1, Yield: math.NaN()}}, ErrNonFiniteYield},
		{"inf yield", []model.TenorPoint{{Tenor: 1, Yield: math.Inf(1)}}, ErrNonFiniteYield},
		{"duplicate tenor", []model.TenorPoint{
			{Tenor: 5, Yield: 0.06},
			{Tenor: 1, Yield: 0.05},
			{Tenor: 5, Yield: 0.061},
		}, ErrDuplicateTenor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, err := Bootstrap(tt.points)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if curve != nil {
				t.Errorf("expected no curve on input error")
			}
		})
	}
}

func TestBootstrap_SortsInput(t *testing.T) {
	shuffled := []model.TenorPoint{
		{Tenor: 10, Yield: 0.0720},
		{Tenor: 1, Yield: 0.0625},
		{Tenor: 5, Yield: 0.0700},
		{Tenor: 2, Yield: 0.0650},
	}
	curve, err := Bootstrap(shuffled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(curve.Points) != len(shuffled) {
		t.Fatalf("expected %d points, got %d", len(shuffled), len(curve.Points))
	}
	for i := 1; i < len(curve.Points); i++ {
		if curve.Points[i].Tenor <= curve.Points[i-1].Tenor {
			t.Fatalf("tenors not strictly ascending at %d: %v <= %v",
				i, curve.Points[i].Tenor, curve.Points[i-1].Tenor)
		}
	}

	// Same input pre-sorted must give the identical curve.
	ordered, err := Bootstrap(benchmarkPoints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(curve, ordered) {
		t.Error("shuffled input produced a different curve than sorted input")
	}
}

func TestBootstrap_BenchmarkScenario(t *testing.T) {
	curve, err := Bootstrap(benchmarkPoints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pts := curve.Points

	if pts[0].Spot.Value != 0.0625 {
		t.Errorf("first spot must equal its yield exactly, got %v", pts[0].Spot.Value)
	}
	if pts[0].Forward.Status != model.RateNone {
		t.Errorf("first tenor must have no forward, got %+v", pts[0].Forward)
	}

	// Coupon effects are small at these levels: every spot stays within
	// ~60bp of the quoted yield and the upward slope is preserved.
	for i, p := range pts {
		if !p.Spot.OK() {
			t.Fatalf("spot %d not computed: %+v", i, p.Spot)
		}
		if math.Abs(p.Spot.Value-p.Yield) > 0.006 {
			t.Errorf("spot %d too far from yield: spot=%v yield=%v", i, p.Spot.Value, p.Yield)
		}
		if i > 0 && pts[i].Spot.Value <= pts[i-1].Spot.Value {
			t.Errorf("spot curve lost the upward slope at %d: %v <= %v",
				i, pts[i].Spot.Value, pts[i-1].Spot.Value)
		}
	}

	for i := 1; i < len(pts); i++ {
		if pts[i].Forward.Status != model.RateComputed {
			t.Fatalf("forward %d not computed: %+v", i, pts[i].Forward)
		}
	}
	if !curve.Complete() {
		t.Errorf("expected complete curve, failures=%d", curve.Failures)
	}
}

// The compounding identity (1+s2)^t2 = (1+s1)^t1 * (1+f)^(t2-t1) must
// round-trip within 1e-9 relative tolerance for every interval.
func TestBootstrap_ForwardSpotRoundTrip(t *testing.T) {
	curve, err := Bootstrap(benchmarkPoints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pts := curve.Points
	for i := 1; i < len(pts); i++ {
		t1, t2 := pts[i-1].Tenor, pts[i].Tenor
		lhs := math.Pow(1+pts[i].Spot.Value, t2)
		rhs := math.Pow(1+pts[i-1].Spot.Value, t1) * math.Pow(1+pts[i].Forward.Value, t2-t1)
		if rel := math.Abs(lhs-rhs) / lhs; rel > 1e-9 {
			t.Errorf("interval [%v, %v]: identity off by %g relative", t1, t2, rel)
		}
	}
}

func TestBootstrap_Idempotent(t *testing.T) {
	first, err := Bootstrap(benchmarkPoints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Bootstrap(benchmarkPoints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs on identical input produced different curves")
	}
}

func TestBootstrap_ToleranceFailureIsIsolated(t *testing.T) {
	// An implausible 99% yield at the third tenor makes its own interim
	// coupons worth more than par (PV_known >= 1). That tenor alone must be
	// flagged; earlier tenors keep their results.
	points := []model.TenorPoint{
		{Tenor: 1, Yield: 0.05},
		{Tenor: 2, Yield: 0.06},
		{Tenor: 3, Yield: 0.99},
	}
	curve, err := Bootstrap(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if curve.Failures != 1 {
		t.Fatalf("expected exactly 1 failed tenor, got %d", curve.Failures)
	}
	if curve.Status() != "partial" {
		t.Errorf("expected partial status, got %q", curve.Status())
	}

	if s := curve.Points[2].Spot; s.Status != model.RateFailed || s.Reason == "" {
		t.Errorf("expected failed spot with reason at tenor 3, got %+v", s)
	}
	if f := curve.Points[2].Forward; f.Status != model.RateFailed {
		t.Errorf("expected failed forward onto the failed tenor, got %+v", f)
	}

	if s := curve.Points[0].Spot; !s.OK() || s.Value != 0.05 {
		t.Errorf("tenor 1 result must survive the downstream failure, got %+v", s)
	}
	if f := curve.Points[1].Forward; f.Status != model.RateComputed {
		t.Errorf("forward over [1,2] must still compute, got %+v", f)
	}
}

func TestBootstrap_DegradesGracefully(t *testing.T) {
	// Second tenor has only one prior point; sub-year tenors carry no
	// annual coupon schedule. Both fall back to the observed yield.
	points := []model.TenorPoint{
		{Tenor: 0.5, Yield: 0.030},
		{Tenor: 0.75, Yield: 0.035},
		{Tenor: 2, Yield: 0.040},
	}
	curve, err := Bootstrap(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := curve.Points[1].Spot; s.Status != model.RateDegraded || s.Value != 0.035 {
		t.Errorf("expected degraded spot = yield at second tenor, got %+v", s)
	}
	if s := curve.Points[2].Spot; s.Status != model.RateComputed {
		t.Errorf("expected full bootstrap at tenor 2, got %+v", s)
	}
	if !curve.Complete() {
		t.Errorf("degradation is not a failure, got failures=%d", curve.Failures)
	}
}

func TestInterpolateRate(t *testing.T) {
	pillarT := []float64{1, 2, 5}
	pillarR := []float64{0.05, 0.06, 0.07}

	tests := []struct {
		t    float64
		want float64
	}{
		{0.5, 0.05},  // flat below the first pillar
		{1, 0.05},    // exact pillar
		{1.5, 0.055}, // linear in rate between pillars
		{3.5, 0.065},
		{5, 0.07},
		{8, 0.07}, // flat beyond the last pillar
	}
	for _, tt := range tests {
		if got := interpolateRate(pillarT, pillarR, tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("interpolateRate(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}
