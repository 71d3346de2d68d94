package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMeanMethods(t *testing.T) {
	values := []float64{1, 2, 4}
	cases := []struct {
		method MeanMethod
		want   float64
	}{
		{ArithmeticMean, 7.0 / 3},
		{LinearWeightedArithmeticMean, (3*1 + 2*2 + 1*4) / 6.0},
		{HarmonicMean, 3 / (1 + 0.5 + 0.25)},
		{GeometricMean, 2},
		{Median, 2},
	}
	for _, c := range cases {
		got, err := c.method.Mean(values)
		if err != nil {
			t.Fatalf("%v: %v", c.method, err)
		}
		if !near(got, c.want) {
			t.Errorf("%v: expected %f, got %f", c.method, c.want, got)
		}
	}
}

func TestMeanEmpty(t *testing.T) {
	if _, err := GeometricMean.Mean(nil); !errors.Is(err, internalerr.ErrNoValues) {
		t.Errorf("expected ErrNoValues, got %v", err)
	}
}

func TestMedianEven(t *testing.T) {
	if got := MedianOf([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Errorf("expected 2.5, got %f", got)
	}
	if !math.IsNaN(MedianOf(nil)) {
		t.Error("expected NaN for empty median")
	}
}

func TestFailsOnEmpty(t *testing.T) {
	if Median.FailsOnEmpty() || ArithmeticMean.FailsOnEmpty() {
		t.Error("median and arithmetic mean must tolerate zeros")
	}
	if !HarmonicMean.FailsOnEmpty() || !LinearWeightedGeometricMean.FailsOnEmpty() {
		t.Error("harmonic and geometric means must reject zeros")
	}
}

func TestIsNormal(t *testing.T) {
	for _, x := range []float64{0, math.NaN(), math.Inf(1), 1e-320} {
		if IsNormal(x) {
			t.Errorf("expected %g not normal", x)
		}
	}
	if !IsNormal(-0.5) {
		t.Error("expected -0.5 to be normal")
	}
}

func TestBoostNorm(t *testing.T) {
	v := []float64{1, 3}
	NormNormalized.Apply(v)
	if v[0] != 0.25 || v[1] != 0.75 {
		t.Errorf("expected [0.25 0.75], got %v", v)
	}

	v = []float64{2, 4, 6}
	NormLinear.Apply(v)
	if !near(v[0], Epsilon/(4+Epsilon)) || !near(v[2], 1) {
		t.Errorf("unexpected linear norm %v", v)
	}

	v = []float64{-1, 1}
	NormNormalized.Apply(v)
	if v[0] != -1 || v[1] != 1 {
		t.Errorf("expected zero-sum vector unchanged, got %v", v)
	}
}

func TestMakePositiveOnly(t *testing.T) {
	v := []float64{-2, 0, 3}
	MakePositiveOnly(v)
	if v[0] != 0 || v[1] != 2 || v[2] != 5 {
		t.Errorf("expected [0 2 5], got %v", v)
	}
	v = []float64{1, 2}
	MakePositiveOnly(v)
	if v[0] != 1 || v[1] != 2 {
		t.Errorf("expected positive vector unchanged, got %v", v)
	}
}

func TestBoostMethods(t *testing.T) {
	cases := []struct {
		method  BoostMethod
		p, w, f float64
		want    float64
	}{
		{BoostLinear, 0.5, 2, 1, 1.5},
		{BoostSum, 0.5, 2, 0.5, 1.5},
		{BoostMultPow, 0.5, 2, 2, 2},
		{BoostMult, 0.5, 3, 9, 1.5},
		{BoostPipe, 0.5, 3, 9, 0.5},
		{BoostSum, 0.1, -1, 1, Epsilon},
	}
	for _, c := range cases {
		if got := c.method.Boost(c.p, c.w, c.f); !near(got, c.want) {
			t.Errorf("%v: expected %f, got %f", c.method, c.want, got)
		}
	}
}

func TestParseNames(t *testing.T) {
	if m, err := ParseMeanMethod("geometricmean"); err != nil || m != GeometricMean {
		t.Errorf("expected GeometricMean, got %v %v", m, err)
	}
	if _, err := ParseBoostNorm("bogus"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if b, err := ParseBoostMethod(""); err != nil || b != BoostLinear {
		t.Errorf("expected default BoostLinear, got %v %v", b, err)
	}
}
