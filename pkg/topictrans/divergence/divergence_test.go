package divergence

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

var (
	p = []float64{0.25, 0.75}
	q = []float64{0.5, 0.5}
)

func TestKnownValues(t *testing.T) {
	tests := []struct {
		name string
		fn   func(p, q []float64) (float64, error)
		want float64
	}{
		{"kl", KL, 0.25*math.Log(0.5) + 0.75*math.Log(1.5)},
		{"kl_reversed", KLReversed, 0.5*math.Log(2) + 0.5*math.Log(0.5/0.75)},
		{"total", TotalVariation, 0.25},
		{"pearson", PearsonChiSquare, 0.25},
		{"neyman", NeymanChiSquare, 0.0625/0.25 + 0.0625/0.75},
		{"bc", BhattacharyyaCoefficient, math.Sqrt(0.125) + math.Sqrt(0.375)},
		{"hellinger", Hellinger, 1 - (math.Sqrt(0.125) + math.Sqrt(0.375))},
		{"bhattacharyya", Bhattacharyya, -math.Log(math.Sqrt(0.125) + math.Sqrt(0.375))},
		{"jeffrey", Jeffrey, (0.25-0.5)*math.Log(0.25/0.5) + (0.75-0.5)*math.Log(0.75/0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(p, q)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approx(got, tt.want) {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	dist := []float64{0.1, 0.2, 0.3, 0.4}
	kl, _ := KL(dist, dist)
	if !approx(kl, 0) {
		t.Errorf("expected kl(P,P)=0, got %f", kl)
	}
	h, _ := Hellinger(dist, dist)
	if !approx(h, 0) {
		t.Errorf("expected hellinger(P,P)=0, got %f", h)
	}
	bc, _ := BhattacharyyaCoefficient(dist, dist)
	if !approx(bc, 1) {
		t.Errorf("expected bc(P,P)=1, got %f", bc)
	}
}

func TestNonNegativity(t *testing.T) {
	pairs := [][2][]float64{
		{{0.1, 0.2, 0.7}, {0.3, 0.3, 0.4}},
		{{0.5, 0.5, 0}, {0.2, 0.2, 0.6}},
		{{0.9, 0.05, 0.05}, {0.05, 0.05, 0.9}},
	}
	for _, pair := range pairs {
		kl, err := KL(pair[0], pair[1])
		if err != nil {
			t.Fatal(err)
		}
		if kl < 0 {
			t.Errorf("expected kl >= 0, got %f", kl)
		}
		h, _ := Hellinger(pair[0], pair[1])
		if h < 0 || h > 1 {
			t.Errorf("expected hellinger in [0,1], got %f", h)
		}
	}
}

func TestZeroHandling(t *testing.T) {
	// P_i = 0 contributes nothing to KL even when Q_i is 0.
	kl, err := KL([]float64{0, 1}, []float64{0, 1})
	if err != nil || !approx(kl, 0) {
		t.Errorf("expected 0, got %f (%v)", kl, err)
	}

	// Q_i = 0 short-circuits Jensen-Shannon even though P_i != 0.
	js, _ := JensenShannon([]float64{1, 0}, []float64{0, 1})
	if !approx(js, math.Log(2)/2) {
		t.Errorf("expected %f, got %f", math.Log(2)/2, js)
	}

	rev, _ := KLReversed([]float64{0.5, 0.5}, []float64{0, 1})
	if !approx(rev, math.Log(2)) {
		t.Errorf("expected %f, got %f", math.Log(2), rev)
	}
}

func TestChiAlpha(t *testing.T) {
	got, err := ChiAlpha(p, q, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got, 0.125) {
		t.Errorf("expected 0.125, got %f", got)
	}

	tv, _ := ChiAlpha(p, q, 1)
	if !approx(tv, 0.25) {
		t.Errorf("alpha=1 should be total variation, got %f", tv)
	}

	_, err = ChiAlpha(p, q, 0.5)
	if !errors.Is(err, internalerr.ErrIllegalParameter) {
		t.Errorf("expected ErrIllegalParameter, got %v", err)
	}
	var perr *ParameterError
	if !errors.As(err, &perr) || perr.Name != "alpha" {
		t.Errorf("expected ParameterError for alpha, got %v", err)
	}
}

func TestRenyi(t *testing.T) {
	kl, _ := KL(p, q)
	bc, _ := BhattacharyyaCoefficient(p, q)

	tests := []struct {
		alpha float64
		want  float64
	}{
		{1, kl},
		{0.5, -2 * math.Log(bc)},
		{2, math.Log(0.0625/0.5 + 0.5625/0.5)},
		{math.Inf(1), 0.5625 / 0.5},
		{0, 0},
		{3, math.Log(math.Pow(0.25, 3)/math.Pow(0.5, 2)+math.Pow(0.75, 3)/math.Pow(0.5, 2)) / 2},
	}
	for _, tt := range tests {
		got, err := Renyi(p, q, tt.alpha)
		if err != nil {
			t.Fatalf("alpha=%v: %v", tt.alpha, err)
		}
		if !approx(got, tt.want) {
			t.Errorf("alpha=%v: expected %f, got %f", tt.alpha, tt.want, got)
		}
	}

	got, _ := Renyi([]float64{0, 1}, q, 0)
	if !approx(got, math.Log(2)) {
		t.Errorf("expected %f, got %f", math.Log(2), got)
	}

	for _, alpha := range []float64{-1, math.NaN()} {
		if _, err := Renyi(p, q, alpha); !errors.Is(err, internalerr.ErrIllegalParameter) {
			t.Errorf("alpha=%v: expected ErrIllegalParameter, got %v", alpha, err)
		}
	}
}

func TestShapeAndEmptyRejected(t *testing.T) {
	for kind := range kindNames {
		c := NewCalculator(kind).WithAlpha(2)
		if _, err := c.Calculate([]float64{0.5, 0.5}, []float64{1}); !errors.Is(err, internalerr.ErrShapeMismatch) {
			t.Errorf("%v: expected ErrShapeMismatch, got %v", kind, err)
		}
		if _, err := c.Calculate(nil, nil); !errors.Is(err, internalerr.ErrEmptyInput) {
			t.Errorf("%v: expected ErrEmptyInput, got %v", kind, err)
		}
	}
}

func TestCalculatorDefaults(t *testing.T) {
	tv, _ := TotalVariation(p, q)
	got, err := NewCalculator(KindChiAlpha).Calculate(p, q)
	if err != nil || !approx(got, tv) {
		t.Errorf("ChiAlpha without alpha should be total variation: got %f (%v)", got, err)
	}

	kl, _ := KL(p, q)
	got, err = NewCalculator(KindRenyi).Calculate(p, q)
	if err != nil || !approx(got, kl) {
		t.Errorf("Renyi without alpha should be KL: got %f (%v)", got, err)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("jensenshannon")
	if err != nil || k != KindJensenShannon {
		t.Errorf("expected JensenShannon, got %v (%v)", k, err)
	}
	if _, err := ParseKind("cosine"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestPreprocess(t *testing.T) {
	c := NewCalculator(KindKL)
	v := []float64{2, 0, 6}
	c.Preprocess(v)
	if !approx(v[0], 0.25) || v[1] != 0 || !approx(v[2], 0.75) {
		t.Errorf("unexpected normalisation %v", v)
	}
	one := []float64{0.5, 0.5}
	c.Preprocess(one)
	if one[0] != 0.5 {
		t.Errorf("sum 1 should be left untouched, got %v", one)
	}
	b := []float64{1, 2, 3}
	c.PreprocessB([]float64{1, 0, 1}, b)
	if b[1] != 0 || b[0] != 1 || b[2] != 3 {
		t.Errorf("expected b[1] zeroed, got %v", b)
	}
}
