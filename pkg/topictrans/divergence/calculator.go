package divergence

import (
	"fmt"
	"strings"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

// Kind selects one member of the f-divergence family.
type Kind int

const (
	KindKL Kind = iota
	KindKLReversed
	KindJensenShannon
	KindJeffrey
	KindBhattacharyya
	KindHellinger
	KindPearsonChiSquare
	KindNeymanChiSquare
	KindTotal
	KindChiAlpha
	KindRenyi
)

var kindNames = map[Kind]string{
	KindKL:               "KL",
	KindKLReversed:       "KLReversed",
	KindJensenShannon:    "JensenShannon",
	KindJeffrey:          "Jeffrey",
	KindBhattacharyya:    "Bhattacharyya",
	KindHellinger:        "Hellinger",
	KindPearsonChiSquare: "PearsonChiSquare",
	KindNeymanChiSquare:  "NeymanChiSquare",
	KindTotal:            "Total",
	KindChiAlpha:         "ChiAlpha",
	KindRenyi:            "Renyi",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a divergence name case-insensitively.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown divergence %q: %w", name, internalerr.ErrInvalidConfig)
}

// Calculator evaluates a configured divergence. Alpha is only read by Renyi
// (default 1, i.e. KL) and ChiAlpha (unset falls back to total variation).
type Calculator struct {
	Kind  Kind
	Alpha *float64
}

// NewCalculator returns a calculator without an alpha parameter.
func NewCalculator(kind Kind) Calculator {
	return Calculator{Kind: kind}
}

// WithAlpha returns a copy of c using alpha.
func (c Calculator) WithAlpha(alpha float64) Calculator {
	c.Alpha = &alpha
	return c
}

// Calculate returns the divergence of p and q.
func (c Calculator) Calculate(p, q []float64) (float64, error) {
	switch c.Kind {
	case KindKL:
		return KL(p, q)
	case KindKLReversed:
		return KLReversed(p, q)
	case KindJensenShannon:
		return JensenShannon(p, q)
	case KindJeffrey:
		return Jeffrey(p, q)
	case KindBhattacharyya:
		return Bhattacharyya(p, q)
	case KindHellinger:
		return Hellinger(p, q)
	case KindPearsonChiSquare:
		return PearsonChiSquare(p, q)
	case KindNeymanChiSquare:
		return NeymanChiSquare(p, q)
	case KindTotal:
		return TotalVariation(p, q)
	case KindChiAlpha:
		if c.Alpha == nil {
			return TotalVariation(p, q)
		}
		return ChiAlpha(p, q, *c.Alpha)
	case KindRenyi:
		alpha := 1.0
		if c.Alpha != nil {
			alpha = *c.Alpha
		}
		return Renyi(p, q, alpha)
	default:
		return 0, fmt.Errorf("divergence %v: %w", c.Kind, internalerr.ErrInvalidConfig)
	}
}

// Preprocess normalises counts in place to sum to 1, unless the sum is
// already 0 or 1. Zero entries are left untouched.
func (c Calculator) Preprocess(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x
	}
	if sum == 0 || sum == 1 {
		return
	}
	for i, x := range v {
		if x != 0 {
			v[i] = x / sum
		}
	}
}

// PreprocessB zeroes every b component whose a counterpart is zero.
func (c Calculator) PreprocessB(a, b []float64) {
	for i := range a {
		if i < len(b) && a[i] == 0 {
			b[i] = 0
		}
	}
}
