package scoring

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

// Epsilon is the machine epsilon of float64, used as the positive floor for
// boosted scores.
const Epsilon = 2.220446049250313e-16

// BoostNorm rescales a vector of boost values.
type BoostNorm int

const (
	NormOff BoostNorm = iota
	NormLinear
	NormNormalized
)

var normNames = map[BoostNorm]string{
	NormOff:        "Off",
	NormLinear:     "Linear",
	NormNormalized: "Normalized",
}

func (n BoostNorm) String() string {
	if s, ok := normNames[n]; ok {
		return s
	}
	return fmt.Sprintf("BoostNorm(%d)", int(n))
}

// ParseBoostNorm resolves a norm name; the empty string is NormOff.
func ParseBoostNorm(name string) (BoostNorm, error) {
	if name == "" {
		return NormOff, nil
	}
	for n, s := range normNames {
		if strings.EqualFold(s, name) {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown boost norm %q: %w", name, internalerr.ErrInvalidConfig)
}

// Apply transforms values in place.
func (n BoostNorm) Apply(values []float64) {
	if len(values) == 0 {
		return
	}
	switch n {
	case NormLinear:
		lo, hi := floats.Min(values), floats.Max(values)
		span := hi - lo + Epsilon
		for i, v := range values {
			values[i] = (v - lo + Epsilon) / span
		}
	case NormNormalized:
		if sum := floats.Sum(values); sum > 0 {
			floats.Scale(1/sum, values)
		}
	}
}

// MakePositiveOnly shifts values by |min| when the minimum is negative, so the
// smallest boost becomes zero.
func MakePositiveOnly(values []float64) {
	if len(values) == 0 {
		return
	}
	lo := floats.Min(values)
	if lo >= 0 {
		return
	}
	shift := math.Abs(lo)
	for i, v := range values {
		values[i] = math.Abs(v + shift)
	}
}

// BoostMethod combines a probability with a weight.
type BoostMethod int

const (
	BoostLinear BoostMethod = iota
	BoostSum
	BoostMultPow
	BoostMult
	BoostPipe
)

var boostNames = map[BoostMethod]string{
	BoostLinear:  "Linear",
	BoostSum:     "Sum",
	BoostMultPow: "MultPow",
	BoostMult:    "Mult",
	BoostPipe:    "Pipe",
}

func (b BoostMethod) String() string {
	if s, ok := boostNames[b]; ok {
		return s
	}
	return fmt.Sprintf("BoostMethod(%d)", int(b))
}

// ParseBoostMethod resolves a boost method name; the empty string is BoostLinear.
func ParseBoostMethod(name string) (BoostMethod, error) {
	if name == "" {
		return BoostLinear, nil
	}
	for b, s := range boostNames {
		if strings.EqualFold(s, name) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown boost method %q: %w", name, internalerr.ErrInvalidConfig)
}

// Boost applies weight w with factor f to probability p. Results that are not
// strictly positive are floored to Epsilon.
func (b BoostMethod) Boost(p, w, f float64) float64 {
	var out float64
	switch b {
	case BoostLinear:
		out = p + p*w*f
	case BoostSum:
		out = w*f + p
	case BoostMultPow:
		out = p * math.Pow(w, f)
	case BoostMult:
		out = p * w
	default:
		out = p
	}
	if out <= 0 {
		return Epsilon
	}
	return out
}
