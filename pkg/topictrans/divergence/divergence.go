// Package divergence implements the f-divergence family used to compare per-tag
// count profiles. Every function takes two equally long, non-negative vectors
// P and Q, allocates one temporary buffer and keeps no state, so calls are safe
// from any number of goroutines.
package divergence

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

// ParameterError reports an illegal shape parameter such as a negative alpha.
type ParameterError struct {
	Func   string
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: parameter %s=%v is illegal: %s", e.Func, e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return internalerr.ErrIllegalParameter }

func check(fn string, p, q []float64) error {
	if len(p) == 0 || len(q) == 0 {
		return fmt.Errorf("%s: %w", fn, internalerr.ErrEmptyInput)
	}
	if len(p) != len(q) {
		return fmt.Errorf("%s: len(p)=%d len(q)=%d: %w", fn, len(p), len(q), internalerr.ErrShapeMismatch)
	}
	return nil
}

// sumOf fills a scratch buffer with f(p[i], q[i]) and returns its sum.
func sumOf(fn string, p, q []float64, f func(p, q float64) float64) (float64, error) {
	if err := check(fn, p, q); err != nil {
		return 0, err
	}
	tmp := make([]float64, len(p))
	for i := range p {
		tmp[i] = f(p[i], q[i])
	}
	return floats.Sum(tmp), nil
}

// KL is the Kullback-Leibler divergence Σ P·ln(P/Q). A summand is 0 whenever
// P_i is 0, whatever Q_i is (absolute continuity is assumed).
func KL(p, q []float64) (float64, error) {
	s, err := sumOf("kl", p, q, func(p, q float64) float64 {
		if p == 0 {
			return 0
		}
		return p * math.Log(q/p)
	})
	return -s, err
}

// KLReversed is Σ Q·ln(Q/P), the divergence of Q from P. A summand is 0
// whenever Q_i is 0.
func KLReversed(p, q []float64) (float64, error) {
	return sumOf("kl_reversed", p, q, func(p, q float64) float64 {
		if q == 0 {
			return 0
		}
		return q * math.Log(q/p)
	})
}

// JensenShannon is the symmetrised KL against the midpoint M = (P+Q)/2.
// A position with Q_i = 0 contributes nothing, even when P_i != 0.
func JensenShannon(p, q []float64) (float64, error) {
	s, err := sumOf("jensen_shannon", p, q, func(p, q float64) float64 {
		if q == 0 {
			return 0
		}
		m := (p + q) / 2
		var left float64
		if p != 0 {
			left = p * math.Log(p/m)
		}
		return left + q*math.Log(q/m)
	})
	return s / 2, err
}

// Jeffrey is the symmetric divergence Σ (P-Q)·ln(P/Q); summands with P_i = 0 are 0.
func Jeffrey(p, q []float64) (float64, error) {
	s, err := sumOf("jeffrey", p, q, func(p, q float64) float64 {
		if p == 0 {
			return 0
		}
		return (p - q) * math.Log(q/p)
	})
	return -s, err
}

// BhattacharyyaCoefficient is Σ √(P·Q).
func BhattacharyyaCoefficient(p, q []float64) (float64, error) {
	return sumOf("bhattacharyya_coefficient", p, q, func(p, q float64) float64 {
		return math.Sqrt(p * q)
	})
}

// Bhattacharyya is the Bhattacharyya distance -ln(BC).
func Bhattacharyya(p, q []float64) (float64, error) {
	bc, err := BhattacharyyaCoefficient(p, q)
	if err != nil {
		return 0, err
	}
	return -math.Log(bc), nil
}

// Hellinger is 1 - BC. For distributions it lies in [0, 1].
func Hellinger(p, q []float64) (float64, error) {
	bc, err := BhattacharyyaCoefficient(p, q)
	if err != nil {
		return 0, err
	}
	return 1 - bc, nil
}

// PearsonChiSquare is Σ (P-Q)²/Q with 0 where Q_i = 0.
func PearsonChiSquare(p, q []float64) (float64, error) {
	return sumOf("pearson_chi_square", p, q, func(p, q float64) float64 {
		if q == 0 {
			return 0
		}
		d := p - q
		return d * d / q
	})
}

// NeymanChiSquare is Σ (P-Q)²/P with 0 where P_i = 0.
func NeymanChiSquare(p, q []float64) (float64, error) {
	return sumOf("neyman_chi_square", p, q, func(p, q float64) float64 {
		if p == 0 {
			return 0
		}
		d := p - q
		return d * d / p
	})
}

// TotalVariation is ½ Σ |P-Q|.
func TotalVariation(p, q []float64) (float64, error) {
	s, err := sumOf("total_variation", p, q, func(p, q float64) float64 {
		return math.Abs(p - q)
	})
	return s / 2, err
}

// ChiAlpha is ½ Σ |(P-Q)/Q|^α · Q for α >= 1; summands with Q_i = 0 are 0.
// α = 1 is the total variation.
func ChiAlpha(p, q []float64, alpha float64) (float64, error) {
	if alpha == 1 {
		return TotalVariation(p, q)
	}
	if !(alpha >= 1) {
		return 0, &ParameterError{Func: "chi_alpha", Name: "alpha", Value: alpha, Reason: "alpha has to be >= 1"}
	}
	s, err := sumOf("chi_alpha", p, q, func(p, q float64) float64 {
		if q == 0 {
			return 0
		}
		return math.Pow(math.Abs((p-q)/q), alpha) * q
	})
	return s / 2, err
}

// Renyi is the Rényi divergence of order α. α = 0, ½, 1, 2 and +Inf use closed
// forms; every other α uses (1/(α-1))·ln(Σ P^α / Q^(α-1)) over positions where
// both P_i and Q_i are non-zero.
func Renyi(p, q []float64, alpha float64) (float64, error) {
	switch {
	case math.IsNaN(alpha):
		return 0, &ParameterError{Func: "renyi", Name: "alpha", Value: alpha, Reason: "alpha is NaN"}
	case math.Signbit(alpha):
		return 0, &ParameterError{Func: "renyi", Name: "alpha", Value: alpha, Reason: "alpha is negative"}
	case alpha == 1:
		return KL(p, q)
	}
	if err := check("renyi", p, q); err != nil {
		return 0, err
	}

	switch {
	case alpha == 0:
		s, _ := sumOf("renyi", p, q, func(p, q float64) float64 {
			if p == 0 {
				return 0
			}
			return q
		})
		return -math.Log(s), nil
	case math.IsInf(alpha, 1):
		best, found := 0.0, false
		for i := range p {
			if p[i] == 0 || q[i] == 0 {
				continue
			}
			v := p[i] * p[i] / q[i]
			if !math.IsNaN(v) && (!found || v > best) {
				best, found = v, true
			}
		}
		return best, nil
	case alpha == 0.5:
		bc, err := BhattacharyyaCoefficient(p, q)
		if err != nil {
			return 0, err
		}
		return -2 * math.Log(bc), nil
	case alpha == 2:
		s, _ := sumOf("renyi", p, q, func(p, q float64) float64 {
			if p == 0 || q == 0 {
				return 0
			}
			return p * p / q
		})
		return math.Log(s), nil
	}

	s, _ := sumOf("renyi", p, q, func(p, q float64) float64 {
		if p == 0 || q == 0 {
			return 0
		}
		return math.Pow(p, alpha) / math.Pow(q, alpha-1)
	})
	return math.Log(s) / (alpha - 1), nil
}
