// Package scoring holds the small numeric transforms shared by the boosters:
// mean methods, boost normalisation and boost application.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

// MeanMethod aggregates a list of values into one.
type MeanMethod int

const (
	Median MeanMethod = iota
	ArithmeticMean
	LinearWeightedArithmeticMean
	HarmonicMean
	LinearWeightedHarmonicMean
	GeometricMean
	LinearWeightedGeometricMean
)

var meanNames = map[MeanMethod]string{
	Median:                       "Median",
	ArithmeticMean:               "ArithmeticMean",
	LinearWeightedArithmeticMean: "LinearWeightedArithmeticMean",
	HarmonicMean:                 "HarmonicMean",
	LinearWeightedHarmonicMean:   "LinearWeightedHarmonicMean",
	GeometricMean:                "GeometricMean",
	LinearWeightedGeometricMean:  "LinearWeightedGeometricMean",
}

func (m MeanMethod) String() string {
	if n, ok := meanNames[m]; ok {
		return n
	}
	return fmt.Sprintf("MeanMethod(%d)", int(m))
}

// ParseMeanMethod resolves a mean method name case-insensitively. The empty
// string selects Median.
func ParseMeanMethod(name string) (MeanMethod, error) {
	if name == "" {
		return Median, nil
	}
	for m, n := range meanNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mean method %q: %w", name, internalerr.ErrInvalidConfig)
}

// FailsOnEmpty reports whether zero or non-normal inputs break the method.
// Callers drop such values before aggregating.
func (m MeanMethod) FailsOnEmpty() bool {
	switch m {
	case HarmonicMean, LinearWeightedHarmonicMean, GeometricMean, LinearWeightedGeometricMean:
		return true
	}
	return false
}

// linearWeights returns n, n-1, ..., 1.
func linearWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = float64(n - i)
	}
	return w
}

// Mean aggregates values. An empty input fails with ErrNoValues.
func (m MeanMethod) Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%v: %w", m, internalerr.ErrNoValues)
	}
	switch m {
	case ArithmeticMean:
		return stat.Mean(values, nil), nil
	case LinearWeightedArithmeticMean:
		return stat.Mean(values, linearWeights(len(values))), nil
	case HarmonicMean:
		return stat.HarmonicMean(values, nil), nil
	case LinearWeightedHarmonicMean:
		return stat.HarmonicMean(values, linearWeights(len(values))), nil
	case GeometricMean:
		return stat.GeometricMean(values, nil), nil
	case LinearWeightedGeometricMean:
		return stat.GeometricMean(values, linearWeights(len(values))), nil
	case Median:
		return MedianOf(values), nil
	default:
		return 0, fmt.Errorf("mean method %d: %w", int(m), internalerr.ErrInvalidConfig)
	}
}

// MedianOf returns the median of values, averaging the two middle elements
// for even lengths. NaN for an empty input.
func MedianOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// IsNormal reports whether x is a normal float: non-zero, finite and not
// subnormal.
func IsNormal(x float64) bool {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	return math.Abs(x) >= 0x1p-1022
}
