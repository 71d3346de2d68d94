package boost

import (
	"github.com/cognicore/topictrans/pkg/topictrans/scoring"
)

// NGramConfig configures a per-language word weight booster.
type NGramConfig struct {
	Factor float64
	Method scoring.BoostMethod
	Norm   scoring.BoostNorm
}

// NGram boosts word probabilities by precomputed per-word weights, such as
// IDF values of the word's n-grams.
type NGram struct {
	values []float64
	factor float64
	method scoring.BoostMethod
}

// NewNGram copies weights (indexed by word id) and normalises them.
func NewNGram(cfg NGramConfig, weights []float64) *NGram {
	values := append([]float64(nil), weights...)
	cfg.Norm.Apply(values)
	return &NGram{values: values, factor: cfg.Factor, method: cfg.Method}
}

// NewNGramForWords aligns named weights with a vocabulary. Unknown words get
// weight 0.
func NewNGramForWords(cfg NGramConfig, words []string, weights map[string]float64) *NGram {
	aligned := make([]float64, len(words))
	for i, w := range words {
		aligned[i] = weights[w]
	}
	return NewNGram(cfg, aligned)
}

// Boost applies the weight of wordID to p; unknown ids pass through.
func (n *NGram) Boost(wordID int, p float64) float64 {
	if wordID < 0 || wordID >= len(n.values) {
		return p
	}
	return n.method.Boost(p, n.values[wordID], n.factor)
}
