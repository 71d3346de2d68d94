package translate

import (
	"math"

	"golang.org/x/exp/slices"
)

// Candidate is one scored translation of a source word within a topic.
// Origin candidates stand for the untranslated source word; Target is then
// the source word id.
type Candidate struct {
	Target int
	Origin bool
	Score  float64
	Source int
}

// totalKey maps a float to an integer with the IEEE total order.
func totalKey(f float64) int64 {
	b := int64(math.Float64bits(f))
	return b ^ int64(uint64(b>>63)>>1)
}

func byScoreDesc(a, b Candidate) int {
	ka, kb := totalKey(a.Score), totalKey(b.Score)
	switch {
	case ka > kb:
		return -1
	case ka < kb:
		return 1
	}
	return 0
}

// TopCandidates keeps the limit best scored candidates, sorted by descending
// score with equal scores in input order. Lists within the limit and a zero
// limit are returned unchanged.
func TopCandidates(candidates []Candidate, limit int) []Candidate {
	if limit <= 0 || limit >= len(candidates) {
		return candidates
	}
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, byScoreDesc)
	return sorted[:limit]
}
