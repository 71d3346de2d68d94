package boost

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/topictrans/pkg/topictrans/dictionary"
	"github.com/cognicore/topictrans/pkg/topictrans/divergence"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/metavec"
	"github.com/cognicore/topictrans/pkg/topictrans/scoring"
	"github.com/cognicore/topictrans/pkg/topictrans/topicmodel"
)

// ScoreModifier folds the per-tag topic divergences into one factor per word.
type ScoreModifier int

const (
	// WeightedSum multiplies by 1 + sum(divergence[tag] * encounter[tag][word]).
	WeightedSum ScoreModifier = iota
	// Max multiplies by the divergence of the word's most frequent tag.
	Max
)

func (m ScoreModifier) String() string {
	switch m {
	case WeightedSum:
		return "WeightedSum"
	case Max:
		return "Max"
	}
	return fmt.Sprintf("ScoreModifier(%d)", int(m))
}

// ParseScoreModifier resolves a modifier name; the empty string is WeightedSum.
func ParseScoreModifier(name string) (ScoreModifier, error) {
	switch strings.ToLower(name) {
	case "", "weightedsum":
		return WeightedSum, nil
	case "max":
		return Max, nil
	}
	return 0, fmt.Errorf("unknown score modifier %q: %w", name, internalerr.ErrInvalidConfig)
}

// VerticalConfig configures the vertical booster.
type VerticalConfig struct {
	Fields       FieldConfig
	Divergence   divergence.Calculator
	Modifier     ScoreModifier
	OnlyPositive bool
	Norm         scoring.BoostNorm
	// Factor scales each topic before it is compared; zero means 1.
	Factor float64
}

// Vertical holds one boosted score per topic and source word.
type Vertical struct {
	scores [][]float64
}

// NewVertical computes the vertical scores of every topic. dict must be the
// topic-specific dictionary, whose A ids are the model's word ids.
func NewVertical(cfg VerticalConfig, dict dictionary.Reader, model topicmodel.TopicMatrix, factory *metavec.Factory) (*Vertical, error) {
	template := cfg.Fields.Template(factory)
	n := dict.LenA()

	counts := make([][]float64, template.Len())
	encounter := make([][]float64, template.Len())
	for i, tag := range template.Tags() {
		row := make([]float64, n)
		for id := 0; id < n; id++ {
			if meta, ok := dict.MetaA(id); ok {
				row[id] = float64(meta.Count(tag))
			}
		}
		counts[i] = row
		enc := append([]float64(nil), row...)
		if sum := floats.Sum(enc); sum != 0 {
			floats.Scale(1/sum, enc)
		}
		encounter[i] = enc
	}

	factor := cfg.Factor
	if factor == 0 {
		factor = 1
	}

	out := &Vertical{scores: make([][]float64, model.TopicCount())}
	scaled := make([]float64, n)
	for topicID := range out.scores {
		topic := model.Topic(topicID)
		if len(topic) != n {
			return nil, fmt.Errorf("vertical boost: topic %d has %d words, dictionary has %d: %w",
				topicID, len(topic), n, internalerr.ErrShapeMismatch)
		}
		for i, p := range topic {
			scaled[i] = p * factor
		}
		assoc := make([]float64, template.Len())
		for i := range encounter {
			d, err := cfg.Divergence.Calculate(encounter[i], scaled)
			if err != nil {
				return nil, fmt.Errorf("vertical boost: topic %d tag %s: %w", topicID, template.Tags()[i], err)
			}
			assoc[i] = d
		}

		scores := cfg.Modifier.apply(topic, counts, encounter, assoc)
		if len(scores) != n {
			panic(fmt.Sprintf("boost: vertical scores for topic %d have length %d, vocabulary has %d",
				topicID, len(scores), n))
		}
		cfg.Norm.Apply(scores)
		if cfg.OnlyPositive {
			scoring.MakePositiveOnly(scores)
		}
		out.scores[topicID] = scores
	}
	return out, nil
}

func (m ScoreModifier) apply(topic []float64, counts, encounter [][]float64, assoc []float64) []float64 {
	out := make([]float64, len(topic))
	switch m {
	case Max:
		// only the template's tags take part in the shift check
		for _, a := range assoc {
			if a < 1 {
				for i := range assoc {
					assoc[i]++
				}
				break
			}
		}
		for word, p := range topic {
			best := 0
			for i := range counts {
				if counts[i][word] >= counts[best][word] {
					best = i
				}
			}
			if len(assoc) == 0 {
				out[word] = p
				continue
			}
			out[word] = p * assoc[best]
		}
	default:
		for word, p := range topic {
			weighted := 1.0
			for i := range encounter {
				weighted += assoc[i] * encounter[i][word]
			}
			out[word] = p * weighted
		}
	}
	return out
}

// Topics returns the number of boosted topics.
func (v *Vertical) Topics() int { return len(v.scores) }

// Scores returns the boosted scores of a topic, indexed by source word id.
func (v *Vertical) Scores(topic int) []float64 { return v.scores[topic] }

// Min returns the smallest boosted score across all topics.
func (v *Vertical) Min() (float64, bool) {
	found := false
	var lo float64
	for _, row := range v.scores {
		if len(row) == 0 {
			continue
		}
		m := floats.Min(row)
		if !found || m < lo {
			lo, found = m, true
		}
	}
	return lo, found
}
