package boost

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/topictrans/pkg/topictrans/cooccurrence"
	"github.com/cognicore/topictrans/pkg/topictrans/dictionary"
	"github.com/cognicore/topictrans/pkg/topictrans/divergence"
	"github.com/cognicore/topictrans/pkg/topictrans/metavec"
	"github.com/cognicore/topictrans/pkg/topictrans/scoring"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
)

// HorizontalConfig configures the horizontal booster.
type HorizontalConfig struct {
	Fields     FieldConfig
	Divergence divergence.Calculator
	// Normalize scales the co-occurrence matrix used for smoothing.
	Normalize cooccurrence.NormalizeMode
	// SmoothingAlpha blends each divergence with the co-occurrence
	// background; nil disables smoothing.
	SmoothingAlpha    *float64
	Mean              scoring.MeanMethod
	LinearTransformed bool
}

// Horizontal holds a boost per (source word, candidate) pair.
type Horizontal struct {
	linear bool
	boosts []map[int]float64
}

type extracted struct {
	contained []tags.Tag
	counts    []float64
}

func extract(template *metavec.Template, meta *dictionary.Metadata) extracted {
	e := extracted{counts: make([]float64, template.Len())}
	for i, tag := range template.Tags() {
		c := meta.Count(tag)
		if c != 0 {
			e.contained = append(e.contained, tag)
		}
		e.counts[i] = float64(c)
	}
	return e
}

// NewHorizontal computes the pair boosts for every link of the topic-specific
// dictionary. The co-occurrence background is taken from the full dictionary.
func NewHorizontal(cfg HorizontalConfig, specific, full dictionary.Reader, factory *metavec.Factory) (*Horizontal, error) {
	template := cfg.Fields.Template(factory)

	var cooc *cooccurrence.Matrix
	if cfg.SmoothingAlpha != nil {
		var err error
		cooc, err = cooccurrence.WithOtherClassesAToB(dictionary.MetaPairs(full), template, cfg.Normalize)
		if err != nil {
			return nil, fmt.Errorf("horizontal boost: %w", err)
		}
	}

	h := &Horizontal{linear: cfg.LinearTransformed, boosts: make([]map[int]float64, specific.LenA())}
	for idA := range h.boosts {
		candidates := specific.TranslateAToB(idA)
		if len(candidates) == 0 {
			continue
		}
		metaA, ok := specific.MetaA(idA)
		if !ok {
			continue
		}
		metasB := make([]*dictionary.Metadata, len(candidates))
		for i, idB := range candidates {
			if m, ok := specific.MetaB(idB); ok {
				metasB[i] = m
			}
		}
		values, ok, err := pairBoosts(cfg, template, cooc, metaA, metasB)
		if err != nil {
			return nil, fmt.Errorf("horizontal boost: word %d: %w", idA, err)
		}
		if !ok {
			continue
		}
		m := make(map[int]float64, len(candidates))
		for i, idB := range candidates {
			m[idB] = values[i]
		}
		h.boosts[idA] = m
	}
	return h, nil
}

// pairBoosts returns one boost per entry of metasB (nil entries get 0). ok is
// false when no boost applies to the source word at all.
func pairBoosts(cfg HorizontalConfig, template *metavec.Template, cooc *cooccurrence.Matrix, metaA *dictionary.Metadata, metasB []*dictionary.Metadata) ([]float64, bool, error) {
	if len(metasB) == 0 {
		return nil, false, nil
	}
	a := extract(template, metaA)
	if len(a.contained) == 0 {
		return nil, false, nil
	}
	calc := cfg.Divergence
	calc.Preprocess(a.counts)

	bs := make([]*extracted, len(metasB))
	found := false
	for i, m := range metasB {
		if m == nil {
			continue
		}
		b := extract(template, m)
		calc.Preprocess(b.counts)
		bs[i] = &b
		found = true
	}
	if !found {
		return nil, false, nil
	}

	var smoothing float64
	if cooc != nil {
		s, err := smoothingFactor(cfg.Mean, cooc, a.contained, bs)
		if err != nil {
			return nil, false, err
		}
		smoothing = s
	}

	out := make([]float64, len(bs))
	for i, b := range bs {
		if b == nil {
			continue
		}
		calc.PreprocessB(a.counts, b.counts)
		v, err := calc.Calculate(b.counts, a.counts)
		if err != nil {
			return nil, false, err
		}
		if cooc != nil {
			alpha := *cfg.SmoothingAlpha
			v = (1-alpha)*v + alpha*smoothing
		}
		out[i] = v
	}

	if cfg.LinearTransformed {
		lo, hi := floats.Min(out), floats.Max(out)
		if hi-lo > 0 {
			for i, v := range out {
				out[i] = (v - lo) / (hi - lo)
			}
		}
	}
	return out, true, nil
}

// smoothingFactor averages, over the source tags, the mean of the median
// co-occurrence of that tag with each candidate's tags.
func smoothingFactor(mean scoring.MeanMethod, cooc *cooccurrence.Matrix, tagsA []tags.Tag, bs []*extracted) (float64, error) {
	perTag := make([]float64, 0, len(tagsA))
	for _, tagA := range tagsA {
		row, ok := cooc.Row(tagA)
		var medians []float64
		if ok {
			for _, b := range bs {
				if b == nil || len(b.contained) == 0 {
					continue
				}
				fitting := make([]float64, 0, len(b.contained))
				for _, tagB := range b.contained {
					if v, ok := row.Get(tagB); ok {
						fitting = append(fitting, v)
					}
				}
				if len(fitting) == 0 {
					continue
				}
				med := scoring.MedianOf(fitting)
				if !mean.FailsOnEmpty() || scoring.IsNormal(med) {
					medians = append(medians, med)
				}
			}
		}
		if len(medians) == 0 {
			perTag = append(perTag, 0)
			continue
		}
		v, err := mean.Mean(medians)
		if err != nil {
			return 0, err
		}
		perTag = append(perTag, v)
	}
	return stat.Mean(perTag, nil), nil
}

// Boost returns the stored boost of a pair.
func (h *Horizontal) Boost(idA, idB int) (float64, bool) {
	if idA < 0 || idA >= len(h.boosts) || h.boosts[idA] == nil {
		return 0, false
	}
	v, ok := h.boosts[idA][idB]
	return v, ok
}

// Apply boosts probability p of the pair. Pairs without a boost pass through.
func (h *Horizontal) Apply(p float64, idA, idB int) float64 {
	b, ok := h.Boost(idA, idB)
	if !ok {
		return p
	}
	if h.linear {
		return p + p*b
	}
	if boosted := p + b; boosted > 0 {
		return boosted
	}
	return scoring.Epsilon
}
