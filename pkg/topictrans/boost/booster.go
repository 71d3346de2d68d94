package boost

// Booster bundles the optional boosters of a translation run.
type Booster struct {
	Vertical   *Vertical
	Horizontal *Horizontal
	LangA      *NGram
	LangB      *NGram
}

// ForTopic returns the view used while translating one topic. A nil Booster
// yields a pass-through view.
func (b *Booster) ForTopic(topic int) TopicBooster {
	if b == nil {
		return TopicBooster{}
	}
	t := TopicBooster{horizontal: b.Horizontal, langA: b.LangA, langB: b.LangB}
	if b.Vertical != nil {
		t.vertical = b.Vertical.Scores(topic)
	}
	return t
}

// TopicBooster applies the boosters for a single topic.
type TopicBooster struct {
	vertical   []float64
	horizontal *Horizontal
	langA      *NGram
	langB      *NGram
}

// Vertical replaces p by the vertical score of idA (when present) and applies
// the source language weights.
func (t TopicBooster) Vertical(p float64, idA int) float64 {
	score := p
	if t.vertical != nil {
		score = t.vertical[idA]
	}
	if t.langA != nil {
		score = t.langA.Boost(idA, score)
	}
	return score
}

func (t TopicBooster) Horizontal(p float64, idA, idB int) float64 {
	if t.horizontal == nil {
		return p
	}
	return t.horizontal.Apply(p, idA, idB)
}

// Score is the fully boosted probability of translating idA into idB.
func (t TopicBooster) Score(p float64, idA, idB int) float64 {
	return t.Horizontal(t.Vertical(p, idA), idA, idB)
}

// Result applies the target language weights to a final candidate score.
func (t TopicBooster) Result(idB int, p float64) float64 {
	if t.langB == nil {
		return p
	}
	return t.langB.Boost(idB, p)
}
