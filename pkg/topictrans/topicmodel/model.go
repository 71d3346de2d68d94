// Package topicmodel holds a dense topic x word probability matrix together
// with its vocabulary and the per-topic statistics the translation engine reads.
package topicmodel

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/vocab"
)

// TopicMatrix is the minimal read view over topic rows.
type TopicMatrix interface {
	TopicCount() int
	Topic(id int) []float64
}

// TopicStats summarises one topic.
type TopicStats struct {
	Max float64
	Min float64
	Avg float64
	Sum float64
}

// VoterMeta is the position of a word inside one topic sorted by probability.
// Rank is the strict 1-based position (ties broken by word id); Importance is
// the 1-based index of the group of equal probabilities.
type VoterMeta struct {
	WordID     int
	Score      float64
	Rank       int
	Importance int
}

// Model is an immutable dense topic model.
type Model struct {
	topics *mat.Dense
	voc    *vocab.Vocabulary
	counts []uint64
	stats  []TopicStats
	voters [][]VoterMeta
}

// New builds a model from dense rows. Every row must cover the whole
// vocabulary; counts may be nil or hold one usage count per word.
func New(topics [][]float64, voc *vocab.Vocabulary, counts []uint64) (*Model, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("topic model: no topics: %w", internalerr.ErrEmptyInput)
	}
	n := voc.Len()
	if n == 0 {
		return nil, fmt.Errorf("topic model: empty vocabulary: %w", internalerr.ErrEmptyInput)
	}
	data := make([]float64, 0, len(topics)*n)
	for i, row := range topics {
		if len(row) != n {
			return nil, fmt.Errorf("topic model: topic %d has %d words, vocabulary has %d: %w",
				i, len(row), n, internalerr.ErrShapeMismatch)
		}
		data = append(data, row...)
	}
	if counts == nil {
		counts = make([]uint64, n)
	} else if len(counts) != n {
		return nil, fmt.Errorf("topic model: %d counts for %d words: %w",
			len(counts), n, internalerr.ErrShapeMismatch)
	}
	return fromDense(mat.NewDense(len(topics), n, data), voc, append([]uint64(nil), counts...)), nil
}

func fromDense(d *mat.Dense, voc *vocab.Vocabulary, counts []uint64) *Model {
	m := &Model{topics: d, voc: voc, counts: counts}
	r, _ := d.Dims()
	m.stats = make([]TopicStats, r)
	m.voters = make([][]VoterMeta, r)
	for i := 0; i < r; i++ {
		row := d.RawRowView(i)
		sum := floats.Sum(row)
		m.stats[i] = TopicStats{
			Max: floats.Max(row),
			Min: floats.Min(row),
			Sum: sum,
			Avg: sum / float64(len(row)),
		}
		m.voters[i] = rankTopic(row)
	}
	return m
}

func rankTopic(row []float64) []VoterMeta {
	order := make([]int, len(row))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		pa, pb := row[order[a]], row[order[b]]
		if pa != pb {
			return pa > pb
		}
		return order[a] < order[b]
	})

	metas := make([]VoterMeta, len(row))
	importance := 0
	for pos, id := range order {
		if pos == 0 || row[id] != row[order[pos-1]] {
			importance++
		}
		metas[id] = VoterMeta{WordID: id, Score: row[id], Rank: pos + 1, Importance: importance}
	}
	return metas
}

// TopicCount returns the number of topics.
func (m *Model) TopicCount() int {
	r, _ := m.topics.Dims()
	return r
}

// Topic returns the probability row of a topic. The slice must not be modified.
func (m *Model) Topic(id int) []float64 { return m.topics.RawRowView(id) }

// Matrix exposes the underlying dense matrix (read-only by convention).
func (m *Model) Matrix() mat.Matrix { return m.topics }

// Vocabulary returns the model vocabulary.
func (m *Model) Vocabulary() *vocab.Vocabulary { return m.voc }

// Counts returns the per-word usage counts.
func (m *Model) Counts() []uint64 { return m.counts }

// Stats returns the statistics of a topic.
func (m *Model) Stats(topic int) TopicStats { return m.stats[topic] }

// VoterMeta returns the rank information of a word in a topic.
func (m *Model) VoterMeta(topic, word int) (VoterMeta, bool) {
	if topic < 0 || topic >= len(m.voters) || word < 0 || word >= len(m.voters[topic]) {
		return VoterMeta{}, false
	}
	return m.voters[topic][word], true
}

// Normalized returns a copy whose topics each sum to 1. Topics summing to 0
// are copied unchanged.
func (m *Model) Normalized() *Model {
	r, c := m.topics.Dims()
	d := mat.NewDense(r, c, nil)
	d.Copy(m.topics)
	for i := 0; i < r; i++ {
		row := d.RawRowView(i)
		if sum := floats.Sum(row); sum != 0 {
			floats.Scale(1/sum, row)
		}
	}
	return fromDense(d, m.voc, append([]uint64(nil), m.counts...))
}

// CreateNewFrom builds the model produced by a translation. The original
// model is consulted for nothing but must be the source of the translation;
// it is accepted so callers keep the provenance explicit.
func CreateNewFrom(topics [][]float64, voc *vocab.Vocabulary, counts []uint64, original *Model) (*Model, error) {
	if original == nil {
		return nil, fmt.Errorf("create translated model: %w", internalerr.ErrInvalidInput)
	}
	if len(topics) != original.TopicCount() {
		return nil, fmt.Errorf("create translated model: %d topics, original has %d: %w",
			len(topics), original.TopicCount(), internalerr.ErrShapeMismatch)
	}
	return New(topics, voc, counts)
}

// Normalize is the explicit opt-in normalisation step for translated models.
func Normalize(m *Model) *Model { return m.Normalized() }
