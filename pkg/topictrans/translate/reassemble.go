package translate

import (
	"fmt"

	"github.com/cognicore/topictrans/pkg/topictrans/dictionary"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/topicmodel"
	"github.com/cognicore/topictrans/pkg/topictrans/vocab"
)

// Reassemble builds the translated model from per-topic candidate lists.
// Words are numbered in topic, word and candidate order; origin candidates
// contribute their source word. counts holds how often each word was
// emitted. Words a topic did not emit get epsilon. When a topic emits the
// same word more than once the last score wins.
func Reassemble(topics [][]Candidate, specific dictionary.Reader, epsilon float64, original *topicmodel.Model) (*topicmodel.Model, error) {
	_, langB := specific.Languages()
	voc := vocab.New(langB)
	var counts []uint64

	ids := make([][]int, len(topics))
	for t, cands := range topics {
		ids[t] = make([]int, len(cands))
		for i, c := range cands {
			word, err := candidateWord(specific, c)
			if err != nil {
				return nil, fmt.Errorf("topic %d: %w", t, err)
			}
			id := voc.Add(word)
			if id == len(counts) {
				counts = append(counts, 0)
			}
			counts[id]++
			ids[t][i] = id
		}
	}

	rows := make([][]float64, len(topics))
	for t, cands := range topics {
		row := make([]float64, voc.Len())
		set := make([]bool, voc.Len())
		for i, c := range cands {
			row[ids[t][i]] = c.Score
			set[ids[t][i]] = true
		}
		for id := range row {
			if !set[id] {
				row[id] = epsilon
				set[id] = true
			}
		}
		for id, ok := range set {
			if !ok {
				panic(fmt.Sprintf("translate: topic %d has no value for word %d", t, id))
			}
		}
		rows[t] = row
	}
	return topicmodel.CreateNewFrom(rows, voc, counts, original)
}

func candidateWord(specific dictionary.Reader, c Candidate) (string, error) {
	var (
		word string
		ok   bool
	)
	if c.Origin {
		word, ok = specific.WordA(c.Target)
	} else {
		word, ok = specific.WordB(c.Target)
	}
	if !ok {
		return "", fmt.Errorf("candidate %d (origin %t): %w", c.Target, c.Origin, internalerr.ErrNotFound)
	}
	return word, nil
}
