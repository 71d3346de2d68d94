package store

import (
	"fmt"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/cognicore/topictrans/pkg/topictrans/dictionary"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
	"github.com/cognicore/topictrans/pkg/topictrans/topicmodel"
	"github.com/cognicore/topictrans/pkg/topictrans/vocab"
)

// ExportDictionary captures every word, link and tag count of r.
func ExportDictionary(name string, r dictionary.Reader) DictionaryData {
	d := DictionaryData{Name: name}
	d.LangA, d.LangB = r.Languages()
	for id := 0; id < r.LenA(); id++ {
		w, _ := r.WordA(id)
		d.WordsA = append(d.WordsA, w)
		for _, b := range r.TranslateAToB(id) {
			d.Links = append(d.Links, Link{A: id, B: b})
		}
		d.MetaA = appendMeta(d.MetaA, id, r.MetaA)
	}
	for id := 0; id < r.LenB(); id++ {
		w, _ := r.WordB(id)
		d.WordsB = append(d.WordsB, w)
		d.MetaB = appendMeta(d.MetaB, id, r.MetaB)
	}
	return d
}

func appendMeta(dst []MetaEntry, id int, get func(int) (*dictionary.Metadata, bool)) []MetaEntry {
	meta, ok := get(id)
	if !ok {
		return dst
	}
	for _, origin := range meta.Origins() {
		counts := meta.TagsFor(origin)
		ts := maps.Keys(counts)
		slices.Sort(ts)
		for _, t := range ts {
			dst = append(dst, MetaEntry{WordID: id, Origin: origin, Tag: t.String(), Count: counts[t]})
		}
	}
	return dst
}

// Build restores the in-memory dictionary, keeping every word id.
func (d DictionaryData) Build() (*dictionary.Memory, error) {
	m := dictionary.NewMemory(d.LangA, d.LangB)
	for _, w := range d.WordsA {
		m.AddWordA(w)
	}
	for _, w := range d.WordsB {
		m.AddWordB(w)
	}
	if m.LenA() != len(d.WordsA) || m.LenB() != len(d.WordsB) {
		return nil, fmt.Errorf("dictionary %q has duplicate words: %w", d.Name, internalerr.ErrDuplicate)
	}
	for _, l := range d.Links {
		if l.A < 0 || l.A >= len(d.WordsA) || l.B < 0 || l.B >= len(d.WordsB) {
			return nil, fmt.Errorf("dictionary %q link %d-%d: %w", d.Name, l.A, l.B, internalerr.ErrInvalidInput)
		}
		m.Link(l.A, l.B)
	}
	if err := restoreMeta(m.MetadataA(), d.MetaA); err != nil {
		return nil, fmt.Errorf("dictionary %q: %w", d.Name, err)
	}
	if err := restoreMeta(m.MetadataB(), d.MetaB); err != nil {
		return nil, fmt.Errorf("dictionary %q: %w", d.Name, err)
	}
	return m, nil
}

func restoreMeta(s *dictionary.MetadataStore, entries []MetaEntry) error {
	for _, e := range entries {
		t, err := tags.Parse(e.Tag)
		if err != nil {
			return err
		}
		s.SetCount(e.WordID, e.Origin, t, e.Count)
	}
	return nil
}

// ExportModel captures m under id.
func ExportModel(id string, m *topicmodel.Model) ModelData {
	md := ModelData{
		ID:        id,
		Language:  m.Vocabulary().Language(),
		Words:     slices.Clone(m.Vocabulary().Words()),
		Counts:    slices.Clone(m.Counts()),
		CreatedAt: time.Now().UTC(),
	}
	for t := 0; t < m.TopicCount(); t++ {
		md.Topics = append(md.Topics, slices.Clone(m.Topic(t)))
	}
	return md
}

// Build restores the topic model.
func (md ModelData) Build() (*topicmodel.Model, error) {
	m, err := topicmodel.New(md.Topics, vocab.FromWords(md.Language, md.Words), md.Counts)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", md.ID, err)
	}
	return m, nil
}
