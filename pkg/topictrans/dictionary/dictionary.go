// Package dictionary defines the read interface of a bilingual dictionary
// with per-word metadata, an in-memory implementation and the topic specific
// view derived once per translation run.
package dictionary

import (
	"iter"

	"github.com/cognicore/topictrans/pkg/topictrans/vocab"
)

// Reader is the read-only view the translation engine needs.
type Reader interface {
	WordToIDA(word string) (int, bool)
	WordToIDB(word string) (int, bool)
	WordA(id int) (string, bool)
	WordB(id int) (string, bool)
	LenA() int
	LenB() int

	// TranslateAToB returns the candidate B ids of an A id in insertion order.
	TranslateAToB(id int) []int
	// TranslateBToA returns the back-translations of a B id in insertion order.
	TranslateBToA(id int) []int

	MetaA(id int) (*Metadata, bool)
	MetaB(id int) (*Metadata, bool)

	// Languages returns the declared languages of side A and B, "" if unknown.
	Languages() (a, b string)
	IsEmptyAToB() bool
	IsEmptyBToA() bool
}

// Memory is an in-memory dictionary. Build it completely before handing it to
// a translation; it is not safe for concurrent mutation.
type Memory struct {
	a, b   *vocab.Vocabulary
	aToB   [][]int
	bToA   [][]int
	metaA  *MetadataStore
	metaB  *MetadataStore
	nLinks int
}

// NewMemory creates an empty dictionary translating langA to langB.
func NewMemory(langA, langB string) *Memory {
	return &Memory{
		a:     vocab.New(langA),
		b:     vocab.New(langB),
		metaA: NewMetadataStore(),
		metaB: NewMetadataStore(),
	}
}

func appendUnique(list []int, id int) ([]int, bool) {
	for _, v := range list {
		if v == id {
			return list, false
		}
	}
	return append(list, id), true
}

func growTo(lists [][]int, n int) [][]int {
	for len(lists) < n {
		lists = append(lists, nil)
	}
	return lists
}

// Link records a translation in both directions between existing ids.
func (d *Memory) Link(idA, idB int) {
	d.aToB = growTo(d.aToB, idA+1)
	d.bToA = growTo(d.bToA, idB+1)
	var added bool
	d.aToB[idA], added = appendUnique(d.aToB[idA], idB)
	d.bToA[idB], _ = appendUnique(d.bToA[idB], idA)
	if added {
		d.nLinks++
	}
}

// Insert interns both words and links them in both directions. Repeated
// inserts of the same pair are ignored.
func (d *Memory) Insert(wordA, wordB string) (idA, idB int) {
	idA = d.a.Add(wordA)
	idB = d.b.Add(wordB)
	d.Link(idA, idB)
	return idA, idB
}

// AddWordA interns a word on side A without translations.
func (d *Memory) AddWordA(word string) int { return d.a.Add(word) }

// AddWordB interns a word on side B without translations.
func (d *Memory) AddWordB(word string) int { return d.b.Add(word) }

// MetadataA exposes the side A metadata arena for mutation.
func (d *Memory) MetadataA() *MetadataStore { return d.metaA }

// MetadataB exposes the side B metadata arena for mutation.
func (d *Memory) MetadataB() *MetadataStore { return d.metaB }

// VocabularyA returns the side A vocabulary.
func (d *Memory) VocabularyA() *vocab.Vocabulary { return d.a }

// VocabularyB returns the side B vocabulary.
func (d *Memory) VocabularyB() *vocab.Vocabulary { return d.b }

// Len returns the number of distinct (A, B) links.
func (d *Memory) Len() int { return d.nLinks }

func (d *Memory) WordToIDA(word string) (int, bool) { return d.a.ID(word) }
func (d *Memory) WordToIDB(word string) (int, bool) { return d.b.ID(word) }
func (d *Memory) WordA(id int) (string, bool)       { return d.a.Word(id) }
func (d *Memory) WordB(id int) (string, bool)       { return d.b.Word(id) }
func (d *Memory) LenA() int                         { return d.a.Len() }
func (d *Memory) LenB() int                         { return d.b.Len() }

func (d *Memory) TranslateAToB(id int) []int {
	if id < 0 || id >= len(d.aToB) {
		return nil
	}
	return d.aToB[id]
}

func (d *Memory) TranslateBToA(id int) []int {
	if id < 0 || id >= len(d.bToA) {
		return nil
	}
	return d.bToA[id]
}

func (d *Memory) MetaA(id int) (*Metadata, bool) { return d.metaA.Get(id) }
func (d *Memory) MetaB(id int) (*Metadata, bool) { return d.metaB.Get(id) }

func (d *Memory) Languages() (string, string) { return d.a.Language(), d.b.Language() }

func (d *Memory) IsEmptyAToB() bool {
	for _, l := range d.aToB {
		if len(l) > 0 {
			return false
		}
	}
	return true
}

func (d *Memory) IsEmptyBToA() bool {
	for _, l := range d.bToA {
		if len(l) > 0 {
			return false
		}
	}
	return true
}

// MetaPairs yields the (A, B) metadata of every dictionary link where both
// sides carry metadata, ordered by A id then candidate order.
func MetaPairs(r Reader) iter.Seq2[*Metadata, *Metadata] {
	return func(yield func(*Metadata, *Metadata) bool) {
		for idA := 0; idA < r.LenA(); idA++ {
			ma, ok := r.MetaA(idA)
			if !ok {
				continue
			}
			for _, idB := range r.TranslateAToB(idA) {
				mb, ok := r.MetaB(idB)
				if !ok {
					continue
				}
				if !yield(ma, mb) {
					return
				}
			}
		}
	}
}

// TopicSpecific derives the dictionary restricted to the words of a topic
// model vocabulary. Side A reuses the model's ids; side B ids are assigned in
// discovery order. Back-translations only keep A words the model knows.
// Metadata is shared with the source dictionary.
func TopicSpecific(src Reader, model *vocab.Vocabulary) *Memory {
	langA, langB := src.Languages()
	if model.Language() != "" {
		langA = model.Language()
	}
	out := NewMemory(langA, langB)
	for _, w := range model.Words() {
		out.a.Add(w)
	}

	for idA, word := range model.Words() {
		srcA, ok := src.WordToIDA(word)
		if !ok {
			continue
		}
		if m, ok := src.MetaA(srcA); ok {
			out.metaA.share(idA, m)
		}
		for _, srcB := range src.TranslateAToB(srcA) {
			wordB, ok := src.WordB(srcB)
			if !ok {
				continue
			}
			idB := out.b.Add(wordB)
			if m, ok := src.MetaB(srcB); ok {
				if _, seen := out.metaB.Get(idB); !seen {
					out.metaB.share(idB, m)
				}
			}
			out.Link(idA, idB)
			for _, backA := range src.TranslateBToA(srcB) {
				backWord, ok := src.WordA(backA)
				if !ok {
					continue
				}
				if back, ok := model.ID(backWord); ok {
					out.bToA = growTo(out.bToA, idB+1)
					out.bToA[idB], _ = appendUnique(out.bToA[idB], back)
				}
			}
		}
	}
	return out
}
