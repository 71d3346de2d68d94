// Package vocab interns words to dense integer ids.
package vocab

// Vocabulary maps words to contiguous ids starting at 0. It is not safe for
// concurrent writes; translation only reads it.
type Vocabulary struct {
	language string
	words    []string
	index    map[string]int
}

// New creates an empty vocabulary tagged with a language ("" if unknown).
func New(language string) *Vocabulary {
	return &Vocabulary{language: language, index: make(map[string]int)}
}

// FromWords builds a vocabulary in the given order. Duplicates keep their first id.
func FromWords(language string, words []string) *Vocabulary {
	v := New(language)
	for _, w := range words {
		v.Add(w)
	}
	return v
}

// Add interns word and returns its id.
func (v *Vocabulary) Add(word string) int {
	if id, ok := v.index[word]; ok {
		return id
	}
	id := len(v.words)
	v.words = append(v.words, word)
	v.index[word] = id
	return id
}

// ID returns the id of word.
func (v *Vocabulary) ID(word string) (int, bool) {
	id, ok := v.index[word]
	return id, ok
}

// Word returns the word stored under id.
func (v *Vocabulary) Word(id int) (string, bool) {
	if id < 0 || id >= len(v.words) {
		return "", false
	}
	return v.words[id], true
}

// Len returns the number of words.
func (v *Vocabulary) Len() int { return len(v.words) }

// Words returns the words in id order. Callers must not modify it.
func (v *Vocabulary) Words() []string { return v.words }

// Language returns the language tag, "" when unknown.
func (v *Vocabulary) Language() string { return v.language }

// SetLanguage replaces the language tag.
func (v *Vocabulary) SetLanguage(lang string) { v.language = lang }
