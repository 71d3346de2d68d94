// Package provider injects externally computed variables into the voting
// contexts of a translation run.
package provider

import (
	"fmt"
	"sync"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/voting"
)

// VariableProvider writes named variables at each context level. Every
// method must be safe for concurrent use; an error aborts the translation.
type VariableProvider interface {
	Global(ctx *voting.Context) error
	Topic(topicID int, ctx *voting.Context) error
	WordA(wordID int, ctx *voting.Context) error
	WordB(wordID int, ctx *voting.Context) error
	WordInTopicA(topicID, wordID int, ctx *voting.Context) error
	WordInTopicB(topicID, wordID int, ctx *voting.Context) error
}

type topicWord struct {
	topic, word int
}

// Map is a VariableProvider backed by in-memory tables. Populate it before
// the run; reads and writes are guarded.
type Map struct {
	mu           sync.RWMutex
	global       map[string]any
	topics       map[int]map[string]any
	wordsA       map[int]map[string]any
	wordsB       map[int]map[string]any
	wordInTopicA map[topicWord]map[string]any
	wordInTopicB map[topicWord]map[string]any
}

// NewMap creates an empty provider.
func NewMap() *Map {
	return &Map{
		global:       make(map[string]any),
		topics:       make(map[int]map[string]any),
		wordsA:       make(map[int]map[string]any),
		wordsB:       make(map[int]map[string]any),
		wordInTopicA: make(map[topicWord]map[string]any),
		wordInTopicB: make(map[topicWord]map[string]any),
	}
}

func put[K comparable](m map[K]map[string]any, key K, name string, value any) {
	vars, ok := m[key]
	if !ok {
		vars = make(map[string]any)
		m[key] = vars
	}
	vars[name] = value
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("empty variable name: %w", internalerr.ErrInvalidInput)
	}
	return nil
}

// SetGlobal registers a run-wide variable.
func (p *Map) SetGlobal(name string, value any) error {
	if err := validName(name); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.global[name] = value
	return nil
}

// SetTopic registers a variable for one topic.
func (p *Map) SetTopic(topicID int, name string, value any) error {
	if err := validName(name); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	put(p.topics, topicID, name, value)
	return nil
}

// SetWordA registers a variable for a source word.
func (p *Map) SetWordA(wordID int, name string, value any) error {
	if err := validName(name); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	put(p.wordsA, wordID, name, value)
	return nil
}

// SetWordB registers a variable for a target word.
func (p *Map) SetWordB(wordID int, name string, value any) error {
	if err := validName(name); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	put(p.wordsB, wordID, name, value)
	return nil
}

// SetWordInTopicA registers a variable for a source word within a topic.
func (p *Map) SetWordInTopicA(topicID, wordID int, name string, value any) error {
	if err := validName(name); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	put(p.wordInTopicA, topicWord{topicID, wordID}, name, value)
	return nil
}

// SetWordInTopicB registers a variable for a target word within a topic.
func (p *Map) SetWordInTopicB(topicID, wordID int, name string, value any) error {
	if err := validName(name); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	put(p.wordInTopicB, topicWord{topicID, wordID}, name, value)
	return nil
}

func (p *Map) copyInto(vars map[string]any, ctx *voting.Context) {
	for k, v := range vars {
		ctx.Set(k, v)
	}
}

func (p *Map) Global(ctx *voting.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	p.copyInto(p.global, ctx)
	return nil
}

func (p *Map) Topic(topicID int, ctx *voting.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	p.copyInto(p.topics[topicID], ctx)
	return nil
}

func (p *Map) WordA(wordID int, ctx *voting.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	p.copyInto(p.wordsA[wordID], ctx)
	return nil
}

func (p *Map) WordB(wordID int, ctx *voting.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	p.copyInto(p.wordsB[wordID], ctx)
	return nil
}

func (p *Map) WordInTopicA(topicID, wordID int, ctx *voting.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	p.copyInto(p.wordInTopicA[topicWord{topicID, wordID}], ctx)
	return nil
}

func (p *Map) WordInTopicB(topicID, wordID int, ctx *voting.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	p.copyInto(p.wordInTopicB[topicWord{topicID, wordID}], ctx)
	return nil
}

// Noop provides nothing.
type Noop struct{}

func (Noop) Global(*voting.Context) error                  { return nil }
func (Noop) Topic(int, *voting.Context) error              { return nil }
func (Noop) WordA(int, *voting.Context) error              { return nil }
func (Noop) WordB(int, *voting.Context) error              { return nil }
func (Noop) WordInTopicA(int, int, *voting.Context) error { return nil }
func (Noop) WordInTopicB(int, int, *voting.Context) error { return nil }
