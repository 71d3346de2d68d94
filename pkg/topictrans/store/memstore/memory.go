package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	dicts   map[string]store.DictionaryData
	models  map[string]store.ModelData
	weights map[string]map[string]float64
	runs    []store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		dicts:   make(map[string]store.DictionaryData),
		models:  make(map[string]store.ModelData),
		weights: make(map[string]map[string]float64),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveDictionary stores a copy of d under its name.
func (s *Store) SaveDictionary(ctx context.Context, d store.DictionaryData) error {
	if d.Name == "" {
		return fmt.Errorf("dictionary without name: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dicts[d.Name] = copyDictionary(d)
	return nil
}

// LoadDictionary returns the dictionary saved under name.
func (s *Store) LoadDictionary(ctx context.Context, name string) (store.DictionaryData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dicts[name]
	if !ok {
		return store.DictionaryData{}, fmt.Errorf("dictionary %q: %w", name, internalerr.ErrNotFound)
	}
	return copyDictionary(d), nil
}

// SaveModel stores a copy of m under its ID.
func (s *Store) SaveModel(ctx context.Context, m store.ModelData) error {
	if m.ID == "" {
		return fmt.Errorf("model without id: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[m.ID] = copyModel(m)
	return nil
}

// LoadModel returns the model saved under id.
func (s *Store) LoadModel(ctx context.Context, id string) (store.ModelData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[id]
	if !ok {
		return store.ModelData{}, fmt.Errorf("model %q: %w", id, internalerr.ErrNotFound)
	}
	return copyModel(m), nil
}

// SaveWordWeights replaces the weights of a language.
func (s *Store) SaveWordWeights(ctx context.Context, language string, weights map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(map[string]float64, len(weights))
	for w, v := range weights {
		cp[w] = v
	}
	s.weights[language] = cp
	return nil
}

// LoadWordWeights returns the weights of a language, empty if none were saved.
func (s *Store) LoadWordWeights(ctx context.Context, language string) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.weights[language]))
	for w, v := range s.weights[language] {
		out[w] = v
	}
	return out, nil
}

// RecordRun appends a run.
func (s *Store) RecordRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("run without id: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.runs {
		if existing.ID == r.ID {
			return fmt.Errorf("run %q: %w", r.ID, internalerr.ErrDuplicate)
		}
	}
	s.runs = append(s.runs, r)
	return nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]store.Run(nil), s.runs...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func copyDictionary(d store.DictionaryData) store.DictionaryData {
	d.WordsA = append([]string(nil), d.WordsA...)
	d.WordsB = append([]string(nil), d.WordsB...)
	d.Links = append([]store.Link(nil), d.Links...)
	d.MetaA = append([]store.MetaEntry(nil), d.MetaA...)
	d.MetaB = append([]store.MetaEntry(nil), d.MetaB...)
	return d
}

func copyModel(m store.ModelData) store.ModelData {
	m.Words = append([]string(nil), m.Words...)
	m.Counts = append([]uint64(nil), m.Counts...)
	topics := make([][]float64, len(m.Topics))
	for i, row := range m.Topics {
		topics[i] = append([]float64(nil), row...)
	}
	m.Topics = topics
	return m
}
