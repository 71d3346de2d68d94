// Package store persists the inputs and outputs of translation runs.
package store

import (
	"context"
	"time"
)

// Store is the main interface for persisting dictionaries, topic models,
// language booster weights and the history of translation runs.
type Store interface {
	Close() error

	// Dictionaries, keyed by name. Saving replaces an existing dictionary.
	SaveDictionary(ctx context.Context, d DictionaryData) error
	LoadDictionary(ctx context.Context, name string) (DictionaryData, error)

	// Topic models, keyed by ID. Saving replaces an existing model.
	SaveModel(ctx context.Context, m ModelData) error
	LoadModel(ctx context.Context, id string) (ModelData, error)

	// Per-language word weights feeding the n-gram boosters.
	SaveWordWeights(ctx context.Context, language string, weights map[string]float64) error
	LoadWordWeights(ctx context.Context, language string) (map[string]float64, error)

	// Translation runs, newest first.
	RecordRun(ctx context.Context, r Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// DictionaryData is the storable form of a bilingual dictionary. Word ids
// are positions in WordsA and WordsB.
type DictionaryData struct {
	Name   string
	LangA  string
	LangB  string
	WordsA []string
	WordsB []string
	Links  []Link
	MetaA  []MetaEntry
	MetaB  []MetaEntry
}

// Link connects word ids of side A and B.
type Link struct {
	A int
	B int
}

// MetaEntry is one tag count of a word under a sub-dictionary origin.
type MetaEntry struct {
	WordID int
	Origin string
	Tag    string
	Count  uint32
}

// ModelData is the storable form of a topic model.
type ModelData struct {
	ID        string
	Language  string
	Words     []string
	Topics    [][]float64
	Counts    []uint64
	CreatedAt time.Time
}

// Run records one translation.
type Run struct {
	ID            string
	SourceModelID string
	Dictionary    string
	ResultModelID string
	Voting        string
	Topics        int
	Vocabulary    int
	StartedAt     time.Time
	Duration      time.Duration
}
