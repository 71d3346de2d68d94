// Package seed reads dictionaries and topic models from the plain file
// formats used to populate a store.
package seed

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cognicore/topictrans/pkg/topictrans/dictionary"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
	"github.com/cognicore/topictrans/pkg/topictrans/topicmodel"
	"github.com/cognicore/topictrans/pkg/topictrans/vocab"
)

// Entry is one dictionary line: a translation pair and optional tags per
// sub-dictionary origin ("" for general entries).
type Entry struct {
	A     string              `json:"a"`
	B     string              `json:"b"`
	MetaA map[string][]string `json:"meta_a,omitempty"`
	MetaB map[string][]string `json:"meta_b,omitempty"`
}

// LoadEntriesJSONL loads entries from a JSONL file, skipping malformed lines.
func LoadEntriesJSONL(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var entries []Entry
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		if e.A == "" || e.B == "" {
			log.Printf("Warning: skipping incomplete entry at line %d in %s", i+1, path)
			continue
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid entries found in %s", path)
	}

	return entries, nil
}

// BuildDictionary links every entry and records its tags. Tags are counted
// once per entry they appear in.
func BuildDictionary(langA, langB string, entries []Entry) (*dictionary.Memory, error) {
	d := dictionary.NewMemory(langA, langB)
	for _, e := range entries {
		idA, idB := d.Insert(e.A, e.B)
		if err := addMeta(d.MetadataA(), idA, e.MetaA); err != nil {
			return nil, fmt.Errorf("entry %s/%s: %w", e.A, e.B, err)
		}
		if err := addMeta(d.MetadataB(), idB, e.MetaB); err != nil {
			return nil, fmt.Errorf("entry %s/%s: %w", e.A, e.B, err)
		}
	}
	return d, nil
}

func addMeta(s *dictionary.MetadataStore, id int, meta map[string][]string) error {
	for origin, names := range meta {
		ts, err := tags.ParseAll(names)
		if err != nil {
			return err
		}
		s.Add(id, origin, ts...)
	}
	return nil
}

// ModelFile is the JSON form of a topic model.
type ModelFile struct {
	Language   string      `json:"language"`
	Vocabulary []string    `json:"vocabulary"`
	Topics     [][]float64 `json:"topics"`
	Counts     []uint64    `json:"counts,omitempty"`
}

// LoadModelJSON loads a topic model.
func LoadModelJSON(path string) (*topicmodel.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var mf ModelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	return topicmodel.New(mf.Topics, vocab.FromWords(mf.Language, mf.Vocabulary), mf.Counts)
}
