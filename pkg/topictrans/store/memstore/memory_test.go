package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/topictrans/internal/fixture"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/store"
)

var _ store.Store = (*Store)(nil)

func TestDictionary_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := New()

	data := store.ExportDictionary("aviation", fixture.DictionaryWithMeta())
	if err := s.SaveDictionary(ctx, data); err != nil {
		t.Fatalf("SaveDictionary: %v", err)
	}
	data.WordsA[0] = "mutated"

	got, err := s.LoadDictionary(ctx, "aviation")
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	if got.WordsA[0] != "plane" {
		t.Errorf("expected stored copy, got %q", got.WordsA[0])
	}
	if len(got.Links) != fixture.Links {
		t.Errorf("expected %d links, got %d", fixture.Links, len(got.Links))
	}

	if _, err := s.LoadDictionary(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.SaveDictionary(ctx, store.DictionaryData{}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestModel_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.SaveModel(ctx, store.ExportModel("m1", fixture.Model())); err != nil {
		t.Fatalf("SaveModel: %v", err)
	}
	got, err := s.LoadModel(ctx, "m1")
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if len(got.Topics) != 2 || len(got.Words) != len(fixture.WordsA) {
		t.Errorf("expected 2 topics over %d words, got %d over %d", len(fixture.WordsA), len(got.Topics), len(got.Words))
	}
	if _, err := s.LoadModel(ctx, "m2"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWordWeights(t *testing.T) {
	ctx := context.Background()
	s := New()

	empty, err := s.LoadWordWeights(ctx, "de")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected no weights, got %v (%v)", empty, err)
	}
	if err := s.SaveWordWeights(ctx, "de", map[string]float64{"Flugzeug": 2}); err != nil {
		t.Fatalf("SaveWordWeights: %v", err)
	}
	if err := s.SaveWordWeights(ctx, "de", map[string]float64{"Flieger": 1}); err != nil {
		t.Fatalf("SaveWordWeights: %v", err)
	}
	got, _ := s.LoadWordWeights(ctx, "de")
	if len(got) != 1 || got["Flieger"] != 1 {
		t.Errorf("expected replaced weights, got %v", got)
	}
}

func TestRuns_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := s.RecordRun(ctx, store.Run{ID: id, StartedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}
	if err := s.RecordRun(ctx, store.Run{ID: "a"}); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("expected [c b], got %+v", runs)
	}
	all, _ := s.ListRuns(ctx, 0)
	if len(all) != 3 {
		t.Errorf("expected 3 runs, got %d", len(all))
	}
}
