package topictrans

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/topictrans/internal/fixture"
	"github.com/cognicore/topictrans/pkg/topictrans/boost"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/scoring"
	"github.com/cognicore/topictrans/pkg/topictrans/store/memstore"
	"github.com/cognicore/topictrans/pkg/topictrans/translate"
	"github.com/cognicore/topictrans/pkg/topictrans/voting"
)

func newEngine(t *testing.T, cfg translate.Config) (*Engine, string) {
	t.Helper()
	ctx := context.Background()
	engine := New(Options{Store: memstore.New(), Config: cfg})
	t.Cleanup(func() { engine.Close() })

	if err := engine.ImportDictionary(ctx, "aviation", fixture.DictionaryWithMeta()); err != nil {
		t.Fatalf("import dictionary: %v", err)
	}
	id, err := engine.ImportModel(ctx, fixture.Model())
	if err != nil {
		t.Fatalf("import model: %v", err)
	}
	return engine, id
}

func TestRunStoresModelAndRun(t *testing.T) {
	ctx := context.Background()
	cfg := translate.DefaultConfig()
	cfg.Voting = voting.PCombSum
	cfg.TopCandidateLimit = 3
	engine, modelID := newEngine(t, cfg)

	res, err := engine.Run(ctx, RunRequest{ModelID: modelID, Dictionary: "aviation", Normalize: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Model.Vocabulary().Language() != "de" {
		t.Errorf("expected de model, got %q", res.Model.Vocabulary().Language())
	}
	for topic := 0; topic < res.Model.TopicCount(); topic++ {
		if sum := floats.Sum(res.Model.Topic(topic)); math.Abs(sum-1) > 1e-9 {
			t.Errorf("topic %d: expected normalized sum 1, got %v", topic, sum)
		}
	}

	stored, err := engine.LoadModel(ctx, res.ModelID)
	if err != nil {
		t.Fatalf("load result: %v", err)
	}
	if stored.Vocabulary().Len() != res.Model.Vocabulary().Len() {
		t.Errorf("expected %d stored words, got %d", res.Model.Vocabulary().Len(), stored.Vocabulary().Len())
	}

	runs, err := engine.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].SourceModelID != modelID || runs[0].ResultModelID != res.ModelID || runs[0].Voting != "PCombSum" {
		t.Errorf("unexpected run %+v", runs[0])
	}
}

func TestRunMissingInputs(t *testing.T) {
	ctx := context.Background()
	engine, modelID := newEngine(t, translate.DefaultConfig())

	if _, err := engine.Run(ctx, RunRequest{ModelID: "nope", Dictionary: "aviation"}); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for model, got %v", err)
	}
	if _, err := engine.Run(ctx, RunRequest{ModelID: modelID, Dictionary: "nope"}); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for dictionary, got %v", err)
	}
}

func TestRunUsesStoredWeights(t *testing.T) {
	ctx := context.Background()
	cfg := translate.DefaultConfig()
	cfg.NGramB = &translate.NGramWeights{Config: boost.NGramConfig{Factor: 1, Method: scoring.BoostLinear}}
	engine, modelID := newEngine(t, cfg)

	plain, err := engine.Run(ctx, RunRequest{ModelID: modelID, Dictionary: "aviation"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := engine.store.SaveWordWeights(ctx, "de", map[string]float64{"Tragfläche": 3}); err != nil {
		t.Fatalf("save weights: %v", err)
	}
	weighted, err := engine.Run(ctx, RunRequest{ModelID: modelID, Dictionary: "aviation"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	id, ok := weighted.Model.Vocabulary().ID("Tragfläche")
	if !ok {
		t.Fatal("expected Tragfläche")
	}
	plainID, _ := plain.Model.Vocabulary().ID("Tragfläche")
	if weighted.Model.Topic(0)[id] <= plain.Model.Topic(0)[plainID] {
		t.Errorf("expected weight to raise Tragfläche, got %v vs %v", weighted.Model.Topic(0)[id], plain.Model.Topic(0)[plainID])
	}
}

func TestTopWords(t *testing.T) {
	top := TopWords(fixture.Model(), 1, 2)
	if len(top) != 2 || top[0].Word != "foil" || top[1].Word != "plane" {
		t.Errorf("expected [foil plane], got %+v", top)
	}
}
