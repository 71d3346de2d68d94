package topictrans

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cognicore/topictrans/pkg/topictrans/dictionary"
	"github.com/cognicore/topictrans/pkg/topictrans/provider"
	"github.com/cognicore/topictrans/pkg/topictrans/store"
	"github.com/cognicore/topictrans/pkg/topictrans/topicmodel"
	"github.com/cognicore/topictrans/pkg/topictrans/translate"
)

// Engine translates stored topic models with stored dictionaries and keeps
// the results and a run history in the store.
type Engine struct {
	store    store.Store
	ids      *store.IDGenerator
	cfg      translate.Config
	provider provider.VariableProvider
	log      *slog.Logger
}

// Options configures an Engine
type Options struct {
	Store    store.Store
	Config   translate.Config
	Provider provider.VariableProvider
	Logger   *slog.Logger
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	cfg := opts.Config
	if cfg.Logger == nil {
		cfg.Logger = log
	}
	return &Engine{
		store:    opts.Store,
		ids:      store.NewIDGenerator(),
		cfg:      cfg,
		provider: opts.Provider,
		log:      log,
	}
}

// Close cleanly shuts down the Engine
func (e *Engine) Close() error {
	return e.store.Close()
}

// ImportDictionary stores d under name.
func (e *Engine) ImportDictionary(ctx context.Context, name string, d dictionary.Reader) error {
	return e.store.SaveDictionary(ctx, store.ExportDictionary(name, d))
}

// ImportModel stores m under a new ID and returns it.
func (e *Engine) ImportModel(ctx context.Context, m *topicmodel.Model) (string, error) {
	id := e.ids.New()
	if err := e.store.SaveModel(ctx, store.ExportModel(id, m)); err != nil {
		return "", err
	}
	return id, nil
}

// LoadModel reads a stored model.
func (e *Engine) LoadModel(ctx context.Context, id string) (*topicmodel.Model, error) {
	data, err := e.store.LoadModel(ctx, id)
	if err != nil {
		return nil, err
	}
	return data.Build()
}

// RunRequest names the inputs of a translation
type RunRequest struct {
	ModelID    string
	Dictionary string
	// Normalize rescales every translated topic to sum 1 before saving.
	Normalize bool
}

// RunResult describes a finished translation
type RunResult struct {
	RunID    string
	ModelID  string
	Model    *topicmodel.Model
	Duration time.Duration
}

// Run translates a stored model, saves the result under a new ID and
// records the run.
func (e *Engine) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	model, err := e.LoadModel(ctx, req.ModelID)
	if err != nil {
		return RunResult{}, fmt.Errorf("load model: %w", err)
	}
	dictData, err := e.store.LoadDictionary(ctx, req.Dictionary)
	if err != nil {
		return RunResult{}, fmt.Errorf("load dictionary: %w", err)
	}
	dict, err := dictData.Build()
	if err != nil {
		return RunResult{}, fmt.Errorf("load dictionary: %w", err)
	}

	cfg, err := e.withStoredWeights(ctx, dictData.LangA, dictData.LangB)
	if err != nil {
		return RunResult{}, err
	}

	start := time.Now()
	out, err := translate.Translate(ctx, model, dict, cfg, e.provider)
	if err != nil {
		return RunResult{}, err
	}
	if req.Normalize {
		out = topicmodel.Normalize(out)
	}
	took := time.Since(start)

	res := RunResult{RunID: e.ids.New(), ModelID: e.ids.New(), Model: out, Duration: took}
	if err := e.store.SaveModel(ctx, store.ExportModel(res.ModelID, out)); err != nil {
		return RunResult{}, fmt.Errorf("save model: %w", err)
	}
	run := store.Run{
		ID:            res.RunID,
		SourceModelID: req.ModelID,
		Dictionary:    req.Dictionary,
		ResultModelID: res.ModelID,
		Voting:        cfg.Voting.String(),
		Topics:        out.TopicCount(),
		Vocabulary:    out.Vocabulary().Len(),
		StartedAt:     start,
		Duration:      took,
	}
	if err := e.store.RecordRun(ctx, run); err != nil {
		return RunResult{}, fmt.Errorf("record run: %w", err)
	}
	e.log.Info("run recorded", "run", res.RunID, "model", res.ModelID, "duration", took)
	return res, nil
}

// withStoredWeights fills language boosters configured without weights from
// the store.
func (e *Engine) withStoredWeights(ctx context.Context, langA, langB string) (translate.Config, error) {
	cfg := e.cfg
	if cfg.NGramA != nil && len(cfg.NGramA.Weights) == 0 {
		w, err := e.store.LoadWordWeights(ctx, langA)
		if err != nil {
			return cfg, fmt.Errorf("load %s weights: %w", langA, err)
		}
		a := *cfg.NGramA
		a.Weights = w
		cfg.NGramA = &a
	}
	if cfg.NGramB != nil && len(cfg.NGramB.Weights) == 0 {
		w, err := e.store.LoadWordWeights(ctx, langB)
		if err != nil {
			return cfg, fmt.Errorf("load %s weights: %w", langB, err)
		}
		b := *cfg.NGramB
		b.Weights = w
		cfg.NGramB = &b
	}
	return cfg, nil
}

// Runs lists recorded runs, newest first.
func (e *Engine) Runs(ctx context.Context, limit int) ([]store.Run, error) {
	return e.store.ListRuns(ctx, limit)
}

// WordScore is a word with its probability in a topic
type WordScore struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// TopWords returns the n most probable words of a topic, ties by word id.
func TopWords(m *topicmodel.Model, topic, n int) []WordScore {
	row := m.Topic(topic)
	ids := make([]int, len(row))
	for i := range ids {
		ids[i] = i
	}
	sort.SliceStable(ids, func(a, b int) bool { return row[ids[a]] > row[ids[b]] })
	if n > 0 && n < len(ids) {
		ids = ids[:n]
	}
	out := make([]WordScore, len(ids))
	for i, id := range ids {
		w, _ := m.Vocabulary().Word(id)
		out[i] = WordScore{Word: w, Score: row[id]}
	}
	return out
}
