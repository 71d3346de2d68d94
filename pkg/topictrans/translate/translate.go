package translate

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/topictrans/pkg/topictrans/boost"
	"github.com/cognicore/topictrans/pkg/topictrans/dictionary"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/metavec"
	"github.com/cognicore/topictrans/pkg/topictrans/provider"
	"github.com/cognicore/topictrans/pkg/topictrans/scoring"
	"github.com/cognicore/topictrans/pkg/topictrans/topicmodel"
	"github.com/cognicore/topictrans/pkg/topictrans/voting"
)

// run carries everything shared by the topics of one translation.
type run struct {
	cfg      Config
	model    *topicmodel.Model
	specific *dictionary.Memory
	booster  *boost.Booster
	vars     provider.VariableProvider
	global   *voting.Context
	log      *slog.Logger
}

// Translate maps model onto the B side of dict. The returned model shares the
// topic count of model, uses the B language and has one column per word that
// was emitted by at least one topic.
func Translate(ctx context.Context, model *topicmodel.Model, dict dictionary.Reader, cfg Config, vars provider.VariableProvider) (*topicmodel.Model, error) {
	r, err := prepare(model, dict, cfg, vars)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	topics, err := r.translateTopics(ctx)
	if err != nil {
		return nil, err
	}
	out, err := Reassemble(topics, r.specific, r.epsilon(), model)
	if err != nil {
		return nil, err
	}
	r.log.Info("translation finished",
		"topics", out.TopicCount(),
		"vocabulary", out.Vocabulary().Len(),
		"duration", time.Since(start))
	return out, nil
}

func prepare(model *topicmodel.Model, dict dictionary.Reader, cfg Config, vars provider.VariableProvider) (*run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if vars == nil {
		vars = provider.Noop{}
	}

	langA, langB := dict.Languages()
	if lang := model.Vocabulary().Language(); lang != "" && langA != "" && lang != langA {
		return nil, &LanguageError{Model: lang, DictA: langA, DictB: langB}
	}
	if dict.IsEmptyAToB() {
		return nil, &DirectionError{Direction: AToB}
	}
	if dict.IsEmptyBToA() {
		return nil, &DirectionError{Direction: BToA}
	}

	specific := dictionary.TopicSpecific(dict, model.Vocabulary())
	if specific.IsEmptyAToB() {
		return nil, &DirectionError{Direction: AToB, Optimized: true}
	}
	if specific.IsEmptyBToA() {
		return nil, &DirectionError{Direction: BToA, Optimized: true}
	}
	log.Info("topic specific dictionary",
		"words_a", specific.LenA(), "words_b", specific.LenB(), "links", specific.Len())

	factory := cfg.Templates
	if factory == nil {
		factory = metavec.NewFactory()
	}
	booster, err := buildBooster(cfg, specific, dict, model, factory)
	if err != nil {
		return nil, err
	}

	r := &run{
		cfg:      cfg,
		model:    model,
		specific: specific,
		booster:  booster,
		vars:     vars,
		log:      log,
	}

	global := voting.NewContext(nil)
	global.Set(voting.Epsilon, r.epsilon())
	global.Set(voting.VocabularySize, specific.LenA())
	global.Set(voting.TargetVocabularySize, specific.LenB())
	if err := vars.Global(global); err != nil {
		return nil, providerError("global", err)
	}
	r.global = global
	return r, nil
}

func buildBooster(cfg Config, specific *dictionary.Memory, full dictionary.Reader, model *topicmodel.Model, factory *metavec.Factory) (*boost.Booster, error) {
	b := &boost.Booster{}
	if cfg.Vertical != nil {
		v, err := boost.NewVertical(*cfg.Vertical, specific, model, factory)
		if err != nil {
			return nil, fmt.Errorf("vertical booster: %w", err)
		}
		b.Vertical = v
	}
	if cfg.Horizontal != nil {
		h, err := boost.NewHorizontal(*cfg.Horizontal, specific, full, factory)
		if err != nil {
			return nil, fmt.Errorf("horizontal booster: %w", err)
		}
		b.Horizontal = h
	}
	if cfg.NGramA != nil {
		b.LangA = boost.NewNGramForWords(cfg.NGramA.Config, specific.VocabularyA().Words(), cfg.NGramA.Weights)
	}
	if cfg.NGramB != nil {
		b.LangB = boost.NewNGramForWords(cfg.NGramB.Config, specific.VocabularyB().Words(), cfg.NGramB.Weights)
	}
	return b, nil
}

// epsilon is the configured value or just below the smallest source score.
func (r *run) epsilon() float64 {
	if r.cfg.Epsilon != nil {
		return *r.cfg.Epsilon
	}
	if r.booster.Vertical != nil {
		if lo, ok := r.booster.Vertical.Min(); ok {
			return lo - scoring.Epsilon
		}
	}
	lo := math.Inf(1)
	for t := 0; t < r.model.TopicCount(); t++ {
		if row := r.model.Topic(t); len(row) > 0 {
			lo = math.Min(lo, floats.Min(row))
		}
	}
	if math.IsInf(lo, 1) {
		lo = 0
	}
	return lo - scoring.Epsilon
}

func (r *run) limit() int {
	if r.cfg.Parallelism > 0 {
		return r.cfg.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}

// translateTopics returns the candidates of every topic in topic, word and
// candidate order, independent of scheduling.
func (r *run) translateTopics(ctx context.Context) ([][]Candidate, error) {
	n := r.model.TopicCount()
	out := make([][]Candidate, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())
	for t := 0; t < n; t++ {
		g.Go(func() error {
			cands, err := r.translateTopic(ctx, t)
			if err != nil {
				return err
			}
			out[t] = cands
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *run) translateTopic(ctx context.Context, topic int) ([]Candidate, error) {
	stats := r.model.Stats(topic)
	topicCtx := voting.NewContext(r.global)
	topicCtx.Set(voting.TopicMax, stats.Max)
	topicCtx.Set(voting.TopicMin, stats.Min)
	topicCtx.Set(voting.TopicAvg, stats.Avg)
	topicCtx.Set(voting.TopicSum, stats.Sum)
	topicCtx.Set(voting.TopicID, topic)
	if err := r.vars.Topic(topic, topicCtx); err != nil {
		return nil, providerError(fmt.Sprintf("topic %d", topic), err)
	}

	tb := r.booster.ForTopic(topic)
	row := r.model.Topic(topic)
	perWord := make([][]Candidate, len(row))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())
	for word, p := range row {
		if p == 0 {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cands, err := r.translateWord(ctx, topic, word, p, topicCtx, tb)
			if err != nil {
				return &OriginError{TopicID: topic, WordID: word, Err: err}
			}
			perWord[word] = cands
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Candidate
	for _, cands := range perWord {
		out = append(out, cands...)
	}
	r.log.Debug("topic translated", "topic", topic, "candidates", len(out))
	return out, nil
}

// providerError tags a failed provider call so callers can tell it apart
// from a voting failure.
func providerError(level string, err error) error {
	return fmt.Errorf("%s variables: %w: %w", level, internalerr.ErrProvider, err)
}

type voted struct {
	cand Candidate
	ok   bool
}

func (r *run) translateWord(ctx context.Context, topic, word int, p float64, topicCtx *voting.Context, tb boost.TopicBooster) ([]Candidate, error) {
	wordCtx := voting.NewContext(topicCtx)
	if err := r.vars.WordA(word, wordCtx); err != nil {
		return nil, providerError("word", err)
	}
	if err := r.vars.WordInTopicA(topic, word, wordCtx); err != nil {
		return nil, providerError("word in topic", err)
	}

	targets := r.specific.TranslateAToB(word)
	results := make([]voted, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())
	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, ok, err := r.voteForCandidate(topic, word, target, p, wordCtx, tb)
			if err != nil {
				return err
			}
			results[i] = voted{cand: c, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(results)+1)
	for _, res := range results {
		if res.ok {
			out = append(out, res.cand)
		}
	}

	switch r.cfg.KeepOriginalWord {
	case KeepAlways:
		c, err := r.voteForOrigin(topic, word, p, len(targets) > 0, wordCtx, tb)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	case KeepIfNoTranslation:
		if len(targets) == 0 {
			c, err := r.voteForOrigin(topic, word, p, false, wordCtx, tb)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return TopCandidates(out, r.cfg.TopCandidateLimit), nil
}

func (r *run) voterContext(topic int, meta topicmodel.VoterMeta, score float64) (*voting.Context, error) {
	v := voting.NewContext(nil)
	v.Set(voting.ReciprocalRank, 1/float64(meta.Importance))
	v.Set(voting.RealReciprocalRank, 1/float64(meta.Rank))
	v.Set(voting.Rank, meta.Rank)
	v.Set(voting.Importance, meta.Importance)
	v.Set(voting.Score, score)
	v.Set(voting.VoterID, meta.WordID)
	if err := r.vars.WordA(meta.WordID, v); err != nil {
		return nil, providerError(fmt.Sprintf("voter %d", meta.WordID), err)
	}
	if err := r.vars.WordInTopicA(topic, meta.WordID, v); err != nil {
		return nil, providerError(fmt.Sprintf("voter %d in topic", meta.WordID), err)
	}
	return v, nil
}

// voteForCandidate scores target as translation of word. Candidates without
// any voter in the model are dropped (ok is false).
func (r *run) voteForCandidate(topic, word, target int, p float64, wordCtx *voting.Context, tb boost.TopicBooster) (Candidate, bool, error) {
	backs := r.specific.TranslateBToA(target)
	if len(backs) == 0 {
		return Candidate{}, false, nil
	}

	metas := make([]topicmodel.VoterMeta, 0, len(backs))
	for _, id := range backs {
		meta, ok := r.model.VoterMeta(topic, id)
		if !ok {
			continue
		}
		if r.cfg.Threshold != nil && meta.Score < *r.cfg.Threshold {
			continue
		}
		metas = append(metas, meta)
	}

	candCtx := voting.NewContext(wordCtx)
	candCtx.Set(voting.CandidateVoters, len(metas))
	candCtx.Set(voting.HasTranslation, true)
	candCtx.Set(voting.IsOriginWord, false)
	candCtx.Set(voting.ScoreCandidate, tb.Score(p, word, target))
	candCtx.Set(voting.CandidateID, target)
	if err := r.vars.WordB(target, candCtx); err != nil {
		return Candidate{}, false, providerError(fmt.Sprintf("candidate %d", target), err)
	}
	if err := r.vars.WordInTopicB(topic, target, candCtx); err != nil {
		return Candidate{}, false, providerError(fmt.Sprintf("candidate %d in topic", target), err)
	}

	voters := make([]*voting.Context, 0, len(metas))
	for _, meta := range metas {
		v, err := r.voterContext(topic, meta, tb.Score(meta.Score, meta.WordID, target))
		if err != nil {
			return Candidate{}, false, err
		}
		voters = append(voters, v)
	}
	candCtx.Set(voting.NumberOfVoters, len(voters))

	score, err := r.cfg.Voting.Execute(candCtx, voters)
	if err != nil {
		return Candidate{}, false, fmt.Errorf("candidate %d: %w", target, err)
	}
	return Candidate{Target: target, Score: tb.Result(target, score), Source: word}, true, nil
}

// voteForOrigin scores the untranslated source word with itself as the only
// voter.
func (r *run) voteForOrigin(topic, word int, p float64, hasTranslation bool, wordCtx *voting.Context, tb boost.TopicBooster) (Candidate, error) {
	ctx := voting.NewContext(wordCtx)
	ctx.Set(voting.CandidateVoters, 1)
	ctx.Set(voting.HasTranslation, hasTranslation)
	ctx.Set(voting.IsOriginWord, true)
	ctx.Set(voting.ScoreCandidate, p)
	ctx.Set(voting.CandidateID, word)
	ctx.Set(voting.NumberOfVoters, 1)

	meta, ok := r.model.VoterMeta(topic, word)
	if !ok {
		return Candidate{}, fmt.Errorf("no voter data for origin word %d", word)
	}
	v, err := r.voterContext(topic, meta, tb.Vertical(meta.Score, word))
	if err != nil {
		return Candidate{}, err
	}
	score, err := r.cfg.Voting.Execute(ctx, []*voting.Context{v})
	if err != nil {
		return Candidate{}, fmt.Errorf("origin: %w", err)
	}
	return Candidate{Target: word, Origin: true, Score: score, Source: word}, nil
}
