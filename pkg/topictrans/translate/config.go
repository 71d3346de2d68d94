// Package translate turns a topic model over a source vocabulary into one
// over the target vocabulary of a bilingual dictionary, letting
// back-translations vote on every candidate.
package translate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cognicore/topictrans/pkg/topictrans/boost"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/metavec"
	"github.com/cognicore/topictrans/pkg/topictrans/voting"
)

// KeepOriginalWord decides when the untranslated source word is emitted as a
// candidate of its own.
type KeepOriginalWord int

const (
	KeepNever KeepOriginalWord = iota
	KeepIfNoTranslation
	KeepAlways
)

func (k KeepOriginalWord) String() string {
	switch k {
	case KeepNever:
		return "Never"
	case KeepIfNoTranslation:
		return "IfNoTranslation"
	case KeepAlways:
		return "Always"
	}
	return fmt.Sprintf("KeepOriginalWord(%d)", int(k))
}

// ParseKeepOriginalWord resolves a policy name; the empty string is Never.
func ParseKeepOriginalWord(name string) (KeepOriginalWord, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "")) {
	case "", "never":
		return KeepNever, nil
	case "ifnotranslation":
		return KeepIfNoTranslation, nil
	case "always":
		return KeepAlways, nil
	}
	return 0, fmt.Errorf("unknown keep_original_word %q: %w", name, internalerr.ErrInvalidConfig)
}

// NGramWeights feeds a language booster with per-word weights.
type NGramWeights struct {
	Config  boost.NGramConfig
	Weights map[string]float64
}

// Config controls a translation run.
type Config struct {
	Voting voting.Method
	// Epsilon fills target words a topic did not produce. Nil derives it
	// from the smallest (boosted) source score.
	Epsilon *float64
	// Threshold drops voters whose topic probability is below it.
	Threshold         *float64
	KeepOriginalWord  KeepOriginalWord
	TopCandidateLimit int

	Vertical   *boost.VerticalConfig
	Horizontal *boost.HorizontalConfig
	NGramA     *NGramWeights
	NGramB     *NGramWeights

	// Parallelism bounds concurrent topics and words; 0 uses GOMAXPROCS.
	Parallelism int
	// Templates shares the tag template cache across runs; nil creates one
	// per run.
	Templates *metavec.Factory
	Logger    *slog.Logger
}

// DefaultConfig votes with CombSum, drops untranslatable words and applies no
// boosters.
func DefaultConfig() Config {
	return Config{
		Voting:           voting.CombSum,
		KeepOriginalWord: KeepNever,
	}
}

// Validate checks the parts of the config that are not checked on use.
func (c Config) Validate() error {
	if c.Voting == nil {
		return fmt.Errorf("voting method missing: %w", internalerr.ErrInvalidConfig)
	}
	if c.TopCandidateLimit < 0 {
		return fmt.Errorf("top_candidate_limit %d: %w", c.TopCandidateLimit, internalerr.ErrInvalidConfig)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism %d: %w", c.Parallelism, internalerr.ErrInvalidConfig)
	}
	if h := c.Horizontal; h != nil && h.SmoothingAlpha != nil {
		if a := *h.SmoothingAlpha; a < 0 || a > 1 {
			return fmt.Errorf("smoothing_alpha %v outside [0,1]: %w", a, internalerr.ErrInvalidConfig)
		}
	}
	return nil
}
