// Package config reads translation settings and booster weights from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/topictrans/pkg/topictrans/boost"
	"github.com/cognicore/topictrans/pkg/topictrans/cooccurrence"
	"github.com/cognicore/topictrans/pkg/topictrans/divergence"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/scoring"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
	"github.com/cognicore/topictrans/pkg/topictrans/translate"
	"github.com/cognicore/topictrans/pkg/topictrans/voting"
)

// TranslateFile is the YAML form of a translation configuration.
type TranslateFile struct {
	Voting            string          `yaml:"voting"`
	VotingLimit       int             `yaml:"voting_limit"`
	Epsilon           *float64        `yaml:"epsilon"`
	Threshold         *float64        `yaml:"threshold"`
	KeepOriginalWord  string          `yaml:"keep_original_word"`
	TopCandidateLimit int             `yaml:"top_candidate_limit"`
	Vertical          *VerticalFile   `yaml:"vertical"`
	Horizontal        *HorizontalFile `yaml:"horizontal"`
	NGramA            *NGramFile      `yaml:"ngram_a"`
	NGramB            *NGramFile      `yaml:"ngram_b"`
	Parallelism       int             `yaml:"parallelism"`
}

// VerticalFile configures the vertical booster.
type VerticalFile struct {
	Fields            []string `yaml:"fields"`
	InvertFields      bool     `yaml:"invert_fields"`
	Divergence        string   `yaml:"divergence"`
	Alpha             *float64 `yaml:"alpha"`
	ScoreModifier     string   `yaml:"score_modifier"`
	OnlyPositiveBoost bool     `yaml:"only_positive_boost"`
	BoostNorm         string   `yaml:"boost_norm"`
	Factor            float64  `yaml:"factor"`
}

// HorizontalFile configures the horizontal booster.
type HorizontalFile struct {
	Fields            []string `yaml:"fields"`
	InvertFields      bool     `yaml:"invert_fields"`
	Divergence        string   `yaml:"divergence"`
	Alpha             *float64 `yaml:"alpha"`
	NormalizeMode     string   `yaml:"normalize_mode"`
	SmoothingAlpha    *float64 `yaml:"smoothing_alpha"`
	LinearTransformed bool     `yaml:"linear_transformed"`
	MeanMethod        string   `yaml:"mean_method"`
}

// NGramFile configures a language booster. Weights name a YAML file mapping
// words to weights, resolved by the Loader.
type NGramFile struct {
	Factor      float64 `yaml:"factor"`
	BoostMethod string  `yaml:"boost_method"`
	Norm        string  `yaml:"norm"`
	Weights     string  `yaml:"weights"`
}

// DefaultTranslateFile mirrors translate.DefaultConfig.
func DefaultTranslateFile() *TranslateFile {
	return &TranslateFile{
		Voting:           voting.CombSum.String(),
		KeepOriginalWord: translate.KeepNever.String(),
	}
}

// LoadTranslateFile reads a translation configuration. Missing keys keep the
// defaults of DefaultTranslateFile.
func LoadTranslateFile(path string) (*TranslateFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tf := DefaultTranslateFile()
	if err := yaml.Unmarshal(data, tf); err != nil {
		return nil, err
	}
	return tf, nil
}

// LoadWeights reads a word to weight mapping.
func LoadWeights(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	weights := map[string]float64{}
	if err := yaml.Unmarshal(data, &weights); err != nil {
		return nil, err
	}
	return weights, nil
}

func invalid(key string, err error) error {
	return fmt.Errorf("%s: %w", key, err)
}

func fields(names []string, invert bool, key string) (boost.FieldConfig, error) {
	ts, err := tags.ParseAll(names)
	if err != nil {
		return boost.FieldConfig{}, invalid(key, fmt.Errorf("%v: %w", err, internalerr.ErrInvalidConfig))
	}
	return boost.FieldConfig{Fields: ts, Invert: invert}, nil
}

func calculator(name string, alpha *float64, key string) (divergence.Calculator, error) {
	if name == "" {
		name = divergence.KindKL.String()
	}
	kind, err := divergence.ParseKind(name)
	if err != nil {
		return divergence.Calculator{}, invalid(key, err)
	}
	c := divergence.NewCalculator(kind)
	if alpha != nil {
		c = c.WithAlpha(*alpha)
	}
	return c, nil
}

// Build converts the file into a translate.Config. Language booster weights
// are left empty; the Loader fills them.
func (tf *TranslateFile) Build() (translate.Config, error) {
	cfg := translate.DefaultConfig()

	m, err := voting.Parse(tf.Voting, tf.VotingLimit)
	if err != nil {
		return cfg, invalid("voting", err)
	}
	cfg.Voting = m
	cfg.Epsilon = tf.Epsilon
	cfg.Threshold = tf.Threshold
	if cfg.KeepOriginalWord, err = translate.ParseKeepOriginalWord(tf.KeepOriginalWord); err != nil {
		return cfg, invalid("keep_original_word", err)
	}
	cfg.TopCandidateLimit = tf.TopCandidateLimit
	cfg.Parallelism = tf.Parallelism

	if v := tf.Vertical; v != nil {
		vc := &boost.VerticalConfig{OnlyPositive: v.OnlyPositiveBoost, Factor: v.Factor}
		if vc.Fields, err = fields(v.Fields, v.InvertFields, "vertical.fields"); err != nil {
			return cfg, err
		}
		if vc.Divergence, err = calculator(v.Divergence, v.Alpha, "vertical.divergence"); err != nil {
			return cfg, err
		}
		if vc.Modifier, err = boost.ParseScoreModifier(v.ScoreModifier); err != nil {
			return cfg, invalid("vertical.score_modifier", err)
		}
		if vc.Norm, err = scoring.ParseBoostNorm(v.BoostNorm); err != nil {
			return cfg, invalid("vertical.boost_norm", err)
		}
		cfg.Vertical = vc
	}

	if h := tf.Horizontal; h != nil {
		hc := &boost.HorizontalConfig{SmoothingAlpha: h.SmoothingAlpha, LinearTransformed: h.LinearTransformed}
		if hc.Fields, err = fields(h.Fields, h.InvertFields, "horizontal.fields"); err != nil {
			return cfg, err
		}
		if hc.Divergence, err = calculator(h.Divergence, h.Alpha, "horizontal.divergence"); err != nil {
			return cfg, err
		}
		if hc.Normalize, err = cooccurrence.ParseNormalizeMode(h.NormalizeMode); err != nil {
			return cfg, invalid("horizontal.normalize_mode", err)
		}
		if hc.Mean, err = scoring.ParseMeanMethod(h.MeanMethod); err != nil {
			return cfg, invalid("horizontal.mean_method", err)
		}
		cfg.Horizontal = hc
	}

	if cfg.NGramA, err = tf.NGramA.build("ngram_a"); err != nil {
		return cfg, err
	}
	if cfg.NGramB, err = tf.NGramB.build("ngram_b"); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (n *NGramFile) build(key string) (*translate.NGramWeights, error) {
	if n == nil {
		return nil, nil
	}
	method, err := scoring.ParseBoostMethod(n.BoostMethod)
	if err != nil {
		return nil, invalid(key+".boost_method", err)
	}
	norm, err := scoring.ParseBoostNorm(n.Norm)
	if err != nil {
		return nil, invalid(key+".norm", err)
	}
	factor := n.Factor
	if factor == 0 {
		factor = 1
	}
	return &translate.NGramWeights{
		Config:  boost.NGramConfig{Factor: factor, Method: method, Norm: norm},
		Weights: map[string]float64{},
	}, nil
}
