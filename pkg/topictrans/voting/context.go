// Package voting scores translation candidates from the back-translations
// ("voters") that support them.
package voting

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

// Variable names written by the translation engine.
const (
	Epsilon              = "epsilon"
	VocabularySize       = "n_voc"
	TargetVocabularySize = "n_voc_target"

	TopicMax = "topic_max"
	TopicMin = "topic_min"
	TopicAvg = "topic_avg"
	TopicSum = "topic_sum"
	TopicID  = "topic_id"

	CandidateVoters = "ct_voters"
	NumberOfVoters  = "n_voters"
	HasTranslation  = "has_translation"
	IsOriginWord    = "is_origin_word"
	ScoreCandidate  = "score_candidate"
	CandidateID     = "candidate_id"

	ReciprocalRank     = "rr"
	RealReciprocalRank = "rr_real"
	Rank               = "rank"
	Importance         = "importance"
	Score              = "score"
	VoterID            = "voter_id"
)

// Context is a layered variable environment. Lookups fall through to the
// parent, so values set on a child shadow the same name further up.
// A Context is not safe for concurrent writes; readers may share a parent.
type Context struct {
	parent *Context
	vars   map[string]any
}

// NewContext creates a context layered on parent (which may be nil).
func NewContext(parent *Context) *Context {
	return &Context{parent: parent, vars: make(map[string]any)}
}

// Set stores a value on this layer. Supported kinds are float64, int, bool
// and string.
func (c *Context) Set(name string, value any) {
	c.vars[name] = value
}

// Lookup finds name on this layer or any parent.
func (c *Context) Lookup(name string) (any, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Float returns name as a number. Integers and booleans convert.
func (c *Context) Float(name string) (float64, error) {
	v, ok := c.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("variable %q not set: %w", name, internalerr.ErrVoting)
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("variable %q is %T, not a number: %w", name, v, internalerr.ErrVoting)
	}
}

// Int returns name as an integer, truncating floats.
func (c *Context) Int(name string) (int, error) {
	f, err := c.Float(name)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Names returns every visible variable name in sorted order.
func (c *Context) Names() []string {
	env := c.Env()
	names := maps.Keys(env)
	slices.Sort(names)
	return names
}

// Env flattens the visible variables into a fresh map.
func (c *Context) Env() map[string]any {
	var layers []*Context
	for cur := c; cur != nil; cur = cur.parent {
		layers = append(layers, cur)
	}
	env := make(map[string]any)
	for i := len(layers) - 1; i >= 0; i-- {
		for k, v := range layers[i].vars {
			env[k] = v
		}
	}
	return env
}
