package voting

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/scoring"
)

// Method turns a candidate context and its voters into a score. The candidate
// context may be modified (Limited rewrites n_voters); voters are read-only.
type Method interface {
	Execute(ctx *Context, voters []*Context) (float64, error)
	String() string
}

// BuiltIn enumerates the voting methods implemented natively.
type BuiltIn int

const (
	OriginalScore BuiltIn = iota
	Voters
	CombSum
	GCombSum
	CombSumTop
	CombSumPow2
	CombMax
	RR
	RRPow2
	CombSumRR
	CombSumRRPow2
	CombSumPow2RR
	CombSumPow2RRPow2
	ExpCombMnz
	WCombSum
	WCombSumG
	WGCombSum
	PCombSum
)

var builtInNames = []string{
	"OriginalScore", "Voters", "CombSum", "GCombSum", "CombSumTop", "CombSumPow2",
	"CombMax", "RR", "RRPow2", "CombSumRR", "CombSumRRPow2", "CombSumPow2RR",
	"CombSumPow2RRPow2", "ExpCombMnz", "WCombSum", "WCombSumG", "WGCombSum", "PCombSum",
}

// BuiltIns lists every built-in method.
func BuiltIns() []BuiltIn {
	out := make([]BuiltIn, len(builtInNames))
	for i := range out {
		out[i] = BuiltIn(i)
	}
	return out
}

func (b BuiltIn) String() string {
	if int(b) >= 0 && int(b) < len(builtInNames) {
		return builtInNames[b]
	}
	return fmt.Sprintf("BuiltIn(%d)", int(b))
}

// ParseBuiltIn resolves a built-in by name, case-insensitively.
func ParseBuiltIn(name string) (BuiltIn, error) {
	for i, n := range builtInNames {
		if strings.EqualFold(n, name) {
			return BuiltIn(i), nil
		}
	}
	return 0, fmt.Errorf("unknown voting method %q: %w", name, internalerr.ErrInvalidConfig)
}

func collect(voters []*Context, f func(v *Context) (float64, error)) ([]float64, error) {
	out := make([]float64, len(voters))
	for i, v := range voters {
		x, err := f(v)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

func scoreOf(v *Context) (float64, error) { return v.Float(Score) }

func rrOf(v *Context) (float64, error) { return v.Float(ReciprocalRank) }

func scoreTimesRR(scorePow, rrPow float64) func(v *Context) (float64, error) {
	return func(v *Context) (float64, error) {
		s, err := v.Float(Score)
		if err != nil {
			return 0, err
		}
		rr, err := v.Float(ReciprocalRank)
		if err != nil {
			return 0, err
		}
		return math.Pow(s, scorePow) * math.Pow(rr, rrPow), nil
	}
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

func avg(values []float64) float64 {
	if len(values) == 1 {
		return values[0]
	}
	return sum(values) / float64(len(values))
}

func geometricAvg(values []float64) float64 {
	if len(values) == 1 {
		return values[0]
	}
	var s float64
	for _, v := range values {
		s += math.Log(v)
	}
	return math.Exp(s / float64(len(values)))
}

func maxOf(values []float64) float64 {
	best := math.Inf(-1)
	for _, v := range values {
		if !math.IsNaN(v) && v > best {
			best = v
		}
	}
	return best
}

// sumTop sums the n largest normal values. ok is false when none is normal.
func sumTop(values []float64, n int) (float64, bool) {
	normal := make([]float64, 0, len(values))
	for _, v := range values {
		if scoring.IsNormal(v) {
			normal = append(normal, v)
		}
	}
	if len(normal) == 0 {
		return 0, false
	}
	slices.SortFunc(normal, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	if len(normal) > n {
		normal = normal[:n]
	}
	return sum(normal), true
}

// Execute implements Method. Apart from OriginalScore and Voters, an empty
// voter list yields the context epsilon.
func (b BuiltIn) Execute(ctx *Context, voters []*Context) (float64, error) {
	switch b {
	case OriginalScore:
		return ctx.Float(ScoreCandidate)
	case Voters:
		return ctx.Float(NumberOfVoters)
	}
	if len(voters) == 0 {
		return ctx.Float(Epsilon)
	}

	var pick func(v *Context) (float64, error)
	switch b {
	case RR:
		pick = rrOf
	case RRPow2:
		pick = func(v *Context) (float64, error) {
			rr, err := v.Float(ReciprocalRank)
			return rr * rr, err
		}
	case CombSumPow2, ExpCombMnz:
		pick = scoreTimesRR(2, 0)
	case CombSumRR:
		pick = scoreTimesRR(1, 1)
	case CombSumRRPow2:
		pick = scoreTimesRR(1, 2)
	case CombSumPow2RR:
		pick = scoreTimesRR(2, 1)
	case CombSumPow2RRPow2:
		pick = scoreTimesRR(2, 2)
	default:
		pick = scoreOf
	}
	values, err := collect(voters, pick)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", b, err)
	}

	switch b {
	case CombSum, RR, RRPow2, CombSumPow2, CombSumRR, CombSumRRPow2, CombSumPow2RR, CombSumPow2RRPow2:
		return sum(values), nil
	case GCombSum:
		return geometricAvg(values), nil
	case CombSumTop:
		if s, ok := sumTop(values, 2); ok {
			return s, nil
		}
		return ctx.Float(Epsilon)
	case CombMax:
		return maxOf(values), nil
	case ExpCombMnz:
		n, err := ctx.Int(NumberOfVoters)
		if err != nil {
			return 0, fmt.Errorf("%v: %w", b, err)
		}
		return sum(values) + float64(n), nil
	case WCombSum, WCombSumG, WGCombSum:
		n, err := ctx.Int(NumberOfVoters)
		if err != nil {
			return 0, fmt.Errorf("%v: %w", b, err)
		}
		denom := float64(n + 1)
		switch b {
		case WCombSum:
			return (sum(values) + avg(values)) / denom, nil
		case WCombSumG:
			return (sum(values) + geometricAvg(values)) / denom, nil
		default:
			var logs float64
			for _, v := range values {
				logs += math.Log(v)
			}
			return math.Exp((logs + math.Log(avg(values))) / denom), nil
		}
	case PCombSum:
		n, err := ctx.Float(NumberOfVoters)
		if err != nil {
			return 0, fmt.Errorf("%v: %w", b, err)
		}
		rrs, err := collect(voters, rrOf)
		if err != nil {
			return 0, fmt.Errorf("%v: %w", b, err)
		}
		return sum(values)/n + maxOf(rrs), nil
	}
	return 0, fmt.Errorf("voting method %d: %w", int(b), internalerr.ErrInvalidConfig)
}

// Limited keeps only the Limit best ranked voters before delegating and
// rewrites n_voters accordingly.
type Limited struct {
	Limit  int
	Method Method
}

// NewLimited wraps m. A limit below 1 is rejected.
func NewLimited(limit int, m Method) (*Limited, error) {
	if limit < 1 {
		return nil, fmt.Errorf("voting limit %d: %w", limit, internalerr.ErrInvalidConfig)
	}
	return &Limited{Limit: limit, Method: m}, nil
}

func (l *Limited) String() string { return fmt.Sprintf("%s(%d)", l.Method, l.Limit) }

// Execute implements Method.
func (l *Limited) Execute(ctx *Context, voters []*Context) (float64, error) {
	if l.Limit < len(voters) {
		ranked := make([]*Context, len(voters))
		copy(ranked, voters)
		ranks := make(map[*Context]int, len(ranked))
		for _, v := range ranked {
			r, err := v.Int(Rank)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", l, err)
			}
			ranks[v] = r
		}
		slices.SortStableFunc(ranked, func(a, b *Context) int { return ranks[a] - ranks[b] })
		voters = ranked[:l.Limit]
	}
	ctx.Set(NumberOfVoters, len(voters))
	return l.Method.Execute(ctx, voters)
}
