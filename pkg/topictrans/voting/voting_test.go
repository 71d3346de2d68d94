package voting

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func candidate(nVoters int) *Context {
	global := NewContext(nil)
	global.Set(Epsilon, 1e-6)
	ctx := NewContext(global)
	ctx.Set(ScoreCandidate, 0.3)
	ctx.Set(NumberOfVoters, nVoters)
	return ctx
}

func voter(rank int, importance int, score float64) *Context {
	v := NewContext(nil)
	v.Set(Rank, rank)
	v.Set(Importance, importance)
	v.Set(ReciprocalRank, 1/float64(importance))
	v.Set(RealReciprocalRank, 1/float64(rank))
	v.Set(Score, score)
	return v
}

func TestContextLayering(t *testing.T) {
	global := NewContext(nil)
	global.Set(Epsilon, 0.1)
	global.Set(TopicID, 1)
	local := NewContext(global)
	local.Set(TopicID, 2)

	if v, _ := local.Float(TopicID); v != 2 {
		t.Errorf("expected local shadowing, got %f", v)
	}
	if v, _ := local.Float(Epsilon); v != 0.1 {
		t.Errorf("expected fallthrough to global, got %f", v)
	}
	if _, err := local.Float("missing"); !errors.Is(err, internalerr.ErrVoting) {
		t.Errorf("expected ErrVoting, got %v", err)
	}
	if names := local.Names(); len(names) != 2 || names[0] != Epsilon {
		t.Errorf("unexpected names %v", names)
	}
}

func TestBuiltIns(t *testing.T) {
	voters := []*Context{voter(1, 1, 0.4), voter(2, 2, 0.1)}
	cases := []struct {
		method BuiltIn
		want   float64
	}{
		{OriginalScore, 0.3},
		{Voters, 2},
		{CombSum, 0.5},
		{GCombSum, 0.2},
		{CombSumTop, 0.5},
		{CombSumPow2, 0.17},
		{CombMax, 0.4},
		{RR, 1.5},
		{RRPow2, 1.25},
		{CombSumRR, 0.45},
		{CombSumRRPow2, 0.425},
		{CombSumPow2RR, 0.165},
		{CombSumPow2RRPow2, 0.1625},
		{ExpCombMnz, 2.17},
		{WCombSum, (0.5 + 0.25) / 3},
		{WCombSumG, (0.5 + 0.2) / 3},
		{WGCombSum, math.Exp((math.Log(0.4) + math.Log(0.1) + math.Log(0.25)) / 3)},
		{PCombSum, 0.25 + 1},
	}
	for _, c := range cases {
		got, err := c.method.Execute(candidate(2), voters)
		if err != nil {
			t.Fatalf("%v: %v", c.method, err)
		}
		if !near(got, c.want) {
			t.Errorf("%v: expected %f, got %f", c.method, c.want, got)
		}
	}
}

func TestBuiltInsEmptyVoters(t *testing.T) {
	for _, b := range BuiltIns() {
		got, err := b.Execute(candidate(0), nil)
		if err != nil {
			t.Fatalf("%v: %v", b, err)
		}
		switch b {
		case OriginalScore:
			if got != 0.3 {
				t.Errorf("expected candidate score, got %f", got)
			}
		case Voters:
			if got != 0 {
				t.Errorf("expected 0 voters, got %f", got)
			}
		default:
			if got != 1e-6 {
				t.Errorf("%v: expected epsilon, got %g", b, got)
			}
		}
	}
}

func TestParseBuiltIn(t *testing.T) {
	b, err := ParseBuiltIn("pcombsum")
	if err != nil || b != PCombSum {
		t.Errorf("expected PCombSum, got %v %v", b, err)
	}
	if _, err := ParseBuiltIn("nope"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if len(BuiltIns()) != 18 {
		t.Errorf("expected 18 built-ins, got %d", len(BuiltIns()))
	}
}

func TestLimitedKeepsBestRanked(t *testing.T) {
	voters := []*Context{voter(3, 2, 0.1), voter(1, 1, 0.4), voter(2, 2, 0.2)}
	l, err := NewLimited(2, CombSum)
	if err != nil {
		t.Fatal(err)
	}
	ctx := candidate(3)
	got, err := l.Execute(ctx, voters)
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 0.6) {
		t.Errorf("expected 0.6, got %f", got)
	}
	if n, _ := ctx.Int(NumberOfVoters); n != 2 {
		t.Errorf("expected n_voters 2, got %d", n)
	}
	if s, _ := voters[0].Float(Score); s != 0.1 {
		t.Error("expected caller's voter order untouched")
	}
	if _, err := NewLimited(0, CombSum); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestExpressions(t *testing.T) {
	voters := []*Context{voter(1, 1, 0.4), voter(2, 2, 0.1)}

	perVoter, err := NewVoterExpression("score * rr + score_candidate")
	if err != nil {
		t.Fatal(err)
	}
	got, err := perVoter.Execute(candidate(2), voters)
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, 0.45+0.6) {
		t.Errorf("expected 1.05, got %f", got)
	}

	global, err := NewExpression("len(voters) * 2 + n_voters")
	if err != nil {
		t.Fatal(err)
	}
	got, err = global.Execute(candidate(2), voters)
	if err != nil {
		t.Fatal(err)
	}
	if got != 6 {
		t.Errorf("expected 6, got %f", got)
	}
}

func TestExpressionErrors(t *testing.T) {
	if _, err := NewExpression("score +"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected compile error, got %v", err)
	}
	e, err := NewExpression(`"text"`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Execute(candidate(0), nil); err == nil {
		t.Error("expected non-numeric result to fail")
	}
}

func TestParse(t *testing.T) {
	m, err := Parse("CombSum", 3)
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "CombSum(3)" {
		t.Errorf("expected CombSum(3), got %s", m)
	}
	m, err = Parse("voter: score", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.(*Expression); !ok {
		t.Errorf("expected expression, got %T", m)
	}
}
