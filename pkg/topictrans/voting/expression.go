package voting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

// VotersVariable names the list of voter environments visible to a
// candidate-level expression.
const VotersVariable = "voters"

// Expression is a user supplied formula. In per-voter mode the formula is
// evaluated once per voter, with the voter's variables shadowing the
// candidate's, and the results are summed. Otherwise it is evaluated once
// with `voters` bound to the list of voter variable maps.
type Expression struct {
	source   string
	perVoter bool
	program  *vm.Program
}

// NewExpression compiles a candidate-level formula.
func NewExpression(source string) (*Expression, error) {
	return compile(source, false)
}

// NewVoterExpression compiles a formula summed over the voters.
func NewVoterExpression(source string) (*Expression, error) {
	return compile(source, true)
}

func compile(source string, perVoter bool) (*Expression, error) {
	program, err := expr.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile voting expression %q: %v: %w", source, err, internalerr.ErrInvalidConfig)
	}
	return &Expression{source: source, perVoter: perVoter, program: program}, nil
}

func (e *Expression) String() string {
	if e.perVoter {
		return "voter(" + e.source + ")"
	}
	return e.source
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	return 0, fmt.Errorf("expression result %v (%T) is not a number: %w", v, v, internalerr.ErrVoting)
}

func (e *Expression) run(env map[string]any) (float64, error) {
	out, err := expr.Run(e.program, env)
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %v: %w", e.source, err, internalerr.ErrVoting)
	}
	return toFloat(out)
}

// Execute implements Method.
func (e *Expression) Execute(ctx *Context, voters []*Context) (float64, error) {
	if !e.perVoter {
		env := ctx.Env()
		list := make([]map[string]any, len(voters))
		for i, v := range voters {
			list[i] = v.Env()
		}
		env[VotersVariable] = list
		return e.run(env)
	}

	base := ctx.Env()
	var total float64
	for _, v := range voters {
		env := make(map[string]any, len(base))
		for k, x := range base {
			env[k] = x
		}
		for k, x := range v.Env() {
			env[k] = x
		}
		r, err := e.run(env)
		if err != nil {
			return 0, err
		}
		total += r
	}
	return total, nil
}

// Parse builds a method from its configured name: a built-in name, or a
// formula prefixed with "expr:" (candidate level) or "voter:" (summed per
// voter). A positive limit wraps the result in Limited.
func Parse(name string, limit int) (Method, error) {
	name = strings.TrimSpace(name)
	var (
		m   Method
		err error
	)
	switch {
	case strings.HasPrefix(name, "expr:"):
		m, err = NewExpression(strings.TrimPrefix(name, "expr:"))
	case strings.HasPrefix(name, "voter:"):
		m, err = NewVoterExpression(strings.TrimPrefix(name, "voter:"))
	default:
		var b BuiltIn
		b, err = ParseBuiltIn(name)
		m = b
	}
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		l, err := NewLimited(limit, m)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return m, nil
}
