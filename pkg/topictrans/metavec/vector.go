package metavec

import (
	"fmt"
	"iter"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
)

// Vector is a numeric vector laid out by a Template.
type Vector struct {
	template *Template
	values   []float64
}

// Create picks the template's tags out of a dense per-tag array.
func Create(t *Template, raw []float64) (*Vector, error) {
	if len(raw) != tags.MetaDictArrayLength {
		return nil, fmt.Errorf("create vector: got %d values, expected %d: %w",
			len(raw), tags.MetaDictArrayLength, internalerr.ErrIllegalValueCount)
	}
	v := Zeros(t)
	for i, tag := range t.tags {
		v.values[i] = raw[tag]
	}
	return v, nil
}

// Zeros returns a zero vector for t.
func Zeros(t *Template) *Vector {
	return &Vector{template: t, values: make([]float64, len(t.tags))}
}

// FromValues wraps values already in template order.
func FromValues(t *Template, values []float64) (*Vector, error) {
	if len(values) != len(t.tags) {
		return nil, fmt.Errorf("vector from values: got %d values, template has %d: %w",
			len(values), len(t.tags), internalerr.ErrIllegalValueCount)
	}
	return &Vector{template: t, values: slices.Clone(values)}, nil
}

// Template returns the template handle shared by compatible vectors.
func (v *Vector) Template() *Template { return v.template }

// Len returns the number of stored components.
func (v *Vector) Len() int { return len(v.values) }

// Get returns the value stored for tag.
func (v *Vector) Get(tag tags.Tag) (float64, bool) {
	p, ok := v.template.Position(tag)
	if !ok {
		return 0, false
	}
	return v.values[p], true
}

// Values returns a copy of the components in template order.
func (v *Vector) Values() []float64 { return slices.Clone(v.values) }

// Iter yields (tag, value) in template order.
func (v *Vector) Iter() iter.Seq2[tags.Tag, float64] {
	return func(yield func(tags.Tag, float64) bool) {
		for i, tag := range v.template.tags {
			if !yield(tag, v.values[i]) {
				return
			}
		}
	}
}

// IterSorted yields (tag, value) in ascending tag index order.
func (v *Vector) IterSorted() iter.Seq2[tags.Tag, float64] {
	return func(yield func(tags.Tag, float64) bool) {
		for tag := 0; tag < tags.MetaDictArrayLength; tag++ {
			p := v.template.reverse[tag]
			if p < 0 {
				continue
			}
			if !yield(tags.Tag(tag), v.values[p]) {
				return
			}
		}
	}
}

// IsZero reports whether v is empty or every component is exactly 0.
func (v *Vector) IsZero() bool {
	for _, x := range v.values {
		if x != 0 {
			return false
		}
	}
	return true
}

func (v *Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for tag, value := range v.IterSorted() {
		if value == 0 {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %g", tag, value)
	}
	b.WriteByte(']')
	return b.String()
}

func (v *Vector) mustShare(o *Vector, op string) {
	if v.template != o.template {
		panic(fmt.Sprintf("metavec: %s of vectors with different templates", op))
	}
}

func (v *Vector) zip(o *Vector, op string, f func(a, b float64) float64) *Vector {
	v.mustShare(o, op)
	out := &Vector{template: v.template, values: make([]float64, len(v.values))}
	for i := range v.values {
		out.values[i] = f(v.values[i], o.values[i])
	}
	return out
}

func (v *Vector) zipAssign(o *Vector, op string, f func(a, b float64) float64) {
	v.mustShare(o, op)
	for i := range v.values {
		v.values[i] = f(v.values[i], o.values[i])
	}
}

func (v *Vector) mapped(f func(a float64) float64) *Vector {
	out := &Vector{template: v.template, values: make([]float64, len(v.values))}
	for i, x := range v.values {
		out.values[i] = f(x)
	}
	return out
}

func (v *Vector) mapAssign(f func(a float64) float64) {
	for i, x := range v.values {
		v.values[i] = f(x)
	}
}

// Add returns v + o. Both vectors must share one template handle.
func (v *Vector) Add(o *Vector) *Vector {
	return v.zip(o, "add", func(a, b float64) float64 { return a + b })
}

// Sub returns v - o.
func (v *Vector) Sub(o *Vector) *Vector {
	return v.zip(o, "sub", func(a, b float64) float64 { return a - b })
}

// Mul returns the component-wise product.
func (v *Vector) Mul(o *Vector) *Vector {
	return v.zip(o, "mul", func(a, b float64) float64 { return a * b })
}

// Div returns the component-wise quotient.
func (v *Vector) Div(o *Vector) *Vector {
	return v.zip(o, "div", func(a, b float64) float64 { return a / b })
}

// Neg returns -v.
func (v *Vector) Neg() *Vector {
	return v.mapped(func(a float64) float64 { return -a })
}

// AddAssign adds o to v in place.
func (v *Vector) AddAssign(o *Vector) {
	v.zipAssign(o, "add", func(a, b float64) float64 { return a + b })
}

// SubAssign subtracts o from v in place.
func (v *Vector) SubAssign(o *Vector) {
	v.zipAssign(o, "sub", func(a, b float64) float64 { return a - b })
}

// MulAssign multiplies v by o in place.
func (v *Vector) MulAssign(o *Vector) {
	v.zipAssign(o, "mul", func(a, b float64) float64 { return a * b })
}

// DivAssign divides v by o in place.
func (v *Vector) DivAssign(o *Vector) {
	v.zipAssign(o, "div", func(a, b float64) float64 { return a / b })
}

// AddScalar returns v + s.
func (v *Vector) AddScalar(s float64) *Vector {
	return v.mapped(func(a float64) float64 { return a + s })
}

// SubScalar returns v - s.
func (v *Vector) SubScalar(s float64) *Vector {
	return v.mapped(func(a float64) float64 { return a - s })
}

// Scale returns v * s.
func (v *Vector) Scale(s float64) *Vector {
	return v.mapped(func(a float64) float64 { return a * s })
}

// DivScalar returns v / s.
func (v *Vector) DivScalar(s float64) *Vector {
	return v.mapped(func(a float64) float64 { return a / s })
}

// AddScalarAssign adds s to every component.
func (v *Vector) AddScalarAssign(s float64) {
	v.mapAssign(func(a float64) float64 { return a + s })
}

// SubScalarAssign subtracts s from every component.
func (v *Vector) SubScalarAssign(s float64) {
	v.mapAssign(func(a float64) float64 { return a - s })
}

// ScaleAssign multiplies every component by s.
func (v *Vector) ScaleAssign(s float64) {
	v.mapAssign(func(a float64) float64 { return a * s })
}

// DivScalarAssign divides every component by s.
func (v *Vector) DivScalarAssign(s float64) {
	v.mapAssign(func(a float64) float64 { return a / s })
}
