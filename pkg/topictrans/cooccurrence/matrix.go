// Package cooccurrence counts how often meta tags appear together, either
// inside one metadata entry or across the two sides of a dictionary link.
package cooccurrence

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/e-gun/sparse"

	"github.com/cognicore/topictrans/pkg/topictrans/dictionary"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/metavec"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
)

// NormalizeMode selects the divisor used to scale counts.
type NormalizeMode int

const (
	NormalizeMax NormalizeMode = iota
	NormalizeSum
)

func (m NormalizeMode) String() string {
	switch m {
	case NormalizeMax:
		return "Max"
	case NormalizeSum:
		return "Sum"
	}
	return fmt.Sprintf("NormalizeMode(%d)", int(m))
}

// ParseNormalizeMode resolves "max" or "sum"; the empty string is Max.
func ParseNormalizeMode(name string) (NormalizeMode, error) {
	switch strings.ToLower(name) {
	case "", "max":
		return NormalizeMax, nil
	case "sum":
		return NormalizeSum, nil
	}
	return 0, fmt.Errorf("unknown normalize mode %q: %w", name, internalerr.ErrInvalidConfig)
}

func (m NormalizeMode) divisor(values iter.Seq[float64]) float64 {
	var out float64
	first := true
	for v := range values {
		if math.IsNaN(v) {
			continue
		}
		switch m {
		case NormalizeSum:
			out += v
		default:
			if first || v > out {
				out = v
			}
		}
		first = false
	}
	return out
}

// Matrix maps every tag of a template to the vector of its co-occurring tags.
type Matrix struct {
	template *metavec.Template
	rows     map[tags.Tag]*metavec.Vector
}

// Template returns the template shared by the matrix rows.
func (m *Matrix) Template() *metavec.Template { return m.template }

// Row returns the co-occurrence vector of tag.
func (m *Matrix) Row(tag tags.Tag) (*metavec.Vector, bool) {
	v, ok := m.rows[tag]
	return v, ok
}

// Len returns the number of rows.
func (m *Matrix) Len() int { return len(m.rows) }

func (m *Matrix) values() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, tag := range m.template.Tags() {
			row, ok := m.rows[tag]
			if !ok {
				continue
			}
			for _, v := range row.Iter() {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Normalize divides every cell by the matrix-wide divisor of mode. Empty
// matrices and a zero divisor leave the matrix untouched.
func (m *Matrix) Normalize(mode NormalizeMode) {
	if len(m.rows) == 0 {
		return
	}
	d := mode.divisor(m.values())
	if d == 0 {
		return
	}
	for _, row := range m.rows {
		row.DivScalarAssign(d)
	}
}

func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteString("Matrix(")
	for _, tag := range m.template.Tags() {
		row, ok := m.rows[tag]
		if !ok || row.IsZero() {
			continue
		}
		fmt.Fprintf(&b, "%s -> %s, ", tag, row)
	}
	b.WriteString(")")
	return b.String()
}

func newCounts() *sparse.DOK {
	return sparse.NewDOK(tags.MetaDictArrayLength, tags.MetaDictArrayLength)
}

func inc(counts *sparse.DOK, i, j int, by float64) {
	counts.Set(i, j, counts.At(i, j)+by)
}

// project turns the dense tag x tag counts into template rows.
func project(counts *sparse.DOK, template *metavec.Template) (*Matrix, error) {
	out := &Matrix{template: template, rows: make(map[tags.Tag]*metavec.Vector, template.Len())}
	raw := make([]float64, tags.MetaDictArrayLength)
	for _, tag := range template.Tags() {
		for j := range raw {
			raw[j] = counts.At(tag.Index(), j)
		}
		v, err := metavec.Create(template, raw)
		if err != nil {
			return nil, fmt.Errorf("co-occurrence row %s: %w", tag, err)
		}
		out.rows[tag] = v
	}
	return out, nil
}

func acrossLinks(pairs iter.Seq2[*dictionary.Metadata, *dictionary.Metadata], weighted bool) *sparse.DOK {
	counts := newCounts()
	for a, b := range pairs {
		ca, cb := a.Counts(), b.Counts()
		for i, na := range ca {
			if na == 0 {
				continue
			}
			for j, nb := range cb {
				if nb == 0 {
					continue
				}
				if weighted {
					inc(counts, i, j, float64(nb))
				} else {
					inc(counts, i, j, 1)
				}
			}
		}
	}
	return counts
}

// WithOtherClassesAToB counts, for every A-side tag, the B-side tag counts of
// the linked entries. The whole matrix is normalised with mode.
func WithOtherClassesAToB(pairs iter.Seq2[*dictionary.Metadata, *dictionary.Metadata], template *metavec.Template, mode NormalizeMode) (*Matrix, error) {
	m, err := project(acrossLinks(pairs, true), template)
	if err != nil {
		return nil, err
	}
	m.Normalize(mode)
	return m, nil
}

// WithOtherClassesAToBCount is WithOtherClassesAToB counting presence only.
func WithOtherClassesAToBCount(pairs iter.Seq2[*dictionary.Metadata, *dictionary.Metadata], template *metavec.Template, mode NormalizeMode) (*Matrix, error) {
	m, err := project(acrossLinks(pairs, false), template)
	if err != nil {
		return nil, err
	}
	m.Normalize(mode)
	return m, nil
}

// WithOtherClasses counts tags appearing together inside single entries.
// Each row is normalised on its own.
func WithOtherClasses(metas iter.Seq[*dictionary.Metadata], template *metavec.Template, mode NormalizeMode) (*Matrix, error) {
	counts := newCounts()
	for meta := range metas {
		c := meta.Counts()
		for i, ni := range c {
			if ni == 0 {
				continue
			}
			for j, nj := range c {
				if nj != 0 {
					inc(counts, i, j, 1)
				}
			}
		}
	}
	m, err := project(counts, template)
	if err != nil {
		return nil, err
	}
	for _, row := range m.rows {
		if d := mode.divisor(valuesOf(row)); d != 0 {
			row.DivScalarAssign(d)
		}
	}
	return m, nil
}

func valuesOf(v *metavec.Vector) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, x := range v.Iter() {
			if !yield(x) {
				return
			}
		}
	}
}
