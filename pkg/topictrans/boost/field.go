// Package boost computes the metadata driven score adjustments applied to
// source probabilities (vertical), to source/target pairs (horizontal) and
// per language (n-gram weights).
package boost

import (
	"github.com/cognicore/topictrans/pkg/topictrans/metavec"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
)

// FieldConfig selects the tags a booster looks at. No fields means every
// tag; Invert selects every tag except Fields.
type FieldConfig struct {
	Fields []tags.Tag
	Invert bool
}

// Template resolves the configured tags into a shared template.
func (c FieldConfig) Template(f *metavec.Factory) *metavec.Template {
	if len(c.Fields) == 0 {
		return f.All()
	}
	if !c.Invert {
		return f.Template(c.Fields)
	}
	excluded := make(map[tags.Tag]bool, len(c.Fields))
	for _, t := range c.Fields {
		excluded[t] = true
	}
	kept := make([]tags.Tag, 0, tags.MetaDictArrayLength-len(excluded))
	for _, t := range tags.All() {
		if !excluded[t] {
			kept = append(kept, t)
		}
	}
	return f.Template(kept)
}
