// Package metavec provides sparse per-tag vectors. A vector only stores the
// tags of its Template; templates are interned by a Factory so vectors built
// for the same tag list share one template and can be combined.
package metavec

import (
	"strings"
	"sync"

	"github.com/cognicore/topictrans/pkg/topictrans/tags"
)

// Template is an ordered, deduplicated tag subset with a reverse lookup table.
// Templates are immutable once built.
type Template struct {
	tags    []tags.Tag
	reverse [tags.MetaDictArrayLength]int16
}

func newTemplate(list []tags.Tag) *Template {
	t := &Template{tags: make([]tags.Tag, 0, len(list))}
	for i := range t.reverse {
		t.reverse[i] = -1
	}
	for _, tag := range list {
		if !tag.Valid() || t.reverse[tag] >= 0 {
			continue
		}
		t.reverse[tag] = int16(len(t.tags))
		t.tags = append(t.tags, tag)
	}
	return t
}

// Len returns the number of tags in the template.
func (t *Template) Len() int { return len(t.tags) }

// Tags returns the template tags in first-occurrence order. Callers must not modify it.
func (t *Template) Tags() []tags.Tag { return t.tags }

// Position returns the vector position of tag, if the template contains it.
func (t *Template) Position(tag tags.Tag) (int, bool) {
	if !tag.Valid() {
		return 0, false
	}
	p := t.reverse[tag]
	return int(p), p >= 0
}

// Contains reports whether tag is part of the template.
func (t *Template) Contains(tag tags.Tag) bool {
	_, ok := t.Position(tag)
	return ok
}

// Factory interns templates keyed by the exact ordered tag list it was asked for.
// It is safe for concurrent use.
type Factory struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewFactory creates an empty template cache.
func NewFactory() *Factory {
	return &Factory{templates: make(map[string]*Template)}
}

func cacheKey(list []tags.Tag) string {
	var b strings.Builder
	b.Grow(len(list) * 2)
	for _, t := range list {
		b.WriteByte(byte(t >> 8))
		b.WriteByte(byte(t))
	}
	return b.String()
}

// Template returns the shared template for list, building it on first use.
func (f *Factory) Template(list []tags.Tag) *Template {
	key := cacheKey(list)

	f.mu.RLock()
	t, ok := f.templates[key]
	f.mu.RUnlock()
	if ok {
		return t
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.templates[key]; ok {
		return t
	}
	t = newTemplate(list)
	f.templates[key] = t
	return t
}

// All returns the template covering every tag in index order.
func (f *Factory) All() *Template {
	return f.Template(tags.All())
}

// Len returns the number of cached templates.
func (f *Factory) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.templates)
}
