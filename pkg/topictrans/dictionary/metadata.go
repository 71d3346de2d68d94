package dictionary

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/cognicore/topictrans/pkg/topictrans/tags"
)

// Metadata holds the tags attached to one word, counted per contributing
// sub-dictionary. The empty origin is the general (unattributed) entry.
type Metadata struct {
	origins map[string]map[tags.Tag]uint32
}

// Counts sums the tag counts over every origin.
func (m *Metadata) Counts() tags.Counts {
	var c tags.Counts
	if m == nil {
		return c
	}
	for _, counts := range m.origins {
		for tag, n := range counts {
			c[tag] += n
		}
	}
	return c
}

// Count returns the summed count of one tag.
func (m *Metadata) Count(t tags.Tag) uint32 {
	if m == nil {
		return 0
	}
	var n uint32
	for _, counts := range m.origins {
		n += counts[t]
	}
	return n
}

// Origins returns the sub-dictionary names in sorted order.
func (m *Metadata) Origins() []string {
	if m == nil {
		return nil
	}
	out := maps.Keys(m.origins)
	slices.Sort(out)
	return out
}

// TagsFor returns the tags recorded for one origin with their counts.
func (m *Metadata) TagsFor(origin string) map[tags.Tag]uint32 {
	if m == nil {
		return nil
	}
	return m.origins[origin]
}

// IsEmpty reports whether no tag was recorded.
func (m *Metadata) IsEmpty() bool {
	if m == nil {
		return true
	}
	for _, counts := range m.origins {
		if len(counts) > 0 {
			return false
		}
	}
	return true
}

// MetadataStore is a flat arena of metadata indexed by word id. Mutation goes
// through the store together with the id.
type MetadataStore struct {
	metas []Metadata
	set   []bool
}

// NewMetadataStore creates an empty arena.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{}
}

func (s *MetadataStore) grow(id int) {
	for len(s.metas) <= id {
		s.metas = append(s.metas, Metadata{})
		s.set = append(s.set, false)
	}
}

// Add counts each tag once more for word id under origin ("" = general).
func (s *MetadataStore) Add(id int, origin string, ts ...tags.Tag) {
	s.grow(id)
	m := &s.metas[id]
	if m.origins == nil {
		m.origins = make(map[string]map[tags.Tag]uint32)
	}
	counts := m.origins[origin]
	if counts == nil {
		counts = make(map[tags.Tag]uint32)
		m.origins[origin] = counts
	}
	for _, t := range ts {
		if t.Valid() {
			counts[t]++
		}
	}
	s.set[id] = true
}

// SetCount overwrites the count of one tag for word id under origin.
func (s *MetadataStore) SetCount(id int, origin string, t tags.Tag, n uint32) {
	s.Add(id, origin)
	if n == 0 {
		delete(s.metas[id].origins[origin], t)
		return
	}
	s.metas[id].origins[origin][t] = n
}

// Get returns the metadata of word id.
func (s *MetadataStore) Get(id int) (*Metadata, bool) {
	if id < 0 || id >= len(s.metas) || !s.set[id] {
		return nil, false
	}
	return &s.metas[id], true
}

// share stores m under id. The tag maps are shared with the source, not copied.
func (s *MetadataStore) share(id int, m *Metadata) {
	s.grow(id)
	s.metas[id] = *m
	s.set[id] = true
}

// Len returns the arena size (highest id with metadata + 1).
func (s *MetadataStore) Len() int { return len(s.metas) }
