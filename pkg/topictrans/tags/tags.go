// Package tags enumerates the metadata tags (domains and registers) attached to
// dictionary entries and defines the fixed tag index layout used by every
// per-tag vector in the engine.
package tags

import (
	"fmt"
	"strings"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
)

// MetaDictArrayLength is the number of distinct meta tags. Every dense per-tag
// array in the engine has this length.
const MetaDictArrayLength = DomainCount + RegisterCount

// Tag is a meta tag index: a domain or a register, flattened into one range.
type Tag uint16

// IsDomain reports whether t refers to a Domain.
func (t Tag) IsDomain() bool { return int(t) < DomainCount }

// IsRegister reports whether t refers to a Register.
func (t Tag) IsRegister() bool {
	return int(t) >= DomainCount && int(t) < MetaDictArrayLength
}

// Valid reports whether t is inside the tag index range.
func (t Tag) Valid() bool { return int(t) < MetaDictArrayLength }

// Index returns the array position of the tag.
func (t Tag) Index() int { return int(t) }

func (t Tag) String() string {
	switch {
	case t.IsDomain():
		return "Domain:" + Domain(t).String()
	case t.IsRegister():
		return "Register:" + Register(int(t)-DomainCount).String()
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

var all = func() []Tag {
	out := make([]Tag, MetaDictArrayLength)
	for i := range out {
		out[i] = Tag(i)
	}
	return out
}()

// All returns every tag in index order. The returned slice must not be modified.
func All() []Tag { return all }

// Parse resolves a tag name. Accepted forms are "Domain:Aviat", "Register:Techn"
// and the bare value name, where domains win over registers on collisions
// (e.g. "Admin").
func Parse(name string) (Tag, error) {
	kind, value, qualified := strings.Cut(strings.TrimSpace(name), ":")
	if !qualified {
		value, kind = kind, ""
	}
	if kind == "" || strings.EqualFold(kind, "domain") {
		for i, n := range domainNames {
			if strings.EqualFold(n, value) {
				return Domain(i).Tag(), nil
			}
		}
	}
	if kind == "" || strings.EqualFold(kind, "register") {
		for i, n := range registerNames {
			if strings.EqualFold(n, value) {
				return Register(i).Tag(), nil
			}
		}
	}
	return 0, fmt.Errorf("parse tag %q: %w", name, internalerr.ErrInvalidInput)
}

// ParseAll resolves a list of tag names.
func ParseAll(names []string) ([]Tag, error) {
	out := make([]Tag, 0, len(names))
	for _, n := range names {
		t, err := Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Counts is the per-tag occurrence count of one word's metadata.
type Counts [MetaDictArrayLength]uint32

// Get returns the count for t.
func (c *Counts) Get(t Tag) uint32 {
	if !t.Valid() {
		return 0
	}
	return c[t]
}

// IsEmpty reports whether no tag was counted.
func (c *Counts) IsEmpty() bool {
	for _, v := range c {
		if v != 0 {
			return false
		}
	}
	return true
}
