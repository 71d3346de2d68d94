package cooccurrence

import (
	"errors"
	"testing"

	"github.com/cognicore/topictrans/pkg/topictrans/dictionary"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/metavec"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
)

var (
	aviat = tags.DomainAviat.Tag()
	engin = tags.DomainEngin.Tag()
	film  = tags.DomainFilm.Tag()
)

// plane -> Flugzeug (Aviat, Engin x2), wing -> Tragfläche (Aviat)
func linkedDictionary() *dictionary.Memory {
	d := dictionary.NewMemory("en", "de")
	a, b := d.Insert("plane", "Flugzeug")
	d.MetadataA().Add(a, "", aviat)
	d.MetadataB().Add(b, "", aviat, engin)
	d.MetadataB().Add(b, "dict1", engin)
	a, b = d.Insert("wing", "Tragfläche")
	d.MetadataA().Add(a, "", aviat, film)
	d.MetadataB().Add(b, "", aviat)
	return d
}

func cell(t *testing.T, m *Matrix, row, col tags.Tag) float64 {
	t.Helper()
	v, ok := m.Row(row)
	if !ok {
		t.Fatalf("missing row %s", row)
	}
	x, ok := v.Get(col)
	if !ok {
		t.Fatalf("missing column %s", col)
	}
	return x
}

func TestWithOtherClassesAToB(t *testing.T) {
	f := metavec.NewFactory()
	tmpl := f.Template([]tags.Tag{aviat, engin, film})
	d := linkedDictionary()

	m, err := WithOtherClassesAToB(dictionary.MetaPairs(d), tmpl, NormalizeMax)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// raw: Aviat->Aviat 2, Aviat->Engin 2, Film->Aviat 1; max 2
	if got := cell(t, m, aviat, aviat); got != 1 {
		t.Errorf("expected Aviat/Aviat 1, got %f", got)
	}
	if got := cell(t, m, aviat, engin); got != 1 {
		t.Errorf("expected Aviat/Engin 1, got %f", got)
	}
	if got := cell(t, m, film, aviat); got != 0.5 {
		t.Errorf("expected Film/Aviat 0.5, got %f", got)
	}
	if got := cell(t, m, engin, aviat); got != 0 {
		t.Errorf("expected Engin/Aviat 0, got %f", got)
	}
}

func TestWithOtherClassesAToBCountSum(t *testing.T) {
	f := metavec.NewFactory()
	tmpl := f.Template([]tags.Tag{aviat, engin, film})
	d := linkedDictionary()

	m, err := WithOtherClassesAToBCount(dictionary.MetaPairs(d), tmpl, NormalizeSum)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// raw presence: Aviat->Aviat 2, Aviat->Engin 1, Film->Aviat 1; sum 4
	if got := cell(t, m, aviat, aviat); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
	if got := cell(t, m, aviat, engin); got != 0.25 {
		t.Errorf("expected 0.25, got %f", got)
	}
}

func TestNormalizeEmptyIsNoop(t *testing.T) {
	f := metavec.NewFactory()
	tmpl := f.Template([]tags.Tag{aviat})
	d := dictionary.NewMemory("en", "de")
	m, err := WithOtherClassesAToB(dictionary.MetaPairs(d), tmpl, NormalizeSum)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := cell(t, m, aviat, aviat); got != 0 {
		t.Errorf("expected zero cell, got %f", got)
	}
}

func TestWithOtherClasses(t *testing.T) {
	f := metavec.NewFactory()
	tmpl := f.Template([]tags.Tag{aviat, film})
	d := linkedDictionary()
	metas := func(yield func(*dictionary.Metadata) bool) {
		for id := 0; id < d.LenA(); id++ {
			if m, ok := d.MetaA(id); ok && !yield(m) {
				return
			}
		}
	}
	m, err := WithOtherClasses(metas, tmpl, NormalizeMax)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// Aviat row: Aviat 2, Film 1 -> scaled by 2
	if got := cell(t, m, aviat, film); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
	if got := cell(t, m, film, film); got != 1 {
		t.Errorf("expected 1, got %f", got)
	}
}

func TestParseNormalizeMode(t *testing.T) {
	if m, err := ParseNormalizeMode("Sum"); err != nil || m != NormalizeSum {
		t.Errorf("expected Sum, got %v %v", m, err)
	}
	if _, err := ParseNormalizeMode("median"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
