package store

import (
	"errors"
	"testing"

	"github.com/cognicore/topictrans/internal/fixture"
	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
)

func TestDictionaryRoundTrip(t *testing.T) {
	src := fixture.DictionaryWithMeta()
	data := ExportDictionary("aviation", src)

	if len(data.Links) != fixture.Links {
		t.Errorf("expected %d links, got %d", fixture.Links, len(data.Links))
	}
	if data.LangA != "en" || data.LangB != "de" {
		t.Errorf("expected en/de, got %s/%s", data.LangA, data.LangB)
	}

	got, err := data.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got.LenA() != src.LenA() || got.LenB() != src.LenB() || got.Len() != src.Len() {
		t.Errorf("expected %d/%d/%d, got %d/%d/%d", src.LenA(), src.LenB(), src.Len(), got.LenA(), got.LenB(), got.Len())
	}
	for id := 0; id < src.LenA(); id++ {
		want, have := src.TranslateAToB(id), got.TranslateAToB(id)
		if len(want) != len(have) {
			t.Fatalf("word %d: expected %v, got %v", id, want, have)
		}
		for i := range want {
			if want[i] != have[i] {
				t.Errorf("word %d: expected %v, got %v", id, want, have)
			}
		}
	}

	meta, ok := got.MetaB(3)
	if !ok {
		t.Fatalf("expected metadata on Ebene")
	}
	if n := meta.Count(tags.DomainEngin.Tag()); n != 4 {
		t.Errorf("expected Engin count 4, got %d", n)
	}
	if origins := meta.Origins(); len(origins) != 3 {
		t.Errorf("expected 3 origins, got %v", origins)
	}
}

func TestDictionaryBuildRejectsBadData(t *testing.T) {
	dup := DictionaryData{Name: "dup", WordsA: []string{"a", "a"}}
	if _, err := dup.Build(); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	link := DictionaryData{Name: "link", WordsA: []string{"a"}, WordsB: []string{"b"}, Links: []Link{{A: 0, B: 5}}}
	if _, err := link.Build(); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	tag := DictionaryData{Name: "tag", WordsA: []string{"a"}, MetaA: []MetaEntry{{Tag: "Zeppelin", Count: 1}}}
	if _, err := tag.Build(); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestModelRoundTrip(t *testing.T) {
	src := fixture.Model()
	data := ExportModel("m1", src)
	got, err := data.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got.TopicCount() != 2 || got.Vocabulary().Len() != len(fixture.WordsA) {
		t.Fatalf("expected 2x%d, got %dx%d", len(fixture.WordsA), got.TopicCount(), got.Vocabulary().Len())
	}
	if got.Vocabulary().Language() != "en" {
		t.Errorf("expected en, got %q", got.Vocabulary().Language())
	}
	if got.Topic(1)[9] != src.Topic(1)[9] || got.Counts()[0] != 10 {
		t.Errorf("model values changed")
	}
}

func TestIDGenerator(t *testing.T) {
	g := NewIDGenerator()
	a, b := g.New(), g.New()
	if len(a) != 26 {
		t.Errorf("expected 26 char ULID, got %q", a)
	}
	if a >= b {
		t.Errorf("expected increasing IDs, got %s then %s", a, b)
	}
}
