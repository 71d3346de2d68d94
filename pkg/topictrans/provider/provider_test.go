package provider

import (
	"errors"
	"testing"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/voting"
)

func TestMapProvidesPerLevel(t *testing.T) {
	p := NewMap()
	if err := p.SetGlobal("lambda", 0.5); err != nil {
		t.Fatal(err)
	}
	if err := p.SetTopic(1, "weight", 2.0); err != nil {
		t.Fatal(err)
	}
	if err := p.SetWordInTopicA(1, 7, "idf", 3.0); err != nil {
		t.Fatal(err)
	}

	global := voting.NewContext(nil)
	if err := p.Global(global); err != nil {
		t.Fatal(err)
	}
	topic := voting.NewContext(global)
	if err := p.Topic(1, topic); err != nil {
		t.Fatal(err)
	}
	word := voting.NewContext(topic)
	if err := p.WordInTopicA(1, 7, word); err != nil {
		t.Fatal(err)
	}

	for name, want := range map[string]float64{"lambda": 0.5, "weight": 2, "idf": 3} {
		got, err := word.Float(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != want {
			t.Errorf("%s: expected %f, got %f", name, want, got)
		}
	}

	other := voting.NewContext(nil)
	if err := p.WordInTopicA(0, 7, other); err != nil {
		t.Fatal(err)
	}
	if _, ok := other.Lookup("idf"); ok {
		t.Error("expected no variable for a different topic")
	}
}

func TestMapRejectsEmptyName(t *testing.T) {
	if err := NewMap().SetWordB(1, "", 1); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
