package vocab

import "testing"

func TestAddAssignsContiguousIDs(t *testing.T) {
	v := New("en")
	if id := v.Add("plane"); id != 0 {
		t.Errorf("expected 0, got %d", id)
	}
	if id := v.Add("aircraft"); id != 1 {
		t.Errorf("expected 1, got %d", id)
	}
	if id := v.Add("plane"); id != 0 {
		t.Errorf("re-adding should return the existing id, got %d", id)
	}
	if v.Len() != 2 {
		t.Errorf("expected 2 words, got %d", v.Len())
	}
	if w, ok := v.Word(1); !ok || w != "aircraft" {
		t.Errorf("expected aircraft, got %q", w)
	}
	if _, ok := v.Word(5); ok {
		t.Error("out of range id should not resolve")
	}
	if v.Language() != "en" {
		t.Errorf("expected language en, got %q", v.Language())
	}
}

func TestFromWords(t *testing.T) {
	v := FromWords("de", []string{"Flugzeug", "Flieger", "Flugzeug"})
	if v.Len() != 2 {
		t.Fatalf("expected 2 words, got %d", v.Len())
	}
	if id, ok := v.ID("Flieger"); !ok || id != 1 {
		t.Errorf("expected Flieger at 1, got %d", id)
	}
}
