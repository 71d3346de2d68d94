package seed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/tags"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEntriesJSONL(t *testing.T) {
	path := write(t, "dict.jsonl", `{"a":"plane","b":"Flugzeug","meta_a":{"":["Aviat","Engin"]},"meta_b":{"dict1":["Aviat"]}}
not json
{"a":"plane","b":"Ebene"}
{"a":"","b":"Leer"}

{"a":"aircraft","b":"Flugzeug","meta_b":{"dict2":["Engin"]}}
`)
	entries, err := LoadEntriesJSONL(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	d, err := BuildDictionary("en", "de", entries)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if d.Len() != 3 || d.LenA() != 2 || d.LenB() != 2 {
		t.Errorf("expected 3 links over 2/2 words, got %d over %d/%d", d.Len(), d.LenA(), d.LenB())
	}
	flugzeug, _ := d.WordToIDB("Flugzeug")
	meta, ok := d.MetaB(flugzeug)
	if !ok {
		t.Fatal("expected metadata on Flugzeug")
	}
	if meta.Count(tags.DomainAviat.Tag()) != 1 || meta.Count(tags.DomainEngin.Tag()) != 1 {
		t.Errorf("expected Aviat 1 and Engin 1, got %v", meta.Counts())
	}
}

func TestLoadEntriesJSONLEmpty(t *testing.T) {
	if _, err := LoadEntriesJSONL(write(t, "empty.jsonl", "\n\n")); err == nil {
		t.Error("expected error for file without entries")
	}
	if _, err := LoadEntriesJSONL("/nonexistent/dict.jsonl"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildDictionaryUnknownTag(t *testing.T) {
	_, err := BuildDictionary("en", "de", []Entry{{A: "a", B: "b", MetaA: map[string][]string{"": {"Zeppelin"}}}})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadModelJSON(t *testing.T) {
	path := write(t, "model.json", `{"language":"en","vocabulary":["plane","wing"],"topics":[[0.7,0.3],[0.1,0.9]],"counts":[4,2]}`)
	m, err := LoadModelJSON(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.TopicCount() != 2 || m.Vocabulary().Len() != 2 || m.Vocabulary().Language() != "en" {
		t.Errorf("unexpected model %dx%d %q", m.TopicCount(), m.Vocabulary().Len(), m.Vocabulary().Language())
	}

	bad := write(t, "bad.json", `{"language":"en","vocabulary":["plane"],"topics":[[0.7,0.3]]}`)
	if _, err := LoadModelJSON(bad); !errors.Is(err, internalerr.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}
