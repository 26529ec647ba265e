package stopwords

import (
	"errors"
	"reflect"
	"testing"
	"testing/fstest"
)

func TestEmbedded(t *testing.T) {
	e, err := NewEmbedded()
	if err != nil {
		t.Fatalf("NewEmbedded failed: %v", err)
	}
	if got := e.Languages(); !reflect.DeepEqual(got, []string{"de", "en", "fr", "pl"}) {
		t.Errorf("unexpected languages %v", got)
	}

	tests := []struct {
		lang string
		word string
	}{
		{"en", "the"},
		{"EN", "yourselves"},
		{"pl", "się"},
		{"de", "und"},
		{"fr", "les"},
	}
	for _, tt := range tests {
		set, err := e.StopWords(tt.lang)
		if err != nil {
			t.Fatalf("StopWords(%s) failed: %v", tt.lang, err)
		}
		if _, ok := set[tt.word]; !ok {
			t.Errorf("%s: expected %q to be a stop word", tt.lang, tt.word)
		}
	}
}

func TestUnknownLanguage(t *testing.T) {
	e, _ := NewEmbedded()
	if _, err := e.StopWords("xx"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("expected ErrUnknownLanguage, got %v", err)
	}
}

func TestLoadDefaultsLanguageToFileName(t *testing.T) {
	fsys := fstest.MapFS{
		"words/it.yaml":  {Data: []byte("words: [il, Lo]\n")},
		"words/spanish.yaml": {Data: []byte("language: es\nwords: [el]\n")},
	}
	e, err := Load(fsys, "words")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	set, err := e.StopWords("it")
	if err != nil {
		t.Fatalf("StopWords failed: %v", err)
	}
	if _, ok := set["lo"]; !ok {
		t.Error("expected words to be lower-cased")
	}
	if _, err := e.StopWords("es"); err != nil {
		t.Errorf("expected language from file content, got %v", err)
	}

	broken := fstest.MapFS{"words/x.yaml": {Data: []byte("words: [a\n")}}
	if _, err := Load(broken, "words"); err == nil {
		t.Error("expected unmarshal error")
	}
}
