package tokenizer

import (
	"testing"

	"github.com/DanieleFedeli/lyra/internal/lang"
)

func TestTokenizeDropsStopWordsAndLowercases(t *testing.T) {
	tok := NewDefault()
	got, err := tok.Tokenize("The Quick Brown Fox", lang.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, w := range []string{"quick", "brown", "fox"} {
		if _, ok := got[w]; !ok {
			t.Fatalf("expected token %q, got %v", w, got)
		}
	}
	if _, ok := got["the"]; ok {
		t.Fatal("stop word \"the\" should have been dropped")
	}
}

func TestTokenizeStemsEnglishPlurals(t *testing.T) {
	tok := NewDefault()
	got, err := tok.Tokenize("running dogs and ponies", lang.English)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, w := range []string{"run", "dog", "pony"} {
		if _, ok := got[w]; !ok {
			t.Fatalf("expected stemmed token %q, got %v", w, got)
		}
	}
}

func TestTokenizeUnsupportedLanguage(t *testing.T) {
	tok := NewDefault()
	if _, err := tok.Tokenize("bonjour", lang.Language("klingon")); err == nil {
		t.Fatal("expected an error for an unsupported language")
	}
}

func TestTokenizeFrenchDropsStopWordsOnly(t *testing.T) {
	tok := NewDefault()
	got, err := tok.Tokenize("Le chat et la souris", lang.French)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got["chat"]; !ok {
		t.Fatalf("expected \"chat\" to survive, got %v", got)
	}
	if _, ok := got["le"]; ok {
		t.Fatal("stop word \"le\" should have been dropped")
	}
}
