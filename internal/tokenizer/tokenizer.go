// Package tokenizer splits free text into a set of normalized tokens. The
// Tokenizer interface is the pluggable seam spec.md §4.1 describes: the
// engine ships one default implementation (lower-case, split on non-word
// boundaries, per-language stop words, and for English only a light suffix
// stemmer — stronger per-language
// stemming and stop-word packs are deliberately left to a
// caller-supplied Tokenizer, per spec.md §1's scope note).
package tokenizer

import (
	"strings"
	"unicode"

	"github.com/DanieleFedeli/lyra/internal/lang"
	apperrors "github.com/DanieleFedeli/lyra/pkg/errors"
)

// Tokenizer turns free text into a de-duplicated set of tokens for a given
// language. Implementations must be safe for concurrent use.
type Tokenizer interface {
	Tokenize(text string, language lang.Language) (map[string]struct{}, error)
}

// Default is the engine's built-in analyzer: lower-case, split on
// non-letter/non-digit boundaries, remove the language's stop words, and
// (English only) apply a light suffix-stripping stemmer.
type Default struct{}

// NewDefault returns the built-in Tokenizer.
func NewDefault() Default {
	return Default{}
}

// Tokenize implements Tokenizer.
func (Default) Tokenize(text string, language lang.Language) (map[string]struct{}, error) {
	stop, ok := stopWords[language]
	if !ok {
		return nil, apperrors.LanguageNotSupported(string(language))
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		if _, isStop := stop[w]; isStop {
			continue
		}
		normalized := w
		if language == lang.English {
			normalized = stemEnglish(w)
		}
		if normalized == "" {
			continue
		}
		tokens[normalized] = struct{}{}
	}
	return tokens, nil
}
