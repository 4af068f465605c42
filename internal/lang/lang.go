// Package lang enumerates the languages the default tokenizer understands.
// Per-language stemmers and stop-word packs are an external-collaborator
// concern (spec.md §1); this package only pins down the enumerated set a
// caller may select, and the one language (English) the default analyzer
// actually stems rather than merely stop-word-filters.
package lang

import apperrors "github.com/DanieleFedeli/lyra/pkg/errors"

// Language is one of the enumerated languages known to the engine.
type Language string

const (
	English    Language = "english"
	French     Language = "french"
	Italian    Language = "italian"
	Spanish    Language = "spanish"
	German     Language = "german"
	Portuguese Language = "portuguese"
	Dutch      Language = "dutch"
)

// Default is the language used when a caller does not specify one.
const Default = English

var known = map[Language]bool{
	English:    true,
	French:     true,
	Italian:    true,
	Spanish:    true,
	German:     true,
	Portuguese: true,
	Dutch:      true,
}

// Parse validates and normalizes a language string. An empty string
// resolves to Default. An unrecognized language is reported as
// apperrors.LanguageNotSupported, spec.md §7's structured error kind, so it
// surfaces through pkg/errors.HTTPStatusCode rather than as a bare string.
func Parse(s string) (Language, error) {
	if s == "" {
		return Default, nil
	}
	l := Language(s)
	if !known[l] {
		return "", apperrors.LanguageNotSupported(s)
	}
	return l, nil
}

// All returns every enumerated language, for callers that want to list them.
func All() []Language {
	return []Language{English, French, Italian, Spanish, German, Portuguese, Dutch}
}
