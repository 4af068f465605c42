package tokenizer

import "github.com/DanieleFedeli/lyra/internal/lang"

// stopWords holds, per language, the set of tokens the default analyzer
// discards before indexing. English carries the full list the stemmer was
// tuned against; the remaining enumerated languages carry a smaller,
// hand-picked list since no stemmer pack backs them (spec.md §1) — they
// still benefit from dropping their most common function words.
var stopWords = map[lang.Language]map[string]struct{}{
	lang.English: set(
		"a", "an", "and", "are", "as", "at", "be", "but", "by",
		"for", "if", "in", "into", "is", "it", "no", "not", "of",
		"on", "or", "such", "that", "the", "their", "then", "there",
		"these", "they", "this", "to", "was", "will", "with", "from",
		"has", "have", "had", "he", "she", "its", "do", "does", "did",
		"can", "could", "would", "should", "about", "all", "am", "been",
		"being", "i", "you", "we", "our", "your",
	),
	lang.French: set(
		"le", "la", "les", "un", "une", "des", "de", "du", "et",
		"est", "en", "que", "qui", "pour", "dans", "sur", "ce", "cette",
		"se", "au", "aux", "avec", "ne", "pas",
	),
	lang.Italian: set(
		"il", "lo", "la", "gli", "le", "un", "uno", "una", "di",
		"e", "che", "per", "in", "con", "non", "si", "del", "della",
		"da", "su",
	),
	lang.Spanish: set(
		"el", "la", "los", "las", "un", "una", "unos", "unas", "de",
		"y", "que", "en", "por", "con", "no", "se", "del", "al",
		"su", "es",
	),
	lang.German: set(
		"der", "die", "das", "ein", "eine", "und", "ist", "in",
		"zu", "den", "von", "mit", "nicht", "sich", "auf", "für",
		"im", "dem",
	),
	lang.Portuguese: set(
		"o", "a", "os", "as", "um", "uma", "de", "e", "que", "em",
		"para", "com", "não", "se", "do", "da", "no", "na",
	),
	lang.Dutch: set(
		"de", "het", "een", "en", "van", "in", "is", "dat", "op",
		"te", "voor", "met", "niet", "zijn", "aan", "er",
	),
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
