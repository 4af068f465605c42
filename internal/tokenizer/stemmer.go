package tokenizer

import "strings"

// stemEnglish applies a light suffix-stripping stemmer, trimmed to the small
// set of endings the default analyzer cares about. It is not a full Porter
// stemmer; it exists so that obvious plural/verb-form variants of a word
// collapse onto the same token.
func stemEnglish(word string) string {
	for _, suffix := range []string{"ational", "ization", "fulness", "ousness", "iveness"} {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix)+2 {
			return word[:len(word)-len(suffix)]
		}
	}

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ied") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		return trimDoubledConsonant(word[:len(word)-3])
	case strings.HasSuffix(word, "edly") && len(word) > 6:
		return trimDoubledConsonant(word[:len(word)-4])
	case strings.HasSuffix(word, "ed") && len(word) > 4:
		return trimDoubledConsonant(word[:len(word)-2])
	case strings.HasSuffix(word, "es") && len(word) > 4 && endsWithSibilant(word[:len(word)-2]):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 3:
		return word[:len(word)-1]
	}
	return word
}

func endsWithSibilant(s string) bool {
	for _, suffix := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// trimDoubledConsonant collapses a doubled final consonant left behind by
// stripping "-ing"/"-ed" (e.g. "running" -> "runn" -> "run").
func trimDoubledConsonant(stem string) string {
	n := len(stem)
	if n < 3 {
		return stem
	}
	last := stem[n-1]
	if last == stem[n-2] && last != 'l' && last != 's' && last != 'z' && isConsonant(last) {
		return stem[:n-1]
	}
	return stem
}

func isConsonant(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	default:
		return true
	}
}
