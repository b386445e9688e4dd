// Package normalize provides composable per-string rewrite passes,
// chained ahead of a tokenizer the way the teacher repo's index
// package chains normalizers ahead of its tokenizers.
package normalize

import (
	"strings"
	"unicode"
)

// Normalizer rewrites a single string.
type Normalizer interface {
	Normalize(s string) string
}

// NormalizerFunc adapts a plain function to the Normalizer interface.
type NormalizerFunc func(s string) string

// Normalize implements Normalizer.
func (f NormalizerFunc) Normalize(s string) string { return f(s) }

// Normalize runs s through each Normalizer in order.
func Normalize(s string, normalizers ...Normalizer) string {
	for _, n := range normalizers {
		s = n.Normalize(s)
	}
	return s
}

type noop struct{}

// NewNoop returns its input unchanged.
func NewNoop() Normalizer { return noop{} }

func (noop) Normalize(s string) string { return s }

type lowerCase struct{}

// NewLowerCase lowercases s.
func NewLowerCase() Normalizer { return lowerCase{} }

func (lowerCase) Normalize(s string) string { return strings.ToLower(s) }

type trim struct{}

// NewTrim strips leading and trailing whitespace.
func NewTrim() Normalizer { return trim{} }

func (trim) Normalize(s string) string { return strings.TrimSpace(s) }

type cleanup struct{}

// NewCleanup collapses runs of non-letter, non-digit characters into a
// single space, leaving word and number boundaries intact.
func NewCleanup() Normalizer { return cleanup{} }

func (cleanup) Normalize(s string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			sb.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(sb.String())
}

type spaceBetweenDigits struct{}

// NewSpaceBetweenDigits inserts a space at every digit/non-digit
// boundary, so "abc123def45" tokenizes as "abc", "123", "def", "45"
// once whitespace-split.
func NewSpaceBetweenDigits() Normalizer { return spaceBetweenDigits{} }

func (spaceBetweenDigits) Normalize(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 {
			prevDigit := unicode.IsDigit(runes[i-1])
			curDigit := unicode.IsDigit(r)
			if prevDigit != curDigit {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

var unaccentTable = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'ý': 'y', 'ÿ': 'y',
	'ñ': 'n', 'ç': 'c',
	'À': 'A', 'Á': 'A', 'Â': 'A', 'Ã': 'A', 'Ä': 'A', 'Å': 'A',
	'È': 'E', 'É': 'E', 'Ê': 'E', 'Ë': 'E',
	'Ì': 'I', 'Í': 'I', 'Î': 'I', 'Ï': 'I',
	'Ò': 'O', 'Ó': 'O', 'Ô': 'O', 'Õ': 'O', 'Ö': 'O',
	'Ù': 'U', 'Ú': 'U', 'Û': 'U', 'Ü': 'U',
	'Ý': 'Y', 'Ñ': 'N', 'Ç': 'C',
}

type unaccent struct{}

// NewUnaccent replaces accented Latin letters with their unaccented
// equivalent, leaving everything else untouched.
func NewUnaccent() Normalizer { return unaccent{} }

func (unaccent) Normalize(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if plain, ok := unaccentTable[r]; ok {
			sb.WriteRune(plain)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
