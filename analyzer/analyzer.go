// Package analyzer binds a normalizer chain and a pair of index/search
// tokenizer chains into the text -> []vector.Token pipeline a field
// needs at ingest and at query time, the way the teacher repo's index
// package wires DefaultAnalyzer, IDAnalyzer, SoundexAnalyzer and
// FuzzyAnalyzer out of the same tokenize/normalize primitives.
package analyzer

import (
	"github.com/rekki/go-query-db/normalize"
	"github.com/rekki/go-query-db/tokenize"
	"github.com/rekki/go-query-db/vector"
)

// Analyzer holds the normalizer chain run before tokenization, and two
// independent tokenizer chains: Index runs over text being stored,
// Search runs over text being queried. They commonly differ — an
// autocomplete field indexes edge n-grams but searches whole words.
type Analyzer struct {
	Normalizers []normalize.Normalizer
	Index       []tokenize.Tokenizer
	Search      []tokenize.Tokenizer
}

// New builds an Analyzer from its three chains.
func New(normalizers []normalize.Normalizer, index, search []tokenize.Tokenizer) *Analyzer {
	return &Analyzer{Normalizers: normalizers, Index: index, Search: search}
}

// AnalyzeIndex runs text through the normalizer chain and then the
// index tokenizer chain, returning vector.Tokens ready for
// vector.FromTokens. The tokenizers' 0-based positions are shifted to
// the 1-based positions vector.Token carries.
func (a *Analyzer) AnalyzeIndex(text string) []vector.Token {
	return a.analyze(text, a.Index)
}

// AnalyzeSearch runs text through the normalizer chain and then the
// search tokenizer chain.
func (a *Analyzer) AnalyzeSearch(text string) []vector.Token {
	return a.analyze(text, a.Search)
}

func (a *Analyzer) analyze(text string, chain []tokenize.Tokenizer) []vector.Token {
	normalized := normalize.Normalize(text, a.Normalizers...)
	tokens := tokenize.TokenizeT(normalized, chain...)
	out := make([]vector.Token, len(tokens))
	for i, t := range tokens {
		out[i] = vector.Token{Term: t.Text, Position: t.Position + 1}
	}
	return out
}

// DefaultAnalyzer trims, strips accents, lowercases and splits on
// whitespace — a general-purpose full-text field. Repeated terms are
// kept, each at its own position.
var DefaultAnalyzer = New(
	[]normalize.Normalizer{normalize.NewTrim(), normalize.NewUnaccent(), normalize.NewLowerCase()},
	[]tokenize.Tokenizer{tokenize.NewWhitespace()},
	[]tokenize.Tokenizer{tokenize.NewWhitespace()},
)

// IDAnalyzer treats the whole input as a single opaque token, suited
// to exact-match fields like a SKU or a primary key mirror.
var IDAnalyzer = New(
	nil,
	[]tokenize.Tokenizer{tokenize.NewNoop()},
	[]tokenize.Tokenizer{tokenize.NewNoop()},
)

// SoundexAnalyzer indexes and searches the Soundex code of each
// whitespace-split word, for phonetic matching.
var SoundexAnalyzer = New(
	[]normalize.Normalizer{normalize.NewTrim(), normalize.NewLowerCase()},
	[]tokenize.Tokenizer{tokenize.NewWhitespace(), tokenize.NewSoundex()},
	[]tokenize.Tokenizer{tokenize.NewWhitespace(), tokenize.NewSoundex()},
)

// FuzzyAnalyzer indexes overlapping 3-character windows of each word
// and searches the same way, tolerating typos at the cost of
// precision.
var FuzzyAnalyzer = New(
	[]normalize.Normalizer{normalize.NewTrim(), normalize.NewUnaccent(), normalize.NewLowerCase()},
	[]tokenize.Tokenizer{tokenize.NewWhitespace(), tokenize.NewCharNgram(3)},
	[]tokenize.Tokenizer{tokenize.NewWhitespace(), tokenize.NewCharNgram(3)},
)

// AutocompleteAnalyzer indexes left-edge prefixes of each word (so a
// partial prefix matches) but searches whole words, since a query
// should already be the prefix the user typed.
var AutocompleteAnalyzer = New(
	[]normalize.Normalizer{normalize.NewTrim(), normalize.NewUnaccent(), normalize.NewLowerCase()},
	[]tokenize.Tokenizer{tokenize.NewWhitespace(), tokenize.NewLeftEdge(1)},
	[]tokenize.Tokenizer{tokenize.NewWhitespace()},
)
