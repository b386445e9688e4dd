// Package tokenize provides composable text tokenizers: small passes
// that turn a string into a stream of positioned tokens, chained
// together by Tokenize/TokenizeT. The core search engine never calls
// these itself (callers may supply their own tokens); this package
// exists as a convenience for building an ingest pipeline, the way the
// teacher repo ships tokenize as its own package alongside the index.
package tokenize

import (
	"strings"
	"unicode"
)

// Token is one tokenizer-pipeline token: its text, its 0-based
// position within the stream, and the 0-based line number it came
// from.
type Token struct {
	Text     string
	Position int
	LineNo   int
}

// Tokenizer transforms one stage's token stream into the next.
type Tokenizer interface {
	Tokenize(in []Token) []Token
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc func(in []Token) []Token

// Tokenize implements Tokenizer.
func (f TokenizerFunc) Tokenize(in []Token) []Token { return f(in) }

// Tokenize runs string through each Tokenizer in order and returns the
// resulting text values.
func Tokenize(s string, tokenizers ...Tokenizer) []string {
	tokens := TokenizeT(s, tokenizers...)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

// TokenizeT runs string through each Tokenizer in order, keeping the
// full Token (text, position, line number). With no tokenizers at all
// there is nothing to seed the pipeline, so the result is empty.
func TokenizeT(s string, tokenizers ...Tokenizer) []Token {
	if len(tokenizers) == 0 {
		return []Token{}
	}
	tokens := []Token{{Text: s}}
	for _, t := range tokenizers {
		tokens = t.Tokenize(tokens)
	}
	return tokens
}

type whitespace struct{}

// NewWhitespace splits each input token's text on runs of whitespace,
// numbering the resulting tokens sequentially and stamping each with
// the line number it was found on (blank lines advance the line
// counter without producing tokens).
func NewWhitespace() Tokenizer { return whitespace{} }

func (whitespace) Tokenize(in []Token) []Token {
	out := []Token{}
	position := 0
	for _, t := range in {
		line := 0
		for _, row := range strings.Split(t.Text, "\n") {
			for _, word := range strings.Fields(row) {
				out = append(out, Token{Text: word, Position: position, LineNo: line})
				position++
			}
			line++
		}
	}
	return out
}

type unique struct{}

// NewUnique drops tokens whose text repeats one already seen, keeping
// first occurrence.
func NewUnique() Tokenizer { return unique{} }

func (unique) Tokenize(in []Token) []Token {
	seen := map[string]struct{}{}
	out := make([]Token, 0, len(in))
	for _, t := range in {
		if _, ok := seen[t.Text]; ok {
			continue
		}
		seen[t.Text] = struct{}{}
		out = append(out, t)
	}
	return out
}

type leftEdge struct{ min int }

// NewLeftEdge emits every prefix of each token's text from length min
// up to the full length (an "edge n-gram" autocomplete tokenizer).
func NewLeftEdge(min int) Tokenizer { return leftEdge{min: min} }

func (l leftEdge) Tokenize(in []Token) []Token {
	out := []Token{}
	for _, t := range in {
		runes := []rune(t.Text)
		start := l.min
		if start < 1 {
			start = 1
		}
		if start > len(runes) {
			out = append(out, Token{Text: t.Text, Position: t.Position, LineNo: t.LineNo})
			continue
		}
		for n := start; n <= len(runes); n++ {
			out = append(out, Token{Text: string(runes[:n]), Position: t.Position, LineNo: t.LineNo})
		}
	}
	return out
}

type charNgram struct{ n int }

// NewCharNgram splits each token's text into overlapping n-character
// windows. A token shorter than n is kept whole (or, for the empty
// string, kept as-is) rather than dropped.
func NewCharNgram(n int) Tokenizer { return charNgram{n: n} }

func (c charNgram) Tokenize(in []Token) []Token {
	out := []Token{}
	for _, t := range in {
		runes := []rune(t.Text)
		if len(runes) <= c.n {
			out = append(out, t)
			continue
		}
		for i := 0; i+c.n <= len(runes); i++ {
			out = append(out, Token{Text: string(runes[i : i+c.n]), Position: t.Position, LineNo: t.LineNo})
		}
	}
	return out
}

type surround struct{ with string }

// NewSurround prefixes the first token and suffixes the last token in
// the stream with a marker string (typically used to anchor n-grams to
// word boundaries).
func NewSurround(with string) Tokenizer { return surround{with: with} }

func (s surround) Tokenize(in []Token) []Token {
	if len(in) == 0 {
		return in
	}
	out := make([]Token, len(in))
	copy(out, in)
	out[0].Text = s.with + out[0].Text
	out[len(out)-1].Text = out[len(out)-1].Text + s.with
	return out
}

type shingles struct{ n int }

// NewShingles emits, for every position, the single token there plus
// (when n full tokens remain) the concatenation of that exact n-token
// window with no separator — not every intermediate window size.
func NewShingles(n int) Tokenizer { return shingles{n: n} }

func (s shingles) Tokenize(in []Token) []Token {
	if len(in) == 0 {
		return in
	}
	if s.n <= 1 {
		return in
	}
	out := make([]Token, 0, len(in))
	for i := 0; i < len(in); i++ {
		out = append(out, in[i])
		if i+s.n <= len(in) {
			var sb strings.Builder
			for j := i; j < i+s.n; j++ {
				sb.WriteString(in[j].Text)
			}
			out = append(out, Token{Text: sb.String(), Position: in[i].Position, LineNo: in[i].LineNo})
		}
	}
	return out
}

type noop struct{}

// NewNoop passes its input through unchanged.
func NewNoop() Tokenizer { return noop{} }

func (noop) Tokenize(in []Token) []Token { return in }

type custom struct{ fn func([]Token) []Token }

// NewCustom wraps an arbitrary transform as a pipeline stage.
func NewCustom(fn func([]Token) []Token) Tokenizer { return custom{fn: fn} }

func (c custom) Tokenize(in []Token) []Token { return c.fn(in) }

var soundexCode = map[rune]byte{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

type soundex struct{}

// NewSoundex replaces each token's text with its Soundex code
// (https://en.wikipedia.org/wiki/Soundex): first letter uppercased,
// followed by up to three digits for subsequent consonant groups,
// padded with zeros.
func NewSoundex() Tokenizer { return soundex{} }

func (soundex) Tokenize(in []Token) []Token {
	out := make([]Token, 0, len(in))
	for _, t := range in {
		out = append(out, Token{Text: soundexOf(t.Text), Position: t.Position, LineNo: t.LineNo})
	}
	return out
}

func soundexOf(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return ""
	}

	first := unicode.ToUpper(runes[0])
	code := []byte{byte(first)}
	last := soundexCode[runes[0]]

	for _, r := range runes[1:] {
		c, ok := soundexCode[r]
		if !ok {
			last = 0
			continue
		}
		if c != last {
			code = append(code, c)
		}
		last = c
		if len(code) == 4 {
			break
		}
	}

	for len(code) < 4 {
		code = append(code, '0')
	}

	return string(code)
}
