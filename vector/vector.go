// Package vector implements the per-document, per-field positional
// vector: a term -> (positions, weight) map plus the raw token count
// used for field-length normalization.
package vector

import "github.com/rekki/go-query-db/term"

// Token is a single piece of caller-supplied ingest input: a term at a
// 1-based position, with an optional weight (defaults to 1.0).
type Token struct {
	Term     string
	Position int
	Weight   float32
}

// Term holds the accumulated positions and weight for one TermId
// within a PositionalVector.
type Term struct {
	Positions []int
	Weight    float32
}

// Vector is a document field's positional vector: how many tokens went
// in (Length), and per-term where they landed and how much they
// weigh.
type Vector struct {
	Length int
	Terms  map[term.ID]*Term
}

// New returns an empty positional vector.
func New() *Vector {
	return &Vector{Terms: map[term.ID]*Term{}}
}

// FromTokens builds a Vector from a token stream, interning each
// token's term via dict. Length is the input token count, not the
// number of distinct terms; duplicate positions under one term are
// preserved in insertion order.
func FromTokens(tokens []Token, dict *term.Dictionary) *Vector {
	v := New()
	for _, tok := range tokens {
		id := dict.GetOrInsert(tok.Term)
		t, ok := v.Terms[id]
		if !ok {
			t = &Term{}
			v.Terms[id] = t
		}
		t.Positions = append(t.Positions, tok.Position)
		weight := tok.Weight
		if weight == 0 {
			weight = 1.0
		}
		t.Weight += weight
	}
	v.Length = len(tokens)
	return v
}

// Boost multiplies every term's weight by factor in place.
func (v *Vector) Boost(factor float32) {
	for _, t := range v.Terms {
		t.Weight *= factor
	}
}

// Append concatenates other onto v in place: every position in other
// is shifted by v.Length before being merged in, weights sum, and
// v.Length grows by other.Length. This is what lets copy_to preserve
// phrase adjacency within each source region while never colliding
// with positions v already held.
func (v *Vector) Append(other *Vector) {
	for id, otherTerm := range other.Terms {
		t, ok := v.Terms[id]
		if !ok {
			t = &Term{}
			v.Terms[id] = t
		}
		for _, pos := range otherTerm.Positions {
			t.Positions = append(t.Positions, v.Length+pos)
		}
		t.Weight += otherTerm.Weight
	}
	v.Length += other.Length
}

// Clone returns a deep copy of v.
func (v *Vector) Clone() *Vector {
	cp := &Vector{Length: v.Length, Terms: make(map[term.ID]*Term, len(v.Terms))}
	for id, t := range v.Terms {
		positions := make([]int, len(t.Positions))
		copy(positions, t.Positions)
		cp.Terms[id] = &Term{Positions: positions, Weight: t.Weight}
	}
	return cp
}

// Add returns a new Vector that is the concatenation of a and b,
// equivalent to a.Clone() followed by Append(b). Associative but not
// commutative: positions shift by the receiver's length, so a+b != b+a.
func Add(a, b *Vector) *Vector {
	out := a.Clone()
	out.Append(b)
	return out
}
