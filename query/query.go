// Package query implements the query algebra: a tagged-union AST
// (MatchAll, MatchNone, Term, Phrase, Or, And, Filter, Exclude, Boost)
// and the smart constructors that keep any tree built through them in
// simplified normal form.
package query

import (
	"github.com/rekki/go-query-db/field"
	"github.com/rekki/go-query-db/term"
)

// Kind discriminates the Query variants.
type Kind int

const (
	KindMatchAll Kind = iota
	KindMatchNone
	KindTerm
	KindPhrase
	KindOr
	KindAnd
	KindFilter
	KindExclude
	KindBoost
)

// Query is the tagged recursive AST node. Only the fields relevant to
// Kind are populated; this mirrors a tagged union with heap-owned
// children rather than a polymorphic visitor hierarchy, since the
// simplifier below is pattern-matching on shape, not dispatching
// virtual methods.
type Query struct {
	Kind Kind

	Field field.ID
	Term  term.ID
	Terms []term.ID

	Children []Query

	Query  *Query
	Filter *Query

	Boost float32
}

// MatchAll matches every live document with score 0.0.
func MatchAll() Query { return Query{Kind: KindMatchAll} }

// MatchNone matches no documents.
func MatchNone() Query { return Query{Kind: KindMatchNone} }

// Term matches documents containing term in field.
func Term(f field.ID, t term.ID) Query {
	return Query{Kind: KindTerm, Field: f, Term: t}
}

// Phrase matches documents where terms occur as a consecutive,
// strictly adjacent run in field.
func Phrase(f field.ID, terms []term.ID) Query {
	return Query{Kind: KindPhrase, Field: f, Terms: terms}
}

func isMatchAll(q Query) bool  { return q.Kind == KindMatchAll }
func isMatchNone(q Query) bool { return q.Kind == KindMatchNone }

// Or builds the simplified union of children: MatchNone children are
// dropped, nested Ors are flattened, at most one MatchAll is kept (it
// still contributes score 0.0 through the executor), an all-MatchAll
// result collapses to MatchAll, an empty result to MatchNone, and a
// single surviving child is unwrapped.
func Or(children ...Query) Query {
	flat := make([]Query, 0, len(children))
	sawMatchAll := false
	for _, c := range children {
		if isMatchNone(c) {
			continue
		}
		if c.Kind == KindOr {
			for _, gc := range c.Children {
				if isMatchAll(gc) {
					sawMatchAll = true
					continue
				}
				flat = append(flat, gc)
			}
			continue
		}
		if isMatchAll(c) {
			sawMatchAll = true
			continue
		}
		flat = append(flat, c)
	}

	if len(flat) == 0 {
		if sawMatchAll {
			return MatchAll()
		}
		return MatchNone()
	}
	if sawMatchAll {
		flat = append(flat, MatchAll())
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Query{Kind: KindOr, Children: flat}
}

// And builds the simplified intersection of children: any MatchNone
// child collapses the whole thing to MatchNone, MatchAll children are
// dropped (they contribute nothing to an intersection), nested Ands
// are flattened, an empty-after-dropping-MatchAll result collapses to
// MatchAll, an all-dropped-with-no-MatchAll-seen result to MatchNone,
// and a single surviving child is unwrapped.
func And(children ...Query) Query {
	flat := make([]Query, 0, len(children))
	sawMatchAll := false
	for _, c := range children {
		if isMatchNone(c) {
			return MatchNone()
		}
		if c.Kind == KindAnd {
			flat = append(flat, c.Children...)
			continue
		}
		if isMatchAll(c) {
			sawMatchAll = true
			continue
		}
		flat = append(flat, c)
	}

	if len(flat) == 0 {
		if sawMatchAll {
			return MatchAll()
		}
		return MatchNone()
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Query{Kind: KindAnd, Children: flat}
}

// Filter builds the simplified Filter(q, f): intersects q's scored
// matches with f's unscored match set, without f contributing to the
// score.
func Filter(q, f Query) Query {
	switch {
	case isMatchNone(q):
		return MatchNone()
	case isMatchAll(f):
		return q
	case isMatchNone(f):
		return MatchNone()
	}
	if f.Kind == KindFilter && isMatchAll(*f.Query) {
		return Filter(q, *f.Filter)
	}
	if f.Kind == KindExclude && isMatchAll(*f.Query) {
		return Exclude(q, *f.Filter)
	}
	return Query{Kind: KindFilter, Query: cloneP(q), Filter: cloneP(f)}
}

// Exclude builds the simplified Exclude(q, f): q's scored matches
// minus f's unscored match set.
func Exclude(q, f Query) Query {
	switch {
	case isMatchNone(q):
		return MatchNone()
	case isMatchAll(f):
		return MatchNone()
	case isMatchNone(f):
		return q
	}
	if f.Kind == KindFilter && isMatchAll(*f.Query) {
		return Exclude(q, *f.Filter)
	}
	if f.Kind == KindExclude && isMatchAll(*f.Query) {
		return Filter(q, *f.Filter)
	}
	return Query{Kind: KindExclude, Query: cloneP(q), Filter: cloneP(f)}
}

// Not negates q: equivalent to Exclude(MatchAll, q). Double negation
// simplifies to Filter(MatchAll, q) via the exclude-of-exclude rule,
// preserving q's match set scored against MatchAll.
func Not(q Query) Query {
	return Exclude(MatchAll(), q)
}

// Boost scales q's scores by factor. No simplification of factor 1.0:
// scoring must remain uniform regardless of an explicit no-op boost.
// The executor special-cases factor 0.0.
func Boost(q Query, factor float32) Query {
	return Query{Kind: KindBoost, Query: cloneP(q), Boost: factor}
}

func cloneP(q Query) *Query {
	cp := q
	return &cp
}

// Simplify rebuilds q bottom-up through the smart constructors above,
// normalizing a tree that may have been assembled without going
// through them (e.g. decoded off the wire). Simplify is idempotent:
// Simplify(Simplify(q)) always equals Simplify(q), since applying the
// constructors to an already-normal tree reproduces it.
func Simplify(q Query) Query {
	switch q.Kind {
	case KindMatchAll, KindMatchNone, KindTerm, KindPhrase:
		return q
	case KindOr:
		children := make([]Query, len(q.Children))
		for i, c := range q.Children {
			children[i] = Simplify(c)
		}
		return Or(children...)
	case KindAnd:
		children := make([]Query, len(q.Children))
		for i, c := range q.Children {
			children[i] = Simplify(c)
		}
		return And(children...)
	case KindFilter:
		return Filter(Simplify(*q.Query), Simplify(*q.Filter))
	case KindExclude:
		return Exclude(Simplify(*q.Query), Simplify(*q.Filter))
	case KindBoost:
		return Boost(Simplify(*q.Query), q.Boost)
	default:
		return q
	}
}
