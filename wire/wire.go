// Package wire defines the JSON request/response contract: insert
// documents, a discriminated-union query source mirroring the query
// package's AST with string field/term names, and search hits. It
// performs the name->id resolution a transport layer would otherwise
// have to duplicate, but opens no network listener itself.
package wire

import (
	sparrowdb "github.com/rekki/go-query-db"
	"github.com/rekki/go-query-db/query"
	"github.com/rekki/go-query-db/term"
	"github.com/rekki/go-query-db/vector"
)

// Token is one ingest token as it arrives over the wire.
type Token struct {
	Term     string  `json:"term"`
	Position int     `json:"position"`
	Weight   float32 `json:"weight,omitempty"`
}

// InsertRequest is the JSON shape of a single document insert.
type InsertRequest struct {
	PK     string             `json:"pk"`
	Fields map[string][]Token `json:"fields"`
}

// ToFieldTokens converts the wire-shaped token lists into the
// vector.Token lists Database.Insert expects.
func (r InsertRequest) ToFieldTokens() map[string][]vector.Token {
	out := make(map[string][]vector.Token, len(r.Fields))
	for name, toks := range r.Fields {
		conv := make([]vector.Token, len(toks))
		for i, tok := range toks {
			conv[i] = vector.Token{Term: tok.Term, Position: tok.Position, Weight: tok.Weight}
		}
		out[name] = conv
	}
	return out
}

// DeleteRequest is the JSON shape of a delete.
type DeleteRequest struct {
	PK string `json:"pk"`
}

// SearchHit is one entry of a search response, ordered by descending
// score by the caller.
type SearchHit struct {
	PK    string  `json:"pk"`
	Score float32 `json:"score"`
}

// QuerySource is the discriminated union mirroring query.Kind, keyed
// by Kind so it survives a JSON round trip without Go interface
// support. Only the fields relevant to Kind are populated.
type QuerySource struct {
	Kind string `json:"kind"`

	Field string   `json:"field,omitempty"`
	Term  string   `json:"term,omitempty"`
	Terms []string `json:"terms,omitempty"`

	Children []QuerySource `json:"children,omitempty"`

	Query  *QuerySource `json:"query,omitempty"`
	Filter *QuerySource `json:"filter,omitempty"`

	Boost float32 `json:"boost,omitempty"`
}

// Kind string values for QuerySource.Kind.
const (
	KindMatchAll  = "match_all"
	KindMatchNone = "match_none"
	KindTerm      = "term"
	KindPhrase    = "phrase"
	KindOr        = "or"
	KindAnd       = "and"
	KindFilter    = "filter"
	KindExclude   = "exclude"
	KindBoost     = "boost"
)

// Resolve turns a QuerySource into a query.Query against db's
// dictionaries: an unknown field or term name degrades to
// query.MatchNone(), never an error — and, unlike the original
// server's as_query, QuerySource.Kind == "match_none" resolves to
// query.MatchNone(), not MatchAll.
func (qs QuerySource) Resolve(db *sparrowdb.Database) query.Query {
	switch qs.Kind {
	case KindMatchAll:
		return query.MatchAll()

	case KindMatchNone:
		return query.MatchNone()

	case KindTerm:
		fieldID, ok := db.Fields().LookupByName(qs.Field)
		if !ok {
			return query.MatchNone()
		}
		termID, ok := db.Terms().LookupByName(qs.Term)
		if !ok {
			return query.MatchNone()
		}
		return query.Term(fieldID, termID)

	case KindPhrase:
		fieldID, ok := db.Fields().LookupByName(qs.Field)
		if !ok {
			return query.MatchNone()
		}
		ids := make([]term.ID, 0, len(qs.Terms))
		for _, name := range qs.Terms {
			termID, ok := db.Terms().LookupByName(name)
			if !ok {
				return query.MatchNone()
			}
			ids = append(ids, termID)
		}
		return query.Phrase(fieldID, ids)

	case KindOr:
		children := make([]query.Query, len(qs.Children))
		for i, c := range qs.Children {
			children[i] = c.Resolve(db)
		}
		return query.Or(children...)

	case KindAnd:
		children := make([]query.Query, len(qs.Children))
		for i, c := range qs.Children {
			children[i] = c.Resolve(db)
		}
		return query.And(children...)

	case KindFilter:
		if qs.Query == nil || qs.Filter == nil {
			return query.MatchNone()
		}
		return query.Filter(qs.Query.Resolve(db), qs.Filter.Resolve(db))

	case KindExclude:
		if qs.Query == nil || qs.Filter == nil {
			return query.MatchNone()
		}
		return query.Exclude(qs.Query.Resolve(db), qs.Filter.Resolve(db))

	case KindBoost:
		if qs.Query == nil {
			return query.MatchNone()
		}
		return query.Boost(qs.Query.Resolve(db), qs.Boost)

	default:
		return query.MatchNone()
	}
}
