package sparrowdb

import (
	"github.com/rekki/go-query-db/postings"
	"github.com/rekki/go-query-db/query"
)

// evalSimpleMatch implements the unscored executor of §4.8. Callers
// must hold at least the read lock.
func (db *Database) evalSimpleMatch(q query.Query) []postings.DocID {
	switch q.Kind {
	case query.KindMatchAll:
		out := make([]postings.DocID, 0, len(db.docOrder))
		for _, id := range db.docOrder {
			if db.isLive(id) {
				out = append(out, id)
			}
		}
		return out

	case query.KindMatchNone:
		return nil

	case query.KindTerm:
		idx, ok := db.indexes[q.Field]
		if !ok {
			return nil
		}
		return db.filterLive(idx.DocsWithTerm(q.Term))

	case query.KindPhrase:
		idx, ok := db.indexes[q.Field]
		if !ok {
			return nil
		}
		return db.filterLive(idx.DocsWithPhrase(q.Terms))

	case query.KindOr:
		seen := map[postings.DocID]struct{}{}
		out := []postings.DocID{}
		for _, c := range q.Children {
			for _, id := range db.evalSimpleMatch(c) {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
		return out

	case query.KindAnd:
		counts := map[postings.DocID]int{}
		order := []postings.DocID{}
		for _, c := range q.Children {
			for _, id := range db.evalSimpleMatch(c) {
				if counts[id] == 0 {
					order = append(order, id)
				}
				counts[id]++
			}
		}
		out := make([]postings.DocID, 0, len(order))
		for _, id := range order {
			if counts[id] == len(q.Children) {
				out = append(out, id)
			}
		}
		return out

	case query.KindFilter:
		qSet := db.evalSimpleMatch(*q.Query)
		fSet := toSet(db.evalSimpleMatch(*q.Filter))
		out := make([]postings.DocID, 0, len(qSet))
		for _, id := range qSet {
			if _, ok := fSet[id]; ok {
				out = append(out, id)
			}
		}
		return out

	case query.KindExclude:
		qSet := db.evalSimpleMatch(*q.Query)
		fSet := toSet(db.evalSimpleMatch(*q.Filter))
		out := make([]postings.DocID, 0, len(qSet))
		for _, id := range qSet {
			if _, ok := fSet[id]; !ok {
				out = append(out, id)
			}
		}
		return out

	case query.KindBoost:
		return db.evalSimpleMatch(*q.Query)

	default:
		return nil
	}
}

// evalQuery implements the scored executor of §4.8. Callers must hold
// at least the read lock.
func (db *Database) evalQuery(q query.Query) []postings.Scored {
	switch q.Kind {
	case query.KindMatchAll:
		out := make([]postings.Scored, 0, len(db.docOrder))
		for _, id := range db.docOrder {
			if db.isLive(id) {
				out = append(out, postings.Scored{Doc: id, Score: 0.0})
			}
		}
		return out

	case query.KindMatchNone:
		return nil

	case query.KindTerm:
		idx, ok := db.indexes[q.Field]
		if !ok {
			return nil
		}
		return db.filterLiveScored(idx.Search(q.Term))

	case query.KindPhrase:
		idx, ok := db.indexes[q.Field]
		if !ok {
			return nil
		}
		return db.filterLiveScored(idx.PhraseSearch(q.Terms))

	case query.KindOr:
		scores := map[postings.DocID]float32{}
		order := []postings.DocID{}
		for _, c := range q.Children {
			for _, s := range db.evalQuery(c) {
				if _, ok := scores[s.Doc]; !ok {
					order = append(order, s.Doc)
				}
				scores[s.Doc] += s.Score
			}
		}
		out := make([]postings.Scored, len(order))
		for i, id := range order {
			out[i] = postings.Scored{Doc: id, Score: scores[id]}
		}
		return out

	case query.KindAnd:
		scores := map[postings.DocID]float32{}
		counts := map[postings.DocID]int{}
		order := []postings.DocID{}
		for _, c := range q.Children {
			for _, s := range db.evalQuery(c) {
				if counts[s.Doc] == 0 {
					order = append(order, s.Doc)
				}
				counts[s.Doc]++
				scores[s.Doc] += s.Score
			}
		}
		out := make([]postings.Scored, 0, len(order))
		for _, id := range order {
			if counts[id] == len(q.Children) {
				out = append(out, postings.Scored{Doc: id, Score: scores[id]})
			}
		}
		return out

	case query.KindFilter:
		scored := db.evalQuery(*q.Query)
		fSet := toSet(db.evalSimpleMatch(*q.Filter))
		out := make([]postings.Scored, 0, len(scored))
		for _, s := range scored {
			if _, ok := fSet[s.Doc]; ok {
				out = append(out, s)
			}
		}
		return out

	case query.KindExclude:
		scored := db.evalQuery(*q.Query)
		fSet := toSet(db.evalSimpleMatch(*q.Filter))
		out := make([]postings.Scored, 0, len(scored))
		for _, s := range scored {
			if _, ok := fSet[s.Doc]; !ok {
				out = append(out, s)
			}
		}
		return out

	case query.KindBoost:
		if q.Boost == 0.0 {
			ids := db.evalSimpleMatch(*q.Query)
			out := make([]postings.Scored, len(ids))
			for i, id := range ids {
				out[i] = postings.Scored{Doc: id, Score: 0.0}
			}
			return out
		}
		scored := db.evalQuery(*q.Query)
		out := make([]postings.Scored, len(scored))
		for i, s := range scored {
			out[i] = postings.Scored{Doc: s.Doc, Score: s.Score * q.Boost}
		}
		return out

	default:
		return nil
	}
}

func (db *Database) filterLive(ids []postings.DocID) []postings.DocID {
	out := make([]postings.DocID, 0, len(ids))
	for _, id := range ids {
		if db.isLive(id) {
			out = append(out, id)
		}
	}
	return out
}

func (db *Database) filterLiveScored(scored []postings.Scored) []postings.Scored {
	out := make([]postings.Scored, 0, len(scored))
	for _, s := range scored {
		if db.isLive(s.Doc) {
			out = append(out, s)
		}
	}
	return out
}

func toSet(ids []postings.DocID) map[postings.DocID]struct{} {
	set := make(map[postings.DocID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
