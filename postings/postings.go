// Package postings implements the per-field inverted index: posting
// lists keyed by term id, document/term frequency stats, and the
// term/phrase scans the query executor walks.
package postings

import (
	"math"

	"github.com/rekki/go-query-db/term"
	"github.com/rekki/go-query-db/vector"
)

// DocID is a dense, process-lifetime-stable document identifier
// assigned by the owning database in insertion order.
type DocID uint32

// Posting is one document's contribution to a term's posting list: the
// set of positions that term occupied (for O(1) adjacency probes
// during phrase evaluation) and its accumulated weight.
type Posting struct {
	Doc       DocID
	Positions map[int]struct{}
	Weight    float32
}

// Scored is a (document, score) pair returned by a scan.
type Scored struct {
	Doc   DocID
	Score float32
}

// Index is one field's inverted index: every term's posting list plus
// the aggregate stats the scoring normalizer needs.
type Index struct {
	postings       map[term.ID][]*Posting
	TotalDocuments int
	TotalTerms     int
}

// New returns an empty inverted index for one field.
func New() *Index {
	return &Index{postings: map[term.ID][]*Posting{}}
}

// InsertVector appends vec's per-term postings for doc, in append
// order, and updates the aggregate document/term counts once for the
// whole vector.
func (idx *Index) InsertVector(doc DocID, vec *vector.Vector) {
	for id, t := range vec.Terms {
		positions := make(map[int]struct{}, len(t.Positions))
		for _, p := range t.Positions {
			positions[p] = struct{}{}
		}
		idx.postings[id] = append(idx.postings[id], &Posting{
			Doc:       doc,
			Positions: positions,
			Weight:    t.Weight,
		})
	}
	idx.TotalDocuments++
	idx.TotalTerms += vec.Length
}

// DocFrequency returns the number of documents containing term, 0 if
// the term has never been indexed in this field.
func (idx *Index) DocFrequency(t term.ID) int {
	return len(idx.postings[t])
}

// TotalTermFrequency returns the sum of occurrence counts of term
// across every document it appears in.
func (idx *Index) TotalTermFrequency(t term.ID) int {
	total := 0
	for _, p := range idx.postings[t] {
		total += len(p.Positions)
	}
	return total
}

// DocsWithTerm returns the documents containing term, in posting-list
// (insertion) order, with no score attached.
func (idx *Index) DocsWithTerm(t term.ID) []DocID {
	list := idx.postings[t]
	out := make([]DocID, len(list))
	for i, p := range list {
		out[i] = p.Doc
	}
	return out
}

// normalizer computes the TF/IDF-style per-term score scale: inverse
// document frequency times inverse average field length. Reproduced
// bit-for-bit (modulo IEEE-754 rounding) from the original formula:
// idf = 1/log2(df+1), flen_norm = total_terms/total_documents.
func (idx *Index) normalizer(t term.ID) float32 {
	df := idx.DocFrequency(t)
	if df == 0 {
		return 0
	}
	idf := 1.0 / math.Log2(float64(df)+1.0)
	flenNorm := float64(idx.TotalTerms) / float64(idx.TotalDocuments)
	return float32(idf * flenNorm)
}

// Search scans term's posting list, scoring each match as
// posting.Weight * normalizer(term).
func (idx *Index) Search(t term.ID) []Scored {
	list := idx.postings[t]
	if len(list) == 0 {
		return nil
	}
	norm := idx.normalizer(t)
	out := make([]Scored, len(list))
	for i, p := range list {
		out[i] = Scored{Doc: p.Doc, Score: p.Weight * norm}
	}
	return out
}

// DocsWithPhrase returns just the documents satisfying PhraseSearch's
// adjacency condition, unscored.
func (idx *Index) DocsWithPhrase(terms []term.ID) []DocID {
	scored := idx.PhraseSearch(terms)
	out := make([]DocID, len(scored))
	for i, s := range scored {
		out[i] = s.Doc
	}
	return out
}

type phraseCandidate struct {
	positions map[int]struct{}
	score     float32
}

// PhraseSearch finds documents where terms occur at a strictly
// increasing consecutive position sequence p, p+1, ..., p+len(terms)-1,
// term i at p+i. Scores sum each matched term's single posting weight
// times its own normalizer — not multiplied by how many times the
// phrase recurs in the document, matching the source's intentional
// simplicity.
func (idx *Index) PhraseSearch(terms []term.ID) []Scored {
	if len(terms) == 0 {
		return nil
	}

	first := idx.postings[terms[0]]
	if len(first) == 0 {
		return nil
	}

	candidates := make(map[DocID]*phraseCandidate, len(first))
	order := make([]DocID, 0, len(first))
	norm0 := idx.normalizer(terms[0])
	for _, p := range first {
		positions := make(map[int]struct{}, len(p.Positions))
		for pos := range p.Positions {
			positions[pos] = struct{}{}
		}
		candidates[p.Doc] = &phraseCandidate{positions: positions, score: p.Weight * norm0}
		order = append(order, p.Doc)
	}

	for i := 1; i < len(terms); i++ {
		list := idx.postings[terms[i]]
		if len(list) == 0 {
			return nil
		}
		norm := idx.normalizer(terms[i])
		seen := make(map[DocID]struct{}, len(list))

		for _, p := range list {
			cand, ok := candidates[p.Doc]
			if !ok {
				continue
			}
			seen[p.Doc] = struct{}{}

			next := make(map[int]struct{})
			for pos := range cand.positions {
				if _, ok := p.Positions[pos+1]; ok {
					next[pos+1] = struct{}{}
				}
			}
			cand.positions = next
			cand.score += p.Weight * norm
		}

		filtered := order[:0:0]
		for _, doc := range order {
			if _, ok := seen[doc]; !ok {
				delete(candidates, doc)
				continue
			}
			if len(candidates[doc].positions) == 0 {
				delete(candidates, doc)
				continue
			}
			filtered = append(filtered, doc)
		}
		order = filtered
	}

	out := make([]Scored, 0, len(order))
	for _, doc := range order {
		out = append(out, Scored{Doc: doc, Score: candidates[doc].score})
	}
	return out
}
