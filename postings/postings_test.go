package postings

import (
	"math"
	"testing"

	"github.com/rekki/go-query-db/term"
	"github.com/rekki/go-query-db/vector"
)

func buildVector(dict *term.Dictionary, tokens ...vector.Token) *vector.Vector {
	return vector.FromTokens(tokens, dict)
}

func TestInsertVectorUpdatesAggregates(t *testing.T) {
	dict := term.NewDictionary()
	idx := New()

	v1 := buildVector(dict, vector.Token{Term: "hello", Position: 1}, vector.Token{Term: "world", Position: 2})
	v2 := buildVector(dict, vector.Token{Term: "hello", Position: 1})

	idx.InsertVector(0, v1)
	idx.InsertVector(1, v2)

	if idx.TotalDocuments != 2 {
		t.Fatalf("expected total_documents=2, got %d", idx.TotalDocuments)
	}
	if idx.TotalTerms != 3 {
		t.Fatalf("expected total_terms=3 (2+1), got %d", idx.TotalTerms)
	}

	helloID, _ := dict.LookupByName("hello")
	if idx.DocFrequency(helloID) != 2 {
		t.Fatalf("expected doc_frequency(hello)=2, got %d", idx.DocFrequency(helloID))
	}
	if idx.TotalTermFrequency(helloID) != 2 {
		t.Fatalf("expected total_term_frequency(hello)=2, got %d", idx.TotalTermFrequency(helloID))
	}

	worldID, _ := dict.LookupByName("world")
	if idx.DocFrequency(worldID) != 1 {
		t.Fatalf("expected doc_frequency(world)=1, got %d", idx.DocFrequency(worldID))
	}
}

// S1 — basic term scoring.
func TestSearchBasic(t *testing.T) {
	dict := term.NewDictionary()
	idx := New()
	v := buildVector(dict, vector.Token{Term: "hello", Position: 1}, vector.Token{Term: "world", Position: 2})
	idx.InsertVector(0, v)

	helloID, _ := dict.LookupByName("hello")
	results := idx.Search(helloID)
	if len(results) != 1 || results[0].Doc != 0 {
		t.Fatalf("expected doc 0 to match hello, got %v", results)
	}
	if results[0].Score <= 0 {
		t.Fatalf("expected positive score, got %f", results[0].Score)
	}

	goodbyeID := term.ID(999)
	if got := idx.Search(goodbyeID); got != nil {
		t.Fatalf("expected no match for unindexed term, got %v", got)
	}
}

func TestSearchScoreFormula(t *testing.T) {
	dict := term.NewDictionary()
	idx := New()
	v := buildVector(dict, vector.Token{Term: "hello", Position: 1}, vector.Token{Term: "world", Position: 2})
	idx.InsertVector(0, v)

	helloID, _ := dict.LookupByName("hello")
	results := idx.Search(helloID)

	df := float64(idx.DocFrequency(helloID))
	idf := 1.0 / math.Log2(df+1.0)
	flenNorm := float64(idx.TotalTerms) / float64(idx.TotalDocuments)
	want := float32(float64(v.Terms[helloID].Weight) * idf * flenNorm)

	if math.Abs(float64(results[0].Score-want)) > 1e-6 {
		t.Fatalf("expected score %f got %f", want, results[0].Score)
	}
}

// S2 — phrase adjacency.
func TestPhraseSearchAdjacency(t *testing.T) {
	dict := term.NewDictionary()
	idx := New()
	v := buildVector(dict,
		vector.Token{Term: "quick", Position: 1},
		vector.Token{Term: "brown", Position: 2},
		vector.Token{Term: "fox", Position: 3},
	)
	idx.InsertVector(0, v)

	ids := func(terms ...string) []term.ID {
		out := make([]term.ID, len(terms))
		for i, tm := range terms {
			id, ok := dict.LookupByName(tm)
			if !ok {
				t.Fatalf("term %q not interned", tm)
			}
			out[i] = id
		}
		return out
	}

	if got := idx.DocsWithPhrase(ids("quick", "brown")); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected quick-brown to match doc 0, got %v", got)
	}
	if got := idx.DocsWithPhrase(ids("brown", "fox")); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected brown-fox to match doc 0, got %v", got)
	}
	if got := idx.DocsWithPhrase(ids("quick", "fox")); len(got) != 0 {
		t.Fatalf("expected quick-fox to NOT match (not adjacent), got %v", got)
	}
}

func TestPhraseSearchMissingTermReturnsEmpty(t *testing.T) {
	dict := term.NewDictionary()
	idx := New()
	v := buildVector(dict, vector.Token{Term: "quick", Position: 1})
	idx.InsertVector(0, v)

	quickID, _ := dict.LookupByName("quick")
	missing := term.ID(12345)

	if got := idx.PhraseSearch([]term.ID{quickID, missing}); got != nil {
		t.Fatalf("expected nil when a phrase term has no postings, got %v", got)
	}
}

func TestPhraseSearchMultiDoc(t *testing.T) {
	dict := term.NewDictionary()
	idx := New()

	a := buildVector(dict, vector.Token{Term: "new", Position: 1}, vector.Token{Term: "york", Position: 2})
	b := buildVector(dict, vector.Token{Term: "new", Position: 1}, vector.Token{Term: "jersey", Position: 2})
	idx.InsertVector(0, a)
	idx.InsertVector(1, b)

	newID, _ := dict.LookupByName("new")
	yorkID, _ := dict.LookupByName("york")

	got := idx.DocsWithPhrase([]term.ID{newID, yorkID})
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected only doc 0 to match 'new york', got %v", got)
	}
}
