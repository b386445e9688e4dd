package vector

import (
	"testing"

	"github.com/rekki/go-query-db/term"
)

func TestFromTokensLength(t *testing.T) {
	dict := term.NewDictionary()
	v := FromTokens([]Token{
		{Term: "hello", Position: 1},
		{Term: "world", Position: 2},
		{Term: "hello", Position: 3},
	}, dict)

	if v.Length != 3 {
		t.Fatalf("expected length 3 (token count, not distinct terms), got %d", v.Length)
	}

	helloID, _ := dict.LookupByName("hello")
	helloTerm := v.Terms[helloID]
	if len(helloTerm.Positions) != 2 || helloTerm.Positions[0] != 1 || helloTerm.Positions[1] != 3 {
		t.Fatalf("expected hello at positions [1,3], got %v", helloTerm.Positions)
	}
	if helloTerm.Weight != 2.0 {
		t.Fatalf("expected accumulated weight 2.0 (default 1.0 each), got %f", helloTerm.Weight)
	}
}

func TestBoost(t *testing.T) {
	dict := term.NewDictionary()
	v := FromTokens([]Token{{Term: "a", Position: 1}}, dict)
	v.Boost(2.0)

	id, _ := dict.LookupByName("a")
	if v.Terms[id].Weight != 2.0 {
		t.Fatalf("expected boosted weight 2.0, got %f", v.Terms[id].Weight)
	}
}

func TestAppendShiftsPositions(t *testing.T) {
	dict := term.NewDictionary()
	// S3: title "karl hobley" (length 2) copied into all_text.
	title := FromTokens([]Token{{Term: "karl", Position: 1}, {Term: "hobley", Position: 2}}, dict)

	allText := New()
	allText.Append(title)

	if allText.Length != 2 {
		t.Fatalf("expected all_text length 2 after appending title, got %d", allText.Length)
	}

	karlID, _ := dict.LookupByName("karl")
	if got := allText.Terms[karlID].Positions; len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected karl shifted to position 1 in empty receiver, got %v", got)
	}

	// Now append title again, as a second source field's content, to
	// check positions land beyond the first region (title.length + 1).
	allText.Append(title)
	if got := allText.Terms[karlID].Positions; len(got) != 2 || got[1] != 3 {
		t.Fatalf("expected second karl at shifted position 3 (2+1), got %v", got)
	}
}

func TestAddNotCommutative(t *testing.T) {
	dict := term.NewDictionary()
	a := FromTokens([]Token{{Term: "x", Position: 1}}, dict)
	b := FromTokens([]Token{{Term: "y", Position: 1}}, dict)

	ab := Add(a, b)
	ba := Add(b, a)

	xID, _ := dict.LookupByName("x")
	yID, _ := dict.LookupByName("y")

	if ab.Terms[xID].Positions[0] != 1 {
		t.Fatalf("expected x at position 1 in a+b")
	}
	if ab.Terms[yID].Positions[0] != 2 {
		t.Fatalf("expected y shifted to position 2 in a+b, got %v", ab.Terms[yID].Positions)
	}
	if ba.Terms[yID].Positions[0] != 1 {
		t.Fatalf("expected y at position 1 in b+a")
	}
	if ba.Terms[xID].Positions[0] != 2 {
		t.Fatalf("expected x shifted to position 2 in b+a, got %v", ba.Terms[xID].Positions)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	dict := term.NewDictionary()
	v := FromTokens([]Token{{Term: "a", Position: 1}}, dict)
	cp := v.Clone()
	cp.Boost(2.0)

	id, _ := dict.LookupByName("a")
	if v.Terms[id].Weight == cp.Terms[id].Weight {
		t.Fatalf("expected clone mutation to not affect original")
	}
}
