package query

import (
	"reflect"
	"testing"

	"github.com/rekki/go-query-db/field"
	"github.com/rekki/go-query-db/term"
)

var (
	f = field.ID(0)
	a = term.ID(0)
)

func TestOrDropsMatchNoneAndFlattens(t *testing.T) {
	got := Or(MatchNone(), Or(Term(f, a), MatchNone()))
	want := Term(f, a)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestOrAllMatchNoneIsMatchNone(t *testing.T) {
	got := Or(MatchNone(), MatchNone())
	if got.Kind != KindMatchNone {
		t.Fatalf("expected MatchNone, got %+v", got)
	}
}

func TestOrEmptyIsMatchNone(t *testing.T) {
	got := Or()
	if got.Kind != KindMatchNone {
		t.Fatalf("expected MatchNone for empty Or, got %+v", got)
	}
}

func TestOrSingleChildUnwraps(t *testing.T) {
	// S8
	got := Or(Term(f, a))
	want := Term(f, a)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestAndSingleChildUnwraps(t *testing.T) {
	// S8
	got := And(Term(f, a))
	want := Term(f, a)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestAndWithMatchNoneIsMatchNone(t *testing.T) {
	got := And(Term(f, a), MatchNone())
	if got.Kind != KindMatchNone {
		t.Fatalf("expected MatchNone, got %+v", got)
	}
}

func TestAndDropsMatchAll(t *testing.T) {
	// S4: and([or([Term(f,a)]), MatchAll]) simplifies to Term(f,a).
	got := And(Or(Term(f, a)), MatchAll())
	want := Term(f, a)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestAndAllMatchAllIsMatchAll(t *testing.T) {
	got := And(MatchAll(), MatchAll())
	if got.Kind != KindMatchAll {
		t.Fatalf("expected MatchAll, got %+v", got)
	}
}

func TestFilterMatchNoneShortCircuits(t *testing.T) {
	// S4: filter(MatchNone, anything) simplifies to MatchNone.
	got := Filter(MatchNone(), Term(f, a))
	if got.Kind != KindMatchNone {
		t.Fatalf("expected MatchNone, got %+v", got)
	}
}

func TestFilterMatchAllFilterIsQuery(t *testing.T) {
	got := Filter(Term(f, a), MatchAll())
	want := Term(f, a)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestExcludeMatchAllFilterIsMatchNone(t *testing.T) {
	got := Exclude(Term(f, a), MatchAll())
	if got.Kind != KindMatchNone {
		t.Fatalf("expected MatchNone, got %+v", got)
	}
}

func TestExcludeMatchNoneFilterIsQuery(t *testing.T) {
	got := Exclude(Term(f, a), MatchNone())
	want := Term(f, a)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestDoubleNotIsFilterMatchAll(t *testing.T) {
	// S4: not(not(Term(f,a))) simplifies to Filter(MatchAll, Term(f,a)).
	got := Not(Not(Term(f, a)))
	want := Filter(MatchAll(), Term(f, a))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestFilterOfFilterMatchAllCollapses(t *testing.T) {
	inner := Term(f, a)
	got := Filter(MatchAll(), Filter(MatchAll(), inner))
	want := Filter(MatchAll(), inner)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	raw := Query{Kind: KindAnd, Children: []Query{
		{Kind: KindOr, Children: []Query{Term(f, a)}},
		MatchAll(),
		{Kind: KindOr, Children: []Query{MatchNone()}},
	}}

	once := Simplify(raw)
	twice := Simplify(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("simplify not idempotent: once=%+v twice=%+v", once, twice)
	}
}

func TestBoostNeverSimplifiesFactorOne(t *testing.T) {
	got := Boost(Term(f, a), 1.0)
	if got.Kind != KindBoost || got.Boost != 1.0 {
		t.Fatalf("expected Boost node preserved at factor 1.0, got %+v", got)
	}
}
