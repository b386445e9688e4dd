package normalize

import "testing"

func TestLowerCase(t *testing.T) {
	if got := Normalize("HeLLo World", NewLowerCase()); got != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestTrim(t *testing.T) {
	if got := Normalize("  hello  ", NewTrim()); got != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanup(t *testing.T) {
	cases := []struct{ in, want string }{
		{"hello,,,world", "hello world"},
		{"  multiple   spaces  ", "multiple spaces"},
		{"rock&roll!", "rock roll"},
		{"abc123", "abc123"},
	}
	for _, c := range cases {
		if got := Normalize(c.in, NewCleanup()); got != c.want {
			t.Fatalf("in=%q got %q want %q", c.in, got, c.want)
		}
	}
}

func TestSpaceBetweenDigits(t *testing.T) {
	cases := []struct{ in, want string }{
		{"abc123def45", "abc 123def 45"},
		{"hello", "hello"},
		{"123", "123"},
		{"a1b2", "a 1b 2"},
	}
	for _, c := range cases {
		if got := Normalize(c.in, NewSpaceBetweenDigits()); got != c.want {
			t.Fatalf("in=%q got %q want %q", c.in, got, c.want)
		}
	}
}

func TestUnaccent(t *testing.T) {
	cases := []struct{ in, want string }{
		{"café", "cafe"},
		{"naïve résumé", "naive resume"},
		{"hello", "hello"},
		{"São Paulo", "Sao Paulo"},
	}
	for _, c := range cases {
		if got := Normalize(c.in, NewUnaccent()); got != c.want {
			t.Fatalf("in=%q got %q want %q", c.in, got, c.want)
		}
	}
}

func TestNoop(t *testing.T) {
	if got := Normalize("Hello World", NewNoop()); got != "Hello World" {
		t.Fatalf("got %q", got)
	}
}

func TestChain(t *testing.T) {
	got := Normalize("  Café LATTE  ", NewTrim(), NewUnaccent(), NewLowerCase())
	if got != "cafe latte" {
		t.Fatalf("got %q", got)
	}
}

func TestEmptyChainIsIdentity(t *testing.T) {
	if got := Normalize("Hello"); got != "Hello" {
		t.Fatalf("got %q", got)
	}
}
