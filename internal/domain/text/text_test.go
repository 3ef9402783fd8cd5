package text

import (
	"reflect"
	"testing"
)

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"C++ Developer!",
		"  Señor   Gopher  ",
		"node.js & react",
		"",
		"PostgreSQL 16",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalize_KeepsPlus(t *testing.T) {
	if got := Normalize("C++"); got != "c++" {
		t.Fatalf("expected c++, got %q", got)
	}
	if got := Normalize("C#/.NET"); got != "cnet" {
		t.Fatalf("expected cnet, got %q", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Senior Go/Python Engineer (Remote)")
	want := []string{"senior", "gopython", "engineer", "remote"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTokenize_TrimsResidualPunctuation(t *testing.T) {
	// '+' survives Normalize but is trimmed from token edges, so free text
	// "c++" collapses to "c" while a normalized skill keeps its plus signs.
	got := Tokenize("we use c++ daily")
	want := []string{"we", "use", "c", "daily"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if got := Tokenize("  !!! ---  "); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>Build <b>APIs</b> in Go</p>")
	if Normalize(got) != Normalize(" Build  APIs  in Go ") {
		t.Fatalf("unexpected strip result: %q", got)
	}
}
