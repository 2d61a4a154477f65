package textnorm

import "testing"

func expanderFor(entries ...Contraction) expander {
	return expander(compileRules(&Lexicon{Entries: entries}))
}

func TestExpand_WholeWordOnly(t *testing.T) {
	e := expanderFor(Contraction{From: "la", To: "LA"})
	tests := []struct {
		input, want string
	}{
		{"lava", "lava"},
		{"la lava", "LA lava"},
		{"Lala la", "Lala LA"},
		{"la", "LA"},
		{"(la)", "(LA)"},
		{"la_la", "la_la"},
		{"la1", "la1"},
		{"lá", "lá"},
		{"élla", "élla"},
	}
	for _, tt := range tests {
		got := e.expand(tt.input)
		if got != tt.want {
			t.Errorf("expand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExpand_CaseInsensitive(t *testing.T) {
	e := expanderFor(Contraction{From: "q'huvo", To: "que hubo"})
	for _, input := range []string{"q'huvo", "Q'HUVO", "Q'Huvo"} {
		if got := e.expand(input + "?"); got != "que hubo?" {
			t.Errorf("expand(%q) = %q, want %q", input+"?", got, "que hubo?")
		}
	}
}

func TestExpand_AdjacentMatches(t *testing.T) {
	e := expanderFor(Contraction{From: "pq", To: "porque"})
	if got := e.expand("pq pq,pq"); got != "porque porque,porque" {
		t.Errorf("got %q", got)
	}
}

func TestExpand_DeclarationOrder(t *testing.T) {
	// The first rule's output is visible to the second one within the same pass.
	e := expanderFor(
		Contraction{From: "a", To: "b"},
		Contraction{From: "b", To: "c"},
	)
	if got := e.expand("a"); got != "c" {
		t.Errorf("expand(a) = %q, want c", got)
	}

	// Reversed order: a single pass stops after a -> b.
	e = expanderFor(
		Contraction{From: "b", To: "c"},
		Contraction{From: "a", To: "b"},
	)
	if got := e.expand("a"); got != "b" {
		t.Errorf("expand(a) = %q, want b", got)
	}
}

func TestExpand_MultiWordKey(t *testing.T) {
	e := expanderFor(
		Contraction{From: "la neta", To: "la verdad"},
		Contraction{From: "neta", To: "verdad"},
	)
	tests := []struct {
		input, want string
	}{
		{"con la neta?", "con la verdad?"},
		{"neta que si", "verdad que si"},
		{"la netas", "la netas"},
	}
	for _, tt := range tests {
		got := e.expand(tt.input)
		if got != tt.want {
			t.Errorf("expand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExpand_RegexpMetaIsLiteral(t *testing.T) {
	e := expanderFor(Contraction{From: "x.d", To: "jaja"})
	if got := e.expand("xad x.d"); got != "xad jaja" {
		t.Errorf("got %q", got)
	}
}

func TestAtBoundary(t *testing.T) {
	tests := []struct {
		s    string
		i    int
		want bool
	}{
		{"ab", 0, true},
		{"ab", 1, false},
		{"ab", 2, true},
		{"a b", 1, true},
		{"", 0, false},
		{"é!", 2, true},
		{"!!", 1, false},
	}
	for _, tt := range tests {
		got := atBoundary(tt.s, tt.i)
		if got != tt.want {
			t.Errorf("atBoundary(%q, %d) = %v, want %v", tt.s, tt.i, got, tt.want)
		}
	}
}
