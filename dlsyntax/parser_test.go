package dlsyntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kevinawalsh/foil/foil"
)

func TestParseLiteralGroundAtom(t *testing.T) {
	lit, err := ParseLiteral("parent(abe, bob)")
	if err != nil {
		t.Fatalf("ParseLiteral: %v", err)
	}
	want := foil.Literal{Atom: foil.Atom{Functor: "parent", Terms: []foil.Term{
		foil.Value{Symbol: "abe"}, foil.Value{Symbol: "bob"},
	}}}
	if diff := cmp.Diff(want, lit); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLiteralVariablesAndNegation(t *testing.T) {
	lit, err := ParseLiteral("not path(X, Y)")
	if err != nil {
		t.Fatalf("ParseLiteral: %v", err)
	}
	if !lit.Negated {
		t.Fatalf("expected negated literal, got %s", lit)
	}
	want := []foil.Term{foil.Variable{Name: "X"}, foil.Variable{Name: "Y"}}
	if diff := cmp.Diff(want, lit.Atom.Terms); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLiteralBangShorthand(t *testing.T) {
	lit, err := ParseLiteral("!eq(X, Y)")
	if err != nil {
		t.Fatalf("ParseLiteral: %v", err)
	}
	if !lit.Negated {
		t.Fatalf("expected negated literal, got %s", lit)
	}
}

func TestParseLiteralNullaryAtom(t *testing.T) {
	lit, err := ParseLiteral("true")
	if err != nil {
		t.Fatalf("ParseLiteral: %v", err)
	}
	if lit.Atom.Functor != "true" || lit.Atom.Arity() != 0 {
		t.Errorf("got %s, want nullary atom true", lit)
	}
}

func TestParseClauseFact(t *testing.T) {
	c, err := ParseClause("parent(abe, bob).")
	if err != nil {
		t.Fatalf("ParseClause: %v", err)
	}
	if len(c.Body) != 0 {
		t.Fatalf("expected a fact, got body %v", c.Body)
	}
	if c.Head.Atom.Functor != "parent" {
		t.Errorf("got head functor %q, want parent", c.Head.Atom.Functor)
	}
}

func TestParseClauseRule(t *testing.T) {
	c, err := ParseClause("grandparent(X, Z) :- parent(X, Y), parent(Y, Z).")
	if err != nil {
		t.Fatalf("ParseClause: %v", err)
	}
	if len(c.Body) != 2 {
		t.Fatalf("got %d body literals, want 2", len(c.Body))
	}
	if !c.Safe() {
		t.Errorf("clause %s should be safe", c)
	}
}

func TestParseClauseRejectsNegatedHead(t *testing.T) {
	_, err := ParseClause("not foo(X).")
	if err == nil {
		t.Fatalf("expected an error for a negated clause head")
	}
}

func TestParseProgramMultipleClausesAndComments(t *testing.T) {
	text := `
		% facts about parenthood
		parent(abe, bob).
		parent(bob, carl). # inline comment style too

		grandparent(X, Z) :- parent(X, Y), parent(Y, Z).
	`
	clauses, err := ParseProgram(text)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(clauses) != 3 {
		t.Fatalf("got %d clauses, want 3: %v", len(clauses), clauses)
	}
	if clauses[2].Head.Atom.Functor != "grandparent" {
		t.Errorf("got third clause %s, want grandparent head", clauses[2])
	}
}

func TestParseProgramEmpty(t *testing.T) {
	clauses, err := ParseProgram("   % nothing but comments\n")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(clauses) != 0 {
		t.Fatalf("got %d clauses, want 0", len(clauses))
	}
}

func TestParseClauseMissingTerminator(t *testing.T) {
	_, err := ParseClause("parent(abe, bob)")
	if err == nil {
		t.Fatalf("expected an error for a missing '.'")
	}
}

func TestParseLiteralRoundTripsWithString(t *testing.T) {
	orig := "grandparent(X, Z) :- parent(X, Y), not parent(Y, Z)."
	c, err := ParseClause(orig)
	if err != nil {
		t.Fatalf("ParseClause: %v", err)
	}
	reparsed, err := ParseClause(c.String())
	if err != nil {
		t.Fatalf("ParseClause(String()): %v", err)
	}
	if diff := cmp.Diff(c, reparsed); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}
