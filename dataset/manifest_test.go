package dataset

import (
	"testing"

	"github.com/kevinawalsh/foil/foil"
	"github.com/stretchr/testify/require"
)

const parenthoodBackground = `
parent(abe, bob).
parent(bob, carl).
parent(carl, dawn).
`

const parenthoodManifest = `
target: "grandparent(X, Z)"
masks:
  - functor: parent
    arity: 2
positives:
  - X: abe
    Z: carl
  - X: bob
    Z: dawn
negatives:
  - X: abe
    Z: bob
  - X: dawn
    Z: abe
`

func TestLoadBuildsWellFormedProblem(t *testing.T) {
	problem, err := Load(parenthoodBackground, []byte(parenthoodManifest))
	require.NoError(t, err)
	require.Len(t, problem.Background, 3)
	require.Equal(t, "grandparent", problem.Target.Atom.Functor)
	require.Len(t, problem.Masks, 1)
	require.Equal(t, foil.Mask{Functor: "parent", Arity: 2}, problem.Masks[0])
	require.Len(t, problem.Positives, 2)
	require.Len(t, problem.Negatives, 2)
	require.NoError(t, foil.Validate(problem))
}

func TestLoadDerivesUniverseFromAllSources(t *testing.T) {
	problem, err := Load(parenthoodBackground, []byte(parenthoodManifest))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := map[string]bool{"abe": true, "bob": true, "carl": true, "dawn": true}
	if len(problem.Universe) != len(want) {
		t.Fatalf("got %d universe constants, want %d: %v", len(problem.Universe), len(want), problem.Universe)
	}
	for _, val := range problem.Universe {
		if !want[val.Symbol] {
			t.Errorf("unexpected universe constant %q", val.Symbol)
		}
	}
}

func TestLoadUniverseIsSortedAndDeduplicated(t *testing.T) {
	problem, err := Load(parenthoodBackground, []byte(parenthoodManifest))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 1; i < len(problem.Universe); i++ {
		if problem.Universe[i-1].Symbol >= problem.Universe[i].Symbol {
			t.Fatalf("universe not strictly sorted: %v", problem.Universe)
		}
	}
}

func TestLoadRejectsMalformedBackground(t *testing.T) {
	_, err := Load("parent(abe, bob)", []byte(parenthoodManifest)) // missing '.'
	if err == nil {
		t.Fatalf("expected an error for a malformed background program")
	}
}

func TestLoadRejectsExampleMissingTargetVariable(t *testing.T) {
	manifest := `
target: "grandparent(X, Z)"
masks: []
positives:
  - X: abe
negatives: []
`
	_, err := Load(parenthoodBackground, []byte(manifest))
	if err == nil {
		t.Fatalf("expected an error when a positive row omits target variable Z")
	}
}

func TestLoadRejectsNegatedTarget(t *testing.T) {
	manifest := `
target: "not grandparent(X, Z)"
masks: []
positives: []
negatives: []
`
	_, err := Load(parenthoodBackground, []byte(manifest))
	if err == nil {
		t.Fatalf("expected an error for a negated target literal")
	}
}

func TestLoadSplicesBuiltinEqFacts(t *testing.T) {
	manifest := `
target: "grandparent(X, Z)"
masks:
  - functor: parent
    arity: 2
  - functor: eq
    arity: 2
positives:
  - X: abe
    Z: carl
negatives:
  - X: abe
    Z: bob
`
	problem, err := Load(parenthoodBackground, []byte(manifest))
	require.NoError(t, err)
	require.Len(t, problem.Masks, 2)

	eqFacts := 0
	for _, c := range problem.Background {
		if c.Head.Atom.Functor != "eq" {
			continue
		}
		require.Len(t, c.Body, 0)
		require.Len(t, c.Head.Atom.Terms, 2)
		require.Equal(t, c.Head.Atom.Terms[0], c.Head.Atom.Terms[1])
		eqFacts++
	}
	require.Equal(t, len(problem.Universe), eqFacts)
	require.NoError(t, foil.Validate(problem))
}

func TestLoadDoesNotDuplicateBuiltinFactsForRepeatedMask(t *testing.T) {
	manifest := `
target: "grandparent(X, Z)"
masks:
  - functor: eq
    arity: 2
  - functor: eq
    arity: 2
    negated: true
positives:
  - X: abe
    Z: carl
negatives:
  - X: abe
    Z: bob
`
	problem, err := Load(parenthoodBackground, []byte(manifest))
	require.NoError(t, err)

	eqFacts := 0
	for _, c := range problem.Background {
		if c.Head.Atom.Functor == "eq" {
			eqFacts++
		}
	}
	require.Equal(t, len(problem.Universe), eqFacts)
}

func TestLoadAcceptsJSONManifestViaGhodssYAML(t *testing.T) {
	manifest := `{"target": "grandparent(X, Z)", "masks": [{"functor": "parent", "arity": 2}], "positives": [{"X": "abe", "Z": "carl"}], "negatives": []}`
	problem, err := Load(parenthoodBackground, []byte(manifest))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(problem.Positives) != 1 {
		t.Fatalf("got %d positives, want 1", len(problem.Positives))
	}
}
