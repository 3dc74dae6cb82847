package foil

import (
	"errors"

	"github.com/hashicorp/go-multierror"
	pkgerrors "github.com/pkg/errors"
)

// ErrInvalidInput is the sentinel wrapped by every input-validation
// failure: arity mismatches, non-disjoint positive/negative sets, or an
// example whose assignment doesn't cover the target's variables (§7).
var ErrInvalidInput = errors.New("foil: invalid input")

// ErrUnstratified is returned by Program.Ground (and therefore by Learn)
// when the background program's predicate dependency graph has a cycle
// that crosses a negated edge (§7, §9).
var ErrUnstratified = errors.New("foil: unstratified negation")

// Validate checks the invariants §7 assigns to InvalidInput, aggregating
// every violation it finds with go-multierror rather than stopping at
// the first one.
func Validate(p Problem) error {
	var result *multierror.Error

	arities := map[string]int{}
	record := func(functor string, arity int) {
		if existing, ok := arities[functor]; ok {
			if existing != arity {
				result = multierror.Append(result, pkgerrors.Wrapf(ErrInvalidInput,
					"functor %q used with arity %d and %d", functor, existing, arity))
			}
			return
		}
		arities[functor] = arity
	}
	for _, c := range p.Background {
		record(c.Head.Atom.Functor, c.Head.Atom.Arity())
		for _, l := range c.Body {
			record(l.Atom.Functor, l.Atom.Arity())
		}
	}
	record(p.Target.Atom.Functor, p.Target.Atom.Arity())
	for _, m := range p.Masks {
		record(m.Functor, m.Arity)
	}

	targetVars := Vars(p.Target)
	checkCovers := func(examples []Example, label string) {
		for _, ex := range examples {
			for _, v := range targetVars {
				if _, ok := ex.Assignment[v.Name]; !ok {
					result = multierror.Append(result, pkgerrors.Wrapf(ErrInvalidInput,
						"%s example %s does not assign target variable %q", label, ex.Assignment.Key(), v.Name))
				}
			}
		}
	}
	checkCovers(p.Positives, "positive")
	checkCovers(p.Negatives, "negative")

	seen := map[string]bool{}
	for _, ex := range p.Positives {
		seen[ex.Assignment.Key()] = true
	}
	for _, ex := range p.Negatives {
		if seen[ex.Assignment.Key()] {
			result = multierror.Append(result, pkgerrors.Wrapf(ErrInvalidInput,
				"assignment %s appears in both positive and negative examples", ex.Assignment.Key()))
		}
	}

	return result.ErrorOrNil()
}
