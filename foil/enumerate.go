package foil

import "fmt"

// Enumerator yields each distinct argument tuple for a candidate literal
// of a given arity, given the variables already in scope (§4.D). It is a
// pull iterator with an internal deduplication set, per the Design Notes'
// guidance to implement this as a value-producing stream rather than a
// mutated collection.
//
// Each position of a yielded tuple is either one of the in-scope
// variables or a freshly-named variable; at least one position must
// reference an in-scope variable, and two tuples that differ only by a
// renaming of their fresh variables are produced at most once. Fresh
// variables are named deterministically: the i-th fresh slot introduced,
// left to right within a tuple, gets the smallest "V<n>" identifier not
// already used by an in-scope variable.
type Enumerator struct {
	vars          []Variable
	existingNames map[string]bool
	arity         int
	base          uint64
	total         uint64
	next          uint64
	seen          map[string]bool
}

// NewEnumerator returns an enumerator for tuples of the given arity over
// the variable set vars. vars must be supplied in a stable order (e.g.
// Vars' first-occurrence order) for enumeration order to be reproducible
// across runs.
func NewEnumerator(vars []Variable, arity int) *Enumerator {
	names := make(map[string]bool, len(vars))
	for _, v := range vars {
		names[v.Name] = true
	}
	base := uint64(len(vars) + arity)
	total := uint64(1)
	for i := 0; i < arity; i++ {
		total *= base
	}
	if arity == 0 {
		total = 0 // an arity-0 literal can never reference an in-scope variable
	}
	return &Enumerator{
		vars:          vars,
		existingNames: names,
		arity:         arity,
		base:          base,
		total:         total,
		seen:          map[string]bool{},
	}
}

// Next returns the next distinct tuple, or (nil, false) once the
// enumerator is exhausted.
func (e *Enumerator) Next() ([]Term, bool) {
	for e.next < e.total {
		digits := e.decode(e.next)
		e.next++
		terms, ok := e.build(digits)
		if !ok {
			continue
		}
		key := tupleKey(terms)
		if e.seen[key] {
			continue
		}
		e.seen[key] = true
		return terms, true
	}
	return nil, false
}

// decode turns a linear index into e.arity digits base e.base, most
// significant digit first.
func (e *Enumerator) decode(idx uint64) []int {
	digits := make([]int, e.arity)
	for i := e.arity - 1; i >= 0; i-- {
		digits[i] = int(idx % e.base)
		idx /= e.base
	}
	return digits
}

// build maps a digit tuple to a term tuple: digits below len(e.vars)
// select an in-scope variable; digits at or above that select a fresh
// variable, named by the order its digit first appears in this tuple.
// build returns ok=false if no digit selects an in-scope variable.
func (e *Enumerator) build(digits []int) ([]Term, bool) {
	terms := make([]Term, len(digits))
	fresh := map[int]Variable{}
	usedExisting := false
	counter := 0
	for i, d := range digits {
		if d < len(e.vars) {
			terms[i] = e.vars[d]
			usedExisting = true
			continue
		}
		v, ok := fresh[d]
		if !ok {
			v = Variable{Name: e.freshName(&counter)}
			fresh[d] = v
		}
		terms[i] = v
	}
	if !usedExisting {
		return nil, false
	}
	return terms, true
}

func (e *Enumerator) freshName(counter *int) string {
	for {
		name := fmt.Sprintf("V%d", *counter)
		*counter++
		if !e.existingNames[name] {
			return name
		}
	}
}

func tupleKey(terms []Term) string {
	s := ""
	for i, t := range terms {
		if i > 0 {
			s += ","
		}
		switch v := t.(type) {
		case Variable:
			s += "v:" + v.Name
		case Value:
			s += "c:" + v.Symbol
		}
	}
	return s
}
