package foil

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Program is a set of clauses together with the constant universe they
// are grounded over.
type Program struct {
	Clauses  []Clause
	Universe []Value
}

// World is the least Herbrand model of a Program: the smallest set of
// ground positive literals closed under every clause.
type World struct {
	facts map[string]Literal
	index map[string][]Literal // functor -> ground literals with that functor
}

func newWorld() *World {
	return &World{facts: map[string]Literal{}, index: map[string][]Literal{}}
}

// Contains reports whether the ground literal (by atom) is in the world.
func (w *World) Contains(a Atom) bool {
	_, ok := w.facts[a.Key()]
	return ok
}

// add inserts a ground literal's atom into the world, returning true if
// it was not already present.
func (w *World) add(head Atom) bool {
	key := head.Key()
	if _, ok := w.facts[key]; ok {
		return false
	}
	lit := Literal{Atom: head}
	w.facts[key] = lit
	w.index[head.Functor] = append(w.index[head.Functor], lit)
	return true
}

// Len returns the number of ground facts in the world.
func (w *World) Len() int { return len(w.facts) }

// Ground computes the least Herbrand model of the program by forward
// chaining to a fixpoint (§4.C). Negation is evaluated against the
// current world on every sweep; the loop only stops once a full pass
// over every rule adds nothing, so the final world does not depend on
// rule evaluation order, provided the program is stratified.
//
// Ground returns ErrUnstratified if the program's predicate dependency
// graph has a cycle that crosses a negated edge (§7).
func (p *Program) Ground() (*World, error) {
	if err := p.checkStratified(); err != nil {
		return nil, err
	}

	w := newWorld()

	var rules []Clause
	for _, c := range p.Clauses {
		if len(c.Body) == 0 {
			for _, head := range groundFact(c.Head, p.Universe) {
				w.add(head)
			}
			continue
		}
		rules = append(rules, c)
	}

	for {
		changed := false
		for _, c := range rules {
			for _, head := range groundRuleOnce(c, w) {
				// Head variables the body leaves unbound range over the
				// universe, exactly as they do for a fact.
				for _, g := range groundFact(Literal{Atom: head}, p.Universe) {
					if w.add(g) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return w, nil
}

// groundFact expands a fact clause's head over the universe for every
// variable it still contains. A fact with no variables yields itself
// unchanged; a fact with free variables is universally quantified, e.g.
// "target(X, Y) ← true" yields target(c1, c1), target(c1, c2), ... for
// every pair of constants in the universe (§8 scenario 5).
func groundFact(head Literal, universe []Value) []Atom {
	vars := Vars(head)
	if len(vars) == 0 {
		return []Atom{head.Atom}
	}
	var out []Atom
	var rec func(i int, asn Assignment)
	rec = func(i int, asn Assignment) {
		if i == len(vars) {
			out = append(out, head.Atom.Substitute(asn))
			return
		}
		for _, c := range universe {
			next := cloneAssignment(asn)
			next[vars[i].Name] = c
			rec(i+1, next)
		}
	}
	rec(0, Assignment{})
	return out
}

// groundRuleOnce finds every grounding of c's head reachable by
// extending an assignment across the body, left to right, using facts
// already present in w. Positive literals bind fresh variables from
// matching ground facts; negated literals must already be fully ground
// by the time they are reached, and succeed iff their ground form is
// currently absent from w.
func groundRuleOnce(c Clause, w *World) []Atom {
	var out []Atom
	var rec func(i int, asn Assignment)
	rec = func(i int, asn Assignment) {
		if i == len(c.Body) {
			out = append(out, c.Head.Atom.Substitute(asn))
			return
		}
		lit := c.Body[i]
		if lit.Negated {
			ground := lit.Atom.Substitute(asn)
			if !ground.Ground() {
				// Unsafe: a negated literal with an unbound variable.
				// The clause can never fire; skip it.
				return
			}
			if !w.Contains(ground) {
				rec(i+1, asn)
			}
			return
		}
		for _, fact := range w.index[lit.Atom.Functor] {
			if next, ok := unifyAtomWithFact(lit.Atom, fact.Atom, asn); ok {
				rec(i+1, next)
			}
		}
	}
	rec(0, Assignment{})
	return out
}

// unifyAtomWithFact extends asn by binding pattern's free variables to
// fact's constants, failing if a constant or an already-bound variable
// disagrees with fact.
func unifyAtomWithFact(pattern, fact Atom, asn Assignment) (Assignment, bool) {
	if pattern.Functor != fact.Functor || len(pattern.Terms) != len(fact.Terms) {
		return nil, false
	}
	var extended Assignment
	for i, t := range pattern.Terms {
		fv, ok := fact.Terms[i].(Value)
		if !ok {
			return nil, false
		}
		switch term := t.(type) {
		case Value:
			if term != fv {
				return nil, false
			}
		case Variable:
			bindings := asn
			if extended != nil {
				bindings = extended
			}
			if bound, ok := bindings[term.Name]; ok {
				if bound != fv {
					return nil, false
				}
				continue
			}
			if extended == nil {
				extended = cloneAssignment(asn)
			}
			extended[term.Name] = fv
		}
	}
	if extended != nil {
		return extended, true
	}
	return asn, true
}

func cloneAssignment(asn Assignment) Assignment {
	next := make(Assignment, len(asn)+1)
	for k, v := range asn {
		next[k] = v
	}
	return next
}

// checkStratified rejects programs whose predicate dependency graph has
// a cycle containing a negated edge: the grounder's fixpoint would then
// be order-dependent, which is undefined behavior per §4.C.
func (p *Program) checkStratified() error {
	ids := map[string]int64{}
	nodeID := func(functor string) int64 {
		if id, ok := ids[functor]; ok {
			return id
		}
		id := int64(len(ids))
		ids[functor] = id
		return id
	}

	type edge struct {
		from, to int64
		negated  bool
	}
	var edges []edge

	g := simple.NewDirectedGraph()
	added := map[int64]bool{}
	ensureNode := func(id int64) {
		if !added[id] {
			g.AddNode(simple.Node(id))
			added[id] = true
		}
	}

	for _, c := range p.Clauses {
		h := nodeID(c.Head.Atom.Functor)
		ensureNode(h)
		for _, b := range c.Body {
			f := nodeID(b.Atom.Functor)
			ensureNode(f)
			if h != f {
				// simple.DirectedGraph rejects self edges; self-loops are
				// still recorded in edges and detected below.
				g.SetEdge(simple.Edge{F: simple.Node(h), T: simple.Node(f)})
			}
			edges = append(edges, edge{from: h, to: f, negated: b.Negated})
		}
	}

	for _, scc := range topo.TarjanSCC(g) {
		members := map[int64]bool{}
		for _, n := range scc {
			members[n.ID()] = true
		}
		cyclic := len(scc) > 1
		for _, e := range edges {
			if !members[e.from] || !members[e.to] {
				continue
			}
			if e.from == e.to {
				cyclic = true // self-loop
			}
			if cyclic && e.negated {
				return errors.Wrapf(ErrUnstratified, "predicate %q depends negatively on itself through a cycle", functorByID(ids, e.from))
			}
		}
	}
	return nil
}

func functorByID(ids map[string]int64, id int64) string {
	for f, i := range ids {
		if i == id {
			return f
		}
	}
	return "?"
}
