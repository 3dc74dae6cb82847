// Copyright (c) 2014, Kevin Walsh. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package foil implements First-Order Inductive Learning: given a target
// relation, a background logic program, and labelled examples, it
// synthesizes a set of definite Horn clauses whose union covers every
// positive example and no negative example.
//
// Unlike the query engine this package is descended from, foil evaluates
// clauses bottom-up: it grounds a program to its least Herbrand model
// rather than resolving a single query top-down against a tabled
// database. There is no mutable clause database and no Assert/Retract;
// every value here is immutable, and a Program is grounded fresh each
// time a candidate clause needs scoring.
package foil

import (
	"sort"
	"strings"
)

// Term is an argument of an Atom: either a Value (a ground constant) or a
// Variable. Both are small comparable structs, so Term equality is plain
// Go equality on the underlying concrete type, and a Term can be used as a
// map key.
type Term interface {
	term()
	String() string
}

// Value is an atomic constant drawn from a finite domain: a symbol or a
// small integer, represented textually.
type Value struct {
	Symbol string
}

func (Value) term() {}

// String returns the value's textual symbol.
func (v Value) String() string { return v.Symbol }

// Variable is a symbol drawn from a namespace disjoint from Value; two
// variables are the same iff their names match.
type Variable struct {
	Name string
}

func (Variable) term() {}

// String returns the variable's name.
func (v Variable) String() string { return v.Name }

// IsVariable reports whether t is a Variable rather than a Value.
func IsVariable(t Term) bool {
	_, ok := t.(Variable)
	return ok
}

// Atom is a functor applied to an ordered tuple of terms. Arity is fixed
// per functor across a program.
type Atom struct {
	Functor string
	Terms   []Term
}

// Arity returns the number of terms in the atom.
func (a Atom) Arity() int { return len(a.Terms) }

// Ground reports whether every term in the atom is a Value.
func (a Atom) Ground() bool {
	for _, t := range a.Terms {
		if IsVariable(t) {
			return false
		}
	}
	return true
}

// Equal reports whether two atoms are structurally identical.
func (a Atom) Equal(b Atom) bool {
	if a.Functor != b.Functor || len(a.Terms) != len(b.Terms) {
		return false
	}
	for i := range a.Terms {
		if a.Terms[i] != b.Terms[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical string for a ground atom, suitable as a set
// key. Key panics if the atom is not ground; callers must check Ground
// first.
func (a Atom) Key() string {
	var buf strings.Builder
	buf.WriteString(a.Functor)
	buf.WriteByte('/')
	for i, t := range a.Terms {
		v, ok := t.(Value)
		if !ok {
			panic("foil: Key called on a non-ground atom")
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(v.Symbol)
	}
	return buf.String()
}

// String is a pretty-printer for atoms, producing traditional Prolog-like
// syntax: functor(arg, arg, ...).
func (a Atom) String() string {
	if len(a.Terms) == 0 {
		return a.Functor
	}
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = t.String()
	}
	return a.Functor + "(" + strings.Join(parts, ", ") + ")"
}

// Substitute applies an Assignment to every variable term in the atom,
// leaving unmapped variables and constants untouched.
func (a Atom) Substitute(asn Assignment) Atom {
	if len(asn) == 0 {
		return a
	}
	terms := make([]Term, len(a.Terms))
	for i, t := range a.Terms {
		if v, ok := t.(Variable); ok {
			if c, ok := asn[v.Name]; ok {
				terms[i] = c
				continue
			}
		}
		terms[i] = t
	}
	return Atom{Functor: a.Functor, Terms: terms}
}

// Literal is an atom together with a negation flag. Two literals are
// equal iff functor, term tuple, and negation flag all match.
type Literal struct {
	Atom    Atom
	Negated bool
}

// Equal reports whether two literals are structurally identical.
func (l Literal) Equal(o Literal) bool {
	return l.Negated == o.Negated && l.Atom.Equal(o.Atom)
}

// Substitute applies an Assignment to the literal's atom.
func (l Literal) Substitute(asn Assignment) Literal {
	return Literal{Atom: l.Atom.Substitute(asn), Negated: l.Negated}
}

// String is a pretty-printer for literals.
func (l Literal) String() string {
	if l.Negated {
		return "not " + l.Atom.String()
	}
	return l.Atom.String()
}

// Clause has a head literal and zero or more body literals. With an
// empty body it is a fact; otherwise it is a rule. The head is never
// negated.
type Clause struct {
	Head Literal
	Body []Literal
}

// String is a pretty-printer for clauses, producing "head :- b1, b2." or
// "head." for facts.
func (c Clause) String() string {
	if len(c.Body) == 0 {
		return c.Head.String() + "."
	}
	parts := make([]string, len(c.Body))
	for i, l := range c.Body {
		parts[i] = l.String()
	}
	return c.Head.String() + " :- " + strings.Join(parts, ", ") + "."
}

// Safe reports whether every variable in the head also appears in the
// body. The enumerator (§4.D) proposes literals that mix in-scope and
// fresh variables, so a clause the learner builds need not be Safe: its
// body may leave some head variables unmentioned, and Program.Ground
// grounds those over the universe.
func (c Clause) Safe() bool {
	seen := map[string]bool{}
	for _, l := range c.Body {
		for _, t := range l.Atom.Terms {
			if v, ok := t.(Variable); ok {
				seen[v.Name] = true
			}
		}
	}
	for _, t := range c.Head.Atom.Terms {
		if v, ok := t.(Variable); ok {
			if !seen[v.Name] {
				return false
			}
		}
	}
	return true
}

// Assignment maps variable names to values; it is total over whichever
// variable set the caller cares about (typically a target literal's
// variables).
type Assignment map[string]Value

// Equal reports whether two assignments map the same names to the same
// values.
func (a Assignment) Equal(o Assignment) bool {
	if len(a) != len(o) {
		return false
	}
	for k, v := range a {
		if ov, ok := o[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Key returns a canonical, order-independent string for the assignment.
func (a Assignment) Key() string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	var buf strings.Builder
	for _, n := range names {
		buf.WriteString(n)
		buf.WriteByte('=')
		buf.WriteString(a[n].Symbol)
		buf.WriteByte(';')
	}
	return buf.String()
}

// Label is the classification of an Example.
type Label int

const (
	// Positive examples must be entailed by background ∪ hypothesis.
	Positive Label = iota
	// Negative examples must not be entailed.
	Negative
)

// String renders the label as "positive" or "negative".
func (l Label) String() string {
	if l == Positive {
		return "positive"
	}
	return "negative"
}

// Example pairs an assignment with a label. Two examples with identical
// assignments but different labels are distinct: Key includes the label.
type Example struct {
	Assignment Assignment
	Label      Label
}

// Key returns a canonical string identifying the example, including its
// label, so that an example can be compared or deduplicated cheaply.
func (e Example) Key() string {
	return e.Label.String() + "|" + e.Assignment.Key()
}

// Mask is a template describing which relations the learner may invoke
// in a clause body: a functor, its arity, and whether the learner may
// only propose the negated form.
type Mask struct {
	Functor string
	Arity   int
	Negated bool
}

// Problem bundles everything foil.Learn needs: the background program,
// the relation being learned, the masks bounding candidate literals, the
// labelled examples, and the constant universe used to ground facts
// whose head has unbound variables (see Program.Ground).
type Problem struct {
	Background []Clause
	Target     Literal
	Masks      []Mask
	Positives  []Example
	Negatives  []Example
	Universe   []Value
}

// Hypothesis is an ordered list of clauses. Order is observable because
// test predicates evaluate the first matching derivation, but
// semantically the model is the union of all clauses.
type Hypothesis []Clause

// String renders every clause on its own line.
func (h Hypothesis) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, "\n")
}

// Vars returns the distinct variables occurring in lits, in stable
// first-occurrence order. This order is what makes candidate enumeration
// (§4.D) and literal-selection tie-breaking (§4.G) deterministic.
func Vars(lits ...Literal) []Variable {
	var out []Variable
	seen := map[string]bool{}
	for _, l := range lits {
		for _, t := range l.Atom.Terms {
			if v, ok := t.(Variable); ok {
				if !seen[v.Name] {
					seen[v.Name] = true
					out = append(out, v)
				}
			}
		}
	}
	return out
}
