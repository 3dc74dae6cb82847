// Copyright (c) 2014, Kevin Walsh. All rights reserved.
//
// This library is free software; you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation; either version 2 of the
// License, or (at your option) any later version.
//
// This library is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public
// License along with this library; if not, write to the Free Software
// Foundation, Inc. 51 Franklin St, Fifth Floor, Boston, MA 02110-1301
// USA

// Package foilprim provides custom "builtin" predicates, like equality
// and ordering, whose extension over the constant universe can be
// computed directly instead of being asserted clause by clause.
//
// The original predicate of this shape, dlprim.Equals, plugged into a
// top-down resolver by implementing a Search callback invoked lazily
// per query. foil's grounder works bottom-up instead: there is no
// per-query hook to plug into mid-fixpoint, so a builtin here is instead
// precomputed as an ordinary set of fact clauses over the universe and
// merged into the background program before grounding. The candidate
// enumerator (§4.D) then proposes eq/lt literals exactly like any other
// mask, with no special casing in the grounder itself.
package foilprim

import (
	"sort"

	"github.com/kevinawalsh/foil/foil"
)

// EqFunctor and LtFunctor name the two builtin predicates this package
// provides.
const (
	EqFunctor = "eq"
	LtFunctor = "lt"
)

// EqMask is the mask for the positive equality predicate eq(X, Y).
func EqMask() foil.Mask { return foil.Mask{Functor: EqFunctor, Arity: 2, Negated: false} }

// NotEqMask is the mask for the negated form, usable where a candidate
// body needs to assert that two terms differ.
func NotEqMask() foil.Mask { return foil.Mask{Functor: EqFunctor, Arity: 2, Negated: true} }

// LtMask is the mask for the ordering predicate lt(X, Y), defined over
// the lexicographic order of the universe's symbols.
func LtMask() foil.Mask { return foil.Mask{Functor: LtFunctor, Arity: 2, Negated: false} }

// EqFacts returns the fact clause eq(c, c) for every constant c in
// universe: the reflexive relation, which is all Equals ever generates
// for two already-ground arguments (the only case the bottom-up
// grounder needs, since the learner only ever asks for ground coverage).
func EqFacts(universe []foil.Value) []foil.Clause {
	facts := make([]foil.Clause, 0, len(universe))
	for _, c := range universe {
		facts = append(facts, foil.Clause{
			Head: foil.Literal{Atom: foil.Atom{Functor: EqFunctor, Terms: []foil.Term{c, c}}},
		})
	}
	return facts
}

// LtFacts returns lt(a, b) for every pair of constants in universe with
// a.Symbol < b.Symbol lexicographically.
func LtFacts(universe []foil.Value) []foil.Clause {
	sorted := append([]foil.Value{}, universe...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Symbol < sorted[j].Symbol })

	var facts []foil.Clause
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			facts = append(facts, foil.Clause{
				Head: foil.Literal{Atom: foil.Atom{Functor: LtFunctor, Terms: []foil.Term{sorted[i], sorted[j]}}},
			})
		}
	}
	return facts
}
