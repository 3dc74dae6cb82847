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

// Package dataset assembles a foil.Problem from a background program
// written in dlsyntax and a YAML manifest describing the target, masks,
// and labelled examples. The manifest shape mirrors how the Operator
// Lifecycle Manager loads its catalog manifests: plain Go structs tagged
// for encoding/json, unmarshaled through ghodss/yaml so either YAML or
// JSON input works unchanged.
package dataset

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/kevinawalsh/foil/dlsyntax"
	"github.com/kevinawalsh/foil/foil"
	"github.com/kevinawalsh/foil/foilprim"
	pkgerrors "github.com/pkg/errors"
)

// MaskSpec is one entry of a manifest's masks list.
type MaskSpec struct {
	Functor string `json:"functor"`
	Arity   int    `json:"arity"`
	Negated bool   `json:"negated,omitempty"`
}

// Manifest is the top-level shape of the YAML/JSON document dataset.Load
// expects. Target is a dlsyntax literal, e.g. "grandparent(X, Z)".
// Positives and Negatives are lists of assignments, each a map from the
// target's variable names to constant symbols.
type Manifest struct {
	Target    string              `json:"target"`
	Masks     []MaskSpec          `json:"masks"`
	Positives []map[string]string `json:"positives"`
	Negatives []map[string]string `json:"negatives"`
}

// Load parses backgroundText as a dlsyntax program and manifestYAML as a
// Manifest, then combines them into a foil.Problem. The constant universe
// is derived from every constant symbol syntactically present in the
// background, the target, and the example assignments (§4.C step 1).
func Load(backgroundText string, manifestYAML []byte) (foil.Problem, error) {
	background, err := dlsyntax.ParseProgram(backgroundText)
	if err != nil {
		return foil.Problem{}, pkgerrors.Wrapf(foil.ErrInvalidInput, "dataset: background program: %v", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
		return foil.Problem{}, pkgerrors.Wrapf(foil.ErrInvalidInput, "dataset: manifest: %v", err)
	}

	targetLit, err := dlsyntax.ParseLiteral(m.Target)
	if err != nil {
		return foil.Problem{}, pkgerrors.Wrapf(foil.ErrInvalidInput, "dataset: target %q: %v", m.Target, err)
	}
	if targetLit.Negated {
		return foil.Problem{}, pkgerrors.Wrapf(foil.ErrInvalidInput, "dataset: target %q cannot be negated", m.Target)
	}

	targetVars := foil.Vars(targetLit)

	masks := make([]foil.Mask, 0, len(m.Masks))
	for _, ms := range m.Masks {
		masks = append(masks, foil.Mask{Functor: ms.Functor, Arity: ms.Arity, Negated: ms.Negated})
	}

	positives, err := convertExamples(m.Positives, targetVars, foil.Positive)
	if err != nil {
		return foil.Problem{}, pkgerrors.Wrapf(foil.ErrInvalidInput, "dataset: positives: %v", err)
	}
	negatives, err := convertExamples(m.Negatives, targetVars, foil.Negative)
	if err != nil {
		return foil.Problem{}, pkgerrors.Wrapf(foil.ErrInvalidInput, "dataset: negatives: %v", err)
	}

	universe := deriveUniverse(background, targetLit, positives, negatives)
	background = append(background, builtinFacts(masks, universe)...)

	return foil.Problem{
		Background: background,
		Target:     targetLit,
		Masks:      masks,
		Positives:  positives,
		Negatives:  negatives,
		Universe:   universe,
	}, nil
}

// builtinFacts splices the precomputed extension of any foilprim builtin
// (eq, lt) referenced by masks into the background program, so that by the
// time a Problem reaches foil.Program.Ground its builtins are already
// ordinary fact clauses. A manifest may list a builtin's mask more than
// once (e.g. both eq and its negation); each builtin's facts are added at
// most once regardless.
func builtinFacts(masks []foil.Mask, universe []foil.Value) []foil.Clause {
	var facts []foil.Clause
	seen := map[string]bool{}
	for _, m := range masks {
		if seen[m.Functor] {
			continue
		}
		switch m.Functor {
		case foilprim.EqFunctor:
			facts = append(facts, foilprim.EqFacts(universe)...)
		case foilprim.LtFunctor:
			facts = append(facts, foilprim.LtFacts(universe)...)
		default:
			continue
		}
		seen[m.Functor] = true
	}
	return facts
}

// convertExamples turns a manifest's raw rows into foil.Examples, failing
// if a row omits any of the target's variables.
func convertExamples(rows []map[string]string, targetVars []foil.Variable, label foil.Label) ([]foil.Example, error) {
	examples := make([]foil.Example, 0, len(rows))
	for i, row := range rows {
		asn := make(foil.Assignment, len(targetVars))
		for _, tv := range targetVars {
			sym, ok := row[tv.Name]
			if !ok {
				return nil, fmt.Errorf("row %d is missing target variable %q", i, tv.Name)
			}
			asn[tv.Name] = foil.Value{Symbol: sym}
		}
		examples = append(examples, foil.Example{Assignment: asn, Label: label})
	}
	return examples, nil
}

// deriveUniverse collects every distinct constant symbol appearing in the
// background program, the target literal, and the example assignments.
func deriveUniverse(background []foil.Clause, target foil.Literal, positives, negatives []foil.Example) []foil.Value {
	seen := map[string]bool{}
	var universe []foil.Value
	add := func(val foil.Value) {
		if !seen[val.Symbol] {
			seen[val.Symbol] = true
			universe = append(universe, val)
		}
	}

	addAtomConstants := func(a foil.Atom) {
		for _, term := range a.Terms {
			if val, ok := term.(foil.Value); ok {
				add(val)
			}
		}
	}
	for _, c := range background {
		addAtomConstants(c.Head.Atom)
		for _, l := range c.Body {
			addAtomConstants(l.Atom)
		}
	}
	addAtomConstants(target.Atom)
	for _, ex := range positives {
		addExampleConstants(ex, add)
	}
	for _, ex := range negatives {
		addExampleConstants(ex, add)
	}

	sort.Slice(universe, func(i, j int) bool { return universe[i].Symbol < universe[j].Symbol })
	return universe
}

func addExampleConstants(ex foil.Example, add func(foil.Value)) {
	names := make([]string, 0, len(ex.Assignment))
	for name := range ex.Assignment {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		add(ex.Assignment[name])
	}
}
