package foil

// Covers returns the subset of examples whose truth under the current
// program matches their label (§4.E): a positive example is covered iff
// target, substituted with its assignment, is in the least Herbrand
// model of background ∪ hypothesis ∪ {target ← body}; a negative example
// is covered iff that ground literal is absent from the model.
func Covers(background, hypothesis []Clause, target Literal, body []Literal, examples []Example, universe []Value) ([]Example, error) {
	clauses := make([]Clause, 0, len(background)+len(hypothesis)+1)
	clauses = append(clauses, background...)
	clauses = append(clauses, hypothesis...)
	clauses = append(clauses, Clause{Head: target, Body: append([]Literal{}, body...)})

	program := &Program{Clauses: clauses, Universe: universe}
	world, err := program.Ground()
	if err != nil {
		return nil, err
	}

	var covered []Example
	for _, ex := range examples {
		fact := target.Atom.Substitute(Assignment(ex.Assignment))
		inWorld := fact.Ground() && world.Contains(fact)
		switch ex.Label {
		case Positive:
			if inWorld {
				covered = append(covered, ex)
			}
		case Negative:
			if !inWorld {
				covered = append(covered, ex)
			}
		}
	}
	return covered, nil
}

// subtractExamples returns the members of examples whose key is not
// present among covered.
func subtractExamples(examples, covered []Example) []Example {
	if len(covered) == 0 {
		return examples
	}
	drop := make(map[string]bool, len(covered))
	for _, e := range covered {
		drop[e.Key()] = true
	}
	out := make([]Example, 0, len(examples))
	for _, e := range examples {
		if !drop[e.Key()] {
			out = append(out, e)
		}
	}
	return out
}

// common returns the examples of a that also appear (by key) in b.
func common(a, b []Example) []Example {
	keys := make(map[string]bool, len(b))
	for _, e := range b {
		keys[e.Key()] = true
	}
	var out []Example
	for _, e := range a {
		if keys[e.Key()] {
			out = append(out, e)
		}
	}
	return out
}
