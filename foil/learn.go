package foil

import "context"

// Options configures a call to Learn.
type Options struct {
	// Cache, if non-nil, is consulted before learning and populated
	// after. A nil Cache disables memoization entirely: no read, no
	// write (§4.I).
	Cache *Cache
}

// Learn synthesizes a hypothesis for problem: a set of definite Horn
// clauses whose union covers every positive example and no negative
// example (§1, §6).
//
// Learn returns ErrInvalidInput if problem fails validation, or
// ErrUnstratified if the background program cannot be stratified. Any
// other outcome — an empty hypothesis, a partial one, or one that covers
// every positive example — is normal termination, not a failure.
func Learn(ctx context.Context, problem Problem, opts *Options) (Hypothesis, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var cache *Cache
	if opts != nil {
		cache = opts.Cache
	}

	if cache != nil {
		if h, ok := cache.Get(problem); ok {
			return h, nil
		}
	}

	if err := Validate(problem); err != nil {
		return nil, err
	}

	hypothesis, err := learnCore(ctx, problem)
	if err != nil {
		return hypothesis, err
	}

	if cache != nil {
		cache.Put(problem, hypothesis)
	}
	return hypothesis, nil
}

// learnCore is the outer covering loop (§4.H): repeatedly run the inner
// loop to synthesize one clause, append it to the hypothesis, and drop
// the positives it now explains, until positives is exhausted or no
// further progress is possible.
func learnCore(ctx context.Context, problem Problem) (Hypothesis, error) {
	var hypothesis Hypothesis
	positives := append([]Example{}, problem.Positives...)

	for len(positives) > 0 {
		if err := ctx.Err(); err != nil {
			return hypothesis, err
		}

		body, err := buildClauseBody(ctx, problem.Background, hypothesis, problem.Target, problem.Masks, positives, problem.Negatives, problem.Universe)
		if err != nil {
			return hypothesis, err
		}
		if len(body) == 0 {
			break
		}

		clause := Clause{Head: problem.Target, Body: body}
		coveredPositives, err := Covers(problem.Background, hypothesis, problem.Target, body, positives, problem.Universe)
		if err != nil {
			return hypothesis, err
		}

		hypothesis = append(hypothesis, clause)
		if len(coveredPositives) == 0 {
			break
		}
		positives = subtractExamples(positives, coveredPositives)
	}

	return hypothesis, nil
}

// buildClauseBody is the inner specialization loop (§4.G, §4.H step 2-3):
// add one literal at a time, chosen by selectLiteral, until negatives
// are excluded, selection is exhausted, or a chosen literal makes no
// further progress.
func buildClauseBody(ctx context.Context, background []Clause, hypothesis []Clause, target Literal, masks []Mask, positives, negatives []Example, universe []Value) ([]Literal, error) {
	var body []Literal
	neg := append([]Example{}, negatives...)

	for len(neg) > 0 {
		if err := ctx.Err(); err != nil {
			return body, err
		}

		candidate, covered, err := selectLiteral(ctx, background, hypothesis, target, body, masks, positives, neg, universe)
		if err != nil {
			return body, err
		}
		if candidate == nil {
			break
		}

		body = append(body, *candidate)
		neg = subtractExamples(neg, covered)
		if len(covered) == 0 {
			break
		}
	}

	return body, nil
}

// selectLiteral is the inner loop's literal-selection step (§4.G): among
// every candidate the enumerator (§4.D) proposes for every mask, keep
// the one with the highest information gain, using the entropy bound to
// skip negative-coverage evaluation for candidates that cannot possibly
// beat the incumbent. Ties keep the incumbent, so the first-seen
// candidate in enumeration order wins.
func selectLiteral(ctx context.Context, background, hypothesis []Clause, target Literal, body []Literal, masks []Mask, positives, negatives []Example, universe []Value) (*Literal, []Example, error) {
	vars := Vars(append([]Literal{target}, body...)...)

	var (
		haveBest      bool
		bestScore     float64
		bestCandidate Literal
		bestNegatives []Example
	)

	for _, mask := range masks {
		enum := NewEnumerator(vars, mask.Arity)
		for {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			default:
			}

			terms, ok := enum.Next()
			if !ok {
				break
			}

			candidate := Literal{Atom: Atom{Functor: mask.Functor, Terms: terms}, Negated: mask.Negated}
			if candidate.Equal(target) || containsLiteral(body, candidate) {
				continue
			}

			extendedBody := append(append([]Literal{}, body...), candidate)

			positivesAfter, err := Covers(background, hypothesis, target, extendedBody, positives, universe)
			if err != nil {
				return nil, nil, err
			}

			if len(positivesAfter) == 0 {
				continue
			}

			if haveBest {
				bound := Bound(positives, negatives, positivesAfter)
				if bound <= bestScore {
					continue
				}
			}

			negativesAfter, err := Covers(background, hypothesis, target, extendedBody, negatives, universe)
			if err != nil {
				return nil, nil, err
			}

			score := Gain(positives, negatives, positivesAfter, negativesAfter)
			if !haveBest || score > bestScore {
				haveBest = true
				bestScore = score
				bestCandidate = candidate
				bestNegatives = negativesAfter
			}
		}
	}

	if !haveBest {
		return nil, nil, nil
	}
	return &bestCandidate, bestNegatives, nil
}

func containsLiteral(body []Literal, candidate Literal) bool {
	for _, l := range body {
		if l.Equal(candidate) {
			return true
		}
	}
	return false
}
