package optimization

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoFeasibleValue is returned when even the lower bound fails the search.
var ErrNoFeasibleValue = errors.New("no feasible value within bounds")

// Evaluation is the outcome of testing one candidate value. Headroom is the
// distance to the target; a candidate is feasible when Headroom >= 0.
type Evaluation struct {
	Value    float64
	Achieved float64
	Headroom float64
}

func (e Evaluation) feasible() bool {
	return e.Headroom >= 0
}

// Evaluator scores a candidate value.
type Evaluator func(value float64) (Evaluation, error)

// Settings bound a search.
type Settings struct {
	Lower         float64
	Upper         float64
	Tolerance     float64 // stop once the bracket is narrower than this
	Headroom      float64 // stop once a feasible candidate is this close to the target
	MaxIterations int
}

// MaximizeFeasible finds the largest value in [Lower, Upper] whose evaluation
// is feasible, assuming feasibility only flips once from true to false as the
// value grows. It returns the best feasible evaluation and a summary.
func MaximizeFeasible(s Settings, target float64, eval Evaluator) (Evaluation, Summary, error) {
	if s.Upper < s.Lower {
		return Evaluation{}, Summary{}, fmt.Errorf("upper bound %v is below lower bound %v", s.Upper, s.Lower)
	}

	lowerEval, err := eval(s.Lower)
	if err != nil {
		return Evaluation{}, Summary{}, err
	}
	if !lowerEval.feasible() {
		return lowerEval, summarize(target, lowerEval, 0, false), ErrNoFeasibleValue
	}

	upperEval, err := eval(s.Upper)
	if err != nil {
		return Evaluation{}, Summary{}, err
	}
	if upperEval.feasible() {
		summary := summarize(target, upperEval, 0, false)
		summary.Notes = append(summary.Notes, fmt.Sprintf("target not reached below the upper bound %.2f", s.Upper))
		return upperEval, summary, nil
	}

	best := lowerEval
	lower := s.Lower
	upper := s.Upper
	iterations := 0
	converged := false

	for iterations < s.MaxIterations {
		if best.Headroom <= s.Headroom || math.Abs(upper-lower) <= s.Tolerance {
			converged = true
			break
		}

		mid := lower + (upper-lower)/2
		evalMid, err := eval(mid)
		if err != nil {
			return Evaluation{}, Summary{}, err
		}
		iterations++

		if evalMid.feasible() {
			best = evalMid
			if mid == lower {
				break
			}
			lower = mid
		} else {
			if mid == upper {
				break
			}
			upper = mid
		}
	}

	summary := summarize(target, best, iterations, converged)
	if !converged {
		summary.Notes = append(summary.Notes, fmt.Sprintf("stopped after %d iterations", iterations))
	}
	return best, summary, nil
}

func summarize(target float64, e Evaluation, iterations int, converged bool) Summary {
	return Summary{
		Target:     target,
		Value:      e.Value,
		Achieved:   e.Achieved,
		Headroom:   e.Headroom,
		Iterations: iterations,
		Converged:  converged,
	}
}
