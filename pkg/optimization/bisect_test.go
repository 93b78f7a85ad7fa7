package optimization

import (
	"errors"
	"math"
	"testing"
)

func linear(slope, target float64) Evaluator {
	return func(value float64) (Evaluation, error) {
		achieved := slope * value
		return Evaluation{Value: value, Achieved: achieved, Headroom: target - achieved}, nil
	}
}

func TestMaximizeFeasible(t *testing.T) {
	settings := Settings{Lower: 0, Upper: 1000, Tolerance: 0.001, Headroom: 0.01, MaxIterations: 100}

	best, summary, err := MaximizeFeasible(settings, 300, linear(2, 300))
	if err != nil {
		t.Fatalf("MaximizeFeasible() unexpected error = %v", err)
	}
	if math.Abs(best.Value-150) > 0.01 {
		t.Errorf("Value = %v, expected ~150", best.Value)
	}
	if best.Headroom < 0 {
		t.Errorf("Headroom = %v, expected feasible", best.Headroom)
	}
	if !summary.Converged || summary.Iterations == 0 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.Target != 300 {
		t.Errorf("Target = %v, expected 300", summary.Target)
	}
}

func TestMaximizeFeasibleBounds(t *testing.T) {
	settings := Settings{Lower: 10, Upper: 100, Tolerance: 0.01, MaxIterations: 50}

	if _, _, err := MaximizeFeasible(settings, 5, linear(1, 5)); !errors.Is(err, ErrNoFeasibleValue) {
		t.Errorf("expected ErrNoFeasibleValue, got %v", err)
	}

	best, summary, err := MaximizeFeasible(settings, 500, linear(1, 500))
	if err != nil {
		t.Fatalf("MaximizeFeasible() unexpected error = %v", err)
	}
	if best.Value != 100 || summary.Converged || len(summary.Notes) != 1 {
		t.Errorf("expected upper bound with a note, got %+v %+v", best, summary)
	}

	if _, _, err := MaximizeFeasible(Settings{Lower: 5, Upper: 1}, 1, linear(1, 1)); err == nil {
		t.Error("expected error for inverted bounds")
	}
}

func TestMaximizeFeasibleIterationCap(t *testing.T) {
	settings := Settings{Lower: 0, Upper: 1e6, Tolerance: 1e-9, MaxIterations: 3}

	_, summary, err := MaximizeFeasible(settings, 1234.5, linear(1, 1234.5))
	if err != nil {
		t.Fatalf("MaximizeFeasible() unexpected error = %v", err)
	}
	if summary.Converged || summary.Iterations != 3 {
		t.Errorf("expected 3 iterations without convergence, got %+v", summary)
	}
}

func TestMaximizeFeasiblePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	eval := func(value float64) (Evaluation, error) {
		calls++
		if calls > 2 {
			return Evaluation{}, boom
		}
		return Evaluation{Value: value, Headroom: 50 - value}, nil
	}

	if _, _, err := MaximizeFeasible(Settings{Upper: 100, Tolerance: 0.1, MaxIterations: 10}, 50, eval); !errors.Is(err, boom) {
		t.Errorf("expected evaluator error, got %v", err)
	}
}
