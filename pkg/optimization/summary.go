// Package optimization provides a bounded bisection search and the shared
// summary it reports.
package optimization

// Summary captures the result of a single search.
type Summary struct {
	Target     float64  `json:"target"`
	Value      float64  `json:"value"`
	Achieved   float64  `json:"achieved"`
	Headroom   float64  `json:"headroom"`
	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Notes      []string `json:"notes,omitempty"`
}
