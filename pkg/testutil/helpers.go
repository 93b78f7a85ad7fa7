// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/mortgage-estimator/internal/compare"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
)

// FindRow finds a comparison row by scenario name.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rows []compare.Row, name string) *compare.Row {
	for i := range rows {
		if rows[i].Name == name {
			return &rows[i]
		}
	}
	return nil
}

// AssertCents fails the test when got and want differ by more than half a cent.
func AssertCents(t testing.TB, field string, got, want float64) {
	t.Helper()
	if !mathutil.WithinTolerance(got, want, 0.005) {
		t.Errorf("%s = %.4f, expected %.2f", field, got, want)
	}
}
