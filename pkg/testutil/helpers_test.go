package testutil

import (
	"testing"

	"github.com/iwvelando/mortgage-estimator/internal/compare"
)

func TestFindRow(t *testing.T) {
	rows := []compare.Row{
		{Name: "Conventional 20%", MonthlyPayment: 3311.21},
		{Name: "FHA 3.5%", MonthlyPayment: 2659.40},
		{Name: "VA 0%", MonthlyPayment: 2449.75},
	}

	tests := []struct {
		name        string
		searchName  string
		expectFound bool
		expected    float64
	}{
		{"first row", "Conventional 20%", true, 3311.21},
		{"middle row", "FHA 3.5%", true, 2659.40},
		{"last row", "VA 0%", true, 2449.75},
		{"missing row", "USDA", false, 0},
		{"empty name", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := FindRow(rows, tt.searchName)
			if !tt.expectFound {
				if row != nil {
					t.Errorf("expected nil, got %+v", row)
				}
				return
			}
			if row == nil {
				t.Fatalf("expected to find %q", tt.searchName)
			}
			if row.MonthlyPayment != tt.expected {
				t.Errorf("MonthlyPayment = %v, expected %v", row.MonthlyPayment, tt.expected)
			}
		})
	}
}

func TestFindRowReturnsSliceElement(t *testing.T) {
	rows := []compare.Row{{Name: "A"}}
	FindRow(rows, "A").CashToClose = 1234
	if rows[0].CashToClose != 1234 {
		t.Error("FindRow should point into the slice")
	}
	if FindRow(nil, "A") != nil {
		t.Error("expected nil for empty rows")
	}
}

func TestAssertCents(t *testing.T) {
	AssertCents(t, "exact", 100.00, 100.00)
	AssertCents(t, "within half a cent", 100.004, 100.00)
}
