package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func validFields() PurchaseFields {
	return PurchaseFields{SalesPrice: 400000, DownPaymentPercent: 3.5, InterestRate: 6.5, TermYears: 30}
}

func TestValidatePurchase(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*PurchaseFields)
		wantErrs int
	}{
		{"valid", func(*PurchaseFields) {}, 0},
		{"zero rate allowed", func(f *PurchaseFields) { f.InterestRate = 0 }, 0},
		{"twenty percent rate allowed", func(f *PurchaseFields) { f.InterestRate = 20 }, 0},
		{"forty year term allowed", func(f *PurchaseFields) { f.TermYears = 40 }, 0},
		{"zero price", func(f *PurchaseFields) { f.SalesPrice = 0 }, 1},
		{"NaN price", func(f *PurchaseFields) { f.SalesPrice = math.NaN() }, 1},
		{"rate above range", func(f *PurchaseFields) { f.InterestRate = 20.01 }, 1},
		{"negative rate", func(f *PurchaseFields) { f.InterestRate = -1 }, 1},
		{"zero term", func(f *PurchaseFields) { f.TermYears = 0 }, 1},
		{"term above range", func(f *PurchaseFields) { f.TermYears = 41 }, 1},
		{"down percent above 100", func(f *PurchaseFields) { f.DownPaymentPercent = 101 }, 1},
		{"negative down amount", func(f *PurchaseFields) { f.DownPaymentAmount = -5 }, 1},
		{"everything wrong", func(f *PurchaseFields) {
			*f = PurchaseFields{SalesPrice: -1, InterestRate: 50, TermYears: 99, DownPaymentPercent: -2, DownPaymentAmount: -1}
		}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.modify(&f)
			err := ValidatePurchase(f)

			if tt.wantErrs == 0 {
				if err != nil {
					t.Errorf("unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange, got %v", err)
			}
			if got := len(strings.Split(err.Error(), "\n")); got != tt.wantErrs {
				t.Errorf("expected %d violations, got %d: %v", tt.wantErrs, got, err)
			}
		})
	}
}

func TestValidatePurchaseNamesScenario(t *testing.T) {
	f := validFields()
	f.Name = "FHA option"
	f.TermYears = 0
	if err := ValidatePurchase(f); err == nil || !strings.Contains(err.Error(), "FHA option: term") {
		t.Errorf("expected scenario name in error, got %v", err)
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative(map[string]float64{"sellerCredit": 0, "lenderCredit": 500}); err != nil {
		t.Errorf("unexpected error = %v", err)
	}
	err := ValidateNonNegative(map[string]float64{"monthlyTax": -1, "monthlyHOA": 10})
	if !errors.Is(err, ErrOutOfRange) || !strings.Contains(err.Error(), "monthlyTax") {
		t.Errorf("expected monthlyTax violation, got %v", err)
	}
}

func TestValidateScenarioCount(t *testing.T) {
	for n := 0; n <= 6; n++ {
		err := ValidateScenarioCount(n)
		if valid := n >= 2 && n <= 4; valid != (err == nil) {
			t.Errorf("ValidateScenarioCount(%d) = %v", n, err)
		}
	}
}
