package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
)

// ErrOutOfRange marks every range violation.
var ErrOutOfRange = errors.New("value out of range")

// PurchaseFields are the numeric request fields with enforced ranges.
type PurchaseFields struct {
	Name               string
	SalesPrice         float64
	DownPaymentPercent float64
	DownPaymentAmount  float64
	InterestRate       float64
	TermYears          int
}

// ValidatePurchase checks a request's ranges: positive price, rate within
// 0-20%, term within 1-40 years, and a down payment between zero and the price.
// All violations are reported together.
func ValidatePurchase(f PurchaseFields) error {
	var errs []error
	prefix := ""
	if f.Name != "" {
		prefix = f.Name + ": "
	}

	if !finite(f.SalesPrice) || f.SalesPrice <= 0 {
		errs = append(errs, fmt.Errorf("%w: %ssales price must be positive, got %v", ErrOutOfRange, prefix, f.SalesPrice))
	}
	if !finite(f.InterestRate) || f.InterestRate < constants.MinInterestRate || f.InterestRate > constants.MaxInterestRate {
		errs = append(errs, fmt.Errorf("%w: %sinterest rate must be between %v and %v, got %v",
			ErrOutOfRange, prefix, constants.MinInterestRate, constants.MaxInterestRate, f.InterestRate))
	}
	if f.TermYears < constants.MinTermYears || f.TermYears > constants.MaxTermYears {
		errs = append(errs, fmt.Errorf("%w: %sterm must be between %d and %d years, got %d",
			ErrOutOfRange, prefix, constants.MinTermYears, constants.MaxTermYears, f.TermYears))
	}
	if !finite(f.DownPaymentPercent) || f.DownPaymentPercent < 0 || f.DownPaymentPercent > constants.PercentageMultiplier {
		errs = append(errs, fmt.Errorf("%w: %sdown payment percent must be between 0 and 100, got %v",
			ErrOutOfRange, prefix, f.DownPaymentPercent))
	}
	if !finite(f.DownPaymentAmount) || f.DownPaymentAmount < 0 {
		errs = append(errs, fmt.Errorf("%w: %sdown payment must not be negative, got %v", ErrOutOfRange, prefix, f.DownPaymentAmount))
	}

	return errors.Join(errs...)
}

// ValidateNonNegative checks named amounts that must not be negative.
func ValidateNonNegative(amounts map[string]float64) error {
	var errs []error
	for name, v := range amounts {
		if !finite(v) || v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative, got %v", ErrOutOfRange, name, v))
		}
	}
	return errors.Join(errs...)
}

// ValidateScenarioCount checks a comparison's scenario count.
func ValidateScenarioCount(n int) error {
	if n < constants.MinComparisonScenarios || n > constants.MaxComparisonScenarios {
		return fmt.Errorf("%w: comparison needs %d to %d scenarios, got %d",
			ErrOutOfRange, constants.MinComparisonScenarios, constants.MaxComparisonScenarios, n)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
