// Package insurance resolves mortgage insurance and guarantee fee rates:
// conventional PMI, FHA MIP/UFMIP and the VA funding fee.
package insurance

import (
	"errors"
	"fmt"

	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/loans"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
)

var (
	// ErrUnknownPMIMode is returned for a payment mode other than monthly or single_financed.
	ErrUnknownPMIMode = errors.New("unknown PMI payment mode")

	// ErrUnknownFICOTier is returned when a FICO tier has no PMI column.
	ErrUnknownFICOTier = errors.New("unknown FICO tier")
)

// PMIMode selects how conventional PMI is paid.
type PMIMode string

const (
	PMIMonthly        PMIMode = constants.PMIModeMonthly
	PMISingleFinanced PMIMode = constants.PMIModeSingleFinanced
)

// ParsePMIMode validates a payment mode string. Empty means monthly.
func ParsePMIMode(value string) (PMIMode, error) {
	switch PMIMode(value) {
	case "", PMIMonthly:
		return PMIMonthly, nil
	case PMISingleFinanced:
		return PMISingleFinanced, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPMIMode, value)
	}
}

// PMIRate resolves the PMI rate in percent. Loans at or below 80% LTV carry
// no PMI. Loans above the conforming limit price from the high-balance tables.
func PMIRate(conf *config.Configuration, ltv float64, fico loans.FICOTier, loanAmount float64, mode PMIMode) (float64, error) {
	tables := conf.PMI.Standard
	if loans.IsHighBalance(loanAmount, conf.Limits.ConformingLimit) {
		tables = conf.PMI.HighBalance
	}

	var table config.RateTable
	switch mode {
	case PMIMonthly:
		table = tables.Monthly
	case PMISingleFinanced:
		table = tables.Single
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPMIMode, mode)
	}

	tier := loans.LTVTierFor(ltv)
	if tier == loans.NoTier {
		return 0, nil
	}

	rate, ok := table.Rate(tier, fico)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownFICOTier, fico)
	}
	return rate, nil
}

// MonthlyPMI is the monthly premium for an annual rate in percent.
func MonthlyPMI(loanAmount, rate float64) float64 {
	return mathutil.ApplyPercentage(loanAmount, rate) / constants.MonthsPerYear
}

// SinglePremiumPMI is the one-time premium for a single-premium rate in percent.
func SinglePremiumPMI(loanAmount, rate float64) float64 {
	return mathutil.ApplyPercentage(loanAmount, rate)
}
