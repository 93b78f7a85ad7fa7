// Package compare runs several purchase scenarios through their program
// calculators and condenses the results for side-by-side display.
package compare

import (
	"errors"
	"fmt"

	"github.com/iwvelando/mortgage-estimator/internal/calculator"
	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/insurance"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/loans"
	"github.com/iwvelando/mortgage-estimator/pkg/validation"
	"go.uber.org/zap"
)

// ErrScenarioCount is returned when fewer than two or more than four
// scenarios are compared.
var ErrScenarioCount = errors.New("scenario count out of range")

// Scenario is one named purchase option.
type Scenario struct {
	Name               string             `json:"name" yaml:"name"`
	Program            calculator.Program `json:"program" yaml:"program"`
	SalesPrice         float64            `json:"salesPrice" yaml:"salesPrice"`
	DownPaymentPercent float64            `json:"downPaymentPercent" yaml:"downPaymentPercent"`
	InterestRate       float64            `json:"interestRate" yaml:"interestRate"`
	TermYears          int                `json:"termYears" yaml:"termYears"`
}

// Row is the condensed result for one scenario.
type Row struct {
	Name              string             `json:"name"`
	Program           calculator.Program `json:"program"`
	LoanAmount        float64            `json:"loanAmount"`
	DownPayment       float64            `json:"downPayment"`
	LTV               float64            `json:"ltv"`
	MonthlyPayment    float64            `json:"monthlyPayment"`
	PrincipalInterest float64            `json:"principalInterest"`
	MortgageInsurance float64            `json:"mortgageInsurance"`
	CashToClose       float64            `json:"cashToClose"`
	Warnings          []string           `json:"warnings,omitempty"`
}

// Compare runs each scenario with the shared property costs. Fields a
// scenario does not carry use fixed defaults: the 760 FICO tier, monthly
// PMI, first-use VA and no credits. Rows are returned in scenario order.
func Compare(conf *config.Configuration, logger *zap.Logger, costs calculator.PropertyCosts, scenarios []Scenario) ([]Row, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := ValidateCount(len(scenarios)); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(scenarios))
	for i, s := range scenarios {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Scenario %d", i+1)
		}

		result, err := calculator.Calculate(conf, logger, s.Program, scenarioInput(s, costs))
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}

		rows = append(rows, Row{
			Name:              name,
			Program:           result.Program,
			LoanAmount:        result.TotalLoanAmount,
			DownPayment:       result.DownPayment,
			LTV:               result.LTV,
			MonthlyPayment:    result.Monthly.Total,
			PrincipalInterest: result.Monthly.PrincipalInterest,
			MortgageInsurance: result.Monthly.MortgageInsurance,
			CashToClose:       result.CashToClose,
			Warnings:          result.Warnings,
		})
	}

	logger.Debug(fmt.Sprintf("compared %d scenarios", len(rows)),
		zap.String("op", "compare.Compare"),
	)
	return rows, nil
}

// ValidateCount checks a scenario count against the comparison bounds.
func ValidateCount(n int) error {
	if err := validation.ValidateScenarioCount(n); err != nil {
		return fmt.Errorf("%w: %w", ErrScenarioCount, err)
	}
	return nil
}

func scenarioInput(s Scenario, costs calculator.PropertyCosts) calculator.Input {
	return calculator.Input{
		PurchaseInput: calculator.PurchaseInput{
			SalesPrice:   s.SalesPrice,
			DownPayment:  loans.DownPaymentPercent(s.DownPaymentPercent),
			InterestRate: s.InterestRate,
			TermYears:    s.TermYears,
			Costs:        costs,
		},
		Conventional: calculator.ConventionalOptions{
			FICOTier: constants.DefaultFICOTier,
			PMIMode:  insurance.PMIMonthly,
		},
		VA: calculator.VAOptions{Usage: insurance.VAFirstUse},
	}
}
