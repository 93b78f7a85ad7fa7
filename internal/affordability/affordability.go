// Package affordability solves for the highest purchase price whose total
// monthly payment stays within a target.
package affordability

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-estimator/internal/calculator"
	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/loans"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
	"github.com/iwvelando/mortgage-estimator/pkg/optimization"
	"go.uber.org/zap"
)

// ErrInvalidTarget is returned for a non-positive target payment.
var ErrInvalidTarget = errors.New("target monthly payment must be positive")

// Request describes the purchase to solve for. When AnnualTaxRate is set the
// monthly property tax is derived from each candidate price and Costs.MonthlyTax
// is ignored.
type Request struct {
	Program              calculator.Program
	TargetMonthlyPayment float64
	DownPaymentPercent   float64
	InterestRate         float64
	TermYears            int
	AnnualTaxRate        float64 // percent of price
	Costs                calculator.PropertyCosts
	Conventional         calculator.ConventionalOptions
	FHA                  calculator.FHAOptions
	VA                   calculator.VAOptions
	UpperPrice           float64
	MaxIterations        int
}

// Result is the highest affordable price and its full calculation.
type Result struct {
	MaxPrice    float64              `json:"maxPrice"`
	Calculation calculator.Result    `json:"calculation"`
	Search      optimization.Summary `json:"search"`
}

// Solver bisects the sales price for one configuration.
type Solver struct {
	logger *zap.Logger
	conf   *config.Configuration
}

// NewSolver constructs a Solver for the provided configuration.
func NewSolver(logger *zap.Logger, conf *config.Configuration) (*Solver, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{logger: logger, conf: conf}, nil
}

// Solve returns the highest price, to the cent, whose total monthly payment
// does not exceed the target.
func (s *Solver) Solve(req Request) (*Result, error) {
	if req.TargetMonthlyPayment <= 0 {
		return nil, ErrInvalidTarget
	}
	calc, err := calculator.New(req.Program, s.conf, s.logger)
	if err != nil {
		return nil, err
	}

	upper := req.UpperPrice
	if upper <= 0 {
		upper = constants.DefaultAffordabilityUpperPrice
	}
	maxIterations := req.MaxIterations
	if maxIterations <= 0 {
		maxIterations = constants.DefaultAffordabilityMaxIterations
	}

	evaluate := func(price float64) (calculator.Result, error) {
		return calc.Calculate(req.input(price))
	}

	_, summary, err := optimization.MaximizeFeasible(optimization.Settings{
		Lower:         0,
		Upper:         upper,
		Tolerance:     constants.CurrencyTolerance,
		Headroom:      constants.CurrencyTolerance,
		MaxIterations: maxIterations,
	}, req.TargetMonthlyPayment, func(price float64) (optimization.Evaluation, error) {
		result, err := evaluate(price)
		if err != nil {
			return optimization.Evaluation{}, err
		}
		return optimization.Evaluation{
			Value:    price,
			Achieved: result.Monthly.Total,
			Headroom: req.TargetMonthlyPayment - result.Monthly.Total,
		}, nil
	})
	if err != nil {
		if errors.Is(err, optimization.ErrNoFeasibleValue) {
			return nil, fmt.Errorf("fixed monthly costs of %.2f exceed the target %.2f: %w",
				summary.Achieved, req.TargetMonthlyPayment, err)
		}
		return nil, err
	}

	price := math.Floor(summary.Value*100) / 100
	result, err := evaluate(price)
	if err != nil {
		return nil, err
	}
	summary.Value = price
	summary.Achieved = result.Monthly.Total
	summary.Headroom = mathutil.RoundToCents(req.TargetMonthlyPayment - result.Monthly.Total)

	s.logger.Debug("affordability solved",
		zap.String("op", "affordability.Solve"),
		zap.String("program", string(req.Program)),
		zap.Float64("target", req.TargetMonthlyPayment),
		zap.Float64("maxPrice", price),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)

	return &Result{MaxPrice: price, Calculation: result, Search: summary}, nil
}

func (req Request) input(price float64) calculator.Input {
	costs := req.Costs
	if req.AnnualTaxRate > 0 {
		costs.MonthlyTax = mathutil.ApplyPercentage(price, req.AnnualTaxRate) / constants.MonthsPerYear
	}
	return calculator.Input{
		PurchaseInput: calculator.PurchaseInput{
			SalesPrice:   price,
			DownPayment:  loans.DownPaymentPercent(req.DownPaymentPercent),
			InterestRate: req.InterestRate,
			TermYears:    req.TermYears,
			Costs:        costs,
		},
		Conventional: req.Conventional,
		FHA:          req.FHA,
		VA:           req.VA,
	}
}
