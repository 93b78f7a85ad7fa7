// Package calculator implements the purchase calculators for each loan
// program. Programs share the core loan math and the closing cost
// aggregator; each owns its own insurance or guarantee fee rules.
package calculator

import (
	"errors"
	"fmt"

	"github.com/iwvelando/mortgage-estimator/internal/closing"
	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/insurance"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/loans"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
	"go.uber.org/zap"
)

// ErrUnknownProgram is returned for a program other than conventional, fha or va.
var ErrUnknownProgram = errors.New("unknown loan program")

// Program identifies a loan program.
type Program string

const (
	Conventional Program = constants.ProgramConventional
	FHA          Program = constants.ProgramFHA
	VA           Program = constants.ProgramVA
)

// Programs lists every supported program.
var Programs = []Program{Conventional, FHA, VA}

// ParseProgram validates a program name.
func ParseProgram(value string) (Program, error) {
	for _, p := range Programs {
		if string(p) == value {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProgram, value)
}

// PropertyCosts are the monthly housing costs outside principal and interest.
type PropertyCosts struct {
	MonthlyTax       float64
	MonthlyInsurance float64
	MonthlyHOA       float64
	MonthlyFlood     float64
}

// PurchaseInput holds the inputs shared by every program.
type PurchaseInput struct {
	SalesPrice        float64
	DownPayment       loans.DownPayment
	InterestRate      float64 // percent
	TermYears         int
	Costs             PropertyCosts
	SellerCredit      float64
	LenderCredit      float64
	EarnestDeposit    float64
	OriginationPoints float64
}

// ConventionalOptions are the conventional-only inputs.
type ConventionalOptions struct {
	FICOTier loans.FICOTier
	PMIMode  insurance.PMIMode
}

// FHAOptions are the FHA-only inputs.
type FHAOptions struct {
	Renovation bool
}

// VAOptions are the VA-only inputs.
type VAOptions struct {
	Usage           insurance.VAUsage
	DisabledVeteran bool
	Reservist       bool
	IRRRL           bool
	CashOut         bool
}

// Input is a purchase request. Only the options block matching the
// calculator's program is read.
type Input struct {
	PurchaseInput
	Conventional ConventionalOptions
	FHA          FHAOptions
	VA           VAOptions
}

// MonthlyPayment itemizes the estimated monthly housing payment.
type MonthlyPayment struct {
	PrincipalInterest float64 `json:"principalInterest"`
	MortgageInsurance float64 `json:"mortgageInsurance"`
	PropertyTax       float64 `json:"propertyTax"`
	HomeInsurance     float64 `json:"homeInsurance"`
	HOA               float64 `json:"hoa"`
	FloodInsurance    float64 `json:"floodInsurance"`
	Total             float64 `json:"total"`
}

// Result is the full estimate for one purchase. Currency figures are rounded
// to cents and LTV to two decimals. Program-specific fields are nil for
// programs that do not use them.
type Result struct {
	Program            Program           `json:"program"`
	SalesPrice         float64           `json:"salesPrice"`
	DownPayment        float64           `json:"downPayment"`
	DownPaymentPercent float64           `json:"downPaymentPercent"`
	BaseLoanAmount     float64           `json:"baseLoanAmount"`
	TotalLoanAmount    float64           `json:"totalLoanAmount"`
	LTV                float64           `json:"ltv"`
	InterestRate       float64           `json:"interestRate"`
	TermYears          int               `json:"termYears"`
	Monthly            MonthlyPayment    `json:"monthly"`
	ClosingCosts       closing.Breakdown `json:"closingCosts"`
	CashToClose        float64           `json:"cashToClose"`

	HighBalance      bool     `json:"highBalance,omitempty"`
	PMIRate          *float64 `json:"pmiRate,omitempty"`
	SinglePremiumPMI *float64 `json:"singlePremiumPmi,omitempty"`
	UFMIP            *float64 `json:"ufmip,omitempty"`
	MIPRate          *float64 `json:"mipRate,omitempty"`
	VAFundingFee     *float64 `json:"vaFundingFee,omitempty"`
	VAFundingFeeRate *float64 `json:"vaFundingFeeRate,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// Calculator estimates a purchase under one loan program.
type Calculator interface {
	Program() Program
	Calculate(in Input) (Result, error)
}

// New returns the calculator for a program. The configuration is only read.
func New(program Program, conf *config.Configuration, logger *zap.Logger) (Calculator, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch program {
	case Conventional:
		return &conventionalCalculator{conf: conf, logger: logger}, nil
	case FHA:
		return &fhaCalculator{conf: conf, logger: logger}, nil
	case VA:
		return &vaCalculator{conf: conf, logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProgram, program)
	}
}

// Calculate runs a single purchase estimate for a program.
func Calculate(conf *config.Configuration, logger *zap.Logger, program Program, in Input) (Result, error) {
	calc, err := New(program, conf, logger)
	if err != nil {
		return Result{}, err
	}
	return calc.Calculate(in)
}

// purchase holds the figures every program derives the same way.
type purchase struct {
	in             PurchaseInput
	downPayment    float64
	downPaymentPct float64
	baseLoan       float64
	ltv            float64
	termYears      int
}

func newPurchase(in PurchaseInput) purchase {
	amount, percent := in.DownPayment.Resolve(in.SalesPrice)
	baseLoan := loans.LoanAmount(in.SalesPrice, amount)

	term := in.TermYears
	if term <= 0 {
		term = constants.DefaultTermYears
	}

	return purchase{
		in:             in,
		downPayment:    amount,
		downPaymentPct: percent,
		baseLoan:       baseLoan,
		ltv:            mathutil.Round(loans.LTV(baseLoan, in.SalesPrice), 2),
		termYears:      term,
	}
}

// finish amortizes totalLoan, adds the monthly insurance and property costs,
// and builds the closing cost breakdown.
func (p purchase) finish(program Program, conf *config.Configuration, totalLoan, monthlyMI float64) Result {
	costs := p.in.Costs
	monthly := MonthlyPayment{
		PrincipalInterest: mathutil.RoundToCents(loans.MonthlyPI(totalLoan, p.in.InterestRate, p.termYears)),
		MortgageInsurance: mathutil.RoundToCents(monthlyMI),
		PropertyTax:       mathutil.RoundToCents(costs.MonthlyTax),
		HomeInsurance:     mathutil.RoundToCents(costs.MonthlyInsurance),
		HOA:               mathutil.RoundToCents(costs.MonthlyHOA),
		FloodInsurance:    mathutil.RoundToCents(costs.MonthlyFlood),
	}
	monthly.Total = mathutil.RoundToCents(mathutil.Sum(
		monthly.PrincipalInterest,
		monthly.MortgageInsurance,
		monthly.PropertyTax,
		monthly.HomeInsurance,
		monthly.HOA,
		monthly.FloodInsurance,
	))

	breakdown := closing.Calculate(conf.Fees, conf.Prepaids, closing.Input{
		LoanAmount:        totalLoan,
		InterestRate:      p.in.InterestRate,
		OriginationPoints: p.in.OriginationPoints,
		AnnualTax:         closing.AnnualFromMonthly(costs.MonthlyTax),
		AnnualInsurance:   closing.AnnualFromMonthly(costs.MonthlyInsurance),
		SellerCredit:      p.in.SellerCredit,
		LenderCredit:      p.in.LenderCredit,
	})

	downPayment := mathutil.RoundToCents(p.downPayment)
	return Result{
		Program:            program,
		SalesPrice:         mathutil.RoundToCents(p.in.SalesPrice),
		DownPayment:        downPayment,
		DownPaymentPercent: mathutil.Round(p.downPaymentPct, 2),
		BaseLoanAmount:     mathutil.RoundToCents(p.baseLoan),
		TotalLoanAmount:    mathutil.RoundToCents(totalLoan),
		LTV:                p.ltv,
		InterestRate:       p.in.InterestRate,
		TermYears:          p.termYears,
		Monthly:            monthly,
		ClosingCosts:       breakdown,
		CashToClose: closing.CashToClose(downPayment, breakdown.TotalClosingCosts,
			breakdown.TotalCredits, p.in.EarnestDeposit),
	}
}

func ptr(v float64) *float64 {
	return &v
}
