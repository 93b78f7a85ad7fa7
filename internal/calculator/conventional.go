package calculator

import (
	"fmt"

	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/insurance"
	"github.com/iwvelando/mortgage-estimator/pkg/loans"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
	"go.uber.org/zap"
)

type conventionalCalculator struct {
	conf   *config.Configuration
	logger *zap.Logger
}

func (c *conventionalCalculator) Program() Program {
	return Conventional
}

// Calculate prices PMI from the LTV and FICO tier. A monthly premium is added
// to the payment; a financed single premium is added to the loan amount.
func (c *conventionalCalculator) Calculate(in Input) (Result, error) {
	p := newPurchase(in.PurchaseInput)

	mode := in.Conventional.PMIMode
	if mode == "" {
		mode = insurance.PMIMonthly
	}

	rate, err := insurance.PMIRate(c.conf, p.ltv, in.Conventional.FICOTier, p.baseLoan, mode)
	if err != nil {
		return Result{}, fmt.Errorf("conventional: %w", err)
	}

	totalLoan := p.baseLoan
	monthlyMI := 0.0
	var singlePremium *float64

	switch mode {
	case insurance.PMISingleFinanced:
		premium := mathutil.RoundToCents(insurance.SinglePremiumPMI(p.baseLoan, rate))
		totalLoan += premium
		singlePremium = ptr(premium)
	default:
		monthlyMI = insurance.MonthlyPMI(p.baseLoan, rate)
	}

	highBalance := loans.IsHighBalance(p.baseLoan, c.conf.Limits.ConformingLimit)
	c.logger.Debug(fmt.Sprintf("conventional PMI resolved: LTV %.2f tier %d FICO %d rate %.2f",
		p.ltv, loans.LTVTierFor(p.ltv), in.Conventional.FICOTier, rate),
		zap.String("op", "calculator.conventional.Calculate"),
		zap.String("mode", string(mode)),
		zap.Bool("highBalance", highBalance),
	)

	result := p.finish(Conventional, c.conf, totalLoan, monthlyMI)
	result.HighBalance = highBalance
	result.PMIRate = ptr(rate)
	result.SinglePremiumPMI = singlePremium

	if loans.AboveTopTier(p.ltv) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"LTV %.2f%% is above the highest PMI tier; PMI priced at the %d%% tier", p.ltv, loans.LTVTierFor(p.ltv)))
	}
	if p.baseLoan > c.conf.Limits.HighBalanceLimit {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Loan amount %.2f exceeds the high-balance limit %.2f; jumbo pricing is not modeled",
			p.baseLoan, c.conf.Limits.HighBalanceLimit))
	}

	return result, nil
}
