package calculator

import (
	"fmt"

	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/insurance"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
	"go.uber.org/zap"
)

type fhaCalculator struct {
	conf   *config.Configuration
	logger *zap.Logger
}

func (c *fhaCalculator) Program() Program {
	return FHA
}

// Calculate finances the upfront premium into the loan and charges monthly
// MIP on the base loan. LTV is measured on the base loan.
func (c *fhaCalculator) Calculate(in Input) (Result, error) {
	p := newPurchase(in.PurchaseInput)
	fha := c.conf.FHA

	ufmip := mathutil.RoundToCents(insurance.UFMIP(p.baseLoan, fha.UFMIPPurchaseRate))
	totalLoan := p.baseLoan + ufmip

	mipRate := insurance.MIPRate(fha, p.ltv, p.termYears)
	monthlyMIP := insurance.MonthlyMIP(p.baseLoan, mipRate)

	c.logger.Debug(fmt.Sprintf("FHA premiums resolved: LTV %.2f term %d UFMIP %.2f MIP rate %.2f",
		p.ltv, p.termYears, ufmip, mipRate),
		zap.String("op", "calculator.fha.Calculate"),
	)

	result := p.finish(FHA, c.conf, totalLoan, monthlyMIP)
	result.UFMIP = ptr(ufmip)
	result.MIPRate = ptr(mipRate)

	if p.in.SalesPrice > 0 && p.downPaymentPct < fha.MinDownPercent {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Down payment %.2f%% is below the FHA minimum of %.2f%%", p.downPaymentPct, fha.MinDownPercent))
	}
	if p.baseLoan > c.conf.Limits.FHALoanLimit {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Base loan amount %.2f exceeds the FHA loan limit %.2f", p.baseLoan, c.conf.Limits.FHALoanLimit))
	}
	if in.FHA.Renovation {
		result.Warnings = append(result.Warnings,
			"Renovation financing selected; the rehabilitation budget is not included in this estimate")
	}

	return result, nil
}
