package calculator

import (
	"fmt"

	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/insurance"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
	"go.uber.org/zap"
)

type vaCalculator struct {
	conf   *config.Configuration
	logger *zap.Logger
}

func (c *vaCalculator) Program() Program {
	return VA
}

// Calculate finances the funding fee into the loan. VA loans never carry
// mortgage insurance, whatever the LTV.
func (c *vaCalculator) Calculate(in Input) (Result, error) {
	p := newPurchase(in.PurchaseInput)

	usage := in.VA.Usage
	if usage == "" {
		usage = insurance.VAFirstUse
	}

	rate := insurance.FundingFeeRate(c.conf.VA.FundingFee, insurance.FundingFeeRequest{
		Usage:              usage,
		DownPaymentPercent: p.downPaymentPct,
		IRRRL:              in.VA.IRRRL,
		CashOut:            in.VA.CashOut,
	})
	fee := mathutil.RoundToCents(insurance.FundingFee(p.baseLoan, rate, in.VA.DisabledVeteran))
	totalLoan := p.baseLoan + fee

	c.logger.Debug(fmt.Sprintf("VA funding fee resolved: usage %s down %.2f%% rate %.2f fee %.2f",
		usage, p.downPaymentPct, rate, fee),
		zap.String("op", "calculator.va.Calculate"),
		zap.Bool("disabledVeteran", in.VA.DisabledVeteran),
		zap.Bool("reservist", in.VA.Reservist),
		zap.Bool("irrrl", in.VA.IRRRL),
		zap.Bool("cashOut", in.VA.CashOut),
	)

	result := p.finish(VA, c.conf, totalLoan, 0)
	result.VAFundingFee = ptr(fee)
	result.VAFundingFeeRate = ptr(rate)
	return result, nil
}
