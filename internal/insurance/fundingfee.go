package insurance

import (
	"fmt"

	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
)

// VAUsage records whether the veteran has used VA entitlement before.
type VAUsage string

const (
	VAFirstUse      VAUsage = constants.VAUsageFirst
	VASubsequentUse VAUsage = constants.VAUsageSubsequent
)

// ParseVAUsage validates a usage string. Empty means first use.
func ParseVAUsage(value string) (VAUsage, error) {
	switch VAUsage(value) {
	case "", VAFirstUse:
		return VAFirstUse, nil
	case VASubsequentUse:
		return VASubsequentUse, nil
	default:
		return "", fmt.Errorf("unknown VA usage %q", value)
	}
}

// FundingFeeRequest carries the facts that select a VA funding fee rate.
type FundingFeeRequest struct {
	Usage              VAUsage
	DownPaymentPercent float64
	IRRRL              bool
	CashOut            bool
}

// FundingFeeRate selects the funding fee rate in percent. IRRRL takes
// precedence over cash-out, which takes precedence over the purchase table.
func FundingFeeRate(fees config.VAFundingFees, req FundingFeeRequest) float64 {
	if req.IRRRL {
		return fees.IRRRL
	}

	subsequent := req.Usage == VASubsequentUse
	if req.CashOut {
		if subsequent {
			return fees.CashOutSubsequent
		}
		return fees.CashOutFirst
	}

	tiers := fees.First
	if subsequent {
		tiers = fees.Subsequent
	}

	switch {
	case req.DownPaymentPercent < constants.VALowDownPercent:
		return tiers.LTVAbove95
	case req.DownPaymentPercent < constants.VAMidDownPercent:
		return tiers.LTV90To95
	default:
		return tiers.LTVAtOrBelow90
	}
}

// FundingFee is the dollar funding fee. Disabled veterans are exempt.
func FundingFee(loanAmount, rate float64, disabledVeteran bool) float64 {
	if disabledVeteran {
		return 0
	}
	return mathutil.ApplyPercentage(loanAmount, rate)
}
