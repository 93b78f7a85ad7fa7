package insurance

import (
	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
)

// MIPRate selects the annual FHA MIP rate in percent. Terms of 15 years or
// less split at 90% LTV; longer terms split at 95%.
func MIPRate(fha config.FHAConfig, ltv float64, termYears int) float64 {
	if termYears <= constants.ShortTermYears {
		if ltv > constants.FHAMIPThreshold15 {
			return fha.MIP.Term15.LTVAbove90
		}
		return fha.MIP.Term15.LTVAtOrBelow90
	}
	if ltv > constants.FHAMIPThreshold30 {
		return fha.MIP.Term30.LTVAbove95
	}
	return fha.MIP.Term30.LTVAtOrBelow95
}

// UFMIP is the upfront premium on the base loan amount.
func UFMIP(baseLoan, ufmipRate float64) float64 {
	return mathutil.ApplyPercentage(baseLoan, ufmipRate)
}

// MonthlyMIP is the monthly premium, computed on the base loan and not on
// the balance including UFMIP.
func MonthlyMIP(baseLoan, mipRate float64) float64 {
	return mathutil.ApplyPercentage(baseLoan, mipRate) / constants.MonthsPerYear
}
