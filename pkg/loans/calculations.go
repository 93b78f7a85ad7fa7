// Package loans provides the core mortgage math shared by every loan program.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
)

// LTVTier is an upper LTV bound, in percent, used to key mortgage insurance tables.
type LTVTier int

// NoTier is returned when a loan is at or below 80% LTV and carries no PMI.
const NoTier LTVTier = 0

// LTVTiers lists the PMI LTV tiers in ascending order.
var LTVTiers = []LTVTier{85, 90, 95, 97}

// FICOTier is a credit score band, named by its lower bound.
type FICOTier int

// FICOTiers lists the PMI credit tiers from best to worst.
var FICOTiers = []FICOTier{760, 740, 720, 700, 680, 660, 640, 620}

// MonthlyPI calculates the principal and interest payment using the standard amortization formula.
func MonthlyPI(principal, annualRatePercent float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}

	n := float64(termYears * constants.MonthsPerYear)
	r := annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
	if r == 0 {
		return principal / n
	}

	power := math.Pow(1+r, n)
	return principal * r * power / (power - 1)
}

// LTV returns the loan-to-value ratio in percent, or 0 for a zero property value.
func LTV(loanAmount, propertyValue float64) float64 {
	if propertyValue == 0 {
		return 0
	}
	return loanAmount / propertyValue * constants.PercentageMultiplier
}

// LoanAmount is the sales price less the down payment, floored at zero.
func LoanAmount(salesPrice, downPayment float64) float64 {
	return mathutil.FloorZero(salesPrice - downPayment)
}

// PrepaidInterest is the per-diem interest collected at closing.
func PrepaidInterest(loanAmount, annualRatePercent float64, days int) float64 {
	return loanAmount * annualRatePercent / constants.PercentageMultiplier / constants.DaysPerYear * float64(days)
}

// ReserveAmount is the escrow reserve for the given number of months of an annual cost.
func ReserveAmount(annualAmount float64, months int) float64 {
	return annualAmount / constants.MonthsPerYear * float64(months)
}

// LTVTierFor returns the smallest tier at or above ltv. LTVs at or below 80
// return NoTier; LTVs above the top tier are priced at the top tier.
func LTVTierFor(ltv float64) LTVTier {
	if ltv <= constants.NoMILTV {
		return NoTier
	}
	for _, tier := range LTVTiers {
		if ltv <= float64(tier) {
			return tier
		}
	}
	return LTVTiers[len(LTVTiers)-1]
}

// AboveTopTier reports whether ltv exceeds the highest LTV tier.
func AboveTopTier(ltv float64) bool {
	return ltv > float64(LTVTiers[len(LTVTiers)-1])
}

// IsHighBalance reports whether a loan exceeds the conforming limit.
func IsHighBalance(loanAmount, conformingLimit float64) bool {
	return loanAmount > conformingLimit
}

// FICOTierFor floors a credit score to the nearest tier at or below it.
// Scores below the lowest tier use the lowest tier.
func FICOTierFor(score int) FICOTier {
	for _, tier := range FICOTiers {
		if score >= int(tier) {
			return tier
		}
	}
	return FICOTiers[len(FICOTiers)-1]
}

// ValidFICOTier reports whether tier is one of the priced FICO tiers.
func ValidFICOTier(tier FICOTier) bool {
	for _, t := range FICOTiers {
		if t == tier {
			return true
		}
	}
	return false
}

type downPaymentKind int

const (
	downPaymentPercent downPaymentKind = iota
	downPaymentAmount
)

// DownPayment is either a percent of the sales price or a dollar amount.
// Whichever was supplied drives the other.
type DownPayment struct {
	kind  downPaymentKind
	value float64
}

// DownPaymentPercent builds a down payment from a percent of the sales price.
func DownPaymentPercent(percent float64) DownPayment {
	return DownPayment{kind: downPaymentPercent, value: percent}
}

// DownPaymentAmount builds a down payment from a dollar amount.
func DownPaymentAmount(amount float64) DownPayment {
	return DownPayment{kind: downPaymentAmount, value: amount}
}

// IsPercent reports whether the down payment was supplied as a percent.
func (d DownPayment) IsPercent() bool {
	return d.kind == downPaymentPercent
}

// Value returns the supplied percent or amount.
func (d DownPayment) Value() float64 {
	return d.value
}

// Resolve derives both the dollar amount and the percent for a sales price.
func (d DownPayment) Resolve(salesPrice float64) (amount, percent float64) {
	if d.kind == downPaymentAmount {
		return d.value, mathutil.CalculatePercentage(d.value, salesPrice)
	}
	return mathutil.ApplyPercentage(salesPrice, d.value), d.value
}

func (d DownPayment) String() string {
	if d.kind == downPaymentAmount {
		return fmt.Sprintf("$%.2f", d.value)
	}
	return fmt.Sprintf("%.2f%%", d.value)
}
