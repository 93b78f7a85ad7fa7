// Package sellernet estimates a seller's net proceeds from a sale, including
// property tax and HOA prorations at closing.
package sellernet

import (
	"time"

	"github.com/iwvelando/mortgage-estimator/pkg/datetime"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
)

// Input is a seller net sheet request. PropertyTaxProration is signed:
// positive when the seller owes taxes in arrears, negative when the seller
// prepaid and is credited.
type Input struct {
	SalePrice            float64 `json:"salePrice" yaml:"salePrice"`
	FirstLienPayoff      float64 `json:"firstLienPayoff" yaml:"firstLienPayoff"`
	SecondLienPayoff     float64 `json:"secondLienPayoff" yaml:"secondLienPayoff"`
	CommissionPercent    float64 `json:"commissionPercent" yaml:"commissionPercent"`
	TitleInsurance       float64 `json:"titleInsurance" yaml:"titleInsurance"`
	EscrowFee            float64 `json:"escrowFee" yaml:"escrowFee"`
	TransferTax          float64 `json:"transferTax" yaml:"transferTax"`
	RecordingFees        float64 `json:"recordingFees" yaml:"recordingFees"`
	RepairCredits        float64 `json:"repairCredits" yaml:"repairCredits"`
	HOAPayoff            float64 `json:"hoaPayoff" yaml:"hoaPayoff"`
	PropertyTaxProration float64 `json:"propertyTaxProration" yaml:"propertyTaxProration"`
	OtherCredits         float64 `json:"otherCredits" yaml:"otherCredits"`
	OtherDebits          float64 `json:"otherDebits" yaml:"otherDebits"`
}

// Result is the seller net sheet. All figures are rounded to cents.
type Result struct {
	SalePrice            float64 `json:"salePrice"`
	Commission           float64 `json:"commission"`
	TotalPayoffs         float64 `json:"totalPayoffs"`
	TotalCosts           float64 `json:"totalCosts"`
	TotalCredits         float64 `json:"totalCredits"`
	EstimatedNetProceeds float64 `json:"estimatedNetProceeds"`
}

// Calculate builds the net sheet. A positive tax proration is added to the
// costs; a negative one is added to the credits.
func Calculate(in Input) Result {
	commission := mathutil.RoundToCents(mathutil.ApplyPercentage(in.SalePrice, in.CommissionPercent))
	payoffs := mathutil.RoundToCents(in.FirstLienPayoff + in.SecondLienPayoff)

	costs := mathutil.RoundToCents(mathutil.Sum(
		commission,
		in.TitleInsurance,
		in.EscrowFee,
		in.TransferTax,
		in.RecordingFees,
		in.RepairCredits,
		in.HOAPayoff,
		in.OtherDebits,
		mathutil.Max(in.PropertyTaxProration, 0),
	))
	credits := mathutil.RoundToCents(in.OtherCredits + mathutil.Max(-in.PropertyTaxProration, 0))

	return Result{
		SalePrice:            mathutil.RoundToCents(in.SalePrice),
		Commission:           commission,
		TotalPayoffs:         payoffs,
		TotalCosts:           costs,
		TotalCredits:         credits,
		EstimatedNetProceeds: mathutil.RoundToCents(in.SalePrice - payoffs - costs + credits),
	}
}

// TransferTax is the transfer tax for a sale at rate percent of the price.
func TransferTax(salePrice, ratePercent float64) float64 {
	return mathutil.RoundToCents(mathutil.ApplyPercentage(salePrice, ratePercent))
}

// TaxProration splits an annual tax bill at closing. The tax year starts at
// periodStart and runs one calendar year. The seller owns every day from
// periodStart through the closing day. When taxes are paid in arrears the
// seller owes its share and the result is positive; when the seller prepaid
// the year it is credited the buyer's share and the result is negative.
func TaxProration(annualTax float64, periodStart, closingDate time.Time, prepaid bool) float64 {
	periodDays := datetime.DaysBetween(periodStart, periodStart.AddDate(1, 0, 0))
	if periodDays <= 0 || annualTax == 0 {
		return 0
	}

	sellerDays := datetime.DaysBetween(periodStart, closingDate) + 1
	if sellerDays < 0 {
		sellerDays = 0
	}
	if sellerDays > periodDays {
		sellerDays = periodDays
	}

	daily := annualTax / float64(periodDays)
	if prepaid {
		return mathutil.RoundToCents(-daily * float64(periodDays-sellerDays))
	}
	return mathutil.RoundToCents(daily * float64(sellerDays))
}

// HOAProration is the seller's share of the closing month's dues, counting
// the closing day as a seller day.
func HOAProration(monthlyDues float64, closingDate time.Time) float64 {
	days := datetime.DaysInMonth(closingDate)
	return mathutil.RoundToCents(monthlyDues / float64(days) * float64(closingDate.Day()))
}
