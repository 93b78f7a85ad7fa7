// Package closing aggregates lender fees, third-party fees, prepaids and
// credits into a closing cost breakdown and a cash-to-close figure.
package closing

import (
	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/loans"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
)

// Input holds the loan facts the aggregator needs.
type Input struct {
	LoanAmount        float64
	InterestRate      float64 // percent
	OriginationPoints float64 // percent of loan amount
	AnnualTax         float64
	AnnualInsurance   float64
	SellerCredit      float64
	LenderCredit      float64
}

// LineItem is one named fee.
type LineItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Breakdown is the itemized closing cost estimate. Every figure is rounded
// to cents and the subtotals add up to the totals.
type Breakdown struct {
	LenderFees          []LineItem `json:"lenderFees"`
	ThirdPartyFees      []LineItem `json:"thirdPartyFees"`
	OriginationFee      float64    `json:"originationFee"`
	TotalLenderFees     float64    `json:"totalLenderFees"`
	TotalThirdPartyFees float64    `json:"totalThirdPartyFees"`
	PrepaidInterest     float64    `json:"prepaidInterest"`
	TaxReserve          float64    `json:"taxReserve"`
	InsuranceReserve    float64    `json:"insuranceReserve"`
	TotalPrepaids       float64    `json:"totalPrepaids"`
	TotalCredits        float64    `json:"totalCredits"`
	TotalClosingCosts   float64    `json:"totalClosingCosts"`
	NetClosingCosts     float64    `json:"netClosingCosts"`
}

// Calculate builds the closing cost breakdown. Credits are reported but not
// subtracted from TotalClosingCosts; NetClosingCosts is the total less credits.
func Calculate(fees config.Fees, prepaids config.Prepaids, in Input) Breakdown {
	var b Breakdown

	b.OriginationFee = mathutil.RoundToCents(mathutil.ApplyPercentage(in.LoanAmount, in.OriginationPoints))
	b.LenderFees = []LineItem{
		{"Origination", b.OriginationFee},
		{"Admin", fees.AdminFee},
		{"Processing", fees.ProcessingFee},
		{"Underwriting", fees.UnderwritingFee},
		{"Appraisal", fees.AppraisalFee},
		{"Credit report", fees.CreditReportFee},
		{"Flood certification", fees.FloodCertFee},
		{"Tax service", fees.TaxServiceFee},
		{"Document preparation", fees.DocPrepFee},
	}
	b.TotalLenderFees = sumItems(b.LenderFees)

	b.ThirdPartyFees = []LineItem{
		{"Owner's title policy", fees.OwnerTitlePolicy},
		{"Lender's title policy", fees.LenderTitlePolicy},
		{"Escrow", fees.EscrowFee},
		{"Notary", fees.NotaryFee},
		{"Recording", fees.RecordingFee},
		{"Courier", fees.CourierFee},
		{"Pest inspection", fees.PestInspectionFee},
		{"Property inspection", fees.PropertyInspectionFee},
		{"Pool inspection", fees.PoolInspectionFee},
	}
	b.TotalThirdPartyFees = sumItems(b.ThirdPartyFees)

	b.PrepaidInterest = mathutil.RoundToCents(loans.PrepaidInterest(in.LoanAmount, in.InterestRate, prepaids.InterestDays))
	b.TaxReserve = mathutil.RoundToCents(loans.ReserveAmount(in.AnnualTax, prepaids.TaxMonths))
	b.InsuranceReserve = mathutil.RoundToCents(loans.ReserveAmount(in.AnnualInsurance, prepaids.InsuranceMonths))
	b.TotalPrepaids = mathutil.RoundToCents(b.PrepaidInterest + b.TaxReserve + b.InsuranceReserve)

	b.TotalCredits = mathutil.RoundToCents(in.SellerCredit + in.LenderCredit)
	b.TotalClosingCosts = mathutil.RoundToCents(b.TotalLenderFees + b.TotalThirdPartyFees + b.TotalPrepaids)
	b.NetClosingCosts = mathutil.RoundToCents(b.TotalClosingCosts - b.TotalCredits)

	return b
}

// CashToClose is the buyer's funds due at closing: down payment plus closing
// costs, less credits and the earnest deposit already paid.
func CashToClose(downPayment, totalClosingCosts, totalCredits, earnestDeposit float64) float64 {
	return mathutil.RoundToCents(downPayment + totalClosingCosts - totalCredits - earnestDeposit)
}

// AnnualFromMonthly converts a monthly cost to its annual amount.
func AnnualFromMonthly(monthly float64) float64 {
	return monthly * constants.MonthsPerYear
}

func sumItems(items []LineItem) float64 {
	total := 0.0
	for i := range items {
		items[i].Amount = mathutil.RoundToCents(items[i].Amount)
		total += items[i].Amount
	}
	return mathutil.RoundToCents(total)
}
