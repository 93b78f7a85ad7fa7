package config

import (
	"errors"
	"fmt"

	"github.com/iwvelando/mortgage-estimator/pkg/loans"
)

// ErrInvalidConfiguration is wrapped by every error returned from Validate.
var ErrInvalidConfiguration = errors.New("invalid configuration")

type namedValue struct {
	name  string
	value float64
}

func (conf *Configuration) namedValues() []namedValue {
	f := conf.Fees
	va := conf.VA.FundingFee
	return []namedValue{
		{"rates.conventional", conf.Rates.Conventional},
		{"rates.fha", conf.Rates.FHA},
		{"rates.va", conf.Rates.VA},
		{"fees.originationPoints", f.OriginationPoints},
		{"fees.adminFee", f.AdminFee},
		{"fees.processingFee", f.ProcessingFee},
		{"fees.underwritingFee", f.UnderwritingFee},
		{"fees.appraisalFee", f.AppraisalFee},
		{"fees.creditReportFee", f.CreditReportFee},
		{"fees.floodCertFee", f.FloodCertFee},
		{"fees.taxServiceFee", f.TaxServiceFee},
		{"fees.docPrepFee", f.DocPrepFee},
		{"fees.ownerTitlePolicy", f.OwnerTitlePolicy},
		{"fees.lenderTitlePolicy", f.LenderTitlePolicy},
		{"fees.escrowFee", f.EscrowFee},
		{"fees.notaryFee", f.NotaryFee},
		{"fees.recordingFee", f.RecordingFee},
		{"fees.courierFee", f.CourierFee},
		{"fees.pestInspectionFee", f.PestInspectionFee},
		{"fees.propertyInspectionFee", f.PropertyInspectionFee},
		{"fees.poolInspectionFee", f.PoolInspectionFee},
		{"prepaids.taxMonths", float64(conf.Prepaids.TaxMonths)},
		{"prepaids.insuranceMonths", float64(conf.Prepaids.InsuranceMonths)},
		{"prepaids.interestDays", float64(conf.Prepaids.InterestDays)},
		{"prepaids.annualTaxRate", conf.Prepaids.AnnualTaxRate},
		{"limits.conformingLimit", conf.Limits.ConformingLimit},
		{"limits.highBalanceLimit", conf.Limits.HighBalanceLimit},
		{"limits.fhaLoanLimit", conf.Limits.FHALoanLimit},
		{"fha.minDownPercent", conf.FHA.MinDownPercent},
		{"fha.ufmipPurchaseRate", conf.FHA.UFMIPPurchaseRate},
		{"fha.ufmipStreamlineRate", conf.FHA.UFMIPStreamlineRate},
		{"fha.mip.term30.ltvAbove95", conf.FHA.MIP.Term30.LTVAbove95},
		{"fha.mip.term30.ltvAtOrBelow95", conf.FHA.MIP.Term30.LTVAtOrBelow95},
		{"fha.mip.term15.ltvAbove90", conf.FHA.MIP.Term15.LTVAbove90},
		{"fha.mip.term15.ltvAtOrBelow90", conf.FHA.MIP.Term15.LTVAtOrBelow90},
		{"va.fundingFee.first.ltvAbove95", va.First.LTVAbove95},
		{"va.fundingFee.first.ltv90To95", va.First.LTV90To95},
		{"va.fundingFee.first.ltvAtOrBelow90", va.First.LTVAtOrBelow90},
		{"va.fundingFee.subsequent.ltvAbove95", va.Subsequent.LTVAbove95},
		{"va.fundingFee.subsequent.ltv90To95", va.Subsequent.LTV90To95},
		{"va.fundingFee.subsequent.ltvAtOrBelow90", va.Subsequent.LTVAtOrBelow90},
		{"va.fundingFee.irrrl", va.IRRRL},
		{"va.fundingFee.cashOutFirst", va.CashOutFirst},
		{"va.fundingFee.cashOutSubsequent", va.CashOutSubsequent},
		{"seller.commissionPercent", conf.Seller.CommissionPercent},
		{"seller.escrowFee", conf.Seller.EscrowFee},
		{"seller.recordingFees", conf.Seller.RecordingFees},
		{"seller.transferTaxRate", conf.Seller.TransferTaxRate},
	}
}

func (conf *Configuration) rateTables() map[string]RateTable {
	return map[string]RateTable{
		"pmi.standard.monthly":    conf.PMI.Standard.Monthly,
		"pmi.standard.single":     conf.PMI.Standard.Single,
		"pmi.highBalance.monthly": conf.PMI.HighBalance.Monthly,
		"pmi.highBalance.single":  conf.PMI.HighBalance.Single,
	}
}

// Validate checks that every rate and fee is non-negative and that each PMI
// table holds a cell for every LTV tier and FICO tier pair.
func (conf *Configuration) Validate() error {
	if conf == nil {
		return fmt.Errorf("%w: configuration is nil", ErrInvalidConfiguration)
	}

	var errs []error
	for _, nv := range conf.namedValues() {
		if nv.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", nv.name, nv.value))
		}
	}

	for _, name := range sortedTableNames() {
		table := conf.rateTables()[name]
		for _, ltv := range loans.LTVTiers {
			for _, fico := range loans.FICOTiers {
				rate, ok := table.Rate(ltv, fico)
				if !ok {
					errs = append(errs, fmt.Errorf("%s is missing LTV tier %d / FICO tier %d", name, ltv, fico))
					continue
				}
				if rate < 0 {
					errs = append(errs, fmt.Errorf("%s LTV tier %d / FICO tier %d must not be negative, got %v", name, ltv, fico, rate))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}

func sortedTableNames() []string {
	return []string{
		"pmi.standard.monthly",
		"pmi.standard.single",
		"pmi.highBalance.monthly",
		"pmi.highBalance.single",
	}
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.Limits.HighBalanceLimit < conf.Limits.ConformingLimit {
		warnings = append(warnings, fmt.Sprintf("High-balance limit %.2f is below the conforming limit %.2f",
			conf.Limits.HighBalanceLimit, conf.Limits.ConformingLimit))
	}
	if conf.Limits.ConformingLimit == 0 {
		warnings = append(warnings, "Conforming limit is 0 - every conventional loan will price as high balance")
	}
	if conf.Prepaids.InterestDays > 31 {
		warnings = append(warnings, fmt.Sprintf("Prepaid interest days %d exceeds one month", conf.Prepaids.InterestDays))
	}

	for _, name := range sortedTableNames() {
		warnings = append(warnings, monotonicityWarnings(name, conf.rateTables()[name])...)
	}

	return warnings
}

// monotonicityWarnings flags cells where a better credit tier costs more, or a
// lower LTV tier costs more, than its neighbour.
func monotonicityWarnings(name string, table RateTable) []string {
	var warnings []string
	for _, ltv := range loans.LTVTiers {
		for j := 1; j < len(loans.FICOTiers); j++ {
			better, _ := table.Rate(ltv, loans.FICOTiers[j-1])
			worse, _ := table.Rate(ltv, loans.FICOTiers[j])
			if better > worse {
				warnings = append(warnings, fmt.Sprintf("%s LTV tier %d: FICO %d rate %.2f exceeds FICO %d rate %.2f",
					name, ltv, loans.FICOTiers[j-1], better, loans.FICOTiers[j], worse))
			}
		}
	}
	for _, fico := range loans.FICOTiers {
		for i := 1; i < len(loans.LTVTiers); i++ {
			lower, _ := table.Rate(loans.LTVTiers[i-1], fico)
			higher, _ := table.Rate(loans.LTVTiers[i], fico)
			if lower > higher {
				warnings = append(warnings, fmt.Sprintf("%s FICO tier %d: LTV %d rate %.2f exceeds LTV %d rate %.2f",
					name, fico, loans.LTVTiers[i-1], lower, loans.LTVTiers[i], higher))
			}
		}
	}
	return warnings
}
