package config

import "github.com/iwvelando/mortgage-estimator/pkg/loans"

// Default returns a fully populated configuration. Every call builds fresh
// maps, so callers may overlay a file onto the result.
func Default() *Configuration {
	return &Configuration{
		Rates: Rates{
			Conventional: 6.875,
			FHA:          6.25,
			VA:           6.0,
		},
		Fees: Fees{
			OriginationPoints: 0,

			AdminFee:        395,
			ProcessingFee:   695,
			UnderwritingFee: 1095,
			AppraisalFee:    650,
			CreditReportFee: 65,
			FloodCertFee:    12,
			TaxServiceFee:   85,
			DocPrepFee:      250,

			OwnerTitlePolicy:      1800,
			LenderTitlePolicy:     950,
			EscrowFee:             1500,
			NotaryFee:             200,
			RecordingFee:          150,
			CourierFee:            75,
			PestInspectionFee:     125,
			PropertyInspectionFee: 450,
			PoolInspectionFee:     0,
		},
		Prepaids: Prepaids{
			TaxMonths:       3,
			InsuranceMonths: 12,
			InterestDays:    15,
			AnnualTaxRate:   1.25,
		},
		Limits: Limits{
			ConformingLimit:  766550,
			HighBalanceLimit: 1149825,
			FHALoanLimit:     498257,
		},
		FHA: FHAConfig{
			MinDownPercent:      3.5,
			UFMIPPurchaseRate:   1.75,
			UFMIPStreamlineRate: 0.01,
			MIP: FHAMIPTable{
				Term30: MIPRates30{LTVAbove95: 0.55, LTVAtOrBelow95: 0.50},
				Term15: MIPRates15{LTVAbove90: 0.40, LTVAtOrBelow90: 0.15},
			},
		},
		VA: VAConfig{
			FundingFee: VAFundingFees{
				First:             VAFundingFeeTiers{LTVAbove95: 2.15, LTV90To95: 1.50, LTVAtOrBelow90: 1.25},
				Subsequent:        VAFundingFeeTiers{LTVAbove95: 3.30, LTV90To95: 1.50, LTVAtOrBelow90: 1.25},
				IRRRL:             0.50,
				CashOutFirst:      2.15,
				CashOutSubsequent: 3.30,
			},
		},
		PMI: PMIMatrix{
			Standard: PMITables{
				Monthly: defaultTable(standardMonthly),
				Single:  defaultTable(standardSingle),
			},
			HighBalance: PMITables{
				Monthly: defaultTable(highBalanceMonthly),
				Single:  defaultTable(highBalanceSingle),
			},
		},
		Seller: SellerDefaults{
			CommissionPercent: 6,
			EscrowFee:         1500,
			RecordingFees:     150,
			TransferTaxRate:   0.11,
		},
	}
}

// Rows follow loans.LTVTiers; columns follow loans.FICOTiers (760 down to 620).
var standardMonthly = [][]float64{
	{0.19, 0.20, 0.23, 0.26, 0.30, 0.38, 0.40, 0.52},
	{0.28, 0.38, 0.46, 0.55, 0.64, 0.77, 0.85, 1.02},
	{0.38, 0.50, 0.62, 0.72, 0.89, 1.05, 1.14, 1.40},
	{0.58, 0.70, 0.87, 0.99, 1.21, 1.40, 1.50, 1.86},
}

var standardSingle = [][]float64{
	{0.70, 0.78, 0.90, 1.00, 1.15, 1.45, 1.55, 1.95},
	{1.15, 1.45, 1.75, 2.05, 2.40, 2.85, 3.15, 3.80},
	{1.60, 1.95, 2.40, 2.75, 3.40, 3.95, 4.30, 5.20},
	{2.25, 2.65, 3.25, 3.70, 4.50, 5.20, 5.60, 6.85},
}

var highBalanceMonthly = [][]float64{
	{0.24, 0.25, 0.28, 0.31, 0.35, 0.43, 0.45, 0.57},
	{0.33, 0.43, 0.51, 0.60, 0.69, 0.82, 0.90, 1.07},
	{0.43, 0.55, 0.67, 0.77, 0.94, 1.10, 1.19, 1.45},
	{0.63, 0.75, 0.92, 1.04, 1.26, 1.45, 1.55, 1.91},
}

var highBalanceSingle = [][]float64{
	{0.95, 1.03, 1.15, 1.25, 1.40, 1.70, 1.80, 2.20},
	{1.40, 1.70, 2.00, 2.30, 2.65, 3.10, 3.40, 4.05},
	{1.85, 2.20, 2.65, 3.00, 3.65, 4.20, 4.55, 5.45},
	{2.50, 2.90, 3.50, 3.95, 4.75, 5.45, 5.85, 7.10},
}

func defaultTable(rows [][]float64) RateTable {
	table := make(RateTable, len(loans.LTVTiers))
	for i, ltv := range loans.LTVTiers {
		row := make(map[loans.FICOTier]float64, len(loans.FICOTiers))
		for j, fico := range loans.FICOTiers {
			row[fico] = rows[i][j]
		}
		table[ltv] = row
	}
	return table
}
