package sellernet

import (
	"math"
	"testing"

	"github.com/iwvelando/mortgage-estimator/pkg/datetime"
)

func TestCalculate(t *testing.T) {
	base := Input{
		SalePrice:         500000,
		FirstLienPayoff:   300000,
		CommissionPercent: 6,
		TitleInsurance:    2000,
		EscrowFee:         1500,
		TransferTax:       1000,
		RecordingFees:     150,
	}

	tests := []struct {
		name        string
		proration   float64
		wantCosts   float64
		wantCredits float64
		wantNet     float64
	}{
		{"no proration", 0, 34650, 0, 165350},
		{"seller prepaid taxes", -1500, 34650, 1500, 166850},
		{"seller owes taxes", 1500, 36150, 0, 163850},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.PropertyTaxProration = tt.proration
			result := Calculate(in)

			if result.Commission != 30000 {
				t.Errorf("Commission = %v, expected 30000", result.Commission)
			}
			if result.TotalPayoffs != 300000 {
				t.Errorf("TotalPayoffs = %v, expected 300000", result.TotalPayoffs)
			}
			if math.Abs(result.TotalCosts-tt.wantCosts) > 0.001 {
				t.Errorf("TotalCosts = %v, expected %v", result.TotalCosts, tt.wantCosts)
			}
			if math.Abs(result.TotalCredits-tt.wantCredits) > 0.001 {
				t.Errorf("TotalCredits = %v, expected %v", result.TotalCredits, tt.wantCredits)
			}
			if math.Abs(result.EstimatedNetProceeds-tt.wantNet) > 0.001 {
				t.Errorf("EstimatedNetProceeds = %v, expected %v", result.EstimatedNetProceeds, tt.wantNet)
			}
		})
	}
}

func TestCalculateAllFields(t *testing.T) {
	result := Calculate(Input{
		SalePrice:         400000,
		FirstLienPayoff:   200000,
		SecondLienPayoff:  25000,
		CommissionPercent: 5,
		RepairCredits:     3000,
		HOAPayoff:         450,
		OtherCredits:      200,
		OtherDebits:       800,
	})

	if result.TotalPayoffs != 225000 {
		t.Errorf("TotalPayoffs = %v, expected 225000", result.TotalPayoffs)
	}
	if result.TotalCosts != 24250 {
		t.Errorf("TotalCosts = %v, expected 24250", result.TotalCosts)
	}
	if result.EstimatedNetProceeds != 150950 {
		t.Errorf("EstimatedNetProceeds = %v, expected 150950", result.EstimatedNetProceeds)
	}
}

func TestCalculateUnderwaterSale(t *testing.T) {
	result := Calculate(Input{SalePrice: 200000, FirstLienPayoff: 250000, CommissionPercent: 6})
	if result.EstimatedNetProceeds != -62000 {
		t.Errorf("EstimatedNetProceeds = %v, expected -62000", result.EstimatedNetProceeds)
	}
}

func TestTransferTax(t *testing.T) {
	if got := TransferTax(500000, 0.11); got != 550 {
		t.Errorf("TransferTax() = %v, expected 550", got)
	}
	if got := TransferTax(0, 0.11); got != 0 {
		t.Errorf("TransferTax() = %v, expected 0", got)
	}
}

func TestTaxProration(t *testing.T) {
	start := datetime.MustParseTime(datetime.DateLayout, "2025-01-01")

	tests := []struct {
		name     string
		closing  string
		prepaid  bool
		expected float64
	}{
		{"arrears first day", "2025-01-01", false, 10},
		{"arrears mid year", "2025-07-01", false, 1820},
		{"arrears last day", "2025-12-31", false, 3650},
		{"prepaid mid year", "2025-07-01", true, -1830},
		{"prepaid last day", "2025-12-31", true, 0},
		{"closing before period", "2024-12-15", false, 0},
		{"prepaid closing before period", "2024-12-15", true, -3650},
		{"closing after period", "2026-03-01", false, 3650},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closing := datetime.MustParseTime(datetime.DateLayout, tt.closing)
			got := TaxProration(3650, start, closing, tt.prepaid)
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("TaxProration() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestTaxProrationSplitsWholeBill(t *testing.T) {
	start := datetime.MustParseTime(datetime.DateLayout, "2024-07-01")
	closing := datetime.MustParseTime(datetime.DateLayout, "2024-11-17")

	owed := TaxProration(4800, start, closing, false)
	credit := TaxProration(4800, start, closing, true)
	if math.Abs(owed-credit-4800) > 0.011 {
		t.Errorf("seller share %v and buyer share %v do not add up to the bill", owed, -credit)
	}
	if TaxProration(0, start, closing, false) != 0 {
		t.Error("zero tax should prorate to zero")
	}
}

func TestHOAProration(t *testing.T) {
	tests := []struct {
		closing  string
		expected float64
	}{
		{"2025-06-30", 300},
		{"2025-06-15", 150},
		{"2025-06-01", 10},
		{"2024-02-29", 300},
		{"2025-02-14", 150},
	}

	for _, tt := range tests {
		t.Run(tt.closing, func(t *testing.T) {
			got := HOAProration(300, datetime.MustParseTime(datetime.DateLayout, tt.closing))
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("HOAProration() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
