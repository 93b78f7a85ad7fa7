package calculator

import "testing"

func TestFHAMinimumDown(t *testing.T) {
	result := mustCalculate(t, FHA, Input{PurchaseInput: purchaseInput(400000, 3.5, 6.5)})

	assertClose(t, "BaseLoanAmount", result.BaseLoanAmount, 386000)
	assertClose(t, "LTV", result.LTV, 96.5)
	if result.UFMIP == nil || result.MIPRate == nil {
		t.Fatal("expected UFMIP and MIP rate")
	}
	assertClose(t, "UFMIP", *result.UFMIP, 6755)
	assertClose(t, "TotalLoanAmount", result.TotalLoanAmount, 392755)
	assertClose(t, "MIPRate", *result.MIPRate, 0.55)
	assertClose(t, "MortgageInsurance", result.Monthly.MortgageInsurance, 176.92)

	// P&I amortizes the balance including UFMIP.
	assertClose(t, "PrincipalInterest", result.Monthly.PrincipalInterest, 2482.48)

	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", result.Warnings)
	}
	if result.PMIRate != nil || result.VAFundingFee != nil {
		t.Error("FHA result carries conventional/VA fields")
	}
}

func TestFHAMIPSelection(t *testing.T) {
	tests := []struct {
		name        string
		downPercent float64
		termYears   int
		expected    float64
	}{
		{"30 year at 5 down", 5, 30, 0.50},
		{"30 year at 3.5 down", 3.5, 30, 0.55},
		{"15 year at 3.5 down", 3.5, 15, 0.40},
		{"15 year at 10 down", 10, 15, 0.15},
		{"15 year at 9 down", 9, 15, 0.40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{PurchaseInput: purchaseInput(300000, tt.downPercent, 6)}
			in.TermYears = tt.termYears
			result := mustCalculate(t, FHA, in)
			if *result.MIPRate != tt.expected {
				t.Errorf("MIPRate = %v, expected %v", *result.MIPRate, tt.expected)
			}
		})
	}
}

func TestFHAWarnings(t *testing.T) {
	in := Input{PurchaseInput: purchaseInput(600000, 2, 6.5)}
	in.FHA.Renovation = true

	result := mustCalculate(t, FHA, in)

	for _, fragment := range []string{
		"below the FHA minimum",
		"exceeds the FHA loan limit",
		"Renovation financing selected",
	} {
		if !hasWarning(result, fragment) {
			t.Errorf("expected warning containing %q, got %v", fragment, result.Warnings)
		}
	}
}
