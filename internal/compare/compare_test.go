package compare_test

import (
	"errors"
	"testing"

	"github.com/iwvelando/mortgage-estimator/internal/calculator"
	"github.com/iwvelando/mortgage-estimator/internal/compare"
	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/insurance"
	"github.com/iwvelando/mortgage-estimator/pkg/loans"
	"github.com/iwvelando/mortgage-estimator/pkg/testutil"
)

var sharedCosts = calculator.PropertyCosts{MonthlyTax: 500, MonthlyInsurance: 150}

func threePrograms() []compare.Scenario {
	return []compare.Scenario{
		{Name: "Conventional 5%", Program: calculator.Conventional, SalesPrice: 500000, DownPaymentPercent: 5, InterestRate: 7, TermYears: 30},
		{Name: "FHA 3.5%", Program: calculator.FHA, SalesPrice: 400000, DownPaymentPercent: 3.5, InterestRate: 6.5, TermYears: 30},
		{Name: "VA 0%", Program: calculator.VA, SalesPrice: 400000, DownPaymentPercent: 0, InterestRate: 6, TermYears: 30},
	}
}

func TestCompare(t *testing.T) {
	rows, err := compare.Compare(config.Default(), nil, sharedCosts, threePrograms())
	if err != nil {
		t.Fatalf("Compare() unexpected error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	for i, name := range []string{"Conventional 5%", "FHA 3.5%", "VA 0%"} {
		if rows[i].Name != name {
			t.Errorf("row %d = %q, expected %q", i, rows[i].Name, name)
		}
	}

	conv := testutil.FindRow(rows, "Conventional 5%")
	testutil.AssertCents(t, "conventional loan", conv.LoanAmount, 475000)
	testutil.AssertCents(t, "conventional LTV", conv.LTV, 95)
	// 760 tier at 95% LTV prices at 0.38.
	testutil.AssertCents(t, "conventional PMI", conv.MortgageInsurance, 150.42)

	fha := testutil.FindRow(rows, "FHA 3.5%")
	testutil.AssertCents(t, "FHA loan", fha.LoanAmount, 392755)
	testutil.AssertCents(t, "FHA MIP", fha.MortgageInsurance, 176.92)
	testutil.AssertCents(t, "FHA P&I", fha.PrincipalInterest, 2482.48)
	testutil.AssertCents(t, "FHA monthly", fha.MonthlyPayment, 2482.48+176.92+500+150)

	va := testutil.FindRow(rows, "VA 0%")
	testutil.AssertCents(t, "VA loan", va.LoanAmount, 408600)
	testutil.AssertCents(t, "VA LTV", va.LTV, 100)
	testutil.AssertCents(t, "VA MI", va.MortgageInsurance, 0)
	testutil.AssertCents(t, "VA down payment", va.DownPayment, 0)
}

func TestCompareMatchesCalculator(t *testing.T) {
	conf := config.Default()
	scenarios := threePrograms()[:2]

	rows, err := compare.Compare(conf, nil, sharedCosts, scenarios)
	if err != nil {
		t.Fatalf("Compare() unexpected error = %v", err)
	}

	for i, s := range scenarios {
		in := calculator.Input{
			PurchaseInput: calculator.PurchaseInput{
				SalesPrice:   s.SalesPrice,
				DownPayment:  loans.DownPaymentPercent(s.DownPaymentPercent),
				InterestRate: s.InterestRate,
				TermYears:    s.TermYears,
				Costs:        sharedCosts,
			},
			Conventional: calculator.ConventionalOptions{FICOTier: 760, PMIMode: insurance.PMIMonthly},
		}
		result, err := calculator.Calculate(conf, nil, s.Program, in)
		if err != nil {
			t.Fatalf("Calculate() unexpected error = %v", err)
		}
		if rows[i].CashToClose != result.CashToClose || rows[i].MonthlyPayment != result.Monthly.Total {
			t.Errorf("row %q differs from direct calculation", s.Name)
		}
	}
}

func TestCompareScenarioCount(t *testing.T) {
	all := append(threePrograms(), threePrograms()...)

	tests := []struct {
		count   int
		wantErr bool
	}{
		{0, true},
		{1, true},
		{2, false},
		{3, false},
		{4, false},
		{5, true},
	}

	for _, tt := range tests {
		_, err := compare.Compare(config.Default(), nil, sharedCosts, all[:tt.count])
		if tt.wantErr && !errors.Is(err, compare.ErrScenarioCount) {
			t.Errorf("count %d: expected ErrScenarioCount, got %v", tt.count, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("count %d: unexpected error %v", tt.count, err)
		}
	}
}

func TestCompareUnknownProgram(t *testing.T) {
	scenarios := threePrograms()
	scenarios[1].Program = "usda"

	_, err := compare.Compare(config.Default(), nil, sharedCosts, scenarios)
	if !errors.Is(err, calculator.ErrUnknownProgram) {
		t.Errorf("expected ErrUnknownProgram, got %v", err)
	}
}

func TestCompareDefaultNames(t *testing.T) {
	scenarios := threePrograms()[:2]
	scenarios[0].Name = ""
	scenarios[1].Name = ""

	rows, err := compare.Compare(config.Default(), nil, sharedCosts, scenarios)
	if err != nil {
		t.Fatalf("Compare() unexpected error = %v", err)
	}
	if rows[0].Name != "Scenario 1" || rows[1].Name != "Scenario 2" {
		t.Errorf("unexpected default names %q, %q", rows[0].Name, rows[1].Name)
	}
}
