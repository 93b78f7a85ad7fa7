package loans

import (
	"math"
	"testing"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
)

// referencePayment is one row of a published amortization schedule.
type referencePayment struct {
	Month            int
	Payment          float64
	PrincipalPayment float64
	Interest         float64
	LoanBalance      float64
}

// Loan amount $175,000, interest rate 4.5%, term 360 months.
// Calculator: https://www.fidelitygroup.com/amortizing-loan-calculator
func referenceSchedule() []referencePayment {
	return []referencePayment{
		{1, 886.70, 230.45, 656.25, 174769.55},
		{2, 886.70, 231.31, 655.39, 174538.24},
		{3, 886.70, 232.18, 654.52, 174306.06},
		{6, 886.70, 234.80, 651.90, 173604.28},
		{12, 886.70, 240.14, 646.56, 172176.85},
		{24, 886.70, 251.17, 635.53, 169224.01},
		{60, 886.70, 287.40, 599.30, 159526.36},
		{120, 886.70, 359.76, 526.94, 140156.51},
		{240, 886.70, 563.75, 322.95, 85557.02},
		{359, 886.70, 880.09, 6.61, 883.39},
		{360, 886.70, 883.39, 3.31, 0.00},
	}
}

func TestMonthlyPIAgainstReferenceSchedule(t *testing.T) {
	const (
		principal = 175000.0
		rate      = 4.5
		termYears = 30
		tolerance = 0.01
	)

	payment := MonthlyPI(principal, rate, termYears)
	monthlyRate := rate / constants.PercentageMultiplier / constants.MonthsPerYear

	reference := make(map[int]referencePayment)
	for _, row := range referenceSchedule() {
		reference[row.Month] = row
	}

	balance := principal
	for month := 1; month <= termYears*constants.MonthsPerYear; month++ {
		interest := balance * monthlyRate
		principalPaid := payment - interest
		balance -= principalPaid

		want, ok := reference[month]
		if !ok {
			continue
		}
		if math.Abs(payment-want.Payment) > tolerance {
			t.Errorf("month %d: payment %.4f, reference %.2f", month, payment, want.Payment)
		}
		if math.Abs(interest-want.Interest) > tolerance {
			t.Errorf("month %d: interest %.4f, reference %.2f", month, interest, want.Interest)
		}
		if math.Abs(principalPaid-want.PrincipalPayment) > tolerance {
			t.Errorf("month %d: principal %.4f, reference %.2f", month, principalPaid, want.PrincipalPayment)
		}
		if math.Abs(balance-want.LoanBalance) > tolerance {
			t.Errorf("month %d: balance %.4f, reference %.2f", month, balance, want.LoanBalance)
		}
	}
}

func TestFirstMonthInterestMatchesPrepaidInterest(t *testing.T) {
	// A year of per-diem interest spread over twelve months is the first
	// scheduled interest payment.
	first := referenceSchedule()[0]
	perDiem := PrepaidInterest(175000, 4.5, constants.DaysPerYear)
	if math.Abs(perDiem/constants.MonthsPerYear-first.Interest) > 0.01 {
		t.Errorf("expected a year of per-diem interest to average %.2f a month, got %.4f", first.Interest, perDiem/constants.MonthsPerYear)
	}
}

func TestReferenceScheduleDataIntegrity(t *testing.T) {
	for _, row := range referenceSchedule() {
		if math.Abs(row.PrincipalPayment+row.Interest-row.Payment) > 0.01 {
			t.Errorf("month %d: principal %.2f + interest %.2f != payment %.2f",
				row.Month, row.PrincipalPayment, row.Interest, row.Payment)
		}
	}
}
