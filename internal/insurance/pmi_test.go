package insurance

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/pkg/loans"
)

func TestPMIRate(t *testing.T) {
	conf := config.Default()

	tests := []struct {
		name       string
		ltv        float64
		fico       loans.FICOTier
		loanAmount float64
		mode       PMIMode
		expected   float64
	}{
		{"At 80 LTV no PMI", 80, 740, 400000, PMIMonthly, 0},
		{"Below 80 LTV no PMI", 60, 620, 300000, PMIMonthly, 0},
		{"95 LTV 740 monthly", 95, 740, 475000, PMIMonthly, 0.50},
		{"81 LTV resolves to 85 tier", 81, 760, 405000, PMIMonthly, 0.19},
		{"86 LTV resolves to 90 tier", 86, 700, 430000, PMIMonthly, 0.55},
		{"96.5 LTV resolves to 97 tier", 96.5, 620, 386000, PMIMonthly, 1.86},
		{"Above 97 clamps to 97 tier", 99, 760, 396000, PMIMonthly, 0.58},
		{"Single premium table", 95, 740, 475000, PMISingleFinanced, 1.95},
		{"High balance monthly", 90, 740, 900000, PMIMonthly, 0.43},
		{"High balance single", 97, 620, 1000000, PMISingleFinanced, 7.10},
		{"At conforming limit uses standard", 95, 740, 766550, PMIMonthly, 0.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := PMIRate(conf, tt.ltv, tt.fico, tt.loanAmount, tt.mode)
			if err != nil {
				t.Fatalf("PMIRate() unexpected error = %v", err)
			}
			if rate != tt.expected {
				t.Errorf("PMIRate() = %v, expected %v", rate, tt.expected)
			}
		})
	}
}

func TestPMIRateErrors(t *testing.T) {
	conf := config.Default()

	if _, err := PMIRate(conf, 95, 740, 475000, PMIMode("split")); !errors.Is(err, ErrUnknownPMIMode) {
		t.Errorf("expected ErrUnknownPMIMode, got %v", err)
	}
	if _, err := PMIRate(conf, 95, 750, 475000, PMIMonthly); !errors.Is(err, ErrUnknownFICOTier) {
		t.Errorf("expected ErrUnknownFICOTier, got %v", err)
	}
}

func TestPMIRateTableIsMonotonic(t *testing.T) {
	conf := config.Default()
	for _, mode := range []PMIMode{PMIMonthly, PMISingleFinanced} {
		for _, amount := range []float64{400000, 1000000} {
			for _, ltv := range loans.LTVTiers {
				previous := -1.0
				for i := len(loans.FICOTiers) - 1; i >= 0; i-- {
					rate, err := PMIRate(conf, float64(ltv), loans.FICOTiers[i], amount, mode)
					if err != nil {
						t.Fatalf("PMIRate() error = %v", err)
					}
					if previous >= 0 && rate > previous {
						t.Errorf("mode %s amount %v LTV %d: FICO %d rate %v exceeds worse tier rate %v",
							mode, amount, ltv, loans.FICOTiers[i], rate, previous)
					}
					previous = rate
				}
			}
			for _, fico := range loans.FICOTiers {
				previous := 0.0
				for _, ltv := range loans.LTVTiers {
					rate, _ := PMIRate(conf, float64(ltv), fico, amount, mode)
					if rate < previous {
						t.Errorf("mode %s amount %v FICO %d: LTV %d rate %v below lower tier rate %v",
							mode, amount, fico, ltv, rate, previous)
					}
					previous = rate
				}
			}
		}
	}
}

func TestParsePMIMode(t *testing.T) {
	for input, want := range map[string]PMIMode{"": PMIMonthly, "monthly": PMIMonthly, "single_financed": PMISingleFinanced} {
		got, err := ParsePMIMode(input)
		if err != nil || got != want {
			t.Errorf("ParsePMIMode(%q) = %v, %v; expected %v", input, got, err, want)
		}
	}
	if _, err := ParsePMIMode("single_cash"); !errors.Is(err, ErrUnknownPMIMode) {
		t.Errorf("expected ErrUnknownPMIMode, got %v", err)
	}
}

func TestPMIAmounts(t *testing.T) {
	if got := MonthlyPMI(475000, 0.50); math.Abs(got-197.9166666) > 1e-4 {
		t.Errorf("MonthlyPMI() = %v, expected ~197.92", got)
	}
	if got := SinglePremiumPMI(475000, 1.95); math.Abs(got-9262.5) > 1e-9 {
		t.Errorf("SinglePremiumPMI() = %v, expected 9262.5", got)
	}
	if got := MonthlyPMI(475000, 0); got != 0 {
		t.Errorf("MonthlyPMI() with zero rate = %v", got)
	}
}
