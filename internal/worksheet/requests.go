package worksheet

import (
	"fmt"

	"github.com/iwvelando/mortgage-estimator/internal/affordability"
	"github.com/iwvelando/mortgage-estimator/internal/calculator"
	"github.com/iwvelando/mortgage-estimator/internal/compare"
	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/insurance"
	"github.com/iwvelando/mortgage-estimator/internal/sellernet"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/datetime"
	"github.com/iwvelando/mortgage-estimator/pkg/loans"
	"github.com/iwvelando/mortgage-estimator/pkg/mathutil"
	"github.com/iwvelando/mortgage-estimator/pkg/validation"
)

// PurchaseRequest is a single purchase estimate. Pointer fields are optional
// and fall back to configured defaults.
type PurchaseRequest struct {
	Program            string   `yaml:"program" json:"program"`
	SalesPrice         float64  `yaml:"salesPrice" json:"salesPrice"`
	DownPaymentPercent *float64 `yaml:"downPaymentPercent,omitempty" json:"downPaymentPercent,omitempty"`
	DownPaymentAmount  *float64 `yaml:"downPaymentAmount,omitempty" json:"downPaymentAmount,omitempty"`
	InterestRate       *float64 `yaml:"interestRate,omitempty" json:"interestRate,omitempty"`
	TermYears          *int     `yaml:"termYears,omitempty" json:"termYears,omitempty"`
	MonthlyTax         *float64 `yaml:"monthlyTax,omitempty" json:"monthlyTax,omitempty"`
	MonthlyInsurance   float64  `yaml:"monthlyInsurance" json:"monthlyInsurance"`
	MonthlyHOA         float64  `yaml:"monthlyHOA" json:"monthlyHOA"`
	MonthlyFlood       float64  `yaml:"monthlyFlood" json:"monthlyFlood"`
	SellerCredit       float64  `yaml:"sellerCredit" json:"sellerCredit"`
	LenderCredit       float64  `yaml:"lenderCredit" json:"lenderCredit"`
	EarnestDeposit     float64  `yaml:"earnestDeposit" json:"earnestDeposit"`
	OriginationPoints  *float64 `yaml:"originationPoints,omitempty" json:"originationPoints,omitempty"`

	FICOScore *int   `yaml:"ficoScore,omitempty" json:"ficoScore,omitempty"`
	PMIMode   string `yaml:"pmiMode,omitempty" json:"pmiMode,omitempty"`

	Renovation bool `yaml:"renovation,omitempty" json:"renovation,omitempty"`

	VAUsage         string `yaml:"vaUsage,omitempty" json:"vaUsage,omitempty"`
	DisabledVeteran bool   `yaml:"disabledVeteran,omitempty" json:"disabledVeteran,omitempty"`
	Reservist       bool   `yaml:"reservist,omitempty" json:"reservist,omitempty"`
	IRRRL           bool   `yaml:"irrrl,omitempty" json:"irrrl,omitempty"`
	CashOut         bool   `yaml:"cashOut,omitempty" json:"cashOut,omitempty"`
}

// Resolve validates the request and builds the calculator input.
func (r PurchaseRequest) Resolve(conf *config.Configuration) (calculator.Program, calculator.Input, error) {
	program, rate, term, err := programDefaults(conf, r.Program, r.InterestRate, r.TermYears)
	if err != nil {
		return "", calculator.Input{}, err
	}

	var down loans.DownPayment
	switch {
	case r.DownPaymentPercent != nil && r.DownPaymentAmount != nil:
		return "", calculator.Input{}, fmt.Errorf("%w: give either downPaymentPercent or downPaymentAmount, not both", ErrInvalidRequest)
	case r.DownPaymentPercent != nil:
		down = loans.DownPaymentPercent(*r.DownPaymentPercent)
	case r.DownPaymentAmount != nil:
		down = loans.DownPaymentAmount(*r.DownPaymentAmount)
	default:
		return "", calculator.Input{}, fmt.Errorf("%w: downPaymentPercent or downPaymentAmount is required", ErrInvalidRequest)
	}
	amount, percent := down.Resolve(r.SalesPrice)

	if err := validation.ValidatePurchase(validation.PurchaseFields{
		SalesPrice:         r.SalesPrice,
		DownPaymentPercent: percent,
		DownPaymentAmount:  amount,
		InterestRate:       rate,
		TermYears:          term,
	}); err != nil {
		return "", calculator.Input{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	monthlyTax := defaultMonthlyTax(conf, r.SalesPrice, r.MonthlyTax)
	points := conf.Fees.OriginationPoints
	if r.OriginationPoints != nil {
		points = *r.OriginationPoints
	}
	if err := validation.ValidateNonNegative(map[string]float64{
		"monthlyTax":        monthlyTax,
		"monthlyInsurance":  r.MonthlyInsurance,
		"monthlyHOA":        r.MonthlyHOA,
		"monthlyFlood":      r.MonthlyFlood,
		"sellerCredit":      r.SellerCredit,
		"lenderCredit":      r.LenderCredit,
		"earnestDeposit":    r.EarnestDeposit,
		"originationPoints": points,
	}); err != nil {
		return "", calculator.Input{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	pmiMode, err := insurance.ParsePMIMode(r.PMIMode)
	if err != nil {
		return "", calculator.Input{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	usage, err := insurance.ParseVAUsage(r.VAUsage)
	if err != nil {
		return "", calculator.Input{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	in := calculator.Input{
		PurchaseInput: calculator.PurchaseInput{
			SalesPrice:   r.SalesPrice,
			DownPayment:  down,
			InterestRate: rate,
			TermYears:    term,
			Costs: calculator.PropertyCosts{
				MonthlyTax:       monthlyTax,
				MonthlyInsurance: r.MonthlyInsurance,
				MonthlyHOA:       r.MonthlyHOA,
				MonthlyFlood:     r.MonthlyFlood,
			},
			SellerCredit:      r.SellerCredit,
			LenderCredit:      r.LenderCredit,
			EarnestDeposit:    r.EarnestDeposit,
			OriginationPoints: points,
		},
		Conventional: calculator.ConventionalOptions{FICOTier: ficoTier(r.FICOScore), PMIMode: pmiMode},
		FHA:          calculator.FHAOptions{Renovation: r.Renovation},
		VA: calculator.VAOptions{
			Usage:           usage,
			DisabledVeteran: r.DisabledVeteran,
			Reservist:       r.Reservist,
			IRRRL:           r.IRRRL,
			CashOut:         r.CashOut,
		},
	}
	return program, in, nil
}

// TaxProrationRequest derives the signed property tax proration from dates.
type TaxProrationRequest struct {
	AnnualTax   float64 `yaml:"annualTax" json:"annualTax"`
	PeriodStart string  `yaml:"periodStart" json:"periodStart"`
	ClosingDate string  `yaml:"closingDate" json:"closingDate"`
	Prepaid     bool    `yaml:"prepaid" json:"prepaid"`
}

// HOAProrationRequest derives the seller's share of the closing month's dues.
type HOAProrationRequest struct {
	MonthlyDues float64 `yaml:"monthlyDues" json:"monthlyDues"`
	ClosingDate string  `yaml:"closingDate" json:"closingDate"`
}

// SellerNetRequest is a seller net sheet. Absent commission, escrow,
// recording and transfer tax use the configured seller defaults.
type SellerNetRequest struct {
	SalePrice            float64              `yaml:"salePrice" json:"salePrice"`
	FirstLienPayoff      float64              `yaml:"firstLienPayoff" json:"firstLienPayoff"`
	SecondLienPayoff     float64              `yaml:"secondLienPayoff" json:"secondLienPayoff"`
	CommissionPercent    *float64             `yaml:"commissionPercent,omitempty" json:"commissionPercent,omitempty"`
	TitleInsurance       float64              `yaml:"titleInsurance" json:"titleInsurance"`
	EscrowFee            *float64             `yaml:"escrowFee,omitempty" json:"escrowFee,omitempty"`
	TransferTax          *float64             `yaml:"transferTax,omitempty" json:"transferTax,omitempty"`
	RecordingFees        *float64             `yaml:"recordingFees,omitempty" json:"recordingFees,omitempty"`
	RepairCredits        float64              `yaml:"repairCredits" json:"repairCredits"`
	HOAPayoff            float64              `yaml:"hoaPayoff" json:"hoaPayoff"`
	PropertyTaxProration *float64             `yaml:"propertyTaxProration,omitempty" json:"propertyTaxProration,omitempty"`
	TaxProration         *TaxProrationRequest `yaml:"taxProration,omitempty" json:"taxProration,omitempty"`
	HOAProration         *HOAProrationRequest `yaml:"hoaProration,omitempty" json:"hoaProration,omitempty"`
	OtherCredits         float64              `yaml:"otherCredits" json:"otherCredits"`
	OtherDebits          float64              `yaml:"otherDebits" json:"otherDebits"`
}

// Resolve builds the net sheet input. A computed HOA proration is added to
// the HOA payoff. When the tax proration's annual tax is zero it is derived
// from the sale price and the configured annual tax rate.
func (r SellerNetRequest) Resolve(conf *config.Configuration) (sellernet.Input, error) {
	defaults := conf.Seller
	in := sellernet.Input{
		SalePrice:         r.SalePrice,
		FirstLienPayoff:   r.FirstLienPayoff,
		SecondLienPayoff:  r.SecondLienPayoff,
		CommissionPercent: orDefault(r.CommissionPercent, defaults.CommissionPercent),
		TitleInsurance:    r.TitleInsurance,
		EscrowFee:         orDefault(r.EscrowFee, defaults.EscrowFee),
		RecordingFees:     orDefault(r.RecordingFees, defaults.RecordingFees),
		RepairCredits:     r.RepairCredits,
		HOAPayoff:         r.HOAPayoff,
		OtherCredits:      r.OtherCredits,
		OtherDebits:       r.OtherDebits,
	}
	if r.TransferTax != nil {
		in.TransferTax = *r.TransferTax
	} else {
		in.TransferTax = sellernet.TransferTax(r.SalePrice, defaults.TransferTaxRate)
	}

	if r.PropertyTaxProration != nil && r.TaxProration != nil {
		return sellernet.Input{}, fmt.Errorf("%w: give either propertyTaxProration or taxProration, not both", ErrInvalidRequest)
	}
	if r.PropertyTaxProration != nil {
		in.PropertyTaxProration = *r.PropertyTaxProration
	}
	if tp := r.TaxProration; tp != nil {
		start, err := datetime.ParseDate(tp.PeriodStart)
		if err != nil {
			return sellernet.Input{}, fmt.Errorf("%w: taxProration.periodStart: %w", ErrInvalidRequest, err)
		}
		closingDate, err := datetime.ParseDate(tp.ClosingDate)
		if err != nil {
			return sellernet.Input{}, fmt.Errorf("%w: taxProration.closingDate: %w", ErrInvalidRequest, err)
		}
		annual := tp.AnnualTax
		if annual == 0 {
			annual = mathutil.ApplyPercentage(r.SalePrice, conf.Prepaids.AnnualTaxRate)
		}
		in.PropertyTaxProration = sellernet.TaxProration(annual, start, closingDate, tp.Prepaid)
	}

	if hp := r.HOAProration; hp != nil {
		closingDate, err := datetime.ParseDate(hp.ClosingDate)
		if err != nil {
			return sellernet.Input{}, fmt.Errorf("%w: hoaProration.closingDate: %w", ErrInvalidRequest, err)
		}
		in.HOAPayoff += sellernet.HOAProration(hp.MonthlyDues, closingDate)
	}

	if r.SalePrice <= 0 {
		return sellernet.Input{}, fmt.Errorf("%w: sale price must be positive, got %v", ErrInvalidRequest, r.SalePrice)
	}
	if err := validation.ValidateNonNegative(map[string]float64{
		"firstLienPayoff":   in.FirstLienPayoff,
		"secondLienPayoff":  in.SecondLienPayoff,
		"commissionPercent": in.CommissionPercent,
		"titleInsurance":    in.TitleInsurance,
		"escrowFee":         in.EscrowFee,
		"transferTax":       in.TransferTax,
		"recordingFees":     in.RecordingFees,
		"repairCredits":     in.RepairCredits,
		"hoaPayoff":         in.HOAPayoff,
		"otherCredits":      in.OtherCredits,
		"otherDebits":       in.OtherDebits,
	}); err != nil {
		return sellernet.Input{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return in, nil
}

// ScenarioRequest is one comparison option.
type ScenarioRequest struct {
	Name               string   `yaml:"name" json:"name"`
	Program            string   `yaml:"program" json:"program"`
	SalesPrice         float64  `yaml:"salesPrice" json:"salesPrice"`
	DownPaymentPercent float64  `yaml:"downPaymentPercent" json:"downPaymentPercent"`
	InterestRate       *float64 `yaml:"interestRate,omitempty" json:"interestRate,omitempty"`
	TermYears          *int     `yaml:"termYears,omitempty" json:"termYears,omitempty"`
}

// ComparisonRequest lists scenarios sharing one set of property costs.
type ComparisonRequest struct {
	MonthlyTax       float64           `yaml:"monthlyTax" json:"monthlyTax"`
	MonthlyInsurance float64           `yaml:"monthlyInsurance" json:"monthlyInsurance"`
	MonthlyHOA       float64           `yaml:"monthlyHOA" json:"monthlyHOA"`
	Scenarios        []ScenarioRequest `yaml:"scenarios" json:"scenarios"`
}

// Resolve validates every scenario and fills its rate and term defaults.
func (r ComparisonRequest) Resolve(conf *config.Configuration) (calculator.PropertyCosts, []compare.Scenario, error) {
	if err := validation.ValidateScenarioCount(len(r.Scenarios)); err != nil {
		return calculator.PropertyCosts{}, nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := validation.ValidateNonNegative(map[string]float64{
		"monthlyTax":       r.MonthlyTax,
		"monthlyInsurance": r.MonthlyInsurance,
		"monthlyHOA":       r.MonthlyHOA,
	}); err != nil {
		return calculator.PropertyCosts{}, nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	scenarios := make([]compare.Scenario, 0, len(r.Scenarios))
	for i, s := range r.Scenarios {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Scenario %d", i+1)
		}
		program, rate, term, err := programDefaults(conf, s.Program, s.InterestRate, s.TermYears)
		if err != nil {
			return calculator.PropertyCosts{}, nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := validation.ValidatePurchase(validation.PurchaseFields{
			Name:               name,
			SalesPrice:         s.SalesPrice,
			DownPaymentPercent: s.DownPaymentPercent,
			InterestRate:       rate,
			TermYears:          term,
		}); err != nil {
			return calculator.PropertyCosts{}, nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		scenarios = append(scenarios, compare.Scenario{
			Name:               name,
			Program:            program,
			SalesPrice:         s.SalesPrice,
			DownPaymentPercent: s.DownPaymentPercent,
			InterestRate:       rate,
			TermYears:          term,
		})
	}

	costs := calculator.PropertyCosts{
		MonthlyTax:       r.MonthlyTax,
		MonthlyInsurance: r.MonthlyInsurance,
		MonthlyHOA:       r.MonthlyHOA,
	}
	return costs, scenarios, nil
}

// AffordabilityRequest asks for the highest price within a monthly budget.
// An absent annual tax rate uses the configured rate.
type AffordabilityRequest struct {
	Program              string   `yaml:"program" json:"program"`
	TargetMonthlyPayment float64  `yaml:"targetMonthlyPayment" json:"targetMonthlyPayment"`
	DownPaymentPercent   float64  `yaml:"downPaymentPercent" json:"downPaymentPercent"`
	InterestRate         *float64 `yaml:"interestRate,omitempty" json:"interestRate,omitempty"`
	TermYears            *int     `yaml:"termYears,omitempty" json:"termYears,omitempty"`
	AnnualTaxRate        *float64 `yaml:"annualTaxRate,omitempty" json:"annualTaxRate,omitempty"`
	MonthlyInsurance     float64  `yaml:"monthlyInsurance" json:"monthlyInsurance"`
	MonthlyHOA           float64  `yaml:"monthlyHOA" json:"monthlyHOA"`
	MonthlyFlood         float64  `yaml:"monthlyFlood" json:"monthlyFlood"`
	FICOScore            *int     `yaml:"ficoScore,omitempty" json:"ficoScore,omitempty"`
	PMIMode              string   `yaml:"pmiMode,omitempty" json:"pmiMode,omitempty"`
	VAUsage              string   `yaml:"vaUsage,omitempty" json:"vaUsage,omitempty"`
	DisabledVeteran      bool     `yaml:"disabledVeteran,omitempty" json:"disabledVeteran,omitempty"`
	UpperPrice           float64  `yaml:"upperPrice,omitempty" json:"upperPrice,omitempty"`
}

// Resolve builds the solver request.
func (r AffordabilityRequest) Resolve(conf *config.Configuration) (affordability.Request, error) {
	program, rate, term, err := programDefaults(conf, r.Program, r.InterestRate, r.TermYears)
	if err != nil {
		return affordability.Request{}, err
	}
	pmiMode, err := insurance.ParsePMIMode(r.PMIMode)
	if err != nil {
		return affordability.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	usage, err := insurance.ParseVAUsage(r.VAUsage)
	if err != nil {
		return affordability.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	// The price is solved for, so any positive placeholder passes the range check.
	if err := validation.ValidatePurchase(validation.PurchaseFields{
		SalesPrice:         1,
		DownPaymentPercent: r.DownPaymentPercent,
		InterestRate:       rate,
		TermYears:          term,
	}); err != nil {
		return affordability.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return affordability.Request{
		Program:              program,
		TargetMonthlyPayment: r.TargetMonthlyPayment,
		DownPaymentPercent:   r.DownPaymentPercent,
		InterestRate:         rate,
		TermYears:            term,
		AnnualTaxRate:        orDefault(r.AnnualTaxRate, conf.Prepaids.AnnualTaxRate),
		Costs: calculator.PropertyCosts{
			MonthlyInsurance: r.MonthlyInsurance,
			MonthlyHOA:       r.MonthlyHOA,
			MonthlyFlood:     r.MonthlyFlood,
		},
		Conventional: calculator.ConventionalOptions{FICOTier: ficoTier(r.FICOScore), PMIMode: pmiMode},
		VA:           calculator.VAOptions{Usage: usage, DisabledVeteran: r.DisabledVeteran},
		UpperPrice:   r.UpperPrice,
	}, nil
}

func programDefaults(conf *config.Configuration, name string, rate *float64, term *int) (calculator.Program, float64, int, error) {
	program, err := calculator.ParseProgram(name)
	if err != nil {
		return "", 0, 0, err
	}

	resolvedRate, err := conf.Rates.Rate(string(program))
	if err != nil {
		return "", 0, 0, err
	}
	if rate != nil {
		resolvedRate = *rate
	}

	resolvedTerm := constants.DefaultTermYears
	if term != nil {
		resolvedTerm = *term
	}
	return program, resolvedRate, resolvedTerm, nil
}

func defaultMonthlyTax(conf *config.Configuration, price float64, monthly *float64) float64 {
	if monthly != nil {
		return *monthly
	}
	return mathutil.ApplyPercentage(price, conf.Prepaids.AnnualTaxRate) / constants.MonthsPerYear
}

func ficoTier(score *int) loans.FICOTier {
	if score == nil {
		return constants.DefaultFICOTier
	}
	return loans.FICOTierFor(*score)
}

func orDefault(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
