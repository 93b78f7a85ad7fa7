// Package output provides utilities for formatting and displaying estimate results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-estimator/internal/calculator"
	"github.com/iwvelando/mortgage-estimator/internal/worksheet"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/format"
)

// Write renders a report in the named output format.
func Write(w io.Writer, outputFormat string, report *worksheet.Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, report)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report *worksheet.Report) error {
	pw := &prettyWriter{w: w}
	sections := 0
	separate := func() {
		if sections > 0 {
			pw.printf("\n")
		}
		sections++
	}

	if r := report.Purchase; r != nil {
		separate()
		pw.printf("--- Purchase estimate (%s) ---\n", strings.ToUpper(string(r.Program)))
		pw.line("Sales price", format.Currency(r.SalesPrice))
		pw.line("Down payment", fmt.Sprintf("%s (%s)", format.Currency(r.DownPayment), format.Percent(r.DownPaymentPercent, 2)))
		pw.line("Base loan amount", format.Currency(r.BaseLoanAmount))
		pw.line("Total loan amount", format.Currency(r.TotalLoanAmount))
		pw.line("LTV", format.Percent(r.LTV, 2))
		pw.line("Rate / term", fmt.Sprintf("%s / %d years", format.Percent(r.InterestRate, 3), r.TermYears))
		programLines(pw, r)

		pw.printf("Monthly payment\n")
		m := r.Monthly
		pw.item("Principal & interest", m.PrincipalInterest)
		pw.item("Mortgage insurance", m.MortgageInsurance)
		pw.item("Property tax", m.PropertyTax)
		pw.item("Homeowners insurance", m.HomeInsurance)
		pw.item("HOA", m.HOA)
		pw.item("Flood insurance", m.FloodInsurance)
		pw.item("Total", m.Total)

		pw.printf("Closing costs\n")
		cc := r.ClosingCosts
		pw.item("Lender fees", cc.TotalLenderFees)
		pw.item("Third-party fees", cc.TotalThirdPartyFees)
		pw.item("Prepaids", cc.TotalPrepaids)
		pw.item("Total closing costs", cc.TotalClosingCosts)
		pw.item("Credits", -cc.TotalCredits)
		pw.item("Net closing costs", cc.NetClosingCosts)
		pw.line("Cash to close", format.Currency(r.CashToClose))
		warnings(pw, r.Warnings)
	}

	if r := report.SellerNet; r != nil {
		separate()
		pw.printf("--- Seller net sheet ---\n")
		pw.line("Sale price", format.Currency(r.SalePrice))
		pw.line("Commission", format.Currency(r.Commission))
		pw.line("Total payoffs", format.Currency(r.TotalPayoffs))
		pw.line("Total costs", format.Currency(r.TotalCosts))
		pw.line("Total credits", format.Currency(r.TotalCredits))
		pw.line("Estimated net proceeds", format.Currency(r.EstimatedNetProceeds))
	}

	if len(report.Comparison) > 0 {
		separate()
		pw.printf("--- Scenario comparison ---\n")
		pw.printf("%-20s | %-12s | %14s | %14s | %8s | %12s | %12s | %14s\n",
			"Scenario", "Program", "Loan", "Down", "LTV", "P&I", "MI", "Monthly")
		for _, row := range report.Comparison {
			pw.printf("%-20s | %-12s | %14s | %14s | %8s | %12s | %12s | %14s\n",
				row.Name, row.Program,
				format.Currency(row.LoanAmount),
				format.Currency(row.DownPayment),
				format.Percent(row.LTV, 2),
				format.Currency(row.PrincipalInterest),
				format.Currency(row.MortgageInsurance),
				format.Currency(row.MonthlyPayment))
		}
		for _, row := range report.Comparison {
			pw.line(row.Name+" cash to close", format.Currency(row.CashToClose))
			warnings(pw, row.Warnings)
		}
	}

	if r := report.Affordability; r != nil {
		separate()
		pw.printf("--- Affordability (%s) ---\n", strings.ToUpper(string(r.Calculation.Program)))
		pw.line("Target monthly payment", format.Currency(r.Search.Target))
		pw.line("Maximum price", format.Currency(r.MaxPrice))
		pw.line("Monthly payment", format.Currency(r.Calculation.Monthly.Total))
		pw.line("Loan amount", format.Currency(r.Calculation.TotalLoanAmount))
		pw.line("Cash to close", format.Currency(r.Calculation.CashToClose))
		pw.line("Iterations", strconv.Itoa(r.Search.Iterations))
		if !r.Search.Converged {
			pw.line("Converged", "no")
		}
		warnings(pw, r.Search.Notes)
	}

	return pw.err
}

func programLines(pw *prettyWriter, r *calculator.Result) {
	if r.PMIRate != nil {
		pw.line("PMI rate", format.Percent(*r.PMIRate, 2))
	}
	if r.SinglePremiumPMI != nil {
		pw.line("Single premium PMI", format.Currency(*r.SinglePremiumPMI))
	}
	if r.UFMIP != nil {
		pw.line("UFMIP", format.Currency(*r.UFMIP))
	}
	if r.MIPRate != nil {
		pw.line("MIP rate", format.Percent(*r.MIPRate, 2))
	}
	if r.VAFundingFee != nil {
		pw.line("VA funding fee", fmt.Sprintf("%s (%s)", format.Currency(*r.VAFundingFee), format.Percent(*r.VAFundingFeeRate, 2)))
	}
	if r.HighBalance {
		pw.line("High balance", "yes")
	}
}

func warnings(pw *prettyWriter, notes []string) {
	for _, note := range notes {
		pw.printf("  ! %s\n", note)
	}
}

type prettyWriter struct {
	w   io.Writer
	err error
}

func (p *prettyWriter) printf(layout string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, layout, args...)
}

func (p *prettyWriter) line(label, value string) {
	p.printf("%-24s %s\n", label, value)
}

func (p *prettyWriter) item(label string, amount float64) {
	p.printf("  %-22s %s\n", label, format.Currency(amount))
}

// CsvFormat outputs every figure as a "section","field","value" record.
func CsvFormat(w io.Writer, report *worksheet.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"section", "field", "value"}); err != nil {
		return err
	}
	for _, record := range csvRecords(report) {
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString renders the report in CSV format and returns it as a string.
func CsvString(report *worksheet.Report) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, report); err != nil {
		return ""
	}
	return buf.String()
}

func csvRecords(report *worksheet.Report) [][]string {
	var records [][]string
	add := func(section, field string, value float64) {
		records = append(records, []string{section, field, strconv.FormatFloat(value, 'f', 2, 64)})
	}

	if r := report.Purchase; r != nil {
		section := "purchase:" + string(r.Program)
		add(section, "salesPrice", r.SalesPrice)
		add(section, "downPayment", r.DownPayment)
		add(section, "downPaymentPercent", r.DownPaymentPercent)
		add(section, "baseLoanAmount", r.BaseLoanAmount)
		add(section, "totalLoanAmount", r.TotalLoanAmount)
		add(section, "ltv", r.LTV)
		add(section, "principalInterest", r.Monthly.PrincipalInterest)
		add(section, "mortgageInsurance", r.Monthly.MortgageInsurance)
		add(section, "propertyTax", r.Monthly.PropertyTax)
		add(section, "homeInsurance", r.Monthly.HomeInsurance)
		add(section, "hoa", r.Monthly.HOA)
		add(section, "floodInsurance", r.Monthly.FloodInsurance)
		add(section, "monthlyTotal", r.Monthly.Total)
		add(section, "totalLenderFees", r.ClosingCosts.TotalLenderFees)
		add(section, "totalThirdPartyFees", r.ClosingCosts.TotalThirdPartyFees)
		add(section, "totalPrepaids", r.ClosingCosts.TotalPrepaids)
		add(section, "totalCredits", r.ClosingCosts.TotalCredits)
		add(section, "totalClosingCosts", r.ClosingCosts.TotalClosingCosts)
		add(section, "netClosingCosts", r.ClosingCosts.NetClosingCosts)
		add(section, "cashToClose", r.CashToClose)
	}

	if r := report.SellerNet; r != nil {
		add("sellerNet", "salePrice", r.SalePrice)
		add("sellerNet", "commission", r.Commission)
		add("sellerNet", "totalPayoffs", r.TotalPayoffs)
		add("sellerNet", "totalCosts", r.TotalCosts)
		add("sellerNet", "totalCredits", r.TotalCredits)
		add("sellerNet", "estimatedNetProceeds", r.EstimatedNetProceeds)
	}

	for _, row := range report.Comparison {
		section := "comparison:" + row.Name
		add(section, "loanAmount", row.LoanAmount)
		add(section, "downPayment", row.DownPayment)
		add(section, "ltv", row.LTV)
		add(section, "principalInterest", row.PrincipalInterest)
		add(section, "mortgageInsurance", row.MortgageInsurance)
		add(section, "monthlyPayment", row.MonthlyPayment)
		add(section, "cashToClose", row.CashToClose)
	}

	if r := report.Affordability; r != nil {
		add("affordability", "targetMonthlyPayment", r.Search.Target)
		add("affordability", "maxPrice", r.MaxPrice)
		add("affordability", "monthlyPayment", r.Calculation.Monthly.Total)
		add("affordability", "cashToClose", r.Calculation.CashToClose)
	}

	return records
}
