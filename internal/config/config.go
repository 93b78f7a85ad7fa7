// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/loans"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds every rate, fee and limit the calculators read. It is
// built once, validated, and then shared read-only between calculations.
type Configuration struct {
	Rates    Rates          `yaml:"rates" mapstructure:"rates"`
	Fees     Fees           `yaml:"fees" mapstructure:"fees"`
	Prepaids Prepaids       `yaml:"prepaids" mapstructure:"prepaids"`
	Limits   Limits         `yaml:"limits" mapstructure:"limits"`
	FHA      FHAConfig      `yaml:"fha" mapstructure:"fha"`
	VA       VAConfig       `yaml:"va" mapstructure:"va"`
	PMI      PMIMatrix      `yaml:"pmi" mapstructure:"pmi"`
	Seller   SellerDefaults `yaml:"seller" mapstructure:"seller"`
	Company  Company        `yaml:"company" mapstructure:"company"`
	Logging  LoggingConfig  `yaml:"logging,omitempty" mapstructure:"logging"`
	Output   OutputConfig   `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv
}

// Rates holds the default interest rate, in percent, for each program.
type Rates struct {
	Conventional float64 `yaml:"conventional" mapstructure:"conventional"`
	FHA          float64 `yaml:"fha" mapstructure:"fha"`
	VA           float64 `yaml:"va" mapstructure:"va"`
}

// Fees is the fixed-dollar closing fee schedule plus origination points.
type Fees struct {
	OriginationPoints float64 `yaml:"originationPoints" mapstructure:"originationPoints"`

	AdminFee        float64 `yaml:"adminFee" mapstructure:"adminFee"`
	ProcessingFee   float64 `yaml:"processingFee" mapstructure:"processingFee"`
	UnderwritingFee float64 `yaml:"underwritingFee" mapstructure:"underwritingFee"`
	AppraisalFee    float64 `yaml:"appraisalFee" mapstructure:"appraisalFee"`
	CreditReportFee float64 `yaml:"creditReportFee" mapstructure:"creditReportFee"`
	FloodCertFee    float64 `yaml:"floodCertFee" mapstructure:"floodCertFee"`
	TaxServiceFee   float64 `yaml:"taxServiceFee" mapstructure:"taxServiceFee"`
	DocPrepFee      float64 `yaml:"docPrepFee" mapstructure:"docPrepFee"`

	OwnerTitlePolicy      float64 `yaml:"ownerTitlePolicy" mapstructure:"ownerTitlePolicy"`
	LenderTitlePolicy     float64 `yaml:"lenderTitlePolicy" mapstructure:"lenderTitlePolicy"`
	EscrowFee             float64 `yaml:"escrowFee" mapstructure:"escrowFee"`
	NotaryFee             float64 `yaml:"notaryFee" mapstructure:"notaryFee"`
	RecordingFee          float64 `yaml:"recordingFee" mapstructure:"recordingFee"`
	CourierFee            float64 `yaml:"courierFee" mapstructure:"courierFee"`
	PestInspectionFee     float64 `yaml:"pestInspectionFee" mapstructure:"pestInspectionFee"`
	PropertyInspectionFee float64 `yaml:"propertyInspectionFee" mapstructure:"propertyInspectionFee"`
	PoolInspectionFee     float64 `yaml:"poolInspectionFee" mapstructure:"poolInspectionFee"`
}

// Prepaids holds the default prepaid and reserve counts.
type Prepaids struct {
	TaxMonths       int     `yaml:"taxMonths" mapstructure:"taxMonths"`
	InsuranceMonths int     `yaml:"insuranceMonths" mapstructure:"insuranceMonths"`
	InterestDays    int     `yaml:"interestDays" mapstructure:"interestDays"`
	AnnualTaxRate   float64 `yaml:"annualTaxRate" mapstructure:"annualTaxRate"` // percent of price
}

// Limits holds the loan amount ceilings.
type Limits struct {
	ConformingLimit  float64 `yaml:"conformingLimit" mapstructure:"conformingLimit"`
	HighBalanceLimit float64 `yaml:"highBalanceLimit" mapstructure:"highBalanceLimit"`
	FHALoanLimit     float64 `yaml:"fhaLoanLimit" mapstructure:"fhaLoanLimit"`
}

// FHAConfig holds the FHA premium rules.
type FHAConfig struct {
	MinDownPercent      float64     `yaml:"minDownPercent" mapstructure:"minDownPercent"`
	UFMIPPurchaseRate   float64     `yaml:"ufmipPurchaseRate" mapstructure:"ufmipPurchaseRate"`
	UFMIPStreamlineRate float64     `yaml:"ufmipStreamlineRate" mapstructure:"ufmipStreamlineRate"`
	MIP                 FHAMIPTable `yaml:"mip" mapstructure:"mip"`
}

// FHAMIPTable holds annual MIP rates by term and LTV bucket.
type FHAMIPTable struct {
	Term30 MIPRates30 `yaml:"term30" mapstructure:"term30"`
	Term15 MIPRates15 `yaml:"term15" mapstructure:"term15"`
}

// MIPRates30 applies to terms longer than 15 years.
type MIPRates30 struct {
	LTVAbove95     float64 `yaml:"ltvAbove95" mapstructure:"ltvAbove95"`
	LTVAtOrBelow95 float64 `yaml:"ltvAtOrBelow95" mapstructure:"ltvAtOrBelow95"`
}

// MIPRates15 applies to terms of 15 years or less.
type MIPRates15 struct {
	LTVAbove90     float64 `yaml:"ltvAbove90" mapstructure:"ltvAbove90"`
	LTVAtOrBelow90 float64 `yaml:"ltvAtOrBelow90" mapstructure:"ltvAtOrBelow90"`
}

// VAConfig holds the VA funding fee schedule. Disabled veterans are always exempt.
type VAConfig struct {
	FundingFee VAFundingFees `yaml:"fundingFee" mapstructure:"fundingFee"`
}

// VAFundingFees is the funding fee table in percent of the loan amount.
type VAFundingFees struct {
	First             VAFundingFeeTiers `yaml:"first" mapstructure:"first"`
	Subsequent        VAFundingFeeTiers `yaml:"subsequent" mapstructure:"subsequent"`
	IRRRL             float64           `yaml:"irrrl" mapstructure:"irrrl"`
	CashOutFirst      float64           `yaml:"cashOutFirst" mapstructure:"cashOutFirst"`
	CashOutSubsequent float64           `yaml:"cashOutSubsequent" mapstructure:"cashOutSubsequent"`
}

// VAFundingFeeTiers splits a usage row by LTV (equivalently, by down payment).
type VAFundingFeeTiers struct {
	LTVAbove95     float64 `yaml:"ltvAbove95" mapstructure:"ltvAbove95"`
	LTV90To95      float64 `yaml:"ltv90To95" mapstructure:"ltv90To95"`
	LTVAtOrBelow90 float64 `yaml:"ltvAtOrBelow90" mapstructure:"ltvAtOrBelow90"`
}

// RateTable maps an LTV tier and FICO tier to a rate in percent.
type RateTable map[loans.LTVTier]map[loans.FICOTier]float64

// Rate looks up a cell; ok is false when the cell is missing.
func (t RateTable) Rate(ltv loans.LTVTier, fico loans.FICOTier) (rate float64, ok bool) {
	row, ok := t[ltv]
	if !ok {
		return 0, false
	}
	rate, ok = row[fico]
	return rate, ok
}

// PMITables holds the monthly and single-premium tables for one balance class.
type PMITables struct {
	Monthly RateTable `yaml:"monthly" mapstructure:"monthly"`
	Single  RateTable `yaml:"single" mapstructure:"single"`
}

// PMIMatrix holds the standard and high-balance PMI tables.
type PMIMatrix struct {
	Standard    PMITables `yaml:"standard" mapstructure:"standard"`
	HighBalance PMITables `yaml:"highBalance" mapstructure:"highBalance"`
}

// SellerDefaults fills seller net sheet costs the caller leaves out.
type SellerDefaults struct {
	CommissionPercent float64 `yaml:"commissionPercent" mapstructure:"commissionPercent"`
	EscrowFee         float64 `yaml:"escrowFee" mapstructure:"escrowFee"`
	RecordingFees     float64 `yaml:"recordingFees" mapstructure:"recordingFees"`
	TransferTaxRate   float64 `yaml:"transferTaxRate" mapstructure:"transferTaxRate"` // percent of price
}

// Company is display information printed alongside estimates.
type Company struct {
	Name  string `yaml:"name,omitempty" mapstructure:"name"`
	NMLS  string `yaml:"nmls,omitempty" mapstructure:"nmls"`
	Phone string `yaml:"phone,omitempty" mapstructure:"phone"`
	Email string `yaml:"email,omitempty" mapstructure:"email"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there on top of the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory source on top of the defaults.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	configuration := Default()
	if err := v.Unmarshal(configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}

	return configuration, nil
}

// Rate returns the default interest rate for a program name.
func (r Rates) Rate(program string) (float64, error) {
	switch program {
	case constants.ProgramConventional:
		return r.Conventional, nil
	case constants.ProgramFHA:
		return r.FHA, nil
	case constants.ProgramVA:
		return r.VA, nil
	default:
		return 0, fmt.Errorf("no default rate for program %q", program)
	}
}

// ToYAML renders the configuration as a YAML document.
func (conf *Configuration) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(conf); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}
