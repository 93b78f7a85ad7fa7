// Package constants provides shared constants for the mortgage-estimator application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the day-count basis for prepaid interest
	DaysPerYear = 365

	// CurrencyPlaces is the number of decimal places kept on currency outputs
	CurrencyPlaces = 2

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultTermYears is the term used when a request does not carry one
	DefaultTermYears = 30

	// ShortTermYears is the longest term priced with the 15-year FHA MIP table
	ShortTermYears = 15
)

// Loan programs
const (
	ProgramConventional = "conventional"
	ProgramFHA          = "fha"
	ProgramVA           = "va"
)

// PMI payment modes
const (
	// PMIModeMonthly charges PMI as part of the monthly payment
	PMIModeMonthly = "monthly"

	// PMIModeSingleFinanced adds a single upfront premium to the loan amount
	PMIModeSingleFinanced = "single_financed"
)

// VA entitlement usage
const (
	VAUsageFirst      = "first"
	VAUsageSubsequent = "subsequent"
)

// LTV thresholds used by the lookup engines
const (
	// NoMILTV is the LTV at or below which no mortgage insurance applies
	NoMILTV = 80.0

	// FHAMIPThreshold30 splits the 30-year MIP table
	FHAMIPThreshold30 = 95.0

	// FHAMIPThreshold15 splits the 15-year MIP table
	FHAMIPThreshold15 = 90.0

	// VALowDownPercent is the down payment below which the highest VA fee tier applies
	VALowDownPercent = 5.0

	// VAMidDownPercent is the down payment at or above which the lowest VA fee tier applies
	VAMidDownPercent = 10.0
)

// Comparison defaults
const (
	// MinComparisonScenarios is the fewest scenarios a comparison accepts
	MinComparisonScenarios = 2

	// MaxComparisonScenarios is the most scenarios a comparison accepts
	MaxComparisonScenarios = 4

	// DefaultFICOTier is the credit tier used when a request carries no score
	DefaultFICOTier = 760
)

// Input ranges enforced by the validation layer
const (
	MinInterestRate = 0.0
	MaxInterestRate = 20.0
	MinTermYears    = 1
	MaxTermYears    = 40
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultReadHeaderTimeout bounds how long a client may take to send request headers
	DefaultReadHeaderTimeout = 10 * time.Second
)

// Affordability solver defaults
const (
	DefaultAffordabilityMaxIterations = 100
	DefaultAffordabilityUpperPrice    = 5000000.0
)
