// Package worksheet reads calculation requests from YAML or JSON documents,
// fills absent fields from the configuration, and runs them.
package worksheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/mortgage-estimator/internal/affordability"
	"github.com/iwvelando/mortgage-estimator/internal/calculator"
	"github.com/iwvelando/mortgage-estimator/internal/compare"
	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/sellernet"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyDocument is returned for a worksheet with no request sections.
	ErrEmptyDocument = errors.New("worksheet has no requests")

	// ErrInvalidRequest is wrapped by every request resolution error.
	ErrInvalidRequest = errors.New("invalid request")
)

// Document is a worksheet. Any combination of sections may be present.
type Document struct {
	Purchase      *PurchaseRequest      `yaml:"purchase,omitempty" json:"purchase,omitempty"`
	SellerNet     *SellerNetRequest     `yaml:"sellerNet,omitempty" json:"sellerNet,omitempty"`
	Comparison    *ComparisonRequest    `yaml:"comparison,omitempty" json:"comparison,omitempty"`
	Affordability *AffordabilityRequest `yaml:"affordability,omitempty" json:"affordability,omitempty"`
}

// Report holds the result of every section that was requested.
type Report struct {
	Purchase      *calculator.Result    `yaml:"purchase,omitempty" json:"purchase,omitempty"`
	SellerNet     *sellernet.Result     `yaml:"sellerNet,omitempty" json:"sellerNet,omitempty"`
	Comparison    []compare.Row         `yaml:"comparison,omitempty" json:"comparison,omitempty"`
	Affordability *affordability.Result `yaml:"affordability,omitempty" json:"affordability,omitempty"`
}

// Load reads a worksheet file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %s: %w", path, err)
	}
	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("worksheet %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML or JSON worksheet. Unknown fields are rejected.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to decode worksheet: %w", err)
	}
	if doc.Empty() {
		return nil, ErrEmptyDocument
	}
	return &doc, nil
}

// Empty reports whether the document requests nothing.
func (d *Document) Empty() bool {
	return d.Purchase == nil && d.SellerNet == nil && d.Comparison == nil && d.Affordability == nil
}

// Run resolves and executes every section of the document.
func Run(conf *config.Configuration, logger *zap.Logger, doc *Document) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if doc == nil || doc.Empty() {
		return nil, ErrEmptyDocument
	}

	var report Report

	if doc.Purchase != nil {
		program, in, err := doc.Purchase.Resolve(conf)
		if err != nil {
			return nil, fmt.Errorf("purchase: %w", err)
		}
		result, err := calculator.Calculate(conf, logger, program, in)
		if err != nil {
			return nil, fmt.Errorf("purchase: %w", err)
		}
		report.Purchase = &result
	}

	if doc.SellerNet != nil {
		in, err := doc.SellerNet.Resolve(conf)
		if err != nil {
			return nil, fmt.Errorf("seller net: %w", err)
		}
		result := sellernet.Calculate(in)
		report.SellerNet = &result
	}

	if doc.Comparison != nil {
		costs, scenarios, err := doc.Comparison.Resolve(conf)
		if err != nil {
			return nil, fmt.Errorf("comparison: %w", err)
		}
		rows, err := compare.Compare(conf, logger, costs, scenarios)
		if err != nil {
			return nil, fmt.Errorf("comparison: %w", err)
		}
		report.Comparison = rows
	}

	if doc.Affordability != nil {
		req, err := doc.Affordability.Resolve(conf)
		if err != nil {
			return nil, fmt.Errorf("affordability: %w", err)
		}
		solver, err := affordability.NewSolver(logger, conf)
		if err != nil {
			return nil, err
		}
		result, err := solver.Solve(req)
		if err != nil {
			return nil, fmt.Errorf("affordability: %w", err)
		}
		report.Affordability = result
	}

	logger.Debug("worksheet executed",
		zap.String("op", "worksheet.Run"),
		zap.Bool("purchase", report.Purchase != nil),
		zap.Bool("sellerNet", report.SellerNet != nil),
		zap.Int("comparisonRows", len(report.Comparison)),
		zap.Bool("affordability", report.Affordability != nil),
	)

	return &report, nil
}
