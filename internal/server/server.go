// Package server exposes the calculators over a stateless JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-estimator/internal/affordability"
	"github.com/iwvelando/mortgage-estimator/internal/calculator"
	"github.com/iwvelando/mortgage-estimator/internal/compare"
	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/sellernet"
	"github.com/iwvelando/mortgage-estimator/internal/worksheet"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/output"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	conf        *config.Configuration
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler for the estimate API. The
// configuration is shared read-only by every request.
func NewHandler(logger *zap.Logger, conf *config.Configuration, maxBodySize int64, version string) (http.Handler, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, conf: conf, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// One route per program; the program is the last path segment
	mux.HandleFunc("/api/calculate/", h.handleCalculate)

	mux.HandleFunc("/api/seller-net", h.handleSellerNet)
	mux.HandleFunc("/api/compare", h.handleCompare)
	mux.HandleFunc("/api/affordability", h.handleAffordability)

	// Whole worksheet documents, YAML or JSON
	mux.HandleFunc("/api/worksheet", h.handleWorksheet)

	mux.HandleFunc("/api/config", h.handleConfig)
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux, nil
}

type response struct {
	Result   interface{} `json:"result"`
	CSV      string      `json:"csv,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
	Duration string      `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	start := time.Now()

	program, err := calculator.ParseProgram(strings.TrimPrefix(r.URL.Path, "/api/calculate/"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}

	var req worksheet.PurchaseRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if req.Program != "" && req.Program != string(program) {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("request program %q does not match route %q", req.Program, program), op)
		return
	}
	req.Program = string(program)

	_, in, err := req.Resolve(h.conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	result, err := calculator.Calculate(h.conf, h.logger, program, in)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.respond(w, op, start, &worksheet.Report{Purchase: &result}, result, result.Warnings)
}

func (h *handler) handleSellerNet(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSellerNet"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	start := time.Now()

	var req worksheet.SellerNetRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	in, err := req.Resolve(h.conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result := sellernet.Calculate(in)
	h.respond(w, op, start, &worksheet.Report{SellerNet: &result}, result, nil)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	start := time.Now()

	var req worksheet.ComparisonRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	costs, scenarios, err := req.Resolve(h.conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	rows, err := compare.Compare(h.conf, h.logger, costs, scenarios)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	var warnings []string
	for _, row := range rows {
		for _, warning := range row.Warnings {
			warnings = append(warnings, row.Name+": "+warning)
		}
	}
	h.respond(w, op, start, &worksheet.Report{Comparison: rows}, rows, warnings)
}

func (h *handler) handleAffordability(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAffordability"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	start := time.Now()

	var req worksheet.AffordabilityRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	solverReq, err := req.Resolve(h.conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	solver, err := affordability.NewSolver(h.logger, h.conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	result, err := solver.Solve(solverReq)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	h.respond(w, op, start, &worksheet.Report{Affordability: result}, result, result.Search.Notes)
}

func (h *handler) handleWorksheet(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleWorksheet"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondDecodeError(w, err, op)
		return
	}
	doc, err := worksheet.Parse(bytes.NewReader(data))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	report, err := worksheet.Run(h.conf, h.logger, doc)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	var warnings []string
	if report.Purchase != nil {
		warnings = append(warnings, report.Purchase.Warnings...)
	}
	h.respond(w, op, start, report, report, warnings)
}

func (h *handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	yamlBytes, err := h.conf.ToYAML()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "server.handleConfig")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"configYaml": string(yamlBytes),
		"warnings":   h.conf.ValidateConfiguration(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.respondDecodeError(w, err, op)
		return false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		h.respondErrorWithOp(w, http.StatusBadRequest, "request body must contain a single JSON object", op)
		return false
	}
	return true
}

func (h *handler) respondDecodeError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
}

func (h *handler) respond(w http.ResponseWriter, op string, start time.Time, report *worksheet.Report, result interface{}, warnings []string) {
	elapsed := time.Since(start)
	h.logger.Info("estimate computed",
		zap.String("op", op),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response{
		Result:   result,
		CSV:      output.CsvString(report),
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("estimate request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
