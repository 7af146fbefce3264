/*
handlers.go - HTTP API handlers for the consolidation engine

PURPOSE:
  Exposes the consolidation engine over REST. Handles multipart uploads,
  JSON serialization and the spreadsheet download, and delegates all
  actual work to the engine and report packages.

ENDPOINTS:
  POST /api/analysis              Upload sales/stock/whitelist, run the engine
  GET  /api/analysis              Summary of the current run
  GET  /api/analysis/balances     Balance table
  GET  /api/analysis/movements    Enriched movement list
  GET  /api/analysis/report.xlsx  Styled spreadsheet download

STATE:
  The handler keeps exactly one analysis result in memory: the latest
  completed run. A new upload replaces it; a restart clears it. There is
  deliberately no persistence; every analysis is self-contained.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors (missing column, empty filter result, bad upload)
  - 404: No analysis has been run yet
  - 500: Internal errors

SEE ALSO:
  - dto.go: Response shapes
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/warp/consolidation-engine/consolidation"
	"github.com/warp/consolidation-engine/ingest"
	"github.com/warp/consolidation-engine/report"
)

// ErrNoAnalysis is returned by read endpoints before the first upload.
var ErrNoAnalysis = errors.New("no analysis has been run")

const maxUploadBytes = 64 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *consolidation.Engine
	Log    *logrus.Logger

	// Latest completed run. Guarded because the HTTP server is concurrent
	// even though each analysis run is strictly sequential.
	mu     sync.RWMutex
	result *consolidation.Result
}

// NewHandler creates a handler with a default engine.
func NewHandler(log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		Engine: &consolidation.Engine{},
		Log:    log,
	}
}

func (h *Handler) current() (*consolidation.Result, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.result == nil {
		return nil, ErrNoAnalysis
	}
	return h.result, nil
}

// =============================================================================
// ANALYSIS HANDLERS
// =============================================================================

// RunAnalysis accepts the three input files as a multipart upload, runs the
// full pipeline and caches the result.
//
// Form fields:
//
//	sales, stock, whitelist  files (CSV or XLSX)
//	brands, store_brands     optional comma-separated filter selections
func (h *Handler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart upload", err)
		return
	}

	sales, err := h.formTable(r, "sales")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad sales file", err)
		return
	}
	stock, err := h.formTable(r, "stock")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad stock file", err)
		return
	}
	whitelist, err := h.formTable(r, "whitelist")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad whitelist file", err)
		return
	}

	in := consolidation.Input{
		Sales:     sales,
		Stock:     stock,
		Whitelist: whitelist,
		Filter: consolidation.FilterCriteria{
			Brands:      splitList(r.FormValue("brands")),
			StoreBrands: splitList(r.FormValue("store_brands")),
		},
	}

	result, err := h.Engine.Run(r.Context(), in)
	if err != nil {
		if consolidation.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Analysis rejected", err)
		} else {
			h.Log.WithError(err).Error("analysis failed")
			writeError(w, http.StatusInternalServerError, "Analysis failed", err)
		}
		return
	}

	h.mu.Lock()
	h.result = result
	h.mu.Unlock()

	summary := report.Summarize(result.Movements)
	h.Log.WithFields(logrus.Fields{
		"balances":  len(result.Balances),
		"movements": summary.Movements,
		"quantity":  summary.TotalQuantity.String(),
		"warnings":  len(result.Warnings),
	}).Info("analysis complete")

	writeJSON(w, http.StatusOK, toAnalysisResponse(result))
}

// GetSummary returns the summary of the current run.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.current()
	if err != nil {
		writeError(w, http.StatusNotFound, "No analysis yet", err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponse(result))
}

// GetBalances returns the balance table of the current run.
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	result, err := h.current()
	if err != nil {
		writeError(w, http.StatusNotFound, "No analysis yet", err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTOs(result.Balances))
}

// GetMovements returns the enriched movement list of the current run.
func (h *Handler) GetMovements(w http.ResponseWriter, r *http.Request) {
	result, err := h.current()
	if err != nil {
		writeError(w, http.StatusNotFound, "No analysis yet", err)
		return
	}
	writeJSON(w, http.StatusOK, toMovementDTOs(result.Movements))
}

// DownloadReport streams the consolidation report spreadsheet.
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.current()
	if err != nil {
		writeError(w, http.StatusNotFound, "No analysis yet", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="consolidation_report.xlsx"`)
	if err := report.WriteXLSX(w, result.Movements); err != nil {
		h.Log.WithError(err).Error("report export failed")
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) formTable(r *http.Request, field string) (consolidation.Table, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return consolidation.Table{}, fmt.Errorf("missing %q file: %w", field, err)
	}
	defer file.Close()
	return ingest.Read(file, header.Filename)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
