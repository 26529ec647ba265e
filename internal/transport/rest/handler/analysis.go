package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"surveytoolkit/internal/model"
	"surveytoolkit/internal/service"
	"surveytoolkit/internal/transport/rest/middleware"
)

// AnalysisHandler serves summaries, tables and metadata of surveys
type AnalysisHandler struct {
	analysisSvc *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisSvc *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisSvc: analysisSvc}
}

// Summary handles GET /v1/surveys/{surveyId}/summary
func (h *AnalysisHandler) Summary(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	hostID := middleware.GetHostID(r.Context())

	summaries, err := h.analysisSvc.Summary(r.Context(), hostID, surveyID, r.URL.Query().Get("lang"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"summary": summaries})
}

// Table handles GET /v1/surveys/{surveyId}/table
func (h *AnalysisHandler) Table(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	hostID := middleware.GetHostID(r.Context())
	q := r.URL.Query()

	opts := model.TableOptions{
		ToLabels:  queryBool(r, "labels"),
		ToDummies: queryBool(r, "dummies"),
		Optimize:  queryBool(r, "optimize"),
	}
	format := q.Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "format must be json or csv")
		return
	}

	tbl, err := h.analysisSvc.Table(r.Context(), hostID, surveyID, opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+surveyID+`.csv"`)
		w.WriteHeader(http.StatusOK)
		if err := tbl.WriteCSV(w); err != nil {
			slog.Error("csv export failed", "surveyId", surveyID, "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, tbl)
}

// Metadata handles GET /v1/surveys/{surveyId}/metadata
func (h *AnalysisHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	hostID := middleware.GetHostID(r.Context())

	opts := model.MetadataOptions{
		ToDummies: queryBool(r, "dummies"),
		Optimize:  queryBool(r, "optimize"),
	}
	meta, err := h.analysisSvc.Metadata(r.Context(), hostID, surveyID, opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"variables": meta})
}

// Analyze handles POST /v1/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req service.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.analysisSvc.Analyze(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// queryBool reads a boolean query parameter; unparsable values are false
func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}
