package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"surveytoolkit/internal/service"
	"surveytoolkit/internal/transport/rest/middleware"
)

// SurveyHandler handles survey definition and result endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// CreateSurveyRequest is the request body for creating a survey
type CreateSurveyRequest struct {
	Title      string          `json:"title"`
	Definition json.RawMessage `json:"definition"`
}

// AddResultsRequest is the request body for uploading results
type AddResultsRequest struct {
	Results []json.RawMessage `json:"results"`
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Definition) == 0 {
		writeError(w, http.StatusBadRequest, "definition is required")
		return
	}

	survey, err := h.surveySvc.Create(r.Context(), hostID, req.Title, req.Definition)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"surveyId":  survey.ID,
		"questions": survey.Questions,
	})
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	hostID := middleware.GetHostID(r.Context())

	survey, err := h.surveySvc.Get(r.Context(), hostID, surveyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// List handles GET /v1/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	surveys, err := h.surveySvc.List(r.Context(), hostID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
}

// Delete handles DELETE /v1/surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	hostID := middleware.GetHostID(r.Context())

	if err := h.surveySvc.Delete(r.Context(), hostID, surveyID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddResults handles POST /v1/surveys/{surveyId}/results
func (h *SurveyHandler) AddResults(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	hostID := middleware.GetHostID(r.Context())

	var req AddResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	total, err := h.surveySvc.AddResults(r.Context(), hostID, surveyID, req.Results)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"added": len(req.Results),
		"total": total,
	})
}
