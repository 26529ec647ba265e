package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"surveytoolkit/internal/model"
	"surveytoolkit/internal/service"
	"surveytoolkit/internal/stopwords"
	"surveytoolkit/internal/surveyjs"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps domain and service errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSurveyNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrTooManyResults):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, model.ErrDuplicateQuestionName):
		status = http.StatusConflict
	case errors.Is(err, model.ErrNotImplemented):
		status = http.StatusNotImplemented
	case errors.Is(err, stopwords.ErrUnknownLanguage):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyDefinition),
		errors.Is(err, model.ErrInvalidChoiceValue),
		errors.Is(err, model.ErrDecodeFailure),
		errors.Is(err, model.ErrAnswerCountMismatch),
		errors.Is(err, surveyjs.ErrMalformedDefinition),
		errors.Is(err, surveyjs.ErrUnsupportedQuestionType),
		errors.Is(err, surveyjs.ErrMalformedChoiceList),
		errors.Is(err, surveyjs.ErrMalformedResult):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}
