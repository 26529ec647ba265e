package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	_ "surveytoolkit/docs"
	"surveytoolkit/internal/service"
	"surveytoolkit/internal/transport/rest/handler"
	"surveytoolkit/internal/transport/rest/middleware"
	"surveytoolkit/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	SurveyService   *service.SurveyService
	AnalysisService *service.AnalysisService
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	analysisHandler := handler.NewAnalysisHandler(c.AnalysisService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.SurveyService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/analyze", analysisHandler.Analyze).Methods("POST", "OPTIONS")
	v1.HandleFunc("/docs/swagger.json", swaggerDoc).Methods("GET")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/surveys/{surveyId}", wsHandler.SurveyWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/results", surveyHandler.AddResults).Methods("POST", "OPTIONS")

	// Analysis routes (host only)
	hostRoutes.HandleFunc("/surveys/{surveyId}/summary", analysisHandler.Summary).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/table", analysisHandler.Table).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/surveys/{surveyId}/metadata", analysisHandler.Metadata).Methods("GET", "OPTIONS")

	return r
}

func swaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, `{"error":"api documentation unavailable"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
