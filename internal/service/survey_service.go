package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"surveytoolkit/internal/cache"
	"surveytoolkit/internal/config"
	"surveytoolkit/internal/model"
	"surveytoolkit/internal/repository"
	"surveytoolkit/internal/surveyjs"
)

var (
	ErrSurveyNotFound  = errors.New("survey not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrTooManyResults  = errors.New("too many results in one request")
	ErrEmptyDefinition = errors.New("survey definition has no questions")
)

// SurveyService handles stored survey definitions and their results
type SurveyService struct {
	surveyRepo  repository.SurveyRepo
	resultRepo  repository.ResultRepo
	cache       cache.SummaryCache
	cfg         *config.AnalysisConfig
	broadcaster Broadcaster
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo, resultRepo repository.ResultRepo, summaryCache cache.SummaryCache, cfg *config.AnalysisConfig) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
		resultRepo: resultRepo,
		cache:      summaryCache,
		cfg:        cfg,
	}
}

// SetBroadcaster sets the WebSocket broadcaster
func (s *SurveyService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create validates a SurveyJS definition by parsing it and stores it
func (s *SurveyService) Create(ctx context.Context, hostID, title string, definition json.RawMessage) (*model.SurveyDefinition, error) {
	survey, err := surveyjs.BuildSurvey(definition, nil, s.cfg.Parser)
	if err != nil {
		return nil, err
	}
	questions := survey.Questions()
	if len(questions) == 0 {
		return nil, ErrEmptyDefinition
	}
	if strings.TrimSpace(title) == "" {
		title = "Untitled survey"
	}

	def := &model.SurveyDefinition{
		HostID:     hostID,
		Title:      title,
		Definition: definition,
		Questions:  len(questions),
	}
	if _, err := s.surveyRepo.Create(ctx, def); err != nil {
		return nil, err
	}
	slog.Info("survey created", "surveyId", def.ID, "hostId", hostID, "questions", def.Questions)
	return def, nil
}

// Get returns a survey owned by hostID
func (s *SurveyService) Get(ctx context.Context, hostID, surveyID string) (*model.SurveyDefinition, error) {
	def, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if def == nil || def.HostID != hostID {
		return nil, ErrSurveyNotFound
	}
	return def, nil
}

// List returns the surveys of a host, newest first, without definitions
func (s *SurveyService) List(ctx context.Context, hostID string) ([]*model.SurveyDefinition, error) {
	return s.surveyRepo.GetByHostID(ctx, hostID)
}

// Delete removes a survey with its results and cached views
func (s *SurveyService) Delete(ctx context.Context, hostID, surveyID string) error {
	if _, err := s.Get(ctx, hostID, surveyID); err != nil {
		return err
	}
	if err := s.resultRepo.DeleteBySurvey(ctx, surveyID); err != nil {
		return err
	}
	if err := s.surveyRepo.Delete(ctx, surveyID); err != nil {
		return err
	}
	s.invalidate(ctx, surveyID)
	return nil
}

// AddResults validates serialized results against the survey definition and
// appends them. Either every result is stored or none is.
func (s *SurveyService) AddResults(ctx context.Context, hostID, surveyID string, results []json.RawMessage) (int64, error) {
	if len(results) == 0 {
		return 0, fmt.Errorf("%w: no results", ErrInvalidInput)
	}
	if s.cfg.MaxResultsPerRequest > 0 && len(results) > s.cfg.MaxResultsPerRequest {
		return 0, fmt.Errorf("%w: %d > %d", ErrTooManyResults, len(results), s.cfg.MaxResultsPerRequest)
	}
	def, err := s.Get(ctx, hostID, surveyID)
	if err != nil {
		return 0, err
	}

	// records do not depend on each other, so the new ones are checked alone
	raw := make([][]byte, len(results))
	for i, r := range results {
		raw[i] = r
	}
	if _, err := surveyjs.BuildSurvey(def.Definition, raw, s.cfg.Parser); err != nil {
		return 0, err
	}

	total, err := s.resultRepo.Append(ctx, surveyID, results)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, surveyID)

	slog.Info("results added", "surveyId", surveyID, "added", len(results), "total", total)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSurvey(surveyID, EventResultsAdded, map[string]interface{}{
			"surveyId": surveyID,
			"added":    len(results),
			"total":    total,
		})
	}
	return total, nil
}

// definitionAndResults loads everything needed to rebuild a survey
func (s *SurveyService) definitionAndResults(ctx context.Context, hostID, surveyID string) (*model.SurveyDefinition, [][]byte, error) {
	def, err := s.Get(ctx, hostID, surveyID)
	if err != nil {
		return nil, nil, err
	}
	results, err := s.resultRepo.List(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	raw := make([][]byte, len(results))
	for i, r := range results {
		raw[i] = r
	}
	return def, raw, nil
}

func (s *SurveyService) invalidate(ctx context.Context, surveyID string) {
	if err := s.cache.Invalidate(ctx, surveyID); err != nil {
		slog.Warn("failed to invalidate summary cache", "surveyId", surveyID, "error", err)
	}
}
