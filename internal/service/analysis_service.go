package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"surveytoolkit/internal/cache"
	"surveytoolkit/internal/config"
	"surveytoolkit/internal/model"
	"surveytoolkit/internal/surveyjs"
	"surveytoolkit/internal/table"
)

// AnalysisService rebuilds surveys from stored results and derives summaries,
// tables and variable metadata from them
type AnalysisService struct {
	surveys     *SurveyService
	cache       cache.SummaryCache
	stopWords   model.StopWordSource
	cfg         *config.AnalysisConfig
	broadcaster Broadcaster
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(surveys *SurveyService, summaryCache cache.SummaryCache, stopWords model.StopWordSource, cfg *config.AnalysisConfig) *AnalysisService {
	return &AnalysisService{
		surveys:   surveys,
		cache:     summaryCache,
		stopWords: stopWords,
		cfg:       cfg,
	}
}

// SetBroadcaster sets the WebSocket broadcaster
func (s *AnalysisService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// AnalyzeRequest is a stateless analysis of a definition and its results
type AnalyzeRequest struct {
	Definition   json.RawMessage    `json:"definition"`
	Results      []json.RawMessage  `json:"results"`
	Language     string             `json:"language,omitempty"`
	Table        model.TableOptions `json:"table"`
	CleanHTML    bool               `json:"cleanHtml"`
	CleanPattern string             `json:"cleanPattern,omitempty"`
	OtherText    string             `json:"otherText,omitempty"`
	NoneText     string             `json:"noneText,omitempty"`
}

// AnalyzeResponse holds every view of an analyzed survey
type AnalyzeResponse struct {
	Results  int                      `json:"results"`
	Summary  []model.Summary          `json:"summary"`
	Table    *table.Table             `json:"table"`
	Metadata []model.VariableMetadata `json:"metadata"`
}

// Build parses the stored definition and ingests every stored result in order.
// Progress is broadcast to the survey's subscribers.
func (s *AnalysisService) Build(ctx context.Context, hostID, surveyID string) (*model.Survey, *model.AnalysisRun, error) {
	def, results, err := s.surveys.definitionAndResults(ctx, hostID, surveyID)
	if err != nil {
		return nil, nil, err
	}

	run := &model.AnalysisRun{RunID: uuid.New().String(), SurveyID: surveyID, Total: len(results)}
	logger := slog.With("surveyId", surveyID, "runId", run.RunID)
	s.broadcast(surveyID, EventIngestStarted, run)

	survey, err := s.ingest(ctx, def.Definition, results, s.cfg.Parser, func(done int) {
		run.Results = done
		s.broadcast(surveyID, EventIngestProgress, run)
	})
	if err != nil {
		run.Error = err.Error()
		logger.Error("survey build failed", "error", err)
		s.broadcast(surveyID, EventIngestFailed, run)
		return nil, run, err
	}
	if s.cfg.CleanHTMLLabels {
		survey.CleanHTMLLabels()
	}

	run.Results = survey.Len()
	logger.Debug("survey built", "results", run.Results)
	s.broadcast(surveyID, EventIngestDone, run)
	return survey, run, nil
}

// ingest builds a survey, reporting progress every ProgressEvery results
func (s *AnalysisService) ingest(ctx context.Context, definition []byte, results [][]byte, opts surveyjs.Options, progress func(done int)) (*model.Survey, error) {
	questions, err := surveyjs.NewMetadataParser(opts).Parse(definition)
	if err != nil {
		return nil, err
	}
	survey, err := model.NewSurvey(questions...)
	if err != nil {
		return nil, err
	}
	err = surveyjs.Ingest(survey, results, func(done int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if progress != nil && s.cfg.ProgressEvery > 0 && done%s.cfg.ProgressEvery == 0 {
			progress(done)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return survey, nil
}

// Summary returns the summary of every question, served from cache when possible
func (s *AnalysisService) Summary(ctx context.Context, hostID, surveyID, language string) ([]model.Summary, error) {
	if language == "" {
		language = s.cfg.DefaultLanguage
	}
	if _, err := s.surveys.Get(ctx, hostID, surveyID); err != nil {
		return nil, err
	}
	if err := s.checkLanguage(language); err != nil {
		return nil, err
	}

	cached, err := s.cache.GetSummary(ctx, surveyID, language)
	if err != nil {
		slog.Warn("summary cache read failed", "surveyId", surveyID, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	survey, _, err := s.Build(ctx, hostID, surveyID)
	if err != nil {
		return nil, err
	}
	summaries, err := survey.Summary(s.summaryOptions(language))
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetSummary(ctx, surveyID, language, summaries); err != nil {
		slog.Warn("summary cache write failed", "surveyId", surveyID, "error", err)
	}
	return summaries, nil
}

// Table returns the survey as a table
func (s *AnalysisService) Table(ctx context.Context, hostID, surveyID string, opts model.TableOptions) (*table.Table, error) {
	survey, _, err := s.Build(ctx, hostID, surveyID)
	if err != nil {
		return nil, err
	}
	return survey.ToTable(opts)
}

// Metadata describes the variables of Table with the same options
func (s *AnalysisService) Metadata(ctx context.Context, hostID, surveyID string, opts model.MetadataOptions) ([]model.VariableMetadata, error) {
	if _, err := s.surveys.Get(ctx, hostID, surveyID); err != nil {
		return nil, err
	}

	cached, err := s.cache.GetMetadata(ctx, surveyID, opts)
	if err != nil {
		slog.Warn("metadata cache read failed", "surveyId", surveyID, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	survey, _, err := s.Build(ctx, hostID, surveyID)
	if err != nil {
		return nil, err
	}
	meta := survey.Metadata(opts)
	if err := s.cache.SetMetadata(ctx, surveyID, opts, meta); err != nil {
		slog.Warn("metadata cache write failed", "surveyId", surveyID, "error", err)
	}
	return meta, nil
}

// Analyze runs a one-off analysis; nothing is stored
func (s *AnalysisService) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	if len(req.Definition) == 0 {
		return nil, fmt.Errorf("%w: definition is required", ErrInvalidInput)
	}
	if s.cfg.MaxResultsPerRequest > 0 && len(req.Results) > s.cfg.MaxResultsPerRequest {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyResults, len(req.Results), s.cfg.MaxResultsPerRequest)
	}
	language := req.Language
	if language == "" {
		language = s.cfg.DefaultLanguage
	}
	if err := s.checkLanguage(language); err != nil {
		return nil, err
	}

	opts := s.cfg.Parser
	if req.OtherText != "" {
		opts.DefaultOtherText = req.OtherText
	}
	if req.NoneText != "" {
		opts.DefaultNoneText = req.NoneText
	}

	results := make([][]byte, len(req.Results))
	for i, r := range req.Results {
		results[i] = r
	}
	survey, err := s.ingest(ctx, req.Definition, results, opts, nil)
	if err != nil {
		return nil, err
	}
	if req.CleanHTML {
		survey.CleanHTMLLabels()
	}
	if req.CleanPattern != "" {
		if err := survey.CleanLabels(req.CleanPattern); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
	}

	summaries, err := survey.Summary(s.summaryOptions(language))
	if err != nil {
		return nil, err
	}
	tbl, err := survey.ToTable(req.Table)
	if err != nil {
		return nil, err
	}
	return &AnalyzeResponse{
		Results:  survey.Len(),
		Summary:  summaries,
		Table:    tbl,
		Metadata: survey.Metadata(model.MetadataOptions{ToDummies: req.Table.ToDummies, Optimize: req.Table.Optimize}),
	}, nil
}

// checkLanguage fails for languages without stop words, even when the survey
// has no free text question to summarize
func (s *AnalysisService) checkLanguage(language string) error {
	if s.stopWords == nil {
		return nil
	}
	_, err := s.stopWords.StopWords(language)
	return err
}

func (s *AnalysisService) summaryOptions(language string) model.SummaryOptions {
	return model.SummaryOptions{Language: language, StopWords: s.stopWords}
}

func (s *AnalysisService) broadcast(surveyID, event string, run *model.AnalysisRun) {
	if s.broadcaster == nil {
		return
	}
	snapshot := *run
	s.broadcaster.BroadcastToSurvey(surveyID, event, &snapshot)
}
