package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"surveytoolkit/internal/config"
	"surveytoolkit/internal/model"
)

type memSurveyRepo struct {
	mu      sync.Mutex
	surveys map[string]*model.SurveyDefinition
	nextID  int
}

func newMemSurveyRepo() *memSurveyRepo {
	return &memSurveyRepo{surveys: make(map[string]*model.SurveyDefinition)}
}

func (r *memSurveyRepo) Create(ctx context.Context, survey *model.SurveyDefinition) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	survey.ID = fmt.Sprintf("s%d", r.nextID)
	stored := *survey
	r.surveys[survey.ID] = &stored
	return survey.ID, nil
}

func (r *memSurveyRepo) GetByID(ctx context.Context, id string) (*model.SurveyDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	out := *s
	return &out, nil
}

func (r *memSurveyRepo) GetByHostID(ctx context.Context, hostID string) ([]*model.SurveyDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.SurveyDefinition
	for _, s := range r.surveys {
		if s.HostID == hostID {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memSurveyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surveys, id)
	return nil
}

type memResultRepo struct {
	mu      sync.Mutex
	results map[string][]json.RawMessage
}

func newMemResultRepo() *memResultRepo {
	return &memResultRepo{results: make(map[string][]json.RawMessage)}
}

func (r *memResultRepo) Append(ctx context.Context, surveyID string, results []json.RawMessage) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[surveyID] = append(r.results[surveyID], results...)
	return int64(len(r.results[surveyID])), nil
}

func (r *memResultRepo) List(ctx context.Context, surveyID string) ([]json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]json.RawMessage(nil), r.results[surveyID]...), nil
}

func (r *memResultRepo) Count(ctx context.Context, surveyID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.results[surveyID])), nil
}

func (r *memResultRepo) DeleteBySurvey(ctx context.Context, surveyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.results, surveyID)
	return nil
}

type memSummaryCache struct {
	mu          sync.Mutex
	summaries   map[string][]model.Summary
	metadata    map[string][]model.VariableMetadata
	invalidated []string
}

func newMemSummaryCache() *memSummaryCache {
	return &memSummaryCache{
		summaries: make(map[string][]model.Summary),
		metadata:  make(map[string][]model.VariableMetadata),
	}
}

func (c *memSummaryCache) GetSummary(ctx context.Context, surveyID, language string) ([]model.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaries[surveyID+"/"+language], nil
}

func (c *memSummaryCache) SetSummary(ctx context.Context, surveyID, language string, summaries []model.Summary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries[surveyID+"/"+language] = summaries
	return nil
}

func (c *memSummaryCache) GetMetadata(ctx context.Context, surveyID string, opts model.MetadataOptions) ([]model.VariableMetadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metadata[fmt.Sprintf("%s/%v", surveyID, opts)], nil
}

func (c *memSummaryCache) SetMetadata(ctx context.Context, surveyID string, opts model.MetadataOptions, meta []model.VariableMetadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata[fmt.Sprintf("%s/%v", surveyID, opts)] = meta
	return nil
}

func (c *memSummaryCache) Invalidate(ctx context.Context, surveyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, surveyID)
	for k := range c.summaries {
		if len(k) > len(surveyID) && k[:len(surveyID)+1] == surveyID+"/" {
			delete(c.summaries, k)
		}
	}
	for k := range c.metadata {
		if len(k) > len(surveyID) && k[:len(surveyID)+1] == surveyID+"/" {
			delete(c.metadata, k)
		}
	}
	return nil
}

type event struct {
	surveyID string
	msgType  string
	payload  interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []event
}

func (b *recordingBroadcaster) BroadcastToSurvey(surveyID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event{surveyID, msgType, payload})
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.msgType
	}
	return out
}

type stopWordSet map[string]struct{}

func (s stopWordSet) StopWords(string) (map[string]struct{}, error) {
	return s, nil
}

type fixture struct {
	surveys     *SurveyService
	analysis    *AnalysisService
	results     *memResultRepo
	cache       *memSummaryCache
	broadcaster *recordingBroadcaster
}

func newFixture() *fixture {
	cfg := config.DefaultAnalysisConfig()
	cfg.ProgressEvery = 2
	cfg.MaxResultsPerRequest = 5

	results := newMemResultRepo()
	summaryCache := newMemSummaryCache()
	b := &recordingBroadcaster{}

	surveys := NewSurveyService(newMemSurveyRepo(), results, summaryCache, cfg)
	surveys.SetBroadcaster(b)
	analysis := NewAnalysisService(surveys, summaryCache, stopWordSet{"the": {}}, cfg)
	analysis.SetBroadcaster(b)

	return &fixture{
		surveys:     surveys,
		analysis:    analysis,
		results:     results,
		cache:       summaryCache,
		broadcaster: b,
	}
}

const phonesDefinition = `{"pages": [{"elements": [
	{"type": "text", "name": "age", "title": "<b>Age</b>", "inputType": "number"},
	{"type": "text", "name": "opinion", "title": "Opinion"},
	{"type": "checkbox", "name": "phones", "title": "Phones", "choices": ["Nokia", "iPhone"]}
]}]}`

func rawResults(records ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(records))
	for i, r := range records {
		out[i] = json.RawMessage(r)
	}
	return out
}
