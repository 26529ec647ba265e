package model

import (
	"encoding/json"
	"time"
)

// SurveyDefinition is a stored SurveyJS survey definition owned by a host
type SurveyDefinition struct {
	ID         string          `json:"id" bson:"_id,omitempty"`
	HostID     string          `json:"hostId" bson:"hostId"`
	Title      string          `json:"title" bson:"title"`
	Definition json.RawMessage `json:"definition" bson:"definition"`
	Questions  int             `json:"questions" bson:"questions"` // parsed question count
	CreatedAt  time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// SurveyResult is one serialized respondent record of a survey
type SurveyResult struct {
	ID        string          `json:"id" bson:"_id,omitempty"`
	SurveyID  string          `json:"surveyId" bson:"surveyId"`
	Seq       int64           `json:"seq" bson:"seq"` // ingestion order within the survey
	Data      json.RawMessage `json:"data" bson:"data"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
}

// AnalysisRun describes one rebuild of a survey from its stored results
type AnalysisRun struct {
	RunID    string `json:"runId"`
	SurveyID string `json:"surveyId"`
	Results  int    `json:"results"`
	Total    int    `json:"total"`
	Error    string `json:"error,omitempty"`
}
