package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSurvey(surveyID string, msgType string, payload interface{})
}

// Progress event types sent while a survey is rebuilt from its results
const (
	EventIngestStarted  = "ingest_started"
	EventIngestProgress = "ingest_progress"
	EventIngestDone     = "ingest_done"
	EventIngestFailed   = "ingest_failed"
	EventResultsAdded   = "results_added"
)
