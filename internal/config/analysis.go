package config

import (
	"time"

	"surveytoolkit/internal/surveyjs"
)

// AnalysisConfig holds the defaults used when building and summarizing surveys
type AnalysisConfig struct {
	// DefaultLanguage selects the stop word list when a request names none
	DefaultLanguage string `json:"defaultLanguage"`

	// Parser texts for "other" and "none" choices without their own text
	Parser surveyjs.Options `json:"parser"`

	// SummaryCacheTTL is how long summaries and metadata stay in Redis
	SummaryCacheTTL time.Duration `json:"summaryCacheTtl"`

	// ProgressEvery is the number of ingested results between progress events
	ProgressEvery int `json:"progressEvery"`

	// MaxResultsPerRequest caps a single results upload
	MaxResultsPerRequest int `json:"maxResultsPerRequest"`

	// CleanHTMLLabels strips HTML tags from labels of stored surveys before analysis
	CleanHTMLLabels bool `json:"cleanHtmlLabels"`
}

// DefaultAnalysisConfig returns the default analysis configuration
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		Parser: surveyjs.Options{
			DefaultOtherText: getEnv("DEFAULT_OTHER_TEXT", surveyjs.DefaultOtherText),
			DefaultNoneText:  getEnv("DEFAULT_NONE_TEXT", surveyjs.DefaultNoneText),
		},
		SummaryCacheTTL:      getDuration("SUMMARY_CACHE_TTL", 24*time.Hour),
		ProgressEvery:        getInt("PROGRESS_EVERY", 100),
		MaxResultsPerRequest: getInt("MAX_RESULTS_PER_REQUEST", 10000),
		CleanHTMLLabels:      getBool("CLEAN_HTML_LABELS", true),
	}
}
