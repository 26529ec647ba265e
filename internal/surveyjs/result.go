package surveyjs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"surveytoolkit/internal/model"
)

// Flatten expands one level of nesting: a nested object value, as produced
// by matrix questions, becomes one {outer}_{inner} entry per inner key.
func Flatten(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for key, value := range record {
		nested, ok := value.(map[string]any)
		if !ok {
			out[key] = value
			continue
		}
		for inner, v := range nested {
			out[key+"_"+inner] = v
		}
	}
	return out
}

// DecodeResult decodes one serialized respondent result. Numbers are kept
// as json.Number so integer codes and decimals survive unchanged.
func DecodeResult(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResult, err)
	}
	if record == nil {
		return nil, ErrMalformedResult
	}
	return record, nil
}

// BuildSurvey parses a definition and ingests the serialized results in order
func BuildSurvey(definition []byte, results [][]byte, opts Options) (*model.Survey, error) {
	questions, err := NewMetadataParser(opts).Parse(definition)
	if err != nil {
		return nil, err
	}
	survey, err := model.NewSurvey(questions...)
	if err != nil {
		return nil, err
	}
	if err := Ingest(survey, results, nil); err != nil {
		return nil, err
	}
	return survey, nil
}

// Ingest decodes, flattens and adds serialized results to survey in order.
// A non-nil progress is called after every ingested result; an error from it
// stops the ingestion.
func Ingest(survey *model.Survey, results [][]byte, progress func(done int) error) error {
	for i, data := range results {
		record, err := DecodeResult(data)
		if err != nil {
			return fmt.Errorf("result %d: %w", i, err)
		}
		if err := survey.AddResult(Flatten(record)); err != nil {
			return err
		}
		if progress != nil {
			if err := progress(i + 1); err != nil {
				return err
			}
		}
	}
	return nil
}
