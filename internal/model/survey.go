package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"surveytoolkit/internal/table"
)

// Survey is an ordered set of uniquely named questions sharing one answer index:
// row i of every question belongs to the i-th ingested result.
// A Survey is not safe for concurrent mutation.
type Survey struct {
	questions []Question
	index     map[string]int
	results   int
}

// NewSurvey creates a survey. All duplicate names are reported at once.
// Questions may already hold answers, as long as they all hold the same number.
func NewSurvey(questions ...Question) (*Survey, error) {
	s := &Survey{index: make(map[string]int, len(questions))}
	var dups []string
	for _, q := range questions {
		if _, ok := s.index[q.Name()]; ok {
			dups = append(dups, q.Name())
			continue
		}
		s.index[q.Name()] = len(s.questions)
		s.questions = append(s.questions, q)
	}
	if len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateQuestionName, strings.Join(dups, ", "))
	}
	for i, q := range s.questions {
		if i == 0 {
			s.results = q.Len()
		} else if q.Len() != s.results {
			return nil, fmt.Errorf("%w: %s has %d, %s has %d",
				ErrAnswerCountMismatch, q.Name(), q.Len(), s.questions[0].Name(), s.results)
		}
	}
	return s, nil
}

// AddQuestion appends q. A question added after results were ingested is
// padded with missing answers so the answer index stays aligned.
func (s *Survey) AddQuestion(q Question) error {
	if _, ok := s.index[q.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateQuestionName, q.Name())
	}
	if q.Len() > s.results {
		return fmt.Errorf("%w: %s has %d, survey has %d", ErrAnswerCountMismatch, q.Name(), q.Len(), s.results)
	}
	for q.Len() < s.results {
		if err := q.AddAnswer(nil); err != nil {
			return err
		}
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[q.Name()] = len(s.questions)
	s.questions = append(s.questions, q)
	return nil
}

// AddResult feeds one respondent record to every question. Absent keys are
// ingested as missing. On error no question keeps an answer from the record.
func (s *Survey) AddResult(record map[string]any) error {
	lens := make([]int, len(s.questions))
	for i, q := range s.questions {
		lens[i] = q.Len()
	}
	for i, q := range s.questions {
		if err := q.AddAnswer(record[q.Name()]); err != nil {
			for j, done := range s.questions[:i+1] {
				done.truncate(lens[j])
			}
			return fmt.Errorf("result %d: %w", s.results, err)
		}
	}
	s.results++
	return nil
}

// AddResults ingests records in order and stops at the first failing one.
// Records before it stay ingested.
func (s *Survey) AddResults(records ...map[string]any) error {
	for _, rec := range records {
		if err := s.AddResult(rec); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of ingested results
func (s *Survey) Len() int {
	return s.results
}

// Questions returns the questions in order
func (s *Survey) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Question looks a question up by name
func (s *Survey) Question(name string) (Question, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.questions[i], true
}

// Summary returns the summary of every question in order
func (s *Survey) Summary(opts SummaryOptions) ([]Summary, error) {
	out := make([]Summary, 0, len(s.questions))
	for _, q := range s.questions {
		sum, err := q.Summary(opts)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

// CleanLabels removes every match of pattern from all labels and choice texts
func (s *Survey) CleanLabels(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("clean labels: %w", err)
	}
	for _, q := range s.questions {
		q.CleanLabels(re)
	}
	return nil
}

// CleanHTMLLabels strips HTML tags from all labels and choice texts
func (s *Survey) CleanHTMLLabels() {
	for _, q := range s.questions {
		q.CleanHTMLLabels()
	}
}

// ToTable concatenates the columns of every question left to right
func (s *Survey) ToTable(opts TableOptions) (*table.Table, error) {
	t := &table.Table{}
	for _, q := range s.questions {
		if err := t.Append(q.columns(opts)...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Metadata describes every output variable of ToTable with the same options
func (s *Survey) Metadata(opts MetadataOptions) []VariableMetadata {
	var out []VariableMetadata
	for _, q := range s.questions {
		out = append(out, q.Metadata(opts)...)
	}
	return out
}

// Filter is reserved for external collaborators
func (s *Survey) Filter(func(row int) bool) error {
	return fmt.Errorf("filter: %w", ErrNotImplemented)
}

// RemoveDuplicates is reserved for external collaborators
func (s *Survey) RemoveDuplicates(keep string) error {
	return fmt.Errorf("remove duplicates (keep=%s): %w", keep, ErrNotImplemented)
}

// IsSurveyError reports whether err originates from survey ingestion or construction
func IsSurveyError(err error) bool {
	return errors.Is(err, ErrDuplicateQuestionName) ||
		errors.Is(err, ErrInvalidChoiceValue) ||
		errors.Is(err, ErrDecodeFailure)
}
