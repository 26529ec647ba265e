package model

import (
	"regexp"
	"sort"

	"surveytoolkit/internal/table"
)

// NumericQuestion collects numbers. Strings with a decimal comma are accepted.
type NumericQuestion struct {
	base
	answers []Answer[float64]
}

// NewNumericQuestion creates a numeric question
func NewNumericQuestion(name, label string) *NumericQuestion {
	return &NumericQuestion{base: base{name: name, label: label}}
}

func (q *NumericQuestion) Type() QuestionType {
	return QuestionTypeNumeric
}

func (q *NumericQuestion) DataType() DataType {
	return DataTypeFloat
}

func (q *NumericQuestion) AddAnswer(raw any) error {
	a, err := q.decode(raw)
	if err != nil {
		return err
	}
	q.answers = append(q.answers, a)
	return nil
}

func (q *NumericQuestion) decode(raw any) (Answer[float64], error) {
	if isEmpty(raw) {
		return Answer[float64]{}, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return Answer[float64]{}, &DecodeError{Question: q.name, Value: raw, Target: DataTypeFloat}
	}
	return Some(f), nil
}

// SetAnswers replaces all answers; on error the previous answers are kept
func (q *NumericQuestion) SetAnswers(raws []any) error {
	answers := make([]Answer[float64], 0, len(raws))
	for _, raw := range raws {
		a, err := q.decode(raw)
		if err != nil {
			return err
		}
		answers = append(answers, a)
	}
	q.answers = answers
	return nil
}

// Answers returns a copy of the answers
func (q *NumericQuestion) Answers() []Answer[float64] {
	out := make([]Answer[float64], len(q.answers))
	copy(out, q.answers)
	return out
}

func (q *NumericQuestion) Len() int {
	return len(q.answers)
}

// Values returns the non-missing answers in ingestion order
func (q *NumericQuestion) Values() []float64 {
	var out []float64
	for _, a := range q.answers {
		if a.Valid {
			out = append(out, a.Value)
		}
	}
	return out
}

// UniqueAnswers returns the distinct non-missing answers in ascending order
func (q *NumericQuestion) UniqueAnswers() []float64 {
	seen := make(map[float64]struct{})
	var out []float64
	for _, v := range q.Values() {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

func (q *NumericQuestion) CleanLabels(re *regexp.Regexp) {
	q.cleanLabel(re)
}

func (q *NumericQuestion) CleanHTMLLabels() {
	q.CleanLabels(htmlTagPattern)
}

func (q *NumericQuestion) ToSeries(toLabels bool) table.Column {
	values := make([]any, len(q.answers))
	for i, a := range q.answers {
		if a.Valid {
			values[i] = a.Value
		}
	}
	return table.Column{Name: q.seriesName(toLabels), Values: values}
}

// Summary computes count, mean, standard deviation, min, max and quartiles
func (q *NumericQuestion) Summary(SummaryOptions) (Summary, error) {
	d := describe(q.Values())
	return Summary{
		Name:     q.Label(),
		Question: q.name,
		Kind:     SummaryKindDescribe,
		Stats:    &d,
	}, nil
}

func (q *NumericQuestion) Metadata(MetadataOptions) []VariableMetadata {
	return []VariableMetadata{{Name: q.name, Label: q.Label(), Type: QuestionTypeNumeric}}
}

func (q *NumericQuestion) Clone() Question {
	c := *q
	c.answers = q.Answers()
	return &c
}

func (q *NumericQuestion) columns(opts TableOptions) []table.Column {
	return []table.Column{q.ToSeries(opts.ToLabels)}
}

func (q *NumericQuestion) truncate(n int) {
	q.answers = q.answers[:n]
}
