package model

import (
	"regexp"

	"surveytoolkit/internal/table"
)

// SingleChoiceQuestion collects one key per respondent. When choices are set,
// every answer must be one of their keys.
type SingleChoiceQuestion struct {
	choiceBase
	answers []Answer[Key]
}

// NewSingleChoiceQuestion creates a single choice question; choices may be nil
func NewSingleChoiceQuestion(name, label string, choices *Choices) *SingleChoiceQuestion {
	q := &SingleChoiceQuestion{choiceBase: choiceBase{base: base{name: name, label: label}}}
	q.choices = choices.normalized()
	return q
}

func (q *SingleChoiceQuestion) Type() QuestionType {
	return QuestionTypeSingleChoice
}

func (q *SingleChoiceQuestion) DataType() DataType {
	if q.numeric() {
		return DataTypeInt
	}
	return DataTypeString
}

func (q *SingleChoiceQuestion) decode(raw any) (Answer[Key], error) {
	if isEmpty(raw) {
		return Answer[Key]{}, nil
	}
	key, err := q.decodeKey(raw)
	if err != nil {
		return Answer[Key]{}, err
	}
	return Some(key), nil
}

func (q *SingleChoiceQuestion) AddAnswer(raw any) error {
	a, err := q.decode(raw)
	if err != nil {
		return err
	}
	q.answers = append(q.answers, a)
	return nil
}

// SetAnswers replaces all answers; on error the previous answers are kept
func (q *SingleChoiceQuestion) SetAnswers(raws []any) error {
	answers := make([]Answer[Key], 0, len(raws))
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

// SetChoices replaces the choice mapping and re-validates the collected
// answers against it. On error the question is left unchanged.
func (q *SingleChoiceQuestion) SetChoices(choices *Choices) error {
	old := q.choices
	q.choices = choices.normalized()

	answers := make([]Answer[Key], len(q.answers))
	for i, a := range q.answers {
		if !a.Valid {
			continue
		}
		decoded, err := q.decode(a.Value.Value())
		if err != nil {
			q.choices = old
			return err
		}
		answers[i] = decoded
	}
	q.answers = answers
	return nil
}

// Answers returns a copy of the answers
func (q *SingleChoiceQuestion) Answers() []Answer[Key] {
	out := make([]Answer[Key], len(q.answers))
	copy(out, q.answers)
	return out
}

func (q *SingleChoiceQuestion) Len() int {
	return len(q.answers)
}

// UniqueAnswers returns the distinct non-missing keys, codes first then text
func (q *SingleChoiceQuestion) UniqueAnswers() []Key {
	set := make(map[Key]struct{})
	for _, a := range q.answers {
		if a.Valid {
			set[a.Value] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func (q *SingleChoiceQuestion) CleanLabels(re *regexp.Regexp) {
	q.cleanChoiceLabels(re)
}

func (q *SingleChoiceQuestion) CleanHTMLLabels() {
	q.CleanLabels(htmlTagPattern)
}

// ToSeries returns a categorical column. With toLabels and choices set the
// values and categories are display labels, otherwise keys.
func (q *SingleChoiceQuestion) ToSeries(toLabels bool) table.Column {
	domain := q.domain(q.UniqueAnswers())
	labelled := toLabels && q.choices.Len() > 0

	values := make([]any, len(q.answers))
	for i, a := range q.answers {
		if !a.Valid {
			continue
		}
		if labelled {
			values[i] = q.displayLabel(a.Value)
		} else {
			values[i] = a.Value.Value()
		}
	}

	categories := make([]any, len(domain))
	for i, k := range domain {
		if labelled {
			categories[i] = q.displayLabel(k)
		} else {
			categories[i] = k.Value()
		}
	}
	return table.Column{Name: q.seriesName(toLabels), Values: values, Categories: categories}
}

// Summary counts every category in domain order, zero counts included
func (q *SingleChoiceQuestion) Summary(SummaryOptions) (Summary, error) {
	counts := make(map[Key]int)
	for _, a := range q.answers {
		if a.Valid {
			counts[a.Value]++
		}
	}
	domain := q.domain(q.UniqueAnswers())
	freq := make([]Frequency, len(domain))
	for i, k := range domain {
		freq[i] = Frequency{Value: q.displayLabel(k), Count: counts[k]}
	}
	return Summary{
		Name:     q.Label(),
		Question: q.name,
		Kind:     SummaryKindFrequency,
		Counts:   freq,
	}, nil
}

// Optimize rewrites keys to dense integer codes starting at 1
func (q *SingleChoiceQuestion) Optimize() {
	if q.numeric() {
		return
	}
	choices, mapping := q.codeMapping(q.UniqueAnswers())
	for i, a := range q.answers {
		if a.Valid {
			q.answers[i] = Some(mapping[a.Value])
		}
	}
	q.choices = choices
}

func (q *SingleChoiceQuestion) Metadata(opts MetadataOptions) []VariableMetadata {
	if opts.Optimize {
		c := q.Clone().(*SingleChoiceQuestion)
		c.Optimize()
		return []VariableMetadata{c.metadata(QuestionTypeSingleChoice)}
	}
	return []VariableMetadata{q.metadata(QuestionTypeSingleChoice)}
}

func (q *SingleChoiceQuestion) Clone() Question {
	c := *q
	c.choices = q.choices.clone()
	c.answers = q.Answers()
	return &c
}

func (q *SingleChoiceQuestion) columns(opts TableOptions) []table.Column {
	if opts.Optimize {
		c := q.Clone().(*SingleChoiceQuestion)
		c.Optimize()
		return []table.Column{c.ToSeries(opts.ToLabels)}
	}
	return []table.Column{q.ToSeries(opts.ToLabels)}
}

func (q *SingleChoiceQuestion) truncate(n int) {
	q.answers = q.answers[:n]
}
