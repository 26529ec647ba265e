package model

import (
	"regexp"

	"surveytoolkit/internal/table"
)

// MultipleChoiceQuestion collects a list of keys per respondent. A scalar
// answer is treated as a one element list.
type MultipleChoiceQuestion struct {
	choiceBase
	answers []Answer[[]Key]
}

// NewMultipleChoiceQuestion creates a multiple choice question; choices may be nil
func NewMultipleChoiceQuestion(name, label string, choices *Choices) *MultipleChoiceQuestion {
	q := &MultipleChoiceQuestion{choiceBase: choiceBase{base: base{name: name, label: label}}}
	q.choices = choices.normalized()
	return q
}

func (q *MultipleChoiceQuestion) Type() QuestionType {
	return QuestionTypeMultipleChoice
}

func (q *MultipleChoiceQuestion) DataType() DataType {
	if q.numeric() {
		return DataTypeIntList
	}
	return DataTypeStringList
}

func (q *MultipleChoiceQuestion) decode(raw any) (Answer[[]Key], error) {
	if isEmpty(raw) {
		return Answer[[]Key]{}, nil
	}
	items, ok := asList(raw)
	if !ok {
		items = []any{raw}
	}
	keys := make([]Key, 0, len(items))
	for _, item := range items {
		if isEmpty(item) {
			continue
		}
		key, err := q.decodeKey(item)
		if err != nil {
			return Answer[[]Key]{}, err
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return Answer[[]Key]{}, nil
	}
	return Some(keys), nil
}

func (q *MultipleChoiceQuestion) AddAnswer(raw any) error {
	a, err := q.decode(raw)
	if err != nil {
		return err
	}
	q.answers = append(q.answers, a)
	return nil
}

// SetAnswers replaces all answers; on error the previous answers are kept
func (q *MultipleChoiceQuestion) SetAnswers(raws []any) error {
	answers := make([]Answer[[]Key], 0, len(raws))
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
func (q *MultipleChoiceQuestion) SetChoices(choices *Choices) error {
	old := q.choices
	q.choices = choices.normalized()

	answers := make([]Answer[[]Key], len(q.answers))
	for i, a := range q.answers {
		if !a.Valid {
			continue
		}
		decoded, err := q.decode(keyValues(a.Value))
		if err != nil {
			q.choices = old
			return err
		}
		answers[i] = decoded
	}
	q.answers = answers
	return nil
}

// Answers returns a deep copy of the answers
func (q *MultipleChoiceQuestion) Answers() []Answer[[]Key] {
	out := make([]Answer[[]Key], len(q.answers))
	for i, a := range q.answers {
		if !a.Valid {
			continue
		}
		keys := make([]Key, len(a.Value))
		copy(keys, a.Value)
		out[i] = Some(keys)
	}
	return out
}

func (q *MultipleChoiceQuestion) Len() int {
	return len(q.answers)
}

// UniqueAnswers flattens the answer lists and returns the distinct keys
func (q *MultipleChoiceQuestion) UniqueAnswers() []Key {
	set := make(map[Key]struct{})
	for _, a := range q.answers {
		for _, k := range a.Value {
			set[k] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func (q *MultipleChoiceQuestion) CleanLabels(re *regexp.Regexp) {
	q.cleanChoiceLabels(re)
}

func (q *MultipleChoiceQuestion) CleanHTMLLabels() {
	q.CleanLabels(htmlTagPattern)
}

// ToSeries returns a list-valued column whose categories describe the element domain
func (q *MultipleChoiceQuestion) ToSeries(toLabels bool) table.Column {
	domain := q.domain(q.UniqueAnswers())
	labelled := toLabels && q.choices.Len() > 0

	cell := func(k Key) any {
		if labelled {
			return q.displayLabel(k)
		}
		return k.Value()
	}

	values := make([]any, len(q.answers))
	for i, a := range q.answers {
		if !a.Valid {
			continue
		}
		items := make([]any, len(a.Value))
		for j, k := range a.Value {
			items[j] = cell(k)
		}
		values[i] = items
	}

	categories := make([]any, len(domain))
	for i, k := range domain {
		categories[i] = cell(k)
	}
	return table.Column{Name: q.seriesName(toLabels), Values: values, Categories: categories}
}

// ToDummies returns one 0/1 indicator column per element of the domain.
// Rows with a missing answer are missing in every indicator.
func (q *MultipleChoiceQuestion) ToDummies(toLabels bool) []table.Column {
	prefix := q.name + "_"
	if toLabels {
		prefix = q.Label() + ": "
	}

	domain := q.domain(q.UniqueAnswers())
	cols := make([]table.Column, len(domain))
	for i, k := range domain {
		suffix := k.String()
		if toLabels {
			suffix = q.displayLabel(k)
		}
		values := make([]any, len(q.answers))
		for row, a := range q.answers {
			if !a.Valid {
				continue
			}
			values[row] = 0
			for _, got := range a.Value {
				if got == k {
					values[row] = 1
					break
				}
			}
		}
		cols[i] = table.Column{Name: prefix + suffix, Values: values}
	}
	return cols
}

// DummyVariables maps every indicator column name to its display label
func (q *MultipleChoiceQuestion) DummyVariables() []VariableMetadata {
	domain := q.domain(q.UniqueAnswers())
	out := make([]VariableMetadata, len(domain))
	for i, k := range domain {
		out[i] = VariableMetadata{
			Name:  q.name + "_" + k.String(),
			Label: q.Label() + ": " + q.displayLabel(k),
			Type:  QuestionTypeDummy,
		}
	}
	return out
}

// Summary counts every element of every answer against the domain, zero counts included
func (q *MultipleChoiceQuestion) Summary(SummaryOptions) (Summary, error) {
	counts := make(map[Key]int)
	for _, a := range q.answers {
		for _, k := range a.Value {
			counts[k]++
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
func (q *MultipleChoiceQuestion) Optimize() {
	if q.numeric() {
		return
	}
	choices, mapping := q.codeMapping(q.UniqueAnswers())
	for _, a := range q.answers {
		for j, k := range a.Value {
			a.Value[j] = mapping[k]
		}
	}
	q.choices = choices
}

func (q *MultipleChoiceQuestion) Metadata(opts MetadataOptions) []VariableMetadata {
	if opts.ToDummies {
		return q.DummyVariables()
	}
	if opts.Optimize {
		c := q.Clone().(*MultipleChoiceQuestion)
		c.Optimize()
		return []VariableMetadata{c.metadata(QuestionTypeMultipleChoice)}
	}
	return []VariableMetadata{q.metadata(QuestionTypeMultipleChoice)}
}

func (q *MultipleChoiceQuestion) Clone() Question {
	c := *q
	c.choices = q.choices.clone()
	c.answers = q.Answers()
	return &c
}

func (q *MultipleChoiceQuestion) columns(opts TableOptions) []table.Column {
	if opts.ToDummies {
		return q.ToDummies(opts.ToLabels)
	}
	if opts.Optimize {
		c := q.Clone().(*MultipleChoiceQuestion)
		c.Optimize()
		return []table.Column{c.ToSeries(opts.ToLabels)}
	}
	return []table.Column{q.ToSeries(opts.ToLabels)}
}

func (q *MultipleChoiceQuestion) truncate(n int) {
	q.answers = q.answers[:n]
}
