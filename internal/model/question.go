package model

import (
	"regexp"

	"surveytoolkit/internal/table"
)

// QuestionType defines the variant of a question
type QuestionType string

const (
	QuestionTypeFreeText       QuestionType = "FREE_TEXT"
	QuestionTypeNumeric        QuestionType = "NUMERIC"
	QuestionTypeSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeDummy          QuestionType = "DUMMY" // metadata only: one indicator column of a multiple choice question
)

// DataType is the decode target of a question's answers
type DataType string

const (
	DataTypeString     DataType = "string"
	DataTypeFloat      DataType = "float"
	DataTypeInt        DataType = "int"
	DataTypeStringList DataType = "list[string]"
	DataTypeIntList    DataType = "list[int]"
)

var htmlTagPattern = regexp.MustCompile(`<.*?>`)

// Question is one survey item with its collected answers.
// The set of implementations is closed: FreeTextQuestion, NumericQuestion,
// SingleChoiceQuestion and MultipleChoiceQuestion.
type Question interface {
	Name() string
	// Label returns the display label, falling back to the name
	Label() string
	SetLabel(label string)
	Type() QuestionType
	DataType() DataType

	// AddAnswer decodes raw and appends it to the answers
	AddAnswer(raw any) error
	// Len returns the number of answers, missing ones included
	Len() int

	CleanLabels(re *regexp.Regexp)
	CleanHTMLLabels()

	ToSeries(toLabels bool) table.Column
	Summary(opts SummaryOptions) (Summary, error)
	Metadata(opts MetadataOptions) []VariableMetadata
	Clone() Question

	columns(opts TableOptions) []table.Column
	truncate(n int)
}

// Optimizer is implemented by questions whose choice keys can be rewritten to dense integer codes
type Optimizer interface {
	Question
	Optimize()
}

// DummyEncoder is implemented by questions that expand into one indicator column per choice
type DummyEncoder interface {
	Question
	ToDummies(toLabels bool) []table.Column
}

// TableOptions controls Survey.ToTable
type TableOptions struct {
	ToLabels  bool `json:"toLabels"`
	ToDummies bool `json:"toDummies"`
	Optimize  bool `json:"optimize"`
}

// MetadataOptions controls Survey.Metadata
type MetadataOptions struct {
	ToDummies bool `json:"toDummies"`
	Optimize  bool `json:"optimize"`
}

// VariableMetadata describes one output variable (table column)
type VariableMetadata struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Type        QuestionType `json:"type"`
	ValueLabels []Choice     `json:"valueLabels,omitempty"`
}

type base struct {
	name  string
	label string
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Label() string {
	if b.label != "" {
		return b.label
	}
	return b.name
}

func (b *base) SetLabel(label string) {
	b.label = label
}

func (b *base) cleanLabel(re *regexp.Regexp) {
	if b.label != "" {
		b.label = re.ReplaceAllString(b.label, "")
	}
}

func (b *base) seriesName(toLabels bool) string {
	if toLabels {
		return b.Label()
	}
	return b.name
}
