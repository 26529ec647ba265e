package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"surveytoolkit/internal/table"
)

// topWords is the number of tokens reported by a free text summary
const topWords = 20

var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}\p{Mn}_]`)

// FreeTextQuestion collects free text. Empty and null answers decode to "",
// never to the missing marker.
type FreeTextQuestion struct {
	base
	answers []string
}

// NewFreeTextQuestion creates a free text question
func NewFreeTextQuestion(name, label string) *FreeTextQuestion {
	return &FreeTextQuestion{base: base{name: name, label: label}}
}

func (q *FreeTextQuestion) Type() QuestionType {
	return QuestionTypeFreeText
}

func (q *FreeTextQuestion) DataType() DataType {
	return DataTypeString
}

func (q *FreeTextQuestion) AddAnswer(raw any) error {
	if isEmpty(raw) {
		q.answers = append(q.answers, "")
		return nil
	}
	q.answers = append(q.answers, toAnyText(raw))
	return nil
}

// SetAnswers replaces all answers
func (q *FreeTextQuestion) SetAnswers(raws []any) error {
	q.answers = nil
	for _, raw := range raws {
		if err := q.AddAnswer(raw); err != nil {
			return err
		}
	}
	return nil
}

// Answers returns a copy of the answers
func (q *FreeTextQuestion) Answers() []string {
	out := make([]string, len(q.answers))
	copy(out, q.answers)
	return out
}

func (q *FreeTextQuestion) Len() int {
	return len(q.answers)
}

// UniqueAnswers returns the distinct answers in ascending order
func (q *FreeTextQuestion) UniqueAnswers() []string {
	seen := make(map[string]struct{}, len(q.answers))
	var out []string
	for _, a := range q.answers {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

func (q *FreeTextQuestion) CleanLabels(re *regexp.Regexp) {
	q.cleanLabel(re)
}

func (q *FreeTextQuestion) CleanHTMLLabels() {
	q.CleanLabels(htmlTagPattern)
}

func (q *FreeTextQuestion) ToSeries(toLabels bool) table.Column {
	values := make([]any, len(q.answers))
	for i, a := range q.answers {
		values[i] = a
	}
	return table.Column{Name: q.seriesName(toLabels), Values: values}
}

// Summary counts the 20 most frequent words, stop words excluded
func (q *FreeTextQuestion) Summary(opts SummaryOptions) (Summary, error) {
	corpus := strings.ToLower(strings.Join(q.answers, " "))
	words := strings.Fields(nonWordPattern.ReplaceAllString(corpus, " "))

	if opts.StopWords != nil {
		lang := opts.Language
		if lang == "" {
			lang = DefaultLanguage
		}
		stopWords, err := opts.StopWords.StopWords(lang)
		if err != nil {
			return Summary{}, fmt.Errorf("summary of %s: %w", q.name, err)
		}
		filtered := words[:0]
		for _, w := range words {
			if _, stop := stopWords[w]; !stop {
				filtered = append(filtered, w)
			}
		}
		words = filtered
	}

	return Summary{
		Name:     q.Label(),
		Question: q.name,
		Kind:     SummaryKindFrequency,
		Counts:   topCounts(words, topWords),
	}, nil
}

func (q *FreeTextQuestion) Metadata(MetadataOptions) []VariableMetadata {
	return []VariableMetadata{{Name: q.name, Label: q.Label(), Type: QuestionTypeFreeText}}
}

func (q *FreeTextQuestion) Clone() Question {
	c := *q
	c.answers = q.Answers()
	return &c
}

func (q *FreeTextQuestion) columns(opts TableOptions) []table.Column {
	return []table.Column{q.ToSeries(opts.ToLabels)}
}

func (q *FreeTextQuestion) truncate(n int) {
	q.answers = q.answers[:n]
}
