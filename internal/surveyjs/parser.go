package surveyjs

import (
	"encoding/json"
	"fmt"
	"strings"

	"surveytoolkit/internal/model"
)

const (
	DefaultOtherText = "other, which?"
	DefaultNoneText  = "none"

	otherKey      = "other"
	noneKey       = "none"
	commentSuffix = "-Comment"
)

// Options holds the texts used for "other" and "none" choices that declare no text of their own
type Options struct {
	DefaultOtherText string
	DefaultNoneText  string
}

// DefaultOptions returns the SurveyJS defaults
func DefaultOptions() Options {
	return Options{
		DefaultOtherText: DefaultOtherText,
		DefaultNoneText:  DefaultNoneText,
	}
}

// MetadataParser turns a survey definition into a flat, ordered list of questions.
// Composite elements (panel, multipletext, matrix) prefix the names and labels
// of the questions they contain.
type MetadataParser struct {
	opts      Options
	questions []model.Question
	names     []string
	labels    []string
}

// NewMetadataParser creates a parser
func NewMetadataParser(opts Options) *MetadataParser {
	return &MetadataParser{opts: opts}
}

// Parse decodes and parses a JSON survey definition
func (p *MetadataParser) Parse(definition []byte) ([]model.Question, error) {
	var doc Document
	if err := json.Unmarshal(definition, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDefinition, err)
	}
	return p.ParseDocument(&doc)
}

// ParseDocument parses a decoded survey definition
func (p *MetadataParser) ParseDocument(doc *Document) ([]model.Question, error) {
	p.questions = nil
	p.names = p.names[:0]
	p.labels = p.labels[:0]

	if len(doc.Pages) > 0 {
		for _, page := range doc.Pages {
			for i := range page.Elements {
				if err := p.walk(&page.Elements[i]); err != nil {
					return nil, err
				}
			}
		}
	} else if doc.Type != "" {
		if err := p.walk(&doc.Element); err != nil {
			return nil, err
		}
	}

	out := p.questions
	p.questions = nil
	return out, nil
}

func (p *MetadataParser) walk(e *Element) error {
	switch e.Type {
	case "panel":
		p.labels = append(p.labels, e.Title.String())
		for i := range e.Elements {
			if err := p.walk(&e.Elements[i]); err != nil {
				return err
			}
		}
		p.labels = p.labels[:len(p.labels)-1]

	case "multipletext":
		p.push(e)
		for _, item := range e.Items {
			item.Type = "text"
			if err := p.leaf(&item, item.Choices); err != nil {
				return err
			}
		}
		p.pop()

	case "matrix":
		rows, err := e.Rows.Parse()
		if err != nil {
			return fmt.Errorf("matrix %s rows: %w", e.Name, err)
		}
		p.push(e)
		for _, row := range rows {
			q := Element{
				Type:          "radiogroup",
				Name:          row.Key.String(),
				Title:         Text(row.Label),
				HasOther:      e.HasOther,
				ShowOtherItem: e.ShowOtherItem,
				OtherText:     e.OtherText,
			}
			if err := p.leaf(&q, e.Columns); err != nil {
				return err
			}
		}
		p.pop()

	case "html", "paneldynamic", "matrixdynamic", "sortablelist":
		// no question

	default:
		return p.leaf(e, e.Choices)
	}
	return nil
}

func (p *MetadataParser) push(e *Element) {
	p.names = append(p.names, e.Name)
	p.labels = append(p.labels, e.Title.String())
}

func (p *MetadataParser) pop() {
	p.names = p.names[:len(p.names)-1]
	p.labels = p.labels[:len(p.labels)-1]
}

func (p *MetadataParser) composeName(name string) string {
	if len(p.names) == 0 {
		return name
	}
	return strings.Join(p.names, "_") + "_" + name
}

func (p *MetadataParser) composeLabel(title string) string {
	if len(p.labels) == 0 {
		return title
	}
	return strings.Join(p.labels, ": ") + ": " + title
}

// leaf builds the question(s) of a leaf element; choices is the element's choice list
func (p *MetadataParser) leaf(e *Element, choices ItemValues) error {
	name := p.composeName(e.Name)
	label := p.composeLabel(e.Title.String())

	switch e.Type {
	case "text":
		if e.numeric() {
			p.questions = append(p.questions, model.NewNumericQuestion(name, label))
		} else {
			p.questions = append(p.questions, model.NewFreeTextQuestion(name, label))
		}
		return nil

	case "radiogroup", "checkbox":
		items, err := choices.Parse()
		if err != nil {
			return fmt.Errorf("question %s: %w", name, err)
		}
		set := model.NewChoices(items...)
		if e.Type == "checkbox" && e.none() {
			set.Add(model.TextKey(noneKey), textOr(e.NoneText, p.opts.DefaultNoneText))
		}
		var otherText string
		if e.other() {
			otherText = textOr(e.OtherText, p.opts.DefaultOtherText)
			set.Add(model.TextKey(otherKey), otherText)
		}

		var q model.Question
		if e.Type == "radiogroup" {
			q = model.NewSingleChoiceQuestion(name, label, set)
		} else {
			q = model.NewMultipleChoiceQuestion(name, label, set)
		}
		p.questions = append(p.questions, q)
		if e.other() {
			p.questions = append(p.questions,
				model.NewFreeTextQuestion(name+commentSuffix, q.Label()+" "+otherText))
		}
		return nil
	}
	return fmt.Errorf("%w: %q (element %s)", ErrUnsupportedQuestionType, e.Type, name)
}

func textOr(s LocalizedString, fallback string) string {
	if s.IsZero() {
		return fallback
	}
	return s.String()
}
