package surveyjs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"surveytoolkit/internal/model"
)

// Document is a SurveyJS survey definition. A definition without pages is
// treated as a single element.
type Document struct {
	Pages []Page `json:"pages"`
	Element
}

// Page is one page of a survey definition
type Page struct {
	Name     string    `json:"name"`
	Elements []Element `json:"elements"`
}

// Element is a node of the definition tree: a container or a question
type Element struct {
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	Title      LocalizedString `json:"title"`
	InputType  string          `json:"inputType,omitempty"`
	Validators []Validator     `json:"validators,omitempty"`

	Choices ItemValues `json:"choices,omitempty"`
	Columns ItemValues `json:"columns,omitempty"`
	Rows    ItemValues `json:"rows,omitempty"`

	// Items are the text fields of a multipletext element
	Items []Element `json:"items,omitempty"`
	// Elements are the children of a panel
	Elements []Element `json:"elements,omitempty"`

	HasOther      bool            `json:"hasOther,omitempty"`
	ShowOtherItem bool            `json:"showOtherItem,omitempty"`
	OtherText     LocalizedString `json:"otherText"`
	HasNone       bool            `json:"hasNone,omitempty"`
	ShowNoneItem  bool            `json:"showNoneItem,omitempty"`
	NoneText      LocalizedString `json:"noneText"`
}

// Validator is an input validator attached to a text question
type Validator struct {
	Type string `json:"type"`
}

func (e *Element) other() bool {
	return e.HasOther || e.ShowOtherItem
}

func (e *Element) none() bool {
	return e.HasNone || e.ShowNoneItem
}

func (e *Element) numeric() bool {
	if e.InputType == "number" {
		return true
	}
	for _, v := range e.Validators {
		if v.Type == "numeric" {
			return true
		}
	}
	return false
}

// LocalizedString is a text given either as a plain string or as a map of
// language code to translation
type LocalizedString struct {
	values map[string]string
}

// defaultLocale is the SurveyJS key of the untranslated text
const defaultLocale = "default"

// Text creates a non-localized string
func Text(s string) LocalizedString {
	return LocalizedString{values: map[string]string{defaultLocale: s}}
}

// String resolves the text: the default locale first, then English, then the
// alphabetically first language
func (l LocalizedString) String() string {
	if s, ok := l.values[defaultLocale]; ok {
		return s
	}
	if s, ok := l.values["en"]; ok {
		return s
	}
	langs := make([]string, 0, len(l.values))
	for lang := range l.values {
		langs = append(langs, lang)
	}
	if len(langs) == 0 {
		return ""
	}
	sort.Strings(langs)
	return l.values[langs[0]]
}

// In returns the translation for lang, falling back to String
func (l LocalizedString) In(lang string) string {
	if s, ok := l.values[lang]; ok {
		return s
	}
	return l.String()
}

// IsZero reports whether no text was given
func (l LocalizedString) IsZero() bool {
	return len(l.values) == 0
}

func (l LocalizedString) MarshalJSON() ([]byte, error) {
	if len(l.values) == 1 {
		if s, ok := l.values[defaultLocale]; ok {
			return json.Marshal(s)
		}
	}
	return json.Marshal(l.values)
}

func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = LocalizedString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Text(s)
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("localized string: %w", err)
	}
	*l = LocalizedString{values: m}
	return nil
}

// ItemValues is a raw choice list. It is parsed on use so that elements which
// are skipped never fail on list shapes they do not share.
type ItemValues json.RawMessage

func (v ItemValues) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return []byte(v), nil
}

func (v *ItemValues) UnmarshalJSON(data []byte) error {
	*v = append((*v)[:0], data...)
	return nil
}

type itemValue struct {
	Value json.RawMessage `json:"value"`
	Text  LocalizedString `json:"text"`
}

// Parse normalizes the list into ordered choices. Entries are plain strings,
// which label themselves, or {value, text} objects with text defaulting to value.
func (v ItemValues) Parse() ([]model.Choice, error) {
	if len(v) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(v, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedChoiceList, err)
	}

	out := make([]model.Choice, 0, len(entries))
	for i, raw := range entries {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			out = append(out, model.Choice{Key: model.TextKey(s), Label: s})
			continue
		}
		var item itemValue
		if err := json.Unmarshal(raw, &item); err != nil || len(item.Value) == 0 {
			return nil, fmt.Errorf("%w: entry %d is %s", ErrMalformedChoiceList, i, raw)
		}
		key, err := parseItemKey(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %s", ErrMalformedChoiceList, i, err)
		}
		label := key.String()
		if !item.Text.IsZero() {
			label = item.Text.String()
		}
		out = append(out, model.Choice{Key: key, Label: label})
	}
	return out, nil
}

func parseItemKey(raw json.RawMessage) (model.Key, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return model.TextKey(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return model.Key{}, fmt.Errorf("value %s is neither a string nor a number", raw)
	}
	if i, err := strconv.Atoi(n.String()); err == nil {
		return model.CodeKey(i), nil
	}
	return model.TextKey(n.String()), nil
}
