package model

import (
	"regexp"
	"sort"
)

// choiceBase holds what single and multiple choice questions share: the
// optional choice mapping and the key decoding rules it implies.
type choiceBase struct {
	base
	choices *Choices
}

// Choices returns a copy of the choice mapping, nil when unset
func (c *choiceBase) Choices() *Choices {
	return c.choices.clone()
}

// ChoiceLabels returns the choice display labels in choice order
func (c *choiceBase) ChoiceLabels() []string {
	return c.choices.Labels()
}

// numeric reports whether answers are decoded as integer codes
func (c *choiceBase) numeric() bool {
	return c.choices.allCodes()
}

// decodeKey casts one scalar to a key and validates it against non-empty choices
func (c *choiceBase) decodeKey(raw any) (Key, error) {
	var key Key
	if c.numeric() {
		n, ok := toCode(raw)
		if !ok {
			return Key{}, &InvalidChoiceError{Question: c.name, Value: raw}
		}
		key = CodeKey(n)
	} else {
		s, ok := toText(raw)
		if !ok {
			return Key{}, &DecodeError{Question: c.name, Value: raw, Target: DataTypeString}
		}
		key = TextKey(s)
	}
	if c.choices.Len() > 0 && !c.choices.Has(key) {
		return Key{}, &InvalidChoiceError{Question: c.name, Value: raw}
	}
	return key, nil
}

// cleanChoiceLabels strips re from the label and every choice display string
func (c *choiceBase) cleanChoiceLabels(re *regexp.Regexp) {
	c.cleanLabel(re)
	if c.choices == nil {
		return
	}
	for _, k := range c.choices.keys {
		c.choices.labels[k] = re.ReplaceAllString(c.choices.labels[k], "")
	}
}

// domain returns the category keys: the choices when set, else the sorted observed keys
func (c *choiceBase) domain(observed []Key) []Key {
	if c.choices.Len() > 0 {
		return c.choices.Keys()
	}
	return observed
}

// displayLabel returns the choice label of key, or the key itself when it has none
func (c *choiceBase) displayLabel(key Key) string {
	if l, ok := c.choices.Label(key); ok {
		return l
	}
	return key.String()
}

// codeMapping enumerates the domain from 1 and returns the new choices along
// with the old key to code mapping
func (c *choiceBase) codeMapping(observed []Key) (*Choices, map[Key]Key) {
	keys := c.domain(observed)
	mapping := make(map[Key]Key, len(keys))
	choices := &Choices{labels: make(map[Key]string, len(keys))}
	for i, k := range keys {
		code := CodeKey(i + 1)
		mapping[k] = code
		choices.Add(code, c.displayLabel(k))
	}
	return choices, mapping
}

func (c *choiceBase) metadata(t QuestionType) VariableMetadata {
	return VariableMetadata{
		Name:        c.name,
		Label:       c.Label(),
		Type:        t,
		ValueLabels: c.choices.Items(),
	}
}

func sortedKeys(set map[Key]struct{}) []Key {
	out := make([]Key, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}

func keyValues(keys []Key) []any {
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k.Value()
	}
	return out
}
