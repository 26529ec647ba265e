package model

// Choice is a permissible key with its display label
type Choice struct {
	Key   Key    `json:"value" bson:"value"`
	Label string `json:"label" bson:"label"`
}

// Choices is an insertion-ordered mapping from key to display label
type Choices struct {
	keys   []Key
	labels map[Key]string
}

// NewChoices builds choices from key/label pairs. A repeated key keeps its
// first position and takes the last label.
func NewChoices(items ...Choice) *Choices {
	c := &Choices{labels: make(map[Key]string, len(items))}
	for _, item := range items {
		c.Add(item.Key, item.Label)
	}
	return c
}

// ChoicesFromValues builds self-labelling text choices
func ChoicesFromValues(values ...string) *Choices {
	c := &Choices{labels: make(map[Key]string, len(values))}
	for _, v := range values {
		c.Add(TextKey(v), v)
	}
	return c
}

// Add appends a choice, or relabels it if the key exists
func (c *Choices) Add(key Key, label string) {
	if c.labels == nil {
		c.labels = make(map[Key]string)
	}
	if _, ok := c.labels[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.labels[key] = label
}

// Len returns the number of choices; a nil Choices is empty
func (c *Choices) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Has reports whether key is a choice
func (c *Choices) Has(key Key) bool {
	if c == nil {
		return false
	}
	_, ok := c.labels[key]
	return ok
}

// Label returns the display label of key
func (c *Choices) Label(key Key) (string, bool) {
	if c == nil {
		return "", false
	}
	l, ok := c.labels[key]
	return l, ok
}

// Keys returns the keys in insertion order
func (c *Choices) Keys() []Key {
	if c == nil {
		return nil
	}
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}

// Labels returns the display labels in key order
func (c *Choices) Labels() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.keys))
	for i, k := range c.keys {
		out[i] = c.labels[k]
	}
	return out
}

// Items returns the choices in order
func (c *Choices) Items() []Choice {
	if c == nil {
		return nil
	}
	out := make([]Choice, len(c.keys))
	for i, k := range c.keys {
		out[i] = Choice{Key: k, Label: c.labels[k]}
	}
	return out
}

func (c *Choices) clone() *Choices {
	if c == nil {
		return nil
	}
	return NewChoices(c.Items()...)
}

// allCodes reports whether the choices are non-empty and keyed by integer codes
func (c *Choices) allCodes() bool {
	if c.Len() == 0 {
		return false
	}
	for _, k := range c.keys {
		if !k.IsCode() {
			return false
		}
	}
	return true
}

// normalized converts the keys to integer codes when every key parses as an integer
func (c *Choices) normalized() *Choices {
	if c.Len() == 0 {
		return nil
	}
	codes := make([]int, len(c.keys))
	for i, k := range c.keys {
		if k.IsCode() {
			codes[i] = k.Code()
			continue
		}
		n, ok := parseCode(k.text)
		if !ok {
			return c.clone()
		}
		codes[i] = n
	}
	out := &Choices{labels: make(map[Key]string, len(c.keys))}
	for i, k := range c.keys {
		out.Add(CodeKey(codes[i]), c.labels[k])
	}
	return out
}
