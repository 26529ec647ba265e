package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Key identifies a choice. A key is either text or a small integer code.
type Key struct {
	text    string
	code    int
	numeric bool
}

// TextKey returns a text choice key
func TextKey(s string) Key {
	return Key{text: s}
}

// CodeKey returns an integer choice key
func CodeKey(n int) Key {
	return Key{code: n, numeric: true}
}

// IsCode reports whether the key is an integer code
func (k Key) IsCode() bool {
	return k.numeric
}

// Code returns the integer code, zero for text keys
func (k Key) Code() int {
	return k.code
}

func (k Key) String() string {
	if k.numeric {
		return strconv.Itoa(k.code)
	}
	return k.text
}

// Value returns the key as a table cell: int for codes, string otherwise
func (k Key) Value() any {
	if k.numeric {
		return k.code
	}
	return k.text
}

// Less orders codes numerically before text keys, text keys lexically
func (k Key) Less(o Key) bool {
	if k.numeric != o.numeric {
		return k.numeric
	}
	if k.numeric {
		return k.code < o.code
	}
	return k.text < o.text
}

func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.Value())
}

func (k *Key) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*k = CodeKey(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = TextKey(s)
	return nil
}

func parseCode(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
