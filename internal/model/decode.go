package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// isEmpty reports whether raw is null, an empty string or an empty list
func isEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case []Key:
		return len(v) == 0
	case []int:
		return len(v) == 0
	}
	return false
}

// asList returns the elements of list-shaped raw values
func asList(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	case []Key:
		out := make([]any, len(v))
		for i, k := range v {
			out[i] = k
		}
		return out, true
	}
	return nil, false
}

// toText casts scalar raw values to a string
func toText(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case Key:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// toFloat casts raw to a finite float64, retrying strings with a decimal comma
func toFloat(raw any) (float64, bool) {
	f, ok := castFloat(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func castFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(v)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		return f, err == nil
	}
	return 0, false
}

// toCode casts raw to an integer code; floats must be integral
func toCode(raw any) (int, bool) {
	switch v := raw.(type) {
	case Key:
		if v.IsCode() {
			return v.Code(), true
		}
		return parseCode(v.text)
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		f, err := v.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int(f), true
	case string:
		return parseCode(v)
	}
	return 0, false
}

// toAnyText renders any raw value as text, composites included
func toAnyText(raw any) string {
	if s, ok := toText(raw); ok {
		return s
	}
	if data, err := json.Marshal(raw); err == nil {
		return string(data)
	}
	return fmt.Sprint(raw)
}
