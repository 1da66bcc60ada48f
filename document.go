package wikistore

import (
	"strconv"
	"strings"
)

// Document is a schemaless record: an ID plus arbitrary, possibly nested,
// fields. It is the record type used by the YAML-driven tooling, and a
// convenient default when records have no Go type of their own.
type Document struct {
	ID     string
	Fields map[string]any
}

// Key returns the document ID.
func (d Document) Key() string {
	return d.ID
}

// Lookup returns the value at a dot-notation path such as "stats.attack".
// Each segment except the last must resolve to a nested map.
func (d Document) Lookup(path string) (any, bool) {
	return lookupPath(d.Fields, strings.Split(path, "."))
}

// FieldScore returns a [ScoreFunc] reading a numeric field from a
// [Document] using dot notation to navigate nested maps.
//
// Values are converted to float64:
//   - integer and floating point numbers as-is
//   - strings holding a number are parsed
//   - true scores 1, false scores 0
//
// A missing field or any other value scores [MinScore].
//
// Example:
//
//	// For fields: {"stats": {"attack": 90}}
//	byAttack := wikistore.FieldScore("stats.attack")
func FieldScore(path string) ScoreFunc[Document] {
	parts := strings.Split(path, ".")

	return func(d Document) float64 {
		value, ok := lookupPath(d.Fields, parts)
		if !ok {
			return MinScore
		}
		f, ok := toFloat(value)
		if !ok {
			return MinScore
		}
		return f
	}
}

// lookupPath walks nested maps using dot notation parts.
func lookupPath(fields map[string]any, parts []string) (any, bool) {
	var current any = fields

	for _, part := range parts {
		switch obj := current.(type) {
		case map[string]any:
			v, ok := obj[part]
			if !ok {
				return nil, false
			}
			current = v
		case map[any]any:
			// yaml decodes some nested maps with interface keys
			v, ok := obj[part]
			if !ok {
				return nil, false
			}
			current = v
		default:
			return nil, false
		}
	}

	return current, true
}

// toFloat converts a scalar field value to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
