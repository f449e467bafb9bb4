package table

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Reserved and recognized metadata keys.
const (
	MetaKeyFile      = "file"
	MetaKeySource    = "source"
	MetaKeyURL       = "url"
	MetaKeySheetName = "sheet_name"
	MetaKeyIndexCol  = "index_col"
	MetaKeySkipRows  = "skiprows"
	MetaKeyUseCols   = "usecols"
	MetaKeyNames     = "names"
	MetaKeyDType     = "dtype"
	MetaKeyEncoding  = "encoding"
	MetaKeyDBFile    = "db_file"
	MetaKeyMetaFile  = "meta_file"
	MetaKeySQLIndex  = "sql_index"
	MetaKeyName      = "name"
	MetaKeyTableID   = "table_id"
	MetaKeyOutputDir = "output_dir"
)

// Meta is the key/value metadata record of a table. Values read from the
// store or a workbook are best-effort JSON decoded: lists and maps come back
// as []any / map[string]any, scalars that do not decode stay raw strings.
type Meta map[string]any

// DecodeValue converts a persisted metadata value back to its in-memory
// form. Values that do not decode as JSON are kept as the raw string.
func DecodeValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// EncodeValue converts an in-memory metadata value to its persisted text
// form. Lists and maps serialize to JSON, scalars pass through as text.
func EncodeValue(value any) (string, error) {
	switch value.(type) {
	case nil:
		return "", nil
	case string:
		return value.(string), nil
	case []any, []string, []int, map[string]any, map[string]string:
		b, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("encoding meta value: %w", err)
		}
		return string(b), nil
	default:
		return fmt.Sprint(value), nil
	}
}

// String returns the value under key rendered as text.
func (m Meta) String(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	if s, isStr := v.(string); isStr {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Int returns the value under key as an int. JSON decoding yields float64
// for numbers, so that form is accepted alongside int and numeric strings.
func (m Meta) Int(key string) (int, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if i, err := strconv.Atoi(t); err == nil {
			return i, true
		}
	}
	return 0, false
}

// IntList returns the value under key as a list of ints. A scalar int is
// returned as a one-element list.
func (m Meta) IntList(key string) ([]int, bool) {
	if i, ok := m.Int(key); ok {
		return []int{i}, true
	}
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(list))
	for _, item := range list {
		switch t := item.(type) {
		case float64:
			out = append(out, int(t))
		case int:
			out = append(out, t)
		default:
			return nil, false
		}
	}
	return out, true
}

// StringList returns the value under key as a list of strings.
func (m Meta) StringList(key string) ([]string, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, isStr := item.(string)
			if !isStr {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// StringMap returns the value under key as a string-to-string map.
func (m Meta) StringMap(key string) (map[string]string, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case map[string]string:
		return t, true
	case map[string]any:
		out := make(map[string]string, len(t))
		for k, item := range t {
			s, isStr := item.(string)
			if !isStr {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	}
	return nil, false
}
