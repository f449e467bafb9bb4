package frame

import (
	"strconv"
	"strings"
)

// Kind classifies the payload of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
)

// DType returns the column dtype name for the kind.
func (k Kind) DType() string {
	switch k {
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	default:
		return "string"
	}
}

// KindForDType maps a column dtype name to a Kind. Unknown dtypes map to
// KindString so ingestion degrades to keeping the raw text.
func KindForDType(dtype string) Kind {
	switch {
	case strings.HasPrefix(dtype, "int"):
		return KindInt
	case strings.HasPrefix(dtype, "float"):
		return KindFloat
	default:
		return KindString
	}
}

// Value is one cell of a Frame: a null, string, int, or float. A Value
// produced by a failed coercion keeps the raw input text and is tagged
// unparsed rather than the failure being swallowed.
type Value struct {
	kind     Kind
	str      string
	i        int64
	f        float64
	unparsed bool
}

// Null returns the missing-value cell.
func Null() Value { return Value{kind: KindNull} }

// String returns a string cell.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer cell.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point cell.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Unparsed returns a string cell tagged as a failed coercion, preserving raw.
func Unparsed(raw string) Value {
	return Value{kind: KindString, str: raw, unparsed: true}
}

// Kind returns the cell's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsUnparsed reports whether the cell holds raw text from a failed coercion.
func (v Value) IsUnparsed() bool { return v.unparsed }

// Int returns the integer payload. Valid only when Kind is KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload, widening an int cell.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// String renders the cell as text. Nulls render empty.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.str
	}
}

// Any returns the payload as a driver-friendly value: nil, string, int64,
// or float64.
func (v Value) Any() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return v.str
	}
}

// FromAny converts a scanned database value into a Value.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case int64:
		return Int(t)
	case float64:
		return Float(t)
	case bool:
		if t {
			return Int(1)
		}
		return Int(0)
	case []byte:
		return String(string(t))
	case string:
		return String(t)
	default:
		return Unparsed(strStringify(t))
	}
}

func strStringify(x any) string {
	if s, ok := x.(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}

// Coerce converts raw text to the wanted kind. Empty input becomes null.
// A failed int or float parse returns the raw text tagged unparsed.
func Coerce(raw string, want Kind) Value {
	if raw == "" {
		return Null()
	}
	switch want {
	case KindInt:
		if i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return Int(i)
		}
		// Secondary numeric pass: a declared int column may carry
		// decimal text that still parses as a float.
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return Float(f)
		}
		return Unparsed(raw)
	case KindFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return Float(f)
		}
		return Unparsed(raw)
	case KindNull:
		return Null()
	default:
		return String(raw)
	}
}

// Detect converts raw text to the narrowest kind that parses: int, then
// float, then string. Empty input becomes null.
func Detect(raw string) Value {
	if raw == "" {
		return Null()
	}
	trimmed := strings.TrimSpace(raw)
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Float(f)
	}
	return String(raw)
}
