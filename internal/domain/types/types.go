// Package types contains the value types shared by the dataset, the API and the dashboard.
package types

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind tags the scalar held by a Value.
type Kind uint8

// Supported scalar kinds.
const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

// Value is a tagged scalar cell.
type Value struct {
	kind Kind
	s    string
	i    int
	f    float64
	b    bool
}

// Null returns the missing value.
func Null() Value { return Value{} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// IntValue wraps i.
func IntValue(i int) Value { return Value{kind: KindInt, i: i} }

// FloatValue wraps f. NaN is treated as missing.
func FloatValue(f float64) Value {
	if math.IsNaN(f) {
		return Null()
	}
	return Value{kind: KindFloat, f: f}
}

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports the tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is missing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the value as an int when it is numeric.
func (v Value) Int() (int, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int(v.f), true
	default:
		return 0, false
	}
}

// Float returns the value as a float64 when it is numeric.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// String renders the value for display. Missing values render empty.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.Itoa(v.i)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindInt:
		return []byte(strconv.Itoa(v.i)), nil
	case KindFloat:
		if math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.f, 'f', -1, 64)), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	default:
		return []byte("null"), nil
	}
}

// Field is one named cell of a Record.
type Field struct {
	Key   string
	Value Value
}

// Record is an ordered, open set of fields. Keys are unique.
type Record struct {
	fields []Field
}

// NewRecord returns an empty record with room for n fields.
func NewRecord(n int) Record {
	return Record{fields: make([]Field, 0, n)}
}

// Set appends key or replaces its value in place.
func (r *Record) Set(key string, v Value) {
	for i := range r.fields {
		if r.fields[i].Key == key {
			r.fields[i].Value = v
			return
		}
	}
	r.fields = append(r.fields, Field{Key: key, Value: v})
}

// Get returns the value under key.
func (r Record) Get(key string) (Value, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Null(), false
}

// Keys lists keys in insertion order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Len is the number of fields.
func (r Record) Len() int { return len(r.fields) }

// MarshalJSON encodes the record as a JSON object, keeping field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
