package insight

import (
	"bytes"
	"encoding/json"
)

// Field is one named numeric fact inside an evidence payload.
type Field struct {
	Key   string
	Value any
}

// Evidence carries the exact numeric values a finding references, in a fixed
// order, so rendered text is always traceable to a number. It marshals as a
// JSON object whose member order matches insertion order, keeping exported
// field layout stable across runs.
type Evidence []Field

// Ev builds an evidence payload from alternating key/value arguments.
func Ev(fields ...Field) Evidence { return Evidence(fields) }

// F builds a single evidence field.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

// Get returns the value stored under key, or nil.
func (e Evidence) Get(key string) any {
	for _, f := range e {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Float returns the float64 stored under key, or 0 when absent or non-numeric.
func (e Evidence) Float(key string) float64 {
	switch v := e.Get(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// MarshalJSON renders the evidence as an object preserving field order.
func (e Evidence) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
