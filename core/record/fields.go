// Package record holds loosely typed JSON objects with their key order preserved.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned by Decode when the input is valid JSON but not an object.
var ErrNotObject = errors.New("record is not a JSON object")

// Field is one key/value pair of a record as received from the remote API.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Fields is an ordered bag of fields. Order is the order of the source document.
type Fields []Field

// Decode parses a JSON object keeping key order. A repeated key keeps the position of
// its first occurrence and the value of its last one.
func Decode(raw json.RawMessage) (Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	fields := Fields{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode record key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode record: unexpected token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode record field %q: %w", key, err)
		}

		if i, seen := index[key]; seen {
			fields[i].Value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return fields, nil
}

// Get returns the raw value of key.
func (f Fields) Get(key string) (json.RawMessage, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Value returns the tagged value of key; KindAbsent when the key is missing.
func (f Fields) Value(key string) Value {
	raw, ok := f.Get(key)
	if !ok {
		return Value{}
	}
	return ValueOf(raw)
}

// String returns the value of key when it is a JSON string, otherwise "".
func (f Fields) String(key string) string {
	s, _ := f.Value(key).Str()
	return s
}

// Without returns a copy of f minus the given keys. f is left untouched.
func (f Fields) Without(keys ...string) Fields {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}

	out := make(Fields, 0, len(f))
	for _, field := range f {
		if _, skip := drop[field.Key]; skip {
			continue
		}
		out = append(out, field)
	}
	return out
}

// Map returns the fields as a map of raw values.
func (f Fields) Map() map[string]json.RawMessage {
	m := make(map[string]json.RawMessage, len(f))
	for _, field := range f {
		m[field.Key] = field.Value
	}
	return m
}

// MarshalJSON writes the fields as a JSON object in bag order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := f.writeTo(&buf, true); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AppendJSON writes the fields as object members (no braces) to buf.
// first reports whether buf has no members yet.
func (f Fields) AppendJSON(buf *bytes.Buffer, first bool) error {
	return f.writeTo(buf, first)
}

func (f Fields) writeTo(buf *bytes.Buffer, first bool) error {
	for _, field := range f {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(field.Key)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(bytes.TrimSpace(field.Value)) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(field.Value)
	}
	return nil
}
