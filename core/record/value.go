package record

import (
	"bytes"
	"encoding/json"
)

// Kind tags the JSON type of a Value.
type Kind int

const (
	// KindAbsent means the key was not present.
	KindAbsent Kind = iota
	// KindNull is an explicit JSON null.
	KindNull
	// KindString is a JSON string.
	KindString
	// KindOther is any other JSON value (number, bool, object, array).
	KindOther
)

// Value is a union-typed field value. Only string values are usable as text;
// everything else is carried as raw JSON.
type Value struct {
	kind Kind
	str  string
	raw  json.RawMessage
}

// ValueOf classifies a raw JSON value.
func ValueOf(raw json.RawMessage) Value {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return Value{}
	case bytes.Equal(trimmed, []byte("null")):
		return Value{kind: KindNull, raw: raw}
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Value{kind: KindOther, raw: raw}
		}
		return Value{kind: KindString, str: s, raw: raw}
	default:
		return Value{kind: KindOther, raw: raw}
	}
}

// StringValue builds a string Value.
func StringValue(s string) Value {
	raw, _ := json.Marshal(s)
	return Value{kind: KindString, str: s, raw: raw}
}

// Kind reports the JSON type of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the string and true only when v is a JSON string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// URL projects a string value to a pointer; every other kind maps to nil.
func (v Value) URL() *string {
	if v.kind != KindString {
		return nil
	}
	s := v.str
	return &s
}

// Raw returns the JSON text of v (nil when absent).
func (v Value) Raw() json.RawMessage {
	return v.raw
}

// MarshalJSON re-emits the original JSON; an absent value is written as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindAbsent {
		return []byte("null"), nil
	}
	return v.raw, nil
}
