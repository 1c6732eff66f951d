package record

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesOrder(t *testing.T) {
	fields, err := Decode(json.RawMessage(`{"zeta":1,"customer_name":" Acme ","alpha":{"nested":true},"list":[1,2]}`))
	require.NoError(t, err)

	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"zeta", "customer_name", "alpha", "list"}, keys)

	out, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"customer_name":" Acme ","alpha":{"nested":true},"list":[1,2]}`, string(out))
}

func TestDecode_DuplicateKeyLastValueWins(t *testing.T) {
	fields, err := Decode(json.RawMessage(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0].Key)
	assert.JSONEq(t, "3", string(fields[0].Value))
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"Array", `[1,2]`},
		{"String", `"hello"`},
		{"Truncated", `{"a":`},
		{"Empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(json.RawMessage(tt.raw))
			assert.Error(t, err)
		})
	}

	_, err := Decode(json.RawMessage(`[1]`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestFields_Accessors(t *testing.T) {
	fields, err := Decode(json.RawMessage(`{"name":"Acme","id":7,"source":null}`))
	require.NoError(t, err)

	assert.Equal(t, "Acme", fields.String("name"))
	assert.Equal(t, "", fields.String("id"))
	assert.Equal(t, "", fields.String("missing"))
	assert.Equal(t, KindNull, fields.Value("source").Kind())
	assert.Equal(t, KindAbsent, fields.Value("missing").Kind())

	raw, ok := fields.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "7", string(raw))
}

func TestFields_WithoutDoesNotMutate(t *testing.T) {
	fields, err := Decode(json.RawMessage(`{"a":1,"b":2,"c":3}`))
	require.NoError(t, err)

	trimmed := fields.Without("b")
	assert.Len(t, trimmed, 2)
	assert.Len(t, fields, 3)
	assert.Equal(t, "b", fields[1].Key)
}

func TestFields_AppendJSON(t *testing.T) {
	fields := Fields{{Key: "a", Value: json.RawMessage(`1`)}, {Key: "b"}}

	var buf bytes.Buffer
	buf.WriteString(`{"x":0`)
	require.NoError(t, fields.AppendJSON(&buf, false))
	buf.WriteByte('}')

	assert.JSONEq(t, `{"x":0,"a":1,"b":null}`, buf.String())
}

func TestValue_TypeGuard(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kind    Kind
		wantURL *string
	}{
		{"String", `"https://acme.example"`, KindString, strPtr("https://acme.example")},
		{"Empty string", `""`, KindString, strPtr("")},
		{"Object", `{"nested":true}`, KindOther, nil},
		{"Array", `["a"]`, KindOther, nil},
		{"Number", `42`, KindOther, nil},
		{"Bool", `false`, KindOther, nil},
		{"Null", `null`, KindNull, nil},
		{"Absent", ``, KindAbsent, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValueOf(json.RawMessage(tt.raw))
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.wantURL, v.URL())
		})
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c"`
	}{
		A: StringValue("x"),
		B: ValueOf(json.RawMessage(`{"nested":true}`)),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":{"nested":true},"c":null}`, string(out))
}

func strPtr(s string) *string {
	return &s
}
