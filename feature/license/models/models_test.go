package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestDecodeLicenseRecord(t *testing.T) {
	r, err := DecodeLicenseRecord(json.RawMessage(`{"customer_name":" Acme Corp ","customer_ref":42,"license_start":"2024-01-01","license_end":"2024-12-31","seats":10}`))
	require.NoError(t, err)

	assert.Equal(t, " Acme Corp ", r.CustomerName)
	assert.Equal(t, "42", r.CustomerRef)
	assert.Equal(t, "2024-01-01", r.LicenseStart)
	assert.Equal(t, "2024-12-31", r.LicenseEnd)
	assert.Nil(t, r.URLs)
	assert.Len(t, r.Fields, 5)
}

func TestDecodeLicenseRecord_NameFallback(t *testing.T) {
	r, err := DecodeLicenseRecord(json.RawMessage(`{"customerName":"Beta"}`))
	require.NoError(t, err)
	assert.Equal(t, "Beta", r.CustomerName)

	r, err = DecodeLicenseRecord(json.RawMessage(`{"customer_name":"","customerName":"Gamma"}`))
	require.NoError(t, err)
	assert.Equal(t, "Gamma", r.CustomerName)

	r, err = DecodeLicenseRecord(json.RawMessage(`{"customer_name":123}`))
	require.NoError(t, err)
	assert.Equal(t, "", r.CustomerName, "non-string names are unkeyable")
}

func TestDecodeLicenseRecord_NotObject(t *testing.T) {
	_, err := DecodeLicenseRecord(json.RawMessage(`["a"]`))
	assert.Error(t, err)
}

func TestLicenseRecord_MarshalJSON(t *testing.T) {
	r, err := DecodeLicenseRecord(json.RawMessage(`{"customer_name":"Acme","seats":3}`))
	require.NoError(t, err)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"customer_name":"Acme","seats":3}`, string(out), "no URL keys before enrichment")

	r.Provenance = &Provenance{SourcePage: 2, FetchDateFrom: "2024-01-01", FetchDateTo: "2024-01-31"}
	enriched := r.WithURLs(CustomerURLs{URL: ptr("https://a.example"), URL2: nil, URL3: ptr("x")})

	out, err = json.Marshal(enriched)
	require.NoError(t, err)
	assert.Equal(t,
		`{"customer_name":"Acme","seats":3,"_source_page":2,"_fetch_date_from":"2024-01-01","_fetch_date_to":"2024-01-31","customer_url":"https://a.example","customer_url2":null,"customer_url3":"x"}`,
		string(out))

	assert.Nil(t, r.URLs, "WithURLs returns a copy")
}

func TestLicenseRecord_MarshalJSONReplacesExistingKeys(t *testing.T) {
	r, err := DecodeLicenseRecord(json.RawMessage(`{"customer_url":"stale","customer_name":"Acme"}`))
	require.NoError(t, err)

	out, err := json.Marshal(r.WithURLs(CustomerURLs{URL: ptr("fresh")}))
	require.NoError(t, err)
	assert.Equal(t, `{"customer_name":"Acme","customer_url":"fresh","customer_url2":null,"customer_url3":null}`, string(out))
}

func TestLicenseRecord_MarshalJSONEmptyFields(t *testing.T) {
	r := LicenseRecord{URLs: &CustomerURLs{}}
	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"customer_url":null,"customer_url2":null,"customer_url3":null}`, string(out))
}

func TestNewLicenseDetail(t *testing.T) {
	r, err := DecodeLicenseRecord(json.RawMessage(`{"customer_name":"Acme","customer_ref":"R1","license_start":"2024-01-01","license_end":"2024-06-30"}`))
	require.NoError(t, err)
	r.Provenance = &Provenance{SourcePage: 1, FetchDateFrom: "2024-01-01", FetchDateTo: "2024-01-31"}
	r = r.WithURLs(CustomerURLs{URL: ptr("https://acme.example")})

	row, err := NewLicenseDetail(r)
	require.NoError(t, err)

	require.NotNil(t, row.CustomerName)
	assert.Equal(t, "Acme", *row.CustomerName)
	assert.Equal(t, "R1", row.CustomerRef)
	assert.Equal(t, 1, row.SourcePage)
	assert.Equal(t, "2024-01-31", row.FetchDateTo)
	assert.Equal(t, "https://acme.example", *row.CustomerURL)
	assert.Nil(t, row.CustomerURL2)
	assert.JSONEq(t, `{"customer_name":"Acme","customer_ref":"R1","license_start":"2024-01-01","license_end":"2024-06-30","_source_page":1,"_fetch_date_from":"2024-01-01","_fetch_date_to":"2024-01-31","customer_url":"https://acme.example","customer_url2":null,"customer_url3":null}`, string(row.Payload))
}

func TestNewLicenseDetail_UnnamedIsNull(t *testing.T) {
	row, err := NewLicenseDetail(LicenseRecord{})
	require.NoError(t, err)
	assert.Nil(t, row.CustomerName)
	assert.Equal(t, "{}", string(row.Payload))
}

func TestJSONText_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A JSONText `json:"a"`
		B JSONText `json:"b"`
		C JSONText `json:"c"`
	}{A: `{"x":1}`, B: "", C: "not json"})
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"x":1},"b":null,"c":null}`, string(out))
}

func TestLicenseDetail_TableName(t *testing.T) {
	assert.Equal(t, "API_REPORT_LICENSE_DETAILS", LicenseDetail{}.TableName())
}
