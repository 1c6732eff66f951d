package license

import (
	"encoding/json"
	"testing"

	"license-sync/core/record"
	"license-sync/feature/directory"
	"license-sync/feature/license/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func licenseRecords(t *testing.T, docs ...string) []models.LicenseRecord {
	t.Helper()
	out := make([]models.LicenseRecord, len(docs))
	for i, d := range docs {
		r, err := models.DecodeLicenseRecord(json.RawMessage(d))
		require.NoError(t, err)
		out[i] = r
	}
	return out
}

func clients(t *testing.T, docs ...string) []directory.Client {
	t.Helper()
	out := make([]directory.Client, len(docs))
	for i, d := range docs {
		fields, err := record.Decode(json.RawMessage(d))
		require.NoError(t, err)
		out[i] = directory.NewClient(fields)
	}
	return out
}

func TestEnrich_Scenario(t *testing.T) {
	records := licenseRecords(t,
		`{"customer_name":" Acme Corp ","seats":5}`,
		`{"customer_name":"Other","seats":1}`,
	)
	dir := clients(t, `{"name":"acme corp","source":"https://acme.example","alt_source":{"nested":true},"alt_source2":"https://alt.example"}`)

	out, stats := Enrich(records, dir)
	require.Len(t, out, 2)

	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 1, stats.NotMatched)
	assert.Equal(t, []string{"Other"}, stats.Unmatched)

	first, err := json.Marshal(out[0])
	require.NoError(t, err)
	assert.Equal(t, `{"customer_name":" Acme Corp ","seats":5,"customer_url":"https://acme.example","customer_url2":null,"customer_url3":"https://alt.example"}`, string(first))

	second, err := json.Marshal(out[1])
	require.NoError(t, err)
	assert.Equal(t, `{"customer_name":"Other","seats":1}`, string(second), "unmatched records carry no URL keys")
}

func TestEnrich_DoesNotMutateInput(t *testing.T) {
	records := licenseRecords(t, `{"customer_name":"Acme"}`)
	before, err := json.Marshal(records[0])
	require.NoError(t, err)

	out, _ := Enrich(records, clients(t, `{"name":"Acme","source":"a.com"}`))
	require.NotNil(t, out[0].URLs)

	assert.Nil(t, records[0].URLs)
	after, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestEnrich_LastWriteWins(t *testing.T) {
	out, stats := Enrich(
		licenseRecords(t, `{"customer_name":"acme"}`),
		clients(t, `{"name":"Acme","source":"a.com"}`, `{"name":"ACME ","source":"b.com"}`),
	)
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, "b.com", *out[0].URLs.URL)
}

func TestEnrich_UnkeyableNames(t *testing.T) {
	out, stats := Enrich(
		licenseRecords(t, `{"seats":1}`, `{"customer_name":"   "}`),
		clients(t, `{"name":"","source":"empty.com"}`, `{"name":"  ","source":"blank.com"}`),
	)
	assert.Zero(t, stats.Matched)
	assert.Equal(t, 2, stats.NotMatched)
	assert.Equal(t, []string{"   "}, stats.Unmatched, "blank names are sampled, empty names are not")
	for _, r := range out {
		assert.Nil(t, r.URLs)
	}
}

func TestEnrich_SampleIsCapped(t *testing.T) {
	var docs []string
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		docs = append(docs, `{"customer_name":"`+n+`"}`)
	}

	_, stats := Enrich(licenseRecords(t, docs...), nil)
	assert.Equal(t, 7, stats.NotMatched)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, stats.Unmatched)
}

func TestEnrich_Empty(t *testing.T) {
	out, stats := Enrich(nil, nil)
	assert.Empty(t, out)
	assert.Zero(t, stats.Matched)
	assert.Zero(t, stats.NotMatched)
}
