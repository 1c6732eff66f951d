package models

import (
	"bytes"
	"encoding/json"

	"license-sync/core/record"
)

// Keys added to a license record on top of the remote payload.
const (
	KeySourcePage    = "_source_page"
	KeyFetchDateFrom = "_fetch_date_from"
	KeyFetchDateTo   = "_fetch_date_to"
	KeyCustomerURL   = "customer_url"
	KeyCustomerURL2  = "customer_url2"
	KeyCustomerURL3  = "customer_url3"
)

// Provenance records where a license record was fetched from.
type Provenance struct {
	SourcePage    int
	FetchDateFrom string
	FetchDateTo   string
}

// CustomerURLs are the three URL columns copied from the client directory.
// A nil pointer is written as null.
type CustomerURLs struct {
	URL  *string `json:"customer_url"`
	URL2 *string `json:"customer_url2"`
	URL3 *string `json:"customer_url3"`
}

// LicenseRecord is one row of the license details report.
type LicenseRecord struct {
	CustomerName string
	CustomerRef  string
	LicenseStart string
	LicenseEnd   string

	// Fields is the payload exactly as the remote API sent it.
	Fields     record.Fields
	Provenance *Provenance
	// URLs is nil until the record has been matched against the directory.
	URLs *CustomerURLs
}

// DecodeLicenseRecord builds a record from one element of the remote license array.
func DecodeLicenseRecord(raw json.RawMessage) (LicenseRecord, error) {
	fields, err := record.Decode(raw)
	if err != nil {
		return LicenseRecord{}, err
	}
	return NewLicenseRecord(fields), nil
}

// NewLicenseRecord extracts the known fields from a field bag.
func NewLicenseRecord(fields record.Fields) LicenseRecord {
	name := fields.String("customer_name")
	if name == "" {
		name = fields.String("customerName")
	}

	return LicenseRecord{
		CustomerName: name,
		CustomerRef:  text(fields.Value("customer_ref")),
		LicenseStart: text(fields.Value("license_start")),
		LicenseEnd:   text(fields.Value("license_end")),
		Fields:       fields,
	}
}

// WithURLs returns a copy of r carrying urls. r is not modified.
func (r LicenseRecord) WithURLs(urls CustomerURLs) LicenseRecord {
	r.URLs = &urls
	return r
}

// MarshalJSON writes the payload fields in source order, then provenance, then URLs.
// Keys the record sets itself replace same-named payload keys.
func (r LicenseRecord) MarshalJSON() ([]byte, error) {
	var drop []string
	if r.Provenance != nil {
		drop = append(drop, KeySourcePage, KeyFetchDateFrom, KeyFetchDateTo)
	}
	if r.URLs != nil {
		drop = append(drop, KeyCustomerURL, KeyCustomerURL2, KeyCustomerURL3)
	}

	fields := r.Fields
	if len(drop) > 0 {
		fields = fields.Without(drop...)
	}

	var extra record.Fields
	if p := r.Provenance; p != nil {
		extra = append(extra,
			field(KeySourcePage, p.SourcePage),
			field(KeyFetchDateFrom, p.FetchDateFrom),
			field(KeyFetchDateTo, p.FetchDateTo),
		)
	}
	if u := r.URLs; u != nil {
		extra = append(extra,
			field(KeyCustomerURL, u.URL),
			field(KeyCustomerURL2, u.URL2),
			field(KeyCustomerURL3, u.URL3),
		)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := fields.AppendJSON(&buf, true); err != nil {
		return nil, err
	}
	if err := extra.AppendJSON(&buf, len(fields) == 0); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func field(key string, v any) record.Field {
	raw, _ := json.Marshal(v)
	return record.Field{Key: key, Value: raw}
}

// text renders scalars as text: strings as-is, numbers and bools as their JSON literal.
func text(v record.Value) string {
	switch v.Kind() {
	case record.KindString:
		s, _ := v.Str()
		return s
	case record.KindOther:
		raw := bytes.TrimSpace(v.Raw())
		if len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
			return ""
		}
		return string(raw)
	default:
		return ""
	}
}
