package models

import (
	"encoding/json"
)

// TableLicenseDetails is the table holding ingested license records.
const TableLicenseDetails = "API_REPORT_LICENSE_DETAILS"

// JSONText is a text column holding a JSON document. It is embedded as-is in API
// responses; an empty or invalid document is written as null.
type JSONText string

// MarshalJSON implements json.Marshaler.
func (t JSONText) MarshalJSON() ([]byte, error) {
	if t == "" || !json.Valid([]byte(t)) {
		return []byte("null"), nil
	}
	return []byte(t), nil
}

// LicenseDetail is a stored license record.
type LicenseDetail struct {
	ID            uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerName  *string  `gorm:"column:customer_name;type:varchar(255);index" json:"customer_name"`
	CustomerRef   string   `gorm:"column:customer_ref;type:varchar(255)" json:"customer_ref"`
	LicenseStart  string   `gorm:"column:license_start;type:varchar(32)" json:"license_start"`
	LicenseEnd    string   `gorm:"column:license_end;type:varchar(32)" json:"license_end"`
	CustomerURL   *string  `gorm:"column:customer_url;type:varchar(1024)" json:"customer_url"`
	CustomerURL2  *string  `gorm:"column:customer_url2;type:varchar(1024)" json:"customer_url2"`
	CustomerURL3  *string  `gorm:"column:customer_url3;type:varchar(1024)" json:"customer_url3"`
	SourcePage    int      `gorm:"column:source_page;type:int" json:"source_page"`
	FetchDateFrom string   `gorm:"column:fetch_date_from;type:varchar(32);index:idx_fetch_window" json:"fetch_date_from"`
	FetchDateTo   string   `gorm:"column:fetch_date_to;type:varchar(32);index:idx_fetch_window" json:"fetch_date_to"`
	Payload       JSONText `gorm:"column:payload;type:text" json:"payload"`
}

// TableName overrides the table name used by LicenseDetail.
func (LicenseDetail) TableName() string {
	return TableLicenseDetails
}

// Customer is one entry of the distinct customer list.
type Customer struct {
	CustomerName string `gorm:"column:customer_name" json:"customer_name"`
}

// NewLicenseDetail converts an (optionally enriched) record into a table row.
func NewLicenseDetail(r LicenseRecord) (LicenseDetail, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return LicenseDetail{}, err
	}

	row := LicenseDetail{
		CustomerRef:  r.CustomerRef,
		LicenseStart: r.LicenseStart,
		LicenseEnd:   r.LicenseEnd,
		Payload:      JSONText(payload),
	}
	if r.CustomerName != "" {
		name := r.CustomerName
		row.CustomerName = &name
	}
	if p := r.Provenance; p != nil {
		row.SourcePage = p.SourcePage
		row.FetchDateFrom = p.FetchDateFrom
		row.FetchDateTo = p.FetchDateTo
	}
	if u := r.URLs; u != nil {
		row.CustomerURL, row.CustomerURL2, row.CustomerURL3 = u.URL, u.URL2, u.URL3
	}
	return row, nil
}

// NewLicenseDetails converts records in order.
func NewLicenseDetails(records []LicenseRecord) ([]LicenseDetail, error) {
	rows := make([]LicenseDetail, 0, len(records))
	for _, r := range records {
		row, err := NewLicenseDetail(r)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
