package directory

import (
	"license-sync/core/record"
	"license-sync/feature/license/models"
)

// Client is one entry of the remote client directory.
type Client struct {
	ID   string
	Ref  string
	Name string

	// Source, AltSource and AltSource2 are loosely typed upstream: usually a string,
	// sometimes null, an object or an array.
	Source     record.Value
	AltSource  record.Value
	AltSource2 record.Value

	Fields record.Fields
}

// NewClient extracts the known directory fields from a field bag.
func NewClient(fields record.Fields) Client {
	return Client{
		ID:         fields.String("id"),
		Ref:        fields.String("ref"),
		Name:       fields.String("name"),
		Source:     fields.Value("source"),
		AltSource:  fields.Value("alt_source"),
		AltSource2: fields.Value("alt_source2"),
		Fields:     fields,
	}
}

// URLs maps the source fields to customer URLs. Only string values become URLs.
func (c Client) URLs() models.CustomerURLs {
	return models.CustomerURLs{
		URL:  c.Source.URL(),
		URL2: c.AltSource.URL(),
		URL3: c.AltSource2.URL(),
	}
}

// MarshalJSON writes the directory entry as received.
func (c Client) MarshalJSON() ([]byte, error) {
	return c.Fields.MarshalJSON()
}

// ClientName returns the name a client is indexed under.
func ClientName(c Client) string {
	return c.Name
}
