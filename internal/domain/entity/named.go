package entity

// Named is implemented by every directory record so generic views can
// list results without knowing the resource type.
type Named interface {
	RecordID() string
	DisplayName() string
	NPI() string
	// Location is the address shown in result listings.
	Location() string
	Details() RecordDetails
}

var (
	_ Named = (*Organization)(nil)
	_ Named = (*Practitioner)(nil)
)

// RecordID returns the FHIR logical id.
func (o *Organization) RecordID() string { return o.ID }

// Location returns the mailing address.
func (o *Organization) Location() string { return o.MailingAddress() }

// RecordID returns the FHIR logical id.
func (p *Practitioner) RecordID() string { return p.ID }

// Location returns the practice address.
func (p *Practitioner) Location() string { return p.FormattedAddress() }

// RecordDetails holds the fields shown on a record's detail view.
type RecordDetails struct {
	AuthorizedOfficial string              `json:"authorized_official,omitempty"`
	Phone              string              `json:"phone,omitempty"`
	Fax                string              `json:"fax,omitempty"`
	Identifiers        []IdentifierSummary `json:"identifiers"`
}

// Details returns the organization's detail fields.
func (o *Organization) Details() RecordDetails {
	return RecordDetails{
		AuthorizedOfficial: o.AuthorizedOfficial(),
		Phone:              o.AuthorizedPhone(),
		Identifiers:        o.Identifiers(),
	}
}

// Details returns the practitioner's detail fields.
func (p *Practitioner) Details() RecordDetails {
	return RecordDetails{
		Phone:       p.Phone(),
		Fax:         p.Fax(),
		Identifiers: p.Identifiers(),
	}
}
