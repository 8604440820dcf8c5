package entity

// Organization is the subset of a FHIR Organization the directory displays.
type Organization struct {
	ResourceType string       `json:"resourceType"`
	ID           string       `json:"id"`
	Identifier   []Identifier `json:"identifier,omitempty"`
	Name         string       `json:"name"`
	Contact      []Contact    `json:"contact,omitempty"`
}

// NPI returns the organization's NPI or "n/a".
func (o *Organization) NPI() string {
	return npi(o.Identifier)
}

// MailingAddress returns the first contact's formatted address.
func (o *Organization) MailingAddress() string {
	if c := o.primaryContact(); c != nil {
		return c.Address.Format()
	}
	return ""
}

// AuthorizedOfficial returns the first contact's display name.
func (o *Organization) AuthorizedOfficial() string {
	if c := o.primaryContact(); c != nil && c.Name != nil {
		return c.Name.Text
	}
	return ""
}

// AuthorizedPhone returns the first contact's phone number.
func (o *Organization) AuthorizedPhone() string {
	if c := o.primaryContact(); c != nil {
		return telecom(c.Telecom, "phone")
	}
	return ""
}

// Identifiers returns every identifier in display form.
func (o *Organization) Identifiers() []IdentifierSummary {
	return summarizeIdentifiers(o.Identifier)
}

// DisplayName implements Named.
func (o *Organization) DisplayName() string {
	return o.Name
}

func (o *Organization) primaryContact() *Contact {
	if len(o.Contact) == 0 {
		return nil
	}
	return &o.Contact[0]
}
