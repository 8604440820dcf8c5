package entity

// Practitioner is the subset of a FHIR Practitioner the directory displays.
type Practitioner struct {
	ResourceType    string         `json:"resourceType"`
	ID              string         `json:"id"`
	Identifier      []Identifier   `json:"identifier,omitempty"`
	Name            []HumanName    `json:"name,omitempty"`
	Address         []Address      `json:"address,omitempty"`
	Telecom         []ContactPoint `json:"telecom,omitempty"`
	Gender          string         `json:"gender,omitempty"`
	Active          bool           `json:"active"`
	DeceasedBoolean bool           `json:"deceasedBoolean"`
}

// DisplayName returns the first name's text.
func (p *Practitioner) DisplayName() string {
	if len(p.Name) > 0 && p.Name[0].Text != "" {
		return p.Name[0].Text
	}
	return "No name available"
}

// NPI returns the practitioner's NPI or "n/a".
func (p *Practitioner) NPI() string {
	return npi(p.Identifier)
}

// FormattedAddress returns the first address formatted for display.
func (p *Practitioner) FormattedAddress() string {
	if len(p.Address) == 0 {
		return ""
	}
	return p.Address[0].Format()
}

func (p *Practitioner) Phone() string { return telecom(p.Telecom, "phone") }

func (p *Practitioner) Fax() string { return telecom(p.Telecom, "fax") }

// Identifiers returns every identifier in display form.
func (p *Practitioner) Identifiers() []IdentifierSummary {
	return summarizeIdentifiers(p.Identifier)
}
