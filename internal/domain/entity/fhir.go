package entity

import "strings"

// NPI identifier systems recognized by the directory.
const (
	NPISystemNamingSystem = "http://terminology.hl7.org/NamingSystem/npi"
	NPISystemUSNPI        = "http://hl7.org/fhir/sid/us-npi"
)

// notAvailable is displayed in place of a missing NPI.
const notAvailable = "n/a"

type Identifier struct {
	Use    string          `json:"use,omitempty"`
	Type   CodeableConcept `json:"type"`
	System string          `json:"system"`
	Value  string          `json:"value"`
	Period Period          `json:"period"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
}

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type Address struct {
	Line       []string `json:"line,omitempty"`
	City       string   `json:"city,omitempty"`
	State      string   `json:"state,omitempty"`
	PostalCode string   `json:"postalCode,omitempty"`
	Country    string   `json:"country,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Text   string   `json:"text,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
}

type ContactPoint struct {
	System string `json:"system"`
	Value  string `json:"value"`
	Use    string `json:"use,omitempty"`
}

type Contact struct {
	Name    *HumanName     `json:"name,omitempty"`
	Telecom []ContactPoint `json:"telecom,omitempty"`
	Address *Address       `json:"address,omitempty"`
}

// IdentifierSummary is the display form of an Identifier.
type IdentifierSummary struct {
	Type    string `json:"type"`
	Number  string `json:"number"`
	Details string `json:"details"`
	System  string `json:"system"`
}

// Format renders the address as street lines followed by
// "city, state, postalCode", one per line. Empty parts are skipped.
func (a *Address) Format() string {
	if a == nil {
		return ""
	}
	var cityStateZip []string
	for _, s := range []string{a.City, a.State, a.PostalCode} {
		if s != "" {
			cityStateZip = append(cityStateZip, s)
		}
	}
	lines := make([]string, 0, len(a.Line)+1)
	for _, l := range a.Line {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(cityStateZip) > 0 {
		lines = append(lines, strings.Join(cityStateZip, ", "))
	}
	return strings.Join(lines, "\n")
}

// npi returns the first NPI identifier value, or "n/a".
func npi(ids []Identifier) string {
	for _, id := range ids {
		if id.System == NPISystemNamingSystem || id.System == NPISystemUSNPI {
			if id.Value != "" {
				return id.Value
			}
			break
		}
	}
	return notAvailable
}

func summarizeIdentifiers(ids []Identifier) []IdentifierSummary {
	out := make([]IdentifierSummary, 0, len(ids))
	for _, id := range ids {
		s := IdentifierSummary{Type: "Unknown", Number: id.Value, System: id.System}
		if len(id.Type.Coding) > 0 && id.Type.Coding[0].Display != "" {
			s.Type = id.Type.Coding[0].Display
		}
		if id.Period.Start != "" {
			s.Details = "Active, Received " + formatDate(id.Period.Start)
		}
		out = append(out, s)
	}
	return out
}

func telecom(points []ContactPoint, system string) string {
	for _, p := range points {
		if p.System == system {
			return p.Value
		}
	}
	return ""
}
