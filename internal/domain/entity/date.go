package entity

import "time"

// formatDate renders a FHIR date or dateTime as "January 2, 2006".
// Unparseable input is returned unchanged.
func formatDate(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return s
}
