package entity

// Feature flags understood by the directory.
const (
	FlagOrganizationLookupDetails = "ORGANIZATION_LOOKUP_DETAILS"
	FlagPractitionerLookupDetails = "PRACTITIONER_LOOKUP_DETAILS"
	FlagSearch                    = "SEARCH"
)

// FrontendSettings is the payload of GET /frontend_settings.
type FrontendSettings struct {
	RequireAuthentication bool            `json:"require_authentication"`
	User                  SettingsUser    `json:"user"`
	FeatureFlags          map[string]bool `json:"feature_flags"`
}

type SettingsUser struct {
	Username    string `json:"username"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// Enabled reports whether flag is set. A nil map has every flag off.
func (s FrontendSettings) Enabled(flag string) bool {
	return s.FeatureFlags[flag]
}

// Clone returns a copy sharing no map with s.
func (s FrontendSettings) Clone() FrontendSettings {
	out := s
	out.FeatureFlags = make(map[string]bool, len(s.FeatureFlags))
	for k, v := range s.FeatureFlags {
		out.FeatureFlags[k] = v
	}
	return out
}

// DetailsFlag returns the flag that withholds detail lookups for r.
func DetailsFlag(r ResourceType) string {
	switch r {
	case ResourceOrganization:
		return FlagOrganizationLookupDetails
	case ResourcePractitioner:
		return FlagPractitionerLookupDetails
	default:
		return ""
	}
}
