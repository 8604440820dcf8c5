package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceType(t *testing.T) {
	tests := []struct {
		in   string
		want ResourceType
	}{
		{in: "Organization", want: ResourceOrganization},
		{in: "organizations", want: ResourceOrganization},
		{in: "PRACTITIONER", want: ResourcePractitioner},
		{in: "practitioners", want: ResourcePractitioner},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseResourceType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseResourceType("locations")
	assert.True(t, errors.Is(err, ErrUnknownResource))
}

func TestResourceType_Collection(t *testing.T) {
	assert.Equal(t, "organizations", ResourceOrganization.Collection())
	assert.Equal(t, "practitioners", ResourcePractitioner.Collection())
	assert.True(t, ResourcePractitioner.Valid())
	assert.False(t, ResourceType("Location").Valid())
}
