package sorting_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provider-directory/internal/common/sorting"
)

func TestRegistry_DefaultIsFirstOption(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "name-asc", sorting.Organization.DefaultKey())
	assert.Equal(t, "name-asc", sorting.Practitioner.DefaultKey())
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "registered key", key: "name-desc", want: "name-desc"},
		{name: "empty key uses default", key: "", want: "name-asc"},
		{name: "unknown key uses default", key: "npi-asc", want: "name-asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sorting.Organization.Resolve(tt.key))
		})
	}
}

func TestRegistry_BackendValue(t *testing.T) {
	t.Parallel()

	v, ok := sorting.Organization.BackendValue("name-desc")
	require.True(t, ok)
	assert.Equal(t, "-organizationtoname__name", v)

	_, ok = sorting.Organization.BackendValue("bogus")
	assert.False(t, ok)
}

func TestRegistry_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, sorting.Practitioner.Validate("name-asc"))

	err := sorting.Practitioner.Validate("zip-asc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sorting.ErrUnknownSortKey))
}

func TestRegistry_OptionsKeepOrder(t *testing.T) {
	t.Parallel()

	opts := sorting.Organization.Options()
	require.Len(t, opts, 2)
	assert.Equal(t, "Name (A-Z)", opts[0].Label)
	assert.Equal(t, "Name (Z-A)", opts[1].Label)

	opts[0].Key = "mutated"
	assert.Equal(t, "name-asc", sorting.Organization.Options()[0].Key)
}

func TestRegistry_WithDefault(t *testing.T) {
	t.Parallel()

	r, err := sorting.Organization.WithDefault("name-desc")
	require.NoError(t, err)
	assert.Equal(t, "name-desc", r.DefaultKey())
	assert.Equal(t, "name-asc", sorting.Organization.DefaultKey())

	_, err = sorting.Organization.WithDefault("missing")
	assert.ErrorIs(t, err, sorting.ErrUnknownSortKey)
}

func TestNewRegistry_PanicsOnDuplicate(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		sorting.NewRegistry(sorting.Option{Key: "a"}, sorting.Option{Key: "a"})
	})
	assert.Panics(t, func() { sorting.NewRegistry() })
}
