package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https host", url: "https://npd.example.gov"},
		{name: "http localhost with port", url: "http://localhost:8000"},
		{name: "path prefix", url: "https://example.gov/api"},
		{name: "empty", url: "", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.gov", wantErr: true},
		{name: "missing host", url: "http://", wantErr: true},
		{name: "query string", url: "https://example.gov/?a=1", wantErr: true},
		{name: "too long", url: "https://example.gov/" + strings.Repeat("a", 2048), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateResourceID(t *testing.T) {
	assert.NoError(t, ValidateResourceID("a1b2-c3.d4"))

	for _, id := range []string{"", "../etc", "has space", strings.Repeat("x", 65)} {
		err := ValidateResourceID(id)
		assert.Error(t, err, id)
		assert.True(t, errors.Is(err, ErrInvalidInput), id)
	}
}
