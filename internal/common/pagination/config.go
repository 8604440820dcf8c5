// Package pagination holds the URL parameter codec and the pagination
// calculator shared by every directory search surface.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage     int // Page used when the URL carries none (1)
	DefaultPageSize int // Page size used when the URL carries none (10)
	MaxPageSize     int // Upper bound enforced before a request leaves for the backend
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, page_size=10, max=100
func DefaultConfig() Config {
	return Config{
		DefaultPage:     1,
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_PAGE: Default page number
//   - PAGINATION_DEFAULT_PAGE_SIZE: Default items per page
//   - PAGINATION_MAX_PAGE_SIZE: Maximum items per backend request
//
// Values that are missing, non-numeric or non-positive fall back to DefaultConfig().
func LoadFromEnv() Config {
	def := DefaultConfig()
	return Config{
		DefaultPage:     getEnvAsPositiveInt("PAGINATION_DEFAULT_PAGE", def.DefaultPage),
		DefaultPageSize: getEnvAsPositiveInt("PAGINATION_DEFAULT_PAGE_SIZE", def.DefaultPageSize),
		MaxPageSize:     getEnvAsPositiveInt("PAGINATION_MAX_PAGE_SIZE", def.MaxPageSize),
	}
}

func getEnvAsPositiveInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 1 {
		return defaultValue
	}
	return val
}
