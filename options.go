package doorsheet

import (
	"time"

	"github.com/flanksource/doorsheet/catalog"
)

// Options controls how a Generator resolves and names sheets
type Options struct {
	// EmptyPolicy decides what happens when no known hazard is selected
	EmptyPolicy catalog.EmptyPolicy `json:"empty_policy"`
	// LegacyNaming names files after the first hazard instead of the research groups
	LegacyNaming bool `json:"legacy_naming,omitempty"`
	// Debug outlines every layout region on top of the sheet
	Debug bool `json:"debug,omitempty"`
	// Cache stores rendered sheets, disabled when its TTL is 0
	Cache CacheConfig `json:"-"`
}

// DefaultOptions allows empty hazard selections and disables the cache
func DefaultOptions() Options {
	return Options{EmptyPolicy: catalog.AllowEmpty()}
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	TTL    time.Duration // Cache time-to-live (0 means no caching)
	DBPath string        // Database file path
}
