package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	cfg := fmt.Errorf("resolve: %w", &ConfigurationError{Kind: KindRisk, Key: "extreme"})
	asset := fmt.Errorf("hazard laser: %w", &AssetMissingError{Kind: KindIcon, Path: "hazards/laser.png"})
	cause := errors.New("xref table broken")
	malformed := &MalformedTemplateError{Path: "risks/minimal.pdf", Reason: "cannot be parsed", Err: cause}

	assert.True(t, IsConfigurationError(cfg))
	assert.False(t, IsConfigurationError(asset))
	assert.True(t, IsAssetMissing(asset))
	assert.False(t, IsAssetMissing(malformed))
	assert.True(t, IsMalformedTemplate(malformed))
	assert.ErrorIs(t, malformed, cause)

	assert.EqualError(t, cfg, "resolve: unsupported risk type: extreme")
	assert.EqualError(t, &ConfigurationError{Kind: KindFont, Key: "Arial", Reason: "missing TTF"}, `invalid font "Arial": missing TTF`)
	assert.EqualError(t, asset, "hazard laser: icon not found at: hazards/laser.png")
	assert.EqualError(t, malformed, "template risks/minimal.pdf is malformed: cannot be parsed: xref table broken")
}
