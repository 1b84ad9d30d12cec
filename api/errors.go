package api

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a key that is not part of the configured
// catalog, or a configuration value that cannot be used.
type ConfigurationError struct {
	Kind   string
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Key, e.Reason)
	}
	return fmt.Sprintf("unsupported %s: %s", e.Kind, e.Key)
}

// AssetMissingError reports a template or icon file that is absent at render time
type AssetMissingError struct {
	Kind string
	Path string
}

func (e *AssetMissingError) Error() string {
	return fmt.Sprintf("%s not found at: %s", e.Kind, e.Path)
}

// MalformedTemplateError reports a template document that cannot serve as a base page
type MalformedTemplateError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedTemplateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("template %s is malformed: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("template %s is malformed: %s", e.Path, e.Reason)
}

func (e *MalformedTemplateError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err wraps a *ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsAssetMissing reports whether err wraps an *AssetMissingError
func IsAssetMissing(err error) bool {
	var target *AssetMissingError
	return errors.As(err, &target)
}

// IsMalformedTemplate reports whether err wraps a *MalformedTemplateError
func IsMalformedTemplate(err error) bool {
	var target *MalformedTemplateError
	return errors.As(err, &target)
}
