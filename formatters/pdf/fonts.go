package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/flanksource/doorsheet/api"
	"github.com/jung-kurt/gofpdf"
	"github.com/samber/lo"
)

// coreFamilies are the standard PDF text fonts gofpdf ships metrics for
var coreFamilies = []string{"helvetica", "arial", "times", "courier"}

// FontSet selects the faces used for every text run on a sheet. With no TTF
// files the family must be one of the PDF core fonts; with TTF files both
// faces are embedded under Family.
type FontSet struct {
	Family  string `json:"family" yaml:"family"`
	Regular string `json:"regular,omitempty" yaml:"regular,omitempty"`
	Bold    string `json:"bold,omitempty" yaml:"bold,omitempty"`
}

// DefaultFontSet uses the Helvetica core font
func DefaultFontSet() FontSet {
	return FontSet{Family: "Helvetica"}
}

// Embedded reports whether the set carries its own TTF files
func (f FontSet) Embedded() bool {
	return f.Regular != "" || f.Bold != ""
}

// Validate checks the set once, before any page is drawn
func (f FontSet) Validate() error {
	if strings.TrimSpace(f.Family) == "" {
		return &api.ConfigurationError{Kind: api.KindFont, Key: f.Family, Reason: "family is required"}
	}
	if !f.Embedded() {
		if !lo.Contains(coreFamilies, strings.ToLower(f.Family)) {
			return &api.ConfigurationError{Kind: api.KindFont, Key: f.Family, Reason: "not a core font, provide regular and bold TTF files"}
		}
		return nil
	}
	if f.Regular == "" || f.Bold == "" {
		return &api.ConfigurationError{Kind: api.KindFont, Key: f.Family, Reason: "both regular and bold TTF files are required"}
	}
	for _, file := range []string{f.Regular, f.Bold} {
		if _, err := os.Stat(file); err != nil {
			if os.IsNotExist(err) {
				return &api.AssetMissingError{Kind: api.KindFont, Path: file}
			}
			return fmt.Errorf("failed to stat font %s: %w", file, err)
		}
	}
	return nil
}

// register makes both faces available on doc and returns the translator
// text must go through before it is measured or drawn
func (f FontSet) register(doc *gofpdf.Fpdf) (func(string) string, error) {
	if !f.Embedded() {
		return doc.UnicodeTranslatorFromDescriptor(""), nil
	}
	doc.AddUTF8Font(f.Family, string(api.FontRegular), f.Regular)
	doc.AddUTF8Font(f.Family, string(api.FontBold), f.Bold)
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", f.Family, err)
	}
	return func(s string) string { return s }, nil
}
