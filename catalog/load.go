package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flanksource/commons/logger"
	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog format. Paths are relative to Root, which is
// itself relative to the directory containing the file. Omitted hazard or
// risk lists fall back to the built-in ones; signs listed explicitly are
// appended after the discovered ones.
type File struct {
	Root            string         `yaml:"root,omitempty"`
	Hazards         []HazardIcon   `yaml:"hazards,omitempty"`
	Risks           []RiskTemplate `yaml:"risks,omitempty"`
	ObligationsDir  string         `yaml:"obligations_dir,omitempty"`
	ProhibitionsDir string         `yaml:"prohibitions_dir,omitempty"`
	Obligations     []SignIcon     `yaml:"obligations,omitempty"`
	Prohibitions    []SignIcon     `yaml:"prohibitions,omitempty"`
}

// Load reads a YAML catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	root := file.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(path), root)
	}
	logger.Debugf("loading catalog %s with asset root %s", path, root)
	return file.Build(root)
}

// Build resolves the file against root and constructs the Catalog
func (f File) Build(root string) (*Catalog, error) {
	hazards := f.Hazards
	if len(hazards) == 0 {
		hazards = DefaultHazards
	}
	risks := f.Risks
	if len(risks) == 0 {
		risks = DefaultRisks
	}

	obligationsDir := f.ObligationsDir
	if obligationsDir == "" {
		obligationsDir = ObligationDir
	}
	prohibitionsDir := f.ProhibitionsDir
	if prohibitionsDir == "" {
		prohibitionsDir = ProhibitionDir
	}

	obligations, err := DiscoverSigns(resolve(root, obligationsDir), nil)
	if err != nil {
		return nil, err
	}
	prohibitions, err := DiscoverSigns(resolve(root, prohibitionsDir), ProhibitionInfo)
	if err != nil {
		return nil, err
	}
	obligations = append(obligations, resolveSigns(root, f.Obligations)...)
	prohibitions = append(prohibitions, resolveSigns(root, f.Prohibitions)...)

	return New(resolveHazards(root, hazards), obligations, prohibitions, resolveRisks(root, risks))
}

func resolveSigns(root string, in []SignIcon) []SignIcon {
	out := make([]SignIcon, len(in))
	for i, s := range in {
		s.Icon = resolve(root, s.Icon)
		if s.Info == "" {
			s.Info = s.Label
		}
		out[i] = s
	}
	return out
}
