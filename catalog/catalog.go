// Package catalog holds the static hazard, sign and risk template metadata a
// door sheet is composed from.
//
// A Catalog is built once (from the built-in defaults, a YAML file, or
// directly in tests) and is immutable afterwards, so a single value can be
// shared by concurrent requests.
package catalog

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/flanksource/doorsheet/api"
)

// HazardIcon is one hazard pictogram with its caption lines
type HazardIcon struct {
	Key   string   `json:"key" yaml:"key"`
	Label string   `json:"label" yaml:"label"`
	Lines []string `json:"lines,omitempty" yaml:"lines,omitempty"`
	Icon  string   `json:"icon" yaml:"icon"`
	Info  string   `json:"info,omitempty" yaml:"info,omitempty"`
}

// CaptionLines returns the explicit caption lines, or the label as a single line
func (h HazardIcon) CaptionLines() []string {
	if len(h.Lines) > 0 {
		return h.Lines
	}
	return []string{h.Label}
}

// SignKind distinguishes obligation from prohibition signs
type SignKind string

const (
	Obligation  SignKind = "obligation"
	Prohibition SignKind = "prohibition"
)

// SignIcon is an obligation or prohibition pictogram
type SignIcon struct {
	Key   string   `json:"key" yaml:"key"`
	Label string   `json:"label" yaml:"label"`
	Icon  string   `json:"icon" yaml:"icon"`
	Info  string   `json:"info,omitempty" yaml:"info,omitempty"`
	Kind  SignKind `json:"kind" yaml:"kind"`
}

// RiskTemplate is a risk level and the single-page base document it renders onto
type RiskTemplate struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	Template string `json:"template" yaml:"template"`
	Info     string `json:"info,omitempty" yaml:"info,omitempty"`
}

// Catalog is the immutable set of everything a request may select from.
// Hazard and risk order is significant: the first entry of each is the
// default used by empty-selection policies.
type Catalog struct {
	hazards      []HazardIcon
	obligations  []SignIcon
	prohibitions []SignIcon
	risks        []RiskTemplate

	hazardIndex      map[string]int
	obligationIndex  map[string]int
	prohibitionIndex map[string]int
	riskIndex        map[string]int
}

// New validates and indexes the given entries. Keys are lower-cased and
// trimmed, and must be non-empty and unique within their own list.
func New(hazards []HazardIcon, obligations, prohibitions []SignIcon, risks []RiskTemplate) (*Catalog, error) {
	c := &Catalog{
		hazards:      append([]HazardIcon(nil), hazards...),
		obligations:  append([]SignIcon(nil), obligations...),
		prohibitions: append([]SignIcon(nil), prohibitions...),
		risks:        append([]RiskTemplate(nil), risks...),
	}

	for i := range c.hazards {
		c.hazards[i].Key = normalizeKey(c.hazards[i].Key)
	}
	for i := range c.obligations {
		c.obligations[i].Key = normalizeKey(c.obligations[i].Key)
	}
	for i := range c.prohibitions {
		c.prohibitions[i].Key = normalizeKey(c.prohibitions[i].Key)
	}
	for i := range c.risks {
		c.risks[i].Key = normalizeKey(c.risks[i].Key)
	}

	var err error
	if c.hazardIndex, err = index(api.KindHazard, len(c.hazards), func(i int) string { return c.hazards[i].Key }); err != nil {
		return nil, err
	}
	if c.obligationIndex, err = index(api.KindObligation, len(c.obligations), func(i int) string { return c.obligations[i].Key }); err != nil {
		return nil, err
	}
	if c.prohibitionIndex, err = index(api.KindProhibition, len(c.prohibitions), func(i int) string { return c.prohibitions[i].Key }); err != nil {
		return nil, err
	}
	if c.riskIndex, err = index(api.KindRisk, len(c.risks), func(i int) string { return c.risks[i].Key }); err != nil {
		return nil, err
	}
	if len(c.risks) == 0 {
		return nil, &api.ConfigurationError{Kind: api.KindRisk, Reason: "catalog has no risk templates"}
	}

	for i := range c.obligations {
		c.obligations[i].Kind = Obligation
	}
	for i := range c.prohibitions {
		c.prohibitions[i].Kind = Prohibition
	}

	return c, nil
}

// normalizeKey matches the form request keys take after api.Request.Normalize
func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func index(kind string, n int, key func(int) string) (map[string]int, error) {
	idx := make(map[string]int, n)
	for i := 0; i < n; i++ {
		k := key(i)
		if strings.TrimSpace(k) == "" {
			return nil, &api.ConfigurationError{Kind: kind, Key: k, Reason: fmt.Sprintf("entry %d has an empty key", i)}
		}
		if _, dup := idx[k]; dup {
			return nil, &api.ConfigurationError{Kind: kind, Key: k, Reason: "duplicate key (keys are case-insensitive)"}
		}
		idx[k] = i
	}
	return idx, nil
}

// Hazard looks up a hazard by key
func (c *Catalog) Hazard(key string) (HazardIcon, bool) {
	i, ok := c.hazardIndex[normalizeKey(key)]
	if !ok {
		return HazardIcon{}, false
	}
	return c.hazards[i], true
}

// Obligation looks up an obligation sign by key
func (c *Catalog) Obligation(key string) (SignIcon, bool) {
	i, ok := c.obligationIndex[normalizeKey(key)]
	if !ok {
		return SignIcon{}, false
	}
	return c.obligations[i], true
}

// Prohibition looks up a prohibition sign by key
func (c *Catalog) Prohibition(key string) (SignIcon, bool) {
	i, ok := c.prohibitionIndex[normalizeKey(key)]
	if !ok {
		return SignIcon{}, false
	}
	return c.prohibitions[i], true
}

// Risk looks up a risk template by key
func (c *Catalog) Risk(key string) (RiskTemplate, bool) {
	i, ok := c.riskIndex[normalizeKey(key)]
	if !ok {
		return RiskTemplate{}, false
	}
	return c.risks[i], true
}

// DefaultRisk returns the first configured risk template
func (c *Catalog) DefaultRisk() RiskTemplate { return c.risks[0] }

// DefaultHazard returns the first configured hazard, if any
func (c *Catalog) DefaultHazard() (HazardIcon, bool) {
	if len(c.hazards) == 0 {
		return HazardIcon{}, false
	}
	return c.hazards[0], true
}

// Hazards returns the hazards sorted by label, case-insensitively
func (c *Catalog) Hazards() []HazardIcon {
	out := append([]HazardIcon(nil), c.hazards...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label)
	})
	return out
}

// Obligations returns the obligation signs sorted by label
func (c *Catalog) Obligations() []SignIcon { return sortedSigns(c.obligations) }

// Prohibitions returns the prohibition signs sorted by label
func (c *Catalog) Prohibitions() []SignIcon { return sortedSigns(c.prohibitions) }

// Risks returns the risk templates in configured order
func (c *Catalog) Risks() []RiskTemplate { return append([]RiskTemplate(nil), c.risks...) }

func sortedSigns(in []SignIcon) []SignIcon {
	out := append([]SignIcon(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label)
	})
	return out
}

// Fingerprint returns a stable digest of the catalog content, used to key
// caches of rendered sheets.
func (c *Catalog) Fingerprint() string {
	data, _ := json.Marshal(struct {
		H []HazardIcon
		O []SignIcon
		P []SignIcon
		R []RiskTemplate
	}{c.hazards, c.obligations, c.prohibitions, c.risks})
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
