package catalog

import (
	"fmt"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet/api"
	"github.com/samber/lo"
)

// EmptyMode selects what happens when no known hazard is selected
type EmptyMode string

const (
	// EmptyAllow renders a sheet without hazard pictograms
	EmptyAllow EmptyMode = "allow"
	// EmptyFail rejects the request
	EmptyFail EmptyMode = "fail"
	// EmptyDefault substitutes a fixed hazard
	EmptyDefault EmptyMode = "default"
)

// EmptyPolicy is the caller-controlled behaviour for an empty hazard selection
type EmptyPolicy struct {
	Mode EmptyMode `json:"mode" yaml:"mode"`
	// Key is the substituted hazard for EmptyDefault; blank means the first configured hazard
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
}

func AllowEmpty() EmptyPolicy { return EmptyPolicy{Mode: EmptyAllow} }

func FailOnEmpty() EmptyPolicy { return EmptyPolicy{Mode: EmptyFail} }

func UseDefault(key string) EmptyPolicy { return EmptyPolicy{Mode: EmptyDefault, Key: key} }

// ParseEmptyPolicy parses "allow", "fail", "default" or "default:<key>"
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch s {
	case "", string(EmptyAllow):
		return AllowEmpty(), nil
	case string(EmptyFail):
		return FailOnEmpty(), nil
	case string(EmptyDefault):
		return UseDefault(""), nil
	}
	if key, ok := strings.CutPrefix(s, string(EmptyDefault)+":"); ok && key != "" {
		return UseDefault(key), nil
	}
	return EmptyPolicy{}, &api.ConfigurationError{Kind: "empty hazard policy", Key: s, Reason: "expected allow, fail, default or default:<key>"}
}

func (p EmptyPolicy) String() string {
	if p.Mode == EmptyDefault && p.Key != "" {
		return fmt.Sprintf("%s:%s", p.Mode, p.Key)
	}
	if p.Mode == "" {
		return string(EmptyAllow)
	}
	return string(p.Mode)
}

// Selection is the resolved, ordered content of one request
type Selection struct {
	Hazards []HazardIcon
	// Signs holds obligations followed by prohibitions, at most api.MaxSigns
	Signs []SignIcon
	Risk  RiskTemplate
	// Defaulted is set when the hazard list was substituted by the empty policy
	Defaulted bool
}

// Resolve maps the request keys onto catalog entries. Unknown and repeated
// keys are dropped, order is preserved, and signs beyond api.MaxSigns are
// discarded. A blank risk key selects the first configured risk; an unknown
// one is a ConfigurationError.
func (c *Catalog) Resolve(req api.Request, policy EmptyPolicy) (Selection, error) {
	var sel Selection

	riskKey := req.Risk
	if riskKey == "" {
		sel.Risk = c.DefaultRisk()
	} else {
		risk, ok := c.Risk(riskKey)
		if !ok {
			return Selection{}, &api.ConfigurationError{Kind: api.KindRisk, Key: riskKey}
		}
		sel.Risk = risk
	}

	for _, key := range lo.Uniq(req.Hazards) {
		if h, ok := c.Hazard(key); ok {
			sel.Hazards = append(sel.Hazards, h)
		} else {
			logger.Debugf("ignoring unknown hazard %q", key)
		}
	}

	for _, key := range lo.Uniq(req.Obligations) {
		if s, ok := c.Obligation(key); ok {
			sel.Signs = append(sel.Signs, s)
		} else {
			logger.Debugf("ignoring unknown obligation %q", key)
		}
	}
	for _, key := range lo.Uniq(req.Prohibitions) {
		if s, ok := c.Prohibition(key); ok {
			sel.Signs = append(sel.Signs, s)
		} else {
			logger.Debugf("ignoring unknown prohibition %q", key)
		}
	}
	if len(sel.Signs) > api.MaxSigns {
		logger.Debugf("dropping %d signs beyond the limit of %d", len(sel.Signs)-api.MaxSigns, api.MaxSigns)
		sel.Signs = sel.Signs[:api.MaxSigns]
	}

	if len(sel.Hazards) == 0 {
		switch policy.Mode {
		case EmptyFail:
			return Selection{}, &api.ConfigurationError{Kind: api.KindHazard, Reason: "no known hazard selected"}
		case EmptyDefault:
			h, ok := c.defaultHazard(policy.Key)
			if !ok {
				return Selection{}, &api.ConfigurationError{Kind: api.KindHazard, Key: policy.Key, Reason: "default hazard is not in the catalog"}
			}
			sel.Hazards = []HazardIcon{h}
			sel.Defaulted = true
		}
	}

	return sel, nil
}

func (c *Catalog) defaultHazard(key string) (HazardIcon, bool) {
	if key == "" {
		return c.DefaultHazard()
	}
	return c.Hazard(key)
}
