package api

import (
	"strings"

	"github.com/samber/lo"
)

// Contact is a name/phone pair printed on the sheet
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// IsEmpty reports whether both fields are blank
func (c Contact) IsEmpty() bool {
	return strings.TrimSpace(c.Name) == "" && strings.TrimSpace(c.Phone) == ""
}

// Request carries every caller-provided input of one door sheet. All fields
// are free-form and optional except Risk, which defaults to the first
// configured risk template when blank.
type Request struct {
	Hazards        []string   `json:"hazards,omitempty" yaml:"hazards,omitempty"`
	Obligations    []string   `json:"obligations,omitempty" yaml:"obligations,omitempty"`
	Prohibitions   []string   `json:"prohibitions,omitempty" yaml:"prohibitions,omitempty"`
	Risk           string     `json:"risk,omitempty" yaml:"risk,omitempty"`
	Department     string     `json:"department,omitempty" yaml:"department,omitempty"`
	ResearchGroups []string   `json:"research_groups,omitempty" yaml:"research_groups,omitempty"`
	Room           string     `json:"room,omitempty" yaml:"room,omitempty"`
	PI             Contact    `json:"pi,omitempty" yaml:"pi,omitempty"`
	SafetyOfficer  Contact    `json:"safety_officer,omitempty" yaml:"safety_officer,omitempty"`
	Emergency      [2]Contact `json:"emergency,omitempty" yaml:"emergency,omitempty"`
	ActivityType   string     `json:"activity_type,omitempty" yaml:"activity_type,omitempty"`
	ActivityClass  string     `json:"activity_class,omitempty" yaml:"activity_class,omitempty"`
	// Output is only used by batch manifests to name the written file
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// Normalize trims every field, lower-cases the keys and drops blank entries.
// Order of the key lists is preserved.
func (r Request) Normalize() Request {
	keys := func(in []string) []string {
		return lo.Compact(lo.Map(in, func(s string, _ int) string {
			return strings.ToLower(strings.TrimSpace(s))
		}))
	}
	trim := func(c Contact) Contact {
		return Contact{Name: strings.TrimSpace(c.Name), Phone: strings.TrimSpace(c.Phone)}
	}

	out := r
	out.Hazards = keys(r.Hazards)
	out.Obligations = keys(r.Obligations)
	out.Prohibitions = keys(r.Prohibitions)
	out.Risk = strings.ToLower(strings.TrimSpace(r.Risk))
	out.Department = strings.TrimSpace(r.Department)
	out.ResearchGroups = lo.Compact(lo.Map(r.ResearchGroups, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
	out.Room = strings.TrimSpace(r.Room)
	out.PI = trim(r.PI)
	out.SafetyOfficer = trim(r.SafetyOfficer)
	out.Emergency = [2]Contact{trim(r.Emergency[0]), trim(r.Emergency[1])}
	out.ActivityType = strings.TrimSpace(r.ActivityType)
	out.ActivityClass = strings.TrimSpace(r.ActivityClass)
	return out
}
