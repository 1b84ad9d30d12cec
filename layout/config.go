package layout

import (
	"fmt"
	"os"
	"sort"

	"github.com/flanksource/doorsheet/api"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable constant of the region planner and the text
// block engine. The defaults are tuned against the reference A4 templates;
// a different template layout is targeted by overriding them from YAML.
// The per-count hazard geometry is not configurable, see hazards.go.
type Config struct {
	// Main hazard box, lower-left corner and size as fractions of the page
	MainBoxX           float64 `yaml:"main_box_x"`
	MainBoxY           float64 `yaml:"main_box_y"`
	MainBoxWidthRatio  float64 `yaml:"main_box_width_ratio"`
	MainBoxHeightRatio float64 `yaml:"main_box_height_ratio"`
	// BoxGap separates the obligation box from the hazard box and from the page edge
	BoxGap float64 `yaml:"box_gap"`
	// CenterShift moves the hazard column left of the geometric box center
	CenterShift float64 `yaml:"center_shift"`

	// Hazard captions
	CaptionFontSize   float64 `yaml:"caption_font_size"`
	CaptionLineHeight float64 `yaml:"caption_line_height"`

	// Obligation/prohibition grid
	SignMargin  float64 `yaml:"sign_margin"`
	SignMaxSize float64 `yaml:"sign_max_size"`

	// Header row, measured from the top of the page
	HeaderTop     float64 `yaml:"header_top"`
	HeaderHeight  float64 `yaml:"header_height"`
	HeaderMarginX float64 `yaml:"header_margin_x"`
	LogoWidth     float64 `yaml:"logo_width"`
	LabelWidth    float64 `yaml:"label_width"`
	RoomWidth     float64 `yaml:"room_width"`

	// Department name in the label block and room number in the room block
	DepartmentFontSize float64 `yaml:"department_font_size"`
	RoomFontSize       float64 `yaml:"room_font_size"`
	BlockPadding       float64 `yaml:"block_padding"`

	// Research group slots
	GroupFontSize    float64 `yaml:"group_font_size"`
	GroupMinFontSize float64 `yaml:"group_min_font_size"`
	GroupFontStep    float64 `yaml:"group_font_step"`
	GroupLineSpacing float64 `yaml:"group_line_spacing"`
	GroupPaddingX    float64 `yaml:"group_padding_x"`
	GroupPaddingY    float64 `yaml:"group_padding_y"`
	GroupFillInset   float64 `yaml:"group_fill_inset"`
	TwoGroupLeftPad  float64 `yaml:"two_group_left_pad"`
	TwoGroupRightPad float64 `yaml:"two_group_right_pad"`
	MaxGroups        int     `yaml:"max_groups"`

	// Contact rows, measured from the top of the page
	ContactTop        float64 `yaml:"contact_top"`
	ContactRowSpacing float64 `yaml:"contact_row_spacing"`
	ContactNameX      float64 `yaml:"contact_name_x"`
	ContactPhoneInset float64 `yaml:"contact_phone_inset"`
	EmergencyOffset   float64 `yaml:"emergency_offset"`
	ContactFontSize   float64 `yaml:"contact_font_size"`

	// Activity row below the emergency contacts
	ActivityOffset   float64 `yaml:"activity_offset"`
	ActivityX        float64 `yaml:"activity_x"`
	ActivityWidth    float64 `yaml:"activity_width"`
	ActivityHeight   float64 `yaml:"activity_height"`
	ActivityFontSize float64 `yaml:"activity_font_size"`
}

// DefaultConfig returns the constants tuned against the reference templates
func DefaultConfig() Config {
	return Config{
		MainBoxX:           40,
		MainBoxY:           80,
		MainBoxWidthRatio:  0.45,
		MainBoxHeightRatio: 0.45,
		BoxGap:             20,
		CenterShift:        15,

		CaptionFontSize:   10.4,
		CaptionLineHeight: 10.4,

		SignMargin:  12,
		SignMaxSize: 80,

		HeaderTop:     40,
		HeaderHeight:  55,
		HeaderMarginX: 20,
		LogoWidth:     150,
		LabelWidth:    95,
		RoomWidth:     90,

		DepartmentFontSize: 12,
		RoomFontSize:       14,
		BlockPadding:       4,

		GroupFontSize:    11,
		GroupMinFontSize: 7,
		GroupFontStep:    0.5,
		GroupLineSpacing: 1.1,
		GroupPaddingX:    6,
		GroupPaddingY:    4,
		GroupFillInset:   1.5,
		TwoGroupLeftPad:  4,
		TwoGroupRightPad: 10,
		MaxGroups:        api.MaxResearchGroups,

		ContactTop:        200,
		ContactRowSpacing: 20,
		ContactNameX:      180,
		ContactPhoneInset: 65,
		EmergencyOffset:   95,
		ContactFontSize:   11,

		ActivityOffset:   45,
		ActivityX:        70,
		ActivityWidth:    200,
		ActivityHeight:   18,
		ActivityFontSize: 10,
	}
}

// LoadConfig reads a YAML file over the defaults; keys missing from the
// file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read layout config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse layout config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings that cannot produce a layout
func (c Config) Validate() error {
	positive := map[string]float64{
		"main_box_width_ratio":  c.MainBoxWidthRatio,
		"main_box_height_ratio": c.MainBoxHeightRatio,
		"caption_font_size":     c.CaptionFontSize,
		"caption_line_height":   c.CaptionLineHeight,
		"sign_max_size":         c.SignMaxSize,
		"header_height":         c.HeaderHeight,
		"group_font_size":       c.GroupFontSize,
		"group_min_font_size":   c.GroupMinFontSize,
		"group_font_step":       c.GroupFontStep,
		"group_line_spacing":    c.GroupLineSpacing,
		"contact_font_size":     c.ContactFontSize,
		"activity_font_size":    c.ActivityFontSize,
		"department_font_size":  c.DepartmentFontSize,
		"room_font_size":        c.RoomFontSize,
	}
	names := lo.Keys(positive)
	sort.Strings(names)
	for _, name := range names {
		if positive[name] <= 0 {
			return &api.ConfigurationError{Kind: api.KindLayout, Key: name, Reason: fmt.Sprintf("must be positive, got %v", positive[name])}
		}
	}
	if c.GroupMinFontSize > c.GroupFontSize {
		return &api.ConfigurationError{Kind: api.KindLayout, Key: "group_min_font_size", Reason: "exceeds group_font_size"}
	}
	if c.MaxGroups < 1 || c.MaxGroups > api.MaxResearchGroups {
		return &api.ConfigurationError{Kind: api.KindLayout, Key: "max_groups", Reason: fmt.Sprintf("must be between 1 and %d, got %d", api.MaxResearchGroups, c.MaxGroups)}
	}
	return nil
}
