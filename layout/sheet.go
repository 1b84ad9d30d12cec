package layout

import (
	"fmt"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet/api"
	"github.com/flanksource/doorsheet/catalog"
)

// Plan is the complete layout of one door sheet. Commands is the ordered
// draw list: hazards, signs, header text, research groups, room number,
// contacts, activity row.
type Plan struct {
	Regions  Regions             `json:"regions"`
	Hazards  []Placement         `json:"hazards"`
	Signs    []Placement         `json:"signs"`
	Groups   []ResearchGroupSlot `json:"groups"`
	Commands []api.Command       `json:"-"`
}

// PlanSheet runs the region planner, icon layout engine and text block
// engine for one resolved selection. The only failure is an icon whose
// intrinsic size cannot be read.
func PlanSheet(page api.Size, sel catalog.Selection, req api.Request, cfg Config, sizer IconSizer, m Measurer) (*Plan, error) {
	plan := &Plan{Regions: PlanRegions(page, cfg)}

	hazards := make([]Icon, 0, len(sel.Hazards))
	for _, h := range sel.Hazards {
		size, err := sizer.IconSize(h.Icon)
		if err != nil {
			return nil, fmt.Errorf("hazard %s: %w", h.Key, err)
		}
		hazards = append(hazards, Icon{Ref: h.Icon, Size: size, Lines: h.CaptionLines()})
	}
	signs := make([]Icon, 0, len(sel.Signs))
	for _, s := range sel.Signs {
		size, err := sizer.IconSize(s.Icon)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", s.Kind, s.Key, err)
		}
		signs = append(signs, Icon{Ref: s.Icon, Size: size})
	}

	plan.Hazards = LayoutHazards(hazards, plan.Regions.MainBox, cfg)
	plan.Signs = LayoutSigns(signs, plan.Regions.ObligationBox, cfg)
	plan.Groups = LayoutGroups(req.ResearchGroups, plan.Regions.Header, cfg, m)
	department, room := LayoutHeader(req, plan.Regions, cfg, m)

	for _, p := range plan.Hazards {
		plan.Commands = append(plan.Commands, api.ImageCommand{Ref: p.Ref, Rect: p.Rect})
		for _, c := range p.Captions {
			plan.Commands = append(plan.Commands, textRun(c.Text, c.At, api.AlignCenter, api.FontBold, cfg.CaptionFontSize, m))
		}
	}
	for _, p := range plan.Signs {
		plan.Commands = append(plan.Commands, api.ImageCommand{Ref: p.Ref, Rect: p.Rect})
	}
	plan.Commands = append(plan.Commands, department...)
	for _, slot := range plan.Groups {
		plan.Commands = append(plan.Commands, api.FillCommand{Rect: slot.Fill, Color: api.White})
		for _, line := range slot.Lines {
			plan.Commands = append(plan.Commands, textRun(line.Text, line.At, api.AlignCenter, api.FontRegular, slot.FontSize, m))
		}
	}
	plan.Commands = append(plan.Commands, room...)
	plan.Commands = append(plan.Commands, LayoutContacts(req, plan.Regions, cfg, m)...)
	plan.Commands = append(plan.Commands, LayoutActivity(req, plan.Regions, cfg, m)...)

	logger.Debugf("planned %d hazards, %d signs, %d research groups, %d draw commands",
		len(plan.Hazards), len(plan.Signs), len(plan.Groups), len(plan.Commands))
	return plan, nil
}
