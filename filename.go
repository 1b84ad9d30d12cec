package doorsheet

import (
	"strings"

	"github.com/flanksource/doorsheet/api"
	"github.com/flanksource/doorsheet/catalog"
	"github.com/samber/lo"
)

const legacyFallbackName = "hazard"

// FileName suggests the download name of a sheet: the sanitized research
// groups that fit on the sheet joined by underscores, else the risk key, else the first hazard,
// else a fixed fallback. The legacy scheme uses the first hazard only.
func FileName(req api.Request, sel catalog.Selection, legacy bool) string {
	firstHazard := ""
	if len(sel.Hazards) > 0 {
		firstHazard = sel.Hazards[0].Key
	}
	if legacy {
		return lo.CoalesceOrEmpty(api.SanitizeFileName(firstHazard), legacyFallbackName) + ".pdf"
	}

	groups := lo.Compact(lo.Map(drawnGroups(req.ResearchGroups), func(g string, _ int) string {
		return api.SanitizeFileName(g)
	}))
	name := lo.CoalesceOrEmpty(
		strings.Join(groups, "_"),
		api.SanitizeFileName(sel.Risk.Key),
		api.SanitizeFileName(firstHazard),
		api.DefaultFileName,
	)
	return name + ".pdf"
}

// drawnGroups keeps the non-blank names that get a header slot
func drawnGroups(names []string) []string {
	kept := lo.Filter(names, func(name string, _ int) bool {
		return strings.TrimSpace(name) != ""
	})
	if len(kept) > api.MaxResearchGroups {
		kept = kept[:api.MaxResearchGroups]
	}
	return kept
}
