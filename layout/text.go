package layout

import (
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet/api"
)

// TextLine is one wrapped line and its baseline, centered on At.X
type TextLine struct {
	Text string    `json:"text"`
	At   api.Point `json:"at"`
}

// ResearchGroupSlot is one column of the research group band
type ResearchGroupSlot struct {
	Name string `json:"name"`
	// Column is the slot rectangle, Fill the background erased behind the text
	Column   api.Rect   `json:"column"`
	Fill     api.Rect   `json:"fill"`
	FontSize float64    `json:"font_size"`
	Lines    []TextLine `json:"lines"`
	// Overflow is set when the text still exceeds the slot at the minimum font size
	Overflow bool `json:"overflow,omitempty"`
}

// Wrap fills lines greedily: the next word is appended while the trial
// line fits in width, otherwise it starts a new line. A single word wider
// than width gets a line of its own.
func Wrap(text string, width float64, measure func(string) float64) []string {
	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		if current == "" {
			current = word
			continue
		}
		trial := current + " " + word
		if measure(trial) <= width {
			current = trial
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// GroupColumns splits the research group band for count names. One name
// takes the full band, three take equal thirds, two take one and a half
// thirds each with the configured asymmetric padding.
func GroupColumns(band api.Rect, count int, cfg Config) []api.Rect {
	switch {
	case count <= 0:
		return nil
	case count == 1:
		return []api.Rect{band}
	case count == 2:
		unit := band.W / 3
		half := 1.5 * unit
		return []api.Rect{
			{X: band.X + cfg.TwoGroupLeftPad, Y: band.Y, W: half - cfg.TwoGroupLeftPad, H: band.H},
			{X: band.X + half, Y: band.Y, W: half - cfg.TwoGroupRightPad, H: band.H},
		}
	default:
		unit := band.W / 3
		return []api.Rect{
			{X: band.X, Y: band.Y, W: unit, H: band.H},
			{X: band.X + unit, Y: band.Y, W: unit, H: band.H},
			{X: band.X + 2*unit, Y: band.Y, W: unit, H: band.H},
		}
	}
}

// LayoutGroups wraps up to cfg.MaxGroups non-empty names into their
// columns, shrinking the font by GroupFontStep from GroupFontSize until the
// wrapped block fits the slot height. At GroupMinFontSize overflow is
// accepted and the text is kept whole.
func LayoutGroups(names []string, header HeaderRow, cfg Config, m Measurer) []ResearchGroupSlot {
	var kept []string
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			kept = append(kept, name)
		}
	}
	limit := cfg.MaxGroups
	if limit <= 0 || limit > api.MaxResearchGroups {
		limit = api.MaxResearchGroups
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}

	columns := GroupColumns(header.Groups, len(kept), cfg)
	out := make([]ResearchGroupSlot, 0, len(kept))
	for i, name := range kept {
		out = append(out, layoutSlot(name, columns[i], cfg, m))
	}
	return out
}

func layoutSlot(name string, column api.Rect, cfg Config, m Measurer) ResearchGroupSlot {
	usable := column.W - 2*cfg.GroupPaddingX
	budget := column.H - 2*cfg.GroupPaddingY

	size := cfg.GroupFontSize
	var lines []string
	for {
		lines = Wrap(name, usable, func(s string) float64 { return m.TextWidth(s, api.FontRegular, size) })
		if blockHeight(len(lines), size, cfg) <= budget || size <= cfg.GroupMinFontSize {
			break
		}
		size -= cfg.GroupFontStep
		if size < cfg.GroupMinFontSize {
			size = cfg.GroupMinFontSize
		}
	}

	slot := ResearchGroupSlot{
		Name:     name,
		Column:   column,
		Fill:     column.Inset(cfg.GroupFillInset, cfg.GroupFillInset),
		FontSize: size,
		Overflow: blockHeight(len(lines), size, cfg) > budget,
	}
	if slot.Overflow {
		logger.Warnf("research group %q overflows its slot at %.1fpt", name, size)
	}

	leading := size * cfg.GroupLineSpacing
	first := column.CenterY() + blockHeight(len(lines), size, cfg)/2 - size
	for i, line := range lines {
		slot.Lines = append(slot.Lines, TextLine{Text: line, At: api.Point{X: column.CenterX(), Y: first - float64(i)*leading}})
	}
	return slot
}

func blockHeight(lines int, size float64, cfg Config) float64 {
	return float64(lines) * size * cfg.GroupLineSpacing
}

// FitLine returns the largest size, starting at maxSize and stepping down by
// step to minSize, at which text fits in width on a single line.
func FitLine(text string, width, maxSize, minSize, step float64, style api.FontStyle, m Measurer) float64 {
	size := maxSize
	for size > minSize && m.TextWidth(text, style, size) > width {
		size -= step
	}
	if size < minSize {
		size = minSize
	}
	return size
}
