package layout

import (
	"math"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet/api"
)

// Icon is one hazard pictogram to place: its source, intrinsic pixel size
// and caption lines.
type Icon struct {
	Ref   string
	Size  api.Size
	Lines []string
}

// CaptionLine is one centered caption run with its baseline point
type CaptionLine struct {
	Text string    `json:"text"`
	At   api.Point `json:"at"`
}

// Placement is the computed draw rectangle of an icon plus its caption lines
type Placement struct {
	Ref      string        `json:"ref"`
	Rect     api.Rect      `json:"rect"`
	Captions []CaptionLine `json:"captions,omitempty"`
}

// Fixed geometry shared by every hazard case
const (
	captionGap    = 12.0
	captionHeight = 14.0
	captionFloor  = 10.0
	topClearance  = 4.0
)

// hazardCase lays out exactly one icon count. The cases are hand-tuned
// against the reference template and deliberately not derived from a
// common formula.
type hazardCase func(h *hazardLayout) []Placement

var hazardCases = map[int]hazardCase{
	0: func(*hazardLayout) []Placement { return nil },
	1: stackCase,
	2: stackCase,
	3: oneOverTwoCase,
	4: gridCase,
}

// LayoutHazards places the icons inside box according to the case table
// for len(icons). Counts above four use the generic vertical stack.
func LayoutHazards(icons []Icon, box api.Rect, cfg Config) []Placement {
	h := &hazardLayout{
		icons:   icons,
		box:     box,
		centerX: box.X + box.W/2 - cfg.CenterShift,
		lineH:   cfg.CaptionLineHeight,
	}
	layout, ok := hazardCases[len(icons)]
	if !ok {
		layout = stackCase
	}
	logger.Debugf("laying out %d hazard icons in %+v", len(icons), box)
	return layout(h)
}

type hazardLayout struct {
	icons   []Icon
	box     api.Rect
	centerX float64
	lineH   float64
}

// captions anchors the lines of icon at base, lifted so the last line never
// sits below box.Y+captionFloor. It returns the baseline of the last line.
func (h *hazardLayout) captions(x, base float64, lines []string) ([]CaptionLine, float64) {
	n := len(lines)
	if n == 0 {
		return nil, base
	}
	start := math.Max(base, h.box.Y+captionFloor+float64(n-1)*h.lineH)
	out := make([]CaptionLine, n)
	for i, line := range lines {
		out[i] = CaptionLine{Text: line, At: api.Point{X: x, Y: start - float64(i)*h.lineH}}
	}
	return out, start - float64(n-1)*h.lineH
}

func (h *hazardLayout) place(icon Icon, x, y float64, size api.Size, captionX, captionBase float64) (Placement, float64) {
	captions, last := h.captions(captionX, captionBase, icon.Lines)
	return Placement{
		Ref:      icon.Ref,
		Rect:     api.Rect{X: x, Y: y, W: size.W, H: size.H},
		Captions: captions,
	}, last
}

// gridCase is the 2x2 layout for four icons: cells capped then scaled up
// by 30%, top row hung 50pt below the box top, bottom row at the vertical
// midpoint, everything raised 10pt.
func gridCase(h *hazardLayout) []Placement {
	box := h.box
	cellW, cellH := box.W/2, box.H/2
	maxW := math.Min(cellW-40, 180)
	maxH := cellH - 50

	cols := [2]float64{h.centerX - cellW/2, h.centerX + cellW/2}
	rowTops := [2]float64{box.Top() - 50, box.Y + cellH}

	out := make([]Placement, 0, 4)
	for i, icon := range h.icons[:4] {
		row, col := i/2, i%2
		size := scaled(fit(icon.Size, maxW, maxH), 1.3)
		x := cols[col] - size.W/2
		y := rowTops[row] - size.H + 10
		p, _ := h.place(icon, x, y, size, cols[col], math.Max(y-captionGap, box.Y))
		out = append(out, p)
	}
	return out
}

// oneOverTwoCase is the three icon composition: one large icon on top and
// a smaller pair side by side beneath it.
func oneOverTwoCase(h *hazardLayout) []Placement {
	box := h.box
	top := fit(h.icons[0].Size, math.Min(220, box.W-40), box.H*0.45)
	pairW, pairH := math.Min(150, box.W/2-30), box.H*0.22
	left := scaled(fit(h.icons[1].Size, pairW, pairH), 0.9)
	right := scaled(fit(h.icons[2].Size, pairW, pairH), 0.9)

	out := make([]Placement, 0, 3)

	topY := box.Top() - 40 - top.H + 30
	p, _ := h.place(h.icons[0], h.centerX-top.W/2, topY, top, h.centerX, math.Max(topY-captionGap, box.Y+14))
	out = append(out, p)

	rowY := box.Y + 60 + math.Max(left.H, right.H) + 30
	offset := box.W*0.22 + 7
	leftX := h.centerX - offset - left.W/2
	rightX := h.centerX + offset - right.W/2

	p, _ = h.place(h.icons[1], leftX, rowY-left.H, left, leftX+left.W/2, math.Max(rowY-left.H-captionGap, box.Y+captionFloor))
	out = append(out, p)
	p, _ = h.place(h.icons[2], rightX, rowY-right.H, right, rightX+right.W/2, math.Max(rowY-right.H-captionGap, box.Y+captionFloor))
	out = append(out, p)
	return out
}

// stackCase is the centered vertical stack used for one, two and more than
// four icons. One and two icons get extra nudges on top of the generic stack.
func stackCase(h *hazardLayout) []Placement {
	box := h.box
	count := len(h.icons)

	spacing := 0.0
	if count == 2 {
		spacing = -10
	}
	slotH := math.Max(60, (box.H-40-float64(count-1)*spacing)/float64(count))
	maxW := math.Min(160, box.W-36)
	maxH := math.Max(50, slotH-captionGap-captionHeight)

	sizes := make([]api.Size, count)
	total := float64(count-1) * spacing
	multiline := false
	for i, icon := range h.icons {
		sizes[i] = fit(icon.Size, maxW, maxH)
		if count == 2 {
			sizes[i] = scaled(sizes[i], 0.9)
		}
		total += sizes[i].H + captionGap + captionHeight
		if len(icon.Lines) > 1 {
			multiline = true
		}
	}

	current := box.Y + (box.H-total)/2 + total
	ceiling := func(size api.Size) float64 { return box.Top() - size.H - topClearance }

	out := make([]Placement, 0, count)
	for i, icon := range h.icons {
		size := sizes[i]
		x := h.centerX - size.W/2
		y := current - size.H

		switch {
		case count == 1:
			y = math.Min(y+30, ceiling(size))
		case count == 2 && i == 0:
			y = math.Min(y+40, ceiling(size))
		case count == 2:
			y = math.Max(box.Y+topClearance, y-30)
			if multiline {
				y = math.Min(y+10, ceiling(size))
			}
		}

		p, last := h.place(icon, x, y, size, h.centerX, math.Max(y-captionGap, box.Y+captionFloor))
		out = append(out, p)
		current = last - spacing
	}
	return out
}
