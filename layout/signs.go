package layout

import (
	"math"

	"github.com/flanksource/doorsheet/api"
)

const signColumns = 2

// LayoutSigns places up to api.MaxSigns obligation/prohibition icons in a
// two column grid, row-major from the top of box. Each icon is scaled so
// its longer side equals min(SignMaxSize, cell width). Extra icons are
// dropped.
func LayoutSigns(icons []Icon, box api.Rect, cfg Config) []Placement {
	if len(icons) == 0 {
		return nil
	}
	if len(icons) > api.MaxSigns {
		icons = icons[:api.MaxSigns]
	}

	margin := cfg.SignMargin
	cellW := (box.W - margin*(signColumns+1)) / signColumns
	target := math.Min(cfg.SignMaxSize, cellW)
	startY := box.Top() - margin - target

	out := make([]Placement, 0, len(icons))
	for i, icon := range icons {
		row, col := i/signColumns, i%signColumns
		size := api.Size{}
		if longest := math.Max(icon.Size.W, icon.Size.H); longest > 0 {
			size = scaled(icon.Size, target/longest)
		}
		out = append(out, Placement{
			Ref: icon.Ref,
			Rect: api.Rect{
				X: box.X + margin + float64(col)*(cellW+margin) + (cellW-size.W)/2,
				Y: startY - float64(row)*(target+margin),
				W: size.W,
				H: size.H,
			},
		})
	}
	return out
}
