package layout

import (
	"testing"

	"github.com/flanksource/doorsheet/api"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutSigns_Counts(t *testing.T) {
	box := PlanRegions(a4, DefaultConfig()).ObligationBox
	for _, n := range []int{0, 1, 2, 5, 6, 7} {
		out := LayoutSigns(squares(n), box, DefaultConfig())
		require.Len(t, out, min(6, n), "input %d", n)

		columns := lo.Uniq(lo.Map(out, func(p Placement, _ int) float64 { return p.Rect.CenterX() }))
		rows := lo.Uniq(lo.Map(out, func(p Placement, _ int) float64 { return p.Rect.Y }))
		assert.LessOrEqual(t, len(columns), 2)
		assert.LessOrEqual(t, len(rows), 3)
	}
}

func TestLayoutSigns_RowMajor(t *testing.T) {
	cfg := DefaultConfig()
	box := PlanRegions(a4, cfg).ObligationBox
	out := LayoutSigns(squares(5), box, cfg)
	require.Len(t, out, 5)

	assert.Equal(t, out[0].Rect.Y, out[1].Rect.Y)
	assert.Less(t, out[0].Rect.X, out[1].Rect.X)
	assert.Less(t, out[2].Rect.Y, out[0].Rect.Y)
	assert.Equal(t, out[0].Rect.X, out[2].Rect.X)
	assert.Equal(t, out[4].Rect.X, out[0].Rect.X)

	assert.InDelta(t, box.Top()-cfg.SignMargin, out[0].Rect.Top(), 1e-9)
	for _, p := range out {
		assert.InDelta(t, 80, p.Rect.W, 1e-9)
		assert.True(t, box.Contains(p.Rect, 0))
	}
}

func TestLayoutSigns_ScalesByLongerSide(t *testing.T) {
	box := PlanRegions(a4, DefaultConfig()).ObligationBox
	out := LayoutSigns(icons(api.Size{W: 200, H: 400}, api.Size{W: 400, H: 100}), box, DefaultConfig())
	require.Len(t, out, 2)
	assert.InDelta(t, 40, out[0].Rect.W, 1e-9)
	assert.InDelta(t, 80, out[0].Rect.H, 1e-9)
	assert.InDelta(t, 80, out[1].Rect.W, 1e-9)
	assert.InDelta(t, 20, out[1].Rect.H, 1e-9)
	assert.InDelta(t, 0.5, out[0].Rect.Aspect(), 1e-9)
}

func TestLayoutSigns_NarrowBoxShrinksIcons(t *testing.T) {
	box := api.Rect{X: 0, Y: 0, W: 100, H: 300}
	out := LayoutSigns(squares(2), box, DefaultConfig())
	cell := (100 - 12*3) / 2.0
	assert.InDelta(t, cell, out[0].Rect.W, 1e-9)
}
