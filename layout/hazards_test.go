package layout

import (
	"math"
	"testing"

	"github.com/flanksource/doorsheet/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mainBox() api.Rect { return PlanRegions(a4, DefaultConfig()).MainBox }

func TestFit(t *testing.T) {
	// width binds
	assert.Equal(t, api.Size{W: 100, H: 50}, fit(api.Size{W: 400, H: 200}, 100, 80))
	// height binds after width scaling overflows
	assert.Equal(t, api.Size{W: 40, H: 80}, fit(api.Size{W: 100, H: 200}, 100, 80))
	// degenerate source
	assert.Equal(t, api.Size{}, fit(api.Size{W: 0, H: 10}, 100, 80))
}

func TestLayoutHazards_CountsAndAspect(t *testing.T) {
	shapes := []api.Size{{W: 512, H: 512}, {W: 600, H: 300}, {W: 300, H: 640}, {W: 1000, H: 870}, {W: 64, H: 64}, {W: 420, H: 500}}
	for count := 0; count <= 6; count++ {
		in := icons(shapes[:count]...)
		out := LayoutHazards(in, mainBox(), DefaultConfig())
		require.Len(t, out, count, "count %d", count)
		for i, p := range out {
			assert.Greater(t, p.Rect.W, 0.0, "count %d icon %d", count, i)
			assert.Greater(t, p.Rect.H, 0.0, "count %d icon %d", count, i)
			want := in[i].Size.W / in[i].Size.H
			assert.InEpsilon(t, want, p.Rect.Aspect(), 0.005, "count %d icon %d", count, i)
			assert.Equal(t, in[i].Ref, p.Ref)
		}
	}
}

func TestLayoutHazards_Single(t *testing.T) {
	box := mainBox()
	cfg := DefaultConfig()
	out := LayoutHazards(squares(1), box, cfg)
	require.Len(t, out, 1)

	p := out[0]
	assert.InDelta(t, box.CenterX()-cfg.CenterShift, p.Rect.CenterX(), 1e-9)
	assert.LessOrEqual(t, p.Rect.Top(), box.Top()-4+1e-9)
	assert.Greater(t, p.Rect.CenterY(), box.CenterY(), "raised toward the top")
	require.Len(t, p.Captions, 1)
	assert.Less(t, p.Captions[0].At.Y, p.Rect.Y)
	assert.Equal(t, p.Rect.CenterX(), p.Captions[0].At.X)
}

func TestLayoutHazards_TwoStacked(t *testing.T) {
	box := mainBox()
	out := LayoutHazards(squares(2), box, DefaultConfig())
	require.Len(t, out, 2)
	assert.Greater(t, out[0].Rect.Y, out[1].Rect.Top())
	assert.GreaterOrEqual(t, out[1].Rect.Y, box.Y+4-1e-9)
	assert.LessOrEqual(t, out[0].Rect.Top(), box.Top()-4+1e-9)
}

func TestLayoutHazards_TwoWithMultilineCaptionNudgesUp(t *testing.T) {
	box := mainBox()
	single := squares(2)
	multi := squares(2)
	multi[1].Lines = []string{"Toxic and/or CMR", "Compounds"}

	a := LayoutHazards(single, box, DefaultConfig())
	b := LayoutHazards(multi, box, DefaultConfig())
	assert.Greater(t, b[1].Rect.Y, a[1].Rect.Y)
}

func TestLayoutHazards_ThreeOneOverTwo(t *testing.T) {
	box := mainBox()
	for _, in := range [][]Icon{
		squares(3),
		icons(api.Size{W: 300, H: 640}, api.Size{W: 300, H: 640}, api.Size{W: 300, H: 640}),
		icons(api.Size{W: 900, H: 300}, api.Size{W: 512, H: 512}, api.Size{W: 600, H: 300}),
	} {
		out := LayoutHazards(in, box, DefaultConfig())
		require.Len(t, out, 3)
		top, left, right := out[0].Rect, out[1].Rect, out[2].Rect
		assert.Greater(t, top.Y, left.Top())
		assert.Greater(t, top.Y, right.Top())
		assert.Less(t, left.CenterX(), right.CenterX())
		assert.False(t, left.Intersects(right))
		assert.LessOrEqual(t, top.W, 220.0+1e-9)
		assert.LessOrEqual(t, top.H, box.H*0.45+1e-9)
		assert.LessOrEqual(t, left.W, 0.9*150+1e-9)
	}
}

func TestLayoutHazards_FourGrid(t *testing.T) {
	box := mainBox()
	cfg := DefaultConfig()
	in := icons(api.Size{W: 512, H: 512}, api.Size{W: 600, H: 300}, api.Size{W: 300, H: 640}, api.Size{W: 512, H: 512})
	out := LayoutHazards(in, box, cfg)
	require.Len(t, out, 4)

	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			assert.False(t, out[i].Rect.Intersects(out[j].Rect), "icons %d and %d overlap", i, j)
		}
		// allowed overshoot is bounded by the case padding
		assert.True(t, box.Contains(out[i].Rect, 20), "icon %d at %+v outside %+v", i, out[i].Rect, box)
	}

	centerX := box.CenterX() - cfg.CenterShift
	midY := box.CenterY()
	assert.Less(t, out[0].Rect.CenterX(), centerX)
	assert.Greater(t, out[1].Rect.CenterX(), centerX)
	assert.Less(t, out[2].Rect.CenterX(), centerX)
	assert.Greater(t, out[3].Rect.CenterX(), centerX)
	assert.Greater(t, out[0].Rect.CenterY(), midY)
	assert.Greater(t, out[1].Rect.CenterY(), midY)
	assert.Less(t, out[2].Rect.CenterY(), midY)
	assert.Less(t, out[3].Rect.CenterY(), midY)

	// the 30% scale-up is applied after the cell cap
	maxW := math.Min(box.W/2-40, 180)
	assert.InDelta(t, maxW*1.3, out[0].Rect.W, 1e-9)
}

func TestLayoutHazards_GenericStack(t *testing.T) {
	box := mainBox()
	for _, count := range []int{5, 6, 9} {
		out := LayoutHazards(squares(count), box, DefaultConfig())
		require.Len(t, out, count)
		for i := 1; i < count; i++ {
			assert.Less(t, out[i].Rect.Y, out[i-1].Rect.Y, "count %d: icon %d should be below %d", count, i, i-1)
			assert.LessOrEqual(t, out[i].Rect.W, 160.0)
		}
	}
}

func TestLayoutHazards_CaptionAnchoring(t *testing.T) {
	box := mainBox()
	in := squares(6)
	in[5].Lines = []string{"Toxic and/or CMR", "Compounds"}
	out := LayoutHazards(in, box, DefaultConfig())

	for _, p := range out {
		require.NotEmpty(t, p.Captions)
		last := p.Captions[len(p.Captions)-1]
		assert.GreaterOrEqual(t, last.At.Y, box.Y+10-1e-9)
		for i := 1; i < len(p.Captions); i++ {
			assert.InDelta(t, 10.4, p.Captions[i-1].At.Y-p.Captions[i].At.Y, 1e-9)
			assert.Equal(t, p.Captions[0].At.X, p.Captions[i].At.X)
		}
	}
}

func TestLayoutHazards_Deterministic(t *testing.T) {
	in := icons(api.Size{W: 512, H: 512}, api.Size{W: 600, H: 300}, api.Size{W: 300, H: 640})
	a := LayoutHazards(in, mainBox(), DefaultConfig())
	b := LayoutHazards(in, mainBox(), DefaultConfig())
	assert.Equal(t, a, b)
}
