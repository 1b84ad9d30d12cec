package pdf

import (
	"path/filepath"
	"testing"

	"github.com/flanksource/doorsheet/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownCommand struct{}

func (unknownCommand) Kind() string     { return "unknown" }
func (unknownCommand) Bounds() api.Rect { return api.Rect{} }

func TestCanvas_Draw(t *testing.T) {
	icon := filepath.Join(t.TempDir(), "icon.png")
	WriteTestPNG(t, icon, 48, 96)

	canvas, err := NewCanvas(a4, DefaultFontSet(), NewAssets())
	require.NoError(t, err)
	assert.Equal(t, a4, canvas.Page())

	require.NoError(t, canvas.Draw(
		api.ImageCommand{Ref: icon, Rect: api.Rect{X: 40, Y: 80, W: 50, H: 100}},
		api.ImageCommand{Ref: icon, Rect: api.Rect{X: 140, Y: 80, W: 25, H: 50}},
		api.ImageCommand{Ref: icon, Rect: api.Rect{X: 0, Y: 0}},
		api.FillCommand{Rect: api.Rect{X: 265, Y: 747, W: 100, H: 55}, Color: api.White},
		api.TextCommand{Text: "Zürich – Höngg", At: api.Point{X: 315, Y: 770}, Size: 11, Align: api.AlignCenter},
		api.TextCommand{Text: "+41 44 632 11 11", At: api.Point{X: 530, Y: 641}, Size: 11, Align: api.AlignRight},
		api.LineCommand{From: api.Point{X: 40, Y: 80}, To: api.Point{X: 300, Y: 80}, Width: 0.5, Color: api.Black},
	))

	data, err := canvas.Output()
	require.NoError(t, err)
	AssertPDFBasicStructure(t, data)
	AssertPDFPageCount(t, data, 1)
	AssertPDFPageSize(t, data, a4)
}

func TestCanvas_DrawErrors(t *testing.T) {
	canvas, err := NewCanvas(a4, DefaultFontSet(), NewAssets())
	require.NoError(t, err)

	err = canvas.Draw(api.ImageCommand{Ref: "/nonexistent/icon.png", Rect: api.Rect{W: 10, H: 10}})
	require.Error(t, err)
	assert.True(t, api.IsAssetMissing(err))

	err = canvas.Draw(unknownCommand{})
	assert.ErrorContains(t, err, "unsupported draw command")
}

func TestCanvas_InvalidPage(t *testing.T) {
	_, err := NewCanvas(api.Size{W: 0, H: 100}, DefaultFontSet(), NewAssets())
	assert.Error(t, err)
}

func TestCanvas_TextWidth(t *testing.T) {
	canvas, err := NewCanvas(a4, DefaultFontSet(), NewAssets())
	require.NoError(t, err)

	regular := canvas.TextWidth("Hello world", api.FontRegular, 10)
	assert.Greater(t, regular, 0.0)
	assert.InDelta(t, 2*regular, canvas.TextWidth("Hello world", api.FontRegular, 20), 1e-6)
	assert.Greater(t, canvas.TextWidth("Hello world", api.FontBold, 10), regular)
	assert.Zero(t, canvas.TextWidth("", api.FontRegular, 10))
}

func TestCanvas_DeterministicOutput(t *testing.T) {
	render := func() []byte {
		canvas, err := NewCanvas(a4, DefaultFontSet(), NewAssets())
		require.NoError(t, err)
		require.NoError(t, canvas.Draw(api.TextCommand{Text: "Room 101", At: api.Point{X: 100, Y: 100}, Size: 14, Style: api.FontBold}))
		data, err := canvas.Output()
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, render(), render())
}
