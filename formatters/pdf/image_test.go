package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/flanksource/doorsheet/api"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100" width="200" height="100">
  <rect x="10" y="10" width="180" height="80" fill="#ffcc00" stroke="#000000" stroke-width="4"/>
</svg>`

func TestAssets_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	WriteTestPNG(t, path, 64, 32)

	assets := NewAssets()
	size, err := assets.IconSize(path)
	require.NoError(t, err)
	assert.Equal(t, api.Size{W: 64, H: 32}, size)

	asset, err := assets.Load(path)
	require.NoError(t, err)
	assert.Equal(t, imagePNG, asset.Type)
	assert.Equal(t, extension.Png, asset.Extension())

	decoded, err := png.Decode(bytes.NewReader(asset.Data))
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
	// transparent corner survives normalization
	_, _, _, a := decoded.At(0, 0).RGBA()
	assert.Zero(t, a)

	again, err := assets.Load(path)
	require.NoError(t, err)
	assert.Same(t, asset, again)
}

func TestAssets_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	img := image.NewRGBA(image.Rect(0, 0, 30, 60))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	asset, err := NewAssets().Load(path)
	require.NoError(t, err)
	assert.Equal(t, imageJPG, asset.Type)
	assert.Equal(t, extension.Jpg, asset.Extension())
	assert.Equal(t, api.Size{W: 30, H: 60}, asset.Size)
	assert.Equal(t, buf.Bytes(), asset.Data)
}

func TestAssets_SVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sign.svg")
	require.NoError(t, os.WriteFile(path, []byte(testSVG), 0o644))

	assets := NewAssets()
	assets.SVGRasterSize = 100
	asset, err := assets.Load(path)
	require.NoError(t, err)
	assert.Equal(t, imagePNG, asset.Type)
	assert.Equal(t, api.Size{W: 200, H: 100}, asset.Size)

	decoded, err := png.Decode(bytes.NewReader(asset.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 50, decoded.Bounds().Dy())
	assert.NotEqual(t, color.RGBA{}, color.RGBAModel.Convert(decoded.At(50, 25)))
}

func TestAssets_Errors(t *testing.T) {
	dir := t.TempDir()
	assets := NewAssets()

	_, err := assets.IconSize(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.True(t, api.IsAssetMissing(err))

	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a png"), 0o644))
	_, err = assets.Load(corrupt)
	require.Error(t, err)
	assert.False(t, api.IsAssetMissing(err))

	gif := filepath.Join(dir, "anim.gif")
	require.NoError(t, os.WriteFile(gif, []byte("GIF89a"), 0o644))
	_, err = assets.Load(gif)
	assert.ErrorContains(t, err, "unsupported image format")
}

func TestAssets_Preload(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.png")
	WriteTestPNG(t, ok, 8, 8)

	assets := NewAssets()
	assert.NoError(t, assets.Preload(ok))
	err := assets.Preload(ok, filepath.Join(dir, "gone.png"))
	assert.True(t, api.IsAssetMissing(err))
}
