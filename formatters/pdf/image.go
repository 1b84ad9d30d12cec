package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // Register JPEG format
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet/api"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const (
	imagePNG = "PNG"
	imageJPG = "JPG"
)

// Asset is a decoded icon ready to embed. SVG sources are rasterized to PNG.
type Asset struct {
	Ref  string
	Type string
	Data []byte
	// Size is the intrinsic size: pixels for rasters, the viewBox for SVG
	Size api.Size
}

// Extension returns the maroto image extension of the embedded data
func (a *Asset) Extension() extension.Type {
	if a.Type == imageJPG {
		return extension.Jpg
	}
	return extension.Png
}

// Assets is a read-only icon store shared by every request. Each file is
// read and decoded once.
type Assets struct {
	// SVGRasterSize is the pixel length of the longer side of rasterized SVG icons
	SVGRasterSize int

	mu    sync.RWMutex
	cache map[string]*Asset
}

func NewAssets() *Assets {
	return &Assets{SVGRasterSize: 512, cache: map[string]*Asset{}}
}

// IconSize implements layout.IconSizer
func (a *Assets) IconSize(ref string) (api.Size, error) {
	asset, err := a.Load(ref)
	if err != nil {
		return api.Size{}, err
	}
	return asset.Size, nil
}

// Load returns the cached asset for ref, reading it from disk on first use
func (a *Assets) Load(ref string) (*Asset, error) {
	a.mu.RLock()
	asset, ok := a.cache[ref]
	a.mu.RUnlock()
	if ok {
		return asset, nil
	}

	asset, err := a.read(ref)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.cache[ref]; ok {
		return existing, nil
	}
	a.cache[ref] = asset
	return asset, nil
}

// Preload loads every ref up front so a missing icon fails at startup
func (a *Assets) Preload(refs ...string) error {
	for _, ref := range refs {
		if _, err := a.Load(ref); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assets) read(ref string) (*Asset, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &api.AssetMissingError{Kind: api.KindIcon, Path: ref}
		}
		return nil, fmt.Errorf("failed to read icon %s: %w", ref, err)
	}

	var asset *Asset
	switch ext := strings.ToLower(filepath.Ext(ref)); ext {
	case ".svg":
		asset, err = a.rasterizeSVG(data)
	case ".png", ".jpg", ".jpeg":
		asset, err = decodeRaster(data)
	default:
		err = fmt.Errorf("unsupported image format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load icon %s: %w", ref, err)
	}
	asset.Ref = ref
	logger.Debugf("loaded icon %s (%s %.0fx%.0f)", ref, asset.Type, asset.Size.W, asset.Size.H)
	return asset, nil
}

// decodeRaster validates the image and normalizes PNGs to 8-bit
// non-interlaced NRGBA, the only PNG flavour the PDF writer embeds.
func decodeRaster(data []byte) (*Asset, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("image has invalid dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}
	size := api.Size{W: float64(bounds.Dx()), H: float64(bounds.Dy())}

	if format == "jpeg" {
		return &Asset{Type: imageJPG, Data: data, Size: size}, nil
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return &Asset{Type: imagePNG, Data: buf.Bytes(), Size: size}, nil
}

// rasterizeSVG renders an SVG icon to a PNG whose longer side is
// SVGRasterSize pixels, keeping the viewBox aspect ratio.
func (a *Assets) rasterizeSVG(data []byte) (*Asset, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.StrictErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	size := api.Size{W: icon.ViewBox.W, H: icon.ViewBox.H}
	if size.W <= 0 || size.H <= 0 {
		size = api.Size{W: 100, H: 100}
	}

	longest := a.SVGRasterSize
	if longest <= 0 {
		longest = 512
	}
	w, h := longest, longest
	if size.W >= size.H {
		h = max(1, int(float64(longest)*size.H/size.W))
	} else {
		w = max(1, int(float64(longest)*size.W/size.H))
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return &Asset{Type: imagePNG, Data: buf.Bytes(), Size: size}, nil
}
