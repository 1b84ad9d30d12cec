package layout

import (
	"github.com/flanksource/doorsheet/api"
)

// Measurer reports the advance width of a text run in points
type Measurer interface {
	TextWidth(text string, style api.FontStyle, size float64) float64
}

// IconSizer reports the intrinsic pixel size of an icon source
type IconSizer interface {
	IconSize(ref string) (api.Size, error)
}

// fit scales an intrinsic size to maxW, then to maxH if the height still
// overflows. The scale is uniform so the aspect ratio is preserved.
func fit(src api.Size, maxW, maxH float64) api.Size {
	if src.W <= 0 || src.H <= 0 {
		return api.Size{}
	}
	scale := maxW / src.W
	w, h := maxW, src.H*scale
	if h > maxH {
		scale = maxH / src.H
		w, h = src.W*scale, maxH
	}
	return api.Size{W: w, H: h}
}

func scaled(s api.Size, k float64) api.Size {
	return api.Size{W: s.W * k, H: s.H * k}
}
