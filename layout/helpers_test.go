package layout

import (
	"unicode/utf8"

	"github.com/flanksource/doorsheet/api"
)

var a4 = api.Size{W: 595.28, H: 841.89}

// fixedMeasurer treats every rune as half an em wide
type fixedMeasurer struct{}

func (fixedMeasurer) TextWidth(text string, _ api.FontStyle, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * 0.5
}

type mapSizer map[string]api.Size

func (m mapSizer) IconSize(ref string) (api.Size, error) {
	size, ok := m[ref]
	if !ok {
		return api.Size{}, &api.AssetMissingError{Kind: api.KindIcon, Path: ref}
	}
	return size, nil
}

func icons(sizes ...api.Size) []Icon {
	out := make([]Icon, len(sizes))
	for i, s := range sizes {
		out[i] = Icon{Ref: string(rune('a' + i)), Size: s, Lines: []string{"Caption"}}
	}
	return out
}

func squares(n int) []Icon {
	sizes := make([]api.Size, n)
	for i := range sizes {
		sizes[i] = api.Size{W: 512, H: 512}
	}
	return icons(sizes...)
}
