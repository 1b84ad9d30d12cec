package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/flanksource/doorsheet/catalog"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const (
	entryHeight   = 22.0 // mm
	sectionHeight = 12.0
)

var (
	sectionColor = &props.Color{Red: 230, Green: 230, Blue: 230}
	infoColor    = &props.Color{Red: 64, Green: 64, Blue: 64}
)

// Builder lays out the catalog reference document on maroto's row grid:
// one row per entry with the icon, its label and its info text.
type Builder struct {
	maroto core.Maroto
	assets *Assets
	debug  bool
	title  string
	err    error
}

// BuilderOption is a function that configures a Builder
type BuilderOption func(*Builder)

// WithDebug enables debug mode which shows grid lines
func WithDebug(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.debug = enabled
	}
}

// WithTitle sets the header repeated on every page
func WithTitle(title string) BuilderOption {
	return func(b *Builder) {
		b.title = title
	}
}

func NewBuilder(assets *Assets, opts ...BuilderOption) *Builder {
	b := &Builder{assets: assets, title: "Door sheet catalog"}
	for _, opt := range opts {
		opt(b)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(12).
		WithBottomMargin(12).
		WithDebug(b.debug).
		Build()
	b.maroto = maroto.New(cfg)

	if b.title != "" {
		header := row.New(14).Add(col.New(12).Add(text.New(b.title, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Left,
		})))
		b.err = b.maroto.RegisterHeader(header)
	}
	return b
}

// AddSection starts a titled group of entries
func (b *Builder) AddSection(title string) {
	b.maroto.AddRows(row.New(sectionHeight).
		Add(col.New(12).Add(text.New(title, props.Text{Size: 11, Style: fontstyle.Bold, Top: 3, Left: 2}))).
		WithStyle(&props.Cell{BackgroundColor: sectionColor}))
}

// AddEntry adds one icon row. An empty icon leaves the first column blank.
func (b *Builder) AddEntry(icon, label, info string) error {
	iconCol := col.New(2)
	if icon != "" {
		asset, err := b.assets.Load(icon)
		if err != nil {
			return err
		}
		iconCol.Add(image.NewFromBytes(asset.Data, asset.Extension(), props.Rect{Center: true, Percent: 85}))
	}
	b.maroto.AddRows(row.New(entryHeight).Add(
		iconCol,
		col.New(3).Add(text.New(label, props.Text{Size: 10, Style: fontstyle.Bold, Top: 8})),
		col.New(7).Add(text.New(info, props.Text{Size: 9, Top: 3, Color: infoColor})),
	))
	return nil
}

// Output generates the final PDF content
func (b *Builder) Output() ([]byte, error) {
	if b.err != nil {
		return nil, fmt.Errorf("failed to register header: %w", b.err)
	}
	document, err := b.maroto.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return document.GetBytes(), nil
}

// CatalogSheet renders every hazard, obligation sign, prohibition sign and
// risk level of cat as a printable reference document.
func CatalogSheet(cat *catalog.Catalog, assets *Assets, opts ...BuilderOption) ([]byte, error) {
	b := NewBuilder(assets, opts...)

	b.AddSection("Hazards")
	for _, h := range cat.Hazards() {
		if err := b.AddEntry(h.Icon, h.Label, h.Info); err != nil {
			return nil, fmt.Errorf("hazard %s: %w", h.Key, err)
		}
	}
	for _, group := range []struct {
		title string
		signs []catalog.SignIcon
	}{
		{"Obligation signs", cat.Obligations()},
		{"Prohibition signs", cat.Prohibitions()},
	} {
		if len(group.signs) == 0 {
			continue
		}
		b.AddSection(group.title)
		for _, s := range group.signs {
			if err := b.AddEntry(s.Icon, s.Label, s.Info); err != nil {
				return nil, fmt.Errorf("%s %s: %w", s.Kind, s.Key, err)
			}
		}
	}

	b.AddSection("Risk levels")
	for _, r := range cat.Risks() {
		info := r.Info
		if info == "" {
			info = "Template: " + filepath.Base(r.Template)
		}
		if err := b.AddEntry("", r.Label, info); err != nil {
			return nil, err
		}
	}
	return b.Output()
}
