package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/flanksource/doorsheet/api"
	"github.com/jung-kurt/gofpdf"
)

// creationDate is stamped on every overlay so identical input yields
// identical overlay bytes
var creationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Canvas is a single overlay page. It replays draw commands given in a
// y-up coordinate space onto gofpdf's y-down page, and doubles as the text
// measurer for the layout engines so measured and drawn widths agree.
//
// A Canvas belongs to one request and must not be shared.
type Canvas struct {
	doc       *gofpdf.Fpdf
	page      api.Size
	fonts     FontSet
	assets    *Assets
	translate func(string) string
	images    map[string]bool
}

// NewCanvas allocates a blank page of exactly size page
func NewCanvas(page api.Size, fonts FontSet, assets *Assets) (*Canvas, error) {
	if page.W <= 0 || page.H <= 0 {
		return nil, fmt.Errorf("invalid page size %.2fx%.2f", page.W, page.H)
	}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: page.W, Ht: page.H},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreationDate(creationDate)
	doc.SetCatalogSort(true)

	translate, err := fonts.register(doc)
	if err != nil {
		return nil, err
	}
	doc.AddPage()

	return &Canvas{
		doc:       doc,
		page:      page,
		fonts:     fonts,
		assets:    assets,
		translate: translate,
		images:    map[string]bool{},
	}, nil
}

// Page returns the page size in points
func (c *Canvas) Page() api.Size { return c.page }

// TextWidth implements layout.Measurer
func (c *Canvas) TextWidth(text string, style api.FontStyle, size float64) float64 {
	c.doc.SetFont(c.fonts.Family, string(style), size)
	return c.doc.GetStringWidth(c.translate(text))
}

// Draw applies cmds in order and stops at the first failure
func (c *Canvas) Draw(cmds ...api.Command) error {
	for i, cmd := range cmds {
		var err error
		switch cmd := cmd.(type) {
		case api.ImageCommand:
			err = c.image(cmd)
		case api.TextCommand:
			c.text(cmd)
		case api.FillCommand:
			c.fill(cmd)
		case api.LineCommand:
			c.line(cmd)
		default:
			err = fmt.Errorf("unsupported draw command %T", cmd)
		}
		if err == nil {
			err = c.doc.Error()
		}
		if err != nil {
			return fmt.Errorf("draw command %d: %w", i, err)
		}
	}
	return nil
}

// Output finalizes the page and returns the encoded document
func (c *Canvas) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// top converts a y-up bottom edge and height to gofpdf's y-down top edge
func (c *Canvas) top(y, h float64) float64 {
	return c.page.H - y - h
}

func (c *Canvas) image(cmd api.ImageCommand) error {
	if cmd.Rect.W <= 0 || cmd.Rect.H <= 0 {
		return nil
	}
	asset, err := c.assets.Load(cmd.Ref)
	if err != nil {
		return err
	}
	opts := gofpdf.ImageOptions{ImageType: asset.Type}
	if !c.images[cmd.Ref] {
		c.doc.RegisterImageOptionsReader(cmd.Ref, opts, bytes.NewReader(asset.Data))
		c.images[cmd.Ref] = true
	}
	c.doc.ImageOptions(cmd.Ref, cmd.Rect.X, c.top(cmd.Rect.Y, cmd.Rect.H), cmd.Rect.W, cmd.Rect.H, false, opts, 0, "")
	return nil
}

func (c *Canvas) text(cmd api.TextCommand) {
	text := c.translate(cmd.Text)
	c.doc.SetFont(c.fonts.Family, string(cmd.Style), cmd.Size)
	c.doc.SetTextColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))

	x := cmd.At.X
	switch cmd.Align {
	case api.AlignCenter:
		x -= c.doc.GetStringWidth(text) / 2
	case api.AlignRight:
		x -= c.doc.GetStringWidth(text)
	}
	c.doc.Text(x, c.page.H-cmd.At.Y, text)
}

func (c *Canvas) fill(cmd api.FillCommand) {
	c.doc.SetFillColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))
	c.doc.Rect(cmd.Rect.X, c.top(cmd.Rect.Y, cmd.Rect.H), cmd.Rect.W, cmd.Rect.H, "F")
}

func (c *Canvas) line(cmd api.LineCommand) {
	c.doc.SetDrawColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))
	c.doc.SetLineWidth(cmd.Width)
	c.doc.Line(cmd.From.X, c.page.H-cmd.From.Y, cmd.To.X, c.page.H-cmd.To.Y)
}
