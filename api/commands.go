package api

import "fmt"

// Align is the horizontal anchor of a text run relative to its draw point
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// FontStyle selects a face from the configured font set
type FontStyle string

const (
	FontRegular FontStyle = ""
	FontBold    FontStyle = "B"
)

// RGB is an 8-bit color
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
)

// Command is one immutable draw operation produced by the layout engines and
// replayed by a canvas. Commands are applied in slice order.
type Command interface {
	// Kind returns a short name used in logs and tests
	Kind() string
	// Bounds returns the area the command paints
	Bounds() Rect
}

// ImageCommand blits a raster icon into Rect, preserving alpha.
type ImageCommand struct {
	Ref  string `json:"ref"`
	Rect Rect   `json:"rect"`
}

func (c ImageCommand) Kind() string { return "image" }
func (c ImageCommand) Bounds() Rect { return c.Rect }
func (c ImageCommand) String() string { return fmt.Sprintf("image %s @ %+v", c.Ref, c.Rect) }

// TextCommand draws a single line of text with its baseline at At. Width is
// the measured advance at Size, used to compute Bounds.
type TextCommand struct {
	Text  string    `json:"text"`
	At    Point     `json:"at"`
	Style FontStyle `json:"style,omitempty"`
	Size  float64   `json:"size"`
	Align Align     `json:"align"`
	Width float64   `json:"width,omitempty"`
	Color RGB       `json:"color"`
}

func (c TextCommand) Kind() string { return "text" }

func (c TextCommand) Bounds() Rect {
	x := c.At.X
	switch c.Align {
	case AlignCenter:
		x -= c.Width / 2
	case AlignRight:
		x -= c.Width
	}
	return Rect{X: x, Y: c.At.Y, W: c.Width, H: c.Size}
}

func (c TextCommand) String() string {
	return fmt.Sprintf("text %q %.1fpt %s @ (%.1f, %.1f)", c.Text, c.Size, c.Align, c.At.X, c.At.Y)
}

// FillCommand paints a borderless rectangle
type FillCommand struct {
	Rect  Rect `json:"rect"`
	Color RGB  `json:"color"`
}

func (c FillCommand) Kind() string { return "fill" }
func (c FillCommand) Bounds() Rect { return c.Rect }

// LineCommand strokes a straight segment
type LineCommand struct {
	From  Point   `json:"from"`
	To    Point   `json:"to"`
	Width float64 `json:"width"`
	Color RGB     `json:"color"`
}

func (c LineCommand) Kind() string { return "line" }

func (c LineCommand) Bounds() Rect {
	x0, x1 := c.From.X, c.To.X
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	y0, y1 := c.From.Y, c.To.Y
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
