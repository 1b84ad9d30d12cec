package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet/api"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	// keep pdfcpu from creating its config directory under the user's home
	pdfapi.DisableConfigDir()
}

// Template is a parsed risk template document
type Template struct {
	Path  string
	Data  []byte
	Pages int
	// Page is the visible size of the first page in points
	Page api.Size
}

// LoadTemplate reads and validates the template at path
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &api.AssetMissingError{Kind: api.KindTemplate, Path: path}
		}
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return ParseTemplate(path, data)
}

// ParseTemplate validates template bytes; path is only used in errors
func ParseTemplate(path string, data []byte) (*Template, error) {
	ctx, err := pdfapi.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, &api.MalformedTemplateError{Path: path, Reason: "cannot be parsed", Err: err}
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, &api.MalformedTemplateError{Path: path, Reason: "page tree is invalid", Err: err}
	}
	if ctx.PageCount == 0 {
		return nil, &api.MalformedTemplateError{Path: path, Reason: "has no pages"}
	}

	_, _, inh, err := ctx.PageDict(1, false)
	if err != nil {
		return nil, &api.MalformedTemplateError{Path: path, Reason: "first page is unreadable", Err: err}
	}
	box := inh.CropBox
	if box == nil {
		box = inh.MediaBox
	}
	if box == nil {
		return nil, &api.MalformedTemplateError{Path: path, Reason: "first page has no media box"}
	}

	page := api.Size{W: box.Width(), H: box.Height()}
	if inh.Rotate%180 != 0 {
		page.W, page.H = page.H, page.W
	}
	if ctx.PageCount > 1 {
		logger.Warnf("template %s has %d pages, only the first is used", path, ctx.PageCount)
	}
	logger.Debugf("template %s: %d page(s), %.2fx%.2fpt", path, ctx.PageCount, page.W, page.H)
	return &Template{Path: path, Data: data, Pages: ctx.PageCount, Page: page}, nil
}

// Merge stamps the first page of overlay onto the first page of the
// template at scale 1 and returns the single page result. Both pages are
// expected to have the same size.
func (t *Template) Merge(overlay []byte) ([]byte, error) {
	conf := model.NewDefaultConfiguration()

	base := t.Data
	if t.Pages > 1 {
		var trimmed bytes.Buffer
		if err := pdfapi.Trim(bytes.NewReader(base), &trimmed, []string{"1"}, conf); err != nil {
			return nil, fmt.Errorf("failed to trim template %s: %w", t.Path, err)
		}
		base = trimmed.Bytes()
	}

	// the stamp is read back from a file by pdfcpu
	tmp, err := os.CreateTemp("", "doorsheet-overlay-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(overlay); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write overlay file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write overlay file: %w", err)
	}

	wm, err := pdfapi.PDFWatermark(tmp.Name(), "scale:1 abs, rot:0", true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare overlay stamp: %w", err)
	}

	var out bytes.Buffer
	if err := pdfapi.AddWatermarks(bytes.NewReader(base), &out, []string{"1"}, wm, conf); err != nil {
		return nil, fmt.Errorf("failed to merge overlay onto %s: %w", t.Path, err)
	}
	return out.Bytes(), nil
}
