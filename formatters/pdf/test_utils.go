package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"testing"

	"github.com/flanksource/doorsheet/api"
	"github.com/jung-kurt/gofpdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// GetPDFInfo returns the page count and byte size of a PDF
func GetPDFInfo(pdfData []byte) (pages int, size int, err error) {
	ctx, err := pdfapi.ReadContext(bytes.NewReader(pdfData), model.NewDefaultConfiguration())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return ctx.PageCount, len(pdfData), nil
}

// PageSize returns the size of the first page of a PDF in points
func PageSize(pdfData []byte) (api.Size, error) {
	tpl, err := ParseTemplate("<memory>", pdfData)
	if err != nil {
		return api.Size{}, err
	}
	return tpl.Page, nil
}

// AssertPDFBasicStructure performs basic PDF structure validation
func AssertPDFBasicStructure(t *testing.T, pdfData []byte) {
	t.Helper()

	if len(pdfData) < 4 || string(pdfData[:4]) != "%PDF" {
		t.Error("Generated data doesn't look like a PDF (missing %PDF header)")
		return
	}
	if len(pdfData) < 100 {
		t.Error("PDF appears to be too small to contain meaningful content")
		return
	}
	if _, err := pdfapi.ReadContext(bytes.NewReader(pdfData), model.NewDefaultConfiguration()); err != nil {
		t.Errorf("PDF structure validation failed: %v", err)
	}
}

// AssertPDFPageCount verifies that the PDF has the expected number of pages
func AssertPDFPageCount(t *testing.T, pdfData []byte, expectedPages int) {
	t.Helper()

	pages, _, err := GetPDFInfo(pdfData)
	if err != nil {
		t.Errorf("Failed to read PDF for page count verification: %v", err)
		return
	}
	if pages != expectedPages {
		t.Errorf("PDF has %d pages, expected %d", pages, expectedPages)
	}
}

// AssertPDFPageSize verifies the first page size to within a hundredth of a point
func AssertPDFPageSize(t *testing.T, pdfData []byte, expected api.Size) {
	t.Helper()

	size, err := PageSize(pdfData)
	if err != nil {
		t.Errorf("Failed to read PDF page size: %v", err)
		return
	}
	if math.Abs(size.W-expected.W) > 0.01 || math.Abs(size.H-expected.H) > 0.01 {
		t.Errorf("PDF page is %.2fx%.2f, expected %.2fx%.2f", size.W, size.H, expected.W, expected.H)
	}
}

// WriteTestPNG writes a w x h icon with a transparent border to path
func WriteTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x > w/8 && x < w-w/8 && y > h/8 && y < h-h/8 {
				img.SetNRGBA(x, y, color.NRGBA{R: 230, G: 180, B: 0, A: 255})
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}

// WriteTestTemplate writes a template PDF with the given page size and count
func WriteTestTemplate(t *testing.T, path string, page api.Size, pages int) {
	t.Helper()

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: page.W, Ht: page.H},
	})
	doc.SetFont("Helvetica", "B", 16)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.SetDrawColor(200, 0, 0)
		doc.Rect(10, 10, page.W-20, page.H-20, "D")
		doc.Text(30, 40, fmt.Sprintf("TEMPLATE %d", i+1))
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to write template %s: %v", path, err)
	}
}
