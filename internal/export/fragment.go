package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/jung-kurt/gofpdf"

	"github.com/scandock/scanless/internal/ocr"
)

// Invisible text layer settings. Helvetica with an ascent ratio of 0.718
// places each word's baseline inside its recognized bounding box.
const (
	overlayFont     = "Helvetica"
	ascentRatio     = 0.718
	fallbackPt      = 10.0
	jpegQuality     = 90
	pointsPerInch   = 72.0
	defaultFragDPI  = 300
	fragmentImgName = "page"
)

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode page image: %w", err)
	}
	return buf.Bytes(), nil
}

// buildFragment produces a single-page PDF: the scanned image drawn
// full-bleed at the capture resolution, overlaid with the recognized text at
// alpha zero so the page is searchable but visually unchanged. Engines that
// return no word geometry get the plain text as one invisible block instead.
func buildFragment(jpegData []byte, bounds image.Rectangle, res ocr.Result, dpi int) ([]byte, error) {
	if dpi <= 0 {
		dpi = defaultFragDPI
	}
	scale := pointsPerInch / float64(dpi)
	pageW := float64(bounds.Dx()) * scale
	pageH := float64(bounds.Dy()) * scale
	if pageW <= 0 || pageH <= 0 {
		return nil, fmt.Errorf("page image has empty bounds %v", bounds)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader(fragmentImgName, opts, bytes.NewReader(jpegData))
	pdf.ImageOptions(fragmentImgName, 0, 0, pageW, pageH, false, opts, 0, "")

	pdf.SetFont(overlayFont, "", fallbackPt)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetAlpha(0, "Normal")

	switch {
	case len(res.Words) > 0:
		for _, w := range res.Words {
			if w.Text == "" || w.Bounds.H <= 0 {
				continue
			}
			pdf.SetFontSize(w.Bounds.H * scale)
			x := w.Bounds.X * scale
			y := (w.Bounds.Y + w.Bounds.H*ascentRatio) * scale
			pdf.Text(x, y, w.Text)
		}
	case res.PlainText != "":
		pdf.SetFontSize(fallbackPt)
		pdf.SetXY(0, 0)
		pdf.MultiCell(pageW, fallbackPt*1.2, res.PlainText, "", "L", false)
	}

	pdf.SetAlpha(1, "Normal")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("render page fragment: %w", err)
	}
	return out.Bytes(), nil
}
