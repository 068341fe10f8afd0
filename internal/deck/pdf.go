package deck

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"slidegen/pkg/models"
)

// PDFMIMEType is the media type of the PDF export.
const PDFMIMEType = "application/pdf"

// PDF canvas in points, matching a 16:9 slide.
const (
	pdfPageWidth  = 960
	pdfPageHeight = 540
	pdfMarginX    = 72
	pdfTitleY     = 60
	pdfLineGap    = 1.6
)

// RenderPDF produces a plain PDF twin of the deck: one page per slide with
// the title and capped bullets, bold spans rendered in a bold face.
//
// The export uses the PDF core fonts and performs no complex text shaping,
// so right-to-left scripts are not laid out; the presentation output is the
// authoritative artifact for those decks. Validation and error wrapping
// mirror Render.
func (r *Renderer) RenderPDF(req models.DeckRequest) ([]byte, error) {
	const op = "RenderPDF"

	if err := validateSlides(req.Slides); err != nil {
		return nil, err
	}
	rc, err := newRenderContext(req)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pdfPageWidth, Ht: pdfPageHeight},
	})

	titleR, titleG, titleB := hexToRGB(rc.titleColor)
	bulletR, bulletG, bulletB := hexToRGB(rc.bulletColor)

	for i, slide := range req.Slides {
		pdf.AddPage()

		pdf.SetTextColor(titleR, titleG, titleB)
		pdf.SetXY(pdfMarginX, pdfTitleY)
		writeRuns(pdf, slide.Title, float64(rc.titleSize), true)

		bullets := slide.Bullets
		if len(bullets) > rc.maxBullets {
			bullets = bullets[:rc.maxBullets]
		}

		pdf.SetTextColor(bulletR, bulletG, bulletB)
		y := pdfTitleY + float64(rc.titleSize)*2
		for _, bullet := range bullets {
			pdf.SetXY(pdfMarginX, y)
			pdf.SetFont("Helvetica", "", float64(rc.bulletSize))
			pdf.Write(float64(rc.bulletSize)*pdfLineGap, "- ")
			writeRuns(pdf, bullet, float64(rc.bulletSize), false)
			y += float64(rc.bulletSize) * pdfLineGap
		}

		if i > 0 {
			pdf.SetTextColor(100, 100, 100)
			pdf.SetFont("Helvetica", "", numberFontSize)
			pdf.SetXY(pdfPageWidth-pdfMarginX, pdfPageHeight-36)
			pdf.Write(numberFontSize*pdfLineGap, strconv.Itoa(i+1))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, NewRenderError(op, ErrRenderFailed, err.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(op, ErrRenderFailed, fmt.Sprintf("serialization: %v", err))
	}
	return buf.Bytes(), nil
}

// writeRuns writes a text block inline, switching the font style on
// double-asterisk bold spans.
func writeRuns(pdf *gofpdf.Fpdf, text string, size float64, baseBold bool) {
	for _, run := range splitBoldRuns(text) {
		style := ""
		if baseBold || run.Bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.Write(size*pdfLineGap, run.Text)
	}
}

// hexToRGB splits an uppercase 6-digit hex color into components.
func hexToRGB(hex string) (int, int, int) {
	r, _ := strconv.ParseInt(hex[0:2], 16, 32)
	g, _ := strconv.ParseInt(hex[2:4], 16, 32)
	b, _ := strconv.ParseInt(hex[4:6], 16, 32)
	return int(r), int(g), int(b)
}
