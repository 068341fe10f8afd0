package deck

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"slidegen/pkg/models"
)

// Text box geometry, matching the fixed canvas positions of the freeform
// layout (EMU).
const (
	marginLTR = 1 * emuPerInch
	// Right-to-left blocks get a wider left margin to balance the
	// asymmetric reading direction against the fixed-width canvas.
	marginRTL = 18 * emuPerInch / 10

	titleTop    = emuPerInch / 2
	titleWidth  = 8 * emuPerInch
	titleHeight = 15 * emuPerInch / 10

	contentTop    = 16 * emuPerInch / 10
	contentWidth  = 75 * emuPerInch / 10
	contentHeight = 4 * emuPerInch

	numberWidth  = 1 * emuPerInch
	numberHeight = 4 * emuPerInch / 10
)

const (
	numberFontSize = 14
	numberColor    = "646464"
)

// slideXML builds one complete generated slide part: a title text box, a
// content text box with one paragraph per bullet, and, for every slide but
// the first, a slide-number label in the bottom-right corner. idx is the
// zero-based slide position.
func slideXML(s models.Slide, idx int, rc renderContext, slideW, slideH int64) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	sb.WriteString(`<p:cSld><p:spTree>`)
	sb.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	sb.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/>` +
		`<a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)

	shapeID := 2

	titleBody := paragraphXML(s.Title, rc.titleSize, rc.titleColor, rc.font)
	sb.WriteString(textBoxXML(shapeID, "Title", blockMargin(s.Title), titleTop, titleWidth, titleHeight, titleBody))
	shapeID++

	bullets := s.Bullets
	if len(bullets) > rc.maxBullets {
		bullets = bullets[:rc.maxBullets]
	}
	if len(bullets) > 0 {
		var body strings.Builder
		for _, bullet := range bullets {
			body.WriteString(paragraphXML(bullet, rc.bulletSize, rc.bulletColor, rc.font))
		}
		blockText := strings.Join(bullets, "\n")
		sb.WriteString(textBoxXML(shapeID, "Content", blockMargin(blockText), contentTop, contentWidth, contentHeight, body.String()))
		shapeID++
	}

	if idx > 0 {
		label := fmt.Sprintf(`<a:p><a:pPr algn="ctr"/><a:r><a:rPr lang="en-US" sz="%d" dirty="0">`+
			`<a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:rPr><a:t>%d</a:t></a:r></a:p>`,
			numberFontSize*100, numberColor, idx+1)
		sb.WriteString(textBoxXML(shapeID, "SlideNumber",
			slideW-numberWidth, slideH-emuPerInch/2, numberWidth, numberHeight, label))
	}

	sb.WriteString(`</p:spTree></p:cSld>`)
	sb.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	sb.WriteString(`</p:sld>`)
	return sb.String()
}

// blockMargin picks the left offset of a text block from its direction.
func blockMargin(text string) int64 {
	if isRightToLeft(text) {
		return marginRTL
	}
	return marginLTR
}

// textBoxXML emits a freeform word-wrapped text box shape at the given
// canvas position.
func textBoxXML(id int, name string, x, y, w, h int64, body string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`+
		`<p:txBody><a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr><a:lstStyle/>%s</p:txBody></p:sp>`,
		id, name, x, y, w, h, body)
}

// paragraphXML emits one paragraph. Direction and alignment follow the
// paragraph's own script; double-asterisk spans become bold runs. The font
// is applied to both the latin and complex-script slots so Arabic text
// picks it up.
func paragraphXML(text string, sizePt int, color, font string) string {
	var sb strings.Builder

	if isRightToLeft(text) {
		sb.WriteString(`<a:p><a:pPr algn="r" rtl="1"/>`)
	} else {
		sb.WriteString(`<a:p><a:pPr algn="l" rtl="0"/>`)
	}

	for _, run := range splitBoldRuns(text) {
		bold := ""
		if run.Bold {
			bold = ` b="1"`
		}
		fmt.Fprintf(&sb, `<a:r><a:rPr lang="en-US" sz="%d"%s dirty="0">`+
			`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`+
			`<a:latin typeface="%s"/><a:cs typeface="%s"/></a:rPr><a:t>%s</a:t></a:r>`,
			sizePt*100, bold, color, font, font, xmlEscape(run.Text))
	}

	sb.WriteString(`</a:p>`)
	return sb.String()
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
