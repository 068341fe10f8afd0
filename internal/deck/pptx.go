package deck

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MIMEType is the standard media type of the rendered presentation.
const MIMEType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// English Metric Units, the native coordinate space of OOXML drawings.
const emuPerInch = 914400

// Fallback canvas for templates without an explicit slide size (16:9).
const (
	defaultSlideWidth  = 12192000
	defaultSlideHeight = 6858000
)

const (
	relTypeSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"

	slideContentType = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
)

// zipPart is one entry of the presentation package, kept in template order.
type zipPart struct {
	name string
	data []byte
}

// templateDoc is the in-memory working copy of a template asset. The
// on-disk file is never touched after loading.
type templateDoc struct {
	parts       []zipPart
	slideWidth  int64
	slideHeight int64

	// layoutTarget is the rels target of the layout hosting generated
	// slides, e.g. "../slideLayouts/slideLayout7.xml".
	layoutTarget string
}

var (
	sldSzPattern       = regexp.MustCompile(`<p:sldSz[^>]*\bcx="(\d+)"[^>]*\bcy="(\d+)"`)
	layoutNamePattern  = regexp.MustCompile(`^ppt/slideLayouts/slideLayout(\d+)\.xml$`)
	blankLayoutPattern = regexp.MustCompile(`(?i)type="blank"|<p:cSld[^>]*name="[^"]*blank`)
	sldIdLstPattern    = regexp.MustCompile(`(?s)<p:sldIdLst>.*?</p:sldIdLst>|<p:sldIdLst\s*/>`)
	slideOverridePtn   = regexp.MustCompile(`<Override PartName="/ppt/slides/slide\d+\.xml"[^>]*/>`)
	relIDPattern       = regexp.MustCompile(`Id="rId(\d+)"`)
)

// loadTemplate reads the template asset into memory and locates the slide
// canvas size and the layout that will host generated slides: the one
// labeled blank, or the first layout when none is.
func loadTemplate(path string) (*templateDoc, error) {
	const op = "loadTemplate"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewRenderError(op, err, fmt.Sprintf("failed to read template asset %s", path))
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, NewRenderError(op, ErrBadTemplate, err.Error())
	}

	tpl := &templateDoc{
		slideWidth:  defaultSlideWidth,
		slideHeight: defaultSlideHeight,
	}

	type layout struct {
		number int
		name   string
		blank  bool
	}
	var layouts []layout
	var sawPresentation bool

	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, NewRenderError(op, ErrBadTemplate, fmt.Sprintf("entry %s: %v", file.Name, err))
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, NewRenderError(op, ErrBadTemplate, fmt.Sprintf("entry %s: %v", file.Name, err))
		}
		tpl.parts = append(tpl.parts, zipPart{name: file.Name, data: content})

		switch {
		case file.Name == "ppt/presentation.xml":
			sawPresentation = true
			if m := sldSzPattern.FindSubmatch(content); m != nil {
				tpl.slideWidth, _ = strconv.ParseInt(string(m[1]), 10, 64)
				tpl.slideHeight, _ = strconv.ParseInt(string(m[2]), 10, 64)
			}
		case layoutNamePattern.MatchString(file.Name):
			num, _ := strconv.Atoi(layoutNamePattern.FindStringSubmatch(file.Name)[1])
			layouts = append(layouts, layout{
				number: num,
				name:   file.Name,
				blank:  blankLayoutPattern.Match(content),
			})
		}
	}

	if !sawPresentation {
		return nil, NewRenderError(op, ErrBadTemplate, "missing ppt/presentation.xml")
	}
	if len(layouts) == 0 {
		return nil, NewRenderError(op, ErrBadTemplate, "template has no slide layouts")
	}

	sort.Slice(layouts, func(i, j int) bool { return layouts[i].number < layouts[j].number })
	chosen := layouts[0]
	for _, l := range layouts {
		if l.blank {
			chosen = l
			break
		}
	}
	tpl.layoutTarget = "../slideLayouts/" + strings.TrimPrefix(chosen.name, "ppt/slideLayouts/")

	return tpl, nil
}

// relationships mirrors a .rels part for reading.
type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Rels    []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// buildDeck assembles the output package: every template part except the
// pre-existing slides is carried over, and one generated slide part (plus
// rels) is written per entry of slidesXML. The presentation part, its rels,
// and the content types are rewritten so the final deck holds exactly the
// generated slides, in order.
func buildDeck(tpl *templateDoc, slidesXML []string) ([]byte, error) {
	const op = "buildDeck"

	newRels, slideRIDs, err := rewriteRels(tpl, len(slidesXML))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	writeEntry := func(name string, data []byte) error {
		f, err := w.Create(name)
		if err != nil {
			return NewRenderError(op, err, fmt.Sprintf("create zip entry %s", name))
		}
		if _, err := f.Write(data); err != nil {
			return NewRenderError(op, err, fmt.Sprintf("write zip entry %s", name))
		}
		return nil
	}

	for _, part := range tpl.parts {
		if strings.HasPrefix(part.name, "ppt/slides/") {
			// Pre-existing placeholder slides are dropped so the deck
			// ends with one slide per input, nothing more.
			continue
		}

		data := part.data
		switch part.name {
		case "[Content_Types].xml":
			data = rewriteContentTypes(data, len(slidesXML))
		case "ppt/presentation.xml":
			data, err = rewritePresentation(data, slideRIDs)
			if err != nil {
				_ = w.Close()
				return nil, err
			}
		case "ppt/_rels/presentation.xml.rels":
			data = newRels
		}

		if err := writeEntry(part.name, data); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	for i, slideXML := range slidesXML {
		n := i + 1
		if err := writeEntry(fmt.Sprintf("ppt/slides/slide%d.xml", n), []byte(slideXML)); err != nil {
			_ = w.Close()
			return nil, err
		}
		rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="` + relTypeLayout + `" Target="` + tpl.layoutTarget + `"/>` +
			`</Relationships>`
		if err := writeEntry(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), []byte(rels)); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, NewRenderError(op, err, "failed to finalize package")
	}
	return buf.Bytes(), nil
}

// rewriteRels drops the template's slide relationships, keeps everything
// else (masters, themes, view props), and appends one fresh relationship
// per generated slide. It returns the new rels part and the slide rIds in
// slide order.
func rewriteRels(tpl *templateDoc, slideCount int) ([]byte, []string, error) {
	const op = "rewriteRels"

	var orig []byte
	for _, part := range tpl.parts {
		if part.name == "ppt/_rels/presentation.xml.rels" {
			orig = part.data
			break
		}
	}
	if orig == nil {
		return nil, nil, NewRenderError(op, ErrBadTemplate, "missing presentation rels")
	}

	var parsed relationships
	if err := xml.Unmarshal(orig, &parsed); err != nil {
		return nil, nil, NewRenderError(op, ErrBadTemplate, fmt.Sprintf("presentation rels: %v", err))
	}

	maxID := 0
	for _, m := range relIDPattern.FindAllSubmatch(orig, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n > maxID {
			maxID = n
		}
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, rel := range parsed.Rels {
		if rel.Type == relTypeSlide {
			continue
		}
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="%s"/>`, rel.ID, rel.Type, rel.Target)
	}

	slideRIDs := make([]string, slideCount)
	for i := 0; i < slideCount; i++ {
		rid := fmt.Sprintf("rId%d", maxID+1+i)
		slideRIDs[i] = rid
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="slides/slide%d.xml"/>`, rid, relTypeSlide, i+1)
	}
	sb.WriteString(`</Relationships>`)

	return []byte(sb.String()), slideRIDs, nil
}

// rewritePresentation replaces the slide ID list of presentation.xml with
// entries for the generated slides, leaving the rest of the part (masters,
// slide size, view settings) untouched.
func rewritePresentation(orig []byte, slideRIDs []string) ([]byte, error) {
	const op = "rewritePresentation"

	var sb strings.Builder
	sb.WriteString(`<p:sldIdLst>`)
	for i, rid := range slideRIDs {
		fmt.Fprintf(&sb, `<p:sldId id="%d" r:id="%s"/>`, 256+i, rid)
	}
	sb.WriteString(`</p:sldIdLst>`)
	replacement := sb.String()

	if sldIdLstPattern.Match(orig) {
		return sldIdLstPattern.ReplaceAll(orig, []byte(replacement)), nil
	}

	// Templates stripped of all slides may omit the list entirely; insert
	// it after the master list, where the schema expects it.
	const anchor = "</p:sldMasterIdLst>"
	if idx := bytes.Index(orig, []byte(anchor)); idx >= 0 {
		cut := idx + len(anchor)
		out := make([]byte, 0, len(orig)+len(replacement))
		out = append(out, orig[:cut]...)
		out = append(out, replacement...)
		out = append(out, orig[cut:]...)
		return out, nil
	}

	return nil, NewRenderError(op, ErrBadTemplate, "presentation.xml has no slide master list")
}

// rewriteContentTypes strips the template's slide overrides and declares
// the generated slide parts.
func rewriteContentTypes(orig []byte, slideCount int) []byte {
	cleaned := slideOverridePtn.ReplaceAll(orig, nil)

	var sb strings.Builder
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&sb, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="%s"/>`, i, slideContentType)
	}
	sb.WriteString(`</Types>`)

	return bytes.Replace(cleaned, []byte(`</Types>`), []byte(sb.String()), 1)
}
