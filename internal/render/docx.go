package render

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// writeDOCX emits a minimal but valid OOXML package: content types, the
// package relationship, and a single document part. Word and LibreOffice
// both open it; styling stays deliberately simple.
func writeDOCX(path string, in Input) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", docxDocument(in)},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			zw.Close()
			f.Close()
			return err
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			zw.Close()
			f.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func docxDocument(in Input) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	writeDocxHeading(&b, in.Title, 36)
	writeDocxPara(&b, fmt.Sprintf("Generated on %s", in.GeneratedAt.Format("2 January 2006")), false)

	if in.WithTOC && len(in.Headings) > 0 {
		writeDocxHeading(&b, "Table of Contents", 28)
		for _, e := range BuildTOC(in.Headings) {
			writeDocxPara(&b, fmt.Sprintf("%s  %s", e.Number, e.Title), false)
		}
	}

	for _, p := range paragraphs(in.Content) {
		writeDocxPara(&b, p, false)
	}

	if len(in.Glossary) > 0 {
		writeDocxHeading(&b, "Glossary", 28)
		for _, g := range in.Glossary {
			writeDocxPara(&b, g.Term, true)
			writeDocxPara(&b, g.Definition, false)
		}
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeDocxHeading(b *strings.Builder, text string, halfPoints int) {
	fmt.Fprintf(b,
		`<w:p><w:r><w:rPr><w:b/><w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		halfPoints, xmlEscape(text))
}

func writeDocxPara(b *strings.Builder, text string, bold bool) {
	rpr := ""
	if bold {
		rpr = `<w:rPr><w:b/></w:rPr>`
	}
	fmt.Fprintf(b, `<w:p><w:r>%s<w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		rpr, xmlEscape(text))
}

func xmlEscape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
