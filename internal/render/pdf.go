package render

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// writePDF lays out the study notes as an A4 document: a title block,
// an optional table of contents, the content body, and a glossary page.
func writePDF(path string, in Input) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.MultiCell(0, 10, tr(in.Title), "", "C", false)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generated on %s", in.GeneratedAt.Format("2 January 2006"))),
		"", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)

	if in.WithTOC && len(in.Headings) > 0 {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 9, tr("Table of Contents"), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 11)
		for _, e := range BuildTOC(in.Headings) {
			indent := float64((e.Level - 1) * 6)
			pdf.SetX(20 + indent)
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s  %s", e.Number, e.Title)), "", "L", false)
		}
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, p := range paragraphs(in.Content) {
		pdf.MultiCell(0, 6, tr(p), "", "J", false)
		pdf.Ln(3)
	}

	if len(in.Glossary) > 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 9, tr("Glossary"), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		for _, g := range in.Glossary {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, tr(g.Term), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(g.Definition), "", "L", false)
			pdf.Ln(2)
		}
	}

	return pdf.OutputFileAndClose(path)
}
