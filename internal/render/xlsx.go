package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// writeXLSX lays the material out as a workbook: one sheet of content
// paragraphs, an index sheet when a TOC was requested, and a glossary
// sheet. Useful for spreadsheet-side review of long note sets.
func writeXLSX(path string, in Input) error {
	wb := excelize.NewFile()
	defer wb.Close()

	const content = "Content"
	wb.SetSheetName("Sheet1", content)

	wb.SetCellValue(content, "A1", in.Title)
	wb.SetCellValue(content, "A2", fmt.Sprintf("Generated on %s", in.GeneratedAt.Format("2 January 2006")))
	row := 4
	for i, p := range paragraphs(in.Content) {
		wb.SetCellValue(content, fmt.Sprintf("A%d", row), i+1)
		wb.SetCellValue(content, fmt.Sprintf("B%d", row), p)
		row++
	}
	wb.SetColWidth(content, "B", "B", 100)

	if in.WithTOC && len(in.Headings) > 0 {
		const index = "Index"
		if _, err := wb.NewSheet(index); err != nil {
			return err
		}
		wb.SetCellValue(index, "A1", "Number")
		wb.SetCellValue(index, "B1", "Title")
		wb.SetCellValue(index, "C1", "Level")
		for i, e := range BuildTOC(in.Headings) {
			wb.SetCellValue(index, fmt.Sprintf("A%d", i+2), e.Number)
			wb.SetCellValue(index, fmt.Sprintf("B%d", i+2), e.Title)
			wb.SetCellValue(index, fmt.Sprintf("C%d", i+2), e.Level)
		}
		wb.SetColWidth(index, "B", "B", 60)
	}

	if len(in.Glossary) > 0 {
		const glossary = "Glossary"
		if _, err := wb.NewSheet(glossary); err != nil {
			return err
		}
		wb.SetCellValue(glossary, "A1", "Term")
		wb.SetCellValue(glossary, "B1", "Definition")
		for i, g := range in.Glossary {
			wb.SetCellValue(glossary, fmt.Sprintf("A%d", i+2), g.Term)
			wb.SetCellValue(glossary, fmt.Sprintf("B%d", i+2), g.Definition)
		}
		wb.SetColWidth(glossary, "B", "B", 80)
	}

	return wb.SaveAs(path)
}
