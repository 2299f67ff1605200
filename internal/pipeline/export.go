package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tendercv/internal"
	"tendercv/internal/dates"
)

// ExportPersonnelXLSX writes the personnel table in the normalized column
// shape: From rendered MM-YYYY (raw string kept when it never parsed), To
// always "Present", YOE as an integer.
func ExportPersonnelXLSX(personnel []internal.PersonnelRecord, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Name", "Qualification", "Job Title", "From", "To", "Years of Experience"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, person := range personnel {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		from := dates.Display(person.From)
		if from == "" {
			from = person.FromRaw
		}

		set(1, person.Name)
		set(2, person.Qualification)
		set(3, person.JobTitle)
		set(4, from)
		set(5, dates.Present)
		set(6, person.YearsOfExperience)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
