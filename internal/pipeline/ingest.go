package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tendercv/internal"
	"tendercv/internal/dates"
)

var reSpaces = regexp.MustCompile(`\s+`)

type personnelColumns struct {
	name, qualification, title, from int
}

func (c personnelColumns) found() bool {
	return c.name >= 0 && c.qualification >= 0 && c.title >= 0 && c.from >= 0
}

// LoadPersonnelFile reads a personnel roster from disk, picking the parser by
// extension (.xlsx workbook or .html table export).
func LoadPersonnelFile(path string, ref time.Time) ([]internal.PersonnelRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return ParsePersonnelHTML(content, ref)
	}
	return ParsePersonnelXLSX(content, ref)
}

// ParsePersonnelXLSX reads the first sheet carrying a recognizable personnel
// header. To and Years of Experience columns are ignored on input: the person
// interval is always open-ended and YOE is derived from the From date against
// ref. Fully-empty rows are pruned.
func ParsePersonnelXLSX(content []byte, ref time.Time) ([]internal.PersonnelRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}

		cols := personnelColumns{name: -1, qualification: -1, title: -1, from: -1}
		out := []internal.PersonnelRecord{}
		for i, row := range rows {
			cells := normalizeCells(row)
			if len(cells) == 0 || allBlank(cells) {
				continue
			}
			if !cols.found() {
				if i < 3 {
					cols = inferPersonnelColumns(cells)
				}
				continue
			}

			record := internal.PersonnelRecord{
				RowNo:         len(out) + 1,
				Source:        internal.SourceXLSX,
				Name:          pickCell(cells, cols.name),
				Qualification: pickCell(cells, cols.qualification),
				JobTitle:      pickCell(cells, cols.title),
				FromRaw:       pickCell(cells, cols.from),
			}
			record.From = dates.Normalize(record.FromRaw)
			record.YearsOfExperience = dates.YearsOfExperience(record.From, ref)
			out = append(out, record)
		}

		if cols.found() {
			return out, nil
		}
	}

	return nil, fmt.Errorf("no personnel header row found (need Name, Qualification, Job Title, From columns)")
}

// ParseProjectsXLSX reads the project catalog from the named sheet. The
// experience column is split into bullets per the double-hyphen rule.
func ParseProjectsXLSX(content []byte, sheet string) ([]internal.ProjectRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	startIdx, endIdx, descIdx, expIdx := -1, -1, -1, -1
	out := []internal.ProjectRecord{}
	for i, row := range rows {
		cells := normalizeCells(row)
		if len(cells) == 0 || allBlank(cells) {
			continue
		}
		if descIdx < 0 {
			if i < 3 {
				startIdx = findHeaderIndex(cells, []string{"start"})
				endIdx = findHeaderIndex(cells, []string{"completion", "end"})
				descIdx = findHeaderIndex(cells, []string{"company", "project", "position"})
				expIdx = findHeaderIndex(cells, []string{"experience", "technical"})
			}
			continue
		}

		descriptor := pickCell(cells, descIdx)
		if descriptor == "" {
			continue
		}
		out = append(out, internal.ProjectRecord{
			RowNo:      len(out) + 1,
			Descriptor: descriptor,
			Start:      dates.Normalize(pickCell(cells, startIdx)),
			End:        dates.Normalize(pickCell(cells, endIdx)),
			Bullets:    SplitBullets(pickCell(cells, expIdx)),
		})
	}

	if descIdx < 0 {
		return nil, fmt.Errorf("sheet %q: no project header row found", sheet)
	}
	return out, nil
}

// SplitBullets breaks a raw experience field into trimmed fragments on the
// double-hyphen delimiter, after folding en-dashes to plain hyphens. Single
// hyphens inside a sentence survive.
func SplitBullets(raw string) []string {
	text := strings.TrimSpace(strings.ReplaceAll(raw, "–", "-"))
	for strings.HasPrefix(text, "--") {
		text = strings.TrimSpace(strings.TrimPrefix(text, "--"))
	}
	for strings.HasSuffix(text, "--") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "--"))
	}
	if text == "" {
		return nil
	}

	out := []string{}
	for _, part := range strings.Split(text, "--") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "-"))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func inferPersonnelColumns(headers []string) personnelColumns {
	return personnelColumns{
		name:          findHeaderIndex(headers, []string{"name"}),
		qualification: findHeaderIndex(headers, []string{"qualification", "qual", "certification"}),
		title:         findHeaderIndex(headers, []string{"job title", "title", "position", "role"}),
		from:          findHeaderIndex(headers, []string{"from", "start"}),
	}
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		for _, probe := range probes {
			if strings.Contains(lower, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx int) string {
	if idx >= 0 && idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	return ""
}

func normalizeCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, normalizeSpaces(c))
	}
	return out
}

func normalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
