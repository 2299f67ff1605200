package pipeline

import (
	"bytes"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tendercv/internal"
	"tendercv/internal/dates"
)

// ParsePersonnelHTML reads a roster from an HTML table export (intranet pages
// save rosters this way). The first table whose header row carries the
// personnel columns wins; the same To/YOE recomputation rules apply as for
// xlsx input.
func ParsePersonnelHTML(content []byte, ref time.Time) ([]internal.PersonnelRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var out []internal.PersonnelRecord
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return true
		}

		headers := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, normalizeSpaces(cell.Text()))
		})
		cols := inferPersonnelColumns(headers)
		if !cols.found() {
			return true
		}

		found = true
		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, normalizeSpaces(cell.Text()))
			})
			if len(cells) == 0 || allBlank(cells) {
				return
			}

			record := internal.PersonnelRecord{
				RowNo:         len(out) + 1,
				Source:        internal.SourceHTMLTable,
				Name:          pickCell(cells, cols.name),
				Qualification: pickCell(cells, cols.qualification),
				JobTitle:      pickCell(cells, cols.title),
				FromRaw:       pickCell(cells, cols.from),
			}
			record.From = dates.Normalize(record.FromRaw)
			record.YearsOfExperience = dates.YearsOfExperience(record.From, ref)
			out = append(out, record)
		})
		return false
	})

	if !found {
		return nil, fmt.Errorf("no personnel table found in html input")
	}
	return out, nil
}
