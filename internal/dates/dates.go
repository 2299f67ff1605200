package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tendercv/internal"
)

// Present is the only rendering of an open-ended "To" bound. To dates are
// never parsed on input.
const Present = "Present"

var (
	reMonthYear    = regexp.MustCompile(`^(\d{1,2})[-/](\d{4})$`)
	reDayMonthYear = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
	reYearOnly     = regexp.MustCompile(`^(\d{4})$`)
)

// Layouts tried after the exact-format matchers, for values that arrive as
// rendered datetimes (xlsx cell formatting, intranet exports).
var fallbackLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006 15:04:05",
	"2006/01/02",
	"Jan 2006",
	"January 2006",
	"02-Jan-2006",
}

// Normalize parses a heterogeneous date string into a MonthYear. Matchers run
// in fixed priority order (month-year, then day-month-year, then year-only) so
// a two-token numeric string is read as month-year when that reading is valid.
// A month token outside 1..12 is not a date; the value stays unparsed rather
// than being rewritten. Failure is a value, not an error: the result carries
// Valid=false and the original input.
func Normalize(raw string) internal.MonthYear {
	s := strings.TrimSpace(raw)
	if s == "" {
		return internal.MonthYear{Raw: raw}
	}

	if m := reMonthYear.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if !monthInRange(month) {
			return internal.MonthYear{Raw: raw}
		}
		return internal.MonthYear{Month: month, Year: year, Valid: true, Raw: raw}
	}

	if m := reDayMonthYear.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if !monthInRange(month) {
			return internal.MonthYear{Raw: raw}
		}
		return internal.MonthYear{Month: month, Year: year, Valid: true, Raw: raw}
	}

	// Year-only defaults the month to January.
	if m := reYearOnly.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		return internal.MonthYear{Month: 1, Year: year, Valid: true, Raw: raw}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t)
		}
	}

	return internal.MonthYear{Raw: raw}
}

// FromTime extracts month and year from a native time value, dropping the day
// and time-of-day components.
func FromTime(t time.Time) internal.MonthYear {
	return internal.MonthYear{Month: int(t.Month()), Year: t.Year(), Valid: true}
}

// Display renders the canonical MM-YYYY form, or the empty string for an
// unparsed value.
func Display(d internal.MonthYear) string {
	if !d.Valid {
		return ""
	}
	return fmt.Sprintf("%02d-%d", d.Month, d.Year)
}

// YearsOfExperience derives floor-valued whole years between from and the
// reference date. Unparsed from or a future-dated from yields 0.
func YearsOfExperience(from internal.MonthYear, ref time.Time) int {
	if !from.Valid {
		return 0
	}
	months := (ref.Year()-from.Year)*12 + (int(ref.Month()) - from.Month)
	if months < 0 {
		return 0
	}
	return months / 12
}

func monthInRange(m int) bool {
	return m >= 1 && m <= 12
}
