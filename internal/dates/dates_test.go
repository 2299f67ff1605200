package dates

import (
	"testing"
	"time"

	"tendercv/internal"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		month int
		year  int
		disp  string
	}{
		{name: "month-year dash", input: "06-2022", month: 6, year: 2022, disp: "06-2022"},
		{name: "month-year slash", input: "6/2022", month: 6, year: 2022, disp: "06-2022"},
		{name: "day-month-year", input: "15-06-2022", month: 6, year: 2022, disp: "06-2022"},
		{name: "day-month-year slash", input: "01/12/2006", month: 12, year: 2006, disp: "12-2006"},
		{name: "year only", input: "2017", month: 1, year: 2017, disp: "01-2017"},
		{name: "padded input", input: "  03-2019 ", month: 3, year: 2019, disp: "03-2019"},
		{name: "iso datetime", input: "2020-05-14 00:00:00", month: 5, year: 2020, disp: "05-2020"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if !got.Valid {
				t.Fatalf("unparsed: %q", tc.input)
			}
			if got.Month != tc.month || got.Year != tc.year {
				t.Fatalf("got (%d, %d) want (%d, %d)", got.Month, got.Year, tc.month, tc.year)
			}
			if disp := Display(got); disp != tc.disp {
				t.Fatalf("display=%q want %q", disp, tc.disp)
			}
		})
	}
}

func TestNormalizeMonthYearWinsOverDayMonth(t *testing.T) {
	// Two numeric tokens must read as month-year, never day-month of an
	// implied year.
	got := Normalize("11-2022")
	if !got.Valid || got.Month != 11 || got.Year != 2022 {
		t.Fatalf("got %+v", got)
	}
}

func TestNormalizeUnparsed(t *testing.T) {
	for _, input := range []string{"", "soon", "13/14/15", "junk-2020-x"} {
		got := Normalize(input)
		if got.Valid {
			t.Fatalf("expected unparsed for %q, got %+v", input, got)
		}
		if got.Raw != input {
			t.Fatalf("raw not preserved: %q", got.Raw)
		}
	}
}

func TestNormalizeRejectsOutOfRangeMonth(t *testing.T) {
	for _, input := range []string{"14-2020", "0-2020", "01/13/2006"} {
		got := Normalize(input)
		if got.Valid {
			t.Fatalf("expected unparsed for %q, got %+v", input, got)
		}
		if got.Raw != input {
			t.Fatalf("raw not preserved: %q", got.Raw)
		}
	}
}

func TestYearsOfExperience(t *testing.T) {
	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		from internal.MonthYear
		want int
	}{
		{name: "whole years", from: internal.MonthYear{Month: 6, Year: 2020, Valid: true}, want: 4},
		{name: "floor partial year", from: internal.MonthYear{Month: 7, Year: 2020, Valid: true}, want: 3},
		{name: "current month", from: internal.MonthYear{Month: 6, Year: 2024, Valid: true}, want: 0},
		{name: "future date clamps", from: internal.MonthYear{Month: 1, Year: 2030, Valid: true}, want: 0},
		{name: "unparsed", from: internal.MonthYear{Raw: "soon"}, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := YearsOfExperience(tc.from, ref); got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestYearsOfExperienceMonotonic(t *testing.T) {
	from := internal.MonthYear{Month: 3, Year: 2015, Valid: true}
	prev := -1
	ref := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		got := YearsOfExperience(from, ref)
		if got < prev {
			t.Fatalf("decreased at month %d: %d < %d", i, got, prev)
		}
		if got < 0 {
			t.Fatalf("negative at month %d", i)
		}
		prev = got
		ref = ref.AddDate(0, 1, 0)
	}
}
