package validate

import (
	"fmt"
	"reflect"
	"testing"

	"tendercv/internal"
	"tendercv/internal/dates"
)

func complete(rowNo int, name string) internal.PersonnelRecord {
	from := dates.Normalize("01-2015")
	return internal.PersonnelRecord{
		RowNo:             rowNo,
		Name:              name,
		Qualification:     "B.E. Civil",
		JobTitle:          "Civil Engineer",
		FromRaw:           "01-2015",
		From:              from,
		YearsOfExperience: 9,
	}
}

func findingByRule(findings []internal.ValidationFinding, rule internal.ValidationRule) *internal.ValidationFinding {
	for i := range findings {
		if findings[i].Rule == rule {
			return &findings[i]
		}
	}
	return nil
}

func TestRunCleanInput(t *testing.T) {
	report := Run([]internal.PersonnelRecord{complete(1, "A"), complete(2, "B")}, DefaultMaxRows)
	if len(report.Critical) != 0 || len(report.Warnings) != 0 {
		t.Fatalf("unexpected findings: %+v", report)
	}
	if report.Blocked() {
		t.Fatal("clean input must not block")
	}
}

func TestRunMissingNameAndUnparsedDate(t *testing.T) {
	noName := complete(1, "")
	badDate := complete(2, "B")
	badDate.FromRaw = "sometime"
	badDate.From = dates.Normalize("sometime")
	badDate.YearsOfExperience = 0

	report := Run([]internal.PersonnelRecord{noName, badDate, complete(3, "C")}, DefaultMaxRows)

	if len(report.Critical) != 1 {
		t.Fatalf("critical=%d want 1: %+v", len(report.Critical), report.Critical)
	}
	name := findingByRule(report.Critical, internal.RuleMissingName)
	if name == nil || name.Total != 1 || name.Rows[0].RowNo != 1 {
		t.Fatalf("missing-name finding wrong: %+v", name)
	}

	unparsed := findingByRule(report.Warnings, internal.RuleUnparsedFromDate)
	if unparsed == nil || unparsed.Total != 1 || unparsed.Rows[0].RowNo != 2 {
		t.Fatalf("unparsed-date finding wrong: %+v", unparsed)
	}
	// The bad-date row yields exactly one warning, not a second one about
	// its derived zero experience.
	if len(report.Warnings) != 1 {
		t.Fatalf("warnings=%d want 1: %+v", len(report.Warnings), report.Warnings)
	}
	if !report.Blocked() {
		t.Fatal("missing name must block")
	}
}

func TestRunZeroExperienceOnlyForParsedDates(t *testing.T) {
	fresh := complete(1, "A")
	fresh.YearsOfExperience = 0

	unparsable := complete(2, "B")
	unparsable.FromRaw = "junk"
	unparsable.From = dates.Normalize("junk")
	unparsable.YearsOfExperience = 0

	absent := complete(3, "C")
	absent.FromRaw = ""
	absent.From = internal.MonthYear{}
	absent.YearsOfExperience = 0

	report := Run([]internal.PersonnelRecord{fresh, unparsable, absent}, DefaultMaxRows)

	zero := findingByRule(report.Warnings, internal.RuleZeroExperience)
	if zero == nil || zero.Total != 1 || zero.Rows[0].RowNo != 1 {
		t.Fatalf("zero-experience finding wrong: %+v", zero)
	}
	if len(report.Warnings) != 2 {
		t.Fatalf("warnings=%d want 2: %+v", len(report.Warnings), report.Warnings)
	}
	if f := findingByRule(report.Critical, internal.RuleMissingFromDate); f == nil || f.Rows[0].RowNo != 3 {
		t.Fatalf("missing-from finding wrong: %+v", f)
	}
}

func TestRunMissingFromIsCriticalUnparsedIsNot(t *testing.T) {
	absent := complete(1, "A")
	absent.FromRaw = ""
	absent.From = internal.MonthYear{}

	present := complete(2, "B")
	present.FromRaw = "n/a"
	present.From = dates.Normalize("n/a")

	report := Run([]internal.PersonnelRecord{absent, present}, DefaultMaxRows)

	if f := findingByRule(report.Critical, internal.RuleMissingFromDate); f == nil || f.Total != 1 || f.Rows[0].RowNo != 1 {
		t.Fatalf("missing-from finding wrong: %+v", f)
	}
	if f := findingByRule(report.Critical, internal.RuleUnparsedFromDate); f != nil {
		t.Fatal("unparsed date must not be critical")
	}
	if f := findingByRule(report.Warnings, internal.RuleUnparsedFromDate); f == nil || f.Total != 1 || f.Rows[0].RowNo != 2 {
		t.Fatalf("unparsed warning wrong: %+v", f)
	}
}

func TestRunCapsRowsAtLimit(t *testing.T) {
	people := make([]internal.PersonnelRecord, 0, 14)
	for i := 1; i <= 14; i++ {
		p := complete(i, fmt.Sprintf("P%d", i))
		p.JobTitle = ""
		people = append(people, p)
	}
	report := Run(people, 10)
	f := findingByRule(report.Critical, internal.RuleMissingJobTitle)
	if f == nil {
		t.Fatal("missing finding")
	}
	if len(f.Rows) != 10 || f.Total != 14 {
		t.Fatalf("rows=%d total=%d", len(f.Rows), f.Total)
	}
}

func TestRunIdempotent(t *testing.T) {
	people := []internal.PersonnelRecord{complete(1, ""), complete(2, "B")}
	first := Run(people, DefaultMaxRows)
	second := Run(people, DefaultMaxRows)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ:\n%+v\n%+v", first, second)
	}
}
