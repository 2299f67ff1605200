package pipeline

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"tendercv/internal"
	"tendercv/internal/assign"
	"tendercv/internal/dates"
)

func TestBuildCVRecords(t *testing.T) {
	person := internal.PersonnelRecord{
		Name:              "Asha Verma",
		Qualification:     "B.E. Civil",
		JobTitle:          "Civil Engineer",
		From:              internal.MonthYear{Month: 6, Year: 2018, Valid: true},
		YearsOfExperience: 6,
	}
	project := internal.ProjectRecord{
		Descriptor: "Metro Line 3 / Piling / Engineer",
		Start:      internal.MonthYear{Month: 1, Year: 2016, Valid: true},
		End:        internal.MonthYear{Month: 1, Year: 2018, Valid: true},
		Bullets:    []string{"Executed 120 piles"},
	}

	records := BuildCVRecords([]assign.Assignment{
		{Person: person, Project: &project},
		{Person: person, Project: nil},
	}, "Acme Infra")

	assigned := records[0]
	if !assigned.Assigned || assigned.ProjectDescriptor != project.Descriptor {
		t.Fatalf("assigned record wrong: %+v", assigned)
	}
	if !reflect.DeepEqual(assigned.Bullets, project.Bullets) {
		t.Fatalf("bullets=%v", assigned.Bullets)
	}
	// Tenure dates always belong to the person, never the project.
	if assigned.From != "06-2018" || assigned.To != dates.Present {
		t.Fatalf("dates=%q..%q", assigned.From, assigned.To)
	}

	fallback := records[1]
	if fallback.Assigned || len(fallback.Bullets) != 0 {
		t.Fatalf("fallback record wrong: %+v", fallback)
	}
	if fallback.ProjectDescriptor != "Acme Infra / Civil Engineer" {
		t.Fatalf("fallback descriptor=%q", fallback.ProjectDescriptor)
	}
}

func TestBulletText(t *testing.T) {
	if got := bulletText(nil); got != "" {
		t.Fatalf("empty bullets: %q", got)
	}
	got := bulletText([]string{"Did piling", "Did walls"})
	if got != "- Did piling\n- Did walls" {
		t.Fatalf("got %q", got)
	}
}

func TestCVFilename(t *testing.T) {
	cases := []struct{ name, want string }{
		{"Asha Verma", "cv_001_Asha_Verma.docx"},
		{"R. Iyer / Sr.", "cv_001_R._Iyer_Sr.docx"},
		{"   ", "cv_001_unnamed.docx"},
	}
	for _, tc := range cases {
		if got := cvFilename(1, tc.name); got != tc.want {
			t.Fatalf("cvFilename(%q)=%q want %q", tc.name, got, tc.want)
		}
	}
}

func TestExportPersonnelXLSXRoundTrip(t *testing.T) {
	personnel := []internal.PersonnelRecord{
		{
			Name: "Asha Verma", Qualification: "B.E. Civil", JobTitle: "Civil Engineer",
			FromRaw: "15-06-2018", From: internal.MonthYear{Month: 6, Year: 2018, Valid: true},
			YearsOfExperience: 6,
		},
		{
			Name: "K. Shah", Qualification: "M.Tech.", JobTitle: "Design Engineer",
			FromRaw: "garbled", From: internal.MonthYear{Raw: "garbled"},
		},
	}

	path := filepath.Join(t.TempDir(), "out", "personnel.xlsx")
	if err := ExportPersonnelXLSX(personnel, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[1][3] != "06-2018" || rows[1][4] != dates.Present {
		t.Fatalf("parsed date row: %v", rows[1])
	}
	// Unparsed dates export the raw string untouched.
	if rows[2][3] != "garbled" {
		t.Fatalf("unparsed date row: %v", rows[2])
	}
}
