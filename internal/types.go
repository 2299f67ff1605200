package internal

type RecordSource string

const (
	SourceXLSX      RecordSource = "xlsx"
	SourceHTMLTable RecordSource = "html_table"
	SourceManual    RecordSource = "manual"
)

// MatchMode controls how qualification keywords are applied.
type MatchMode string

const (
	MatchContains  MatchMode = "contains"
	MatchExactWord MatchMode = "exact"
)

// MatchCategory is the outcome bucket for one (person, role) pair.
// Listed in priority order; a person lands in exactly one per role.
type MatchCategory string

const (
	CategoryFullMatch    MatchCategory = "FULL_MATCH"
	CategoryTitleQualLow MatchCategory = "TITLE_QUAL_LOW_EXP"
	CategoryQualExpTitle MatchCategory = "QUAL_EXP_TITLE_MISMATCH"
	CategoryQualOnly     MatchCategory = "QUAL_ONLY"
	CategoryNoMatch      MatchCategory = "NO_MATCH"
)

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
)

type ValidationRule string

const (
	RuleMissingName          ValidationRule = "MISSING_NAME"
	RuleMissingJobTitle      ValidationRule = "MISSING_JOB_TITLE"
	RuleMissingQualification ValidationRule = "MISSING_QUALIFICATION"
	RuleMissingFromDate      ValidationRule = "MISSING_FROM_DATE"
	RuleUnparsedFromDate     ValidationRule = "UNPARSED_FROM_DATE"
	RuleZeroExperience       ValidationRule = "ZERO_EXPERIENCE"
)

// MonthYear is a normalized (month, year) pair. Valid is false for the
// unparsed case, with the offending input preserved in Raw.
type MonthYear struct {
	Month int
	Year  int
	Valid bool
	Raw   string
}

// PersonnelRecord is one employee row. FromRaw keeps the string exactly as
// ingested; From is its parsed form and YearsOfExperience is always derived
// from From, never taken from the input sheet.
type PersonnelRecord struct {
	RowNo             int
	Source            RecordSource
	Name              string
	Qualification     string
	JobTitle          string
	FromRaw           string
	From              MonthYear
	YearsOfExperience int
}

// ProjectRecord is one catalog entry. Start/End follow the same
// unparsed-as-invalid convention; an invalid End means the project is still
// running. Read-only after ingest.
type ProjectRecord struct {
	RowNo      int
	Descriptor string
	Start      MonthYear
	End        MonthYear
	Bullets    []string
}

type RoleDefinition struct {
	Name              string
	RequiredCount     int
	Keywords          []string
	Mode              MatchMode
	IncludeDiploma    bool
	MinimumExperience int
}

// RoleSearchResult partitions the personnel set for one role. Every input
// row appears in exactly one bucket.
type RoleSearchResult struct {
	Role       RoleDefinition
	Categories map[MatchCategory][]PersonnelRecord
	Missing    int
}

type RowRef struct {
	RowNo int
	Name  string
}

type ValidationFinding struct {
	Severity Severity
	Rule     ValidationRule
	Rows     []RowRef
	Total    int
}

type ValidationReport struct {
	Critical []ValidationFinding
	Warnings []ValidationFinding
}

func (r ValidationReport) Blocked() bool {
	return len(r.Critical) > 0
}

// CVRecord is the per-person generation output handed to the document
// renderer. Dates are the person's own tenure, not the project's.
type CVRecord struct {
	Name              string
	Qualification     string
	JobTitle          string
	From              string
	To                string
	YearsOfExperience int
	ProjectDescriptor string
	Bullets           []string
	Assigned          bool
}
