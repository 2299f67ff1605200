package validate

import (
	"strings"

	"tendercv/internal"
)

// DefaultMaxRows caps how many affected rows a finding lists; the total count
// is always reported.
const DefaultMaxRows = 10

type rule struct {
	id       internal.ValidationRule
	severity internal.Severity
	hit      func(internal.PersonnelRecord) bool
}

// Critical rules block export/generation downstream; warnings are advisory.
// Presence of a From value is the critical check; a present but unparsable
// date is only a warning. Zero experience fires only for rows whose From
// parsed, so a bad-date row is reported once, not twice.
var rules = []rule{
	{id: internal.RuleMissingName, severity: internal.SeverityCritical, hit: func(p internal.PersonnelRecord) bool {
		return blank(p.Name)
	}},
	{id: internal.RuleMissingJobTitle, severity: internal.SeverityCritical, hit: func(p internal.PersonnelRecord) bool {
		return blank(p.JobTitle)
	}},
	{id: internal.RuleMissingQualification, severity: internal.SeverityCritical, hit: func(p internal.PersonnelRecord) bool {
		return blank(p.Qualification)
	}},
	{id: internal.RuleMissingFromDate, severity: internal.SeverityCritical, hit: func(p internal.PersonnelRecord) bool {
		return blank(p.FromRaw)
	}},
	{id: internal.RuleUnparsedFromDate, severity: internal.SeverityWarning, hit: func(p internal.PersonnelRecord) bool {
		return !blank(p.FromRaw) && !p.From.Valid
	}},
	{id: internal.RuleZeroExperience, severity: internal.SeverityWarning, hit: func(p internal.PersonnelRecord) bool {
		return p.From.Valid && p.YearsOfExperience == 0
	}},
}

// Run checks the personnel collection against every rule and returns the
// critical and warning findings. Pure: recomputed fresh on every call, input
// never mutated.
func Run(personnel []internal.PersonnelRecord, maxRows int) internal.ValidationReport {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	var report internal.ValidationReport
	for _, r := range rules {
		finding := internal.ValidationFinding{Severity: r.severity, Rule: r.id}
		for _, person := range personnel {
			if !r.hit(person) {
				continue
			}
			finding.Total++
			if len(finding.Rows) < maxRows {
				finding.Rows = append(finding.Rows, internal.RowRef{RowNo: person.RowNo, Name: person.Name})
			}
		}
		if finding.Total == 0 {
			continue
		}
		if r.severity == internal.SeverityCritical {
			report.Critical = append(report.Critical, finding)
		} else {
			report.Warnings = append(report.Warnings, finding)
		}
	}
	return report
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
