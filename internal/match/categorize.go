package match

import (
	"strings"

	"tendercv/internal"
)

// The categorization rules live in an ordered table rather than branching
// code: first row whose condition tuple matches wins. A nil condition means
// "any". Qualification match is required for every positive outcome.
type decisionRow struct {
	title, qual, exp *bool
	category         internal.MatchCategory
}

var (
	yes = true
	no  = false
)

var decisionTable = []decisionRow{
	{title: &yes, qual: &yes, exp: &yes, category: internal.CategoryFullMatch},
	{title: &yes, qual: &yes, exp: &no, category: internal.CategoryTitleQualLow},
	{title: &no, qual: &yes, exp: &yes, category: internal.CategoryQualExpTitle},
	{title: &no, qual: &yes, exp: &no, category: internal.CategoryQualOnly},
	{title: nil, qual: &no, exp: nil, category: internal.CategoryNoMatch},
}

func (r decisionRow) matches(title, qual, exp bool) bool {
	if r.title != nil && *r.title != title {
		return false
	}
	if r.qual != nil && *r.qual != qual {
		return false
	}
	if r.exp != nil && *r.exp != exp {
		return false
	}
	return true
}

// Categorize places one person into exactly one category for the given role.
// Pure function of its inputs.
func Categorize(person internal.PersonnelRecord, role internal.RoleDefinition) internal.MatchCategory {
	titleHit := strings.Contains(strings.ToLower(person.JobTitle), strings.ToLower(role.Name))
	qualHit := QualificationMatches(person.Qualification, role)
	expHit := person.YearsOfExperience >= role.MinimumExperience

	for _, row := range decisionTable {
		if row.matches(titleHit, qualHit, expHit) {
			return row.category
		}
	}
	return internal.CategoryNoMatch
}

// Categories in display order.
var AllCategories = []internal.MatchCategory{
	internal.CategoryFullMatch,
	internal.CategoryTitleQualLow,
	internal.CategoryQualExpTitle,
	internal.CategoryQualOnly,
	internal.CategoryNoMatch,
}

// SearchRole partitions the whole personnel set into the five buckets for one
// role and computes the shortage against the role's required headcount.
func SearchRole(personnel []internal.PersonnelRecord, role internal.RoleDefinition) internal.RoleSearchResult {
	result := internal.RoleSearchResult{
		Role:       role,
		Categories: make(map[internal.MatchCategory][]internal.PersonnelRecord, len(AllCategories)),
	}
	for _, person := range personnel {
		category := Categorize(person, role)
		result.Categories[category] = append(result.Categories[category], person)
	}
	missing := role.RequiredCount - len(result.Categories[internal.CategoryFullMatch])
	if missing > 0 {
		result.Missing = missing
	}
	return result
}

// Search runs per-role categorization independently: a person may be a
// FullMatch under one role and NoMatch under another.
func Search(personnel []internal.PersonnelRecord, roles []internal.RoleDefinition) []internal.RoleSearchResult {
	out := make([]internal.RoleSearchResult, 0, len(roles))
	for _, role := range roles {
		out = append(out, SearchRole(personnel, role))
	}
	return out
}
