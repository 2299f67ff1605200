package assign

import (
	"math/rand"
	"time"

	"tendercv/internal"
)

// Assignment pairs one person with at most one project. Project is nil when
// nothing in the catalog overlaps the person's tenure, or when the person's
// From date never parsed; both are recorded outcomes, not errors.
type Assignment struct {
	Person  internal.PersonnelRecord
	Project *internal.ProjectRecord
}

// Engine chooses overlapping projects for people, preferring projects no
// earlier person in the same run already received. The randomness source is
// injected so a fixed seed reproduces the full run.
type Engine struct {
	rng *rand.Rand
}

func New(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Run processes people in input order. For each person it computes the set of
// eligible projects, picks uniformly at random among those not yet used in
// this run, and falls back to the full eligible set only when every eligible
// project is already taken. Greedy and order-dependent on purpose: best-effort
// variety, not a global matching.
func (e *Engine) Run(personnel []internal.PersonnelRecord, projects []internal.ProjectRecord, ref time.Time) []Assignment {
	used := make(map[int]bool, len(projects))
	out := make([]Assignment, 0, len(personnel))

	for _, person := range personnel {
		eligible := eligibleProjects(person, projects, ref)
		if len(eligible) == 0 {
			out = append(out, Assignment{Person: person})
			continue
		}

		unused := make([]int, 0, len(eligible))
		for _, idx := range eligible {
			if !used[idx] {
				unused = append(unused, idx)
			}
		}
		pool := unused
		if len(pool) == 0 {
			pool = eligible
		}

		chosen := pool[e.rng.Intn(len(pool))]
		used[chosen] = true
		project := projects[chosen]
		out = append(out, Assignment{Person: person, Project: &project})
	}
	return out
}

// eligibleProjects returns catalog indexes whose active interval overlaps the
// person's tenure. The person's To is always open-ended, so the upper bound is
// the reference month; a person without a parsed From is eligible for nothing.
func eligibleProjects(person internal.PersonnelRecord, projects []internal.ProjectRecord, ref time.Time) []int {
	if !person.From.Valid {
		return nil
	}
	personStart := monthIndex(person.From)
	personEnd := refIndex(ref)

	out := []int{}
	for i, project := range projects {
		if !project.Start.Valid && !project.End.Valid {
			continue
		}
		projectEnd := refIndex(ref)
		if project.End.Valid {
			projectEnd = monthIndex(project.End)
		}
		// A missing start means the project predates every tenure.
		projectStart := monthIndex(internal.MonthYear{Month: 1, Year: 1900, Valid: true})
		if project.Start.Valid {
			projectStart = monthIndex(project.Start)
		}

		if projectEnd < personStart || projectStart > personEnd {
			continue
		}
		out = append(out, i)
	}
	return out
}

func monthIndex(d internal.MonthYear) int {
	return d.Year*12 + d.Month - 1
}

func refIndex(ref time.Time) int {
	return ref.Year()*12 + int(ref.Month()) - 1
}
