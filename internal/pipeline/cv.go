package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	docx "github.com/lukasjarosch/go-docx"

	"tendercv/internal"
	"tendercv/internal/assign"
	"tendercv/internal/dates"
)

var reUnsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// BuildCVRecords turns assignment outcomes into renderable CV records. The
// experience row always carries the person's own tenure dates; only the
// descriptor and bullets come from the assigned project. A person without an
// assignment gets a fallback descriptor and an empty bullets section.
func BuildCVRecords(assignments []assign.Assignment, employer string) []internal.CVRecord {
	out := make([]internal.CVRecord, 0, len(assignments))
	for _, a := range assignments {
		person := a.Person
		record := internal.CVRecord{
			Name:              person.Name,
			Qualification:     person.Qualification,
			JobTitle:          person.JobTitle,
			From:              dates.Display(person.From),
			To:                dates.Present,
			YearsOfExperience: person.YearsOfExperience,
		}
		if a.Project != nil {
			record.Assigned = true
			record.ProjectDescriptor = a.Project.Descriptor
			record.Bullets = a.Project.Bullets
		} else {
			record.ProjectDescriptor = strings.TrimSpace(employer + " / " + person.JobTitle)
		}
		out = append(out, record)
	}
	return out
}

// RenderCVs fills the placeholder template once per record and writes one
// document per person into outDir. Returns the written paths in input order.
func RenderCVs(records []internal.CVRecord, templatePath, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(records))
	for i, record := range records {
		doc, err := docx.Open(templatePath)
		if err != nil {
			return paths, fmt.Errorf("open cv template: %w", err)
		}

		replacements := docx.PlaceholderMap{
			"name":          record.Name,
			"qualification": record.Qualification,
			"job_title":     record.JobTitle,
			"from":          record.From,
			"to":            record.To,
			"yoe":           fmt.Sprintf("%d", record.YearsOfExperience),
			"project":       record.ProjectDescriptor,
			"experience":    bulletText(record.Bullets),
		}
		if err := doc.ReplaceAll(replacements); err != nil {
			return paths, fmt.Errorf("fill cv for %q: %w", record.Name, err)
		}

		path := filepath.Join(outDir, cvFilename(i+1, record.Name))
		if err := doc.WriteToFile(path); err != nil {
			return paths, fmt.Errorf("write cv for %q: %w", record.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func bulletText(bullets []string) string {
	if len(bullets) == 0 {
		return ""
	}
	lines := make([]string, 0, len(bullets))
	for _, b := range bullets {
		lines = append(lines, "- "+b)
	}
	return strings.Join(lines, "\n")
}

func cvFilename(seq int, name string) string {
	safe := reUnsafeFilename.ReplaceAllString(strings.TrimSpace(name), "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		safe = "unnamed"
	}
	return fmt.Sprintf("cv_%03d_%s.docx", seq, safe)
}
