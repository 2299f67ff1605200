package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"tendercv/internal"
	"tendercv/internal/config"
	"tendercv/internal/pipeline"
	"tendercv/internal/session"
	"tendercv/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log, err := zap.NewProduction()
	must(err)
	defer log.Sync()

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	svc := pipeline.NewService(db, cfg, log)

	cmd := os.Args[1]
	switch cmd {
	case "personnel:load":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.PersonnelPath, "personnel roster (.xlsx or .html)")
		_ = fs.Parse(os.Args[2:])
		count, err := svc.LoadPersonnel(*input)
		must(err)
		fmt.Printf("personnel loaded rows=%d input=%s\n", count, *input)
	case "personnel:validate":
		report, err := svc.Validate()
		must(err)
		printReport(report)
	case "roles:add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "role name")
		count := fs.Int("count", 1, "required personnel count")
		keywords := fs.String("keywords", "", "comma-separated qualification keywords")
		mode := fs.String("mode", "contains", "contains|exact")
		diploma := fs.Bool("include-diploma", false, "accept diploma holders")
		minExp := fs.Int("min-exp", 0, "minimum years of experience")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*name) == "" {
			must(fmt.Errorf("--name is required"))
		}
		sess, err := svc.LoadSession()
		must(err)
		must(sess.AddRole(internal.RoleDefinition{
			Name:              *name,
			RequiredCount:     *count,
			Keywords:          splitKeywords(*keywords),
			Mode:              internal.MatchMode(*mode),
			IncludeDiploma:    *diploma,
			MinimumExperience: *minExp,
		}))
		must(svc.SaveSession(sess))
		fmt.Printf("role added name=%s roles=%d\n", *name, len(sess.Roles))
	case "roles:list":
		sess, err := svc.LoadSession()
		must(err)
		fmt.Printf("mode=%s roles=%d\n", sess.Mode, len(sess.Roles))
		for _, role := range sess.Roles {
			fmt.Printf("  %s count=%d keywords=%s mode=%s diploma=%t min-exp=%d\n",
				role.Name, role.RequiredCount, strings.Join(role.Keywords, ","),
				role.Mode, role.IncludeDiploma, role.MinimumExperience)
		}
	case "roles:delete":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "role name")
		_ = fs.Parse(os.Args[2:])
		sess, err := svc.LoadSession()
		must(err)
		must(sess.RemoveRole(*name))
		must(svc.SaveSession(sess))
		fmt.Printf("role deleted name=%s roles=%d\n", *name, len(sess.Roles))
	case "roles:clear":
		sess, err := svc.LoadSession()
		must(err)
		sess.ClearRoles()
		must(svc.SaveSession(sess))
		fmt.Println("roles cleared")
	case "mode:set":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		mode := fs.String("mode", "", "existing|assign_roles")
		_ = fs.Parse(os.Args[2:])
		sess, err := svc.LoadSession()
		must(err)
		switch session.Mode(strings.TrimSpace(*mode)) {
		case session.ModeExistingTitles:
			sess.UseExistingTitles()
		case session.ModeAssignRoles:
			if sess.Mode != session.ModeAssignRoles {
				personnel, err := svc.Personnel()
				must(err)
				cleared, err := sess.BeginAssigningRoles(personnel)
				must(err)
				must(svc.SavePersonnel(cleared, "job titles cleared for role assignment"))
			}
		default:
			must(fmt.Errorf("--mode must be existing or assign_roles"))
		}
		must(svc.SaveSession(sess))
		fmt.Printf("mode set mode=%s\n", sess.Mode)
	case "title:set":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		row := fs.Int("row", 0, "personnel row number")
		title := fs.String("title", "", "job title or defined role name")
		custom := fs.String("custom", "", "free-text value when --title=Custom")
		_ = fs.Parse(os.Args[2:])
		sess, err := svc.LoadSession()
		must(err)
		resolved, err := sess.ResolveTitleEdit(*title, *custom)
		must(err)
		personnel, err := svc.Personnel()
		must(err)
		updated := false
		for i := range personnel {
			if personnel[i].RowNo == *row {
				personnel[i].JobTitle = resolved
				updated = true
				break
			}
		}
		if !updated {
			must(fmt.Errorf("no personnel row %d", *row))
		}
		must(svc.SavePersonnel(personnel, fmt.Sprintf("job title edit row=%d", *row)))
		fmt.Printf("title set row=%d title=%s\n", *row, resolved)
	case "search":
		results, err := svc.Search()
		must(err)
		for _, result := range results {
			fmt.Printf("role=%s required=%d missing=%d\n",
				result.Role.Name, result.Role.RequiredCount, result.Missing)
			for category, people := range result.Categories {
				if len(people) == 0 {
					continue
				}
				names := make([]string, 0, len(people))
				for _, p := range people {
					names = append(names, p.Name)
				}
				fmt.Printf("  %s (%d): %s\n", category, len(people), strings.Join(names, "; "))
			}
		}
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		force := fs.Bool("force", false, "export despite critical findings")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		must(svc.ExportPersonnel(*out, *force))
		fmt.Printf("exported personnel to %s\n", *out)
	case "cv:generate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		seed := fs.Int64("seed", cfg.AssignmentSeed, "assignment rng seed")
		force := fs.Bool("force", false, "generate despite critical findings")
		_ = fs.Parse(os.Args[2:])
		paths, err := svc.GenerateCVs(*seed, *force)
		must(err)
		fmt.Printf("cv generation done documents=%d outputDir=%s\n", len(paths), cfg.OutputDir)
	default:
		usage()
		os.Exit(1)
	}
}

func printReport(report internal.ValidationReport) {
	fmt.Printf("validation critical=%d warnings=%d blocked=%t\n",
		len(report.Critical), len(report.Warnings), report.Blocked())
	for _, finding := range append(report.Critical, report.Warnings...) {
		refs := make([]string, 0, len(finding.Rows))
		for _, row := range finding.Rows {
			label := row.Name
			if label == "" {
				label = fmt.Sprintf("row %d", row.RowNo)
			}
			refs = append(refs, label)
		}
		suffix := ""
		if finding.Total > len(finding.Rows) {
			suffix = fmt.Sprintf(" (+%d more)", finding.Total-len(finding.Rows))
		}
		fmt.Printf("  [%s] %s: %s%s\n", finding.Severity, finding.Rule, strings.Join(refs, "; "), suffix)
	}
}

func splitKeywords(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func usage() {
	fmt.Println("usage: tendercv <command>")
	fmt.Println("commands:")
	fmt.Println("  personnel:load --input=./input/personnel.xlsx")
	fmt.Println("  personnel:validate")
	fmt.Println("  roles:add --name=... --count=1 --keywords=civil,structural [--mode=contains|exact] [--include-diploma] [--min-exp=0]")
	fmt.Println("  roles:list")
	fmt.Println("  roles:delete --name=...")
	fmt.Println("  roles:clear")
	fmt.Println("  mode:set --mode=existing|assign_roles")
	fmt.Println("  title:set --row=1 --title=... [--custom=...]")
	fmt.Println("  search")
	fmt.Println("  export:xlsx --out=./out/personnel.xlsx [--force]")
	fmt.Println("  cv:generate [--seed=0] [--force]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
