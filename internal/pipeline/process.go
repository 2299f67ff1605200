package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"tendercv/internal"
	"tendercv/internal/assign"
	"tendercv/internal/config"
	"tendercv/internal/match"
	"tendercv/internal/session"
	"tendercv/internal/storage"
	"tendercv/internal/validate"
)

// ErrBlocked is returned when critical validation findings gate an export or
// generation request and the caller did not force past them.
var ErrBlocked = errors.New("critical validation findings present")

// ErrNoPersonnel is returned when no personnel snapshot has been loaded yet.
var ErrNoPersonnel = errors.New("no personnel loaded")

type Service struct {
	db  *storage.DB
	cfg config.Config
	log *zap.Logger
}

func NewService(db *storage.DB, cfg config.Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, cfg: cfg, log: log}
}

// LoadPersonnel ingests a roster file, normalizes dates, derives YOE against
// the current date and auto-saves the result as a new snapshot revision.
func (s *Service) LoadPersonnel(path string) (int, error) {
	personnel, err := LoadPersonnelFile(path, time.Now())
	if err != nil {
		return 0, err
	}
	if _, err := s.db.InsertSnapshot(string(sourceForPath(path)), path, personnel); err != nil {
		return 0, err
	}
	if err := s.db.PruneSnapshots(s.cfg.SnapshotHistory); err != nil {
		return 0, err
	}
	s.log.Info("personnel loaded",
		zap.String("path", path),
		zap.Int("rows", len(personnel)))
	return len(personnel), nil
}

// Personnel returns the working set: the latest snapshot revision.
func (s *Service) Personnel() ([]internal.PersonnelRecord, error) {
	personnel, id, err := s.db.LatestSnapshot()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, ErrNoPersonnel
	}
	return personnel, nil
}

// SavePersonnel auto-saves a mutated working set as a new revision.
func (s *Service) SavePersonnel(personnel []internal.PersonnelRecord, note string) error {
	if _, err := s.db.InsertSnapshot(string(internal.SourceManual), note, personnel); err != nil {
		return err
	}
	return s.db.PruneSnapshots(s.cfg.SnapshotHistory)
}

// LoadSession materializes the role definitions and job-title mode persisted
// for this editing session.
func (s *Service) LoadSession() (*session.Session, error) {
	sess := session.New()
	mode, err := s.db.GetMode(string(session.ModeExistingTitles))
	if err != nil {
		return nil, err
	}
	sess.Mode = session.Mode(mode)

	roles, err := s.db.ListRoles()
	if err != nil {
		return nil, err
	}
	sess.Roles = roles
	return sess, nil
}

func (s *Service) SaveSession(sess *session.Session) error {
	if err := s.db.SetMode(string(sess.Mode)); err != nil {
		return err
	}
	return s.db.SaveRoles(sess.Roles)
}

// Validate re-runs the full rule set against the working set. Pure with
// respect to the snapshot: nothing is cached or mutated.
func (s *Service) Validate() (internal.ValidationReport, error) {
	personnel, err := s.Personnel()
	if err != nil {
		return internal.ValidationReport{}, err
	}
	report := validate.Run(personnel, s.cfg.MaxFindingRows)
	s.log.Info("validation complete",
		zap.Int("critical", len(report.Critical)),
		zap.Int("warnings", len(report.Warnings)))
	return report, nil
}

// Search categorizes the working set against every defined role and records
// the per-role counts as a run.
func (s *Service) Search() ([]internal.RoleSearchResult, error) {
	personnel, err := s.Personnel()
	if err != nil {
		return nil, err
	}
	sess, err := s.LoadSession()
	if err != nil {
		return nil, err
	}
	if len(sess.Roles) == 0 {
		return nil, &session.ConfigError{Reason: "no roles defined; add at least one before searching"}
	}

	results := match.Search(personnel, sess.Roles)

	counts := map[string]int{}
	for _, result := range results {
		for category, people := range result.Categories {
			counts[result.Role.Name+"/"+string(category)] = len(people)
		}
	}
	s.recordRun("search", counts)

	s.log.Info("search complete",
		zap.Int("roles", len(results)),
		zap.Int("personnel", len(personnel)))
	return results, nil
}

// ExportPersonnel writes the normalized personnel table. Critical findings
// block unless forced.
func (s *Service) ExportPersonnel(outputPath string, force bool) error {
	personnel, err := s.Personnel()
	if err != nil {
		return err
	}
	report := validate.Run(personnel, s.cfg.MaxFindingRows)
	if report.Blocked() && !force {
		return fmt.Errorf("%w: %d finding(s)", ErrBlocked, len(report.Critical))
	}
	if err := ExportPersonnelXLSX(personnel, outputPath); err != nil {
		return err
	}
	s.log.Info("personnel exported",
		zap.String("path", outputPath),
		zap.Int("rows", len(personnel)))
	return nil
}

// GenerateCVs runs the project assignment over the working set and renders
// one document per person. Critical findings block unless forced; people
// without an eligible project still get a CV with an empty experience
// section.
func (s *Service) GenerateCVs(seed int64, force bool) ([]string, error) {
	personnel, err := s.Personnel()
	if err != nil {
		return nil, err
	}
	report := validate.Run(personnel, s.cfg.MaxFindingRows)
	if report.Blocked() && !force {
		return nil, fmt.Errorf("%w: %d finding(s)", ErrBlocked, len(report.Critical))
	}

	content, err := os.ReadFile(s.cfg.ProjectWBPath)
	if err != nil {
		return nil, fmt.Errorf("read project workbook: %w", err)
	}
	projects, err := ParseProjectsXLSX(content, s.cfg.ProjectSheet)
	if err != nil {
		return nil, err
	}

	assignments := assign.New(seed).Run(personnel, projects, time.Now())
	records := BuildCVRecords(assignments, s.cfg.EmployerName)
	paths, err := RenderCVs(records, s.cfg.CVTemplatePath, s.cfg.OutputDir)
	if err != nil {
		return paths, err
	}

	assigned := 0
	for _, a := range assignments {
		if a.Project != nil {
			assigned++
		}
	}
	s.recordRun("generate", map[string]int{
		"personnel": len(personnel),
		"projects":  len(projects),
		"assigned":  assigned,
	})

	s.log.Info("cv generation complete",
		zap.Int("personnel", len(personnel)),
		zap.Int("assigned", assigned),
		zap.Int64("seed", seed))
	return paths, nil
}

// recordRun persists an informational run record. A failed write never fails
// the operation that produced it, but it is logged.
func (s *Service) recordRun(kind string, counts map[string]int) {
	if err := s.db.InsertRun(traceID(), kind, counts); err != nil {
		s.log.Warn("record run failed",
			zap.String("kind", kind),
			zap.Error(err))
	}
}

func sourceForPath(path string) internal.RecordSource {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return internal.SourceHTMLTable
	}
	return internal.SourceXLSX
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
