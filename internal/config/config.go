package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath          string
	PersonnelPath   string
	ProjectWBPath   string
	ProjectSheet    string
	OutputDir       string
	CVTemplatePath  string
	EmployerName    string
	MaxFindingRows  int
	AssignmentSeed  int64
	SnapshotHistory int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:          getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		PersonnelPath:   getEnv("PERSONNEL_PATH", filepath.Join(cwd, "input", "personnel.xlsx")),
		ProjectWBPath:   getEnv("PROJECT_WB_PATH", filepath.Join(cwd, "input", "employee.xlsx")),
		ProjectSheet:    getEnv("PROJECT_INFO_SHEET", "project_info"),
		OutputDir:       getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		CVTemplatePath:  getEnv("CV_TEMPLATE_PATH", filepath.Join(cwd, "template", "cv_template.docx")),
		EmployerName:    getEnv("EMPLOYER_NAME", ""),
		MaxFindingRows:  getEnvInt("MAX_FINDING_ROWS", 10),
		AssignmentSeed:  getEnvInt64("ASSIGNMENT_SEED", 0),
		SnapshotHistory: getEnvInt("SNAPSHOT_HISTORY", 20),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
