package pipeline

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tendercv/internal/config"
	"tendercv/internal/storage"
)

func TestRecordRunWarnsOnStoreFailure(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zap.WarnLevel)
	svc := NewService(db, config.Config{}, zap.New(core))

	svc.recordRun("search", map[string]int{"x": 1})

	if logs.FilterMessage("record run failed").Len() != 1 {
		t.Fatalf("expected a warning about the failed write, got %v", logs.All())
	}
}
