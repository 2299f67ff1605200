package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"tendercv/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS roles (
  name TEXT PRIMARY KEY,
  requiredCount INTEGER NOT NULL,
  keywordsJson TEXT NOT NULL,
  mode TEXT NOT NULL,
  includeDiploma INTEGER NOT NULL DEFAULT 0,
  minExperience INTEGER NOT NULL DEFAULT 0,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS snapshots (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  note TEXT,
  rowsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  kind TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) SaveRoles(roles []internal.RoleDefinition) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM roles`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
INSERT INTO roles (name, requiredCount, keywordsJson, mode, includeDiploma, minExperience)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, role := range roles {
		keywordsJSON, _ := json.Marshal(role.Keywords)
		if _, err := stmt.Exec(
			role.Name, role.RequiredCount, string(keywordsJSON),
			string(role.Mode), boolToInt(role.IncludeDiploma), role.MinimumExperience,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListRoles() ([]internal.RoleDefinition, error) {
	rows, err := d.conn.Query(`
SELECT name, requiredCount, keywordsJson, mode, includeDiploma, minExperience
FROM roles ORDER BY createdAt ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RoleDefinition
	for rows.Next() {
		var role internal.RoleDefinition
		var keywordsJSON, mode string
		var includeDiploma int
		if err := rows.Scan(&role.Name, &role.RequiredCount, &keywordsJSON, &mode, &includeDiploma, &role.MinimumExperience); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(keywordsJSON), &role.Keywords)
		role.Mode = internal.MatchMode(mode)
		role.IncludeDiploma = includeDiploma != 0
		out = append(out, role)
	}
	return out, rows.Err()
}

func (d *DB) GetMode(fallback string) (string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = 'job_title_mode'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (d *DB) SetMode(mode string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES ('job_title_mode', ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updatedAt=CURRENT_TIMESTAMP`, mode)
	return err
}

// InsertSnapshot appends a new personnel revision; the latest revision is the
// working set. Every mutating command auto-saves through here.
func (d *DB) InsertSnapshot(source, note string, personnel []internal.PersonnelRecord) (int, error) {
	rowsJSON, err := json.Marshal(personnel)
	if err != nil {
		return 0, err
	}
	res, err := d.conn.Exec(`INSERT INTO snapshots (source, note, rowsJson) VALUES (?, ?, ?)`,
		source, note, string(rowsJSON))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (d *DB) LatestSnapshot() ([]internal.PersonnelRecord, int, error) {
	var id int
	var rowsJSON string
	err := d.conn.QueryRow(`SELECT id, rowsJson FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&id, &rowsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	var personnel []internal.PersonnelRecord
	if err := json.Unmarshal([]byte(rowsJSON), &personnel); err != nil {
		return nil, 0, err
	}
	return personnel, id, nil
}

// PruneSnapshots keeps the newest `keep` revisions.
func (d *DB) PruneSnapshots(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := d.conn.Exec(`
DELETE FROM snapshots WHERE id NOT IN (
  SELECT id FROM snapshots ORDER BY id DESC LIMIT ?
)`, keep)
	return err
}

func (d *DB) InsertRun(traceID, kind string, counts map[string]int) error {
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, kind, countsJson) VALUES (?, ?, ?)`,
		traceID, kind, string(countsJSON))
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
