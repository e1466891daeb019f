package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/unb-mds/2025-2-Mural-UnB/internal"
	"github.com/unb-mds/2025-2-Mural-UnB/internal/util"
)

type DB struct {
	conn *sql.DB
}

// ImageRow remembers a downloaded image so later runs can skip the network.
type ImageRow struct {
	NameKey   string
	ImagePath string
	LocalPath string
	ImageURL  string
	UpdatedAt string
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
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  input TEXT NOT NULL,
  startedAt TEXT NOT NULL,
  finishedAt TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS records (
  runId TEXT NOT NULL,
  id TEXT NOT NULL,
  nameKey TEXT NOT NULL,
  name TEXT NOT NULL,
  coordinator TEXT NOT NULL,
  contact TEXT NOT NULL,
  description TEXT NOT NULL,
  imagePath TEXT NOT NULL,
  imageSource TEXT NOT NULL,
  imageUrl TEXT,
  keyword TEXT,
  category TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(runId, id),
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_records_nameKey ON records(nameKey);

CREATE TABLE IF NOT EXISTS images (
  nameKey TEXT PRIMARY KEY,
  imagePath TEXT NOT NULL,
  localPath TEXT NOT NULL,
  imageUrl TEXT,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
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

func (d *DB) InsertRun(run internal.RunRow) error {
	timingsJSON, _ := json.Marshal(run.Timings)
	countsJSON, _ := json.Marshal(run.Counts)
	_, err := d.conn.Exec(`
INSERT INTO runs (id, input, startedAt, finishedAt, timingsJson, countsJson) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  finishedAt=excluded.finishedAt,
  timingsJson=excluded.timingsJson,
  countsJson=excluded.countsJson
`, run.ID, run.Input, run.StartedAt, run.FinishedAt, string(timingsJSON), string(countsJSON))
	return err
}

func (d *DB) GetRun(id string) (*internal.RunRow, error) {
	var run internal.RunRow
	var timingsJSON, countsJSON string
	err := d.conn.QueryRow(`SELECT id, input, startedAt, finishedAt, timingsJson, countsJson FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Input, &run.StartedAt, &run.FinishedAt, &timingsJSON, &countsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(timingsJSON), &run.Timings)
	_ = json.Unmarshal([]byte(countsJSON), &run.Counts)
	return &run, nil
}

// LatestRunID returns the most recently started run, or "" when there is none.
func (d *DB) LatestRunID() (string, error) {
	var id string
	err := d.conn.QueryRow(`SELECT id FROM runs ORDER BY startedAt DESC, createdAt DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func (d *DB) InsertRecords(runID string, records []internal.EnrichedRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO records (
  runId, id, nameKey, name, coordinator, contact, description,
  imagePath, imageSource, imageUrl, keyword, category
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(runId, id) DO UPDATE SET
  nameKey=excluded.nameKey,
  name=excluded.name,
  coordinator=excluded.coordinator,
  contact=excluded.contact,
  description=excluded.description,
  imagePath=excluded.imagePath,
  imageSource=excluded.imageSource,
  imageUrl=excluded.imageUrl,
  keyword=excluded.keyword,
  category=excluded.category
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			runID, r.ID, util.NameKey(r.Name), r.Name, r.Coordinator, r.Contact, r.Description,
			r.ImagePath, string(r.ImageSource), r.ImageURL, r.Keyword, r.Category,
		); err != nil {
			return fmt.Errorf("insert record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

func (d *DB) ListRecords(runID string) ([]internal.EnrichedRecord, error) {
	rows, err := d.conn.Query(`
SELECT id, name, coordinator, contact, description, imagePath, imageSource,
       COALESCE(imageUrl, ''), COALESCE(keyword, ''), COALESCE(category, '')
FROM records
WHERE runId = ?
ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.EnrichedRecord
	for rows.Next() {
		var r internal.EnrichedRecord
		var source string
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Coordinator, &r.Contact, &r.Description, &r.ImagePath, &source,
			&r.ImageURL, &r.Keyword, &r.Category,
		); err != nil {
			return nil, err
		}
		r.ImageSource = internal.ImageSource(source)
		out = append(out, r)
	}

	return out, rows.Err()
}

func (d *DB) UpsertImage(img ImageRow) error {
	_, err := d.conn.Exec(`
INSERT INTO images (nameKey, imagePath, localPath, imageUrl) VALUES (?, ?, ?, ?)
ON CONFLICT(nameKey) DO UPDATE SET
  imagePath=excluded.imagePath,
  localPath=excluded.localPath,
  imageUrl=excluded.imageUrl,
  updatedAt=CURRENT_TIMESTAMP
`, img.NameKey, img.ImagePath, img.LocalPath, img.ImageURL)
	return err
}

func (d *DB) LookupImage(nameKey string) (*ImageRow, error) {
	var img ImageRow
	err := d.conn.QueryRow(`
SELECT nameKey, imagePath, localPath, COALESCE(imageUrl, ''), updatedAt FROM images WHERE nameKey = ?`, nameKey).
		Scan(&img.NameKey, &img.ImagePath, &img.LocalPath, &img.ImageURL, &img.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
