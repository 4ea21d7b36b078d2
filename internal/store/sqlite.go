package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/trlm/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS models (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		version     INTEGER NOT NULL DEFAULT 1,
		supersedes  TEXT,
		created_at  TEXT NOT NULL,
		seed        INTEGER NOT NULL,
		params      TEXT NOT NULL,
		labels      TEXT NOT NULL,
		weights     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_models_name ON models(name);
	CREATE INDEX IF NOT EXISTS idx_models_created ON models(created_at DESC);

	CREATE TABLE IF NOT EXISTS words (
		model_id    TEXT NOT NULL REFERENCES models(id),
		seq         INTEGER NOT NULL,
		word        TEXT NOT NULL,
		PRIMARY KEY (model_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_words_model ON words(model_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, name string, rec *model.Record) (*model.Record, error) {
	if name == "" {
		return nil, fmt.Errorf("model name is required")
	}
	now := time.Now().UTC()
	id := s.newID()

	paramsJSON, _ := json.Marshal(rec.Params)
	labelsJSON, _ := json.Marshal(rec.Labels)
	weightsJSON, _ := json.Marshal(rec.Weights)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Check for existing latest version
	var prevID string
	var prevVersion int
	err = tx.QueryRowContext(ctx,
		`SELECT id, version FROM models WHERE name = ?
		 ORDER BY version DESC LIMIT 1`, name).Scan(&prevID, &prevVersion)

	version := 1
	var supersedes *string
	switch {
	case err == nil:
		version = prevVersion + 1
		supersedes = &prevID
	case errors.Is(err, sql.ErrNoRows):
		// first version
	default:
		return nil, fmt.Errorf("query latest version: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO models (id, name, version, supersedes, created_at, seed, params, labels, weights)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, version, supersedes, now.Format(time.RFC3339),
		rec.Seed, string(paramsJSON), string(labelsJSON), string(weightsJSON))
	if err != nil {
		return nil, fmt.Errorf("insert model: %w", err)
	}

	for i, w := range rec.Words {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO words (model_id, seq, word) VALUES (?, ?, ?)`, id, i, w)
		if err != nil {
			return nil, fmt.Errorf("insert word: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	saved := *rec
	saved.ID = id
	saved.Name = name
	saved.Version = version
	saved.CreatedAt = now
	if supersedes != nil {
		saved.Supersedes = *supersedes
	}
	return &saved, nil
}

func (s *SQLiteStore) Get(ctx context.Context, p GetParams) (*model.Record, error) {
	query := `SELECT id, name, version, supersedes, created_at, seed, params, labels, weights
			  FROM models WHERE name = ?`
	args := []interface{}{p.Name}
	if p.Version > 0 {
		query += ` AND version = ?`
		args = append(args, p.Version)
	}
	query += ` ORDER BY version DESC LIMIT 1`

	rec, err := scanModel(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("model not found: %s", p.Name)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM words WHERE model_id = ? ORDER BY seq`, rec.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		rec.Words = append(rec.Words, w)
	}
	return rec, rows.Err()
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Record, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.version, m.supersedes, m.created_at, m.seed, m.params, m.labels, '[]'
		FROM models m
		INNER JOIN (
			SELECT name, MAX(version) AS max_ver FROM models GROUP BY name
		) latest ON m.name = latest.name AND m.version = latest.max_ver
		ORDER BY m.created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []model.Record
	for rows.Next() {
		rec, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		rec.Weights = nil
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func (s *SQLiteStore) Rm(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM models WHERE name = ?`, name).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("model not found: %s", name)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM words WHERE model_id IN (SELECT id FROM models WHERE name = ?)`, name)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM models WHERE name = ?`, name); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanModel(row scanner) (*model.Record, error) {
	var rec model.Record
	var supersedes sql.NullString
	var createdAt, paramsJSON, labelsJSON, weightsJSON string

	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Version, &supersedes, &createdAt,
		&rec.Seed, &paramsJSON, &labelsJSON, &weightsJSON,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if supersedes.Valid {
		rec.Supersedes = supersedes.String
	}
	if err := json.Unmarshal([]byte(paramsJSON), &rec.Params); err != nil {
		return nil, fmt.Errorf("decode params: %w", err)
	}
	if err := json.Unmarshal([]byte(labelsJSON), &rec.Labels); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	if err := json.Unmarshal([]byte(weightsJSON), &rec.Weights); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}
	return &rec, nil
}
