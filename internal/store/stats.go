package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string       `json:"db_path"`
	DBSizeBytes int64        `json:"db_size_bytes"`
	TotalModels int          `json:"total_models"`
	Names       int          `json:"names"`
	TotalWords  int          `json:"total_words"`
	Models      []ModelStats `json:"models"`
}

// ModelStats holds per-name counts.
type ModelStats struct {
	Name     string `json:"name"`
	Versions int    `json:"versions"`
	Words    int    `json:"words"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM models`).Scan(&st.TotalModels)
	s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT name) FROM models`).Scan(&st.Names)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&st.TotalWords)

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.name, COUNT(*) AS versions,
		       (SELECT COUNT(*) FROM words w
		        WHERE w.model_id = (SELECT id FROM models WHERE name = m.name ORDER BY version DESC LIMIT 1)) AS words
		FROM models m
		GROUP BY m.name ORDER BY versions DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ms ModelStats
		rows.Scan(&ms.Name, &ms.Versions, &ms.Words)
		st.Models = append(st.Models, ms)
	}

	return st, nil
}
