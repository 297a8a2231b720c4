package database

import (
	"database/sql"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"
)

// Store persists metric snapshots so counters survive restarts.
type Store struct {
	db *sql.DB
}

// Open connects to the sqlite file at dbPath and creates the schema.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	db.SetMaxOpenConns(1)

	createMetricsTable := `
	CREATE TABLE IF NOT EXISTS metrics (
		metric_name TEXT NOT NULL,
		label_key TEXT NOT NULL DEFAULT '',
		label_value TEXT NOT NULL DEFAULT '',
		metric_value REAL NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (metric_name, label_key, label_value)
	);`
	if _, err = db.Exec(createMetricsTable); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create metrics table")
	}

	log.WithField("path", dbPath).Info("Database initialized successfully.")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
