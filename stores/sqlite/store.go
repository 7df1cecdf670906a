package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// sqliteStore keeps uploaded objects as blobs in a single uploads table.
type sqliteStore struct {
	db *sql.DB
}

// NewStore creates a new SQLite-based store.
func NewStore(dataSourceName string) *sqliteStore {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}

	tableStmt := `
	CREATE TABLE IF NOT EXISTS uploads (
		key TEXT PRIMARY KEY,
		name TEXT,
		data BLOB,
		created_at DATETIME
	);`
	if _, err = db.Exec(tableStmt); err != nil {
		log.Fatalf("failed to create uploads table: %v", err)
	}

	return &sqliteStore{db}
}

func (s *sqliteStore) Save(ctx context.Context, key, name string, data io.Reader) error {
	buf, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("failed to read upload data: %w", err)
	}
	log := logrus.WithFields(logrus.Fields{
		"key":  key,
		"name": name,
		"size": len(buf),
	})

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO uploads (key, name, data, created_at) VALUES (?, ?, ?, ?)",
		key, name, buf, time.Now())
	if err != nil {
		log.WithError(err).Error("Failed to store object")
		return err
	}
	log.Info("Object stored")
	return nil
}

func (s *sqliteStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	log := logrus.WithField("key", key)
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM uploads WHERE key = ?", key).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Warn("Object with specified key not found")
			return nil, fmt.Errorf("object with key %s not found", key)
		}
		log.WithError(err).Error("Failed to retrieve object")
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	log := logrus.WithField("key", key)
	if _, err := s.db.ExecContext(ctx, "DELETE FROM uploads WHERE key = ?", key); err != nil {
		log.WithError(err).Error("Failed to delete object")
		return err
	}
	log.Info("Object deleted")
	return nil
}
