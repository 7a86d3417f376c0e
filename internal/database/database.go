package database

import (
	"fmt"
	"net/url"
	"time"

	"sanctuary/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DriverName is the database/sql driver used for the library file.
const DriverName = "sqlite"

// SQLiteDSN builds a modernc.org/sqlite DSN for a file path. Foreign keys are
// left unenforced so a quiz row never depends on insert ordering.
func SQLiteDSN(path string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(0)")
	return "file:" + path + "?" + q.Encode()
}

// NewSQLiteDB opens the library database. SQLite allows one writer, so the
// pool is capped at a single connection.
func NewSQLiteDB(path string, busyTimeout time.Duration) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverName, SQLiteDSN(path, busyTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}

	logger.Get().Info("Connected to sqlite database", zap.String("path", path))
	return db, nil
}
