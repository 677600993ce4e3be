package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS activity_snapshots (
	id TEXT PRIMARY KEY,
	repository TEXT NOT NULL,
	window_start DATETIME NOT NULL,
	window_end DATETIME NOT NULL,
	payload TEXT NOT NULL,
	fetched_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_lookup
	ON activity_snapshots (repository, window_start, window_end, fetched_at);
`

// Init initializes the SQLite snapshot cache at the given path
// (creates the file if it doesn't exist).
func Init(path string) error {
	var err error

	DB, err = sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=30000")
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(4)
	DB.SetMaxIdleConns(2)
	DB.SetConnMaxLifetime(time.Hour)

	if err = DB.Ping(); err != nil {
		return err
	}

	if _, err = DB.Exec(schema); err != nil {
		return err
	}

	log.Println("Snapshot cache ready")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
