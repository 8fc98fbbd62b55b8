package infra

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteBusyTimeoutMs = 5000

// OpenSQLite opens the database at path, creating its directory. The
// special path ":memory:" opens a private in-memory database.
func OpenSQLite(path string, loggerFactory *LoggerFactory) (*sql.DB, error) {
	logger := loggerFactory.Create("SQLite").Sugar()

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}

	// Keep statements serialized, an in-memory database also lives and
	// dies with its only connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := fmt.Sprintf("pragma busy_timeout=%d", sqliteBusyTimeoutMs)
	if path != ":memory:" {
		pragmas = "pragma journal_mode=WAL; pragma synchronous=NORMAL; " + pragmas
	}
	if _, err := db.Exec(pragmas); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: pragmas: %w", err)
	}

	logger.Infof("sqlite opened path[%v]", path)
	return db, nil
}
