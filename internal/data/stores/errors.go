package stores

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/colonyops/touchgate/internal/data/db"
)

// corruptCodes are the primary result codes that mean the file cannot be used
// as a database.
var corruptCodes = []int{sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CANTOPEN}

// corruptMessages catch corruption reported before a driver error exists,
// for example from a failed migration wrapped with fmt.Errorf.
var corruptMessages = []string{
	"database disk image is malformed",
	"file is not a database",
}

// sqliteCode returns the primary result code carried by err.
func sqliteCode(err error) (int, bool) {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return 0, false
	}
	// Extended codes keep the primary code in the low byte.
	return sqliteErr.Code() & 0xff, true
}

// IsBusyError reports whether err is SQLITE_BUSY, including its extended
// variants.
func IsBusyError(err error) bool {
	code, ok := sqliteCode(err)
	return ok && code == sqlite3.SQLITE_BUSY
}

// IsCorruptionError reports whether err says the journal file is damaged.
func IsCorruptionError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqliteCode(err); ok {
		return slices.Contains(corruptCodes, code)
	}
	msg := err.Error()
	return slices.ContainsFunc(corruptMessages, func(m string) bool {
		return strings.Contains(msg, m)
	})
}

// RecoverFromCorruption moves a corrupted database aside, along with its WAL
// and SHM files, so the next Open starts from an empty file.
func RecoverFromCorruption(dataDir string) (string, error) {
	dbPath := filepath.Join(dataDir, db.FileName)
	backupPath := fmt.Sprintf("%s.corrupt.%s", dbPath, time.Now().Format("20060102-150405"))

	if err := os.Rename(dbPath, backupPath); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("backup corrupted database: %w", err)
	}

	// Stale WAL/SHM files that do not match the new database would make
	// SQLite refuse to open it.
	for _, suffix := range []string{"-wal", "-shm"} {
		side := dbPath + suffix
		if _, err := os.Stat(side); err != nil {
			continue
		}
		if err := os.Rename(side, backupPath+suffix); err != nil {
			if delErr := os.Remove(side); delErr != nil {
				return "", fmt.Errorf("backup or remove %s: %w", side, err)
			}
		}
	}

	return backupPath, nil
}
