package store

import (
	"database/sql"
	"fmt"

	"github.com/pranav/snapquest/internal/fingerprint"
)

// SQLiteLedger is the persistent, lifetime-scoped fingerprint ledger.
// Record relies on INSERT OR IGNORE against the primary key, so the
// duplicate check and the insert are one atomic statement even across
// concurrent sessions.
type SQLiteLedger struct {
	db *sql.DB
}

var _ fingerprint.Ledger = (*SQLiteLedger)(nil)

func (l *SQLiteLedger) Contains(fp string) (bool, error) {
	var one int
	err := l.db.QueryRow(`SELECT 1 FROM fingerprints WHERE digest = ?`, fp).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query fingerprint: %w", err)
	}
	return true, nil
}

func (l *SQLiteLedger) Record(fp string) (bool, error) {
	res, err := l.db.Exec(`INSERT OR IGNORE INTO fingerprints (digest) VALUES (?)`, fp)
	if err != nil {
		return false, fmt.Errorf("insert fingerprint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
