// Package fingerprint detects resubmission of identical media by
// content hash. The ledger is lifetime-scoped: once a fingerprint is
// accepted it can never again be accepted as new content.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Digest turns raw submitted content into a fixed-length fingerprint.
// Implementations must be deterministic with negligible collision
// probability.
type Digest func(content []byte) string

// SHA256Hex is the default digest: a 64-character hex SHA-256.
func SHA256Hex(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Ledger is the append-only fingerprint set shared across all of a
// player's sessions. Record is an atomic test-and-insert: concurrent
// submissions of identical content must not both be accepted.
type Ledger interface {
	// Contains reports whether fp has already been accepted.
	Contains(fp string) (bool, error)

	// Record inserts fp if absent and reports whether it was newly
	// inserted. A false return means the content is a duplicate.
	Record(fp string) (bool, error)
}

// MemoryLedger is a mutex-guarded in-memory Ledger for embedding and
// tests.
type MemoryLedger struct {
	mu   sync.Mutex
	seen map[string]bool
}

var _ Ledger = (*MemoryLedger)(nil)

// NewMemoryLedger returns an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{seen: make(map[string]bool)}
}

func (l *MemoryLedger) Contains(fp string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seen[fp], nil
}

func (l *MemoryLedger) Record(fp string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen[fp] {
		return false, nil
	}
	l.seen[fp] = true
	return true, nil
}
