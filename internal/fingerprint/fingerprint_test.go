package fingerprint

import (
	"sync"
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known vector for the empty input.
	if got := SHA256Hex(nil); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("SHA256Hex(nil) = %q", got)
	}

	a := SHA256Hex([]byte("snap"))
	b := SHA256Hex([]byte("quest"))
	if a == b {
		t.Error("different content produced identical fingerprints")
	}
	if a != SHA256Hex([]byte("snap")) {
		t.Error("fingerprint is not deterministic")
	}
}

func TestMemoryLedger_RecordOnce(t *testing.T) {
	l := NewMemoryLedger()

	ok, err := l.Contains("fp-1")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if ok {
		t.Error("empty ledger should not contain fp-1")
	}

	inserted, err := l.Record("fp-1")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !inserted {
		t.Error("first Record should insert")
	}

	inserted, err = l.Record("fp-1")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if inserted {
		t.Error("second Record of the same fingerprint should report duplicate")
	}

	ok, _ = l.Contains("fp-1")
	if !ok {
		t.Error("ledger should contain fp-1 after Record")
	}
}

func TestMemoryLedger_ConcurrentRecord(t *testing.T) {
	l := NewMemoryLedger()

	const workers = 32
	var wg sync.WaitGroup
	inserted := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := l.Record("same-fp")
			if err != nil {
				t.Errorf("Record: %v", err)
				return
			}
			inserted <- ok
		}()
	}
	wg.Wait()
	close(inserted)

	wins := 0
	for ok := range inserted {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("%d concurrent Records succeeded, want exactly 1", wins)
	}
}
