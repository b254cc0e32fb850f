package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"breakcheck/internal/storage"
)

func TestStoreSaveAndListNewestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	base := time.Now()
	for i, url := range []string{"https://a.com", "https://b.com", "https://c.com"} {
		rec := storage.NewRunRecord(url, 10, 10, "30")
		rec.Timestamp = base.Add(time.Duration(i) * time.Second)
		rec.OK = true
		if err := store.Save(rec); err != nil {
			t.Fatalf("save %s: %v", url, err)
		}
	}

	recs := store.List()
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].TargetURL != "https://c.com" || recs[2].TargetURL != "https://a.com" {
		t.Errorf("expected newest first, got %s .. %s", recs[0].TargetURL, recs[2].TargetURL)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Records survive reopening.
	store, err = storage.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	if got := len(store.List()); got != 3 {
		t.Errorf("expected 3 records after reopen, got %d", got)
	}
}

func TestNewRunRecordUniqueIDs(t *testing.T) {
	a := storage.NewRunRecord("https://a.com", 1, 1, "30")
	b := storage.NewRunRecord("https://a.com", 1, 1, "30")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
}
