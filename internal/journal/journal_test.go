package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func TestJournalRecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer j.Close()

	first := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	if err := j.Record("rename-views", "completed", "Renamed 2 of 2 views.", first); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := j.Record("place-rebar", "aborted", "No input provided.", first.Add(time.Minute)); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Command != "place-rebar" || entries[1].Command != "rename-views" {
		t.Fatalf("order: %+v", entries)
	}
	if entries[1].Status != "completed" || entries[1].Message != "Renamed 2 of 2 views." {
		t.Fatalf("entry: %+v", entries[1])
	}
	if !entries[1].StartedAt.Equal(first) {
		t.Fatalf("timestamp: got %v want %v", entries[1].StartedAt, first)
	}
}

func TestJournalRecentLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer j.Close()

	for i := 0; i < 5; i++ {
		if err := j.Record("rename-views", "completed", "", time.Now()); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	entries, err := j.Recent(3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("limit ignored: got %d", len(entries))
	}
}

func TestNilJournalIsSafe(t *testing.T) {
	var j *Journal
	if err := j.Record("x", "completed", "", time.Now()); err != nil {
		t.Fatalf("nil record: %v", err)
	}
	entries, err := j.Recent(10)
	if err != nil || entries != nil {
		t.Fatalf("nil recent: %v %v", entries, err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}
