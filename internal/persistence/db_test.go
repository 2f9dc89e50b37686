package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndListSessions(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := db.RecordSession(Session{
			ID:       uuid.NewString(),
			Path:     "/saves/board.json",
			LoadedAt: base.Add(time.Duration(i) * time.Minute),
			Tiles:    100 + i,
			Missing:  1,
			Groups:   40,
			LoadMS:   7,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := db.RecentSessions(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	// Newest first.
	if sessions[0].Tiles != 102 || sessions[1].Tiles != 101 {
		t.Errorf("wrong order: %+v", sessions)
	}
}

func TestLastPathMeta(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetMeta(MetaLastPath)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("unset meta = %q, want empty", got)
	}

	err = db.RecordSession(Session{
		ID:       uuid.NewString(),
		Path:     "/saves/latest.json",
		LoadedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err = db.GetMeta(MetaLastPath)
	if err != nil {
		t.Fatal(err)
	}
	if got != "/saves/latest.json" {
		t.Errorf("last path = %q", got)
	}
}

func TestSetMetaOverwrites(t *testing.T) {
	db := openTestDB(t)
	if err := db.SetMeta("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMeta("k", "v2"); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetMeta("k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "v2" {
		t.Errorf("meta = %q, want v2", got)
	}
}
