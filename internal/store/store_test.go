package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"pitwall/internal/models"
)

func testUsers() []models.User {
	return []models.User{
		{Username: "captain", Password: "pw", Name: "Captain", Role: "captain"},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	return New(path, "Test Project", testUsers)
}

func TestLoadCreatesDefaultDocument(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if doc.Project.Name != "Test Project" {
		t.Errorf("Expected default project name, got %q", doc.Project.Name)
	}
	if len(doc.Entries) != 0 {
		t.Errorf("Expected empty entries, got %d", len(doc.Entries))
	}
	if len(doc.Users) != 1 || doc.Users[0].Username != "captain" {
		t.Errorf("Expected default users, got %v", doc.Users)
	}

	// The default document must have been persisted immediately
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("Expected data file to exist after Load: %v", err)
	}
}

func TestLoadRecoversFromCorruptFile(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	before := testutil.ToFloat64(recoveries.WithLabelValues("corrupt"))

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load should recover from corruption, got: %v", err)
	}
	if doc.Project.Name != "Test Project" {
		t.Errorf("Expected rebuilt default document, got project %q", doc.Project.Name)
	}

	// The replacement must be parseable
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("Failed to read rebuilt file: %v", err)
	}
	var check models.Document
	if err := json.Unmarshal(raw, &check); err != nil {
		t.Errorf("Rebuilt file is not valid JSON: %v", err)
	}

	after := testutil.ToFloat64(recoveries.WithLabelValues("corrupt"))
	if after != before+1 {
		t.Errorf("Recovery counter must record the rebuild: %v -> %v", before, after)
	}
}

func TestLoadCountsMissingFileRecovery(t *testing.T) {
	s := newTestStore(t)

	before := testutil.ToFloat64(recoveries.WithLabelValues("missing"))
	if _, err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	after := testutil.ToFloat64(recoveries.WithLabelValues("missing"))
	if after != before+1 {
		t.Errorf("Missing-file rebuild must be counted: %v -> %v", before, after)
	}

	// The file exists now: another Load is not a recovery
	if _, err := s.Load(); err != nil {
		t.Fatalf("Second load failed: %v", err)
	}
	if got := testutil.ToFloat64(recoveries.WithLabelValues("missing")); got != after {
		t.Errorf("A clean load must not bump the counter: %v -> %v", after, got)
	}
}

func TestLoadBackfillsMissingFields(t *testing.T) {
	s := newTestStore(t)

	// A document with only a project: users and entries are missing
	partial := `{"project": {"name": "Partial", "createdAt": "2026-01-02T10:00:00Z"}}`
	if err := os.WriteFile(s.Path(), []byte(partial), 0644); err != nil {
		t.Fatalf("Failed to write partial file: %v", err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if doc.Project.Name != "Partial" {
		t.Errorf("Existing project must be kept, got %q", doc.Project.Name)
	}
	if doc.Entries == nil {
		t.Error("Entries must be back-filled to an empty slice")
	}
	if len(doc.Users) != 1 {
		t.Errorf("Users must be back-filled from defaults, got %d", len(doc.Users))
	}

	// The healed document must be re-persisted
	raw, _ := os.ReadFile(s.Path())
	var onDisk models.Document
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("Healed file unreadable: %v", err)
	}
	if len(onDisk.Users) != 1 {
		t.Error("Healed users were not persisted")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	doc := models.Document{
		Project: models.Project{Name: "Round Trip", CreatedAt: ts},
		Users:   testUsers(),
		Entries: []models.Entry{
			{
				ID:       1700000000000,
				Section:  "Electrical",
				Title:    "Wire harness",
				Assignee: "elec",
				Status:   models.StatusPending,
				Percent:  40,
				Amount:   1500,
				Images:   []string{"abc-harness.jpg"},
				Timeline: []models.TimelineEvent{
					{TS: ts, Note: "Created by elec"},
				},
				CreatedAt: ts,
				UpdatedAt: ts,
			},
		},
	}

	if err := s.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(doc, loaded) {
		t.Errorf("Round trip lost data:\nsaved:  %+v\nloaded: %+v", doc, loaded)
	}

	// save(load()) must not modify the file
	before, _ := os.ReadFile(s.Path())
	if err := s.Save(loaded); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}
	after, _ := os.ReadFile(s.Path())
	if string(before) != string(after) {
		t.Error("save(load()) changed the persisted bytes")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	dir := filepath.Dir(s.Path())
	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected only the data file in %s, found %d files", dir, len(files))
	}
}
