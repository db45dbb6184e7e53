// Package store owns the persisted team document: one JSON file holding the
// project, the user roster, and every entry. Each save replaces the whole
// file; callers load, mutate and save within one logical operation. There is
// no cross-request lock, so two concurrent writers race and the later save
// wins. That lost-update anomaly is accepted at this scale (one small team).
package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pitwall/internal/models"
)

type Store struct {
	path        string
	projectName string
	defaults    func() []models.User
}

func New(path, projectName string, defaultUsers func() []models.User) *Store {
	return &Store{
		path:        path,
		projectName: projectName,
		defaults:    defaultUsers,
	}
}

// Path returns the location of the persisted file, for whole-file export.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole document. A missing or unreadable file is rebuilt
// from defaults (entries are lost, the event is logged); a readable document
// with missing top-level fields is healed in place and re-persisted.
func (s *Store) Load() (models.Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			recoveries.WithLabelValues("missing").Inc()
		} else {
			slog.Warn("data file unreadable, rebuilding", "path", s.path, "error", err)
			recoveries.WithLabelValues("unreadable").Inc()
		}
		return s.reset()
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Warn("data file corrupt, rebuilding", "path", s.path, "error", err)
		recoveries.WithLabelValues("corrupt").Inc()
		return s.reset()
	}

	if s.heal(&doc) {
		if err := s.Save(doc); err != nil {
			return models.Document{}, err
		}
	}

	return doc, nil
}

// Save atomically replaces the persisted file via temp file + rename, so a
// crash mid-write never leaves a torn document behind.
func (s *Store) Save(doc models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".pitwall-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}

func (s *Store) reset() (models.Document, error) {
	doc := s.defaultDocument()
	if err := s.Save(doc); err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// heal back-fills missing top-level fields. Reports whether anything changed.
func (s *Store) heal(doc *models.Document) bool {
	healed := false
	if doc.Entries == nil {
		doc.Entries = []models.Entry{}
		healed = true
	}
	if len(doc.Users) == 0 {
		doc.Users = s.defaults()
		healed = true
	}
	if doc.Project.Name == "" {
		doc.Project = models.Project{Name: s.projectName, CreatedAt: time.Now().UTC()}
		healed = true
	}
	return healed
}

func (s *Store) defaultDocument() models.Document {
	return models.Document{
		Project: models.Project{Name: s.projectName, CreatedAt: time.Now().UTC()},
		Users:   s.defaults(),
		Entries: []models.Entry{},
	}
}
