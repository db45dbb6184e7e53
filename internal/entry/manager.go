// Package entry implements the lifecycle of tracker entries: create, partial
// update, delete and the purchase-flow transitions, each as one
// load-mutate-save round against the document store.
package entry

import (
	"fmt"
	"strings"
	"time"

	"pitwall/internal/models"
)

// Store is the persistence surface the manager needs: whole-document load
// and save. No partial writes exist.
type Store interface {
	Load() (models.Document, error)
	Save(models.Document) error
}

type Manager struct {
	store  Store
	policy Policy
	clock  Clock
}

func NewManager(store Store, policy Policy) *Manager {
	return &Manager{store: store, policy: policy, clock: RealClock{}}
}

// CreateRequest carries the caller-supplied fields for a new entry. Section
// and Title are required; everything else has a default.
type CreateRequest struct {
	Section     string   `json:"section"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Assignee    string   `json:"assignee"`
	Status      string   `json:"status"`
	Percent     int      `json:"percent"`
	Amount      float64  `json:"amount"`
	Images      []string `json:"images"`
}

// UpdateRequest is an explicit-presence patch: nil pointer fields are left
// untouched, set ones are applied. This keeps "clear this field" (pointer to
// zero value) distinct from "leave unchanged" (nil).
type UpdateRequest struct {
	Section     *string  `json:"section"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Assignee    *string  `json:"assignee"`
	Status      *string  `json:"status"`
	Percent     *int     `json:"percent"`
	Amount      *float64 `json:"amount"`
	// TimelineNote, when non-empty, appends one audit record attributed to
	// the caller.
	TimelineNote string `json:"timelineNote"`
}

// Create validates the request, assigns a fresh id and defaults, seeds the
// timeline and persists. Any authenticated identity may create.
func (m *Manager) Create(caller models.Identity, req CreateRequest) (models.Entry, error) {
	if strings.TrimSpace(req.Section) == "" {
		return models.Entry{}, &ValidationError{Field: "section"}
	}
	if strings.TrimSpace(req.Title) == "" {
		return models.Entry{}, &ValidationError{Field: "title"}
	}

	doc, err := m.store.Load()
	if err != nil {
		return models.Entry{}, err
	}

	now := m.clock.Now()

	assignee := req.Assignee
	if assignee == "" {
		assignee = caller.Username
	}
	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	e := models.Entry{
		ID:          nextID(doc.Entries, now),
		Section:     req.Section,
		Title:       req.Title,
		Description: req.Description,
		Assignee:    assignee,
		Status:      status,
		Percent:     clampPercent(req.Percent),
		Amount:      clampAmount(req.Amount),
		Images:      images,
		Timeline: []models.TimelineEvent{
			{TS: now, Note: fmt.Sprintf("Created by %s", caller.Username)},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc.Entries = append(doc.Entries, e)
	if err := m.store.Save(doc); err != nil {
		return models.Entry{}, err
	}
	return e, nil
}

// Update applies a partial patch to one entry. The caller must pass the
// modification policy. Nothing is touched on failure.
func (m *Manager) Update(caller models.Identity, id int64, req UpdateRequest) (models.Entry, error) {
	doc, err := m.store.Load()
	if err != nil {
		return models.Entry{}, err
	}

	idx := findEntry(doc.Entries, id)
	if idx < 0 {
		return models.Entry{}, ErrNotFound
	}
	e := doc.Entries[idx]

	if !m.policy.CanModify(caller, e) {
		return models.Entry{}, ErrForbidden
	}

	if req.Section != nil {
		e.Section = *req.Section
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return models.Entry{}, &ValidationError{Field: "title"}
		}
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Assignee != nil {
		e.Assignee = *req.Assignee
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	if req.Percent != nil {
		e.Percent = clampPercent(*req.Percent)
	}
	if req.Amount != nil {
		e.Amount = clampAmount(*req.Amount)
	}

	now := m.clock.Now()
	if req.TimelineNote != "" {
		e.Timeline = append(e.Timeline, models.TimelineEvent{
			TS:   now,
			Note: fmt.Sprintf("%s (by %s)", req.TimelineNote, caller.Username),
		})
	}

	// updatedAt must move forward even under a coarse or frozen clock.
	if !now.After(e.UpdatedAt) {
		now = e.UpdatedAt.Add(time.Millisecond)
	}
	e.UpdatedAt = now

	doc.Entries[idx] = e
	if err := m.store.Save(doc); err != nil {
		return models.Entry{}, err
	}
	return e, nil
}

// Delete removes one entry permanently, timeline included. No tombstone.
// The removed entry is returned so callers can release attached resources.
func (m *Manager) Delete(caller models.Identity, id int64) (models.Entry, error) {
	doc, err := m.store.Load()
	if err != nil {
		return models.Entry{}, err
	}

	idx := findEntry(doc.Entries, id)
	if idx < 0 {
		return models.Entry{}, ErrNotFound
	}
	removed := doc.Entries[idx]
	if !m.policy.CanDelete(caller, removed) {
		return models.Entry{}, ErrForbidden
	}

	doc.Entries = append(doc.Entries[:idx], doc.Entries[idx+1:]...)
	if err := m.store.Save(doc); err != nil {
		return models.Entry{}, err
	}
	return removed, nil
}

// List returns the full entry set in persisted (insertion) order.
func (m *Manager) List() ([]models.Entry, error) {
	doc, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

// MarkPurchased moves a purchase-list entry to the purchased section. It is
// an ordinary Update with a fixed field set, not a separate code path.
func (m *Manager) MarkPurchased(caller models.Identity, id int64) (models.Entry, error) {
	section := models.SectionPurchased
	status := models.StatusDone
	percent := 100
	return m.Update(caller, id, UpdateRequest{
		Section:      &section,
		Status:       &status,
		Percent:      &percent,
		TimelineNote: "Marked purchased",
	})
}

// MoveBack returns a purchased entry to the to-purchase section.
func (m *Manager) MoveBack(caller models.Identity, id int64) (models.Entry, error) {
	section := models.SectionToPurchase
	status := models.StatusPending
	percent := 0
	return m.Update(caller, id, UpdateRequest{
		Section:      &section,
		Status:       &status,
		Percent:      &percent,
		TimelineNote: "Moved back",
	})
}

// nextID hands out unix-millisecond ids, bumped past the current maximum so
// sequential creation within the same millisecond never collides.
func nextID(entries []models.Entry, now time.Time) int64 {
	id := now.UnixMilli()
	for _, e := range entries {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	return id
}

func findEntry(entries []models.Entry, id int64) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func clampAmount(a float64) float64 {
	if a < 0 {
		return 0
	}
	return a
}
