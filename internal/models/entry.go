package models

import "time"

// Reserved section names. Entries in these sections belong to the purchase
// flow and are excluded from work-tracking aggregation.
const (
	SectionToPurchase = "Items to Purchase"
	SectionPurchased  = "Purchased Items"
)

const (
	StatusPending = "Pending"
	StatusDone    = "Done"
)

// TimelineEvent is one record in an entry's append-only audit log.
type TimelineEvent struct {
	TS   time.Time `json:"ts"`
	Note string    `json:"note"`
}

// Entry is the central mutable record: a unit of work or a purchase-list item.
type Entry struct {
	ID          int64           `json:"id"`
	Section     string          `json:"section"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Assignee    string          `json:"assignee"`
	Status      string          `json:"status"`
	Percent     int             `json:"percent"`
	Amount      float64         `json:"amount"`
	Images      []string        `json:"images"`
	Timeline    []TimelineEvent `json:"timeline"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
