// Package report derives the dashboard views from the current entry set.
// Everything here is a pure function recomputed on every read; nothing is
// cached or incrementally maintained.
package report

import (
	"math"
	"sort"
	"time"

	"pitwall/internal/models"
)

// SectionSummary is the work-tracking rollup for one non-purchase section.
type SectionSummary struct {
	Section        string `json:"section"`
	Count          int    `json:"count"`
	DoneCount      int    `json:"doneCount"`
	AveragePercent int    `json:"averagePercent"`
}

// WorkSummary groups entries outside the two purchase sections by section,
// in first-appearance order. Empty groups are never emitted, so the average
// can't divide by zero.
func WorkSummary(entries []models.Entry) []SectionSummary {
	var order []string
	counts := map[string]int{}
	done := map[string]int{}
	percents := map[string]int{}

	for _, e := range entries {
		if e.Section == models.SectionToPurchase || e.Section == models.SectionPurchased {
			continue
		}
		if counts[e.Section] == 0 {
			order = append(order, e.Section)
		}
		counts[e.Section]++
		percents[e.Section] += e.Percent
		if e.Status == models.StatusDone {
			done[e.Section]++
		}
	}

	summaries := make([]SectionSummary, 0, len(order))
	for _, section := range order {
		n := counts[section]
		summaries = append(summaries, SectionSummary{
			Section:        section,
			Count:          n,
			DoneCount:      done[section],
			AveragePercent: int(math.Round(float64(percents[section]) / float64(n))),
		})
	}
	return summaries
}

// CostReport totals the purchase-flow sections. TotalSpent is the purchased
// partition only: money committed but not yet spent stays out of it.
type CostReport struct {
	ToPurchaseCount int     `json:"toPurchaseCount"`
	ToPurchaseTotal float64 `json:"toPurchaseTotal"`
	PurchasedCount  int     `json:"purchasedCount"`
	PurchasedTotal  float64 `json:"purchasedTotal"`
	TotalSpent      float64 `json:"totalSpent"`
}

func CostSummary(entries []models.Entry) CostReport {
	var r CostReport
	for _, e := range entries {
		switch e.Section {
		case models.SectionToPurchase:
			r.ToPurchaseCount++
			r.ToPurchaseTotal += e.Amount
		case models.SectionPurchased:
			r.PurchasedCount++
			r.PurchasedTotal += e.Amount
		}
	}
	r.TotalSpent = r.PurchasedTotal
	return r
}

// FeedEvent is one timeline record tagged with its owning entry.
type FeedEvent struct {
	TS      time.Time `json:"ts"`
	EntryID int64     `json:"entryId"`
	Section string    `json:"section"`
	Title   string    `json:"title"`
	Note    string    `json:"note"`
}

// TimelineFeed flattens every entry's timeline into one sequence sorted by
// timestamp descending. Ties keep their input order (stable sort).
func TimelineFeed(entries []models.Entry) []FeedEvent {
	var feed []FeedEvent
	for _, e := range entries {
		for _, ev := range e.Timeline {
			feed = append(feed, FeedEvent{
				TS:      ev.TS,
				EntryID: e.ID,
				Section: e.Section,
				Title:   e.Title,
				Note:    ev.Note,
			})
		}
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].TS.After(feed[j].TS)
	})
	return feed
}

// PurchaseBoard exposes the two reserved-section subsets for the purchase
// manager surface.
type PurchaseBoard struct {
	ToPurchase []models.Entry `json:"toPurchase"`
	Purchased  []models.Entry `json:"purchased"`
}

func Purchases(entries []models.Entry) PurchaseBoard {
	board := PurchaseBoard{
		ToPurchase: []models.Entry{},
		Purchased:  []models.Entry{},
	}
	for _, e := range entries {
		switch e.Section {
		case models.SectionToPurchase:
			board.ToPurchase = append(board.ToPurchase, e)
		case models.SectionPurchased:
			board.Purchased = append(board.Purchased, e)
		}
	}
	return board
}
