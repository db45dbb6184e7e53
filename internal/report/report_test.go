package report

import (
	"reflect"
	"testing"
	"time"

	"pitwall/internal/models"
)

func sampleEntries() []models.Entry {
	t0 := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	return []models.Entry{
		{
			ID: 1, Section: "Electrical", Title: "Wire harness", Status: models.StatusDone, Percent: 100,
			Timeline: []models.TimelineEvent{{TS: t0, Note: "Created by elec"}},
		},
		{
			ID: 2, Section: "Electrical", Title: "BMS setup", Status: models.StatusPending, Percent: 50,
			Timeline: []models.TimelineEvent{{TS: t0.Add(2 * time.Hour), Note: "Created by elec"}},
		},
		{
			ID: 3, Section: "Chassis", Title: "Roll cage", Status: models.StatusPending, Percent: 25,
			Timeline: []models.TimelineEvent{
				{TS: t0.Add(time.Hour), Note: "Created by mech"},
				{TS: t0.Add(3 * time.Hour), Note: "Welding done (by mech)"},
			},
		},
		{
			ID: 4, Section: models.SectionToPurchase, Title: "Motor controller", Amount: 24000,
			Timeline: []models.TimelineEvent{{TS: t0.Add(30 * time.Minute), Note: "Created by captain"}},
		},
		{
			ID: 5, Section: models.SectionPurchased, Title: "Battery pack", Status: models.StatusDone, Percent: 100, Amount: 56000,
			Timeline: []models.TimelineEvent{{TS: t0.Add(4 * time.Hour), Note: "Marked purchased (by captain)"}},
		},
	}
}

func TestWorkSummaryExcludesPurchaseSections(t *testing.T) {
	summaries := WorkSummary(sampleEntries())

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 sections, got %d: %+v", len(summaries), summaries)
	}

	// First-appearance order
	if summaries[0].Section != "Electrical" || summaries[1].Section != "Chassis" {
		t.Errorf("Unexpected section order: %q, %q", summaries[0].Section, summaries[1].Section)
	}

	elec := summaries[0]
	if elec.Count != 2 || elec.DoneCount != 1 || elec.AveragePercent != 75 {
		t.Errorf("Electrical summary wrong: %+v", elec)
	}

	chassis := summaries[1]
	if chassis.Count != 1 || chassis.DoneCount != 0 || chassis.AveragePercent != 25 {
		t.Errorf("Chassis summary wrong: %+v", chassis)
	}
}

func TestWorkSummaryEmptyInput(t *testing.T) {
	if got := WorkSummary(nil); len(got) != 0 {
		t.Errorf("Expected no summaries for empty input, got %+v", got)
	}
}

func TestWorkSummaryRounding(t *testing.T) {
	entries := []models.Entry{
		{ID: 1, Section: "Chassis", Percent: 33},
		{ID: 2, Section: "Chassis", Percent: 34},
	}
	summaries := WorkSummary(entries)
	if summaries[0].AveragePercent != 34 {
		t.Errorf("Expected 33.5 to round to 34, got %d", summaries[0].AveragePercent)
	}
}

func TestCostSummary(t *testing.T) {
	r := CostSummary(sampleEntries())

	if r.ToPurchaseCount != 1 || r.ToPurchaseTotal != 24000 {
		t.Errorf("To-purchase partition wrong: %+v", r)
	}
	if r.PurchasedCount != 1 || r.PurchasedTotal != 56000 {
		t.Errorf("Purchased partition wrong: %+v", r)
	}
	// Total spent counts only the purchased partition
	if r.TotalSpent != 56000 {
		t.Errorf("TotalSpent must equal the purchased sum, got %v", r.TotalSpent)
	}
}

func TestTimelineFeedOrderAndTagging(t *testing.T) {
	feed := TimelineFeed(sampleEntries())

	if len(feed) != 6 {
		t.Fatalf("Expected 6 events, got %d", len(feed))
	}

	// Most recent first
	for i := 1; i < len(feed); i++ {
		if feed[i].TS.After(feed[i-1].TS) {
			t.Fatalf("Feed not sorted descending at index %d", i)
		}
	}
	if feed[0].Note != "Marked purchased (by captain)" {
		t.Errorf("Expected the newest event first, got %q", feed[0].Note)
	}

	// Events carry their owning entry's section and title
	if feed[0].Section != models.SectionPurchased || feed[0].Title != "Battery pack" {
		t.Errorf("Event not tagged with owner: %+v", feed[0])
	}
}

func TestTimelineFeedStableTies(t *testing.T) {
	ts := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		{ID: 1, Title: "a", Timeline: []models.TimelineEvent{{TS: ts, Note: "first"}}},
		{ID: 2, Title: "b", Timeline: []models.TimelineEvent{{TS: ts, Note: "second"}}},
	}

	feed := TimelineFeed(entries)
	if feed[0].Note != "first" || feed[1].Note != "second" {
		t.Errorf("Ties must keep input order, got %q then %q", feed[0].Note, feed[1].Note)
	}
}

func TestAggregationIsPure(t *testing.T) {
	entries := sampleEntries()

	first := WorkSummary(entries)
	second := WorkSummary(entries)
	if !reflect.DeepEqual(first, second) {
		t.Error("WorkSummary must be idempotent on an unchanged entry set")
	}

	if CostSummary(entries) != CostSummary(entries) {
		t.Error("CostSummary must be idempotent on an unchanged entry set")
	}
}

func TestPurchaseBoard(t *testing.T) {
	board := Purchases(sampleEntries())

	if len(board.ToPurchase) != 1 || board.ToPurchase[0].Title != "Motor controller" {
		t.Errorf("To-purchase board wrong: %+v", board.ToPurchase)
	}
	if len(board.Purchased) != 1 || board.Purchased[0].Title != "Battery pack" {
		t.Errorf("Purchased board wrong: %+v", board.Purchased)
	}
}
