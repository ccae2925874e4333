package domain

import (
	"fmt"
	"testing"
)

func TestTimeline_NewestFirst(t *testing.T) {
	tl := NewTimeline(10)
	tl.Add(1, "first", "")
	tl.Add(2, "second", "")

	entries := tl.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "second" || entries[1].Title != "first" {
		t.Errorf("unexpected order: %+v", entries)
	}
}

func TestTimeline_EvictsOldest(t *testing.T) {
	tl := NewTimeline(3)
	for i := 1; i <= 5; i++ {
		tl.Add(i, fmt.Sprintf("entry %d", i), "")
	}

	if tl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tl.Len())
	}
	entries := tl.Entries()
	if entries[0].Day != 5 || entries[2].Day != 3 {
		t.Errorf("expected days 5..3, got %+v", entries)
	}
}

func TestTimeline_DefaultCapAndClear(t *testing.T) {
	tl := NewTimeline(0)
	for i := 0; i < DefaultTimelineCap+20; i++ {
		tl.Add(i, "x", "")
	}
	if tl.Len() != DefaultTimelineCap {
		t.Errorf("Len() = %d, want %d", tl.Len(), DefaultTimelineCap)
	}

	tl.Clear()
	if tl.Len() != 0 || len(tl.Entries()) != 0 {
		t.Error("expected empty timeline after Clear")
	}
}

func TestBranchCounters(t *testing.T) {
	var c BranchCounters
	c.Inc(BranchMain)
	c.Inc(BranchMain)
	c.Inc(BranchColdLeads)
	c.Inc(Branch("unknown"))

	if c.Total() != 3 {
		t.Errorf("Total() = %d, want 3", c.Total())
	}
	if got := c.Share(BranchMain); got < 0.66 || got > 0.67 {
		t.Errorf("Share(main) = %f", got)
	}
	if BranchColdLeads.Label() != "cold leads" {
		t.Errorf("Label() = %q", BranchColdLeads.Label())
	}
	var empty BranchCounters
	if empty.Share(BranchMain) != 0 {
		t.Error("empty share should be 0")
	}
}
